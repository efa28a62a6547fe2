// Package service rebuilds per vehicle day aggregates into ClickHouse
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"activitycal/internal/core/datekey"
	"activitycal/internal/core/index"
	"activitycal/internal/modkit/repokit"
	perr "activitycal/internal/platform/errors"
	"activitycal/internal/platform/logger"
	ptime "activitycal/internal/platform/time"
	tdomain "activitycal/internal/services/api/timeline/domain"
	"activitycal/internal/services/rollup/domain"
	"activitycal/internal/services/rollup/guardrails"
)

// WatermarkName keys the watermark row of this job
const WatermarkName = "activity_day_agg"

// Config controls pass size and concurrency
type Config struct {
	// Workers bounds concurrent vehicle rebuilds
	Workers int
	// Batch is the number of changed vehicles handled per page
	Batch int
}

// Service implements domain.RunnerPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Sink   domain.Sink
	Loader tdomain.Loader
	Cfg    Config
	Clock  ptime.Clock

	// Lease guards a pass against concurrent runs. Nil runs unguarded
	Lease guardrails.Lease

	ensureMu sync.Mutex
	ensured  bool
}

// New constructs the rollup service
func New(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], sink domain.Sink,
	loader tdomain.Loader, cfg Config, clock ptime.Clock, lease guardrails.Lease) *Service {
	if db == nil {
		panic("rollup.Service requires a non nil TxRunner")
	}
	if binder == nil || sink == nil || loader == nil {
		panic("rollup.Service requires a repo binder, a sink and a loader")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 200
	}
	if clock == nil {
		clock = ptime.System()
	}
	return &Service{DB: db, Binder: binder, Sink: sink, Loader: loader, Cfg: cfg, Clock: clock, Lease: lease}
}

// RunOnce rebuilds every vehicle changed since the watermark. A page with a failed
// vehicle stops the pass without advancing past that page, so the next pass retries it
func (s *Service) RunOnce(ctx context.Context) (domain.PassStats, error) {
	l := logger.Named("rollup")
	var stats domain.PassStats
	run := func(ctx context.Context) error {
		var err error
		stats, err = s.pass(ctx)
		return err
	}

	var err error
	if s.Lease != nil {
		err = s.Lease(ctx, WatermarkName, run)
	} else {
		err = run(ctx)
	}
	if errors.Is(err, guardrails.ErrLeaseHeld) {
		l.Info().Msg("rollup: lease held elsewhere; clean skip")
		return domain.PassStats{Status: domain.StatusSkipped}, nil
	}
	ev := l.Info()
	if err != nil {
		ev = l.Error().Err(err)
	}
	ev.Str("status", stats.Status).Int("vehicles", stats.Vehicles).Int("failed", stats.Failed).
		Int("rows", stats.Rows).Time("through", stats.Through).Str("elapsed", stats.Elapsed).
		Msg("rollup: pass finished")
	return stats, err
}

func (s *Service) pass(ctx context.Context) (stats domain.PassStats, retErr error) {
	start := time.Now()
	stats.Status = domain.StatusOK
	var through domain.Cursor

	// always record the outcome and release the lease, even on error
	defer func() {
		info := domain.FinishInfo{
			Status:       stats.Status,
			BuiltThrough: through,
			Vehicles:     stats.Vehicles,
			Rows:         stats.Rows,
		}
		if retErr != nil {
			info.ErrText = retErr.Error()
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.Binder.Bind(s.DB).Finish(fctx, WatermarkName, info); err != nil && retErr == nil {
			retErr = err
		}
		stats.Elapsed = time.Since(start).Round(time.Millisecond).String()
	}()

	if err := s.ensureTable(ctx); err != nil {
		stats.Status = domain.StatusError
		return stats, err
	}

	var err error
	through, err = s.Binder.Bind(s.DB).Watermark(ctx, WatermarkName)
	if err != nil {
		stats.Status = domain.StatusError
		return stats, err
	}
	stats.From, stats.Through = through.At, through.At

	for {
		page, err := s.Binder.Bind(s.DB).ChangedSince(ctx, through, s.Cfg.Batch)
		if err != nil {
			stats.Status = domain.StatusError
			return stats, err
		}
		if len(page) == 0 {
			return stats, nil
		}

		rows, failed, err := s.rebuild(ctx, page)
		stats.Vehicles += len(page) - failed
		stats.Failed += failed
		if err != nil {
			stats.Status = domain.StatusError
			return stats, err
		}
		if err := s.Sink.Write(ctx, rows); err != nil {
			stats.Status = domain.StatusError
			return stats, err
		}
		stats.Rows += len(rows)

		if failed > 0 {
			stats.Status = domain.StatusPartial
			return stats, nil
		}
		through = page[len(page)-1].Cursor()
		stats.Through = through.At
		if len(page) < s.Cfg.Batch {
			return stats, nil
		}
	}
}

// ensureTable creates the sink table once per process, retrying after a failure
func (s *Service) ensureTable(ctx context.Context) error {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	if s.ensured {
		return nil
	}
	if err := s.Sink.EnsureTable(ctx); err != nil {
		return err
	}
	s.ensured = true
	return nil
}

// rebuild loads and indexes the page concurrently. Vehicle failures are counted, not fatal
func (s *Service) rebuild(ctx context.Context, page []domain.Changed) ([]domain.DayAgg, int, error) {
	var (
		mu     sync.Mutex
		rows   []domain.DayAgg
		failed int
	)
	builtAt := s.Clock().UTC()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Cfg.Workers)
	for _, c := range page {
		g.Go(func() error {
			vr, err := s.vehicleRows(gctx, c.VehicleID, builtAt)
			if perr.IsRetryable(err) {
				vr, err = s.vehicleRows(gctx, c.VehicleID, builtAt)
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.C(gctx).Warn().Err(err).Str("vehicle_id", c.VehicleID).Msg("rollup: vehicle rebuild failed")
				failed++
				return nil
			}
			rows = append(rows, vr...)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, failed, err
	}
	return rows, failed, nil
}

func (s *Service) vehicleRows(ctx context.Context, vehicleID string, builtAt time.Time) ([]domain.DayAgg, error) {
	snap, err := s.Loader.Snapshot(ctx, vehicleID, builtAt)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		// deleted since it changed, nothing left to rebuild
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	existing, err := s.Sink.ExistingDays(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return DayRows(vehicleID, snap.Index, existing, builtAt), nil
}

// DayRows flattens an index into aggregate rows. Days present in existing but gone from
// the index get a zero row so the replacing merge drops their activity
func DayRows(vehicleID string, ix index.Index, existing []time.Time, builtAt time.Time) []domain.DayAgg {
	out := make([]domain.DayAgg, 0, len(ix)+len(existing))
	for _, d := range ix.Days() {
		out = append(out, domain.DayAgg{
			VehicleID: vehicleID,
			Day:       d.Key.Time(),
			Events:    uint32(len(d.Events)),
			Photos:    uint32(max(d.PhotoCount, 0)),
			Hours:     d.Hours,
			ValueUSD:  d.ValueUSD,
			Weight:    d.Weight,
			BuiltAt:   builtAt,
		})
	}
	for _, day := range existing {
		if _, ok := ix.Day(datekey.FromTime(day)); ok {
			continue
		}
		out = append(out, domain.DayAgg{VehicleID: vehicleID, Day: day.UTC(), BuiltAt: builtAt})
	}
	return out
}
