// Package estimate computes labor hours and value for canonical events
// Precedence
// 1 an authoritative invoice wins outright
// 2 sale and auction categories use the reported amount or the highest bid
// 3 documentation kinds are never labor
// 4 everything else gets the capped image heuristic
package estimate

import (
	"math"
	"strings"

	"activitycal/internal/core/activity"
)

// Source tags where an estimate came from
type Source string

const (
	// SourceInvoice is an authoritative invoice total
	SourceInvoice Source = "invoice"
	// SourceReported is a directly reported amount such as a sale price
	SourceReported Source = "reported"
	// SourceHeuristic is the image based labor heuristic
	SourceHeuristic Source = "heuristic"
	// SourceNone means no figure applies
	SourceNone Source = "none"
)

// Result is a per event estimate, recomputed on every load
type Result struct {
	Hours    float64 `json:"hours"`
	ValueUSD float64 `json:"value_usd"`
	Source   Source  `json:"source"`
}

// Invoice is an invoice row keyed by event id
type Invoice struct {
	EventID       string  `json:"event_id"`
	InvoiceNumber string  `json:"invoice_number"`
	TotalAmount   float64 `json:"total_amount"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
}

// Estimator is satisfied by Engine, consumers accept it to stay testable
type Estimator interface {
	Estimate(ev activity.Event, inv *Invoice) Result
}

// Engine applies a Policy, safe for concurrent use
type Engine struct {
	p    Policy
	zero map[string]struct{}
	void map[string]struct{}
}

// New constructs an Engine, invalid policies fall back to the default
func New(p Policy) *Engine {
	if p.Validate() != nil {
		p = DefaultPolicy()
	}
	bonus := make(map[string]float64, len(p.KindBonus))
	for k, v := range p.KindBonus {
		bonus[strings.ToLower(strings.TrimSpace(k))] = v
	}
	p.KindBonus = bonus
	return &Engine{p: p, zero: toSet(p.ZeroKinds), void: toSet(p.VoidStatuses)}
}

// Default constructs an Engine with the embedded policy
func Default() *Engine { return New(DefaultPolicy()) }

// Policy returns the active policy
func (e *Engine) Policy() Policy { return e.p }

// Authoritative reports whether inv should override any computed figure
func (e *Engine) Authoritative(inv *Invoice) bool {
	if inv == nil || inv.TotalAmount <= 0 {
		return false
	}
	_, void := e.void[strings.ToLower(strings.TrimSpace(inv.Status))]
	return !void
}

// Estimate computes the result for ev with an optional invoice
func (e *Engine) Estimate(ev activity.Event, inv *Invoice) Result {
	if e.Authoritative(inv) {
		return Result{Hours: 0, ValueUSD: inv.TotalAmount, Source: SourceInvoice}
	}

	if ev.Category.IsSale() {
		amt := ev.Reported()
		if amt <= 0 {
			amt = highestBid(ev)
		}
		if amt > 0 {
			return Result{ValueUSD: amt, Source: SourceReported}
		}
		return Result{Source: SourceNone}
	}

	if ev.Category == activity.CategoryDocumentation || e.isZeroKind(ev.Kind) {
		return Result{Source: SourceNone}
	}

	hours := e.p.BaseHours + float64(max(ev.ImageCount, 0))/e.p.ImagesPerHour + e.p.KindBonus[ev.Kind]
	hours = clamp(hours, 0, e.p.MaxHours)
	return Result{
		Hours:    hours,
		ValueUSD: round2(hours * e.p.LaborRate),
		Source:   SourceHeuristic,
	}
}

func (e *Engine) isZeroKind(kind string) bool {
	if kind == "" {
		return false
	}
	_, ok := e.zero[kind]
	return ok
}

func highestBid(ev activity.Event) float64 {
	best := 0.0
	for _, k := range []string{"highest_bid", "high_bid", "winning_bid"} {
		if v, ok := ev.MetaFloat(k); ok && v > best {
			best = v
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
