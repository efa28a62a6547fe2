// Package http provides HTTP transport for the timeline API
package http

import (
	stdhttp "net/http"
	"strings"

	"activitycal/internal/modkit/httpkit"
	perr "activitycal/internal/platform/errors"
	"activitycal/internal/services/api/timeline/domain"
)

// Register mounts the timeline endpoints. Queries are POST with JSON bodies,
// the calendar feed is a GET so calendar clients can subscribe to it
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON(r, "/index", h.index)
	httpkit.PostJSON(r, "/grid", h.grid)
	httpkit.PostJSON(r, "/day", h.day)
	httpkit.Get(r, "/{vehicleID}/auctions.ics", h.auctionsICS)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /timeline/index Timeline timelineIndex
// @Summary Per day activity index with the selected year
// @Tags Timeline
// @Accept json
// @Produce json
// @Param payload body domain.IndexInput true "Query"
// @Success 200 {object} domain.IndexResp "ok"
// @Failure 404 {object} httpkit.Envelope "unknown vehicle"
// @Router /timeline/index [post]
func (h *handlers) index(r *stdhttp.Request, in domain.IndexInput) (any, error) {
	return h.svc.Index(r.Context(), in)
}

// swagger:route POST /timeline/grid Timeline timelineGrid
// @Summary 53x7 calendar grid joined with day weights
// @Tags Timeline
// @Accept json
// @Produce json
// @Param payload body domain.GridInput true "Query"
// @Success 200 {object} domain.GridResp "ok"
// @Router /timeline/grid [post]
func (h *handlers) grid(r *stdhttp.Request, in domain.GridInput) (any, error) {
	return h.svc.Grid(r.Context(), in)
}

// swagger:route POST /timeline/day Timeline timelineDay
// @Summary Deduplicated receipt of one day
// @Tags Timeline
// @Accept json
// @Produce json
// @Param payload body domain.DayInput true "Query"
// @Success 200 {object} domain.DayResp "ok"
// @Router /timeline/day [post]
func (h *handlers) day(r *stdhttp.Request, in domain.DayInput) (any, error) {
	return h.svc.Day(r.Context(), in)
}

// swagger:route GET /timeline/{vehicleID}/auctions.ics Timeline timelineAuctionsICS
// @Summary iCalendar feed of upcoming scheduled auctions
// @Tags Timeline
// @Produce text/calendar
// @Param vehicleID path string true "Vehicle id"
// @Success 200 {string} string "calendar"
// @Router /timeline/{vehicleID}/auctions.ics [get]
func (h *handlers) auctionsICS(r *stdhttp.Request) (any, error) {
	id := strings.TrimSpace(httpkit.URLParam(r, "vehicleID"))
	if id == "" || len(id) > 64 {
		return nil, perr.WithField(perr.InvalidArgf("vehicle id must be 1 to 64 characters"), "vehicleID")
	}
	body, err := h.svc.AuctionsICS(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return httpkit.Raw("text/calendar; charset=utf-8", body).
		WithHeader("Content-Disposition", `inline; filename="auctions-`+id+`.ics"`), nil
}
