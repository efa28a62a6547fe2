// Package http is the JSON transport: envelope, return style handlers, router seam and server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "activitycal/internal/platform/errors"
	pnet "activitycal/internal/platform/net"
)

// Envelope wraps every JSON body
type Envelope struct {
	OK        bool       `json:"ok"`
	RequestID string     `json:"request_id,omitempty"`
	Data      any        `json:"data,omitempty"`
	Error     *perr.Wire `json:"error,omitempty"`
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return style handlers produce
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// raw bodies bypass the envelope, used for non JSON payloads like text/calendar
	raw         []byte
	contentType string
}

// Handle adapts a Response returning func to a Handler
func Handle(h func(r *stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status, wire := perr.HTTP(err)
		JSON(w, status, Envelope{RequestID: reqID, Error: &wire})
		return
	}
	if resp.contentType != "" {
		w.Header().Set("Content-Type", resp.contentType)
		w.WriteHeader(status)
		_, _ = w.Write(resp.raw)
		return
	}
	JSON(w, status, Envelope{OK: true, RequestID: reqID, Data: resp.Body})
}

// OK returns a 200 envelope around data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns the envelope for err with its mapped status
func Error(err error) Response { return Response{Body: err} }

// Raw returns body verbatim with contentType
func Raw(contentType string, body []byte) Response {
	return Response{Status: stdhttp.StatusOK, raw: body, contentType: contentType}
}

// WithHeader returns a copy of resp with an extra header
func (resp Response) WithHeader(k, v string) Response {
	h := resp.Header.Clone()
	if h == nil {
		h = stdhttp.Header{}
	}
	h.Add(k, v)
	resp.Header = h
	return resp
}
