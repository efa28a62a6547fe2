// Package net holds request context helpers shared by the http layers
package net

import (
	"context"

	"activitycal/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest records the request id where chi and the logger both find it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// WithVehicle tags request scoped logs with the vehicle being read
func WithVehicle(ctx context.Context, vehicleID string) context.Context {
	return logger.WithVehicle(ctx, vehicleID)
}

// RequestID returns the request id set by chi's RequestID middleware or WithRequest
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
