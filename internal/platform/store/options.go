package store

import "activitycal/internal/platform/logger"

// Option adjusts a Store during Open
type Option func(*Store)

// WithLogger replaces the store logger used for query tracing
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.Log = log }
}
