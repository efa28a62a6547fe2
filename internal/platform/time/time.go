// Package time holds clock helpers
package time

import "time"

// Clock returns the current instant. Services take one so tests can pin "now"
type Clock func() time.Time

// System is the wall clock in UTC
func System() Clock { return func() time.Time { return time.Now().UTC() } }

// Fixed always returns t
func Fixed(t time.Time) Clock { return func() time.Time { return t } }

// Or returns t when set, otherwise the clock's reading
func (c Clock) Or(t *time.Time) time.Time {
	if t != nil && !t.IsZero() {
		return t.UTC()
	}
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
