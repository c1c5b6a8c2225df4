package domain

import "time"

// Quota is a snapshot of the hosting service's core rate limit. It is
// advisory: the service remains the authority on remaining calls.
type Quota struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Exhausted reports whether no calls remain in the current window.
func (q Quota) Exhausted() bool {
	return q.Remaining == 0
}
