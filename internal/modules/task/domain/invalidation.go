package domain

import "time"

// Invalidation signals that tasks changed server-side outside the cache's own
// mutation methods.
type Invalidation struct {
	Source string
	At     time.Time
}
