package util

import "sync/atomic"

// Counter is an int64 total that workers can add to concurrently.
type Counter struct {
	value atomic.Int64
}

// Add adds delta and returns the new total.
func (c *Counter) Add(delta int64) int64 {
	return c.value.Add(delta)
}

// Value returns the current total.
func (c *Counter) Value() int64 {
	return c.value.Load()
}
