package counter

import "sync/atomic"

// Counter is a running total that is safe for concurrent use.
type Counter struct {
	total atomic.Int64
}

func NewCounter() *Counter {
	return &Counter{}
}

// Add adds a value to the counter
func (c *Counter) Add(value int64) {
	c.total.Add(value)
}

func (c *Counter) Increment() {
	c.total.Add(1)
}

// Count returns the current count
func (c *Counter) Count() int64 {
	return c.total.Load()
}
