package clock

import "time"

// Clock abstracts time.Now so order numbering, offer windows and
// verification expiry can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed instant until moved with Set or Add.
type MockClock struct {
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	return c.current
}

func (c *MockClock) Set(t time.Time) {
	c.current = t
}

func (c *MockClock) Add(d time.Duration) {
	c.current = c.current.Add(d)
}
