package app

import "time"

// Clock отдаёт монотонно растущее время кадра.
type Clock interface {
	Now() time.Time
}

// SystemClock — настоящее время.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock двигается только вручную: для тестов и симуляции.
type ManualClock struct {
	now time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance сдвигает часы на d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
