package clock

import "time"

// Clock supplies the current instant. The engines never call time.Now
// directly so tests can pin the clock to an exact moment.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock, in UTC.
func System() Clock { return systemClock{} }

// Fixed is a Clock frozen at a single instant. Advance moves it forward.
type Fixed struct {
	Instant time.Time
}

func NewFixed(t time.Time) *Fixed { return &Fixed{Instant: t.UTC()} }

func (f *Fixed) Now() time.Time { return f.Instant }

func (f *Fixed) Advance(d time.Duration) { f.Instant = f.Instant.Add(d) }
