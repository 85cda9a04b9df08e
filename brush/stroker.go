package brush

import (
	"sync"
	"time"

	"github.com/gogpu/imgedit"
)

// DefaultStrokeInterval is the minimum spacing between painted segments.
const DefaultStrokeInterval = 10 * time.Millisecond

// Throttle admits at most one event per interval.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
	armed    bool
}

// NewThrottle creates a throttle. A nil clock uses time.Now.
func NewThrottle(interval time.Duration, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{interval: interval, now: now}
}

// Allow reports whether an event arriving now may pass.
func (t *Throttle) Allow() bool {
	now := t.now()
	if t.armed && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	t.armed = true
	return true
}

// Reset lets the next event pass.
func (t *Throttle) Reset() {
	t.armed = false
}

// Stroker turns a stream of pointer positions into mask segments.
//
// Each painted segment starts where the previous one ended, so throttling
// lowers path resolution but never reorders or disconnects the stroke.
// The most recent throttled position is kept and painted by the next
// admitted move or by End.
type Stroker struct {
	mu       sync.Mutex
	engine   *Engine
	throttle *Throttle
	settings Settings
	last     imgedit.Point
	pending  imgedit.Point
	dirty    bool
	active   bool
	segments int
}

// NewStroker creates a stroker that paints into e.
func NewStroker(e *Engine, t *Throttle) *Stroker {
	if t == nil {
		t = NewThrottle(DefaultStrokeInterval, nil)
	}
	return &Stroker{engine: e, throttle: t}
}

// Begin starts a stroke at p. Nothing is painted until the pointer moves.
func (s *Stroker) Begin(p imgedit.Point, settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.last = p
	s.dirty = false
	s.active = true
	s.segments = 0
	s.throttle.Reset()
}

// MoveTo extends the stroke to p. It reports whether a segment was painted.
func (s *Stroker) MoveTo(p imgedit.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false
	}
	if !s.throttle.Allow() {
		s.pending = p
		s.dirty = true
		return false
	}
	s.paint(p)
	return true
}

// End flushes any throttled position and finishes the stroke. It returns
// the number of segments painted during the stroke.
func (s *Stroker) End() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return 0
	}
	if s.dirty {
		s.paint(s.pending)
	}
	s.active = false
	return s.segments
}

// Active reports whether a stroke is in progress.
func (s *Stroker) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Stroker) paint(p imgedit.Point) {
	s.engine.PaintStroke(s.last, p, s.settings.Size, s.settings.Intensity, s.settings.Mode)
	s.last = p
	s.dirty = false
	s.segments++
}
