package monosprite

import (
	"fmt"
	"image"
	"time"

	"github.com/bodgit/monosprite/geom"
	"github.com/google/uuid"
)

// TickFunc is called after every tick an Animation moves its sprite, with
// the quantized step the move committed.
type TickFunc func(w *World, a *Animation, step image.Point)

// FinishFunc is called once when an Animation's duration has elapsed.
type FinishFunc func(w *World, a *Animation)

// Animation moves a sprite in a straight line from a start to a destination
// over a fixed duration. The sprite is referred to by name and looked up on
// every tick, so an Animation never keeps a removed sprite alive.
type Animation struct {
	subject     string
	start, dest geom.Vector
	velocity    geom.Vector
	duration    time.Duration
	delay       time.Duration
	elapsed     time.Duration
	wrap        bool
	onTick      TickFunc
	onFinish    FinishFunc
}

// AnimationOption configures an Animation.
type AnimationOption func(*Animation)

// Delay holds the Animation still for d before it starts moving.
func Delay(d time.Duration) AnimationOption {
	return func(a *Animation) {
		a.delay = d
	}
}

// Wrapping makes the sprite wrap around the world's wrap bounds.
func Wrapping() AnimationOption {
	return func(a *Animation) {
		a.wrap = true
	}
}

// OnTick sets a function called after every move.
func OnTick(fn TickFunc) AnimationOption {
	return func(a *Animation) {
		a.onTick = fn
	}
}

// OnFinish sets a function called when the Animation completes.
func OnFinish(fn FinishFunc) AnimationOption {
	return func(a *Animation) {
		a.onFinish = fn
	}
}

// NewAnimation returns an Animation moving the sprite called subject from
// start to dest over duration. The velocity is fixed here and never
// recomputed.
func NewAnimation(subject string, start, dest geom.Vector, duration time.Duration, options ...AnimationOption) (*Animation, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("animate %q: %w", subject, ErrDegenerate)
	}
	if !start.Finite() || !dest.Finite() {
		return nil, fmt.Errorf("animate %q: %w", subject, ErrInvalidGeometry)
	}

	a := &Animation{
		subject:  subject,
		start:    start,
		dest:     dest,
		velocity: dest.Sub(start).Scale(1 / duration.Seconds()),
		duration: duration,
	}
	for _, o := range options {
		o(a)
	}
	if a.delay < 0 {
		a.delay = 0
	}

	return a, nil
}

// Subject returns the name of the animated sprite.
func (a *Animation) Subject() string { return a.subject }

// Start returns the start position.
func (a *Animation) Start() geom.Vector { return a.start }

// Destination returns the destination position.
func (a *Animation) Destination() geom.Vector { return a.dest }

// Velocity returns the velocity in pixels per second.
func (a *Animation) Velocity() geom.Vector { return a.velocity }

// Duration returns how long the Animation moves for.
func (a *Animation) Duration() time.Duration { return a.duration }

// Elapsed returns the time spent on the Animation so far, including any
// delay.
func (a *Animation) Elapsed() time.Duration { return a.elapsed }

// Advance the Animation by dt, moving its sprite for whatever part of dt
// falls between the end of the delay and the end of the duration, so the
// sprite comes to rest on the destination. It reports whether the
// Animation has finished.
func (a *Animation) advance(w *World, dt time.Duration) (bool, error) {
	if _, ok := w.sprites[a.subject]; !ok {
		return false, fmt.Errorf("animate %q: %w", a.subject, ErrNotFound)
	}

	from := max(a.elapsed, a.delay)
	to := min(a.elapsed+dt, a.delay+a.duration)
	moving := max(to-from, 0)

	if moving > 0 {
		step, err := w.Move(a.subject, a.velocity.Scale(moving.Seconds()), a.wrap)
		if err != nil {
			return false, err
		}
		if a.onTick != nil {
			a.onTick(w, a, step)
		}
	}

	a.elapsed += dt

	return a.elapsed-a.delay > a.duration, nil
}

// Sequence is an ordered chain of Animations run one after another.
type Sequence struct {
	id     uuid.UUID
	steps  []*Animation
	active int
	dead   bool
}

// NewSequence returns a Sequence running steps in order.
func NewSequence(steps ...*Animation) *Sequence {
	return &Sequence{
		id:    uuid.New(),
		steps: steps,
		dead:  len(steps) == 0,
	}
}

// ID returns the identifier the Sequence is known by in a Scheduler.
func (s *Sequence) ID() uuid.UUID { return s.id }

// Index returns the position of the active Animation.
func (s *Sequence) Index() int { return s.active }

// Active returns the running Animation, or nil once the Sequence is dead.
func (s *Sequence) Active() *Animation {
	if s.dead {
		return nil
	}
	return s.steps[s.active]
}

// Dead reports whether the Sequence has finished or been killed.
func (s *Sequence) Dead() bool { return s.dead }

// Kill marks the Sequence dead; a Scheduler drops it on its next tick.
func (s *Sequence) Kill() { s.dead = true }
