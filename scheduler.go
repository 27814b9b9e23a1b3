package monosprite

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scheduler advances a set of independent Sequences from the World's
// clock.
type Scheduler struct {
	world     *World
	sequences []*Sequence
	last      int64
}

// NewScheduler returns a Scheduler for w. Time is measured from now.
func NewScheduler(w *World) *Scheduler {
	return &Scheduler{
		world: w,
		last:  w.clock.NowMillis(),
	}
}

// Add schedules seq, starting from the next tick, and returns its ID.
func (s *Scheduler) Add(seq *Sequence) uuid.UUID {
	s.sequences = append(s.sequences, seq)
	return seq.id
}

// Animate is a convenience for adding a Sequence of steps.
func (s *Scheduler) Animate(steps ...*Animation) uuid.UUID {
	return s.Add(NewSequence(steps...))
}

// Get returns the Sequence with the given ID, if it is still scheduled.
func (s *Scheduler) Get(id uuid.UUID) (*Sequence, bool) {
	for _, seq := range s.sequences {
		if seq.id == id {
			return seq, true
		}
	}
	return nil, false
}

// Kill marks the Sequence with the given ID dead. It is dropped on the next
// tick. It reports whether the Sequence was found.
func (s *Scheduler) Kill(id uuid.UUID) bool {
	seq, ok := s.Get(id)
	if ok {
		seq.Kill()
	}
	return ok
}

// Len returns the number of scheduled Sequences, including dead ones not
// yet dropped.
func (s *Scheduler) Len() int {
	return len(s.sequences)
}

// Tick advances the active Animation of every live Sequence by the time
// elapsed since the previous tick, in the order the Sequences were added,
// and then drops every dead Sequence.
func (s *Scheduler) Tick() {
	now := s.world.clock.NowMillis()
	dt := time.Duration(now-s.last) * time.Millisecond
	s.last = now

	// Sequences added by callbacks wait for the next tick
	for _, seq := range s.sequences[:len(s.sequences):len(s.sequences)] {
		if seq.dead {
			continue
		}

		a := seq.steps[seq.active]
		finished, err := a.advance(s.world, dt)
		if err != nil {
			s.world.logger.Debug("animation subject gone, killing sequence", zap.String("subject", a.subject), zap.Stringer("sequence", seq.id), zap.Error(err))
			seq.dead = true
			continue
		}
		if !finished {
			continue
		}

		if a.onFinish != nil {
			a.onFinish(s.world, a)
		}
		if seq.active+1 < len(seq.steps) {
			seq.active++
		} else {
			seq.dead = true
		}
	}

	live := s.sequences[:0]
	for _, seq := range s.sequences {
		if seq.dead {
			s.world.logger.Debug("sequence finished", zap.Stringer("sequence", seq.id))
			continue
		}
		live = append(live, seq)
	}
	for i := len(live); i < len(s.sequences); i++ {
		s.sequences[i] = nil
	}
	s.sequences = live
}
