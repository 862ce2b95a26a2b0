package astrodash

import "sort"

// cue is a scheduled action.
type cue struct {
	at     float64
	order  int
	action func()
}

// Sequencer runs timed actions against an accumulated clock. Cutscenes and
// boss throw schedules are lists of cues; skipping one cancels the whole list
// so no stale action can fire afterwards.
type Sequencer struct {
	clock   float64
	pending []cue
	nextID  int
	gen     int // Bumped by CancelAll to stop an in-progress Advance
}

// Schedule adds an action to fire delay seconds from the current clock.
// Actions due at the same time fire in the order they were scheduled.
func (s *Sequencer) Schedule(delay float64, action func()) {
	s.pending = append(s.pending, cue{at: s.clock + delay, order: s.nextID, action: action})
	s.nextID++
}

// Advance moves the clock by dt and fires every due action in time order.
// Actions may schedule more cues or cancel the sequence.
func (s *Sequencer) Advance(dt float64) {
	s.clock += dt
	gen := s.gen
	for {
		idx := s.nextDue()
		if idx < 0 {
			return
		}
		c := s.pending[idx]
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		c.action()
		if s.gen != gen {
			return
		}
	}
}

func (s *Sequencer) nextDue() int {
	best := -1
	for i, c := range s.pending {
		if c.at > s.clock {
			continue
		}
		if best < 0 || c.at < s.pending[best].at ||
			(c.at == s.pending[best].at && c.order < s.pending[best].order) {
			best = i
		}
	}
	return best
}

// CancelAll drops every pending action.
func (s *Sequencer) CancelAll() {
	s.pending = s.pending[:0]
	s.gen++
}

// Reset cancels everything and rewinds the clock.
func (s *Sequencer) Reset() {
	s.CancelAll()
	s.clock = 0
}

// Pending returns the number of actions not yet fired.
func (s *Sequencer) Pending() int {
	return len(s.pending)
}

// Clock returns the sequencer's accumulated time.
func (s *Sequencer) Clock() float64 {
	return s.clock
}

// PendingTimes returns the due times of pending cues in firing order.
func (s *Sequencer) PendingTimes() []float64 {
	cues := append([]cue(nil), s.pending...)
	sort.SliceStable(cues, func(i, j int) bool {
		if cues[i].at != cues[j].at {
			return cues[i].at < cues[j].at
		}
		return cues[i].order < cues[j].order
	})
	out := make([]float64, len(cues))
	for i, c := range cues {
		out[i] = c.at
	}
	return out
}
