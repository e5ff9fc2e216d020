package fetch

import "sync/atomic"

// Sequencer orders racing fetches for one view. Every fetch takes a ticket
// before it starts; a response may only apply while its ticket is still the
// newest one issued. Responses arriving out of order are discarded instead
// of overwriting newer state.
type Sequencer struct {
	seq atomic.Uint64
}

// Next issues a ticket for a new fetch.
func (s *Sequencer) Next() uint64 {
	return s.seq.Add(1)
}

// Current reports whether the ticket is still the newest issued. The caller
// synchronizes its own state; Current only decides staleness.
func (s *Sequencer) Current(ticket uint64) bool {
	return s.seq.Load() == ticket
}
