package vote

import (
	"sync"
)

// Store is the append only vote log of a single contract deployment. The
// tally is never stored, it is derived from the log on each request.
//
// A Store is safe for concurrent use.
type Store struct {
	lock  sync.Mutex
	votes []Vote
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a vote to the end of the log.
func (s *Store) Append(v Vote) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.votes = append(s.votes, v)
}

// Tally counts the votes per color currently in the log.
func (s *Store) Tally() Tally {
	s.lock.Lock()
	defer s.lock.Unlock()

	return Count(s.votes)
}

// AppendAndTally appends a vote and counts the log in one step, so the tally
// includes the vote and nothing appended by another caller after it.
func (s *Store) AppendAndTally(v Vote) Tally {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.votes = append(s.votes, v)
	return Count(s.votes)
}

// Len returns the number of votes in the log.
func (s *Store) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.votes)
}

// Votes returns a copy of the log in insertion order.
func (s *Store) Votes() []Vote {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := make([]Vote, len(s.votes))
	copy(result, s.votes)
	return result
}
