package vote

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore_Append(t *testing.T) {
	s := NewStore()

	if s.Len() != 0 {
		t.Fatalf("New store not empty : %d", s.Len())
	}

	input := []Vote{
		{VoterID: "v1", Color: Red},
		{VoterID: "", Color: Green},
		{VoterID: "v1", Color: Red},
	}

	for i, v := range input {
		s.Append(v)

		if got := s.Len(); got != i+1 {
			t.Fatalf("Got length %d, want %d", got, i+1)
		}

		votes := s.Votes()
		if diff := cmp.Diff(v, votes[len(votes)-1]); diff != "" {
			t.Errorf("Last vote mismatch (-want +got):\n%s", diff)
		}
	}

	if diff := cmp.Diff(input, s.Votes()); diff != "" {
		t.Errorf("Insertion order not preserved (-want +got):\n%s", diff)
	}
}

func TestStore_TallyIdempotent(t *testing.T) {
	s := NewStore()
	s.Append(Vote{VoterID: "v1", Color: Red})
	s.Append(Vote{VoterID: "v2", Color: Blue})
	s.Append(Vote{VoterID: "v3", Color: Blue})

	first := s.Tally()
	second := s.Tally()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Repeated tally mismatch (-first +second):\n%s", diff)
	}

	if diff := cmp.Diff(Tally{Red: 1, Blue: 2}, first); diff != "" {
		t.Errorf("Tally mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_VotesIsCopy(t *testing.T) {
	s := NewStore()
	s.Append(Vote{VoterID: "v1", Color: Red})

	votes := s.Votes()
	votes[0].Color = Green

	if got := s.Votes()[0].Color; got != Red {
		t.Errorf("Got %v, want %v", got, Red)
	}
}

func TestStore_AppendAndTallyConcurrent(t *testing.T) {
	s := NewStore()

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			color := AllowedColors[i%len(AllowedColors)]
			for j := 0; j < perWorker; j++ {
				tally := s.AppendAndTally(Vote{VoterID: "w", Color: color})
				if tally[color] < 1 {
					t.Errorf("Tally does not include appended vote : %v", tally)
				}
			}
		}(i)
	}
	wg.Wait()

	if got := s.Len(); got != workers*perWorker {
		t.Errorf("Got length %d, want %d", got, workers*perWorker)
	}

	if got := s.Tally().Total(); got != workers*perWorker {
		t.Errorf("Got total %d, want %d", got, workers*perWorker)
	}
}
