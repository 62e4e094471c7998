package vote

// Vote is one recorded (voter, color) pair. Votes are never modified once
// they have been appended to a Store.
type Vote struct {
	VoterID string `json:"voter_id"`
	Color   string `json:"color"`
}

// Tally is the number of votes per color at a point in time. Colors that
// have not received a vote are absent rather than zero.
type Tally map[string]int
