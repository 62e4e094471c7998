package contract

import (
	"github.com/tokenized/voting-contract/internal/vote"
)

// CastAndTally is the input of the cast_and_tally operation.
type CastAndTally struct {
	VoterID string `json:"voter_id"`
	Color   string `json:"color"`
}

// Response is the structured success value returned to the host.
type Response struct {
	Msg string `json:"msg"`
}

// Result is the outcome of a successful cast. The tally includes Vote.
type Result struct {
	Vote   vote.Vote  `json:"vote"`
	Tally  vote.Tally `json:"tally"`
	Winner string     `json:"winner"`
}

// Message renders the result for the response.
func (r Result) Message() string {
	return Summarize(r.Vote.Color, r.Tally)
}
