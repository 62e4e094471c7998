package broadcaster

/**
 * Broadcaster
 *
 * What is my purpose?
 * - You announce every accepted vote and the tally it produced
 */

import (
	"context"

	"github.com/tokenized/voting-contract/internal/contract"
	"github.com/tokenized/voting-contract/internal/vote"
)

// Update is the announcement sent for each accepted vote. A snapshot sent to
// a new subscriber has no voter or color.
//
// Votes is the length of the vote log once the vote was appended, so it also
// orders updates. Concurrent casts are announced after the store is released
// and may reach subscribers out of order. Receivers use Supersedes to skip
// updates older than one already seen.
type Update struct {
	VoterID string     `json:"voter_id,omitempty"`
	Color   string     `json:"color,omitempty"`
	Tally   vote.Tally `json:"tally"`
	Winner  string     `json:"winner"`
	Votes   int        `json:"votes"`
}

// Broadcaster delivers updates to subscribers.
type Broadcaster interface {
	Announce(ctx context.Context, u Update) error
}

// NewUpdate builds the update for a successful cast.
func NewUpdate(result *contract.Result) Update {
	return Update{
		VoterID: result.Vote.VoterID,
		Color:   result.Vote.Color,
		Tally:   result.Tally.Copy(),
		Winner:  result.Winner,
		Votes:   result.Tally.Total(),
	}
}

// Snapshot builds an update describing the current tally.
func Snapshot(tally vote.Tally) Update {
	return Update{
		Tally:  tally.Copy(),
		Winner: contract.Winner(tally),
		Votes:  tally.Total(),
	}
}

// Supersedes returns true if u reflects more votes than previous.
func (u Update) Supersedes(previous Update) bool {
	return u.Votes > previous.Votes
}
