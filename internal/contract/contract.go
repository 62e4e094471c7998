package contract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tokenized/voting-contract/internal/vote"

	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

const (
	// MethodCastAndTally is the name the host exposes the operation under.
	MethodCastAndTally = "cast_and_tally"

	// NoVotesYet is reported in place of a winner when nothing is counted.
	NoVotesYet = "No votes yet"
)

// marshal encodes responses. It is replaced in tests to force encoding
// failures.
var marshal = json.Marshal

// Execute records the vote in store and returns the tally including it,
// along with the winning color.
//
// An invalid color returns an InvalidInput error and leaves store unchanged.
func Execute(ctx context.Context, store *vote.Store, input CastAndTally) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, "internal.contract.CastAndTally")
	defer span.End()

	if err := vote.ValidateColor(input.Color); err != nil {
		logger.Warn(ctx, "Rejected vote from '%s' : %s", input.VoterID, err)
		return nil, NewError(InvalidInput, fmt.Sprintf("Invalid color '%s'", input.Color))
	}

	v := vote.Vote{
		VoterID: input.VoterID,
		Color:   input.Color,
	}

	tally := store.AppendAndTally(v)

	result := &Result{
		Vote:   v,
		Tally:  tally,
		Winner: Winner(tally),
	}

	logger.Info(ctx, "Vote cast for %s by '%s' : tally %s : winner %s", v.Color, v.VoterID,
		tally, result.Winner)

	return result, nil
}

// Cast records the vote and returns the response message.
func Cast(ctx context.Context, store *vote.Store, input CastAndTally) (*Response, error) {
	result, err := Execute(ctx, store, input)
	if err != nil {
		return nil, err
	}

	return &Response{Msg: result.Message()}, nil
}

// Summarize renders the message for a vote cast for color with the given
// tally.
func Summarize(color string, tally vote.Tally) string {
	return fmt.Sprintf("Vote cast for '%s'. Tally: %s. Winner: %s", color, tally,
		Winner(tally))
}

// Invoke is the JSON boundary of the contract. payload must be a
// {"voter_id", "color"} object and the result is a {"msg"} object.
func Invoke(ctx context.Context, store *vote.Store, payload []byte) ([]byte, error) {
	input, err := DecodeInput(payload)
	if err != nil {
		return nil, err
	}

	response, err := Cast(ctx, store, *input)
	if err != nil {
		return nil, err
	}

	return EncodeResponse(response)
}

// DecodeInput parses a cast_and_tally payload.
func DecodeInput(payload []byte) (*CastAndTally, error) {
	var input CastAndTally
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, NewError(InvalidInput, fmt.Sprintf("Invalid input : %s", err))
	}

	return &input, nil
}

// EncodeResponse serializes a response for transport.
func EncodeResponse(response *Response) ([]byte, error) {
	b, err := marshal(response)
	if err != nil {
		return nil, NewError(SerializationFailure, fmt.Sprintf("Serialization error: %s", err))
	}

	return b, nil
}

// Winner returns the winning color of tally, or NoVotesYet when it is empty.
func Winner(tally vote.Tally) string {
	winner, ok := tally.Winner()
	if !ok {
		return NoVotesYet
	}

	return winner
}
