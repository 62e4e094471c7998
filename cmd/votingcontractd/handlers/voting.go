package handlers

import (
	"context"

	"github.com/tokenized/voting-contract/internal/broadcaster"
	"github.com/tokenized/voting-contract/internal/contract"
	"github.com/tokenized/voting-contract/internal/vote"

	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

// Voting holds the contract methods of a deployment. Store is the only vote
// log of the deployment.
type Voting struct {
	Store       *vote.Store
	Broadcaster broadcaster.Broadcaster
}

// CastAndTally handles a cast_and_tally call and announces the new tally.
func (v *Voting) CastAndTally(ctx context.Context, payload []byte) ([]byte, error) {
	ctx, span := trace.StartSpan(ctx, "handlers.Voting.CastAndTally")
	defer span.End()

	input, err := contract.DecodeInput(payload)
	if err != nil {
		return nil, err
	}

	result, err := contract.Execute(ctx, v.Store, *input)
	if err != nil {
		return nil, err
	}

	if v.Broadcaster != nil {
		if err := v.Broadcaster.Announce(ctx, broadcaster.NewUpdate(result)); err != nil {
			logger.Warn(ctx, "Failed to announce vote : %s", err)
		}
	}

	return contract.EncodeResponse(&contract.Response{Msg: result.Message()})
}
