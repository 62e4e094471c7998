package tests

import (
	"context"
	"os"
	"time"

	"github.com/tokenized/voting-contract/internal/platform/node"
	"github.com/tokenized/voting-contract/internal/vote"

	"github.com/tokenized/pkg/logger"
)

// Test holds the fixtures shared by contract and host tests.
type Test struct {
	logConfig  *logger.Config
	NodeConfig node.Config
	Store      *vote.Store
}

// New returns a Test with a fresh, empty vote store.
func New() *Test {
	test := &Test{}
	test.Setup()
	return test
}

func (test *Test) Setup() {
	test.logConfig = logger.NewDevelopmentConfig()
	test.logConfig.Main.SetWriter(os.Stdout)
	test.logConfig.Main.Format |= logger.IncludeSystem | logger.IncludeMicro
	test.logConfig.EnableSubSystem(node.SubSystem)

	test.NodeConfig = node.Config{
		ContractName: "VotingTest",
		Version:      "TestVersion",
	}

	test.Store = vote.NewStore()
}

// Context returns a context carrying the test log config and the values of
// a contract call with the given trace id.
func (test *Test) Context(ctx context.Context, traceID string) context.Context {
	v := node.Values{
		TraceID: traceID,
		Method:  "test",
		Now:     time.Now(),
	}
	ctx = context.WithValue(ctx, node.KeyValues, &v)
	ctx = logger.ContextWithLogConfig(ctx, test.logConfig)

	return node.ContextWithLogTrace(ctx, traceID)
}

// Cast appends votes directly to the store, bypassing validation.
func (test *Test) Cast(votes ...vote.Vote) {
	for _, v := range votes {
		test.Store.Append(v)
	}
}
