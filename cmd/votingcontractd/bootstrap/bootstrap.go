package bootstrap

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/tokenized/voting-contract/internal/broadcaster"
	"github.com/tokenized/voting-contract/internal/contract"
	"github.com/tokenized/voting-contract/internal/platform/config"
	"github.com/tokenized/voting-contract/internal/platform/node"
	"github.com/tokenized/voting-contract/internal/platform/scheduler"
	"github.com/tokenized/voting-contract/internal/vote"

	"github.com/tokenized/pkg/logger"
)

func NewContextWithDevelopmentLogger() context.Context {
	ctx := context.Background()

	logPath := os.Getenv("LOG_FILE_PATH")
	ctx = node.ContextWithFormat(ctx, strings.ToUpper(os.Getenv("DEVELOPMENT")) == "TRUE",
		os.Getenv("LOG_FORMAT"), logPath)

	return ctx
}

func NewConfigFromEnv(ctx context.Context) *config.Config {
	cfg, err := config.Environment()
	if err != nil {
		logger.Fatal(ctx, "Parsing Config : %s", err)
	}

	// Mask sensitive values
	cfgSafe := config.SafeConfig(*cfg)
	cfgJSON, err := json.MarshalIndent(cfgSafe, "", "    ")
	if err != nil {
		logger.Fatal(ctx, "Marshalling Config to JSON : %s", err)
	}
	logger.Info(ctx, "Config : %v", string(cfgJSON))

	return cfg
}

func NewNodeConfig(ctx context.Context, cfg *config.Config) *node.Config {
	return &node.Config{
		ContractName: cfg.Contract.Name,
		Version:      cfg.Contract.Version,
	}
}

// NewAMQPBroadcaster connects the vote queue. It returns nil when no queue is
// configured.
func NewAMQPBroadcaster(ctx context.Context, cfg *config.Config) *broadcaster.AMQP {
	if len(cfg.AMQP.URL) == 0 {
		logger.Info(ctx, "No vote queue configured")
		return nil
	}

	conn, err := broadcaster.DialAMQP(ctx, broadcaster.AMQPConfig{
		URL:        cfg.AMQP.URL,
		Queue:      cfg.AMQP.Queue,
		MaxRetries: cfg.AMQP.MaxRetries,
		RetryDelay: cfg.AMQP.RetryDelay,
	})
	if err != nil {
		logger.Fatal(ctx, "Connect vote queue : %s", err)
	}

	queue, err := broadcaster.NewAMQP(conn, cfg.AMQP.Queue)
	if err != nil {
		logger.Fatal(ctx, "Open vote queue : %s", err)
	}

	return queue
}

// NewScheduler returns a scheduler with the periodic tally report. The
// report is disabled when the interval is zero.
func NewScheduler(ctx context.Context, cfg *config.Config, store *vote.Store) *scheduler.Scheduler {
	sch := scheduler.New(time.Second)

	if cfg.Contract.ReportInterval <= 0 {
		logger.Info(ctx, "Tally report disabled")
		return sch
	}

	sch.ScheduleJob(scheduler.NewPeriodicProcess("tally_report", func(ctx context.Context) {
		ReportTally(ctx, store)
	}, cfg.Contract.ReportInterval))

	return sch
}

// ReportTally logs the current tally and winner.
func ReportTally(ctx context.Context, store *vote.Store) {
	tally := store.Tally()
	logger.Info(ctx, "Tally : %s : Winner : %s : %d votes", tally, contract.Winner(tally),
		tally.Total())
}
