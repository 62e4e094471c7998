package node

import (
	"context"
	"strings"

	"github.com/tokenized/pkg/logger"
)

// SubSystem is the log sub system used by the contract host.
const SubSystem = "VotingContract"

// ContextWithLogger returns a context with a logger configured for either
// development or production. Format "TEXT" selects plain text output,
// anything else is JSON. If logFileName is not empty the log is also
// written to that file.
func ContextWithLogger(ctx context.Context, isDevelopment, isText bool,
	logFileName string) context.Context {

	var logConfig *logger.Config
	if isText {
		logConfig = logger.NewDevelopmentTextConfig()
	} else {
		logConfig = logger.NewDevelopmentConfig()
	}

	if isDevelopment {
		logConfig.Main.Format |= logger.IncludeSystem | logger.IncludeMicro
	}

	if len(logFileName) > 0 {
		logConfig.Main.AddFile(logFileName)
	}

	logConfig.EnableSubSystem(SubSystem)

	return logger.ContextWithLogConfig(ctx, logConfig)
}

// ContextWithFormat is ContextWithLogger with the format given by name.
func ContextWithFormat(ctx context.Context, isDevelopment bool, format,
	logFileName string) context.Context {

	return ContextWithLogger(ctx, isDevelopment, strings.ToUpper(format) == "TEXT",
		logFileName)
}

func ContextWithNoLogger(ctx context.Context) context.Context {
	return logger.ContextWithNoLogger(ctx)
}

func ContextWithLogTrace(ctx context.Context, trace string) context.Context {
	return logger.ContextWithLogTrace(ctx, trace)
}
