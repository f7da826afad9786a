package ui

import (
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/shellexec/internal/execshell"
)

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver by logging command start notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(descriptor execshell.ProcessDescriptor) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(descriptor))
}

// CommandCompleted implements execshell.CommandEventObserver by logging command completion notifications.
// A non-zero exit is reported as a warning carrying the last line the command printed.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(descriptor execshell.ProcessDescriptor, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(descriptor))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(descriptor, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by logging unexpected execution failures.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(descriptor execshell.ProcessDescriptor, failure error) {
	if eventLogger == nil {
		return
	}
	var executionError execshell.CommandExecutionError
	if errors.As(failure, &executionError) {
		failure = executionError.Cause
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(descriptor, failure))
}
