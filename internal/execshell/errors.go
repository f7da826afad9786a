package execshell

import (
	"errors"
	"fmt"

	"github.com/temirov/shellexec/internal/platform"
)

const (
	invalidWorkingDirectoryMessageConstant = "execution directory does not exist"
	ioFailureMessageConstant               = "process input/output failure"
	interruptedMessageConstant             = "command execution interrupted"
	loggerNotConfiguredMessageConstant     = "logger not configured"
	emptyArgumentsMessageConstant          = "process arguments must not be empty"
	errorKindWrapTemplateConstant          = "%w: %w"
	commandExecutionErrorTemplateConstant  = "%s failed: %v"
	unknownCauseMessageConstant            = "unknown error"
)

// Error kinds raised by the executor and launcher.
var (
	// ErrUnsupportedPlatform indicates the host does not map to a runnable shell configuration.
	ErrUnsupportedPlatform = platform.ErrUnsupportedPlatform
	// ErrInvalidWorkingDirectory indicates the resolved execution directory does not exist.
	ErrInvalidWorkingDirectory = errors.New(invalidWorkingDirectoryMessageConstant)
	// ErrIOFailure indicates process creation or stream I/O failed.
	ErrIOFailure = errors.New(ioFailureMessageConstant)
	// ErrInterrupted indicates the execution context was cancelled or timed out while the command ran.
	ErrInterrupted = errors.New(interruptedMessageConstant)
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrEmptyArguments indicates a descriptor without an executable.
	ErrEmptyArguments = errors.New(emptyArgumentsMessageConstant)
)

// CommandExecutionError reports a failure after a command was prepared.
type CommandExecutionError struct {
	Descriptor ProcessDescriptor
	Cause      error
}

// Error describes the failing command and its cause.
func (executionError CommandExecutionError) Error() string {
	if executionError.Cause == nil {
		return fmt.Sprintf(commandExecutionErrorTemplateConstant, executionError.Descriptor.Label(), unknownCauseMessageConstant)
	}
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, executionError.Descriptor.Label(), executionError.Cause)
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

func wrapErrorKind(kind error, cause error) error {
	return fmt.Errorf(errorKindWrapTemplateConstant, kind, cause)
}
