package execshell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/shellexec/internal/platform"
	"github.com/temirov/shellexec/internal/utils"
)

const (
	exitCodeTrailerTemplateConstant         = "Exit code: %d"
	lineFeedConstant                        = '\n'
	carriageReturnConstant                  = '\r'
	commandStartingMessageConstant          = "command starting"
	commandCompletedMessageConstant         = "command completed"
	commandNonZeroExitMessageConstant       = "command exited with non-zero status"
	commandExecutionFailedMessageConstant   = "command execution failed"
	commandPreparationFailedMessageConstant = "command preparation failed"
	logFieldExecutionIdentifierConstant     = "execution_id"
	logFieldPlatformConstant                = "platform"
	logFieldShellConstant                   = "shell"
	logFieldExecutionPathConstant           = "execution_path"
	logFieldWorkingDirectoryConstant        = "working_directory"
	logFieldCommandConstant                 = "command"
	logFieldExitCodeConstant                = "exit_code"
	logFieldDurationConstant                = "duration"
	logFieldTimeoutConstant                 = "timeout"
	logFieldMirroredConstant                = "mirrored"
	logFieldArgumentsConstant               = "arguments"
	logFieldCapturedConstant                = "captured"
	commandArgumentSeparatorConstant        = " "
)

// ExecutionRequest describes one command execution.
type ExecutionRequest struct {
	// ExecutionPath is the working directory; a leading "~" is expanded to the home directory.
	ExecutionPath string
	// Command is the string handed to the shell.
	Command string
	// AdditionalOutput, when set, receives every output line as soon as it is read.
	AdditionalOutput io.Writer
	// Timeout bounds the execution. Zero falls back to the executor default; a zero
	// default waits indefinitely.
	Timeout time.Duration
	// Shell overrides platform detection when set.
	Shell *platform.ShellSpecification
}

// ExecutionResult captures a finished execution.
type ExecutionResult struct {
	ExecutionID string
	Descriptor  ProcessDescriptor
	Output      string
	ExitCode    int
	Duration    time.Duration
}

// Dependencies enumerates optional collaborators of CommandLineExecutor.
type Dependencies struct {
	Environment    platform.Environment
	ProcessStarter ProcessStarter
	EventObserver  CommandEventObserver
	DefaultTimeout time.Duration
}

// CommandLineExecutor runs shell command strings on the detected platform.
type CommandLineExecutor struct {
	logger         *zap.Logger
	detector       *platform.Detector
	launcher       *ProcessLauncher
	processStarter ProcessStarter
	eventObserver  CommandEventObserver
	defaultTimeout time.Duration
}

// NewCommandLineExecutor constructs an executor. Missing dependencies default to the
// host environment, os/exec, and a no-op observer.
func NewCommandLineExecutor(logger *zap.Logger, dependencies Dependencies) (*CommandLineExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}

	environment := dependencies.Environment
	if environment == nil {
		environment = platform.NewHostEnvironment()
	}

	detector, detectorError := platform.NewDetector(environment)
	if detectorError != nil {
		return nil, detectorError
	}

	processStarter := dependencies.ProcessStarter
	if processStarter == nil {
		processStarter = NewOSProcessStarter()
	}

	eventObserver := dependencies.EventObserver
	if eventObserver == nil {
		eventObserver = noopCommandEventObserver{}
	}

	return &CommandLineExecutor{
		logger:         logger,
		detector:       detector,
		launcher:       NewProcessLauncher(environment),
		processStarter: processStarter,
		eventObserver:  eventObserver,
		defaultTimeout: dependencies.DefaultTimeout,
	}, nil
}

// Execute runs command in executionPath with the platform shell and returns the
// captured output. Each line is terminated by the platform line separator and,
// when additionalOutput is non-nil, written to it as soon as it is read. A
// non-zero exit appends "Exit code: N" to the returned text only.
func (executor *CommandLineExecutor) Execute(executionContext context.Context, executionPath string, command string, additionalOutput io.Writer) (string, error) {
	result, runError := executor.Run(executionContext, ExecutionRequest{
		ExecutionPath:    executionPath,
		Command:          command,
		AdditionalOutput: additionalOutput,
	})
	if runError != nil {
		return "", runError
	}
	return result.Output, nil
}

// ExecuteWithShell behaves like Execute but uses the supplied shell instead of the detected one.
func (executor *CommandLineExecutor) ExecuteWithShell(executionContext context.Context, shell platform.ShellSpecification, executionPath string, command string, additionalOutput io.Writer) (string, error) {
	result, runError := executor.Run(executionContext, ExecutionRequest{
		ExecutionPath:    executionPath,
		Command:          command,
		AdditionalOutput: additionalOutput,
		Shell:            &shell,
	})
	if runError != nil {
		return "", runError
	}
	return result.Output, nil
}

// Run executes the request and returns the structured result.
func (executor *CommandLineExecutor) Run(executionContext context.Context, request ExecutionRequest) (ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	executionIdentifier := uuid.NewString()
	tag := executor.detector.Detect()
	requestLogger := executor.logger.With(
		zap.String(logFieldExecutionIdentifierConstant, executionIdentifier),
		zap.String(logFieldPlatformConstant, tag.Name()),
	)

	shell, shellError := executor.resolveShell(tag, request.Shell)
	if shellError != nil {
		requestLogger.Error(commandPreparationFailedMessageConstant, zap.String(logFieldCommandConstant, request.Command), zap.Error(shellError))
		return ExecutionResult{}, shellError
	}

	descriptor, preparationError := executor.launcher.Prepare(shell, request.ExecutionPath, request.Command)
	if preparationError != nil {
		requestLogger.Error(
			commandPreparationFailedMessageConstant,
			zap.String(logFieldExecutionPathConstant, request.ExecutionPath),
			zap.String(logFieldCommandConstant, request.Command),
			zap.Error(preparationError),
		)
		return ExecutionResult{}, preparationError
	}

	timeout := request.Timeout
	if timeout <= 0 {
		timeout = executor.defaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, timeout)
		defer cancel()
	}

	executor.eventObserver.CommandStarted(descriptor)
	requestLogger.Debug(
		commandStartingMessageConstant,
		zap.String(logFieldShellConstant, shell.ExecutablePath),
		zap.String(logFieldWorkingDirectoryConstant, descriptor.WorkingDirectory),
		zap.String(logFieldCommandConstant, request.Command),
		zap.Duration(logFieldTimeoutConstant, timeout),
		zap.Bool(logFieldMirroredConstant, request.AdditionalOutput != nil),
	)

	startTime := time.Now()
	output, exitCode, processError := executor.runProcess(executionContext, descriptor, request.AdditionalOutput, tag.LineSeparator())
	return executor.completeExecution(requestLogger, executionIdentifier, descriptor, request.Command, time.Since(startTime), output, exitCode, processError)
}

// ExecuteArguments runs the platform shell prefix followed by arguments in the
// current directory without validating a working directory. The merged output is
// returned unmodified when captureOutput is set and drained otherwise. The exit
// status is logged and observed but not appended to the output.
func (executor *CommandLineExecutor) ExecuteArguments(executionContext context.Context, captureOutput bool, arguments ...string) (string, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	executionIdentifier := uuid.NewString()
	tag := executor.detector.Detect()
	requestLogger := executor.logger.With(
		zap.String(logFieldExecutionIdentifierConstant, executionIdentifier),
		zap.String(logFieldPlatformConstant, tag.Name()),
	)
	commandText := strings.Join(arguments, commandArgumentSeparatorConstant)

	commandList, listError := CommandList(arguments, tag)
	if listError != nil {
		requestLogger.Error(commandPreparationFailedMessageConstant, zap.String(logFieldCommandConstant, commandText), zap.Error(listError))
		return "", listError
	}
	descriptor := ProcessDescriptor{Arguments: commandList}

	if executor.defaultTimeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, executor.defaultTimeout)
		defer cancel()
	}

	executor.eventObserver.CommandStarted(descriptor)
	requestLogger.Debug(
		commandStartingMessageConstant,
		zap.Strings(logFieldArgumentsConstant, commandList),
		zap.Duration(logFieldTimeoutConstant, executor.defaultTimeout),
		zap.Bool(logFieldCapturedConstant, captureOutput),
	)

	startTime := time.Now()
	output, exitCode, processError := executor.collectProcessOutput(executionContext, descriptor, captureOutput)
	result, executionError := executor.completeExecution(requestLogger, executionIdentifier, descriptor, commandText, time.Since(startTime), output, exitCode, processError)
	if executionError != nil {
		return "", executionError
	}
	return result.Output, nil
}

func (executor *CommandLineExecutor) completeExecution(requestLogger *zap.Logger, executionIdentifier string, descriptor ProcessDescriptor, command string, duration time.Duration, output string, exitCode int, processError error) (ExecutionResult, error) {
	if processError != nil {
		failure := CommandExecutionError{Descriptor: descriptor, Cause: processError}
		executor.eventObserver.CommandExecutionFailed(descriptor, failure)
		requestLogger.Error(
			commandExecutionFailedMessageConstant,
			zap.String(logFieldCommandConstant, command),
			zap.Duration(logFieldDurationConstant, duration),
			zap.Error(processError),
		)
		return ExecutionResult{}, failure
	}

	result := ExecutionResult{
		ExecutionID: executionIdentifier,
		Descriptor:  descriptor,
		Output:      output,
		ExitCode:    exitCode,
		Duration:    duration,
	}
	executor.eventObserver.CommandCompleted(descriptor, result)

	completionFields := []zap.Field{
		zap.String(logFieldCommandConstant, command),
		zap.Int(logFieldExitCodeConstant, exitCode),
		zap.Duration(logFieldDurationConstant, duration),
	}
	if exitCode != 0 {
		requestLogger.Warn(commandNonZeroExitMessageConstant, completionFields...)
	} else {
		requestLogger.Info(commandCompletedMessageConstant, completionFields...)
	}

	return result, nil
}

func (executor *CommandLineExecutor) resolveShell(tag platform.Tag, override *platform.ShellSpecification) (platform.ShellSpecification, error) {
	if override != nil {
		return *override, nil
	}
	return tag.Shell()
}

func (executor *CommandLineExecutor) runProcess(executionContext context.Context, descriptor ProcessDescriptor, additionalOutput io.Writer, lineSeparator string) (string, int, error) {
	process, startError := executor.processStarter.Start(executionContext, descriptor)
	if startError != nil {
		return "", 0, classifyFailure(executionContext, startError)
	}
	defer func() {
		_ = process.Close()
	}()

	var accumulator strings.Builder
	mirror := utils.NewFlushingWriter(additionalOutput)

	if copyError := copyOutputLines(process.Output(), &accumulator, mirror, lineSeparator); copyError != nil {
		_ = process.Kill()
		_, _ = process.Wait()
		return "", 0, classifyFailure(executionContext, copyError)
	}

	exitCode, waitError := process.Wait()
	if contextError := executionContext.Err(); contextError != nil && (waitError != nil || exitCode != 0) {
		return "", 0, wrapErrorKind(ErrInterrupted, contextError)
	}
	if waitError != nil {
		return "", 0, wrapErrorKind(ErrIOFailure, waitError)
	}

	if exitCode != 0 {
		accumulator.WriteString(fmt.Sprintf(exitCodeTrailerTemplateConstant, exitCode))
		accumulator.WriteString(lineSeparator)
	}

	return accumulator.String(), exitCode, nil
}

func (executor *CommandLineExecutor) collectProcessOutput(executionContext context.Context, descriptor ProcessDescriptor, captureOutput bool) (string, int, error) {
	process, startError := executor.processStarter.Start(executionContext, descriptor)
	if startError != nil {
		return "", 0, classifyFailure(executionContext, startError)
	}
	defer func() {
		_ = process.Close()
	}()

	var accumulator strings.Builder
	destination := io.Discard
	if captureOutput {
		destination = &accumulator
	}

	if _, copyError := io.Copy(destination, process.Output()); copyError != nil {
		_ = process.Kill()
		_, _ = process.Wait()
		return "", 0, classifyFailure(executionContext, copyError)
	}

	exitCode, waitError := process.Wait()
	if contextError := executionContext.Err(); contextError != nil && (waitError != nil || exitCode != 0) {
		return "", 0, wrapErrorKind(ErrInterrupted, contextError)
	}
	if waitError != nil {
		return "", 0, wrapErrorKind(ErrIOFailure, waitError)
	}

	return accumulator.String(), exitCode, nil
}

func classifyFailure(executionContext context.Context, failure error) error {
	if contextError := executionContext.Err(); contextError != nil {
		return wrapErrorKind(ErrInterrupted, contextError)
	}
	return wrapErrorKind(ErrIOFailure, failure)
}

// copyOutputLines reads source line by line, re-terminating each line with
// lineSeparator. A line ends at "\n", "\r", or "\r\n". The mirror receives each
// line before the next byte is read.
func copyOutputLines(source io.Reader, accumulator *strings.Builder, mirror io.Writer, lineSeparator string) error {
	reader := bufio.NewReader(source)
	var pendingLine strings.Builder
	skipLineFeed := false

	emitLine := func() error {
		line := pendingLine.String() + lineSeparator
		pendingLine.Reset()
		accumulator.WriteString(line)
		if mirror == nil {
			return nil
		}
		_, writeError := io.WriteString(mirror, line)
		return writeError
	}

	for {
		character, readError := reader.ReadByte()
		if readError != nil {
			if pendingLine.Len() > 0 {
				if emitError := emitLine(); emitError != nil {
					return emitError
				}
			}
			if errors.Is(readError, io.EOF) {
				return nil
			}
			return readError
		}

		if skipLineFeed {
			skipLineFeed = false
			if character == lineFeedConstant {
				continue
			}
		}

		switch character {
		case lineFeedConstant:
			if emitError := emitLine(); emitError != nil {
				return emitError
			}
		case carriageReturnConstant:
			if emitError := emitLine(); emitError != nil {
				return emitError
			}
			skipLineFeed = true
		default:
			pendingLine.WriteByte(character)
		}
	}
}

// CommandList returns the shell prefix for tag followed by commands in order.
func CommandList(commands []string, tag platform.Tag) ([]string, error) {
	shell, shellError := tag.Shell()
	if shellError != nil {
		return nil, shellError
	}
	commandList := make([]string, 0, len(commands)+2)
	commandList = append(commandList, shell.Prefix()...)
	commandList = append(commandList, commands...)
	return commandList, nil
}
