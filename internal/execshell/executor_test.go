package execshell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/shellexec/internal/execshell"
	"github.com/temirov/shellexec/internal/platform"
)

const (
	testLinuxNameConstant          = "Linux"
	testWindowsNameConstant        = "Windows 10"
	testUnknownNameConstant        = "Unknown OS"
	testHelloCommandConstant       = "echo Hello, World!"
	testHelloOutputConstant        = "Hello, World!"
	testMissingDirectoryConstant   = "does-not-exist"
	testLoggerCaseNameConstant     = "logger_validation"
	testSuccessfulCaseNameConstant = "successful_initialization"
)

type scriptedProcess struct {
	output    io.Reader
	exitCode  int
	waitError error
	killed    bool
	closed    bool
	waited    bool
}

func (process *scriptedProcess) Output() io.Reader {
	return process.output
}

func (process *scriptedProcess) Wait() (int, error) {
	process.waited = true
	return process.exitCode, process.waitError
}

func (process *scriptedProcess) Kill() error {
	process.killed = true
	return nil
}

func (process *scriptedProcess) Close() error {
	process.closed = true
	return nil
}

type recordingProcessStarter struct {
	process             *scriptedProcess
	startError          error
	recordedDescriptors []execshell.ProcessDescriptor
	recordedContexts    []context.Context
}

func (starter *recordingProcessStarter) Start(executionContext context.Context, descriptor execshell.ProcessDescriptor) (execshell.RunningProcess, error) {
	starter.recordedDescriptors = append(starter.recordedDescriptors, descriptor)
	starter.recordedContexts = append(starter.recordedContexts, executionContext)
	if starter.startError != nil {
		return nil, starter.startError
	}
	return starter.process, nil
}

type recordingEventObserver struct {
	started   []execshell.ProcessDescriptor
	completed []execshell.ExecutionResult
	failures  []error
}

func (eventObserver *recordingEventObserver) CommandStarted(descriptor execshell.ProcessDescriptor) {
	eventObserver.started = append(eventObserver.started, descriptor)
}

func (eventObserver *recordingEventObserver) CommandCompleted(_ execshell.ProcessDescriptor, result execshell.ExecutionResult) {
	eventObserver.completed = append(eventObserver.completed, result)
}

func (eventObserver *recordingEventObserver) CommandExecutionFailed(_ execshell.ProcessDescriptor, failure error) {
	eventObserver.failures = append(eventObserver.failures, failure)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

type failingReader struct {
	prefix io.Reader
}

func (reader *failingReader) Read(buffer []byte) (int, error) {
	if reader.prefix != nil {
		readCount, readError := reader.prefix.Read(buffer)
		if readError == nil {
			return readCount, nil
		}
		reader.prefix = nil
		if readCount > 0 {
			return readCount, nil
		}
	}
	return 0, errors.New("stream broken")
}

func newScriptedExecutor(testInstance *testing.T, environment platform.Environment, starter execshell.ProcessStarter, eventObserver execshell.CommandEventObserver) *execshell.CommandLineExecutor {
	testInstance.Helper()
	executor, creationError := execshell.NewCommandLineExecutor(zap.NewNop(), execshell.Dependencies{
		Environment:    environment,
		ProcessStarter: starter,
		EventObserver:  eventObserver,
	})
	require.NoError(testInstance, creationError)
	return executor
}

func TestCommandLineExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerCaseNameConstant,
			logger:      nil,
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:          testSuccessfulCaseNameConstant,
			logger:        zap.NewNop(),
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewCommandLineExecutor(testCase.logger, execshell.Dependencies{})
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
				return
			}
			require.ErrorIs(testInstance, creationError, testCase.expectError)
			require.Nil(testInstance, executor)
		})
	}
}

func TestExecuteCapturesAndMirrorsOutput(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader(testHelloOutputConstant + "\n\nsecond line")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	var sink bytes.Buffer
	output, executionError := executor.Execute(context.Background(), workingDirectory, testHelloCommandConstant, &sink)
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, "Hello, World!\n\nsecond line\n", output)
	require.Equal(testInstance, output, sink.String())

	require.Len(testInstance, starter.recordedDescriptors, 1)
	require.Equal(testInstance, execshell.ProcessDescriptor{
		WorkingDirectory: workingDirectory,
		Arguments:        []string{"/bin/bash", "-c", testHelloCommandConstant},
	}, starter.recordedDescriptors[0])
	require.True(testInstance, starter.process.closed)
	require.True(testInstance, starter.process.waited)
}

func TestExecuteAppendsExitCodeTrailerOnlyToResult(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{
		output:   strings.NewReader("bash: invalidcommand: command not found\n"),
		exitCode: 127,
	}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	var sink bytes.Buffer
	output, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "invalidcommand", &sink)
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, "bash: invalidcommand: command not found\nExit code: 127\n", output)
	require.Equal(testInstance, "bash: invalidcommand: command not found\n", sink.String())
	require.NotContains(testInstance, sink.String(), "Exit code")
}

func TestExecuteWithoutAdditionalOutput(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("X\n")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	output, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "echo X", nil)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "X\n", output)
}

func TestExecuteUsesWindowsShellAndLineSeparator(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("Line1\r\nLine2\r\n"), exitCode: 1}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testWindowsNameConstant}, starter, nil)

	var sink bytes.Buffer
	output, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "echo Line1 && echo Line2", &sink)
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, "Line1\r\nLine2\r\nExit code: 1\r\n", output)
	require.Equal(testInstance, "Line1\r\nLine2\r\n", sink.String())
	require.Equal(testInstance, []string{"cmd.exe", "/c", "echo Line1 && echo Line2"}, starter.recordedDescriptors[0].Arguments)
}

func TestExecuteRejectsUnsupportedPlatformBeforeStarting(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("")}}
	eventObserver := &recordingEventObserver{}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testUnknownNameConstant}, starter, eventObserver)

	output, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "echo X", nil)
	require.ErrorIs(testInstance, executionError, execshell.ErrUnsupportedPlatform)
	require.Empty(testInstance, output)
	require.Empty(testInstance, starter.recordedDescriptors)
	require.Empty(testInstance, eventObserver.started)
}

func TestExecuteRejectsMissingWorkingDirectoryBeforeStarting(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	missingDirectory := filepath.Join(testInstance.TempDir(), testMissingDirectoryConstant)
	_, executionError := executor.Execute(context.Background(), missingDirectory, "echo X", nil)
	require.ErrorIs(testInstance, executionError, execshell.ErrInvalidWorkingDirectory)
	require.Empty(testInstance, starter.recordedDescriptors)
}

func TestExecuteExpandsHomeDirectoryShorthand(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant, Home: homeDirectory}, starter, nil)

	_, executionError := executor.Execute(context.Background(), "~", "pwd", nil)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, homeDirectory, starter.recordedDescriptors[0].WorkingDirectory)
}

func TestExecuteWithShellBypassesDetection(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("ok\n")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testUnknownNameConstant}, starter, nil)

	shell := platform.ShellSpecification{ExecutablePath: "/bin/sh", InvocationFlag: "-c"}
	output, executionError := executor.ExecuteWithShell(context.Background(), shell, testInstance.TempDir(), "echo ok", nil)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "ok\n", output)
	require.Equal(testInstance, []string{"/bin/sh", "-c", "echo ok"}, starter.recordedDescriptors[0].Arguments)
}

func TestExecuteReportsStartFailureAsIOFailure(testInstance *testing.T) {
	startFailure := errors.New("exec format error")
	starter := &recordingProcessStarter{startError: startFailure}
	eventObserver := &recordingEventObserver{}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, eventObserver)

	_, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "echo X", nil)
	require.ErrorIs(testInstance, executionError, execshell.ErrIOFailure)
	require.ErrorIs(testInstance, executionError, startFailure)
	require.IsType(testInstance, execshell.CommandExecutionError{}, executionError)
	require.Len(testInstance, eventObserver.started, 1)
	require.Len(testInstance, eventObserver.failures, 1)
	require.Empty(testInstance, eventObserver.completed)
}

func TestExecuteReportsSinkFailureAndReleasesProcess(testInstance *testing.T) {
	process := &scriptedProcess{output: strings.NewReader("first\nsecond\n")}
	starter := &recordingProcessStarter{process: process}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	_, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "echo first", failingWriter{})
	require.ErrorIs(testInstance, executionError, execshell.ErrIOFailure)
	require.True(testInstance, process.killed)
	require.True(testInstance, process.waited)
	require.True(testInstance, process.closed)
}

func TestExecuteReportsReadFailureAfterMirroringPartialOutput(testInstance *testing.T) {
	process := &scriptedProcess{output: &failingReader{prefix: strings.NewReader("partial\n")}}
	starter := &recordingProcessStarter{process: process}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	var sink bytes.Buffer
	output, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "cat", &sink)
	require.ErrorIs(testInstance, executionError, execshell.ErrIOFailure)
	require.Empty(testInstance, output)
	require.Equal(testInstance, "partial\n", sink.String())
	require.True(testInstance, process.killed)
	require.True(testInstance, process.closed)
}

func TestExecuteReportsCancellationAsInterrupted(testInstance *testing.T) {
	process := &scriptedProcess{output: strings.NewReader(""), exitCode: -1}
	starter := &recordingProcessStarter{process: process}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, executionError := executor.Execute(cancelledContext, testInstance.TempDir(), "sleep 100", nil)
	require.ErrorIs(testInstance, executionError, execshell.ErrInterrupted)
	require.ErrorIs(testInstance, executionError, context.Canceled)
}

func TestExecuteReportsWaitFailureAsIOFailure(testInstance *testing.T) {
	waitFailure := errors.New("wait: no child processes")
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader(""), exitCode: -1, waitError: waitFailure}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	_, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "true", nil)
	require.ErrorIs(testInstance, executionError, execshell.ErrIOFailure)
	require.ErrorIs(testInstance, executionError, waitFailure)
}

func TestRunAppliesRequestTimeout(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	_, runError := executor.Run(context.Background(), execshell.ExecutionRequest{
		ExecutionPath: testInstance.TempDir(),
		Command:       "true",
		Timeout:       time.Minute,
	})
	require.NoError(testInstance, runError)

	_, hasDeadline := starter.recordedContexts[0].Deadline()
	require.True(testInstance, hasDeadline)
}

func TestRunAppliesDefaultTimeout(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("")}}
	executor, creationError := execshell.NewCommandLineExecutor(zap.NewNop(), execshell.Dependencies{
		Environment:    platform.StaticEnvironment{Name: testLinuxNameConstant},
		ProcessStarter: starter,
		DefaultTimeout: time.Minute,
	})
	require.NoError(testInstance, creationError)

	_, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "true", nil)
	require.NoError(testInstance, executionError)

	_, hasDeadline := starter.recordedContexts[0].Deadline()
	require.True(testInstance, hasDeadline)
}

func TestRunWithoutTimeoutHasNoDeadline(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	_, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "true", nil)
	require.NoError(testInstance, executionError)

	_, hasDeadline := starter.recordedContexts[0].Deadline()
	require.False(testInstance, hasDeadline)
}

func TestRunReturnsStructuredResult(testInstance *testing.T) {
	eventObserver := &recordingEventObserver{}
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("done\n"), exitCode: 2}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, eventObserver)

	result, runError := executor.Run(context.Background(), execshell.ExecutionRequest{ExecutionPath: testInstance.TempDir(), Command: "exit 2"})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 2, result.ExitCode)
	require.Equal(testInstance, "done\nExit code: 2\n", result.Output)
	require.NotEmpty(testInstance, result.ExecutionID)
	require.Equal(testInstance, "exit 2", result.Descriptor.CommandString())

	require.Len(testInstance, eventObserver.started, 1)
	require.Equal(testInstance, []execshell.ExecutionResult{result}, eventObserver.completed)
}

func TestExecuteIsRepeatableForDeterministicOutput(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, &replayingProcessStarter{output: "X\n"}, nil)

	firstOutput, firstError := executor.Execute(context.Background(), workingDirectory, "echo X", nil)
	require.NoError(testInstance, firstError)
	secondOutput, secondError := executor.Execute(context.Background(), workingDirectory, "echo X", nil)
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, firstOutput, secondOutput)
}

type replayingProcessStarter struct {
	output string
}

func (starter *replayingProcessStarter) Start(context.Context, execshell.ProcessDescriptor) (execshell.RunningProcess, error) {
	return &scriptedProcess{output: strings.NewReader(starter.output)}, nil
}

func TestExecuteMirrorsEachLineBeforeReadingTheNext(testInstance *testing.T) {
	outputReader, outputWriter := io.Pipe()
	starter := &recordingProcessStarter{process: &scriptedProcess{output: outputReader}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	sink := &signallingWriter{received: make(chan string, 4)}
	mirroredBeforeSecondLine := make(chan bool, 1)

	go func() {
		_, _ = io.WriteString(outputWriter, "first\n")
		select {
		case <-sink.received:
			mirroredBeforeSecondLine <- true
		case <-time.After(5 * time.Second):
			mirroredBeforeSecondLine <- false
		}
		_, _ = io.WriteString(outputWriter, "second\n")
		_ = outputWriter.Close()
	}()

	output, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "stream", sink)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "first\nsecond\n", output)
	require.True(testInstance, <-mirroredBeforeSecondLine)
}

type signallingWriter struct {
	buffer   bytes.Buffer
	received chan string
}

func (writer *signallingWriter) Write(data []byte) (int, error) {
	writer.buffer.Write(data)
	writer.received <- string(data)
	return len(data), nil
}

func TestExecuteLogsLifecycle(testInstance *testing.T) {
	testCases := []struct {
		name          string
		exitCode      int
		expectedLevel zapcore.Level
	}{
		{name: "success", exitCode: 0, expectedLevel: zapcore.InfoLevel},
		{name: "non_zero_exit", exitCode: 3, expectedLevel: zapcore.WarnLevel},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("ok\n"), exitCode: testCase.exitCode}}
			executor, creationError := execshell.NewCommandLineExecutor(zap.New(observerCore), execshell.Dependencies{
				Environment:    platform.StaticEnvironment{Name: testLinuxNameConstant},
				ProcessStarter: starter,
			})
			require.NoError(testInstance, creationError)

			_, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "echo ok", nil)
			require.NoError(testInstance, executionError)

			entries := observerLogs.All()
			require.Len(testInstance, entries, 2)
			require.Equal(testInstance, zapcore.DebugLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedLevel, entries[1].Level)
			require.Equal(testInstance, int64(testCase.exitCode), entries[1].ContextMap()["exit_code"])
			require.Equal(testInstance, "linux", entries[1].ContextMap()["platform"])
		})
	}
}

func TestExecuteLogsPreparationFailures(testInstance *testing.T) {
	observerCore, observerLogs := observer.New(zap.DebugLevel)
	executor, creationError := execshell.NewCommandLineExecutor(zap.New(observerCore), execshell.Dependencies{
		Environment:    platform.StaticEnvironment{Name: testUnknownNameConstant},
		ProcessStarter: &recordingProcessStarter{},
	})
	require.NoError(testInstance, creationError)

	_, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "echo X", nil)
	require.Error(testInstance, executionError)
	require.Len(testInstance, observerLogs.FilterLevelExact(zapcore.ErrorLevel).All(), 1)
}

func TestCommandList(testInstance *testing.T) {
	commands := []string{"echo", "Hello"}

	testCases := []struct {
		tag            platform.Tag
		expectedPrefix []string
	}{
		{tag: platform.TagWindows, expectedPrefix: []string{"cmd.exe", "/c"}},
		{tag: platform.TagMac, expectedPrefix: []string{"/bin/bash", "-c"}},
		{tag: platform.TagLinux, expectedPrefix: []string{"/bin/bash", "-c"}},
		{tag: platform.TagUnix, expectedPrefix: []string{"/bin/bash", "-c"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.tag.Name(), func(testInstance *testing.T) {
			commandList, listError := execshell.CommandList(commands, testCase.tag)
			require.NoError(testInstance, listError)
			require.Equal(testInstance, append(append([]string{}, testCase.expectedPrefix...), commands...), commandList)
		})
	}

	_, listError := execshell.CommandList(commands, platform.TagOther)
	require.ErrorIs(testInstance, listError, execshell.ErrUnsupportedPlatform)
}

func TestCommandExecutionErrorMessage(testInstance *testing.T) {
	executionError := execshell.CommandExecutionError{
		Descriptor: execshell.ProcessDescriptor{WorkingDirectory: "/tmp", Arguments: []string{"/bin/bash", "-c", "sleep 1"}},
		Cause:      errors.New("boom"),
	}
	require.Equal(testInstance, "sleep 1 (in /tmp) failed: boom", executionError.Error())
}

func TestExecuteTreatsCarriageReturnsAsLineTerminators(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("a\rb\r\nc\n\rd")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, nil)

	var sink bytes.Buffer
	output, executionError := executor.Execute(context.Background(), testInstance.TempDir(), "printf progress", &sink)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "a\nb\nc\n\nd\n", output)
	require.Equal(testInstance, output, sink.String())
}

func TestExecuteArguments(testInstance *testing.T) {
	testCases := []struct {
		name             string
		captureOutput    bool
		exitCode         int
		expectedOutput   string
		expectedExitCode int
	}{
		{
			name:           "captured_output",
			captureOutput:  true,
			expectedOutput: "first\r\nsecond",
		},
		{
			name:           "drained_output",
			captureOutput:  false,
			expectedOutput: "",
		},
		{
			name:             "non_zero_exit_without_trailer",
			captureOutput:    true,
			exitCode:         2,
			expectedOutput:   "first\r\nsecond",
			expectedExitCode: 2,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			process := &scriptedProcess{output: strings.NewReader("first\r\nsecond"), exitCode: testCase.exitCode}
			starter := &recordingProcessStarter{process: process}
			eventObserver := &recordingEventObserver{}
			executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant}, starter, eventObserver)

			output, executionError := executor.ExecuteArguments(context.Background(), testCase.captureOutput, "echo $0", "argument")
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, output)

			require.Len(testInstance, starter.recordedDescriptors, 1)
			require.Equal(testInstance, execshell.ProcessDescriptor{
				Arguments: []string{"/bin/bash", "-c", "echo $0", "argument"},
			}, starter.recordedDescriptors[0])
			require.True(testInstance, process.waited)
			require.True(testInstance, process.closed)

			require.Len(testInstance, eventObserver.completed, 1)
			require.Equal(testInstance, testCase.expectedExitCode, eventObserver.completed[0].ExitCode)
		})
	}
}

func TestExecuteArgumentsSkipsWorkingDirectoryValidation(testInstance *testing.T) {
	starter := &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("")}}
	executor := newScriptedExecutor(testInstance, platform.StaticEnvironment{Name: testLinuxNameConstant, HomeError: errors.New("no home")}, starter, nil)

	_, executionError := executor.ExecuteArguments(context.Background(), true, "true")
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, starter.recordedDescriptors[0].WorkingDirectory)
}

func TestExecuteArgumentsReportsFailures(testInstance *testing.T) {
	testCases := []struct {
		name          string
		environment   platform.StaticEnvironment
		starter       *recordingProcessStarter
		expectedError error
		expectStarted bool
	}{
		{
			name:          "unsupported_platform",
			environment:   platform.StaticEnvironment{Name: testUnknownNameConstant},
			starter:       &recordingProcessStarter{process: &scriptedProcess{output: strings.NewReader("")}},
			expectedError: execshell.ErrUnsupportedPlatform,
		},
		{
			name:          "start_failure",
			environment:   platform.StaticEnvironment{Name: testLinuxNameConstant},
			starter:       &recordingProcessStarter{startError: errors.New("exec format error")},
			expectedError: execshell.ErrIOFailure,
			expectStarted: true,
		},
		{
			name:          "read_failure",
			environment:   platform.StaticEnvironment{Name: testLinuxNameConstant},
			starter:       &recordingProcessStarter{process: &scriptedProcess{output: &failingReader{prefix: strings.NewReader("partial")}}},
			expectedError: execshell.ErrIOFailure,
			expectStarted: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := newScriptedExecutor(testInstance, testCase.environment, testCase.starter, nil)

			output, executionError := executor.ExecuteArguments(context.Background(), true, "cat")
			require.ErrorIs(testInstance, executionError, testCase.expectedError)
			require.Empty(testInstance, output)
			require.Equal(testInstance, testCase.expectStarted, len(testCase.starter.recordedDescriptors) == 1)
			if testCase.starter.process != nil && testCase.expectStarted {
				require.True(testInstance, testCase.starter.process.killed)
			}
		})
	}
}
