package execshell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

const (
	unknownExitCodeConstant = -1
)

// ProcessStarter starts a child process described by a ProcessDescriptor.
type ProcessStarter interface {
	Start(executionContext context.Context, descriptor ProcessDescriptor) (RunningProcess, error)
}

// RunningProcess is a started child whose standard output and error share one stream.
type RunningProcess interface {
	// Output returns the merged output stream. It reaches EOF once every writer has exited.
	Output() io.Reader
	// Wait blocks until the process terminates and returns its exit code.
	Wait() (int, error)
	// Kill terminates the process immediately.
	Kill() error
	// Close releases the output stream.
	Close() error
}

// OSProcessStarter starts processes with os/exec.
type OSProcessStarter struct{}

// NewOSProcessStarter constructs a starter backed by os/exec.
func NewOSProcessStarter() *OSProcessStarter {
	return &OSProcessStarter{}
}

// Start launches the descriptor's argument vector in its working directory with
// standard output and standard error attached to a single pipe. Cancelling the
// context kills the process and closes the read end of the pipe.
func (starter *OSProcessStarter) Start(executionContext context.Context, descriptor ProcessDescriptor) (RunningProcess, error) {
	if len(descriptor.Arguments) == 0 {
		return nil, ErrEmptyArguments
	}

	outputReader, outputWriter, pipeError := os.Pipe()
	if pipeError != nil {
		return nil, pipeError
	}

	executable := exec.CommandContext(executionContext, descriptor.Arguments[0], descriptor.Arguments[1:]...)
	executable.Dir = descriptor.WorkingDirectory
	executable.Stdout = outputWriter
	executable.Stderr = outputWriter

	if startError := executable.Start(); startError != nil {
		_ = outputReader.Close()
		_ = outputWriter.Close()
		return nil, startError
	}

	// the child holds its own copy of the write end
	_ = outputWriter.Close()

	stopCancellationHook := context.AfterFunc(executionContext, func() {
		_ = outputReader.Close()
	})

	return &osProcess{
		executable:           executable,
		output:               outputReader,
		stopCancellationHook: stopCancellationHook,
	}, nil
}

type osProcess struct {
	executable           *exec.Cmd
	output               *os.File
	stopCancellationHook func() bool
}

func (process *osProcess) Output() io.Reader {
	return process.output
}

func (process *osProcess) Wait() (int, error) {
	waitError := process.executable.Wait()
	if waitError == nil {
		return 0, nil
	}

	exitError := &exec.ExitError{}
	if errors.As(waitError, &exitError) {
		return exitCodeFromError(exitError), nil
	}
	return unknownExitCodeConstant, waitError
}

func (process *osProcess) Kill() error {
	if process.executable.Process == nil {
		return nil
	}
	killError := process.executable.Process.Kill()
	if errors.Is(killError, os.ErrProcessDone) {
		return nil
	}
	return killError
}

func (process *osProcess) Close() error {
	process.stopCancellationHook()
	closeError := process.output.Close()
	if errors.Is(closeError, os.ErrClosed) {
		return nil
	}
	return closeError
}
