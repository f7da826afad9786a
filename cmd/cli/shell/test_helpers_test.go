package shell_test

import (
	"context"
	"io"
	"strings"

	"github.com/temirov/shellexec/internal/execshell"
)

type stubProcess struct {
	output   string
	exitCode int
}

type stubRunningProcess struct {
	reader   io.Reader
	exitCode int
}

func (process *stubRunningProcess) Output() io.Reader {
	return process.reader
}

func (process *stubRunningProcess) Wait() (int, error) {
	return process.exitCode, nil
}

func (process *stubRunningProcess) Kill() error {
	return nil
}

func (process *stubRunningProcess) Close() error {
	return nil
}

type stubProcessStarter struct {
	process     stubProcess
	descriptors []execshell.ProcessDescriptor
	deadlines   []bool
}

func (starter *stubProcessStarter) Start(executionContext context.Context, descriptor execshell.ProcessDescriptor) (execshell.RunningProcess, error) {
	starter.descriptors = append(starter.descriptors, descriptor)
	_, hasDeadline := executionContext.Deadline()
	starter.deadlines = append(starter.deadlines, hasDeadline)
	return &stubRunningProcess{reader: strings.NewReader(starter.process.output), exitCode: starter.process.exitCode}, nil
}
