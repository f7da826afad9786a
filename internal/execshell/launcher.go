package execshell

import (
	"fmt"
	"os"
	"strings"

	"github.com/temirov/shellexec/internal/platform"
	pathutils "github.com/temirov/shellexec/internal/utils/path"
)

const (
	notDirectoryMessageTemplateConstant   = "%s is not a directory"
	labelWorkingDirectoryTemplateConstant = "%s (in %s)"
	labelArgumentSeparatorConstant        = " "
	shellArgumentCountConstant            = 3
)

// ProcessDescriptor is a validated working directory and argument vector ready to start.
type ProcessDescriptor struct {
	WorkingDirectory string
	Arguments        []string
}

// CommandString returns the command handed to the shell, or the joined argument
// vector when the descriptor was not built from a shell specification.
func (descriptor ProcessDescriptor) CommandString() string {
	if len(descriptor.Arguments) == shellArgumentCountConstant {
		return descriptor.Arguments[shellArgumentCountConstant-1]
	}
	return strings.Join(descriptor.Arguments, labelArgumentSeparatorConstant)
}

// Label returns a human-readable identifier for the descriptor.
func (descriptor ProcessDescriptor) Label() string {
	commandString := descriptor.CommandString()
	if len(strings.TrimSpace(descriptor.WorkingDirectory)) == 0 {
		return commandString
	}
	return fmt.Sprintf(labelWorkingDirectoryTemplateConstant, commandString, descriptor.WorkingDirectory)
}

// ProcessLauncher validates execution directories and builds process descriptors.
type ProcessLauncher struct {
	homeExpander       *pathutils.HomeExpander
	directoryInspector func(path string) (os.FileInfo, error)
}

// NewProcessLauncher constructs a launcher that resolves home shorthands through the environment.
func NewProcessLauncher(environment platform.Environment) *ProcessLauncher {
	if environment == nil {
		environment = platform.NewHostEnvironment()
	}
	return &ProcessLauncher{
		homeExpander:       pathutils.NewHomeExpanderWithProvider(environment.HomeDirectory),
		directoryInspector: os.Stat,
	}
}

// Prepare expands a leading home shorthand in executionPath, verifies the directory
// exists, and returns a descriptor running command through the given shell. It
// does not start a process.
func (launcher *ProcessLauncher) Prepare(shell platform.ShellSpecification, executionPath string, command string) (ProcessDescriptor, error) {
	resolvedPath, expansionError := launcher.homeExpander.Resolve(executionPath)
	if expansionError != nil {
		return ProcessDescriptor{}, wrapErrorKind(ErrInvalidWorkingDirectory, expansionError)
	}

	directoryInformation, inspectionError := launcher.directoryInspector(resolvedPath)
	if inspectionError != nil {
		return ProcessDescriptor{}, wrapErrorKind(ErrInvalidWorkingDirectory, inspectionError)
	}
	if !directoryInformation.IsDir() {
		return ProcessDescriptor{}, wrapErrorKind(ErrInvalidWorkingDirectory, fmt.Errorf(notDirectoryMessageTemplateConstant, resolvedPath))
	}

	return ProcessDescriptor{
		WorkingDirectory: resolvedPath,
		Arguments:        []string{shell.ExecutablePath, shell.InvocationFlag, command},
	}, nil
}
