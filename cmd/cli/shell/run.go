package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/shellexec/internal/execshell"
	"github.com/temirov/shellexec/internal/platform"
	"github.com/temirov/shellexec/internal/utils/flags"
)

const (
	runCommandUseConstant              = "run [flags] -- <command...>"
	runCommandShortDescriptionConstant = "Run a shell command and print its output"
	runCommandLongDescriptionConstant  = "run executes the command through the platform shell (cmd.exe /c on Windows, /bin/bash -c elsewhere), prints the merged standard output and error, and appends \"Exit code: N\" when the command fails. Use --mirror to stream lines to standard error while the command runs. Pass the command as one quoted argument to keep its quoting; several arguments are joined with single spaces."
	runCommandExampleConstant          = "  shellexec run -- echo Hello, World!\n  shellexec run --dir ~/src --timeout 30s --mirror -- make test\n  shellexec run -- \"echo 'a  b'\""
	commandTokenSeparatorConstant      = " "
	missingCommandMessageConstant      = "no command provided; pass the command after --"
	exitStatusMessageTemplateConstant  = "command exited with status %d"
)

// ErrMissingCommand indicates run was invoked without a command.
var ErrMissingCommand = errors.New(missingCommandMessageConstant)

// ExitStatusError reports a command that ran to completion with a non-zero exit status.
type ExitStatusError struct {
	ExitCode int
}

// Error describes the exit status.
func (exitStatusError ExitStatusError) Error() string {
	return fmt.Sprintf(exitStatusMessageTemplateConstant, exitStatusError.ExitCode)
}

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted run defaults.
type ConfigurationProvider func() CommandConfiguration

// EventObserverProvider supplies the observer notified about command lifecycle events.
type EventObserverProvider func() execshell.CommandEventObserver

// RunCommandBuilder assembles the run cobra command.
type RunCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	EventObserverProvider EventObserverProvider
	Environment           platform.Environment
	ProcessStarter        execshell.ProcessStarter
}

type runOptions struct {
	command          string
	workingDirectory string
	configuration    CommandConfiguration
}

// Build constructs the run command.
func (builder *RunCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           runCommandUseConstant,
		Short:         runCommandShortDescriptionConstant,
		Long:          runCommandLongDescriptionConstant,
		Example:       runCommandExampleConstant,
		RunE:          builder.run,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	defaults := DefaultCommandConfiguration()
	flags.BindExecutionFlags(command, flags.ExecutionFlagValues{
		WorkingDirectory: defaults.WorkingDirectory,
		Timeout:          defaults.Timeout,
		MirrorOutput:     defaults.MirrorOutput,
	})

	return command, nil
}

func (builder *RunCommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	executor, executorError := execshell.NewCommandLineExecutor(builder.resolveLogger(), execshell.Dependencies{
		Environment:    builder.Environment,
		ProcessStarter: builder.ProcessStarter,
		EventObserver:  builder.resolveEventObserver(),
		DefaultTimeout: options.configuration.Timeout,
	})
	if executorError != nil {
		return executorError
	}

	var mirror io.Writer
	if options.configuration.MirrorOutput {
		mirror = command.ErrOrStderr()
	}

	result, runError := executor.Run(command.Context(), execshell.ExecutionRequest{
		ExecutionPath:    options.workingDirectory,
		Command:          options.command,
		AdditionalOutput: mirror,
	})
	if runError != nil {
		return runError
	}

	if _, writeError := io.WriteString(command.OutOrStdout(), result.Output); writeError != nil {
		return writeError
	}
	if result.ExitCode != 0 {
		return ExitStatusError{ExitCode: result.ExitCode}
	}
	return nil
}

func (builder *RunCommandBuilder) parseOptions(command *cobra.Command, arguments []string) (runOptions, error) {
	commandText := strings.TrimSpace(strings.Join(arguments, commandTokenSeparatorConstant))
	if len(commandText) == 0 {
		if helpError := command.Help(); helpError != nil {
			return runOptions{}, helpError
		}
		return runOptions{}, ErrMissingCommand
	}

	configuration := builder.resolveConfiguration()
	commandFlags := command.Flags()

	if commandFlags.Changed(flags.WorkingDirectoryFlagName) {
		workingDirectory, _ := commandFlags.GetString(flags.WorkingDirectoryFlagName)
		configuration.WorkingDirectory = workingDirectory
	}
	if len(strings.TrimSpace(configuration.WorkingDirectory)) == 0 {
		configuration.WorkingDirectory = defaultWorkingDirectoryConstant
	}

	if commandFlags.Changed(flags.TimeoutFlagName) {
		timeout, _ := commandFlags.GetDuration(flags.TimeoutFlagName)
		configuration.Timeout = timeout
	}

	if commandFlags.Changed(flags.MirrorOutputFlagName) {
		mirrorOutput, _ := commandFlags.GetBool(flags.MirrorOutputFlagName)
		configuration.MirrorOutput = mirrorOutput
	}

	return runOptions{
		command:          commandText,
		workingDirectory: configuration.WorkingDirectory,
		configuration:    configuration,
	}, nil
}

func (builder *RunCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *RunCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *RunCommandBuilder) resolveEventObserver() execshell.CommandEventObserver {
	if builder.EventObserverProvider == nil {
		return nil
	}
	return builder.EventObserverProvider()
}
