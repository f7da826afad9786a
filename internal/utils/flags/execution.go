// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	// WorkingDirectoryFlagName exposes the shared working directory flag name.
	WorkingDirectoryFlagName = "dir"
	// WorkingDirectoryFlagShorthand provides the shorthand for the working directory flag.
	WorkingDirectoryFlagShorthand = "C"
	// WorkingDirectoryFlagUsage describes the working directory flag purpose.
	WorkingDirectoryFlagUsage = "Directory to run the command in (~ expands to the home directory)"
	// TimeoutFlagName exposes the shared timeout flag name.
	TimeoutFlagName = "timeout"
	// TimeoutFlagUsage describes the timeout flag purpose.
	TimeoutFlagUsage = "Abort the command after this duration (0 waits indefinitely)"
	// MirrorOutputFlagName exposes the shared mirror flag name.
	MirrorOutputFlagName = "mirror"
	// MirrorOutputFlagUsage describes the mirror flag purpose.
	MirrorOutputFlagUsage = "Stream output lines to standard error as they are produced"
)

// ExecutionFlagValues stores execution flag values.
type ExecutionFlagValues struct {
	WorkingDirectory string
	Timeout          time.Duration
	MirrorOutput     bool
}

// BindExecutionFlags attaches the working directory, timeout, and mirror flags to the command's local flag set.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionFlagValues) *ExecutionFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	flagSet.StringVarP(&values.WorkingDirectory, WorkingDirectoryFlagName, WorkingDirectoryFlagShorthand, defaults.WorkingDirectory, WorkingDirectoryFlagUsage)
	flagSet.DurationVar(&values.Timeout, TimeoutFlagName, defaults.Timeout, TimeoutFlagUsage)
	AddToggleFlag(flagSet, &values.MirrorOutput, MirrorOutputFlagName, "", defaults.MirrorOutput, MirrorOutputFlagUsage)
	return &values
}
