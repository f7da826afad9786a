package shell

import (
	"time"
)

const (
	workingDirectoryConfigurationKeyConstant = "working_directory"
	timeoutConfigurationKeyConstant          = "timeout"
	mirrorOutputConfigurationKeyConstant     = "mirror_output"
	configurationKeySeparatorConstant        = "."
	defaultWorkingDirectoryConstant          = "."
)

// CommandConfiguration captures persisted defaults for the run command.
type CommandConfiguration struct {
	WorkingDirectory string        `mapstructure:"working_directory" yaml:"working_directory"`
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MirrorOutput     bool          `mapstructure:"mirror_output" yaml:"mirror_output"`
}

// DefaultCommandConfiguration returns the built-in run defaults.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{WorkingDirectory: defaultWorkingDirectoryConstant}
}

// DefaultConfigurationValues returns the run defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefixedKey(prefix, workingDirectoryConfigurationKeyConstant): defaults.WorkingDirectory,
		prefixedKey(prefix, timeoutConfigurationKeyConstant):          defaults.Timeout.String(),
		prefixedKey(prefix, mirrorOutputConfigurationKeyConstant):     defaults.MirrorOutput,
	}
}

func prefixedKey(prefix string, key string) string {
	if len(prefix) == 0 {
		return key
	}
	return prefix + configurationKeySeparatorConstant + key
}
