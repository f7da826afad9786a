package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	configurationSettingsContextKeyConstant = commandContextKey("configurationSettings")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	return configurationFilePath, configurationFilePathAvailable
}

// WithConfigurationSettings attaches the merged configuration settings to the provided context.
func (accessor CommandContextAccessor) WithConfigurationSettings(parentContext context.Context, settings map[string]any) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationSettingsContextKeyConstant, settings)
}

// ConfigurationSettings extracts the merged configuration settings from the provided context.
func (accessor CommandContextAccessor) ConfigurationSettings(executionContext context.Context) (map[string]any, bool) {
	if executionContext == nil {
		return nil, false
	}
	settings, settingsAvailable := executionContext.Value(configurationSettingsContextKeyConstant).(map[string]any)
	return settings, settingsAvailable
}
