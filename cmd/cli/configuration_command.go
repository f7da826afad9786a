package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/shellexec/internal/utils"
)

const (
	configurationCommandUseConstant              = "config"
	configurationCommandShortDescriptionConstant = "Print the effective configuration as YAML"
	configurationCommandLongDescriptionConstant  = "config prints the configuration after embedded defaults, configuration files, SHELLEXEC_* environment variables, and command-line overrides are merged."
	configurationSourceCommentTemplateConstant   = "# source: %s\n"
	embeddedConfigurationSourceConstant          = "embedded defaults"
	yamlIndentationConstant                      = 2
	rawFlagNameConstant                          = "raw"
	rawFlagUsageConstant                         = "Print every merged key, including keys shellexec does not recognize"
)

// ConfigurationCommandBuilder assembles the config cobra command.
type ConfigurationCommandBuilder struct {
	ConfigurationProvider func() ApplicationConfiguration
	ContextAccessor       utils.CommandContextAccessor
}

// Build constructs the config command.
func (builder *ConfigurationCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   configurationCommandUseConstant,
		Short: configurationCommandShortDescriptionConstant,
		Long:  configurationCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	command.Flags().Bool(rawFlagNameConstant, false, rawFlagUsageConstant)
	return command, nil
}

func (builder *ConfigurationCommandBuilder) run(command *cobra.Command, arguments []string) error {
	var document any = ApplicationConfiguration{}
	if builder.ConfigurationProvider != nil {
		document = builder.ConfigurationProvider()
	}
	if rawOutput, _ := command.Flags().GetBool(rawFlagNameConstant); rawOutput {
		settings, _ := builder.ContextAccessor.ConfigurationSettings(command.Context())
		document = settings
	}

	source := embeddedConfigurationSourceConstant
	if configurationFilePath, available := builder.ContextAccessor.ConfigurationFilePath(command.Context()); available && len(configurationFilePath) > 0 {
		source = configurationFilePath
	}

	output := command.OutOrStdout()
	if _, writeError := fmt.Fprintf(output, configurationSourceCommentTemplateConstant, source); writeError != nil {
		return writeError
	}

	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(yamlIndentationConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
