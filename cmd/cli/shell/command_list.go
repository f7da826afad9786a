package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/shellexec/internal/execshell"
	"github.com/temirov/shellexec/internal/platform"
	"github.com/temirov/shellexec/internal/utils/flags"
)

const (
	commandListUseConstant              = "command-list [flags] <tokens...>"
	commandListShortDescriptionConstant = "Print the shell argument vector for a platform"
	commandListLongDescriptionConstant  = "command-list prints the shell executable and invocation flag for the selected platform followed by the given tokens, one element per line."
	platformFlagNameConstant            = "platform"
	platformFlagUsageConstant           = "Platform whose shell prefixes the tokens."
	commandListLineTemplateConstant     = "%s\n"
)

// CommandListBuilder assembles the command-list cobra command.
type CommandListBuilder struct {
	Environment platform.Environment
}

// Build constructs the command-list command. The platform flag defaults to the detected host platform.
func (builder *CommandListBuilder) Build() (*cobra.Command, error) {
	environment := builder.Environment
	if environment == nil {
		environment = platform.NewHostEnvironment()
	}

	var selectedPlatform string
	command := &cobra.Command{
		Use:   commandListUseConstant,
		Short: commandListShortDescriptionConstant,
		Long:  commandListLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, selectedPlatform, arguments)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	defaultPlatform := platform.Detect(environment.OperatingSystemName())
	flags.AddChoiceFlag(command.Flags(), &selectedPlatform, platformFlagNameConstant, defaultPlatform.Name(), platform.TagNames(), platformFlagUsageConstant)

	return command, nil
}

func (builder *CommandListBuilder) run(command *cobra.Command, selectedPlatform string, arguments []string) error {
	tag, parseError := platform.ParseTag(selectedPlatform)
	if parseError != nil {
		return parseError
	}

	commandList, listError := execshell.CommandList(arguments, tag)
	if listError != nil {
		return listError
	}

	output := command.OutOrStdout()
	for _, element := range commandList {
		if _, writeError := fmt.Fprintf(output, commandListLineTemplateConstant, element); writeError != nil {
			return writeError
		}
	}
	return nil
}
