package shell

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/temirov/shellexec/internal/platform"
)

const (
	platformCommandUseConstant              = "platform"
	platformCommandShortDescriptionConstant = "Describe the detected operating system and shell"
	platformCommandLongDescriptionConstant  = "platform prints the operating system name, the platform it maps to, the kernel version and architecture, and the shell used to run commands. Pass --os-name to see how another operating system name would be classified."
	operatingSystemNameFlagNameConstant     = "os-name"
	operatingSystemNameFlagUsageConstant    = "Classify this operating system name instead of the host's"
	propertyHeaderConstant                  = "Property"
	valueHeaderConstant                     = "Value"
	operatingSystemRowLabelConstant         = "Operating system"
	platformRowLabelConstant                = "Platform"
	versionRowLabelConstant                 = "Version"
	architectureRowLabelConstant            = "Architecture"
	shellRowLabelConstant                   = "Shell"
	statusRowLabelConstant                  = "Status"
	supportedStatusConstant                 = "supported"
	unsupportedStatusConstant               = "unsupported"
	missingValueConstant                    = "-"
	shellDisplaySeparatorConstant           = " "
	tableSymbolsNameConstant                = "shellexec"
)

// ColorOutputDecider reports whether colored output should be written to writer.
type ColorOutputDecider func(writer io.Writer) bool

// PlatformCommandBuilder assembles the platform cobra command.
type PlatformCommandBuilder struct {
	Environment        platform.Environment
	ColorOutputDecider ColorOutputDecider
}

// Build constructs the platform command.
func (builder *PlatformCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           platformCommandUseConstant,
		Short:         platformCommandShortDescriptionConstant,
		Long:          platformCommandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		RunE:          builder.run,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	command.Flags().String(operatingSystemNameFlagNameConstant, "", operatingSystemNameFlagUsageConstant)
	return command, nil
}

func (builder *PlatformCommandBuilder) run(command *cobra.Command, arguments []string) error {
	environment := builder.Environment
	if environment == nil {
		environment = platform.NewHostEnvironment()
	}
	if operatingSystemName, _ := command.Flags().GetString(operatingSystemNameFlagNameConstant); len(strings.TrimSpace(operatingSystemName)) > 0 {
		environment = platform.WithOperatingSystemName(environment, operatingSystemName)
	}

	detector, detectorError := platform.NewDetector(environment)
	if detectorError != nil {
		return detectorError
	}

	description, describeError := detector.Describe(command.Context())
	if describeError != nil {
		return describeError
	}

	output := command.OutOrStdout()
	return renderDescription(output, description, builder.colorEnabled(output))
}

func (builder *PlatformCommandBuilder) colorEnabled(writer io.Writer) bool {
	if builder.ColorOutputDecider != nil {
		return builder.ColorOutputDecider(writer)
	}
	return TerminalColorOutput(writer)
}

// TerminalColorOutput enables color only when writer is a terminal.
func TerminalColorOutput(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func renderDescription(writer io.Writer, description platform.Description, colorOutput bool) error {
	supportedColor := color.New(color.FgGreen, color.Bold)
	unsupportedColor := color.New(color.FgRed, color.Bold)
	if colorOutput {
		supportedColor.EnableColor()
		unsupportedColor.EnableColor()
	} else {
		supportedColor.DisableColor()
		unsupportedColor.DisableColor()
	}

	status := unsupportedColor.Sprint(unsupportedStatusConstant)
	shellDisplay := missingValueConstant
	if description.Supported {
		status = supportedColor.Sprint(supportedStatusConstant)
		shellDisplay = strings.Join(description.Shell.Prefix(), shellDisplaySeparatorConstant)
	}

	table := tablewriter.NewTable(writer,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Left: tw.On, Top: tw.Off, Right: tw.On, Bottom: tw.Off},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.On, BetweenRows: tw.Off},
			},
			Symbols: tw.NewSymbolCustom(tableSymbolsNameConstant).
				WithColumn("|").
				WithRow("-").
				WithCenter("|").
				WithHeaderMid("-").
				WithTopMid("-").
				WithBottomMid("-"),
		}),
	)
	table.Header(propertyHeaderConstant, valueHeaderConstant)

	rows := [][]string{
		{operatingSystemRowLabelConstant, displayValue(description.OperatingSystemName)},
		{platformRowLabelConstant, description.Tag.String()},
		{versionRowLabelConstant, displayValue(description.OperatingSystemVersion)},
		{architectureRowLabelConstant, displayValue(description.Architecture)},
		{shellRowLabelConstant, shellDisplay},
		{statusRowLabelConstant, status},
	}
	for _, row := range rows {
		if appendError := table.Append(row[0], row[1]); appendError != nil {
			return appendError
		}
	}
	return table.Render()
}

func displayValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return missingValueConstant
	}
	return value
}
