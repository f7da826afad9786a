package execshell

import (
	"fmt"
	"strings"
)

const (
	startedMessageTemplateConstant          = "Running %s"
	successMessageTemplateConstant          = "Completed %s"
	failureMessageTemplateConstant          = "%s failed with exit code %d%s"
	executionFailureMessageTemplateConstant = "%s failed: %s"
	lastOutputLineSuffixTemplateConstant    = ": %s"
	exitCodeTrailerPrefixConstant           = "Exit code:"
	outputLineBreakConstant                 = "\n"
	emptyStringConstant                     = ""
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(descriptor ProcessDescriptor) string {
	return fmt.Sprintf(startedMessageTemplateConstant, descriptor.Label())
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(descriptor ProcessDescriptor) string {
	return fmt.Sprintf(successMessageTemplateConstant, descriptor.Label())
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
// The last line the command printed before the trailer is appended when present.
func (formatter CommandMessageFormatter) BuildFailureMessage(descriptor ProcessDescriptor, result ExecutionResult) string {
	return fmt.Sprintf(failureMessageTemplateConstant, descriptor.Label(), result.ExitCode, formatter.formatLastOutputLineSuffix(result.Output))
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(descriptor ProcessDescriptor, failure error) string {
	failureMessage := unknownCauseMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(executionFailureMessageTemplateConstant, descriptor.Label(), failureMessage)
}

func (formatter CommandMessageFormatter) formatLastOutputLineSuffix(output string) string {
	lines := strings.Split(output, outputLineBreakConstant)
	for lineIndex := len(lines) - 1; lineIndex >= 0; lineIndex-- {
		trimmedLine := strings.TrimSpace(lines[lineIndex])
		if len(trimmedLine) == 0 || strings.HasPrefix(trimmedLine, exitCodeTrailerPrefixConstant) {
			continue
		}
		return fmt.Sprintf(lastOutputLineSuffixTemplateConstant, trimmedLine)
	}
	return emptyStringConstant
}
