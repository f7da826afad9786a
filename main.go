package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/shellexec/cmd/cli"
	"github.com/temirov/shellexec/cmd/cli/shell"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the shellexec command-line application. A command that exits
// with a non-zero status makes shellexec exit with the same status.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	var exitStatusError shell.ExitStatusError
	if errors.As(executionError, &exitStatusError) {
		os.Exit(exitStatusError.ExitCode)
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(1)
}
