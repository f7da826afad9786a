//go:build !unix

package execshell

import "os/exec"

func exitCodeFromError(exitError *exec.ExitError) int {
	return exitError.ExitCode()
}
