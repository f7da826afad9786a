//go:build unix

package execshell

import (
	"os/exec"
	"syscall"
)

const signalExitCodeOffsetConstant = 128

// exitCodeFromError follows the shell convention of 128 plus the signal number
// for children terminated by a signal.
func exitCodeFromError(exitError *exec.ExitError) int {
	waitStatus, isWaitStatus := exitError.Sys().(syscall.WaitStatus)
	if isWaitStatus && waitStatus.Signaled() {
		return signalExitCodeOffsetConstant + int(waitStatus.Signal())
	}
	return exitError.ExitCode()
}
