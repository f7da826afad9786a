// Package shell provides the Cobra commands that expose the command executor:
// running a command, describing the detected platform, and printing the shell
// argument vector for a platform.
package shell
