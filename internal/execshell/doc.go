// Package execshell runs shell command strings through the platform shell.
//
// CommandLineExecutor selects cmd.exe or /bin/bash from the detected platform,
// validates the working directory through ProcessLauncher, merges the child's
// standard output and error into one stream, and returns the captured lines.
// A non-zero exit status is reported inline as an "Exit code: N" trailer rather
// than as an error. Process creation is abstracted behind ProcessStarter so the
// executor can be exercised without spawning real processes.
package execshell
