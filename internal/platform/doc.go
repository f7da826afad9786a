// Package platform classifies the host operating system and selects the shell
// used to hand command strings to the platform's command interpreter.
//
// Host state (operating system name, home directory, version, architecture)
// is read through the Environment interface so callers can simulate other
// platforms without mutating process-global state.
package platform
