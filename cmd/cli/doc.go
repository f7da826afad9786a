// Package cli constructs the shellexec command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the command executor.
package cli
