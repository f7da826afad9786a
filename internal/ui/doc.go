// Package ui turns executor lifecycle events into short console messages.
//
// Structured fields stay in the executor's own log entries; this package only
// produces the human-readable lines shown when the console log format is selected.
package ui
