// Package tui provides terminal output components for the pipeline CLI.
// This file implements the per-command output sink: styled status lines in
// text mode and machine-parseable documents in JSON mode.
package tui

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output is the sink for user-facing command output. Text mode renders
// styled, iconed status lines; JSON mode suppresses all decoration so
// stdout stays a single parseable document.
type Output interface {
	// Success prints a passing status line.
	Success(msg string)
	// Error prints a failing status line.
	Error(err error)
	// Warning prints a warning line (skipped push, indeterminate coverage).
	Warning(msg string)
	// Info prints a neutral line, typically a suggested action.
	Info(msg string)
	// JSON writes v as an indented JSON document.
	JSON(v any) error
}

// NewOutput selects the output implementation for the --output format.
func NewOutput(w io.Writer, format string) Output {
	if format == "json" {
		return &JSONOutput{w: w}
	}
	return &TTYOutput{w: w, styles: NewOutputStyles()}
}

// writeJSON writes v indented to w; both output modes share it so a
// report serializes identically regardless of terminal.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// TTYOutput renders status lines with outcome icons and adaptive colors.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// Success prints a passing status line.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error prints a failing status line.
func (o *TTYOutput) Error(err error) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+err.Error()))
}

// Warning prints a warning line.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints a neutral line.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// JSON writes v as an indented JSON document.
func (o *TTYOutput) JSON(v any) error {
	return writeJSON(o.w, v)
}

// JSONOutput emits only JSON documents. Status lines are dropped rather
// than written, because anything interleaved with the report document
// would corrupt it for downstream parsers.
type JSONOutput struct {
	w io.Writer
}

// Success is dropped in JSON mode.
func (o *JSONOutput) Success(_ string) {}

// Error emits the error as its own JSON document.
func (o *JSONOutput) Error(err error) {
	_ = writeJSON(o.w, map[string]string{"error": err.Error()})
}

// Warning is dropped in JSON mode.
func (o *JSONOutput) Warning(_ string) {}

// Info is dropped in JSON mode.
func (o *JSONOutput) Info(_ string) {}

// JSON writes v as an indented JSON document.
func (o *JSONOutput) JSON(v any) error {
	return writeJSON(o.w, v)
}
