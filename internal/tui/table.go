package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/wwiii/pipeline/internal/config"
	"github.com/wwiii/pipeline/internal/gate"
)

// DefaultTerminalWidth is used when terminal width cannot be determined.
const DefaultTerminalWidth = 80

// detectTerminalWidth returns the current terminal width.
// Returns DefaultTerminalWidth if detection fails.
func detectTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultTerminalWidth
	}
	return width
}

// padCell pads a cell to width using display width, so wide runes and the
// outcome icons align correctly.
func padCell(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncateCell truncates a cell to width display columns, appending an
// ellipsis when content is cut.
func truncateCell(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// ReportTableOption is a functional option for ReportTable configuration.
type ReportTableOption func(*ReportTable)

// WithTerminalWidth sets a specific terminal width (useful for testing).
func WithTerminalWidth(width int) ReportTableOption {
	return func(t *ReportTable) {
		t.terminalWidth = width
	}
}

// ReportTable renders a pipeline report as a gate summary table.
type ReportTable struct {
	report        *gate.Report
	styles        *OutputStyles
	terminalWidth int
}

// NewReportTable creates a report table for the given pipeline report.
func NewReportTable(report *gate.Report, opts ...ReportTableOption) *ReportTable {
	t := &ReportTable{
		report:        report,
		styles:        NewOutputStyles(),
		terminalWidth: detectTerminalWidth(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Headers returns the column headers.
func (t *ReportTable) Headers() []string {
	return []string{"GATE", "RESULT", "DURATION", "DETAIL"}
}

// Render writes the gate summary table followed by a one-line verdict.
func (t *ReportTable) Render(w io.Writer) error {
	headers := t.Headers()
	widths := t.columnWidths(headers)

	headerParts := make([]string, len(headers))
	for i, h := range headers {
		headerParts[i] = t.styles.Header.Render(padCell(h, widths[i]))
	}
	if _, err := fmt.Fprintln(w, strings.Join(headerParts, "  ")); err != nil {
		return err
	}

	for _, result := range t.report.Results {
		cells := []string{
			padCell(result.Gate, widths[0]),
			t.renderOutcomeCell(result.Outcome, widths[1]),
			padCell(formatDuration(result.DurationMs), widths[2]),
			truncateCell(detailFor(result), widths[3]),
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "  ")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	verdict := t.styles.Error.Render("✗ " + t.report.Pipeline + " failed")
	if t.report.Success {
		verdict = t.styles.Success.Render("✓ " + t.report.Pipeline + " passed")
	}
	_, err := fmt.Fprintf(w, "%s %s\n", verdict,
		t.styles.Dim.Render("("+formatDuration(t.report.DurationMs)+")"))
	return err
}

// renderOutcomeCell renders the outcome with icon and color, padded by its
// visible width so ANSI codes do not break alignment.
func (t *ReportTable) renderOutcomeCell(outcome gate.Outcome, width int) string {
	plain := OutcomeIcon(outcome) + " " + outcome.String()
	style := lipgloss.NewStyle().Foreground(OutcomeColor(outcome))
	styled := OutcomeIcon(outcome) + " " + style.Render(outcome.String())

	if w := runewidth.StringWidth(plain); w < width {
		return styled + strings.Repeat(" ", width-w)
	}
	return styled
}

// columnWidths sizes each column to its content, then gives the detail
// column whatever terminal width remains.
func (t *ReportTable) columnWidths(headers []string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, result := range t.report.Results {
		if w := runewidth.StringWidth(result.Gate); w > widths[0] {
			widths[0] = w
		}
		outcomeCell := OutcomeIcon(result.Outcome) + " " + result.Outcome.String()
		if w := runewidth.StringWidth(outcomeCell); w > widths[1] {
			widths[1] = w
		}
		if w := runewidth.StringWidth(formatDuration(result.DurationMs)); w > widths[2] {
			widths[2] = w
		}
		if w := runewidth.StringWidth(detailFor(result)); w > widths[3] {
			widths[3] = w
		}
	}

	// Detail absorbs the overflow when the table is wider than the terminal.
	const separatorWidth = 6
	if t.terminalWidth > 0 {
		available := t.terminalWidth - separatorWidth - widths[0] - widths[1] - widths[2]
		if available < runewidth.StringWidth(headers[3]) {
			available = runewidth.StringWidth(headers[3])
		}
		if widths[3] > available {
			widths[3] = available
		}
	}

	return widths
}

// detailFor returns the human-readable detail cell for a gate result.
func detailFor(result gate.Result) string {
	switch {
	case result.Outcome == gate.OutcomeFailed && result.Reason != "":
		return result.Reason
	case result.Warning != "":
		return result.Warning
	case result.Outcome == gate.OutcomeSkipped && result.Reason != "":
		return result.Reason
	default:
		return ""
	}
}

// formatDuration renders a millisecond duration compactly.
func formatDuration(ms int64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60_000:
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	default:
		return fmt.Sprintf("%dm%ds", ms/60_000, (ms%60_000)/1000)
	}
}

// ToolTable renders tool detection results for the doctor command.
type ToolTable struct {
	result *config.ToolDetectionResult
	styles *OutputStyles
}

// NewToolTable creates a tool table for the given detection result.
func NewToolTable(result *config.ToolDetectionResult) *ToolTable {
	return &ToolTable{
		result: result,
		styles: NewOutputStyles(),
	}
}

// Render writes the tool status table, with install hints for tools that
// are missing or outdated.
func (t *ToolTable) Render(w io.Writer) error {
	headers := []string{"TOOL", "STATUS", "VERSION", "REQUIRED"}
	widths := t.columnWidths(headers)

	headerParts := make([]string, len(headers))
	for i, h := range headers {
		headerParts[i] = t.styles.Header.Render(padCell(h, widths[i]))
	}
	if _, err := fmt.Fprintln(w, strings.Join(headerParts, "  ")); err != nil {
		return err
	}

	for _, tool := range t.result.Tools {
		cells := []string{
			padCell(tool.Name, widths[0]),
			t.renderStatusCell(tool.Status, widths[1]),
			padCell(versionCell(tool), widths[2]),
			requiredCell(tool.Required),
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "  ")); err != nil {
			return err
		}
	}

	for _, tool := range t.result.Tools {
		if tool.Status == config.ToolStatusInstalled || tool.InstallHint == "" {
			continue
		}
		hint := t.styles.Dim.Render(tool.InstallHint)
		if _, err := fmt.Fprintf(w, "\n%s %s: %s\n",
			t.styles.Warning.Render("⚠"), tool.Name, hint); err != nil {
			return err
		}
	}

	return nil
}

func (t *ToolTable) renderStatusCell(status config.ToolStatus, width int) string {
	var icon string
	var color lipgloss.AdaptiveColor
	switch status {
	case config.ToolStatusInstalled:
		icon, color = "✓", ColorSuccess
	case config.ToolStatusOutdated:
		icon, color = "⚠", ColorWarning
	case config.ToolStatusMissing:
		icon, color = "✗", ColorError
	default:
		icon, color = "?", ColorMuted
	}

	plain := icon + " " + status.String()
	style := lipgloss.NewStyle().Foreground(color)
	styled := icon + " " + style.Render(status.String())

	if w := runewidth.StringWidth(plain); w < width {
		return styled + strings.Repeat(" ", width-w)
	}
	return styled
}

func (t *ToolTable) columnWidths(headers []string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, tool := range t.result.Tools {
		if w := runewidth.StringWidth(tool.Name); w > widths[0] {
			widths[0] = w
		}
		statusCell := "✓ " + tool.Status.String()
		if w := runewidth.StringWidth(statusCell); w > widths[1] {
			widths[1] = w
		}
		if w := runewidth.StringWidth(versionCell(tool)); w > widths[2] {
			widths[2] = w
		}
	}
	return widths
}

func versionCell(tool config.Tool) string {
	if tool.CurrentVersion == "" {
		return "—"
	}
	if tool.MinVersion != "" {
		return tool.CurrentVersion + " (min " + tool.MinVersion + ")"
	}
	return tool.CurrentVersion
}

func requiredCell(required bool) string {
	if required {
		return "yes"
	}
	return "no"
}
