// Package observability provides Prometheus metrics and the formatted
// report output of the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxFailuresToShow is the number of failed cells listed in a report
	maxFailuresToShow = 8
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(boxWidth - 2)
)

// ReportRow is one generation cell as shown by the printer
type ReportRow struct {
	Template  string
	Format    string
	Success   bool
	Cached    bool
	ErrorCode string
	Detail    string
	Warning   string
}

// TemplateRow describes one template for PrintTemplates
type TemplateRow struct {
	ID        string
	Primary   string
	Accent    string
	Highlight string
	Font      string
	Layout    string
}

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	body := titleStyle.Render(title)
	if content != "" {
		body += "\n\n" + content
	}
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func mark(r ReportRow) string {
	switch {
	case !r.Success:
		return failStyle.Render("✗")
	case r.Warning != "":
		return warnStyle.Render("!")
	default:
		return okStyle.Render("✓")
	}
}

// PrintProgress prints a single line for a finished cell
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(done, total int, r ReportRow) {
	line := fmt.Sprintf("[%d/%d] %s %s/%s", done, total, mark(r), r.Template, r.Format)
	switch {
	case !r.Success:
		line += "  " + r.ErrorCode
	case r.Cached:
		line += "  (cached)"
	}
	fmt.Fprintln(p.out, line)
}

// PrintBatchReport outputs the outcome grid of a batch and its failures.
func (p *Printer) PrintBatchReport(rows []ReportRow) {
	if len(rows) == 0 {
		p.printBox("BATCH REPORT", "No cells generated")
		return
	}

	var (
		templates []string
		formats   []string
		seenT     = map[string]bool{}
		seenF     = map[string]bool{}
		cells     = map[string]ReportRow{}
		ok        int
		failures  []ReportRow
		warnings  []ReportRow
	)
	for _, r := range rows {
		if !seenT[r.Template] {
			seenT[r.Template] = true
			templates = append(templates, r.Template)
		}
		if !seenF[r.Format] {
			seenF[r.Format] = true
			formats = append(formats, r.Format)
		}
		cells[r.Template+"|"+r.Format] = r
		switch {
		case !r.Success:
			failures = append(failures, r)
		case r.Warning != "":
			ok++
			warnings = append(warnings, r)
		default:
			ok++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-16s", ""))
	for _, f := range formats {
		sb.WriteString(fmt.Sprintf("%-7s", f))
	}
	sb.WriteString("\n")
	for _, t := range templates {
		sb.WriteString(fmt.Sprintf("%-16s", truncate(t, 15)))
		for _, f := range formats {
			r, found := cells[t+"|"+f]
			cell := "-"
			if found {
				cell = mark(r)
			}
			sb.WriteString(cell + strings.Repeat(" ", 6))
		}
		sb.WriteString("\n")
	}

	rate := float64(ok) / float64(len(rows)) * 100
	sb.WriteString(fmt.Sprintf("\nSucceeded: %d/%d (%.1f%%)", ok, len(rows), rate))

	if len(failures) > 0 {
		sb.WriteString("\n\nFailures:\n")
		count := min(len(failures), maxFailuresToShow)
		for i := 0; i < count; i++ {
			f := failures[i]
			sb.WriteString(fmt.Sprintf("  • %s/%s %s\n", f.Template, f.Format, f.ErrorCode))
			if f.Detail != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", truncate(f.Detail, boxWidth-10)))
			}
		}
		if len(failures) > maxFailuresToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(failures)-maxFailuresToShow))
		}
	}
	if len(warnings) > 0 {
		sb.WriteString("\n\nWarnings:\n")
		for _, w := range warnings {
			sb.WriteString(fmt.Sprintf("  • %s/%s %s\n", w.Template, w.Format, truncate(w.Warning, boxWidth-20)))
		}
	}

	p.printBox("BATCH REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTemplates lists the available templates with their default palette.
func (p *Printer) PrintTemplates(rows []TemplateRow) {
	var sb strings.Builder
	for i, r := range rows {
		sb.WriteString(titleStyle.Render(r.ID))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  Colors: %s %s %s  (%s / %s / %s)\n",
			swatch(r.Primary), swatch(r.Accent), swatch(r.Highlight), r.Primary, r.Accent, r.Highlight))
		sb.WriteString(fmt.Sprintf("  Font:   %s\n", truncate(r.Font, boxWidth-14)))
		sb.WriteString(fmt.Sprintf("  Layout: %s", r.Layout))
		if i < len(rows)-1 {
			sb.WriteString("\n\n")
		}
	}
	p.printBox("TEMPLATES", sb.String())
}

func swatch(hex string) string {
	if hex == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}
