// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"email-harvest/internal/formatters"
	"email-harvest/internal/router"

	"github.com/fatih/color"
)

// Formatter implements human-readable text output
type Formatter struct {
	header  *color.Color
	addr    *color.Color
	ok      *color.Color
	skipped *color.Color
	failed  *color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		header:  color.New(color.FgWhite, color.Bold),
		addr:    color.New(color.FgCyan),
		ok:      color.New(color.FgGreen),
		skipped: color.New(color.FgYellow),
		failed:  color.New(color.FgRed),
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report *formatters.Report, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder

	if len(report.Addresses) == 0 {
		f.skipped.Fprintln(&b, "No email address found.")
	} else {
		f.header.Fprintf(&b, "Addresses (%d):\n", len(report.Addresses))
		for _, a := range report.Addresses {
			provider := report.Providers[a]
			if provider != "" {
				fmt.Fprintf(&b, "  %s  [%s]\n", f.addr.Sprint(a), provider)
			} else {
				fmt.Fprintf(&b, "  %s\n", f.addr.Sprint(a))
			}
		}
	}

	if options.Verbose && len(report.Files) > 0 {
		f.header.Fprintln(&b, "\nFiles:")
		for _, file := range report.Files {
			line := fmt.Sprintf("  %-9s %s", file.Outcome, file.Path)
			switch file.Outcome {
			case router.Extracted:
				line = f.ok.Sprint(line)
				if file.Matches > 0 {
					line += fmt.Sprintf("  (%d matches)", file.Matches)
				}
			case router.Skipped:
				line = f.skipped.Sprint(line)
				if file.Reason != "" {
					line += "  " + file.Reason
				}
			case router.Failed:
				line = f.failed.Sprint(line)
				if file.Reason != "" {
					line += "  " + file.Reason
				}
			}
			fmt.Fprintln(&b, line)
		}
	}

	f.header.Fprintln(&b, "\nSummary:")
	fmt.Fprintf(&b, "  processed: %d  skipped: %d  failed: %d  unique addresses: %d\n",
		report.Stats.Processed, report.Stats.Skipped, report.Stats.Failed, report.Stats.Unique)
	if report.Stats.Duration != "" {
		fmt.Fprintf(&b, "  duration: %s\n", report.Stats.Duration)
	}

	return b.String(), nil
}

func init() {
	formatters.Register(NewFormatter())
}
