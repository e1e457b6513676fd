// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"

	"email-harvest/internal/formatters"
	"email-harvest/internal/router"
)

func TestFormat_EmptyRun(t *testing.T) {
	report := &formatters.Report{Providers: map[string]string{}}
	out, err := NewFormatter().Format(report, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No email address found.") {
		t.Errorf("output = %q, missing empty-run notice", out)
	}
}

func TestFormat_AddressesAndSummary(t *testing.T) {
	report := &formatters.Report{
		Addresses: []string{"a@example.com", "b@gmail.com"},
		Providers: map[string]string{"b@gmail.com": "GMAIL"},
		Stats:     formatters.Stats{Processed: 2, Unique: 2},
	}
	out, err := NewFormatter().Format(report, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"a@example.com", "b@gmail.com", "[GMAIL]", "unique addresses: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, missing %q", out, want)
		}
	}
}

func TestFormat_VerboseFileBreakdown(t *testing.T) {
	report := &formatters.Report{
		Addresses: []string{"a@example.com"},
		Providers: map[string]string{},
		Files: []formatters.FileSummary{
			{Path: "ok.txt", Outcome: router.Extracted, Matches: 1},
			{Path: "junk.bin", Outcome: router.Skipped, Reason: "no magic number matched and content is not text"},
		},
		Stats: formatters.Stats{Processed: 1, Skipped: 1, Unique: 1},
	}
	out, err := NewFormatter().Format(report, formatters.FormatterOptions{NoColor: true, Verbose: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"ok.txt", "junk.bin", "no magic number matched"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, missing %q", out, want)
		}
	}
}
