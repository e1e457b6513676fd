// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"testing"

	"email-harvest/internal/formatters"
	"email-harvest/internal/router"
)

func sampleReport() *formatters.Report {
	return &formatters.Report{
		Addresses: []string{"a@example.com", "b@gmail.com"},
		Providers: map[string]string{
			"a@example.com": "BUSINESS",
			"b@gmail.com":   "GMAIL",
		},
		Files: []formatters.FileSummary{
			{Path: "a.txt", Type: "plaintext", Outcome: router.Extracted, Matches: 2},
			{Path: "b.zip", Type: "zip", Outcome: router.Skipped, Reason: "zip archive with no recognized document entry"},
		},
		Stats: formatters.Stats{Processed: 1, Skipped: 1, Unique: 2},
	}
}

func TestFormat_RoundTrips(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.FormatterOptions{Verbose: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded jsonReport
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Addresses) != 2 {
		t.Fatalf("got %d addresses, want 2", len(decoded.Addresses))
	}
	if decoded.Addresses[1].Provider != "GMAIL" {
		t.Errorf("provider = %s, want GMAIL", decoded.Addresses[1].Provider)
	}
	if len(decoded.Files) != 2 {
		t.Errorf("got %d files, want 2", len(decoded.Files))
	}
	if decoded.Stats.Unique != 2 {
		t.Errorf("unique = %d, want 2", decoded.Stats.Unique)
	}
}

func TestFormat_NonVerboseOmitsFiles(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded jsonReport
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Files) != 0 {
		t.Errorf("files = %v, want none without verbose", decoded.Files)
	}
}

func TestRegisteredByDefault(t *testing.T) {
	if _, ok := formatters.Get("json"); !ok {
		t.Error("json formatter should self-register")
	}
}
