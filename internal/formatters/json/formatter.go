// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"email-harvest/internal/formatters"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

type jsonAddress struct {
	Address  string `json:"address"`
	Provider string `json:"provider,omitempty"`
}

type jsonFile struct {
	Path    string `json:"path"`
	Type    string `json:"type,omitempty"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
	Matches int    `json:"matches,omitempty"`
}

type jsonReport struct {
	Addresses []jsonAddress `json:"addresses"`
	Files     []jsonFile    `json:"files,omitempty"`
	Stats     struct {
		Processed int    `json:"processed"`
		Skipped   int    `json:"skipped"`
		Failed    int    `json:"failed"`
		Unique    int    `json:"unique"`
		Duration  string `json:"duration,omitempty"`
	} `json:"stats"`
}

func (f *Formatter) Format(report *formatters.Report, options formatters.FormatterOptions) (string, error) {
	out := jsonReport{Addresses: make([]jsonAddress, 0, len(report.Addresses))}

	for _, a := range report.Addresses {
		out.Addresses = append(out.Addresses, jsonAddress{
			Address:  a,
			Provider: report.Providers[a],
		})
	}
	if options.Verbose {
		for _, file := range report.Files {
			out.Files = append(out.Files, jsonFile{
				Path:    file.Path,
				Type:    file.Type,
				Outcome: file.Outcome.String(),
				Reason:  file.Reason,
				Matches: file.Matches,
			})
		}
	}
	out.Stats.Processed = report.Stats.Processed
	out.Stats.Skipped = report.Stats.Skipped
	out.Stats.Failed = report.Stats.Failed
	out.Stats.Unique = report.Stats.Unique
	out.Stats.Duration = report.Stats.Duration

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
