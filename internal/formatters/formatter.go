// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"strings"

	"email-harvest/internal/router"
)

// FileSummary is the per-file line of the run report.
type FileSummary struct {
	Path    string
	Type    string
	Outcome router.Outcome
	Reason  string
	Matches int
}

// Stats aggregates the run.
type Stats struct {
	Processed int // files that yielded text
	Skipped   int
	Failed    int
	Unique    int // distinct addresses across the whole run
	Duration  string
}

// Report is everything a formatter needs to render a run.
type Report struct {
	Addresses []string          // sorted, lowercased
	Providers map[string]string // address -> provider bucket
	Files     []FileSummary
	Stats     Stats
}

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose bool // include the per-file breakdown
	NoColor bool // disable colored output
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the report in the formatter's output format
	Format(report *Report, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders the report with the named formatter.
func Export(format string, report *Report, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(report, options)
}
