// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"email-harvest/internal/config"
	"email-harvest/internal/formatters"
	_ "email-harvest/internal/formatters/csv"
	_ "email-harvest/internal/formatters/json"
	_ "email-harvest/internal/formatters/text"
	"email-harvest/internal/harvest"
	"email-harvest/internal/observability"
	"email-harvest/internal/parallel"
	"email-harvest/internal/router"
	"email-harvest/internal/version"

	"golang.org/x/term"
)

// runConfiguration holds the resolved settings for one run. Precedence:
// command line flag > profile > config file > built-in default.
type runConfiguration struct {
	format       string
	output       string
	verbose      bool
	debug        bool
	noColor      bool
	recursive    bool
	workers      int
	excludes     []string
	pdfMaxPages  int
	enableImages bool
}

func main() {
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Report format: text, json, csv (default: text)")
	outputFile := flag.String("output", "", "Path for the harvested address list (default: emails.txt)")
	recursive := flag.Bool("recursive", false, "Recursively process directories")
	workers := flag.Int("workers", 0, "Number of parallel workers (default: number of CPUs)")
	verbose := flag.Bool("verbose", false, "Include the per-file breakdown in the report")
	debug := flag.Bool("debug", false, "Enable debug logging of pipeline operations")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("email-harvest %s\n", version.String())
		return
	}

	cfg := loadConfiguration(*configFile)

	if *listProfiles {
		printProfiles(cfg)
		return
	}

	if *profileName != "" {
		if err := cfg.ApplyProfile(*profileName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	final := resolveConfiguration(cfg, *outputFormat, *outputFile, *recursive, *workers, *verbose, *debug, *noColor)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input file or directory is required")
		usage()
		os.Exit(2)
	}
	root := flag.Arg(0)

	// Colors make no sense when piped.
	if final.noColor || !isTerminal(os.Stdout) {
		final.noColor = true
	}

	level := observability.Off
	if final.verbose {
		level = observability.Metrics
	}
	if final.debug {
		level = observability.Debug
	}
	observer := observability.NewObserver(level, os.Stderr)

	files, err := collectFiles(root, final.recursive, final.excludes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No input files found")
		os.Exit(1)
	}

	report := run(files, final, observer)

	if err := writeAddressList(final.output, report.Addresses); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", final.output, err)
		os.Exit(1)
	}

	rendered, err := formatters.Export(final.format, report, formatters.FormatterOptions{
		Verbose: final.verbose,
		NoColor: final.noColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(rendered)
}

// run pushes every file through the worker pool and folds the results into
// a single report. Merging through one loop keeps the email set free of
// locks.
func run(files []string, final *runConfiguration, observer *observability.Observer) *formatters.Report {
	start := time.Now()

	rt := router.New(final.pdfMaxPages, final.enableImages)
	rt.SetObserver(observer)

	pool := parallel.NewWorkerPool(final.workers, rt, observer)
	pool.Start()

	go func() {
		for _, f := range files {
			pool.Submit(&parallel.Job{FilePath: f})
		}
		pool.Finish()
	}()

	set := harvest.NewEmailSet()
	report := &formatters.Report{Providers: make(map[string]string)}

	for result := range pool.Results() {
		summary := formatters.FileSummary{Path: result.FilePath}

		switch {
		case result.Route == nil:
			// The file could not even be read.
			summary.Outcome = router.Failed
			summary.Reason = result.Error.Error()
			report.Stats.Failed++
		case result.Route.Outcome == router.Skipped:
			summary.Type = result.Route.Type.String()
			summary.Outcome = router.Skipped
			summary.Reason = result.Route.Reason
			report.Stats.Skipped++
		case result.Route.Outcome == router.Failed:
			summary.Type = result.Route.Type.String()
			summary.Outcome = router.Failed
			summary.Reason = result.Route.Reason
			report.Stats.Failed++
		default:
			summary.Type = result.Route.Type.String()
			summary.Outcome = router.Extracted
			summary.Matches = len(result.Emails)
			report.Stats.Processed++
			set.AddAll(result.Emails)
		}
		report.Files = append(report.Files, summary)
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Path < report.Files[j].Path
	})

	report.Addresses = set.Sorted()
	for _, a := range report.Addresses {
		report.Providers[a] = harvest.ProviderType(a)
	}
	report.Stats.Unique = set.Len()
	report.Stats.Duration = time.Since(start).Round(time.Millisecond).String()
	return report
}

// writeAddressList writes the deduplicated addresses, one per line.
func writeAddressList(path string, addresses []string) error {
	var b strings.Builder
	for _, a := range addresses {
		b.WriteString(a)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// collectFiles expands the input path into the list of regular files to
// process. Directories require -recursive to descend past the top level.
func collectFiles(root string, recursive bool, excludes []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: note and move on.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return nil
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if excluded(path, excludes) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

func excluded(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
		if ok, _ := filepath.Match(p, path); ok {
			return true
		}
	}
	return false
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// resolveConfiguration resolves final settings from config file, profile,
// and command line flags.
func resolveConfiguration(cfg *config.Config, format, output string, recursive bool, workers int, verbose, debug, noColor bool) *runConfiguration {
	final := &runConfiguration{
		format:       cfg.Defaults.Format,
		output:       cfg.Defaults.Output,
		verbose:      cfg.Defaults.Verbose,
		debug:        cfg.Defaults.Debug,
		noColor:      cfg.Defaults.NoColor,
		recursive:    cfg.Defaults.Recursive,
		workers:      cfg.Defaults.Workers,
		excludes:     cfg.Defaults.ExcludePatterns,
		pdfMaxPages:  cfg.Extract.PDFMaxPages,
		enableImages: cfg.Extract.EnableImages,
	}

	if isFlagSet("format") && format != "" {
		final.format = format
	}
	if isFlagSet("output") && output != "" {
		final.output = output
	}
	if isFlagSet("recursive") {
		final.recursive = recursive
	}
	if isFlagSet("workers") && workers > 0 {
		final.workers = workers
	}
	if isFlagSet("verbose") {
		final.verbose = verbose
	}
	if isFlagSet("debug") {
		final.debug = debug
	}
	if isFlagSet("no-color") {
		final.noColor = noColor
	}
	return final
}

// isFlagSet checks if a flag was explicitly set on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func printProfiles(cfg *config.Config) {
	if len(cfg.Profiles) == 0 {
		fmt.Println("No profiles defined")
		return
	}
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		profile := cfg.Profiles[name]
		if profile.Description != "" {
			fmt.Printf("  %s - %s\n", name, profile.Description)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <file-or-directory>\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "Harvests email addresses from text, PDF and office documents.")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}
