// SPDX-License-Identifier: Apache-2.0

// Package router dispatches each input file to the extractor its content
// asks for. Classification happens once per file, on leading bytes only;
// whatever happens to a file stays with that file.
package router

import (
	"fmt"

	"email-harvest/internal/container"
	"email-harvest/internal/extract"
	"email-harvest/internal/observability"
	"email-harvest/internal/sniff"
)

// Outcome is the per-file disposition the run reports.
type Outcome int

const (
	// Extracted means text was pulled out of the file, possibly none.
	Extracted Outcome = iota
	// Skipped means the file's format is not one we read. Not an error.
	Skipped
	// Failed means the file claimed a known format but could not be decoded.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Extracted:
		return "extracted"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the full disposition of one routed file.
type Result struct {
	Path    string
	Type    sniff.FileType
	Subtype container.Subtype
	Blob    *extract.TextBlob
	Outcome Outcome
	Reason  string
	Err     error
}

// Router classifies file content and runs the matching extractor.
type Router struct {
	observer     *observability.Observer
	pdfMaxPages  int
	enableImages bool
}

// New creates a router. pdfMaxPages <= 0 means unlimited pages per PDF.
func New(pdfMaxPages int, enableImages bool) *Router {
	return &Router{pdfMaxPages: pdfMaxPages, enableImages: enableImages}
}

// SetObserver attaches an observer for operation timing and per-file events.
func (r *Router) SetObserver(obs *observability.Observer) {
	r.observer = obs
}

// Route classifies data and extracts its text. It never returns an error:
// every failure mode is folded into the Result so the caller's loop has a
// single shape. Extractor panics on hostile input are contained here and
// reported as a Failed outcome for that file alone.
func (r *Router) Route(path string, data []byte) (result *Result) {
	complete := r.observer.StartTiming("router", "route", path)

	defer func() {
		if rec := recover(); rec != nil {
			result = &Result{
				Path:    path,
				Outcome: Failed,
				Reason:  "extractor panic",
				Err:     fmt.Errorf("extractor panic: %v", rec),
			}
		}
		r.observer.LogFileEvent(observability.FileEvent{
			Path:    path,
			Size:    int64(len(data)),
			Outcome: result.Outcome.String(),
			Reason:  result.Reason,
		})
		complete(result.Outcome != Failed, map[string]any{
			"type":    result.Type.String(),
			"subtype": result.Subtype.String(),
		})
	}()

	fileType := sniff.Detect(prefix(data))
	result = &Result{Path: path, Type: fileType}

	switch fileType {
	case sniff.PlainText:
		result.Blob, result.Err = extract.Plain(data)

	case sniff.Pdf:
		result.Blob, result.Err = extract.PDF(data, r.pdfMaxPages)

	case sniff.Zip:
		sub, entries, err := container.Decompose(data)
		result.Subtype = sub
		if err != nil {
			result.Err = err
			break
		}
		if sub == container.UnknownZip {
			result.Outcome = Skipped
			result.Reason = "zip archive with no recognized document entry"
			return result
		}
		result.Blob, result.Err = extract.Archive(sub, entries)

	case sniff.Jpeg, sniff.Tiff:
		if !r.enableImages {
			result.Outcome = Skipped
			result.Reason = "image metadata extraction disabled"
			return result
		}
		result.Blob, result.Err = extract.EXIF(data)

	default:
		result.Outcome = Skipped
		result.Reason = "no magic number matched and content is not text"
		return result
	}

	if result.Err != nil {
		result.Outcome = Failed
		result.Reason = result.Err.Error()
		result.Blob = nil
		return result
	}

	result.Outcome = Extracted
	return result
}

func prefix(data []byte) []byte {
	if len(data) > sniff.PrefixSize {
		return data[:sniff.PrefixSize]
	}
	return data
}
