// SPDX-License-Identifier: Apache-2.0

// Package extract turns raw file bytes into normalized text. One extractor
// exists per leaf format; all of them share the same contract: bytes in,
// TextBlob out, and a failure affects only the file being extracted.
package extract

import "fmt"

// TextBlob is the normalized textual content of one input file: an ordered
// sequence of fragments (pages, slides, sheets, XML entries). The harvester
// is order-insensitive, so fragment order only needs to be consistent per
// file, not meaningful.
type TextBlob struct {
	Fragments []string
}

// Text joins the fragments for pattern matching. Fragments are separated by
// newlines so a match can never span two fragments.
func (b *TextBlob) Text() string {
	switch len(b.Fragments) {
	case 0:
		return ""
	case 1:
		return b.Fragments[0]
	}
	n := 0
	for _, f := range b.Fragments {
		n += len(f) + 1
	}
	out := make([]byte, 0, n)
	for i, f := range b.Fragments {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, f...)
	}
	return string(out)
}

// Empty reports whether the blob holds no text at all. A blob with only
// empty fragments (e.g. a PDF of scanned images) is empty but not an error.
func (b *TextBlob) Empty() bool {
	for _, f := range b.Fragments {
		if f != "" {
			return false
		}
	}
	return true
}

// ExtractionError wraps a format-specific decode failure. Like
// ContainerError it is non-fatal: the file is skipped with a diagnostic and
// the run continues.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
