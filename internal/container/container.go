// SPDX-License-Identifier: Apache-2.0

package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Subtype identifies which document family a ZIP container holds, determined
// by the characteristic entry names each family places inside the archive.
type Subtype int

const (
	UnknownZip Subtype = iota
	Docx
	Xlsx
	Pptx
	Odt
	Ods
	Odp
)

func (s Subtype) String() string {
	switch s {
	case Docx:
		return "docx"
	case Xlsx:
		return "xlsx"
	case Pptx:
		return "pptx"
	case Odt:
		return "odt"
	case Ods:
		return "ods"
	case Odp:
		return "odp"
	default:
		return "unknown-zip"
	}
}

// Entry is one named file inside a ZIP archive. Entries live only for the
// decomposition of a single input file and are never shared across files.
type Entry struct {
	Name string
	Data []byte
}

// ContainerError wraps failures to open or enumerate a ZIP archive. It is
// non-fatal to the run: the offending file is skipped and processing
// continues.
type ContainerError struct {
	Op  string
	Err error
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("container %s: %v", e.Op, e.Err)
}

func (e *ContainerError) Unwrap() error { return e.Err }

// maxEntrySize bounds how much we will inflate from a single archive entry,
// protecting against zip bombs in hostile input.
const maxEntrySize = 64 * 1024 * 1024

// ODF mimetype strings, stored as the uncompressed "mimetype" entry.
const (
	odfTextMime         = "application/vnd.oasis.opendocument.text"
	odfSpreadsheetMime  = "application/vnd.oasis.opendocument.spreadsheet"
	odfPresentationMime = "application/vnd.oasis.opendocument.presentation"
)

var (
	sheetNameRe = regexp.MustCompile(`^xl/worksheets/sheet(\d+)\.xml$`)
	slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
)

// Decompose opens data as a ZIP archive, resolves its document-family
// subtype, and returns the entries that hold document text, in a consistent
// per-archive order. A plain ZIP of unrelated files yields UnknownZip with
// no entries and no error; a corrupt archive yields a ContainerError.
func Decompose(data []byte) (Subtype, []Entry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return UnknownZip, nil, &ContainerError{Op: "open", Err: err}
	}

	sub := resolveSubtype(reader)
	if sub == UnknownZip {
		return UnknownZip, nil, nil
	}

	entries, err := collectTextEntries(reader, sub)
	if err != nil {
		return sub, nil, err
	}
	return sub, entries, nil
}

// resolveSubtype inspects entry names for the markers each family is
// required to carry: word/document.xml (Word), xl/ shared strings or sheets
// (Excel), ppt/slides/ (PowerPoint), content.xml (OpenDocument, with the
// mimetype entry disambiguating text/spreadsheet/presentation).
func resolveSubtype(r *zip.Reader) Subtype {
	var hasContentXML bool
	var mimetype string

	for _, f := range r.File {
		switch {
		case f.Name == "word/document.xml":
			return Docx
		case f.Name == "xl/sharedStrings.xml" || sheetNameRe.MatchString(f.Name):
			return Xlsx
		case slideNameRe.MatchString(f.Name):
			return Pptx
		case f.Name == "content.xml":
			hasContentXML = true
		case f.Name == "mimetype":
			if data, err := readEntry(f); err == nil {
				mimetype = strings.TrimSpace(string(data))
			}
		}
	}

	if !hasContentXML {
		return UnknownZip
	}
	switch mimetype {
	case odfSpreadsheetMime:
		return Ods
	case odfPresentationMime:
		return Odp
	case odfTextMime:
		return Odt
	default:
		// Some producers omit the mimetype entry; content.xml alone is
		// enough to treat the archive as OpenDocument text.
		return Odt
	}
}

// collectTextEntries gathers the text-bearing entries for the resolved
// subtype. Enumeration order is not guaranteed sorted by the archive, but it
// is made consistent here (sheets and slides by number) so repeated runs over
// the same file produce the same fragment order.
func collectTextEntries(r *zip.Reader, sub Subtype) ([]Entry, error) {
	var names []string

	switch sub {
	case Docx:
		names = append(names, "word/document.xml")
		for _, f := range r.File {
			if strings.HasPrefix(f.Name, "word/header") && strings.HasSuffix(f.Name, ".xml") {
				names = append(names, f.Name)
			}
		}
		for _, f := range r.File {
			if strings.HasPrefix(f.Name, "word/footer") && strings.HasSuffix(f.Name, ".xml") {
				names = append(names, f.Name)
			}
		}

	case Xlsx:
		if lookup(r, "xl/sharedStrings.xml") != nil {
			names = append(names, "xl/sharedStrings.xml")
		}
		var sheets []string
		for _, f := range r.File {
			if sheetNameRe.MatchString(f.Name) {
				sheets = append(sheets, f.Name)
			}
		}
		sortByNumber(sheets, sheetNameRe)
		names = append(names, sheets...)

	case Pptx:
		var slides []string
		for _, f := range r.File {
			if slideNameRe.MatchString(f.Name) {
				slides = append(slides, f.Name)
			}
		}
		sortByNumber(slides, slideNameRe)
		names = append(names, slides...)
		for _, f := range r.File {
			if strings.HasPrefix(f.Name, "ppt/notesSlides/notesSlide") && strings.HasSuffix(f.Name, ".xml") {
				names = append(names, f.Name)
			}
		}

	case Odt, Ods, Odp:
		names = append(names, "content.xml")
		if lookup(r, "styles.xml") != nil {
			names = append(names, "styles.xml")
		}
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		f := lookup(r, name)
		if f == nil {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, &ContainerError{Op: "read " + name, Err: err}
		}
		entries = append(entries, Entry{Name: name, Data: data})
	}

	if len(entries) == 0 {
		return nil, &ContainerError{Op: "collect", Err: fmt.Errorf("no document text entry for %s", sub)}
	}
	return entries, nil
}

func lookup(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxEntrySize {
		return nil, fmt.Errorf("entry too large: %d bytes (max %d)", f.UncompressedSize64, maxEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
}

// sortByNumber orders names like sheet2.xml, sheet10.xml numerically instead
// of lexically.
func sortByNumber(names []string, re *regexp.Regexp) {
	num := func(name string) int {
		m := re.FindStringSubmatch(name)
		if len(m) < 2 {
			return 1 << 30
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 1 << 30
		}
		return n
	}
	sort.Slice(names, func(i, j int) bool { return num(names[i]) < num(names[j]) })
}
