// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DefaultPDFMaxPages bounds how many pages are extracted from a single PDF
// so a pathological document cannot dominate a run.
const DefaultPDFMaxPages = 50

var pdfcpuConf = model.NewDefaultConfiguration()

// PDF extracts page text from a PDF document in page order. Pages with no
// extractable text (scanned images) contribute empty fragments rather than
// errors. maxPages <= 0 means no limit. A structurally malformed document
// yields an ExtractionError for this file only.
func PDF(data []byte, maxPages int) (blob *TextBlob, err error) {
	// The PDF parser panics on some malformed object graphs; convert that
	// to a recoverable per-file failure.
	defer func() {
		if r := recover(); r != nil {
			blob = nil
			err = &ExtractionError{Format: "pdf", Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Format: "pdf", Err: err}
	}

	pageCount := reader.NumPage()
	if maxPages > 0 && pageCount > maxPages {
		pageCount = maxPages
	}

	blob = &TextBlob{Fragments: make([]string, 0, pageCount+1)}
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			blob.Fragments = append(blob.Fragments, "")
			continue
		}
		text, pageErr := pageText(page)
		if pageErr != nil {
			// One broken page is not a broken document.
			blob.Fragments = append(blob.Fragments, "")
			continue
		}
		blob.Fragments = append(blob.Fragments, strings.TrimSpace(text))
	}

	// AcroForm field values frequently carry contact details that page text
	// operators do not.
	if formText := formFieldText(reader); formText != "" {
		blob.Fragments = append(blob.Fragments, formText)
	}

	// Nothing extracted at all: distinguish a legitimately image-only
	// document from a corrupt one. pdfcpu validates the cross-reference
	// table and object graph without rendering anything.
	if blob.Empty() {
		if vErr := api.Validate(bytes.NewReader(data), pdfcpuConf); vErr != nil {
			return nil, &ExtractionError{Format: "pdf", Err: fmt.Errorf("no text and document invalid: %w", vErr)}
		}
	}

	return blob, nil
}

// pageText extracts one page using row-based positioning for accurate
// spacing, falling back to plain text extraction when row data is missing.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	// PDF Y coordinates grow bottom-up; lower average Y first gives
	// top-to-bottom reading order.
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) < averageY(sorted[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sorted {
		line := joinRow(row.Content)
		if strings.TrimSpace(line) != "" {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}

func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, e := range elements {
		total += e.Y
	}
	return total / float64(len(elements))
}

// joinRow reassembles a row's text elements left to right, inserting spaces
// where the horizontal gap between elements is significant relative to the
// font size. Without this, "jane.doe@example.com 555-0100" collapses into a
// single run and the boundary between values is lost.
func joinRow(elements []pdf.Text) string {
	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var buf bytes.Buffer
	for i, e := range sorted {
		buf.WriteString(e.S)
		if i == len(sorted)-1 {
			continue
		}
		gap := sorted[i+1].X - (e.X + e.W)
		fontSize := e.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		if gap > fontSize*0.2 {
			buf.WriteByte(' ')
		}
	}
	return buf.String()
}

// formFieldText pulls AcroForm field names and values from the document
// catalog. PDFs without forms return "".
func formFieldText(r *pdf.Reader) string {
	root := r.Trailer().Key("Root")
	if root.IsNull() {
		return ""
	}
	acroForm := root.Key("AcroForm")
	if acroForm.IsNull() {
		return ""
	}
	fields := acroForm.Key("Fields")
	if fields.IsNull() || fields.Kind() != pdf.Array {
		return ""
	}

	var buf bytes.Buffer
	for i := 0; i < fields.Len(); i++ {
		field := fields.Index(i)
		if field.IsNull() || field.Kind() != pdf.Dict {
			continue
		}
		name, value := fieldNameValue(field)
		if name != "" && value != "" {
			fmt.Fprintf(&buf, "%s: %s\n", name, value)
		}
	}
	return strings.TrimSpace(buf.String())
}

func fieldNameValue(field pdf.Value) (string, string) {
	var name, value string
	if t := field.Key("T"); !t.IsNull() && t.Kind() == pdf.String {
		name = t.Text()
	}
	if v := field.Key("V"); !v.IsNull() {
		switch v.Kind() {
		case pdf.String:
			value = v.Text()
		case pdf.Name:
			value = v.Name()
		}
	}
	if value == "" {
		if dv := field.Key("DV"); !dv.IsNull() {
			switch dv.Kind() {
			case pdf.String:
				value = dv.Text()
			case pdf.Name:
				value = dv.Name()
			}
		}
	}
	return name, value
}
