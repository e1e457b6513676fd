// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strings"
	"testing"

	"email-harvest/internal/container"
)

func TestArchive_Docx(t *testing.T) {
	doc := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Contact us at</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>support@example.com</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	blob, err := Archive(container.Docx, []container.Entry{
		{Name: "word/document.xml", Data: []byte(doc)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := blob.Text()
	if !strings.Contains(text, "support@example.com") {
		t.Errorf("text = %q, missing address", text)
	}
	// Paragraph boundary must separate the runs.
	if strings.Contains(text, "atsupport") {
		t.Errorf("paragraphs fused: %q", text)
	}
}

func TestArchive_DocxTableCells(t *testing.T) {
	doc := `<w:tbl><w:tr>` +
		`<w:tc><w:p><w:t>a@example.com</w:t></w:p></w:tc>` +
		`<w:tc><w:p><w:t>b@example.com</w:t></w:p></w:tc>` +
		`</w:tr></w:tbl>`
	blob, err := Archive(container.Docx, []container.Entry{
		{Name: "word/document.xml", Data: []byte(doc)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := blob.Text(); strings.Contains(text, "comb@") {
		t.Errorf("adjacent cells fused: %q", text)
	}
}

func TestArchive_XlsxSharedStrings(t *testing.T) {
	shared := `<sst><si><t>alice@example.com</t></si><si><t>bob@example.com</t></si></sst>`
	sheet := `<worksheet><sheetData>` +
		`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>` +
		`<row r="2"><c r="A2"><v>42</v></c></row>` +
		`</sheetData></worksheet>`
	blob, err := Archive(container.Xlsx, []container.Entry{
		{Name: "xl/sharedStrings.xml", Data: []byte(shared)},
		{Name: "xl/worksheets/sheet1.xml", Data: []byte(sheet)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := blob.Text()
	for _, want := range []string{"alice@example.com", "bob@example.com", "42"} {
		if !strings.Contains(text, want) {
			t.Errorf("text = %q, missing %q", text, want)
		}
	}
}

func TestArchive_XlsxInlineString(t *testing.T) {
	sheet := `<worksheet><sheetData>` +
		`<row r="1"><c r="A1" t="inlineStr"><is><t>inline@example.com</t></is></c></row>` +
		`</sheetData></worksheet>`
	blob, err := Archive(container.Xlsx, []container.Entry{
		{Name: "xl/worksheets/sheet1.xml", Data: []byte(sheet)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := blob.Text(); !strings.Contains(text, "inline@example.com") {
		t.Errorf("text = %q, missing inline string", text)
	}
}

func TestArchive_Pptx(t *testing.T) {
	slide := `<p:sld><p:txBody>` +
		`<a:p><a:r><a:t>Reach the team:</a:t></a:r></a:p>` +
		`<a:p><a:r><a:t>team@example.com</a:t></a:r></a:p>` +
		`</p:txBody></p:sld>`
	blob, err := Archive(container.Pptx, []container.Entry{
		{Name: "ppt/slides/slide1.xml", Data: []byte(slide)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := blob.Text(); !strings.Contains(text, "team@example.com") {
		t.Errorf("text = %q, missing address", text)
	}
}

func TestArchive_Odt(t *testing.T) {
	content := `<office:document-content><office:body><office:text>` +
		`<text:p>Billing questions: <text:span>billing@example.com</text:span></text:p>` +
		`</office:text></office:body></office:document-content>`
	blob, err := Archive(container.Odt, []container.Entry{
		{Name: "content.xml", Data: []byte(content)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := blob.Text(); !strings.Contains(text, "billing@example.com") {
		t.Errorf("text = %q, missing address", text)
	}
}

func TestArchive_OdtTextOutsideParagraphs(t *testing.T) {
	// Producers are not obliged to wrap text in text:p; bare elements and
	// headings carry addresses too, so every text node must survive.
	content := `<office:document-content><text>x@y.io</text>` +
		`<text:h>Contact boss@corp.com</text:h>` +
		`</office:document-content>`
	blob, err := Archive(container.Odt, []container.Entry{
		{Name: "content.xml", Data: []byte(content)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := blob.Text()
	for _, want := range []string{"x@y.io", "boss@corp.com"} {
		if !strings.Contains(text, want) {
			t.Errorf("text = %q, missing %q", text, want)
		}
	}
}

func TestArchive_OdsTableCells(t *testing.T) {
	content := `<office:document-content><table:table-row>` +
		`<table:table-cell><text:p>a@example.com</text:p></table:table-cell>` +
		`<table:table-cell><text:p>b@example.com</text:p></table:table-cell>` +
		`</table:table-row></office:document-content>`
	blob, err := Archive(container.Ods, []container.Entry{
		{Name: "content.xml", Data: []byte(content)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := blob.Text()
	for _, want := range []string{"a@example.com", "b@example.com"} {
		if !strings.Contains(text, want) {
			t.Errorf("text = %q, missing %q", text, want)
		}
	}
	if strings.Contains(text, "comb@") {
		t.Errorf("adjacent cells fused: %q", text)
	}
}

func TestArchive_EntityUnescape(t *testing.T) {
	doc := `<w:p><w:t>a&amp;b@example.com &lt;quoted&gt;</w:t></w:p>`
	blob, err := Archive(container.Docx, []container.Entry{
		{Name: "word/document.xml", Data: []byte(doc)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := blob.Text()
	if !strings.Contains(text, "a&b@example.com") {
		t.Errorf("text = %q, entity not unescaped", text)
	}
	if !strings.Contains(text, "<quoted>") {
		t.Errorf("text = %q, angle entities not unescaped", text)
	}
}

func TestSheetText_BadSharedIndex(t *testing.T) {
	// A shared-string index past the table must not panic and must keep the
	// raw value.
	sheet := `<row r="1"><c r="A1" t="s"><v>99</v></c></row>`
	got := sheetText([]byte(sheet), []string{"only-one"})
	if !strings.Contains(got, "99") {
		t.Errorf("got %q, want raw index preserved", got)
	}
}
