// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"email-harvest/internal/container"
)

// The office and OpenDocument families are both ZIP archives of XML, but
// text lives under different elements per family. Extraction here is
// deliberately regex-based rather than a full XML parse: the goal is a flat
// text stream for pattern matching, not a document model, and regexes stay
// tolerant of the namespace-prefix and attribute noise real producers emit.
var (
	wordParaRe   = regexp.MustCompile(`</w:p>`)
	wordTabRe    = regexp.MustCompile(`<w:tab[^>]*/?>`)
	wordCellRe   = regexp.MustCompile(`</w:tc>`)
	drawTextRe   = regexp.MustCompile(`<a:t[^>]*>(.*?)</a:t>`)
	odfBreakRe   = regexp.MustCompile(`</text:[ph]>`)
	odfTabRe     = regexp.MustCompile(`<text:tab[^>]*/?>`)
	sharedItemRe = regexp.MustCompile(`(?s)<si>(.*?)</si>`)
	sharedTextRe = regexp.MustCompile(`(?s)<t[^>]*>(.*?)</t>`)
	sheetRowRe   = regexp.MustCompile(`(?s)<row[^>]*>(.*?)</row>`)
	sheetCellRe  = regexp.MustCompile(`(?s)<c[^>]*?>.*?(?:<v>(.*?)</v>|<is>.*?<t[^>]*>(.*?)</t>.*?</is>).*?</c>`)
	anyTagRe     = regexp.MustCompile(`<[^>]*>`)
	multiSpaceRe = regexp.MustCompile(`[ ]{2,}`)
	multiBlankRe = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// Archive extracts the text of a decomposed ZIP container: one fragment per
// entry, in the order the decomposer supplied them.
func Archive(sub container.Subtype, entries []container.Entry) (*TextBlob, error) {
	blob := &TextBlob{Fragments: make([]string, 0, len(entries))}

	switch sub {
	case container.Docx:
		for _, e := range entries {
			blob.Fragments = append(blob.Fragments, wordText(e.Data))
		}

	case container.Xlsx:
		var shared []string
		for _, e := range entries {
			if e.Name == "xl/sharedStrings.xml" {
				shared = sharedStrings(e.Data)
				continue
			}
			blob.Fragments = append(blob.Fragments, sheetText(e.Data, shared))
		}

	case container.Pptx:
		for _, e := range entries {
			blob.Fragments = append(blob.Fragments, drawingText(e.Data))
		}

	case container.Odt, container.Ods, container.Odp:
		for _, e := range entries {
			blob.Fragments = append(blob.Fragments, odfText(e.Data))
		}
	}

	return blob, nil
}

// wordText flattens WordprocessingML: paragraph and table-cell boundaries
// become line breaks and tabs so addresses in adjacent cells do not fuse,
// then remaining markup is stripped.
func wordText(data []byte) string {
	s := string(data)
	s = wordCellRe.ReplaceAllString(s, "\t")
	s = wordParaRe.ReplaceAllString(s, "\n")
	s = wordTabRe.ReplaceAllString(s, "\t")
	s = anyTagRe.ReplaceAllString(s, "")
	return tidy(unescapeEntities(s))
}

// drawingText collects DrawingML text runs (<a:t>), used by slides, notes
// and slide masters.
func drawingText(data []byte) string {
	var b strings.Builder
	for _, m := range drawTextRe.FindAllStringSubmatch(string(data), -1) {
		text := unescapeEntities(m[1])
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return tidy(b.String())
}

// odfText flattens OpenDocument XML the way wordText flattens
// WordprocessingML: paragraph and heading boundaries become line breaks,
// then all remaining markup is stripped. Stripping rather than selecting
// keeps every text node, including headings and elements some producers
// emit without the text:p wrapper.
func odfText(data []byte) string {
	s := string(data)
	s = odfBreakRe.ReplaceAllString(s, "\n")
	s = odfTabRe.ReplaceAllString(s, "\t")
	// A space per tag keeps adjacent table cells and spans from fusing.
	s = anyTagRe.ReplaceAllString(s, " ")
	return tidy(unescapeEntities(s))
}

// sharedStrings parses the xl/sharedStrings.xml table. Each <si> item may
// split its text across several <t> runs.
func sharedStrings(data []byte) []string {
	var out []string
	for _, si := range sharedItemRe.FindAllStringSubmatch(string(data), -1) {
		var b strings.Builder
		for _, t := range sharedTextRe.FindAllStringSubmatch(si[1], -1) {
			b.WriteString(unescapeEntities(t[1]))
		}
		out = append(out, b.String())
	}
	return out
}

// sheetText extracts worksheet cell values, resolving t="s" cells through
// the shared-strings table. Rows become lines, cells become tab-separated
// values.
func sheetText(data []byte, shared []string) string {
	var b strings.Builder
	for _, row := range sheetRowRe.FindAllStringSubmatch(string(data), -1) {
		var line strings.Builder
		for _, cell := range sheetCellRe.FindAllStringSubmatch(row[1], -1) {
			var value string
			switch {
			case cell[1] != "":
				value = cell[1]
				if strings.Contains(cell[0], `t="s"`) {
					idx, err := strconv.Atoi(value)
					if err == nil && idx >= 0 && idx < len(shared) {
						value = shared[idx]
					}
				}
			case cell[2] != "":
				value = cell[2]
			}
			value = unescapeEntities(value)
			if value != "" {
				line.WriteString(value)
				line.WriteByte('\t')
			}
		}
		if line.Len() > 0 {
			b.WriteString(strings.TrimRight(line.String(), "\t"))
			b.WriteByte('\n')
		}
	}
	return tidy(b.String())
}

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#xA;", "\n",
	"&#x9;", "\t",
	"&amp;", "&", // last, so &amp;lt; round-trips as &lt;
)

func unescapeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityReplacer.Replace(s)
}

func tidy(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = multiBlankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
