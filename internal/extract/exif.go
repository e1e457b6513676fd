// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"bytes"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// textTags are the EXIF fields that hold free-form text. Camera owners put
// contact details in surprisingly many of them.
var textTags = map[exif.FieldName]bool{
	exif.ImageDescription: true,
	exif.Artist:           true,
	exif.Copyright:        true,
	exif.Software:         true,
	exif.UserComment:      true,
	exif.XPTitle:          true,
	exif.XPComment:        true,
	exif.XPAuthor:         true,
	exif.XPKeywords:       true,
	exif.XPSubject:        true,
}

// EXIF extracts the text-valued metadata tags of a JPEG or TIFF image. The
// pixel data is never touched. Images without a usable EXIF segment yield an
// empty blob, not an error.
func EXIF(data []byte) (*TextBlob, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil && exif.IsCriticalError(err) {
		return &TextBlob{}, nil
	}

	w := &tagWalker{}
	if err := x.Walk(w); err != nil {
		return nil, &ExtractionError{Format: "exif", Err: err}
	}
	return &TextBlob{Fragments: w.fragments}, nil
}

type tagWalker struct {
	fragments []string
}

func (w *tagWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if tag == nil || !textTags[name] {
		return nil
	}
	value, err := tag.StringVal()
	if err != nil {
		// Non-ASCII encodings (UCS-2 XP* tags, typed UserComment) come back
		// as raw bytes; salvage the printable runs.
		value = printableRuns(tag.Val)
	}
	value = strings.TrimSpace(strings.ReplaceAll(value, "\x00", ""))
	if value != "" {
		w.fragments = append(w.fragments, value)
	}
	return nil
}

func printableRuns(raw []byte) string {
	var b strings.Builder
	for _, c := range raw {
		if (c >= 0x20 && c < 0x7f) || c == '\n' || c == '\t' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
