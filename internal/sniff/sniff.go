// SPDX-License-Identifier: Apache-2.0

package sniff

// FileType classifies a file's content format from its leading bytes.
// The file extension is untrusted metadata and never consulted.
type FileType int

const (
	Unrecognized FileType = iota
	PlainText
	Pdf
	Zip
	Jpeg
	Tiff
)

// PrefixSize is the number of leading bytes Detect needs at most.
// Callers may pass fewer bytes (or the whole file if it is small).
const PrefixSize = 512

// String returns the classification name for diagnostics.
func (t FileType) String() string {
	switch t {
	case PlainText:
		return "plaintext"
	case Pdf:
		return "pdf"
	case Zip:
		return "zip"
	case Jpeg:
		return "jpeg"
	case Tiff:
		return "tiff"
	default:
		return "unrecognized"
	}
}

// Magic number signatures. See https://en.wikipedia.org/wiki/List_of_file_signatures.
var (
	pdfMagic     = []byte("%PDF-")
	zipMagic     = []byte{0x50, 0x4B, 0x03, 0x04} // PK\x03\x04 local file header
	jpegMagic    = []byte{0xFF, 0xD8, 0xFF}
	tiffLEMagic  = []byte("II*\x00")
	tiffBEMagic  = []byte("MM\x00*")
	utf8BOMMagic = []byte{0xEF, 0xBB, 0xBF}
)

// Detect classifies the given byte prefix. It is a pure function: identical
// bytes always yield identical classifications. Zero-length input is
// Unrecognized. The ZIP subtype (which office/document family the archive
// holds) is resolved later by the container decomposer; Detect only makes
// the outer ZIP-vs-not decision.
func Detect(prefix []byte) FileType {
	if len(prefix) == 0 {
		return Unrecognized
	}

	switch {
	case hasPrefix(prefix, pdfMagic):
		return Pdf
	case hasPrefix(prefix, zipMagic):
		return Zip
	case hasPrefix(prefix, jpegMagic):
		return Jpeg
	case hasPrefix(prefix, tiffLEMagic), hasPrefix(prefix, tiffBEMagic):
		return Tiff
	}

	if looksLikeText(prefix) {
		return PlainText
	}
	return Unrecognized
}

func hasPrefix(b, magic []byte) bool {
	if len(b) < len(magic) {
		return false
	}
	for i := range magic {
		if b[i] != magic[i] {
			return false
		}
	}
	return true
}

// looksLikeText reports whether the prefix is plausibly human-readable text.
// Plain text has no magic number, so this is a heuristic: no NUL bytes and a
// high ratio of printable characters in the first PrefixSize bytes. Breach
// dumps are frequently not valid UTF-8, so the check is byte-oriented and
// deliberately permissive about high bytes (Latin-1 and friends).
func looksLikeText(b []byte) bool {
	if len(b) > PrefixSize {
		b = b[:PrefixSize]
	}
	if hasPrefix(b, utf8BOMMagic) {
		b = b[len(utf8BOMMagic):]
		if len(b) == 0 {
			return true
		}
	}

	printable := 0
	for _, c := range b {
		if c == 0 {
			return false
		}
		if (c >= 32 && c <= 126) || c == '\t' || c == '\n' || c == '\r' || c >= 128 {
			printable++
		}
	}
	return float64(printable)/float64(len(b)) > 0.95
}
