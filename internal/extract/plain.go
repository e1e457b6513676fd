// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strings"
	"unicode/utf8"
)

// Plain extracts text from files that are already text. Breach-dump text
// files are routinely not valid UTF-8 (Latin-1 exports, truncated multibyte
// sequences), so decoding is best-effort: invalid sequences are dropped
// rather than aborting the file.
func Plain(data []byte) (*TextBlob, error) {
	content := string(data)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}
	// NUL bytes survive ToValidUTF8 but break downstream line handling.
	content = strings.ReplaceAll(content, "\x00", "")
	return &TextBlob{Fragments: []string{content}}, nil
}
