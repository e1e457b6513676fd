// SPDX-License-Identifier: Apache-2.0

// Package harvest finds email addresses in extracted text and accumulates
// them into a deduplicated set.
package harvest

import "regexp"

// emailPattern matches the pragmatic email shape: local part of word
// characters plus ._%+-, an @, a dotted domain, and an alphabetic TLD of at
// least two letters. It is intentionally narrower than RFC 5322; quoted
// local parts and IP-literal domains are noise in practice.
//
// MustCompile makes a broken pattern a startup crash instead of a silent
// zero-match run.
var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Harvest returns every email-shaped match in text, in match order, without
// deduplication. Callers fold the result into an EmailSet.
func Harvest(text string) []string {
	if text == "" {
		return nil
	}
	return emailPattern.FindAllString(text, -1)
}
