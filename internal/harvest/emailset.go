// SPDX-License-Identifier: Apache-2.0

package harvest

import (
	"sort"
	"strings"
)

// EmailSet is a case-insensitive set of email addresses. Addresses are
// stored lowercased, so Jane@Example.COM and jane@example.com are one
// member. The set is not safe for concurrent use; the worker pool merges
// per-file results through a single collector.
type EmailSet struct {
	addrs map[string]struct{}
}

// NewEmailSet returns an empty set.
func NewEmailSet() *EmailSet {
	return &EmailSet{addrs: make(map[string]struct{})}
}

// Add inserts one address and reports whether it was new to the set.
func (s *EmailSet) Add(addr string) bool {
	key := strings.ToLower(addr)
	if _, ok := s.addrs[key]; ok {
		return false
	}
	s.addrs[key] = struct{}{}
	return true
}

// AddAll inserts every address and returns the number that were new.
func (s *EmailSet) AddAll(addrs []string) int {
	added := 0
	for _, a := range addrs {
		if s.Add(a) {
			added++
		}
	}
	return added
}

// Union merges other into s. Merging is commutative and idempotent, so the
// final set is independent of the order files finish in.
func (s *EmailSet) Union(other *EmailSet) {
	if other == nil {
		return
	}
	for a := range other.addrs {
		s.addrs[a] = struct{}{}
	}
}

// Contains reports membership, ignoring case.
func (s *EmailSet) Contains(addr string) bool {
	_, ok := s.addrs[strings.ToLower(addr)]
	return ok
}

// Len returns the number of distinct addresses.
func (s *EmailSet) Len() int { return len(s.addrs) }

// Sorted returns the members in lexicographic order for deterministic
// output.
func (s *EmailSet) Sorted() []string {
	out := make([]string, 0, len(s.addrs))
	for a := range s.addrs {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
