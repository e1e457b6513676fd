// SPDX-License-Identifier: Apache-2.0

package harvest

import (
	"reflect"
	"testing"
)

func TestHarvest_BasicMatches(t *testing.T) {
	text := "write to jane.doe@example.com or sales+eu@shop.co.uk today"
	got := Harvest(text)
	want := []string{"jane.doe@example.com", "sales+eu@shop.co.uk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Harvest = %v, want %v", got, want)
	}
}

func TestHarvest_PunctuationBoundaries(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"trailing period", "mail me at a.b@example.com.", "a.b@example.com"},
		{"parentheses", "(contact: x@example.org)", "x@example.org"},
		{"angle brackets", "From: <ops@example.net>", "ops@example.net"},
		{"exclamation", "ping admin@example.io!", "admin@example.io"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Harvest(tc.text)
			if len(got) != 1 || got[0] != tc.want {
				t.Errorf("Harvest(%q) = %v, want [%s]", tc.text, got, tc.want)
			}
		})
	}
}

func TestHarvest_NonMatches(t *testing.T) {
	cases := []string{
		"",
		"no addresses here",
		"missing@tld",
		"@example.com",
		"a@b.c", // single-letter TLD
	}
	for _, text := range cases {
		if got := Harvest(text); len(got) != 0 {
			t.Errorf("Harvest(%q) = %v, want none", text, got)
		}
	}
}

func TestHarvest_PreservesOriginalCase(t *testing.T) {
	got := Harvest("Jane.Doe@Example.COM")
	if len(got) != 1 || got[0] != "Jane.Doe@Example.COM" {
		t.Errorf("Harvest = %v, matcher must not change case", got)
	}
}

func TestEmailSet_CaseInsensitiveDedup(t *testing.T) {
	set := NewEmailSet()
	if !set.Add("Jane.Doe@Example.COM") {
		t.Error("first insert should be new")
	}
	if set.Add("jane.doe@example.com") {
		t.Error("case variant should not be new")
	}
	if set.Len() != 1 {
		t.Errorf("Len = %d, want 1", set.Len())
	}
	if got := set.Sorted(); len(got) != 1 || got[0] != "jane.doe@example.com" {
		t.Errorf("Sorted = %v, want lowercased member", got)
	}
}

func TestEmailSet_AddIdempotent(t *testing.T) {
	set := NewEmailSet()
	set.Add("a@example.com")
	before := set.Len()
	set.Add("a@example.com")
	set.Add("A@EXAMPLE.COM")
	if set.Len() != before {
		t.Errorf("Len changed from %d to %d on duplicate insert", before, set.Len())
	}
}

func TestEmailSet_UnionCommutative(t *testing.T) {
	build := func(addrs ...string) *EmailSet {
		s := NewEmailSet()
		s.AddAll(addrs)
		return s
	}
	a1 := build("a@example.com", "b@example.com")
	b1 := build("b@example.com", "c@example.com")
	a2 := build("a@example.com", "b@example.com")
	b2 := build("b@example.com", "c@example.com")

	a1.Union(b1)
	b2.Union(a2)
	if !reflect.DeepEqual(a1.Sorted(), b2.Sorted()) {
		t.Errorf("union order changed result: %v vs %v", a1.Sorted(), b2.Sorted())
	}
	if a1.Len() != 3 {
		t.Errorf("Len = %d, want 3", a1.Len())
	}
}

func TestEmailSet_SortedDeterministic(t *testing.T) {
	set := NewEmailSet()
	set.AddAll([]string{"z@example.com", "a@example.com", "m@example.com"})
	want := []string{"a@example.com", "m@example.com", "z@example.com"}
	for i := 0; i < 3; i++ {
		if got := set.Sorted(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Sorted = %v, want %v", got, want)
		}
	}
}

func TestHarvestIntoSet(t *testing.T) {
	set := NewEmailSet()
	set.AddAll(Harvest("contact: Jane.Doe@Example.COM or jane.doe@example.com!"))
	if set.Len() != 1 {
		t.Errorf("Len = %d, want 1", set.Len())
	}
	if !set.Contains("JANE.DOE@EXAMPLE.COM") {
		t.Error("Contains should ignore case")
	}
}
