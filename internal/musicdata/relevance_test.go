// file: internal/musicdata/relevance_test.go
// version: 1.0.0
// guid: 9a8b7c6d-5e4f-4a3b-2c1d-0e9f8a7b6c5d

package musicdata

import "testing"

func TestArtistsOverlap(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		found  string
		expect bool
	}{
		{"exact", "Jay Chou", "Jay Chou", true},
		{"case folded", "jay chou", "JAY CHOU", true},
		{"query contains found", "Jay Chou Band", "Jay Chou", true},
		{"found contains query", "Chou", "Jay Chou", true},
		{"disjoint", "Jay Chou", "Jolin Tsai", false},
		{"empty query passes", "", "Anyone", true},
		{"unknown query passes", "unknown", "Anyone", true},
		{"empty found passes", "Jay Chou", "", true},
		{"cjk overlap", "周杰伦", "周杰倫 Jay Chou", false}, // different script variants do not substring-match
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtistsOverlap(tt.query, tt.found); got != tt.expect {
				t.Errorf("ArtistsOverlap(%q, %q): expected %v, got %v", tt.query, tt.found, got, tt.expect)
			}
		})
	}
}

func TestCharJaccard(t *testing.T) {
	if got := CharJaccard("abc", "abc"); got != 1.0 {
		t.Errorf("identical strings: expected 1.0, got %v", got)
	}
	if got := CharJaccard("abc", "xyz"); got != 0.0 {
		t.Errorf("disjoint strings: expected 0.0, got %v", got)
	}
	if got := CharJaccard("", ""); got != 1.0 {
		t.Errorf("both empty: expected 1.0, got %v", got)
	}
	if got := CharJaccard("abc", ""); got != 0.0 {
		t.Errorf("one empty: expected 0.0, got %v", got)
	}
	// Whitespace and case are ignored.
	if got := CharJaccard("A B C", "cba"); got != 1.0 {
		t.Errorf("case/space insensitive: expected 1.0, got %v", got)
	}
	// Partial overlap lands strictly between the extremes.
	got := CharJaccard("abcd", "cdef")
	if got <= 0.0 || got >= 1.0 {
		t.Errorf("partial overlap out of range: %v", got)
	}
}

func TestAlbumRelevant(t *testing.T) {
	tests := []struct {
		name      string
		hint      string
		found     string
		threshold float64
		expect    bool
	}{
		{"same name", "Fantasy", "Fantasy", 0.3, true},
		{"deluxe edition", "Fantasy", "Fantasy (Deluxe Edition)", 0.3, true},
		{"unrelated", "Fantasy", "Zoology 9", 0.3, false},
		{"empty hint passes", "", "Whatever", 0.3, true},
		{"cjk exact", "叶惠美", "叶惠美", 0.3, true},
		{"fuzzy subsequence rescue", "Fant", "Fantasy", 0.99, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlbumRelevant(tt.hint, tt.found, tt.threshold); got != tt.expect {
				t.Errorf("AlbumRelevant(%q, %q, %v): expected %v, got %v", tt.hint, tt.found, tt.threshold, tt.expect, got)
			}
		})
	}
}

func TestLiteralQuery(t *testing.T) {
	if got := LiteralQuery("Jay Chou", "Fantasy"); got != `artist:"Jay Chou" album:"Fantasy"` {
		t.Errorf("unexpected fielded query: %q", got)
	}
	if got := LiteralQuery("unknown", "Fantasy"); got != "Fantasy" {
		t.Errorf("unknown artist should search album only, got %q", got)
	}
	if got := LiteralQuery("", "Fantasy"); got != "Fantasy" {
		t.Errorf("empty artist should search album only, got %q", got)
	}
}
