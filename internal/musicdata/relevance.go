// file: internal/musicdata/relevance.go
// version: 1.1.0
// guid: 8f7a6b5c-4d3e-4f2a-1b0c-9d8e7f6a5b4c

package musicdata

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ArtistsOverlap reports whether a found artist name plausibly refers
// to the queried artist. The check is substring containment in either
// direction after case folding; an empty query artist (identity
// extraction produced "unknown") must not veto anything.
func ArtistsOverlap(queryArtist, foundArtist string) bool {
	q := strings.ToLower(strings.TrimSpace(queryArtist))
	f := strings.ToLower(strings.TrimSpace(foundArtist))
	if q == "" || q == "unknown" || f == "" {
		return true
	}
	return strings.Contains(q, f) || strings.Contains(f, q)
}

// CharJaccard computes Jaccard similarity over the character sets of
// two strings, case-folded with whitespace ignored. Character sets
// rather than token sets keep the measure usable for CJK names, which
// rarely contain spaces.
func CharJaccard(a, b string) float64 {
	setA := charSet(a)
	setB := charSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	inter := 0
	for r := range setA {
		if setB[r] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func charSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '\t' {
			continue
		}
		set[r] = true
	}
	return set
}

// AlbumRelevant reports whether a found album name is close enough to
// the queried album name. Primary measure is character-set Jaccard
// against the threshold; a fuzzy subsequence match rescues cases like
// abbreviated editions. An empty hint skips the gate.
func AlbumRelevant(albumHint, foundAlbum string, threshold float64) bool {
	hint := strings.TrimSpace(albumHint)
	if hint == "" {
		return true
	}
	if CharJaccard(hint, foundAlbum) >= threshold {
		return true
	}
	return fuzzy.MatchNormalizedFold(hint, foundAlbum) || fuzzy.MatchNormalizedFold(foundAlbum, hint)
}
