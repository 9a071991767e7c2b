// file: internal/scanner/albumref.go
// version: 1.1.0
// guid: 2e1f0a9b-8c7d-4e6f-5a4b-3c2d1e0f9a8b

package scanner

import (
	"log"
	"path/filepath"
	"regexp"
	"strings"
)

// Precompiled patterns — package-level to avoid per-call recompilation.
// Tried in order; first match wins. The cascade goes from the library's
// canonical layout to progressively weaker guesses.
var (
	// "[Artist] Album" — the canonical layout this tool produces.
	reBracketed = regexp.MustCompile(`^\[(.+?)\]\s*(.+)$`)

	// "Artist - Album" with a spaced dash.
	reDashed = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)

	// "Artist_Album" or "Artist.Album" single-separator forms.
	reUnderscore = regexp.MustCompile(`^([^_]+)_(.+)$`)
	reDotted     = regexp.MustCompile(`^([^.]+)\.(.+)$`)

	// "Artist《Album》" — CJK title brackets.
	reCJKBrackets = regexp.MustCompile(`^(.+?)《(.+?)》`)
)

// UnknownArtist is the artist guess used when no pattern matches.
const UnknownArtist = "unknown"

// AlbumRef is a candidate album directory with the artist and album
// names guessed from its basename. Computed once at scan time and
// never mutated.
type AlbumRef struct {
	Path   string
	Artist string
	Album  string
}

// NewAlbumRef derives an AlbumRef from a directory path.
func NewAlbumRef(path string) AlbumRef {
	artist, album := ExtractIdentity(filepath.Base(path))
	return AlbumRef{Path: path, Artist: artist, Album: album}
}

// ExtractIdentity parses "(artist, album)" from a directory basename
// using the ordered pattern cascade. Directories matching no pattern
// become ("unknown", wholeName): the metadata lookup and LLM still get
// a usable album string to work with.
func ExtractIdentity(dirName string) (artist, album string) {
	name := strings.TrimSpace(dirName)

	if m := reBracketed.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := reDashed.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := reUnderscore.FindStringSubmatch(name); m != nil && !strings.Contains(name, " ") {
		return strings.TrimSpace(m[1]), strings.TrimSpace(strings.ReplaceAll(m[2], "_", " "))
	}
	if m := reDotted.FindStringSubmatch(name); m != nil && !strings.Contains(name, " ") {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := reCJKBrackets.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	log.Printf("[DEBUG] scanner: no identity pattern matched %q, using whole name as album", dirName)
	return UnknownArtist, name
}
