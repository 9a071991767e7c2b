// file: internal/zhconv/zhconv.go
// version: 1.2.0
// guid: 5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c1d

package zhconv

import (
	"path/filepath"
	"strings"

	"github.com/siongui/gojianfan"
	"golang.org/x/text/unicode/norm"

	"github.com/musiclib-tools/album-cleaner/internal/models"
)

// Characters that are illegal in filenames on at least one supported
// filesystem. Stripped, not replaced, matching the source library's
// behaviour across all platforms.
const illegalChars = `<>:"/\|?*`

// Normalizer converts strings between Chinese script variants and
// strips filesystem-illegal characters. Stateless; safe for
// concurrent use.
type Normalizer struct {
	lang models.Language
}

// New returns a Normalizer targeting the given language. For
// languages without a script conversion (English), normalization
// reduces to illegal-character stripping and NFC normalization.
func New(lang models.Language) *Normalizer {
	return &Normalizer{lang: lang}
}

// Filename normalizes a single filename: the base name is NFC
// normalized, script-converted when the target language requires it,
// and stripped of illegal characters. The extension is preserved
// untouched apart from script-safe cleanup.
func (n *Normalizer) Filename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return n.Text(base) + ext
}

// Text normalizes a plain string (no extension handling).
// Applying Text twice yields the same result as applying it once.
func (n *Normalizer) Text(s string) string {
	s = norm.NFC.String(s)
	if n.lang == models.TraditionalChinese {
		s = gojianfan.S2T(s)
	}
	return CleanFilename(s)
}

// All normalizes every value of a filename mapping in place and
// returns it. Keys (the original filenames) are never touched.
func (n *Normalizer) All(mapping models.FilenameMapping) models.FilenameMapping {
	for old, proposed := range mapping {
		mapping[old] = n.Filename(proposed)
	}
	return mapping
}

// ArtistAlbum converts an artist and album name pair. Used when
// naming the destination directory in pure-translation mode.
func (n *Normalizer) ArtistAlbum(artist, album string) (string, string) {
	return n.Text(artist), n.Text(album)
}

// CleanFilename strips filesystem-illegal characters and control
// characters from a name. It does no script conversion.
func CleanFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || strings.ContainsRune(illegalChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
