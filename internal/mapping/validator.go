// file: internal/mapping/validator.go
// version: 1.1.0
// guid: 8c7d6e5f-4a3b-4c2d-1e0f-9a8b7c6d5e4f

package mapping

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/musiclib-tools/album-cleaner/internal/models"
)

// Validation error kinds. Callers match with errors.Is to decide
// whether to retry the business attempt.
var (
	ErrIncompleteMapping    = errors.New("incomplete mapping")
	ErrMalformedTrackNumber = errors.New("malformed track number")
	ErrDuplicateTrackNumber = errors.New("duplicate track number")
)

var reLeadingNumber = regexp.MustCompile(`^(\d+)`)

// Validate enforces the structural invariants on a proposed mapping:
// every local file must be a key, every value must start with a
// parseable track number, and no two values may share a number. A
// track-count mismatch against the official list is reference data
// drift, not an error; it is logged and ignored.
func Validate(mapping models.FilenameMapping, localFiles []string, officialTracks []string) error {
	var missing []string
	for _, f := range localFiles {
		if _, ok := mapping[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing mappings for files: %s", ErrIncompleteMapping, strings.Join(missing, ", "))
	}

	seen := make(map[int]string, len(mapping))
	for _, newName := range mapping {
		m := reLeadingNumber.FindStringSubmatch(newName)
		if m == nil {
			return fmt.Errorf("%w: new filename doesn't start with track number: %q", ErrMalformedTrackNumber, newName)
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrMalformedTrackNumber, newName, err)
		}
		if prev, dup := seen[num]; dup {
			return fmt.Errorf("%w: track %d used by both %q and %q", ErrDuplicateTrackNumber, num, prev, newName)
		}
		seen[num] = newName
	}

	switch {
	case len(officialTracks) == 0:
		log.Printf("[DEBUG] mapping: validated %d track mappings without official data", len(mapping))
	case len(mapping) != len(officialTracks):
		log.Printf("[WARN] mapping: track count mismatch: %d files, %d official tracks", len(mapping), len(officialTracks))
	}
	return nil
}

// TrackNumber returns the leading track number of a proposed filename,
// or -1 when there is none.
func TrackNumber(name string) int {
	m := reLeadingNumber.FindStringSubmatch(name)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}
