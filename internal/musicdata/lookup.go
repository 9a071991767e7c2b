// file: internal/musicdata/lookup.go
// version: 1.0.0
// guid: 1c0d9e8f-7a6b-4c5d-4e3f-2a1b0c9d8e7f

package musicdata

import (
	"context"
	"errors"

	"github.com/musiclib-tools/album-cleaner/internal/models"
)

// ErrNotFound reports that no relevant album matched a search query.
// It is a degraded-path signal, not a failure: the orchestrator falls
// back to LLM-only mode after exhausting its query budget.
var ErrNotFound = errors.New("album not found")

// Lookup is the metadata-search collaborator. query is the raw search
// string; artistHint and albumHint carry the caller's identity guess
// and drive relevance gating of ranked results (an empty hint skips
// its gate).
type Lookup interface {
	SearchAlbum(ctx context.Context, query, artistHint, albumHint string) (*models.AlbumTracks, error)
}
