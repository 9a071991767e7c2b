// file: internal/scanner/discovery.go
// version: 1.2.0
// guid: 8b7c6d5e-4f3a-4b2c-1d0e-9f8a7b6c5d4e

package scanner

import (
	"fmt"
	"log"
	"path/filepath"
)

// FileLister is the slice of the file repository that discovery needs.
type FileLister interface {
	ListAudioFiles(dir string) ([]string, error)
	ListSubdirectories(dir string) ([]string, error)
}

// Discovery scans a base directory for candidate album directories.
type Discovery struct {
	repo FileLister
}

// NewDiscovery returns a Discovery backed by the given file repository.
func NewDiscovery(repo FileLister) *Discovery {
	return &Discovery{repo: repo}
}

// DiscoverAlbums returns an AlbumRef for every immediate subdirectory
// of basePath that contains at least one recognized audio file. The
// result is sorted by directory name. A subdirectory that cannot be
// read is logged and skipped; only an unreadable base path is fatal.
func (d *Discovery) DiscoverAlbums(basePath string) ([]AlbumRef, error) {
	subdirs, err := d.repo.ListSubdirectories(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to scan base directory: %w", err)
	}

	var albums []AlbumRef
	for _, name := range subdirs {
		dir := filepath.Join(basePath, name)
		files, err := d.repo.ListAudioFiles(dir)
		if err != nil {
			log.Printf("[WARN] scanner: skipping unreadable directory %s: %v", dir, err)
			continue
		}
		if len(files) == 0 {
			log.Printf("[DEBUG] scanner: %s has no audio files, skipping", dir)
			continue
		}
		albums = append(albums, NewAlbumRef(dir))
	}

	log.Printf("[DEBUG] scanner: discovered %d album directories under %s", len(albums), basePath)
	return albums, nil
}
