// file: internal/fileops/repository.go
// version: 1.2.0
// guid: 9e8f7a6b-5c4d-4e3f-2a1b-0c9d8e7f6a5c

package fileops

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Recognized audio file extensions, compared case-insensitively.
var audioExtensions = map[string]bool{
	".dsd": true, ".dff": true, ".dsf": true, ".wav": true,
	".aiff": true, ".aif": true, ".flac": true, ".alac": true,
	".dts": true, ".thd": true, ".mlp": true, ".mqa": true,
	".tak": true, ".ape": true, ".mp3": true, ".aac": true,
	".m4a": true, ".ogg": true, ".wma": true,
}

// Recognized image file extensions (cover art and booklet scans).
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true,
	".gif": true, ".webp": true,
}

// Repository performs all filesystem reads and writes for album
// processing. It is the single seam between the pipeline and the OS,
// so tests can run it against a temp directory.
type Repository struct{}

// NewRepository returns a filesystem-backed repository.
func NewRepository() *Repository {
	return &Repository{}
}

// IsAudioFile reports whether a filename has a recognized audio extension.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsImageFile reports whether a filename has a recognized image extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListAudioFiles returns the audio filenames in dir in natural order,
// so "track2" sorts before "track10". A missing directory yields an
// empty list, not an error; the caller treats zero files as its own
// precondition failure.
func (r *Repository) ListAudioFiles(dir string) ([]string, error) {
	return r.listByFilter(dir, IsAudioFile)
}

// ListImageFiles returns the image filenames in dir in natural order.
func (r *Repository) ListImageFiles(dir string) ([]string, error) {
	return r.listByFilter(dir, IsImageFile)
}

// ListOtherFiles returns the filenames in dir that are neither audio
// nor image files, in natural order.
func (r *Repository) ListOtherFiles(dir string) ([]string, error) {
	return r.listByFilter(dir, func(name string) bool {
		return !IsAudioFile(name) && !IsImageFile(name)
	})
}

func (r *Repository) listByFilter(dir string, keep func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if keep(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})
	return names, nil
}

// ListSubdirectories returns the immediate subdirectories of dir,
// sorted lexicographically.
func (r *Repository) ListSubdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// CopyFile copies src to dst, creating parent directories on demand.
// The write goes through a temp file in the destination directory and
// is renamed into place, so a partial copy never shadows a real file.
// The source is never modified.
func (r *Repository) CopyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".copy-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize copy: %w", err)
	}

	if info, err := os.Stat(src); err == nil {
		if err := os.Chmod(tmpPath, info.Mode()); err != nil {
			log.Printf("[WARN] fileops: could not preserve mode for %s: %v", dst, err)
		}
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move copy into place: %w", err)
	}
	return nil
}

// RenameFile moves src to dst, creating parent directories on demand.
func (r *Repository) RenameFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// MakeDir creates a directory (and parents) if it does not exist.
func (r *Repository) MakeDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
