// file: internal/organizer/executor.go
// version: 1.2.0
// guid: 0a9b8c7d-6e5f-4a4b-3c2d-1e0f9a8b7c6e

package organizer

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/musiclib-tools/album-cleaner/internal/config"
	"github.com/musiclib-tools/album-cleaner/internal/models"
	"github.com/musiclib-tools/album-cleaner/internal/zhconv"
)

// Executor applies a finalized mapping to disk. Copy mode writes into
// a cleaned/ tree beside the album's parent and never touches the
// source; in-place mode renames within the album directory and skips
// no-ops so a second run performs zero writes.
type Executor struct {
	repo FileRepo
	norm *zhconv.Normalizer
	mode string
}

// Execute performs the audio renames plus cover/supplementary
// relabeling and returns the count of audio files actually written.
// Image and supplementary relabels are side effects, excluded from
// the count.
func (e *Executor) Execute(albumPath string, m models.FilenameMapping, artist, album string) (int, error) {
	destDir := albumPath
	if e.mode == config.ModeCopy {
		destDir = e.cleanedDir(albumPath, artist, album)
		if err := e.repo.MakeDir(destDir); err != nil {
			return 0, err
		}
	}

	keys := sortedKeys(m)

	// Sources not yet renamed. An in-place destination matching one of
	// these must stage through a temporary name, or the rename would
	// overwrite a file that still needs processing (e.g. a mapping
	// swapping two track numbers).
	pending := make(map[string]bool, len(keys))
	for _, old := range keys {
		pending[old] = true
	}

	type stagedRename struct {
		tmp string
		dst string
	}
	var staged []stagedRename

	processed := 0
	for i, old := range keys {
		delete(pending, old)

		// Normalization is re-applied at write time; the mapping may
		// have bypassed it (fallback path) or been built elsewhere.
		newName := e.norm.Filename(m[old])
		src := filepath.Join(albumPath, old)
		dst := filepath.Join(destDir, newName)

		if e.mode == config.ModeCopy {
			if err := e.repo.CopyFile(src, dst); err != nil {
				return processed, fmt.Errorf("failed to copy %s: %w", old, err)
			}
			log.Printf("[DEBUG] organizer: copied %q -> %q", old, newName)
			processed++
			continue
		}

		if src == dst {
			continue
		}
		if pending[newName] {
			tmp := filepath.Join(destDir, fmt.Sprintf(".staging-%d-%s", i, newName))
			if err := e.repo.RenameFile(src, tmp); err != nil {
				return processed, fmt.Errorf("failed to stage %s: %w", old, err)
			}
			staged = append(staged, stagedRename{tmp: tmp, dst: dst})
			log.Printf("[DEBUG] organizer: staged %q -> %q", old, newName)
			processed++
			continue
		}
		if err := e.repo.RenameFile(src, dst); err != nil {
			return processed, fmt.Errorf("failed to rename %s: %w", old, err)
		}
		log.Printf("[DEBUG] organizer: renamed %q -> %q", old, newName)
		processed++
	}

	for _, s := range staged {
		if err := e.repo.RenameFile(s.tmp, s.dst); err != nil {
			return processed, fmt.Errorf("failed to finalize %s: %w", filepath.Base(s.dst), err)
		}
	}

	if err := e.relabelImages(albumPath, destDir); err != nil {
		return processed, err
	}
	if err := e.relabelSupplementary(albumPath, destDir); err != nil {
		return processed, err
	}
	return processed, nil
}

// cleanedDir computes the copy-mode destination:
// <base_parent>/cleaned/<album_parent_name>/[<artist>] <album> — a
// sibling of the album's parent, preserving one level of nesting.
func (e *Executor) cleanedDir(albumPath, artist, album string) string {
	parent := filepath.Dir(albumPath)
	baseParent := filepath.Dir(parent)
	dirName := fmt.Sprintf("[%s] %s", e.norm.Text(artist), e.norm.Text(album))
	return filepath.Join(baseParent, "cleaned", filepath.Base(parent), dirName)
}

// relabelImages renames the first sorted image to cover.<ext> and the
// rest to supplementary_<n>.<ext>, using the primary operation's mode.
func (e *Executor) relabelImages(albumPath, destDir string) error {
	images, err := e.repo.ListImageFiles(albumPath)
	if err != nil {
		return err
	}
	for i, name := range images {
		ext := strings.ToLower(filepath.Ext(name))
		var newName string
		if i == 0 {
			newName = "cover" + ext
		} else {
			newName = fmt.Sprintf("supplementary_%d%s", i, ext)
		}
		if err := e.applySideFile(albumPath, destDir, name, newName); err != nil {
			return err
		}
	}
	return nil
}

// relabelSupplementary renames every non-audio, non-image file to
// supplementary_<cleaned-basename><ext>.
func (e *Executor) relabelSupplementary(albumPath, destDir string) error {
	others, err := e.repo.ListOtherFiles(albumPath)
	if err != nil {
		return err
	}
	for _, name := range others {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		// Already relabeled on an earlier run.
		if strings.HasPrefix(base, "supplementary_") {
			continue
		}
		newName := fmt.Sprintf("supplementary_%s%s", zhconv.CleanFilename(base), ext)
		if err := e.applySideFile(albumPath, destDir, name, newName); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) applySideFile(albumPath, destDir, name, newName string) error {
	src := filepath.Join(albumPath, name)
	dst := filepath.Join(destDir, newName)
	if e.mode == config.ModeCopy {
		if err := e.repo.CopyFile(src, dst); err != nil {
			return fmt.Errorf("failed to copy %s: %w", name, err)
		}
		return nil
	}
	if src == dst {
		return nil
	}
	if err := e.repo.RenameFile(src, dst); err != nil {
		return fmt.Errorf("failed to rename %s: %w", name, err)
	}
	return nil
}

func sortedKeys(m models.FilenameMapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
