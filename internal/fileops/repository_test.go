// file: internal/fileops/repository_test.go
// version: 1.1.0
// guid: 7a6b5c4d-3e2f-4a1b-0c9d-8e7f6a5b4c3d

package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListAudioFilesNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"track10.mp3", "track2.mp3", "track1.mp3", "cover.jpg", "notes.txt"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}
	// Subdirectories are never listed as files.
	if err := os.Mkdir(filepath.Join(dir, "bonus.mp3.d"), 0o755); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository()
	got, err := repo.ListAudioFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"track1.mp3", "track2.mp3", "track10.mp3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestListAudioFilesMissingDir(t *testing.T) {
	repo := NewRepository()
	got, err := repo.ListAudioFiles(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing directory should not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty listing, got %v", got)
	}
}

func TestListImageAndOtherFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp3", "front.JPG", "back.png", "booklet.pdf", "info.txt"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}
	repo := NewRepository()

	images, err := repo.ListImageFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 2 {
		t.Errorf("expected 2 images, got %v", images)
	}

	others, err := repo.ListOtherFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(others) != 2 {
		t.Errorf("expected 2 other files, got %v", others)
	}
}

func TestCopyFileCreatesParentsAndPreservesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "01 a.mp3")
	writeFile(t, src, "audio-bytes")

	dst := filepath.Join(dir, "out", "nested", "01 b.mp3")
	repo := NewRepository()
	if err := repo.CopyFile(src, dst); err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if string(got) != "audio-bytes" {
		t.Errorf("destination content mismatch: %q", got)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source must be untouched: %v", err)
	}
}

func TestRenameFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.mp3")
	writeFile(t, src, "x")

	dst := filepath.Join(dir, "sub", "new.mp3")
	repo := NewRepository()
	if err := repo.RenameFile(src, dst); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after rename")
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestMakeDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	repo := NewRepository()
	if err := repo.MakeDir(dir); err != nil {
		t.Fatal(err)
	}
	if err := repo.MakeDir(dir); err != nil {
		t.Errorf("second MakeDir must be a no-op: %v", err)
	}
}

func TestIsAudioFileCaseInsensitive(t *testing.T) {
	for _, name := range []string{"a.FLAC", "b.Mp3", "c.dsf", "d.APE"} {
		if !IsAudioFile(name) {
			t.Errorf("%q should be recognized as audio", name)
		}
	}
	for _, name := range []string{"a.txt", "b.jpg", "noext"} {
		if IsAudioFile(name) {
			t.Errorf("%q should not be recognized as audio", name)
		}
	}
}
