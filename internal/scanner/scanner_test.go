// file: internal/scanner/scanner_test.go
// version: 1.1.0
// guid: 3f2a1b0c-9d8e-4f7a-6b5c-4d3e2f1a0b9c

package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/musiclib-tools/album-cleaner/internal/fileops"
)

func TestExtractIdentity(t *testing.T) {
	tests := []struct {
		name       string
		dirName    string
		wantArtist string
		wantAlbum  string
	}{
		{"bracketed", "[Jay Chou] Fantasy", "Jay Chou", "Fantasy"},
		{"bracketed with spaces", "[Artist X]   Album Y", "Artist X", "Album Y"},
		{"dashed", "Jay Chou - Fantasy", "Jay Chou", "Fantasy"},
		{"underscore", "JayChou_Fantasy_Plus", "JayChou", "Fantasy Plus"},
		{"dotted", "JayChou.Fantasy", "JayChou", "Fantasy"},
		{"cjk brackets", "周杰伦《叶惠美》", "周杰伦", "叶惠美"},
		{"no pattern", "Fantasy 2001 Remaster", UnknownArtist, "Fantasy 2001 Remaster"},
		{"dash without spacing", "AC-DC", UnknownArtist, "AC-DC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, album := ExtractIdentity(tt.dirName)
			if artist != tt.wantArtist || album != tt.wantAlbum {
				t.Errorf("expected (%q, %q), got (%q, %q)", tt.wantArtist, tt.wantAlbum, artist, album)
			}
		})
	}
}

func TestDiscoverAlbums(t *testing.T) {
	base := t.TempDir()

	mk := func(dir string, files ...string) {
		t.Helper()
		full := filepath.Join(base, dir)
		if err := os.MkdirAll(full, 0o755); err != nil {
			t.Fatal(err)
		}
		for _, f := range files {
			if err := os.WriteFile(filepath.Join(full, f), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	mk("[B Artist] Second", "01.mp3")
	mk("[A Artist] First", "01.flac", "02.flac")
	mk("Empty Folder")
	mk("Docs Only", "readme.txt", "cover.jpg")

	d := NewDiscovery(fileops.NewRepository())
	albums, err := d.DiscoverAlbums(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(albums) != 2 {
		t.Fatalf("expected 2 albums, got %d: %v", len(albums), albums)
	}
	// Sorted by directory name.
	if albums[0].Artist != "A Artist" || albums[0].Album != "First" {
		t.Errorf("unexpected first album: %+v", albums[0])
	}
	if albums[1].Artist != "B Artist" || albums[1].Album != "Second" {
		t.Errorf("unexpected second album: %+v", albums[1])
	}
}

func TestDiscoverAlbumsMissingBase(t *testing.T) {
	d := NewDiscovery(fileops.NewRepository())
	_, err := d.DiscoverAlbums(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing base path")
	}
}

// faultyLister fails listing audio files for one directory; discovery
// must skip it and keep going.
type faultyLister struct {
	real    *fileops.Repository
	failDir string
}

func (f *faultyLister) ListAudioFiles(dir string) ([]string, error) {
	if filepath.Base(dir) == f.failDir {
		return nil, errors.New("permission denied")
	}
	return f.real.ListAudioFiles(dir)
}

func (f *faultyLister) ListSubdirectories(dir string) ([]string, error) {
	return f.real.ListSubdirectories(dir)
}

func TestDiscoverAlbumsSkipsUnreadable(t *testing.T) {
	base := t.TempDir()
	for _, dir := range []string{"[A] One", "[B] Two"} {
		full := filepath.Join(base, dir)
		if err := os.MkdirAll(full, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(full, "01.mp3"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	d := NewDiscovery(&faultyLister{real: fileops.NewRepository(), failDir: "[A] One"})
	albums, err := d.DiscoverAlbums(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(albums) != 1 || albums[0].Artist != "B" {
		t.Fatalf("expected only the readable album, got %v", albums)
	}
}
