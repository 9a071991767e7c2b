// file: internal/mapping/validator_test.go
// version: 1.1.0
// guid: 6f5e4d3c-2b1a-4f0e-9d8c-7b6a5f4e3d2c

package mapping

import (
	"errors"
	"strings"
	"testing"

	"github.com/musiclib-tools/album-cleaner/internal/models"
)

func TestValidatePasses(t *testing.T) {
	local := []string{"a.mp3", "b.mp3", "c.mp3"}
	m := models.FilenameMapping{
		"a.mp3": "01 Alpha.mp3",
		"b.mp3": "02 Beta.mp3",
		"c.mp3": "03 Gamma.mp3",
	}
	if err := Validate(m, local, []string{"Alpha", "Beta", "Gamma"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Track-count mismatch against official tracks is a warning only.
	if err := Validate(m, local, []string{"Alpha"}); err != nil {
		t.Fatalf("count mismatch must not fail validation: %v", err)
	}
	// LLM-only mode: no official tracks at all.
	if err := Validate(m, local, nil); err != nil {
		t.Fatalf("LLM-only validation failed: %v", err)
	}
}

func TestValidateIncomplete(t *testing.T) {
	local := []string{"a.mp3", "b.mp3"}
	m := models.FilenameMapping{"a.mp3": "01 Alpha.mp3"}
	err := Validate(m, local, nil)
	if !errors.Is(err, ErrIncompleteMapping) {
		t.Fatalf("expected ErrIncompleteMapping, got %v", err)
	}
	if !strings.Contains(err.Error(), "b.mp3") {
		t.Errorf("error must name the missing file: %v", err)
	}
}

func TestValidateMalformedTrackNumber(t *testing.T) {
	local := []string{"a.mp3"}
	m := models.FilenameMapping{"a.mp3": "Alpha.mp3"}
	if err := Validate(m, local, nil); !errors.Is(err, ErrMalformedTrackNumber) {
		t.Fatalf("expected ErrMalformedTrackNumber, got %v", err)
	}
}

func TestValidateDuplicateTrackNumber(t *testing.T) {
	local := []string{"a.mp3", "b.mp3"}
	m := models.FilenameMapping{
		"a.mp3": "01 Alpha.mp3",
		"b.mp3": "1 Beta.mp3", // same number, different formatting
	}
	if err := Validate(m, local, nil); !errors.Is(err, ErrDuplicateTrackNumber) {
		t.Fatalf("expected ErrDuplicateTrackNumber, got %v", err)
	}
}

func TestTrackNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"01 Alpha.mp3", 1},
		{"12-Beta.flac", 12},
		{"003.Gamma.wav", 3},
		{"Alpha.mp3", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := TrackNumber(tt.input); got != tt.expected {
			t.Errorf("TrackNumber(%q): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}
