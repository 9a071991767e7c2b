// file: internal/models/models.go
// version: 1.1.0
// guid: 4f3a2b1c-8d9e-4a5b-9c0d-1e2f3a4b5c6d

package models

import (
	"fmt"
	"strings"
)

// Language is the target language/script for cleaned track names.
type Language string

const (
	// English keeps track names in English.
	English Language = "English"
	// TraditionalChinese converts track names to Traditional Chinese.
	TraditionalChinese Language = "Traditional Chinese"
)

// ParseLanguage converts a user-supplied string into a Language.
// Matching is case-insensitive and accepts short aliases.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en":
		return English, nil
	case "traditional chinese", "traditional-chinese", "zh-hant", "zht":
		return TraditionalChinese, nil
	}
	return "", fmt.Errorf("unsupported language: %q", s)
}

func (l Language) String() string { return string(l) }

// FilenameMapping maps an original filename to its proposed new name.
// Keys must match the album's audio file listing; values must begin
// with a numeric track prefix and keep the original extension.
type FilenameMapping map[string]string

// AlbumTracks is the canonical album identity returned by a metadata
// lookup: cleaned artist and album names plus the ordered official
// track titles. Tracks may be empty when a lookup degraded to
// LLM-only mode.
type AlbumTracks struct {
	Artist string
	Album  string
	Tracks []string
}

// QAReview is the outcome of one quality-review pass over a proposed
// mapping. Missing fields in the reviewer's raw response default to
// their zero values, which reads as a rejection.
type QAReview struct {
	Approved              bool     `json:"approved"`
	Issues                []string `json:"issues"`
	Recommendations       []string `json:"recommendations"`
	ConfidenceScore       float64  `json:"confidence_score"`
	LanguageCompliance    bool     `json:"language_compliance"`
	TrackNumberCompliance bool     `json:"track_number_compliance"`
	FallbackSuggestion    string   `json:"fallback_suggestion,omitempty"`
}

// ProcessingResult records the outcome for one album. It is a value
// object: built once when the album finishes and never mutated.
type ProcessingResult struct {
	AlbumPath      string   `json:"album_path"`
	Success        bool     `json:"success"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	FilesProcessed int      `json:"files_processed"`
	LanguageUsed   Language `json:"language_used"`
	RetryCount     int      `json:"retry_count"`
	QAApproved     *bool    `json:"qa_approved,omitempty"`
	QAConfidence   *float64 `json:"qa_confidence,omitempty"`
	SearchAttempts int      `json:"search_attempts"`
}

// Failed builds a failure result for an album.
func Failed(albumPath string, lang Language, err error) ProcessingResult {
	return ProcessingResult{
		AlbumPath:    albumPath,
		Success:      false,
		ErrorMessage: err.Error(),
		LanguageUsed: lang,
	}
}

// BatchSummary aggregates the results of one batch run.
type BatchSummary struct {
	Results []ProcessingResult
}

// Succeeded counts the albums that processed successfully.
func (s BatchSummary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// Failed counts the albums that did not process successfully.
func (s BatchSummary) Failed() int {
	return len(s.Results) - s.Succeeded()
}

// AllSucceeded reports whether every album in the batch succeeded.
// An empty batch counts as success.
func (s BatchSummary) AllSucceeded() bool {
	return s.Failed() == 0
}
