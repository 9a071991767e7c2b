// file: internal/qa/reviewer_test.go
// version: 1.0.0
// guid: 2b1c0d9e-8f7a-4b6c-5d4e-3f2a1b0c9d8e

package qa

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musiclib-tools/album-cleaner/internal/models"
	"github.com/musiclib-tools/album-cleaner/internal/prompts"
)

// scriptedGenerator returns canned responses in order.
type scriptedGenerator struct {
	responses []string
	err       error
	calls     int
	lastUser  string
}

func (s *scriptedGenerator) Generate(_ context.Context, _, userPrompt string) (string, error) {
	s.lastUser = userPrompt
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "", errors.New("no more scripted responses")
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func testRequest() ReviewRequest {
	return ReviewRequest{
		Artist:     "Jay Chou",
		Album:      "Fantasy",
		LocalFiles: []string{"a.mp3"},
		Mapping:    models.FilenameMapping{"a.mp3": "01 愛在西元前.mp3"},
		Language:   models.TraditionalChinese,
	}
}

func TestReviewParsesVerdict(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		`Here is my verdict: {"approved": true, "issues": [], "recommendations": [], "confidence_score": 0.85, "language_compliance": true, "track_number_compliance": true}`,
	}}
	r := NewLLMReviewer(gen, prompts.NewRenderer(""))

	review, err := r.Review(context.Background(), testRequest())
	require.NoError(t, err)
	assert.True(t, review.Approved)
	assert.InDelta(t, 0.85, review.ConfidenceScore, 1e-9)
	assert.True(t, review.LanguageCompliance)
	assert.Contains(t, gen.lastUser, "Fantasy")
}

func TestReviewCarriesFallbackSuggestion(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		`{"approved": false, "issues": ["titles are in the wrong language"], "recommendations": [], "confidence_score": 0.3, "language_compliance": false, "track_number_compliance": true, "fallback_suggestion": "translate all titles to Traditional Chinese"}`,
	}}
	r := NewLLMReviewer(gen, prompts.NewRenderer(""))

	review, err := r.Review(context.Background(), testRequest())
	require.NoError(t, err)
	assert.False(t, review.Approved)
	assert.Equal(t, "translate all titles to Traditional Chinese", review.FallbackSuggestion)
}

func TestReviewGarbageBecomesRejection(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"I cannot review this, sorry."}}
	r := NewLLMReviewer(gen, prompts.NewRenderer(""))

	review, err := r.Review(context.Background(), testRequest())
	require.NoError(t, err)
	assert.False(t, review.Approved)
	assert.Zero(t, review.ConfidenceScore)
	assert.NotEmpty(t, review.Issues)
}

func TestReviewTransportErrorPropagates(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("connection refused")}
	r := NewLLMReviewer(gen, prompts.NewRenderer(""))

	_, err := r.Review(context.Background(), testRequest())
	assert.Error(t, err)
}

func TestSuggestAlternatives(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		`["Jay Chou Fantasy 2001", "周杰倫 范特西", "jay chou fantasy"]`,
	}}
	r := NewLLMReviewer(gen, prompts.NewRenderer(""))

	got, err := r.SuggestAlternatives(context.Background(), "Jay Chou", "Fantasy",
		[]string{"Jay Chou Fantasy"}, models.English)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jay Chou Fantasy 2001", "周杰倫 范特西", "jay chou fantasy"}, got)
}

func TestSuggestAlternativesDropsAlreadyTried(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		`["jay chou fantasy", "new idea"]`,
	}}
	r := NewLLMReviewer(gen, prompts.NewRenderer(""))

	got, err := r.SuggestAlternatives(context.Background(), "Jay Chou", "Fantasy",
		[]string{"Jay Chou Fantasy"}, models.English)
	require.NoError(t, err)
	assert.Equal(t, []string{"new idea"}, got)
}

func TestSuggestAlternativesGarbageIsSoft(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"no array here"}}
	r := NewLLMReviewer(gen, prompts.NewRenderer(""))

	got, err := r.SuggestAlternatives(context.Background(), "A", "B", nil, models.English)
	require.NoError(t, err)
	assert.Empty(t, got)
}
