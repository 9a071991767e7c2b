// file: internal/qa/reviewer.go
// version: 1.1.0
// guid: 4e3f2a1b-0c9d-4e8f-7a6b-5c4d3e2f1a0b

package qa

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/musiclib-tools/album-cleaner/internal/llm"
	"github.com/musiclib-tools/album-cleaner/internal/mapping"
	"github.com/musiclib-tools/album-cleaner/internal/models"
	"github.com/musiclib-tools/album-cleaner/internal/prompts"
)

// Reviewer is the quality-review collaborator: it judges a proposed
// mapping and proposes alternative search phrasings after metadata
// misses.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (models.QAReview, error)
	SuggestAlternatives(ctx context.Context, artist, album string, failedQueries []string, lang models.Language) ([]string, error)
}

// ReviewRequest carries everything the reviewer needs to judge one
// proposed mapping.
type ReviewRequest struct {
	Artist         string
	Album          string
	LocalFiles     []string
	Mapping        models.FilenameMapping
	OfficialTracks []string
	Language       models.Language
}

var reInlineObject = regexp.MustCompile(`(?s)\{.*\}`)

// LLMReviewer implements Reviewer on top of the text-generation
// collaborator and the prompt renderer.
type LLMReviewer struct {
	gen      llm.Generator
	renderer *prompts.Renderer
}

// NewLLMReviewer builds an LLM-backed reviewer.
func NewLLMReviewer(gen llm.Generator, renderer *prompts.Renderer) *LLMReviewer {
	return &LLMReviewer{gen: gen, renderer: renderer}
}

// Review renders the quality-review prompt, invokes the LLM, and
// parses the verdict. A response that cannot be parsed is converted
// into a rejecting review rather than an error: a reviewer that talks
// nonsense must not approve anything, but it also must not crash the
// album.
func (r *LLMReviewer) Review(ctx context.Context, req ReviewRequest) (models.QAReview, error) {
	rendered, err := r.renderer.Render(prompts.TemplateQualityReview, prompts.ReviewVars{
		Artist:         req.Artist,
		Album:          req.Album,
		Language:       string(req.Language),
		LocalFiles:     req.LocalFiles,
		OfficialTracks: req.OfficialTracks,
		Mapping:        req.Mapping,
	})
	if err != nil {
		return models.QAReview{}, err
	}

	response, err := r.gen.Generate(ctx, rendered.System, rendered.User)
	if err != nil {
		return models.QAReview{}, fmt.Errorf("QA review call failed: %w", err)
	}

	review, err := parseReview(response)
	if err != nil {
		log.Printf("[WARN] qa: unparseable review response, treating as rejection: %v", err)
		return models.QAReview{
			Approved: false,
			Issues:   []string{fmt.Sprintf("failed to parse QA response: %v", err)},
			Recommendations: []string{
				"retry with a fresh generation attempt",
			},
		}, nil
	}

	log.Printf("[DEBUG] qa: review complete, approved=%v confidence=%.2f", review.Approved, review.ConfidenceScore)
	return review, nil
}

// SuggestAlternatives asks the LLM for alternative search phrasings
// after the given queries all missed. A failure here is soft: an empty
// list simply ends the alternative-query loop early.
func (r *LLMReviewer) SuggestAlternatives(ctx context.Context, artist, album string, failedQueries []string, lang models.Language) ([]string, error) {
	rendered, err := r.renderer.Render(prompts.TemplateSearchAlternatives, prompts.AlternativesVars{
		Artist:        artist,
		Album:         album,
		Language:      string(lang),
		FailedQueries: failedQueries,
	})
	if err != nil {
		return nil, err
	}

	response, err := r.gen.Generate(ctx, rendered.System, rendered.User)
	if err != nil {
		return nil, fmt.Errorf("search-alternatives call failed: %w", err)
	}

	alternatives, err := mapping.ParseStringArray(response)
	if err != nil {
		log.Printf("[WARN] qa: unparseable alternatives response: %v", err)
		return nil, nil
	}

	// Drop anything already tried.
	tried := make(map[string]bool, len(failedQueries))
	for _, q := range failedQueries {
		tried[strings.ToLower(strings.TrimSpace(q))] = true
	}
	fresh := alternatives[:0]
	for _, alt := range alternatives {
		if !tried[strings.ToLower(strings.TrimSpace(alt))] {
			fresh = append(fresh, alt)
		}
	}

	log.Printf("[DEBUG] qa: generated %d alternative search terms", len(fresh))
	return fresh, nil
}

// parseReview extracts a QAReview from raw response text, tolerating
// surrounding prose. Absent fields keep zero values, which read as a
// rejection with zero confidence.
func parseReview(response string) (models.QAReview, error) {
	trimmed := strings.TrimSpace(response)

	candidate := trimmed
	if !strings.HasPrefix(candidate, "{") {
		m := reInlineObject.FindString(trimmed)
		if m == "" {
			return models.QAReview{}, fmt.Errorf("no JSON object found in review response")
		}
		candidate = m
	}

	var review models.QAReview
	if err := json.Unmarshal([]byte(candidate), &review); err != nil {
		return models.QAReview{}, fmt.Errorf("invalid review JSON: %w", err)
	}
	return review, nil
}
