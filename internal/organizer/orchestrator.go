// file: internal/organizer/orchestrator.go
// version: 1.3.0
// guid: 7f6a5b4c-3d2e-4f1a-0b9c-8d7e6f5a4b3c

package organizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/musiclib-tools/album-cleaner/internal/config"
	"github.com/musiclib-tools/album-cleaner/internal/llm"
	"github.com/musiclib-tools/album-cleaner/internal/mapping"
	"github.com/musiclib-tools/album-cleaner/internal/models"
	"github.com/musiclib-tools/album-cleaner/internal/musicdata"
	"github.com/musiclib-tools/album-cleaner/internal/prompts"
	"github.com/musiclib-tools/album-cleaner/internal/qa"
	"github.com/musiclib-tools/album-cleaner/internal/scanner"
	"github.com/musiclib-tools/album-cleaner/internal/zhconv"
)

// FileRepo is the slice of the file repository the pipeline needs.
type FileRepo interface {
	ListAudioFiles(dir string) ([]string, error)
	ListImageFiles(dir string) ([]string, error)
	ListOtherFiles(dir string) ([]string, error)
	CopyFile(src, dst string) error
	RenameFile(src, dst string) error
	MakeDir(path string) error
}

// stage identifies where the per-album pipeline currently is. Kept as
// an explicit enum so termination conditions stay auditable instead of
// being implied by loop nesting.
type stage int

const (
	stageDiscover stage = iota
	stageIdentity
	stagePureTranslate
	stageLookup
	stageGenerate
	stageValidate
	stageReview
	stageExecute
	stageDone
	stageFailed
)

func (s stage) String() string {
	switch s {
	case stageDiscover:
		return "discover"
	case stageIdentity:
		return "identity"
	case stagePureTranslate:
		return "pure-translate"
	case stageLookup:
		return "lookup"
	case stageGenerate:
		return "generate"
	case stageValidate:
		return "validate"
	case stageReview:
		return "review"
	case stageExecute:
		return "execute"
	case stageDone:
		return "done"
	case stageFailed:
		return "failed"
	}
	return "unknown"
}

// fallbackConfidence is recorded when a QA-rejected mapping is rescued
// by the single-shot fallback call.
const fallbackConfidence = 0.5

// generationPause is the delay between mapping-generation attempts.
const generationPause = 250 * time.Millisecond

// Orchestrator runs the per-album pipeline. The three unreliable
// collaborators are injected as interface values; lookup and reviewer
// may be nil, which degrades the corresponding stages instead of
// failing them.
type Orchestrator struct {
	repo     FileRepo
	gen      llm.Generator
	lookup   musicdata.Lookup
	reviewer qa.Reviewer
	renderer *prompts.Renderer
	norm     *zhconv.Normalizer
	opts     config.Options
	pause    time.Duration
}

// NewOrchestrator wires the pipeline for one batch run.
func NewOrchestrator(repo FileRepo, gen llm.Generator, lookup musicdata.Lookup, reviewer qa.Reviewer, renderer *prompts.Renderer, opts config.Options) *Orchestrator {
	return &Orchestrator{
		repo:     repo,
		gen:      gen,
		lookup:   lookup,
		reviewer: reviewer,
		renderer: renderer,
		norm:     zhconv.New(opts.Language),
		opts:     opts,
		pause:    generationPause,
	}
}

// counters tracks attempt consumption across one album.
// searchAttempts is the album-wide total reported in the result; the
// search budget itself is per business attempt.
type counters struct {
	businessAttempts int
	searchAttempts   int
}

// ProcessAlbum runs the pipeline for one album directory and returns
// its result record. Every error is caught here and converted into a
// failed result; nothing escapes to the batch.
func (o *Orchestrator) ProcessAlbum(ctx context.Context, ref scanner.AlbumRef) models.ProcessingResult {
	log.Printf("[DEBUG] organizer: %s stage=%s", ref.Path, stageDiscover)
	files, err := o.repo.ListAudioFiles(ref.Path)
	if err != nil {
		return models.Failed(ref.Path, o.opts.Language, err)
	}
	if len(files) == 0 {
		// Precondition failure; retrying cannot help.
		return models.Failed(ref.Path, o.opts.Language, errors.New("no audio files found"))
	}

	log.Printf("[DEBUG] organizer: %s stage=%s artist=%q album=%q files=%d",
		ref.Path, stageIdentity, ref.Artist, ref.Album, len(files))

	if o.opts.PureTranslation {
		return o.pureTranslate(ref, files)
	}

	var c counters
	var lastErr error

	for attempt := 1; attempt <= o.opts.MaxBusinessRetries; attempt++ {
		c.businessAttempts = attempt
		result, err := o.businessAttempt(ctx, ref, files, &c, attempt == o.opts.MaxBusinessRetries)
		if err == nil {
			result.RetryCount = attempt - 1
			result.SearchAttempts = c.searchAttempts
			return result
		}
		lastErr = err
		log.Printf("[WARN] organizer: business attempt %d/%d for %s failed: %v",
			attempt, o.opts.MaxBusinessRetries, ref.Path, err)
	}

	log.Printf("[DEBUG] organizer: %s stage=%s", ref.Path, stageFailed)
	result := models.Failed(ref.Path, o.opts.Language, lastErr)
	result.RetryCount = c.businessAttempts - 1
	result.SearchAttempts = c.searchAttempts
	return result
}

// businessAttempt runs one full lookup → generate → validate → review
// → execute pass. finalAttempt enables the QA fallback path.
func (o *Orchestrator) businessAttempt(ctx context.Context, ref scanner.AlbumRef, files []string, c *counters, finalAttempt bool) (models.ProcessingResult, error) {
	official := o.lookupWithRetries(ctx, ref, files, c)

	m, err := o.generateMapping(ctx, ref, files, official)
	if err != nil {
		return models.ProcessingResult{}, err
	}

	log.Printf("[DEBUG] organizer: %s stage=%s entries=%d", ref.Path, stageValidate, len(m))
	if err := mapping.Validate(m, files, official.Tracks); err != nil {
		return models.ProcessingResult{}, err
	}

	var qaApproved *bool
	var qaConfidence *float64
	if o.opts.EnableQAReview && o.reviewer != nil {
		m, qaApproved, qaConfidence, err = o.reviewGate(ctx, ref, files, m, official, finalAttempt)
		if err != nil {
			return models.ProcessingResult{}, err
		}
	}

	log.Printf("[DEBUG] organizer: %s stage=%s", ref.Path, stageExecute)
	processed, err := o.execute(ref, m, official)
	if err != nil {
		return models.ProcessingResult{}, err
	}

	log.Printf("[DEBUG] organizer: %s stage=%s files=%d", ref.Path, stageDone, processed)
	return models.ProcessingResult{
		AlbumPath:      ref.Path,
		Success:        true,
		FilesProcessed: processed,
		LanguageUsed:   o.opts.Language,
		QAApproved:     qaApproved,
		QAConfidence:   qaConfidence,
	}, nil
}

// lookupWithRetries resolves official album data. The literal query
// runs first; each miss asks the reviewer for alternative phrasings
// until the search budget is spent. Exhaustion is not a failure: it
// returns the identity guess with no tracks (LLM-only mode).
func (o *Orchestrator) lookupWithRetries(ctx context.Context, ref scanner.AlbumRef, files []string, c *counters) models.AlbumTracks {
	degraded := models.AlbumTracks{Artist: ref.Artist, Album: ref.Album}
	if o.lookup == nil {
		return degraded
	}

	log.Printf("[DEBUG] organizer: %s stage=%s", ref.Path, stageLookup)
	queries := []string{musicdata.LiteralQuery(ref.Artist, ref.Album)}
	var tried []string

	// Each business attempt gets a fresh search budget; only the
	// album-wide total is recorded in the result.
	attempts := 0
	for len(queries) > 0 && attempts < o.opts.MaxSearchRetries {
		query := queries[0]
		queries = queries[1:]
		tried = append(tried, query)
		attempts++
		c.searchAttempts++

		found, err := o.lookup.SearchAlbum(ctx, query, ref.Artist, ref.Album)
		if err == nil {
			log.Printf("[DEBUG] organizer: using official data: %d tracks for %q - %q",
				len(found.Tracks), found.Artist, found.Album)
			return *found
		}
		if !errors.Is(err, musicdata.ErrNotFound) {
			log.Printf("[WARN] organizer: metadata search error for %q: %v", query, err)
		}

		// Out of prepared queries: ask the reviewer for fresh phrasings.
		if len(queries) == 0 && o.reviewer != nil && attempts < o.opts.MaxSearchRetries {
			alts, altErr := o.reviewer.SuggestAlternatives(ctx, ref.Artist, ref.Album, tried, o.opts.Language)
			if altErr != nil {
				log.Printf("[WARN] organizer: could not get alternative queries: %v", altErr)
				break
			}
			queries = alts
		}
	}

	log.Printf("[WARN] organizer: no official data for %q - %q after %d attempts, falling back to LLM-only cleaning",
		ref.Artist, ref.Album, attempts)
	return degraded
}

// generateMapping renders the cleaner prompt and parses the model's
// mapping, retrying malformed responses up to the generation budget.
func (o *Orchestrator) generateMapping(ctx context.Context, ref scanner.AlbumRef, files []string, official models.AlbumTracks) (models.FilenameMapping, error) {
	var lastErr error
	for attempt := 1; attempt <= o.opts.MaxRetries; attempt++ {
		log.Printf("[DEBUG] organizer: %s stage=%s attempt=%d/%d", ref.Path, stageGenerate, attempt, o.opts.MaxRetries)

		rendered, err := o.renderer.Render(prompts.TemplateCleaner, prompts.CleanerVars{
			Artist:         official.Artist,
			Album:          official.Album,
			Language:       string(o.opts.Language),
			LocalFiles:     files,
			OfficialTracks: official.Tracks,
		})
		if err != nil {
			return nil, err
		}

		response, err := o.gen.Generate(ctx, rendered.System, rendered.User)
		if err == nil {
			var m models.FilenameMapping
			m, err = mapping.ParseResponse(response)
			if err == nil {
				m = mapping.PreserveExtensions(m)
				return o.norm.All(m), nil
			}
		}

		lastErr = err
		if attempt < o.opts.MaxRetries && o.pause > 0 {
			time.Sleep(o.pause)
		}
	}
	return nil, fmt.Errorf("mapping generation failed after %d attempts: %w", o.opts.MaxRetries, lastErr)
}

// reviewGate runs the QA review over a validated mapping. An approval
// above the confidence threshold passes the mapping through. A
// rejection errors (retried by the business loop), except on the final
// attempt when the review carried a fallback suggestion: then one
// specialized fallback generation gets the last word.
func (o *Orchestrator) reviewGate(ctx context.Context, ref scanner.AlbumRef, files []string, m models.FilenameMapping, official models.AlbumTracks, finalAttempt bool) (models.FilenameMapping, *bool, *float64, error) {
	log.Printf("[DEBUG] organizer: %s stage=%s", ref.Path, stageReview)
	review, err := o.reviewer.Review(ctx, qa.ReviewRequest{
		Artist:         official.Artist,
		Album:          official.Album,
		LocalFiles:     files,
		Mapping:        m,
		OfficialTracks: official.Tracks,
		Language:       o.opts.Language,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	if review.Approved && review.ConfidenceScore >= o.opts.QAConfidenceThreshold {
		approved := true
		conf := review.ConfidenceScore
		return m, &approved, &conf, nil
	}

	rejection := fmt.Errorf("QA rejected mapping (approved=%v, confidence=%.2f, threshold=%.2f): %s",
		review.Approved, review.ConfidenceScore, o.opts.QAConfidenceThreshold, firstIssue(review))

	if !finalAttempt || review.FallbackSuggestion == "" {
		return nil, nil, nil, rejection
	}

	fm, err := o.fallbackMapping(ctx, ref, files, official, review.FallbackSuggestion)
	if err != nil {
		log.Printf("[WARN] organizer: fallback generation failed: %v", err)
		return nil, nil, nil, rejection
	}

	approved := true
	conf := fallbackConfidence
	log.Printf("[DEBUG] organizer: fallback mapping accepted with confidence %.2f", conf)
	return fm, &approved, &conf, nil
}

// fallbackMapping makes the single-shot fallback call. The result must
// be complete and well-formed or the album keeps its QA rejection.
func (o *Orchestrator) fallbackMapping(ctx context.Context, ref scanner.AlbumRef, files []string, official models.AlbumTracks, suggestion string) (models.FilenameMapping, error) {
	rendered, err := o.renderer.Render(prompts.TemplateFallback, prompts.FallbackVars{
		Artist:     official.Artist,
		Album:      official.Album,
		Language:   string(o.opts.Language),
		LocalFiles: files,
		Suggestion: suggestion,
	})
	if err != nil {
		return nil, err
	}

	response, err := o.gen.Generate(ctx, rendered.System, rendered.User)
	if err != nil {
		return nil, err
	}
	m, err := mapping.ParseResponse(response)
	if err != nil {
		return nil, err
	}
	m = o.norm.All(mapping.PreserveExtensions(m))
	if err := mapping.Validate(m, files, official.Tracks); err != nil {
		return nil, err
	}
	return m, nil
}

// pureTranslate is the script-only branch: no LLM, no metadata lookup.
// Output names are the script-normalized input names.
func (o *Orchestrator) pureTranslate(ref scanner.AlbumRef, files []string) models.ProcessingResult {
	log.Printf("[DEBUG] organizer: %s stage=%s files=%d", ref.Path, stagePureTranslate, len(files))

	m := make(models.FilenameMapping, len(files))
	for _, f := range files {
		m[f] = o.norm.Filename(f)
	}

	artist, album := o.norm.ArtistAlbum(ref.Artist, ref.Album)
	processed, err := o.execute(ref, m, models.AlbumTracks{Artist: artist, Album: album})
	if err != nil {
		return models.Failed(ref.Path, o.opts.Language, err)
	}
	return models.ProcessingResult{
		AlbumPath:      ref.Path,
		Success:        true,
		FilesProcessed: processed,
		LanguageUsed:   o.opts.Language,
	}
}

func (o *Orchestrator) execute(ref scanner.AlbumRef, m models.FilenameMapping, official models.AlbumTracks) (int, error) {
	exec := &Executor{repo: o.repo, norm: o.norm, mode: o.opts.OutputMode}
	return exec.Execute(ref.Path, m, official.Artist, official.Album)
}

func firstIssue(review models.QAReview) string {
	if len(review.Issues) > 0 {
		return review.Issues[0]
	}
	return "no issues reported"
}
