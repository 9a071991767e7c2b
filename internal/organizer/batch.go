// file: internal/organizer/batch.go
// version: 1.1.0
// guid: 5b4c3d2e-1f0a-4b9c-8d7e-6f5a4b3c2d1e

package organizer

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/musiclib-tools/album-cleaner/internal/models"
	"github.com/musiclib-tools/album-cleaner/internal/scanner"
)

// AlbumProcessor processes one album; satisfied by Orchestrator.
type AlbumProcessor interface {
	ProcessAlbum(ctx context.Context, ref scanner.AlbumRef) models.ProcessingResult
}

// BatchRunner walks the discovered albums sequentially in sorted
// order, collecting one result per album. A failed album never stops
// the batch.
type BatchRunner struct {
	discovery *scanner.Discovery
	processor AlbumProcessor
	out       io.Writer
	progress  bool
}

// NewBatchRunner builds a batch runner writing user-facing output to out.
func NewBatchRunner(discovery *scanner.Discovery, processor AlbumProcessor, out io.Writer, progress bool) *BatchRunner {
	return &BatchRunner{discovery: discovery, processor: processor, out: out, progress: progress}
}

// Run processes every album under basePath and returns the aggregated
// summary. Only a failure to scan the base path itself is an error.
func (b *BatchRunner) Run(ctx context.Context, basePath string) (models.BatchSummary, error) {
	albums, err := b.discovery.DiscoverAlbums(basePath)
	if err != nil {
		return models.BatchSummary{}, err
	}

	fmt.Fprintf(b.out, "Found %d albums to process\n", len(albums))

	var bar *progressbar.ProgressBar
	if b.progress && len(albums) > 0 {
		bar = progressbar.Default(int64(len(albums)))
	}

	summary := models.BatchSummary{Results: make([]models.ProcessingResult, 0, len(albums))}
	for _, ref := range albums {
		result := b.processor.ProcessAlbum(ctx, ref)
		summary.Results = append(summary.Results, result)

		if result.Success {
			color.New(color.FgGreen).Fprintf(b.out, "✔ %s (%d files)\n", result.AlbumPath, result.FilesProcessed)
		} else {
			color.New(color.FgRed).Fprintf(b.out, "✘ %s: %s\n", result.AlbumPath, result.ErrorMessage)
		}
		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.Printf("[WARN] organizer: progress bar error: %v", err)
			}
		}
	}

	fmt.Fprintf(b.out, "\nProcessing complete: %d/%d albums successful\n",
		summary.Succeeded(), len(summary.Results))
	return summary, nil
}
