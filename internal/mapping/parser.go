// file: internal/mapping/parser.go
// version: 1.2.0
// guid: 3b2c1d0e-9f8a-4b7c-6d5e-4f3a2b1c0d9e

package mapping

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/musiclib-tools/album-cleaner/internal/models"
)

// Precompiled patterns — package-level to avoid per-call recompilation.
var (
	// Matches a fenced code block, optionally tagged json, capturing the body.
	reFencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

	// Matches the first balanced-looking JSON object in free text.
	// One nesting level is enough: mapping responses are flat objects.
	reInlineJSON = regexp.MustCompile(`(?s)(\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\})`)

	// Matches the first JSON array in free text.
	reInlineArray = regexp.MustCompile(`(?s)(\[.*?\])`)
)

// ParseResponse extracts an old→new filename mapping from a raw model
// response. Models wrap the mapping in prose or markdown fences more
// often than not, so extraction runs as a cascade: the whole response
// as JSON, then a fenced block, then the first object-shaped run of
// text. A response with no parseable object is an error; the caller
// retries generation.
func ParseResponse(response string) (models.FilenameMapping, error) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return nil, fmt.Errorf("empty response")
	}

	candidates := make([]string, 0, 3)
	if strings.HasPrefix(trimmed, "{") {
		candidates = append(candidates, trimmed)
	}
	if m := reFencedJSON.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := reInlineJSON.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, m[1])
	}

	var lastErr error
	for _, c := range candidates {
		mapping, err := decodeMapping(c)
		if err == nil {
			return mapping, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		log.Printf("[WARN] mapping: no parseable JSON object in response (%d bytes): %v", len(response), lastErr)
		return nil, fmt.Errorf("failed to parse mapping from response: %w", lastErr)
	}
	return nil, fmt.Errorf("no JSON mapping found in response")
}

// decodeMapping unmarshals one candidate JSON object. Responses that
// nest the mapping under an "old_to_new" key are unwrapped, matching
// the prompt's suggested output shape.
func decodeMapping(s string) (models.FilenameMapping, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	if inner, ok := raw["old_to_new"]; ok {
		var m models.FilenameMapping
		if err := json.Unmarshal(inner, &m); err != nil {
			return nil, fmt.Errorf("old_to_new is not a string map: %w", err)
		}
		return m, nil
	}

	m := make(models.FilenameMapping, len(raw))
	for k, v := range raw {
		var val string
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, fmt.Errorf("value for %q is not a string: %w", k, err)
		}
		m[k] = val
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("mapping object is empty")
	}
	return m, nil
}

// ParseStringArray extracts a JSON array of strings from a raw model
// response, tolerating surrounding prose. Non-string elements are
// dropped. Used for alternative-search-phrase responses.
func ParseStringArray(response string) ([]string, error) {
	trimmed := strings.TrimSpace(response)

	candidates := make([]string, 0, 2)
	if strings.HasPrefix(trimmed, "[") {
		candidates = append(candidates, trimmed)
	}
	if m := reInlineArray.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, m[1])
	}

	var lastErr error
	for _, c := range candidates {
		var anyItems []any
		if err := json.Unmarshal([]byte(c), &anyItems); err != nil {
			lastErr = err
			continue
		}
		out := make([]string, 0, len(anyItems))
		for _, it := range anyItems {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("failed to parse array from response: %w", lastErr)
	}
	return nil, fmt.Errorf("no JSON array found in response")
}

// PreserveExtensions fixes mapped values whose extension drifted from
// the original file's extension. Models occasionally invent ".flac"
// for an mp3; the file on disk wins.
func PreserveExtensions(mapping models.FilenameMapping) models.FilenameMapping {
	for old, proposed := range mapping {
		origExt := filepath.Ext(old)
		if origExt == "" {
			continue
		}
		newExt := filepath.Ext(proposed)
		if !strings.EqualFold(newExt, origExt) {
			base := strings.TrimSuffix(proposed, newExt)
			mapping[old] = base + origExt
			log.Printf("[DEBUG] mapping: corrected extension %q -> %q", proposed, mapping[old])
		}
	}
	return mapping
}
