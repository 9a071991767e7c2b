// file: internal/prompts/vars.go
// version: 1.0.0
// guid: 0b9c8d7e-6f5a-4b4c-3d2e-1f0a9b8c7d6f

package prompts

// CleanerVars feeds the mapping-generation prompt.
type CleanerVars struct {
	Artist         string
	Album          string
	Language       string
	LocalFiles     []string
	OfficialTracks []string
}

// ReviewVars feeds the quality-review prompt.
type ReviewVars struct {
	Artist         string
	Album          string
	Language       string
	LocalFiles     []string
	OfficialTracks []string
	Mapping        map[string]string
}

// AlternativesVars feeds the search-alternatives prompt.
type AlternativesVars struct {
	Artist        string
	Album         string
	Language      string
	FailedQueries []string
}

// FallbackVars feeds the single-shot fallback prompt used after a
// final QA rejection that carried a suggestion.
type FallbackVars struct {
	Artist     string
	Album      string
	Language   string
	LocalFiles []string
	Suggestion string
}
