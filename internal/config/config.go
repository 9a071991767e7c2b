// file: internal/config/config.go
// version: 1.3.0
// guid: 2c1d0e9f-8a7b-4c6d-5e4f-3a2b1c0d9e8f

package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/musiclib-tools/album-cleaner/internal/models"
)

// Output modes for processed files.
const (
	ModeCopy    = "copy"
	ModeInPlace = "in_place"
)

// Options holds the configuration for one batch run. Build it with
// FromViper or fill it directly, then call Validate before use.
type Options struct {
	BasePath   string          // root directory containing album folders
	Language   models.Language // target language/script for track names
	OutputMode string          // "copy" or "in_place"

	MaxRetries         int // LLM mapping-generation attempts per business attempt
	MaxBusinessRetries int // full lookup+generation+validation+QA attempts
	MaxSearchRetries   int // metadata search query attempts per business attempt

	EnableQAReview        bool    // run the LLM quality-review gate
	QAConfidenceThreshold float64 // minimum QA confidence to accept a mapping
	MatchThreshold        float64 // album-name similarity floor for accepting a search hit
	PureTranslation       bool    // script conversion only, no LLM or metadata lookup

	PromptsDir string // optional directory overriding the embedded prompts

	LLM     LLMOptions
	Spotify SpotifyOptions
}

// LLMOptions configures the text-generation backend.
type LLMOptions struct {
	APIKey  string
	Model   string
	BaseURL string // optional; set for OpenAI-compatible providers
}

// SpotifyOptions configures the metadata-search backend.
type SpotifyOptions struct {
	ClientID     string
	ClientSecret string
}

// AppConfig is the process-wide configuration for the current run.
var AppConfig Options

// InitConfig populates AppConfig from viper. Flag bindings and the
// config file are set up by the cmd package before this is called.
func InitConfig() {
	viper.SetDefault("language", string(models.English))
	viper.SetDefault("output_mode", ModeCopy)
	viper.SetDefault("max_retries", 2)
	viper.SetDefault("max_business_retries", 2)
	viper.SetDefault("max_search_retries", 3)
	viper.SetDefault("enable_qa_review", true)
	viper.SetDefault("qa_confidence_threshold", 0.6)
	viper.SetDefault("match_threshold", 0.3)
	viper.SetDefault("llm.model", "gpt-4o-mini")

	AppConfig = Options{
		BasePath:              viper.GetString("base_path"),
		Language:              models.Language(viper.GetString("language")),
		OutputMode:            viper.GetString("output_mode"),
		MaxRetries:            viper.GetInt("max_retries"),
		MaxBusinessRetries:    viper.GetInt("max_business_retries"),
		MaxSearchRetries:      viper.GetInt("max_search_retries"),
		EnableQAReview:        viper.GetBool("enable_qa_review"),
		QAConfidenceThreshold: viper.GetFloat64("qa_confidence_threshold"),
		MatchThreshold:        viper.GetFloat64("match_threshold"),
		PureTranslation:       viper.GetBool("pure_translation"),
		PromptsDir:            viper.GetString("prompts_dir"),
	}

	AppConfig.LLM.APIKey = viper.GetString("llm.api_key")
	AppConfig.LLM.Model = viper.GetString("llm.model")
	AppConfig.LLM.BaseURL = viper.GetString("llm.base_url")
	AppConfig.Spotify.ClientID = viper.GetString("spotify.client_id")
	AppConfig.Spotify.ClientSecret = viper.GetString("spotify.client_secret")
}

// Validate checks the option invariants. It must pass before a batch
// run starts; a bad option set is a precondition failure, not retried.
func (o *Options) Validate() error {
	if o.BasePath == "" {
		return fmt.Errorf("base path cannot be empty")
	}
	if o.OutputMode != ModeCopy && o.OutputMode != ModeInPlace {
		return fmt.Errorf("output mode must be %q or %q, got %q", ModeCopy, ModeInPlace, o.OutputMode)
	}
	if o.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", o.MaxRetries)
	}
	if o.MaxBusinessRetries < 1 {
		return fmt.Errorf("max business retries must be at least 1, got %d", o.MaxBusinessRetries)
	}
	if o.MaxSearchRetries < 1 {
		return fmt.Errorf("max search retries must be at least 1, got %d", o.MaxSearchRetries)
	}
	if o.QAConfidenceThreshold < 0.0 || o.QAConfidenceThreshold > 1.0 {
		return fmt.Errorf("qa confidence threshold must be between 0.0 and 1.0, got %v", o.QAConfidenceThreshold)
	}
	if o.MatchThreshold < 0.0 || o.MatchThreshold > 1.0 {
		return fmt.Errorf("match threshold must be between 0.0 and 1.0, got %v", o.MatchThreshold)
	}
	if _, err := models.ParseLanguage(string(o.Language)); err != nil {
		return err
	}
	return nil
}
