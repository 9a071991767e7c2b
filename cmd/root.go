// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/musiclib-tools/album-cleaner/internal/config"
	"github.com/musiclib-tools/album-cleaner/internal/fileops"
	"github.com/musiclib-tools/album-cleaner/internal/llm"
	"github.com/musiclib-tools/album-cleaner/internal/models"
	"github.com/musiclib-tools/album-cleaner/internal/musicdata"
	"github.com/musiclib-tools/album-cleaner/internal/organizer"
	"github.com/musiclib-tools/album-cleaner/internal/prompts"
	"github.com/musiclib-tools/album-cleaner/internal/qa"
	"github.com/musiclib-tools/album-cleaner/internal/scanner"
)

// appVersion is stamped by the release workflow.
var appVersion = "dev"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "album-cleaner",
	Short: "Clean up messy music album folders",
	Long: `Album Cleaner scans a music library for album folders, looks up the
official track listing, and uses an LLM to map the messy local filenames
onto clean, numbered track names in the language you choose.

By default nothing is modified in place: cleaned albums are copied into a
cleaned/ tree next to your library.`,
}

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the full cleaning pipeline over a library",
	Long: `Discover album folders under the base directory, then for each album:
look up the official track list, generate a filename mapping, validate
and review it, and apply the renames.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, config.AppConfig.PureTranslation)
	},
}

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Convert filenames between Chinese scripts only",
	Long: `Rename album tracks by script conversion alone. No metadata lookup
and no LLM calls are made, so no API credentials are required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, true)
	},
}

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the album folders that would be processed",
	Long:  `Discover album folders under the base directory without modifying anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.AppConfig.BasePath == "" {
			return fmt.Errorf("base directory not specified")
		}

		repo := fileops.NewRepository()
		albums, err := scanner.NewDiscovery(repo).DiscoverAlbums(config.AppConfig.BasePath)
		if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d albums under %s\n", len(albums), config.AppConfig.BasePath)
		for _, ref := range albums {
			files, err := repo.ListAudioFiles(ref.Path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  [%s] %s (%d tracks)\n", ref.Artist, ref.Album, len(files))
		}
		return nil
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the album-cleaner version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "album-cleaner %s\n", appVersion)
	},
}

// runBatch wires the pipeline from the resolved configuration and
// processes every discovered album. It returns an error when any album
// fails so the process exits nonzero.
func runBatch(cmd *cobra.Command, pureTranslation bool) error {
	opts := config.AppConfig
	opts.PureTranslation = pureTranslation
	if lang, err := models.ParseLanguage(string(opts.Language)); err == nil {
		opts.Language = lang
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	repo := fileops.NewRepository()
	renderer := prompts.NewRenderer(opts.PromptsDir)

	var gen llm.Generator
	var lookup musicdata.Lookup
	var reviewer qa.Reviewer

	if !opts.PureTranslation {
		client, err := llm.NewClient(llm.Config{
			APIKey:  opts.LLM.APIKey,
			Model:   opts.LLM.Model,
			BaseURL: opts.LLM.BaseURL,
		})
		if err != nil {
			return err
		}
		gen = client

		if opts.Spotify.ClientID != "" && opts.Spotify.ClientSecret != "" {
			sp, err := musicdata.NewSpotifyLookup(cmd.Context(), opts.Spotify.ClientID, opts.Spotify.ClientSecret, opts.MatchThreshold)
			if err != nil {
				fmt.Fprintf(out, "Warning: metadata search unavailable: %v\n", err)
			} else {
				lookup = sp
			}
		} else {
			fmt.Fprintln(out, "Warning: no Spotify credentials, cleaning without official track data")
		}

		if opts.EnableQAReview {
			reviewer = qa.NewLLMReviewer(gen, renderer)
		}
	}

	orch := organizer.NewOrchestrator(repo, gen, lookup, reviewer, renderer, opts)
	runner := organizer.NewBatchRunner(scanner.NewDiscovery(repo), orch, out, true)

	summary, err := runner.Run(cmd.Context(), opts.BasePath)
	if err != nil {
		return err
	}
	if !summary.AllSucceeded() {
		return fmt.Errorf("%d of %d albums failed", summary.Failed(), len(summary.Results))
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.album-cleaner.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "base directory containing album folders")
	rootCmd.PersistentFlags().String("language", string(models.English), "target language for track names (English, Traditional Chinese)")
	rootCmd.PersistentFlags().String("mode", config.ModeCopy, "output mode: copy (write into cleaned/) or in_place (rename originals)")
	rootCmd.PersistentFlags().Int("max-retries", 2, "mapping-generation attempts per pipeline pass")
	rootCmd.PersistentFlags().Int("business-retries", 2, "full pipeline attempts per album")
	rootCmd.PersistentFlags().Int("search-retries", 3, "metadata search attempts per album")
	rootCmd.PersistentFlags().Bool("qa", true, "review each mapping with the LLM before applying it")
	rootCmd.PersistentFlags().Float64("qa-threshold", 0.6, "minimum QA confidence to accept a mapping")
	rootCmd.PersistentFlags().Float64("match-threshold", 0.3, "minimum album-name similarity for search hits")
	rootCmd.PersistentFlags().Bool("pure-translation", false, "script conversion only, no LLM or metadata lookup")
	rootCmd.PersistentFlags().String("prompts-dir", "", "directory with prompt templates overriding the built-in ones")
	rootCmd.PersistentFlags().String("model", "gpt-4o-mini", "model used for mapping generation and QA review")

	viper.BindPFlag("base_path", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("language"))
	viper.BindPFlag("output_mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("max_retries", rootCmd.PersistentFlags().Lookup("max-retries"))
	viper.BindPFlag("max_business_retries", rootCmd.PersistentFlags().Lookup("business-retries"))
	viper.BindPFlag("max_search_retries", rootCmd.PersistentFlags().Lookup("search-retries"))
	viper.BindPFlag("enable_qa_review", rootCmd.PersistentFlags().Lookup("qa"))
	viper.BindPFlag("qa_confidence_threshold", rootCmd.PersistentFlags().Lookup("qa-threshold"))
	viper.BindPFlag("match_threshold", rootCmd.PersistentFlags().Lookup("match-threshold"))
	viper.BindPFlag("pure_translation", rootCmd.PersistentFlags().Lookup("pure-translation"))
	viper.BindPFlag("prompts_dir", rootCmd.PersistentFlags().Lookup("prompts-dir"))
	viper.BindPFlag("llm.model", rootCmd.PersistentFlags().Lookup("model"))

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".album-cleaner")
	}

	viper.SetEnvPrefix("ALBUM_CLEANER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()

	// Conventional provider env vars fill in credentials the config
	// file and ALBUM_CLEANER_* variables left empty.
	if config.AppConfig.LLM.APIKey == "" {
		config.AppConfig.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if config.AppConfig.Spotify.ClientID == "" {
		config.AppConfig.Spotify.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	}
	if config.AppConfig.Spotify.ClientSecret == "" {
		config.AppConfig.Spotify.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	}
}
