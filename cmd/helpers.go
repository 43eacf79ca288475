package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/knowledgehub/internal/config"
	"github.com/ziadkadry99/knowledgehub/internal/db"
	"github.com/ziadkadry99/knowledgehub/internal/llm"
	"github.com/ziadkadry99/knowledgehub/internal/search"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `khub init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDatabase opens the SQLite database under the configured data dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	return db.Open(filepath.Join(cfg.DataDir, "knowledgehub.db"))
}

// buildClient creates the LLM client from config. A missing API key does
// not fail: it yields an unavailable client so the rest of the system keeps
// working with AI features degraded.
func buildClient(cfg *config.Config) *llm.Client {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: AI features disabled: %v\n", err)
		return llm.NewClient(nil, cfg.Model)
	}
	if cfg.RateLimitRPM > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RateLimitRPM)
	}
	return llm.NewClient(provider, cfg.Model)
}

// buildIndex creates the semantic search index, loading any persisted state
// from the data dir. Returns nil when no embedding provider can be
// configured; callers fall back to substring search.
func buildIndex(cfg *config.Config) *search.Index {
	embProvider := cfg.EmbeddingProvider
	if embProvider == "" {
		embProvider = cfg.Provider
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.GetPreset(embProvider, cfg.Quality).EmbeddingModel
	}

	embedder, err := search.NewEmbedder(string(embProvider), model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: semantic search disabled: %v\n", err)
		return nil
	}

	index, err := search.NewIndex(embedder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: semantic search disabled: %v\n", err)
		return nil
	}

	if err := index.Load(cfg.DataDir); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "No persisted search index in %s: %v\n", cfg.DataDir, err)
		}
	}
	return index
}

// persistIndex saves the search index, logging rather than failing.
func persistIndex(index *search.Index, cfg *config.Config) {
	if index == nil {
		return
	}
	if err := index.Persist(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: persisting search index: %v\n", err)
	}
}
