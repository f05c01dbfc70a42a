package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Analytics.Correlation.MinVotes != 1000 {
		t.Errorf("expected correlation min_votes 1000, got %d", cfg.Analytics.Correlation.MinVotes)
	}
	if cfg.Analytics.Directors.MinMovies != 3 || cfg.Analytics.Directors.MinAvgRating != 8.0 {
		t.Errorf("unexpected director thresholds: %+v", cfg.Analytics.Directors)
	}
	if cfg.Recommend.DirectorWeight != 3 || cfg.Recommend.CastWeight != 2 || cfg.Recommend.GenreWeight != 1 {
		t.Errorf("unexpected recommend weights: %+v", cfg.Recommend)
	}
	if len(cfg.Recommend.CastCategories) != 2 {
		t.Errorf("expected 2 cast categories, got %v", cfg.Recommend.CastCategories)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
analytics:
  correlation:
    min_votes: 500
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Analytics.Correlation.MinVotes != 500 {
		t.Errorf("expected overridden min_votes 500, got %d", cfg.Analytics.Correlation.MinVotes)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Analytics.Actors.Limit != 50 {
		t.Errorf("expected default actor limit 50, got %d", cfg.Analytics.Actors.Limit)
	}
	if cfg.Recommend.Limit != 20 {
		t.Errorf("expected default recommend limit 20, got %d", cfg.Recommend.Limit)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Analytics.Genres.PerGenre != 5 {
		t.Errorf("expected per_genre 5, got %d", cfg.Analytics.Genres.PerGenre)
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestGetDatasetDir(t *testing.T) {
	cfg := &Config{}
	cfg.Output.DataDir = "/tmp/fm"
	if got := cfg.GetDatasetDir(); got != filepath.Join("/tmp/fm", "dataset") {
		t.Errorf("unexpected dataset dir: %s", got)
	}

	cfg.Dataset.Dir = "/data/imdb"
	if got := cfg.GetDatasetDir(); got != "/data/imdb" {
		t.Errorf("expected explicit dataset dir, got %s", got)
	}
}
