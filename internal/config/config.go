package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Dataset   Dataset   `yaml:"dataset"`
	Analytics Analytics `yaml:"analytics"`
	Recommend Recommend `yaml:"recommend"`
	Output    Output    `yaml:"output"`
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
}

type Dataset struct {
	Dir string `yaml:"dir"`
}

// Analytics carries the caller-supplied thresholds for every operation.
// Each operation keeps its own vote floor; there is no single global one.
type Analytics struct {
	Genres      GenresConfig      `yaml:"genres"`
	Directors   DirectorsConfig   `yaml:"directors"`
	Actors      ActorsConfig      `yaml:"actors"`
	Summary     SummaryConfig     `yaml:"summary"`
	Correlation CorrelationConfig `yaml:"correlation"`
	Growth      GrowthConfig      `yaml:"growth"`
}

type GenresConfig struct {
	MinVotes int `yaml:"min_votes"`
	PerGenre int `yaml:"per_genre"`
}

type DirectorsConfig struct {
	MinVotes     int     `yaml:"min_votes"`
	MinMovies    int     `yaml:"min_movies"`
	MinAvgRating float64 `yaml:"min_avg_rating"`
}

type ActorsConfig struct {
	MinVotes  int     `yaml:"min_votes"`
	MinRating float64 `yaml:"min_rating"`
	Limit     int     `yaml:"limit"`
}

type SummaryConfig struct {
	MinVotes int `yaml:"min_votes"`
}

type CorrelationConfig struct {
	MinVotes int `yaml:"min_votes"`
}

type GrowthConfig struct {
	RecentSpan int `yaml:"recent_span"`
	PriorSpan  int `yaml:"prior_span"`
	Gap        int `yaml:"gap"`
}

type Recommend struct {
	DirectorWeight int      `yaml:"director_weight"`
	CastWeight     int      `yaml:"cast_weight"`
	GenreWeight    int      `yaml:"genre_weight"`
	Limit          int      `yaml:"limit"`
	CastCategories []string `yaml:"cast_categories"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for filmetrics.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "filmetrics")
}

// DataDir returns the XDG data directory for filmetrics.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "filmetrics")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/filmetrics/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'filmetrics init' to create a default config",
		xdgConfig,
	)
}

// Default returns the configuration from the embedded default.yaml.
func Default() (*Config, error) {
	return parse(DefaultConfigYAML)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Analytics: Analytics{
			Genres:      GenresConfig{MinVotes: 100, PerGenre: 5},
			Directors:   DirectorsConfig{MinVotes: 500, MinMovies: 3, MinAvgRating: 8.0},
			Actors:      ActorsConfig{MinVotes: 200, MinRating: 7.5, Limit: 50},
			Summary:     SummaryConfig{MinVotes: 100},
			Correlation: CorrelationConfig{MinVotes: 1000},
			Growth:      GrowthConfig{RecentSpan: 3, PriorSpan: 3, Gap: 0},
		},
		Recommend: Recommend{
			DirectorWeight: 3,
			CastWeight:     2,
			GenreWeight:    1,
			Limit:          20,
			CastCategories: []string{"actor", "actress"},
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// GetDatasetDir returns the directory holding the CSV dataset files.
func (c *Config) GetDatasetDir() string {
	if c.Dataset.Dir != "" {
		return c.Dataset.Dir
	}
	return filepath.Join(c.GetDataDir(), "dataset")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
