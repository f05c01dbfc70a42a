package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/JanHoffmann/filmetrics/internal/analyze"
	"github.com/JanHoffmann/filmetrics/internal/config"
	"github.com/JanHoffmann/filmetrics/internal/database"
	"github.com/JanHoffmann/filmetrics/internal/ingest"
	"github.com/JanHoffmann/filmetrics/internal/pipeline"
	"github.com/JanHoffmann/filmetrics/internal/recommend"
	"github.com/JanHoffmann/filmetrics/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "filmetrics",
	Short:   "Movie catalog analytics",
	Long:    "Filmetrics imports a movie catalog, normalizes its noisy fields, and derives rankings, correlations, trends, and recommendations.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(queryCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("filmetrics", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/filmetrics/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at your dataset and tune analytics thresholds.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Println("Catalog:")
		fmt.Printf("  Movies: %d\n", stats.Movies)
		fmt.Printf("  Rated: %d\n", stats.RatedMovies)
		fmt.Printf("  People: %d\n", stats.People)
		fmt.Printf("  Genre tags: %d\n", stats.Genres)
		fmt.Printf("  Director links: %d\n", stats.DirectorLinks)
		fmt.Printf("  Role links: %d\n", stats.RoleLinks)
		fmt.Println("\nOutput:")
		fmt.Printf("  Reports: %d\n", stats.Reports)
		return nil
	},
}

// --- import command ---

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import the CSV dataset into the database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		dir := cfg.GetDatasetDir()
		if len(args) == 1 {
			dir = args[0]
		}

		fmt.Printf("Importing dataset from %s...\n", dir)
		importer := ingest.NewImporter(db)
		result, err := importer.ImportDir(dir)
		if err != nil {
			return err
		}

		fmt.Println("\nImport complete:")
		fmt.Printf("  Rows read: %d\n", result.TotalRows)
		fmt.Printf("  Inserted: %d\n", result.Inserted)
		fmt.Printf("  Duplicates skipped: %d\n", result.Duplicates)
		fmt.Printf("  Malformed rows skipped: %d\n", result.Skipped)

		if len(result.Files) > 0 {
			fmt.Println("\nRows by file:")
			files := make([]string, 0, len(result.Files))
			for f := range result.Files {
				files = append(files, f)
			}
			sort.Strings(files)
			for _, f := range files {
				fmt.Printf("  %s: %d\n", f, result.Files[f])
			}
		}
		return nil
	},
}

// --- run command ---

var (
	dryRun     bool
	datasetDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: import -> snapshot -> compose",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		dir := datasetDir
		if dir == "" {
			dir = cfg.GetDatasetDir()
		}

		pipe := pipeline.New(cfg, db)

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun(dir)
		} else {
			result = pipe.Run(dir)
		}

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/3: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		if !dryRun {
			fmt.Println("\nPipeline complete! Run 'filmetrics serve' to browse the report.")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
	runCmd.Flags().StringVar(&datasetDir, "dataset", "", "Override dataset directory")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, cfg, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// --- recommend command ---

var recommendLimit int

var recommendCmd = &cobra.Command{
	Use:   "recommend [movie-id]",
	Short: "Recommend movies similar to the given one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		snap, err := analyze.Load(db, cfg.Recommend.CastCategories)
		if err != nil {
			return err
		}

		limit := recommendLimit
		if limit == 0 {
			limit = cfg.Recommend.Limit
		}

		scorer := recommend.NewScorer(snap, recommend.Weights{
			Director: cfg.Recommend.DirectorWeight,
			Cast:     cfg.Recommend.CastWeight,
			Genre:    cfg.Recommend.GenreWeight,
		})
		candidates, err := scorer.Recommend(args[0], limit)
		if err != nil {
			return err
		}

		target := snap.ByID[args[0]]
		if target == nil {
			fmt.Printf("Movie %s is not in the catalog.\n", args[0])
			return nil
		}

		fmt.Printf("Recommendations for %s:\n\n", target.Title)
		if len(candidates) == 0 {
			fmt.Println("  No overlapping movies found.")
			return nil
		}
		for i, c := range candidates {
			fmt.Printf("  %2d. %s (score %d, rating %s, %d votes)\n",
				i+1, c.Title, c.Score, ratingLabel(c.Rating), c.Votes)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 0, "Maximum recommendations (default from config)")
}

// --- query command group ---

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run individual analytics queries",
}

var queryGenresCmd = &cobra.Command{
	Use:   "genres",
	Short: "Top rated movies per genre",
	RunE: withSnapshot(func(snap *analyze.Snapshot) error {
		a := cfg.Analytics.Genres
		rankings, err := snap.TopRatedByGenre(a.MinVotes, a.PerGenre)
		if err != nil {
			return err
		}
		for _, g := range rankings {
			fmt.Printf("%s:\n", g.Genre)
			for i, m := range g.Movies {
				fmt.Printf("  %d. %s (%.1f, %d votes)\n", i+1, m.Title, m.Rating, m.Votes)
			}
		}
		return nil
	}),
}

var queryDirectorsCmd = &cobra.Command{
	Use:   "directors",
	Short: "Directors with a sustained track record",
	RunE: withSnapshot(func(snap *analyze.Snapshot) error {
		a := cfg.Analytics.Directors
		directors, err := snap.TopDirectors(a.MinVotes, a.MinMovies, a.MinAvgRating)
		if err != nil {
			return err
		}
		for _, d := range directors {
			fmt.Printf("%s: %d movies, avg %.2f (min %.1f, max %.1f)\n",
				d.Name, d.MovieCount, d.AvgRating, d.MinRating, d.MaxRating)
		}
		return nil
	}),
}

var queryActorsCmd = &cobra.Command{
	Use:   "actors",
	Short: "Cast members frequent in well-rated movies",
	RunE: withSnapshot(func(snap *analyze.Snapshot) error {
		a := cfg.Analytics.Actors
		actors, err := snap.TopActors(a.MinVotes, a.MinRating, a.Limit)
		if err != nil {
			return err
		}
		for _, ac := range actors {
			fmt.Printf("%s: %d appearances, avg %.2f\n", ac.Name, ac.Appearances, ac.AvgRating)
		}
		return nil
	}),
}

var queryCountriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "Production summary by country and language",
	RunE: withSnapshot(func(snap *analyze.Snapshot) error {
		summaries, err := snap.CountryLanguageSummary(cfg.Analytics.Summary.MinVotes)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Printf("%s / %s: %d movies, avg rating %.2f, avg gross %s\n",
				s.Country, s.Language, s.Count, s.AvgRating, moneyLabel(s.AvgGross))
		}
		return nil
	}),
}

var queryCorrelationCmd = &cobra.Command{
	Use:   "correlation",
	Short: "Pearson correlation between gross income and rating",
	RunE: withSnapshot(func(snap *analyze.Snapshot) error {
		corr, err := snap.RevenueRatingCorrelation(cfg.Analytics.Correlation.MinVotes)
		if err != nil {
			return err
		}
		if corr.R == nil {
			fmt.Printf("Correlation undefined over %d movies (insufficient variance).\n", corr.N)
			return nil
		}
		fmt.Printf("Pearson r = %.4f over %d movies\n", *corr.R, corr.N)
		fmt.Printf("Mean gross: %s, mean rating: %.2f\n", moneyLabel(&corr.MeanX), corr.MeanY)
		return nil
	}),
}

var queryTrendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Yearly movie counts, ratings, and revenue",
	RunE: withSnapshot(func(snap *analyze.Snapshot) error {
		for _, y := range snap.YearlyTrend() {
			fmt.Printf("%d: %d movies, avg rating %s, gross %s\n",
				y.Year, y.Count, ratingLabel(y.AvgRating), moneyLabel(y.SumGross))
		}
		return nil
	}),
}

var queryGrowthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Production growth by country across year windows",
	RunE: withSnapshot(func(snap *analyze.Snapshot) error {
		g := cfg.Analytics.Growth
		growth, err := snap.GrowthSignal(g.RecentSpan, g.PriorSpan, g.Gap)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(growth))
		for name := range growth {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if growth[names[i]].RecentCount != growth[names[j]].RecentCount {
				return growth[names[i]].RecentCount > growth[names[j]].RecentCount
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			gr := growth[name]
			fmt.Printf("%s: %d recent vs %d prior (%s)\n",
				name, gr.RecentCount, gr.PriorCount, pctLabel(gr.PctChange))
		}
		return nil
	}),
}

func init() {
	queryCmd.AddCommand(queryGenresCmd)
	queryCmd.AddCommand(queryDirectorsCmd)
	queryCmd.AddCommand(queryActorsCmd)
	queryCmd.AddCommand(queryCountriesCmd)
	queryCmd.AddCommand(queryCorrelationCmd)
	queryCmd.AddCommand(queryTrendsCmd)
	queryCmd.AddCommand(queryGrowthCmd)
}

// withSnapshot opens the database, loads the catalog snapshot, and hands
// it to the query body.
func withSnapshot(fn func(*analyze.Snapshot) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		snap, err := analyze.Load(db, cfg.Recommend.CastCategories)
		if err != nil {
			return err
		}
		return fn(snap)
	}
}

func ratingLabel(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.1f", *v)
}

func moneyLabel(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func pctLabel(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "filmetrics.db")
	return database.Open(dbPath)
}
