// Package compose runs every analytics operation over a catalog snapshot
// and assembles the results into a stored markdown report.
package compose

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/JanHoffmann/filmetrics/internal/analyze"
	"github.com/JanHoffmann/filmetrics/internal/config"
	"github.com/JanHoffmann/filmetrics/internal/database"
)

const maxSummaryRows = 10

// Composer composes the catalog analytics report.
type Composer struct {
	db  *database.DB
	cfg *config.Config
}

// NewComposer creates a new report composer.
func NewComposer(db *database.DB, cfg *config.Config) *Composer {
	return &Composer{db: db, cfg: cfg}
}

// ComposeReport computes all analytics over the snapshot, renders the
// markdown body, and stores the report.
func (c *Composer) ComposeReport(snap *analyze.Snapshot) (*database.Report, error) {
	a := c.cfg.Analytics

	genres, err := snap.TopRatedByGenre(a.Genres.MinVotes, a.Genres.PerGenre)
	if err != nil {
		return nil, err
	}
	directors, err := snap.TopDirectors(a.Directors.MinVotes, a.Directors.MinMovies, a.Directors.MinAvgRating)
	if err != nil {
		return nil, err
	}
	actors, err := snap.TopActors(a.Actors.MinVotes, a.Actors.MinRating, a.Actors.Limit)
	if err != nil {
		return nil, err
	}
	countries, err := snap.CountryLanguageSummary(a.Summary.MinVotes)
	if err != nil {
		return nil, err
	}
	correlation, err := snap.RevenueRatingCorrelation(a.Correlation.MinVotes)
	if err != nil {
		return nil, err
	}
	trend := snap.YearlyTrend()
	growth, err := snap.GrowthSignal(a.Growth.RecentSpan, a.Growth.PriorSpan, a.Growth.Gap)
	if err != nil {
		return nil, err
	}

	ratedCount := 0
	for _, r := range snap.Records {
		if r.Rating != nil {
			ratedCount++
		}
	}

	summary := buildSummary(snap, genres, directors, correlation, growth)
	body := buildBody(genres, directors, actors, countries, correlation, trend, growth)
	title := fmt.Sprintf("Catalog report: %d movies, %d rated", len(snap.Records), ratedCount)

	id, err := c.db.InsertReport(title, summary, body, len(snap.Records), ratedCount)
	if err != nil {
		return nil, err
	}

	report, err := c.db.GetReport(id)
	if err != nil {
		return nil, err
	}
	log.Printf("Report composed: %s", title)
	return report, nil
}

// buildSummary produces the bullet list shown on the report index.
func buildSummary(snap *analyze.Snapshot, genres []analyze.GenreRanking,
	directors []analyze.DirectorInsight, correlation analyze.Correlation,
	growth map[string]analyze.Growth) string {

	var bullets []string
	bullets = append(bullets, fmt.Sprintf("- %d movies in the catalog across %d genres", len(snap.Records), len(genres)))

	if len(directors) > 0 {
		d := directors[0]
		bullets = append(bullets, fmt.Sprintf("- Strongest director track record: %s (%d movies, avg %.2f)",
			d.Name, d.MovieCount, d.AvgRating))
	}
	if correlation.R != nil {
		bullets = append(bullets, fmt.Sprintf("- Revenue/rating correlation: %.3f over %d movies", *correlation.R, correlation.N))
	}
	if name, g, ok := fastestGrowth(growth); ok {
		bullets = append(bullets, fmt.Sprintf("- Fastest-growing market: %s (%+.2f%%)", name, *g.PctChange))
	}
	return strings.Join(bullets, "\n")
}

func buildBody(genres []analyze.GenreRanking, directors []analyze.DirectorInsight,
	actors []analyze.ActorInsight, countries []analyze.CountrySummary,
	correlation analyze.Correlation, trend []analyze.YearStat,
	growth map[string]analyze.Growth) string {

	var b strings.Builder

	b.WriteString("## Top Rated by Genre\n\n")
	if len(genres) == 0 {
		b.WriteString("No genre passed the vote gate.\n")
	}
	for _, g := range genres {
		fmt.Fprintf(&b, "### %s\n\n", g.Genre)
		for i, m := range g.Movies {
			fmt.Fprintf(&b, "%d. %s (%.1f, %d votes)\n", i+1, m.Title, m.Rating, m.Votes)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Directors with a Sustained Track Record\n\n")
	if len(directors) == 0 {
		b.WriteString("No director cleared both thresholds.\n")
	}
	for _, d := range directors {
		fmt.Fprintf(&b, "- %s: %d movies, avg %.2f (min %.1f, max %.1f)\n",
			d.Name, d.MovieCount, d.AvgRating, d.MinRating, d.MaxRating)
	}
	b.WriteString("\n")

	b.WriteString("## Frequently Cast in Well-Rated Movies\n\n")
	for _, a := range actors {
		fmt.Fprintf(&b, "- %s: %d appearances, avg %.2f\n", a.Name, a.Appearances, a.AvgRating)
	}
	b.WriteString("\n")

	b.WriteString("## Production by Country and Language\n\n")
	for i, s := range countries {
		if i >= maxSummaryRows {
			fmt.Fprintf(&b, "- and %d more\n", len(countries)-maxSummaryRows)
			break
		}
		fmt.Fprintf(&b, "- %s / %s: %d movies, avg rating %.2f, avg gross %s\n",
			s.Country, s.Language, s.Count, s.AvgRating, money(s.AvgGross))
	}
	b.WriteString("\n")

	b.WriteString("## Revenue vs. Rating\n\n")
	if correlation.R == nil {
		fmt.Fprintf(&b, "Correlation undefined over %d movies (insufficient variance).\n", correlation.N)
	} else {
		fmt.Fprintf(&b, "Pearson r = %.3f over %d movies (mean gross %s, mean rating %.2f).\n",
			*correlation.R, correlation.N, money(&correlation.MeanX), correlation.MeanY)
	}
	b.WriteString("\n")

	b.WriteString("## Yearly Trend\n\n")
	for _, y := range trend {
		fmt.Fprintf(&b, "- %d: %d movies, avg rating %s, gross %s\n",
			y.Year, y.Count, rating(y.AvgRating), money(y.SumGross))
	}
	b.WriteString("\n")

	b.WriteString("## Growth Signals by Country\n\n")
	for _, name := range sortedGrowthKeys(growth) {
		g := growth[name]
		fmt.Fprintf(&b, "- %s: %d recent vs %d prior (%s)\n",
			name, g.RecentCount, g.PriorCount, pct(g.PctChange))
	}

	return b.String()
}

func fastestGrowth(growth map[string]analyze.Growth) (string, analyze.Growth, bool) {
	best := ""
	var bestG analyze.Growth
	for _, name := range sortedGrowthKeys(growth) {
		g := growth[name]
		if g.PctChange == nil {
			continue
		}
		if best == "" || *g.PctChange > *bestG.PctChange {
			best = name
			bestG = g
		}
	}
	return best, bestG, best != ""
}

// sortedGrowthKeys orders categories by recent volume descending, then
// name, so the report is stable between runs.
func sortedGrowthKeys(growth map[string]analyze.Growth) []string {
	keys := make([]string, 0, len(growth))
	for k := range growth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if growth[keys[i]].RecentCount != growth[keys[j]].RecentCount {
			return growth[keys[i]].RecentCount > growth[keys[j]].RecentCount
		}
		return keys[i] < keys[j]
	})
	return keys
}

func money(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func rating(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.2f", *v)
}

func pct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}
