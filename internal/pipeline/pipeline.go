package pipeline

import (
	"fmt"
	"log"

	"github.com/JanHoffmann/filmetrics/internal/analyze"
	"github.com/JanHoffmann/filmetrics/internal/compose"
	"github.com/JanHoffmann/filmetrics/internal/config"
	"github.com/JanHoffmann/filmetrics/internal/database"
	"github.com/JanHoffmann/filmetrics/internal/ingest"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Steps []StepResult
}

// Pipeline orchestrates the 3-step analytics pipeline: import the CSV
// dataset, load and normalize a catalog snapshot, compose a report.
type Pipeline struct {
	cfg *config.Config
	db  *database.DB
}

// New creates a new pipeline.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// Run executes the full pipeline against the dataset directory.
func (p *Pipeline) Run(datasetDir string) *Result {
	r := &Result{}

	step := p.runImport(datasetDir)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	snap, step := p.runSnapshot()
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	r.Steps = append(r.Steps, p.runCompose(snap))
	return r
}

// DryRun shows what would be done without executing.
func (p *Pipeline) DryRun(datasetDir string) *Result {
	r := &Result{}

	stats, _ := p.db.GetStats()
	r.Steps = append(r.Steps, StepResult{
		Name:    "Import",
		Summary: fmt.Sprintf("[dry-run] would import %s (%d movies already in DB)", datasetDir, stats.Movies),
	})
	r.Steps = append(r.Steps, StepResult{
		Name:    "Snapshot",
		Summary: fmt.Sprintf("[dry-run] would normalize %d movies (%d rated)", stats.Movies, stats.RatedMovies),
	})
	reports, _ := p.db.GetAllReports()
	r.Steps = append(r.Steps, StepResult{
		Name:    "Compose",
		Summary: fmt.Sprintf("[dry-run] would compose report (%d existing)", len(reports)),
	})
	return r
}

func (p *Pipeline) runImport(datasetDir string) StepResult {
	log.Println("Step 1/3: Importing dataset...")
	importer := ingest.NewImporter(p.db)
	result, err := importer.ImportDir(datasetDir)
	if err != nil {
		return StepResult{Name: "Import", Err: err}
	}
	return StepResult{
		Name: "Import",
		Summary: fmt.Sprintf("Imported %d rows: %d inserted, %d duplicates, %d skipped",
			result.TotalRows, result.Inserted, result.Duplicates, result.Skipped),
	}
}

func (p *Pipeline) runSnapshot() (*analyze.Snapshot, StepResult) {
	log.Println("Step 2/3: Loading catalog snapshot...")
	snap, err := analyze.Load(p.db, p.cfg.Recommend.CastCategories)
	if err != nil {
		return nil, StepResult{Name: "Snapshot", Err: err}
	}
	rated := 0
	for _, r := range snap.Records {
		if r.Rating != nil {
			rated++
		}
	}
	return snap, StepResult{
		Name:    "Snapshot",
		Summary: fmt.Sprintf("Loaded %d movies (%d rated)", len(snap.Records), rated),
	}
}

func (p *Pipeline) runCompose(snap *analyze.Snapshot) StepResult {
	log.Println("Step 3/3: Composing report...")
	comp := compose.NewComposer(p.db, p.cfg)
	report, err := comp.ComposeReport(snap)
	if err != nil {
		return StepResult{Name: "Compose", Err: err}
	}
	return StepResult{
		Name:    "Compose",
		Summary: fmt.Sprintf("Report composed: %s", report.Title),
	}
}
