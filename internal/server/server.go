package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/JanHoffmann/filmetrics/internal/analyze"
	"github.com/JanHoffmann/filmetrics/internal/config"
	"github.com/JanHoffmann/filmetrics/internal/database"
	"github.com/JanHoffmann/filmetrics/internal/recommend"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server is the HTTP server for browsing reports and recommendations.
// The catalog snapshot is loaded once at startup; re-run the pipeline and
// restart to pick up new data.
type Server struct {
	db     *database.DB
	cfg    *config.Config
	snap   *analyze.Snapshot
	scorer *recommend.Scorer
	pages  map[string]*template.Template
	mux    *http.ServeMux
}

// New creates a new Server.
func New(db *database.DB, cfg *config.Config) (*Server, error) {
	snap, err := analyze.Load(db, cfg.Recommend.CastCategories)
	if err != nil {
		return nil, fmt.Errorf("loading catalog snapshot: %w", err)
	}
	weights := recommend.Weights{
		Director: cfg.Recommend.DirectorWeight,
		Cast:     cfg.Recommend.CastWeight,
		Genre:    cfg.Recommend.GenreWeight,
	}
	scorer := recommend.NewScorer(snap, weights)

	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"ratingLabel": func(v *float64) string {
			if v == nil {
				return "unknown"
			}
			return fmt.Sprintf("%.1f", *v)
		},
		"yearLabel": func(v *int) string {
			if v == nil {
				return ""
			}
			return strconv.Itoa(*v)
		},
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "report.html", "recommend.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{db: db, cfg: cfg, snap: snap, scorer: scorer, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Routes
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/report/", s.handleReport)
	s.mux.HandleFunc("/recommend", s.handleRecommend)
	s.mux.HandleFunc("/api/recommend", s.handleAPIRecommend)
	s.mux.HandleFunc("/api/trends", s.handleAPITrends)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	reports, err := s.db.GetAllReports()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	stats, _ := s.db.GetStats()

	s.render(w, "index.html", map[string]any{
		"Reports": reports,
		"Stats":   stats,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/report/")
	if idStr == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	report, _ := s.db.GetReport(id)

	s.render(w, "report.html", map[string]any{
		"Report": report,
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	movieID := strings.TrimSpace(r.URL.Query().Get("movie_id"))

	data := map[string]any{
		"Query":   query,
		"MovieID": movieID,
	}

	if query != "" && movieID == "" {
		matches, err := s.db.SearchMoviesByTitle(query, 25)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		data["Matches"] = matches
	}

	if movieID != "" {
		target := s.snap.ByID[movieID]
		candidates, err := s.scorer.Recommend(movieID, s.cfg.Recommend.Limit)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		data["Target"] = target
		data["Candidates"] = candidates
	}

	s.render(w, "recommend.html", data)
}

// recommendation is one row of the JSON recommendation response.
type recommendation struct {
	MovieID string   `json:"movie_id"`
	Title   string   `json:"title"`
	Score   int      `json:"score"`
	Rating  *float64 `json:"rating"`
	Votes   int      `json:"votes"`
}

func (s *Server) handleAPIRecommend(w http.ResponseWriter, r *http.Request) {
	movieID := r.URL.Query().Get("movie_id")
	if movieID == "" {
		writeJSONError(w, http.StatusBadRequest, "movie_id is required")
		return
	}

	limit := s.cfg.Recommend.Limit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	candidates, err := s.scorer.Recommend(movieID, limit)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows := make([]recommendation, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, recommendation{
			MovieID: c.MovieID,
			Title:   c.Title,
			Score:   c.Score,
			Rating:  c.Rating,
			Votes:   c.Votes,
		})
	}
	writeJSON(w, map[string]any{
		"movie_id":        movieID,
		"recommendations": rows,
	})
}

func (s *Server) handleAPITrends(w http.ResponseWriter, r *http.Request) {
	trend := s.snap.YearlyTrend()
	growth, err := s.snap.GrowthSignal(
		s.cfg.Analytics.Growth.RecentSpan,
		s.cfg.Analytics.Growth.PriorSpan,
		s.cfg.Analytics.Growth.Gap,
	)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type yearRow struct {
		Year      int      `json:"year"`
		Count     int      `json:"count"`
		AvgRating *float64 `json:"avg_rating"`
		SumGross  *float64 `json:"sum_gross"`
	}
	years := make([]yearRow, 0, len(trend))
	for _, y := range trend {
		years = append(years, yearRow{Year: y.Year, Count: y.Count, AvgRating: y.AvgRating, SumGross: y.SumGross})
	}

	type growthRow struct {
		RecentCount int      `json:"recent_count"`
		PriorCount  int      `json:"prior_count"`
		Delta       int      `json:"delta"`
		PctChange   *float64 `json:"pct_change"`
	}
	byCountry := make(map[string]growthRow, len(growth))
	for name, g := range growth {
		byCountry[name] = growthRow{
			RecentCount: g.RecentCount,
			PriorCount:  g.PriorCount,
			Delta:       g.Delta,
			PctChange:   g.PctChange,
		}
	}

	writeJSON(w, map[string]any{
		"yearly": years,
		"growth": byCountry,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(db *database.DB, cfg *config.Config, port int) error {
	srv, err := New(db, cfg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
