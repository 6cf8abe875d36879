package server

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/quantfolio/frontier/internal/modules/optimization"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// indexData is the view model for the parameter form.
type indexData struct {
	RiskFreeRate float64
	Trials       int
	MinTrials    int
	MaxTrials    int
	Error        string
}

// weightRow pairs an asset with its weight in both optimal portfolios.
type weightRow struct {
	Asset       string
	MaxSharpe   float64
	MinVariance float64
}

// resultsData is the view model for the results page.
type resultsData struct {
	RunID        string
	RiskFreeRate float64
	Trials       int
	Seed         int64
	MaxSharpe    optimization.PortfolioResult
	MinVariance  optimization.PortfolioResult
	Weights      []weightRow
	FrontierImg  string
	MaxSharpeImg string
	MinVarImg    string
}

// handleIndex handles GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, indexData{
		RiskFreeRate: s.cfg.DefaultRiskFree,
		Trials:       s.cfg.DefaultTrials,
		MinTrials:    s.cfg.MinTrials,
		MaxTrials:    s.cfg.MaxTrials,
	})
}

// handleIndexSubmit handles POST / and redirects valid submissions to the
// results page so a browser refresh re-runs the same parameters.
func (s *Server) handleIndexSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderIndexError(w, "Could not read form data.")
		return
	}

	rfRaw := r.PostFormValue("rf_rate")
	trialsRaw := r.PostFormValue("num_port")

	rf, err := strconv.ParseFloat(rfRaw, 64)
	if err != nil {
		s.renderIndexError(w, "Risk-free rate must be a number.")
		return
	}
	trials, err := strconv.Atoi(trialsRaw)
	if err != nil {
		s.renderIndexError(w, "Number of portfolios must be a whole number.")
		return
	}
	if trials < s.cfg.MinTrials || trials > s.cfg.MaxTrials {
		s.renderIndexError(w, fmt.Sprintf("Number of portfolios must be between %d and %d.", s.cfg.MinTrials, s.cfg.MaxTrials))
		return
	}

	q := url.Values{}
	q.Set("rf_rate", strconv.FormatFloat(rf, 'f', -1, 64))
	q.Set("num_port", strconv.Itoa(trials))
	if seedRaw := r.PostFormValue("seed"); seedRaw != "" {
		q.Set("seed", seedRaw)
	}
	http.Redirect(w, r, "/optimize?"+q.Encode(), http.StatusSeeOther)
}

// handleOptimizePage handles GET /optimize
func (s *Server) handleOptimizePage(w http.ResponseWriter, r *http.Request) {
	req := optimization.Request{
		RiskFreeRate: s.cfg.DefaultRiskFree,
		Trials:       s.cfg.DefaultTrials,
		Seed:         s.cfg.DefaultSeed,
	}

	q := r.URL.Query()
	if raw := q.Get("rf_rate"); raw != "" {
		rf, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.renderIndexError(w, "Risk-free rate must be a number.")
			return
		}
		req.RiskFreeRate = rf
	}
	if raw := q.Get("num_port"); raw != "" {
		trials, err := strconv.Atoi(raw)
		if err != nil {
			s.renderIndexError(w, "Number of portfolios must be a whole number.")
			return
		}
		req.Trials = trials
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.renderIndexError(w, "Seed must be a whole number.")
			return
		}
		req.Seed = seed
	}

	summary, err := s.optimizer.Optimize(r.Context(), req)
	if err != nil {
		switch {
		case optimization.IsInputError(err):
			s.renderIndexError(w, err.Error())
		case optimization.IsDataError(err):
			s.renderIndexWithStatus(w, http.StatusUnprocessableEntity, "Dataset problem: "+err.Error())
		default:
			s.log.Error().Err(err).Msg("Simulation failed")
			s.renderIndexWithStatus(w, http.StatusInternalServerError, "Simulation failed, please try again.")
		}
		return
	}

	frontier, err := s.charts.FrontierPNG(summary)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to render frontier chart")
		s.renderIndexWithStatus(w, http.StatusInternalServerError, "Chart rendering failed, please try again.")
		return
	}
	maxSharpePie, err := s.charts.AllocationPiePNG(summary, summary.MaxSharpe, "Max Sharpe Ratio Allocation")
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to render max-Sharpe pie")
		s.renderIndexWithStatus(w, http.StatusInternalServerError, "Chart rendering failed, please try again.")
		return
	}
	minVarPie, err := s.charts.AllocationPiePNG(summary, summary.MinVariance, "Min Variance Allocation")
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to render min-variance pie")
		s.renderIndexWithStatus(w, http.StatusInternalServerError, "Chart rendering failed, please try again.")
		return
	}

	weights := make([]weightRow, len(summary.Assets))
	for i, asset := range summary.Assets {
		weights[i] = weightRow{
			Asset:       asset,
			MaxSharpe:   summary.MaxSharpe.Weights[i] * 100,
			MinVariance: summary.MinVariance.Weights[i] * 100,
		}
	}

	data := resultsData{
		RunID:        summary.RunID,
		RiskFreeRate: summary.RiskFreeRate,
		Trials:       summary.Trials,
		Seed:         summary.Seed,
		MaxSharpe:    summary.MaxSharpe,
		MinVariance:  summary.MinVariance,
		Weights:      weights,
		FrontierImg:  base64.StdEncoding.EncodeToString(frontier),
		MaxSharpeImg: base64.StdEncoding.EncodeToString(maxSharpePie),
		MinVarImg:    base64.StdEncoding.EncodeToString(minVarPie),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "results.html", data); err != nil {
		s.log.Error().Err(err).Msg("Failed to render results template")
	}
}

func (s *Server) renderIndexError(w http.ResponseWriter, msg string) {
	s.renderIndexWithStatus(w, http.StatusBadRequest, msg)
}

func (s *Server) renderIndexWithStatus(w http.ResponseWriter, status int, msg string) {
	s.renderIndex(w, status, indexData{
		RiskFreeRate: s.cfg.DefaultRiskFree,
		Trials:       s.cfg.DefaultTrials,
		MinTrials:    s.cfg.MinTrials,
		MaxTrials:    s.cfg.MaxTrials,
		Error:        msg,
	})
}

func (s *Server) renderIndex(w http.ResponseWriter, status int, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.log.Error().Err(err).Msg("Failed to render index template")
	}
}
