// Package charts renders the simulation output to PNG: the efficient
// frontier point cloud and the optimal allocation pies.
package charts

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog"
	gocharts "github.com/vicanso/go-charts/v2"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/quantfolio/frontier/internal/modules/optimization"
)

// Service renders charts from simulation summaries.
type Service struct {
	cache *imageCache
	log   zerolog.Logger
}

// NewService creates a new chart service.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		cache: newImageCache(),
		log:   log.With().Str("component", "charts").Logger(),
	}
}

// FrontierPNG renders the (risk, return) scatter of the whole population
// with the max-Sharpe and min-variance portfolios highlighted.
func (s *Service) FrontierPNG(summary *optimization.Summary) ([]byte, error) {
	cacheKey := fmt.Sprintf("frontier-%s", summary.RunID)
	if img, ok := s.cache.get(cacheKey); ok {
		return img, nil
	}

	n := len(summary.Population)
	if n == 0 {
		return nil, fmt.Errorf("empty population")
	}
	risks := make([]float64, n)
	returns := make([]float64, n)
	for i, p := range summary.Population {
		risks[i] = p.Risk
		returns[i] = p.Return
	}

	graph := chart.Chart{
		Title:  "Efficient Frontier",
		Width:  800,
		Height: 600,
		XAxis: chart.XAxis{
			Name: "Risk (Std Dev)",
		},
		YAxis: chart.YAxis{
			Name: "Expected Return",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Portfolios",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    2,
					DotColor:    drawing.Color{R: 80, G: 140, B: 90, A: 160},
				},
				XValues: risks,
				YValues: returns,
			},
			chart.ContinuousSeries{
				Name: "Max Sharpe Ratio",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    9,
					DotColor:    chart.ColorRed,
				},
				XValues: []float64{summary.MaxSharpe.Risk},
				YValues: []float64{summary.MaxSharpe.Return},
			},
			chart.ContinuousSeries{
				Name: "Min Variance",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    9,
					DotColor:    chart.ColorBlue,
				},
				XValues: []float64{summary.MinVariance.Risk},
				YValues: []float64{summary.MinVariance.Return},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render frontier chart: %w", err)
	}

	img := buf.Bytes()
	s.cache.set(cacheKey, img)
	return img, nil
}

// AllocationPiePNG renders one optimal portfolio's weights as a pie chart.
func (s *Service) AllocationPiePNG(summary *optimization.Summary, portfolio optimization.PortfolioResult, title string) ([]byte, error) {
	cacheKey := fmt.Sprintf("pie-%s-%s", summary.RunID, title)
	if img, ok := s.cache.get(cacheKey); ok {
		return img, nil
	}

	if len(portfolio.Weights) != len(summary.Assets) {
		return nil, fmt.Errorf("weights (%d) do not match assets (%d)", len(portfolio.Weights), len(summary.Assets))
	}

	labels := make([]string, len(summary.Assets))
	values := make([]float64, len(summary.Assets))
	for i, asset := range summary.Assets {
		labels[i] = fmt.Sprintf("%s (%.1f%%)", asset, portfolio.Weights[i]*100)
		values[i] = portfolio.Weights[i]
	}

	p, err := gocharts.PieRender(
		values,
		gocharts.TitleTextOptionFunc(title),
		gocharts.LegendOptionFunc(gocharts.LegendOption{
			Data: labels,
			Top:  gocharts.PositionTop,
		}),
		gocharts.ThemeOptionFunc(gocharts.ThemeLight),
		gocharts.WidthOptionFunc(600),
		gocharts.HeightOptionFunc(450),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render allocation pie: %w", err)
	}

	img, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode allocation pie: %w", err)
	}

	s.cache.set(cacheKey, img)
	return img, nil
}
