// Package charts renders the report's image artifacts: a combined
// bar+pie language distribution chart and a four-panel profile
// dashboard, each written in both PNG and SVG form.
package charts

import (
	"bytes"
	"fmt"
	"ghprofile/logger"
	"ghprofile/models"
	"ghprofile/output"
	"ghprofile/palette"
	"io"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

// Every panel has the same dimensions so composed artifacts stay an
// even grid.
const (
	panelWidth  = 560
	panelHeight = 420
)

// imageFormat pairs a file extension with the go-chart renderer that
// produces it.
type imageFormat struct {
	ext      string
	vector   bool
	provider chart.RendererProvider
}

var (
	pngFormat = imageFormat{ext: ".png", provider: chart.PNG}
	svgFormat = imageFormat{ext: ".svg", vector: true, provider: chart.SVG}
)

var outputFormats = []imageFormat{pngFormat, svgFormat}

// renderable is satisfied by every go-chart chart type.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Renderer draws chart artifacts into an output directory.
type Renderer struct {
	outDir        string
	languageLimit int
}

// NewRenderer creates a renderer writing into outDir. languageLimit
// caps how many languages the distribution chart shows.
func NewRenderer(outDir string, languageLimit int) *Renderer {
	if languageLimit < 1 {
		languageLimit = 10
	}
	return &Renderer{outDir: outDir, languageLimit: languageLimit}
}

// RenderLanguageChart writes the combined bar+pie language chart and
// returns the files written. An empty share list skips the chart with
// a warning instead of failing the run.
func (r *Renderer) RenderLanguageChart(shares []models.LanguageShare) ([]string, error) {
	if len(shares) == 0 {
		logger.Warn("No language data available, skipping language chart")
		return nil, nil
	}

	top := shares
	if len(top) > r.languageLimit {
		top = top[:r.languageLimit]
	}

	var written []string
	for _, format := range outputFormats {
		panels := make([][]byte, 0, 2)
		for _, c := range []renderable{languageBarChart(top), languagePieChart(top)} {
			panel, err := renderPanel(c, format)
			if err != nil {
				return written, fmt.Errorf("failed to render language chart: %w", err)
			}
			panels = append(panels, panel)
		}

		data, err := composePanels(format, panels, 2)
		if err != nil {
			return written, fmt.Errorf("failed to compose language chart: %w", err)
		}

		path := filepath.Join(r.outDir, output.LanguageChartBase+format.ext)
		if err := output.WriteFile(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	logger.Info("Language chart rendered",
		zap.Int("languages", len(top)),
		zap.Strings("files", written))
	return written, nil
}

// RenderDashboard writes the four-panel profile dashboard (repository
// types, social counts, engagement counts, account info) and returns
// the files written.
func (r *Renderer) RenderDashboard(snap *models.StatsSnapshot) ([]string, error) {
	var written []string
	for _, format := range outputFormats {
		panels := make([][]byte, 0, 4)
		for _, c := range []renderable{
			repoTypeChart(snap),
			socialChart(snap),
			engagementChart(snap),
		} {
			panel, err := renderPanel(c, format)
			if err != nil {
				return written, fmt.Errorf("failed to render dashboard: %w", err)
			}
			panels = append(panels, panel)
		}

		info, err := renderInfoPanel(snap, format)
		if err != nil {
			return written, fmt.Errorf("failed to render dashboard: %w", err)
		}
		panels = append(panels, info)

		data, err := composePanels(format, panels, 2)
		if err != nil {
			return written, fmt.Errorf("failed to compose dashboard: %w", err)
		}

		path := filepath.Join(r.outDir, output.DashboardBase+format.ext)
		if err := output.WriteFile(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	logger.Info("Dashboard rendered", zap.Strings("files", written))
	return written, nil
}

func renderPanel(c renderable, format imageFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(format.provider, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func languageBarChart(shares []models.LanguageShare) chart.BarChart {
	bars := make([]chart.Value, 0, len(shares))
	maxPercent := 0.0
	for i, s := range shares {
		if s.Percent > maxPercent {
			maxPercent = s.Percent
		}
		bars = append(bars, chart.Value{
			Value: s.Percent,
			Label: s.Name,
			Style: barStyle(palette.ColorFor(s.Name, i)),
		})
	}
	if maxPercent <= 0 {
		maxPercent = 100
	}

	return chart.BarChart{
		Title:      "Language Distribution (%)",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      panelWidth,
		Height:     panelHeight,
		BarWidth:   barWidthFor(len(bars)),
		Bars:       bars,
		XAxis:      chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: clampPercent(maxPercent * 1.15)},
		},
	}
}

func languagePieChart(shares []models.LanguageShare) chart.PieChart {
	values := make([]chart.Value, 0, len(shares))
	for i, s := range shares {
		values = append(values, chart.Value{
			Value: s.Percent,
			Label: fmt.Sprintf("%s %.1f%%", s.Name, s.Percent),
			Style: chart.Style{
				FillColor: drawing.ColorFromHex(palette.ColorFor(s.Name, i)),
				FontSize:  9,
			},
		})
	}

	return chart.PieChart{
		Title:      "Most Used Languages",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      panelWidth,
		Height:     panelHeight,
		Values:     values,
	}
}

func repoTypeChart(snap *models.StatsSnapshot) chart.BarChart {
	return countBarChart("Repository Types", []chart.Value{
		{Value: float64(snap.OriginalRepos), Label: "Original", Style: barStyle(palette.RepoTypeColors[0])},
		{Value: float64(snap.ForkedRepos), Label: "Forked", Style: barStyle(palette.RepoTypeColors[1])},
	})
}

func socialChart(snap *models.StatsSnapshot) chart.BarChart {
	return countBarChart("Social", []chart.Value{
		{Value: float64(snap.Followers), Label: "Followers", Style: barStyle(palette.SocialColors[0])},
		{Value: float64(snap.Following), Label: "Following", Style: barStyle(palette.SocialColors[1])},
	})
}

func engagementChart(snap *models.StatsSnapshot) chart.BarChart {
	return countBarChart("Engagement", []chart.Value{
		{Value: float64(snap.TotalStars), Label: "Stars", Style: barStyle(palette.EngagementColors[0])},
		{Value: float64(snap.TotalForks), Label: "Forks", Style: barStyle(palette.EngagementColors[1])},
	})
}

func countBarChart(title string, bars []chart.Value) chart.BarChart {
	maxCount := 0.0
	for _, b := range bars {
		if b.Value > maxCount {
			maxCount = b.Value
		}
	}
	if maxCount <= 0 {
		maxCount = 1
	}

	return chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      panelWidth,
		Height:     panelHeight,
		BarWidth:   80,
		Bars:       bars,
		XAxis:      chart.Style{FontSize: 10},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount * 1.15},
		},
	}
}

func barStyle(hex string) chart.Style {
	c := drawing.ColorFromHex(hex)
	return chart.Style{FillColor: c, StrokeColor: c}
}

func barWidthFor(count int) int {
	if count <= 0 {
		return 40
	}
	width := (panelWidth - 80) / (count * 2)
	if width < 12 {
		width = 12
	}
	if width > 60 {
		width = 60
	}
	return width
}

func clampPercent(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
