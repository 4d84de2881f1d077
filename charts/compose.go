package charts

import (
	"bytes"
	"fmt"
	"ghprofile/models"
	"image"
	"image/draw"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderInfoPanel draws the free-text account summary panel using the
// raw go-chart renderer for the requested format.
func renderInfoPanel(snap *models.StatsSnapshot, format imageFormat) ([]byte, error) {
	r, err := format.provider(panelWidth, panelHeight)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	// White background matching the chart panels.
	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(panelWidth, 0)
	r.LineTo(panelWidth, panelHeight)
	r.LineTo(0, panelHeight)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(drawing.ColorFromHex("333333"))

	r.SetFontSize(18)
	r.Text("Account Info", 40, 56)

	r.SetFontSize(12)
	y := 104
	for _, line := range infoLines(snap) {
		r.Text(line, 40, y)
		y += 30
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func infoLines(snap *models.StatsSnapshot) []string {
	return []string{
		fmt.Sprintf("User: %s", snap.Username),
		fmt.Sprintf("Account age: %d days", snap.AccountAgeDays),
		fmt.Sprintf("Public repos: %d", snap.PublicRepos),
		fmt.Sprintf("Total size: %.1f MB", float64(snap.TotalSizeKB)/1024),
		fmt.Sprintf("Active in last %d days: %d repos", snap.RecentWindowDays, snap.RecentlyActive),
		fmt.Sprintf("Last activity: %s", snap.LastActive),
		fmt.Sprintf("Mean stars per repo: %.2f", snap.MeanStars),
		fmt.Sprintf("Median repo size: %.0f KB", snap.MedianSizeKB),
	}
}

// composePanels arranges equally sized panels into a grid with the
// given column count.
func composePanels(format imageFormat, panels [][]byte, cols int) ([]byte, error) {
	if format.vector {
		return composePanelsSVG(panels, cols)
	}
	return composePanelsPNG(panels, cols)
}

func composePanelsPNG(panels [][]byte, cols int) ([]byte, error) {
	rows := (len(panels) + cols - 1) / cols
	canvas := image.NewRGBA(image.Rect(0, 0, cols*panelWidth, rows*panelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for i, data := range panels {
		panel, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode panel %d: %w", i, err)
		}
		x := (i % cols) * panelWidth
		y := (i / cols) * panelHeight
		draw.Draw(canvas, image.Rect(x, y, x+panelWidth, y+panelHeight), panel, image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode composite image: %w", err)
	}
	return buf.Bytes(), nil
}

// composePanelsSVG nests the panel documents inside translated groups.
func composePanelsSVG(panels [][]byte, cols int) ([]byte, error) {
	rows := (len(panels) + cols - 1) / cols

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, cols*panelWidth, rows*panelHeight)
	buf.WriteString(`<rect width="100%" height="100%" fill="white"/>`)
	for i, data := range panels {
		x := (i % cols) * panelWidth
		y := (i / cols) * panelHeight
		fmt.Fprintf(&buf, `<g transform="translate(%d,%d)">`, x, y)
		buf.Write(sizedPanelSVG(data))
		buf.WriteString(`</g>`)
	}
	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// sizedPanelSVG pins a panel root to the cell dimensions. go-chart
// emits <svg> roots with only a viewBox, and a nested <svg> without
// explicit width and height fills the outer viewport instead of its
// cell.
func sizedPanelSVG(data []byte) []byte {
	attrs := fmt.Sprintf(`<svg width="%d" height="%d" `, panelWidth, panelHeight)
	return bytes.Replace(data, []byte("<svg "), []byte(attrs), 1)
}
