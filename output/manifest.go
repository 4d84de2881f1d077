package output

import (
	"time"

	"github.com/pterm/pterm"
)

// Manifest lists the artifacts produced by one report run.
type Manifest struct {
	OutputDir    string
	ReportPath   string
	SnapshotPath string
	LogPath      string
	ChartPaths   []string
	APICalls     int
	Elapsed      time.Duration
}

// Files returns every artifact path in presentation order.
func (m *Manifest) Files() []string {
	files := []string{m.ReportPath, m.SnapshotPath}
	files = append(files, m.ChartPaths...)
	if m.LogPath != "" {
		files = append(files, m.LogPath)
	}
	return files
}

// PrintManifest prints the completion summary for a finished run.
func PrintManifest(m *Manifest) {
	pterm.Success.Println("Profile report generated")

	items := make([]pterm.BulletListItem, 0, len(m.ChartPaths)+3)
	for _, path := range m.Files() {
		items = append(items, pterm.BulletListItem{Level: 0, Text: path})
	}
	_ = pterm.DefaultBulletList.WithItems(items).Render()

	pterm.Info.Printfln("%d API calls, finished in %s", m.APICalls, m.Elapsed.Round(time.Millisecond))
}
