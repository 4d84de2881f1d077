// Package report builds the markdown profile README from a statistics
// snapshot.
package report

import (
	"bytes"
	"fmt"
	"ghprofile/models"
	"ghprofile/output"
	"strings"
	"text/template"
	"time"
)

// Width of the glyph bars in the language section.
const barGlyphs = 20

const timestampFormat = "2006-01-02 15:04:05"

const reportTemplate = `# Hi there, I'm {{.DisplayName}} 👋

![GitHub Dashboard]({{.DashboardImage}})

## 🚀 Quick Glance

- 📦 **{{.TotalRepos}}** public repositories ({{.OriginalRepos}} original, {{.ForkedRepos}} forked)
- ⭐ **{{.TotalStars}}** stars and 🍴 **{{.TotalForks}}** forks earned
- 🔨 **{{.RecentlyActive}}** repositories active in the last {{.RecentWindowDays}} days
- 🧰 Top languages: {{.TopLanguageList}}

## 📊 Language Distribution

![Language Distribution]({{.LanguageImage}})

## 💻 Most Used Languages

{{.LanguageBlock}}

## 📈 Profile Stats

{{.StatsBlock}}

---
*Generated: {{.GeneratedAt}} UTC*
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

type reportView struct {
	DisplayName      string
	DashboardImage   string
	LanguageImage    string
	TotalRepos       int
	OriginalRepos    int
	ForkedRepos      int
	TotalStars       int
	TotalForks       int
	RecentlyActive   int
	RecentWindowDays int
	TopLanguageList  string
	LanguageBlock    string
	StatsBlock       string
	GeneratedAt      string
}

// Build renders the README content. It is a pure function of the
// snapshot, the language list length, and the supplied timestamp.
func Build(snap *models.StatsSnapshot, topLanguages int, generatedAt time.Time) (string, error) {
	if topLanguages < 1 {
		topLanguages = 5
	}

	view := reportView{
		DisplayName:      snap.DisplayName(),
		DashboardImage:   output.DashboardBase + ".svg",
		LanguageImage:    output.LanguageChartBase + ".svg",
		TotalRepos:       snap.TotalRepos,
		OriginalRepos:    snap.OriginalRepos,
		ForkedRepos:      snap.ForkedRepos,
		TotalStars:       snap.TotalStars,
		TotalForks:       snap.TotalForks,
		RecentlyActive:   snap.RecentlyActive,
		RecentWindowDays: snap.RecentWindowDays,
		TopLanguageList:  topLanguageList(snap),
		LanguageBlock:    languageBlock(snap, topLanguages),
		StatsBlock:       statsBlock(snap),
		GeneratedAt:      generatedAt.UTC().Format(timestampFormat),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}

// GlyphBar renders a fixed-width bar with the filled portion
// proportional to the percentage.
func GlyphBar(percent float64) string {
	filled := int(percent / 100 * barGlyphs)
	if filled < 0 {
		filled = 0
	}
	if filled > barGlyphs {
		filled = barGlyphs
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barGlyphs-filled)
}

func topLanguageList(snap *models.StatsSnapshot) string {
	top := snap.TopLanguages(3)
	if len(top) == 0 {
		return "N/A"
	}
	names := make([]string, 0, len(top))
	for _, l := range top {
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}

// languageBlock lists the top languages by repository count, not byte
// count, with bars sized by their share of language-classified repos.
func languageBlock(snap *models.StatsSnapshot, topLanguages int) string {
	total := 0
	for _, count := range snap.LanguageCounts {
		total += count
	}
	if total == 0 {
		return fencedBlock([]string{"No language data available"})
	}

	lines := make([]string, 0, topLanguages)
	for _, l := range snap.TopLanguages(topLanguages) {
		percent := 100 * float64(l.Count) / float64(total)
		lines = append(lines, fmt.Sprintf("%-12s %s %.1f%% (%d repos)", l.Name, GlyphBar(percent), percent, l.Count))
	}
	return fencedBlock(lines)
}

func statsBlock(snap *models.StatsSnapshot) string {
	return fencedBlock([]string{
		fmt.Sprintf("Repositories : %d (%d original, %d forked)", snap.TotalRepos, snap.OriginalRepos, snap.ForkedRepos),
		fmt.Sprintf("Stars        : %d", snap.TotalStars),
		fmt.Sprintf("Forks        : %d", snap.TotalForks),
		fmt.Sprintf("Followers    : %d", snap.Followers),
		fmt.Sprintf("Following    : %d", snap.Following),
		fmt.Sprintf("Disk usage   : %.1f MB", float64(snap.TotalSizeKB)/1024),
		fmt.Sprintf("Account age  : %d days", snap.AccountAgeDays),
		fmt.Sprintf("Last active  : %s", snap.LastActive),
	})
}

func fencedBlock(lines []string) string {
	return "```text\n" + strings.Join(lines, "\n") + "\n```"
}
