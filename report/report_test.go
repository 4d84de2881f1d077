package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ghprofile/models"
)

var testGeneratedAt = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func testSnapshot() *models.StatsSnapshot {
	return &models.StatsSnapshot{
		Username:      "someone",
		Name:          "Some One",
		TotalRepos:    10,
		PublicRepos:   10,
		OriginalRepos: 8,
		ForkedRepos:   2,
		TotalStars:    42,
		TotalForks:    7,
		TotalSizeKB:   3072,
		Followers:     11,
		Following:     3,
		LanguageCounts: map[string]int{
			"Python":     4,
			"Go":         4,
			"JavaScript": 2,
		},
		RecentlyActive:   3,
		RecentWindowDays: 30,
		AccountAgeDays:   913,
		LastActive:       "2026-08-20",
	}
}

func TestBuild(t *testing.T) {
	content, err := Build(testSnapshot(), 5, testGeneratedAt)

	assert.NoError(t, err)
	assert.Contains(t, content, "# Hi there, I'm Some One")
	assert.Contains(t, content, "![GitHub Dashboard](github_dashboard.svg)")
	assert.Contains(t, content, "![Language Distribution](language_distribution.svg)")
	assert.Contains(t, content, "**10** public repositories (8 original, 2 forked)")
	assert.Contains(t, content, "**3** repositories active in the last 30 days")
	assert.Contains(t, content, "Top languages: Go, Python, JavaScript")
	assert.Contains(t, content, "Account age  : 913 days")
	assert.Contains(t, content, "Disk usage   : 3.0 MB")
	assert.Contains(t, content, "Last active  : 2026-08-20")
	assert.Contains(t, content, "*Generated: 2026-08-25 12:00:00 UTC*")
}

func TestBuildIsDeterministic(t *testing.T) {
	first, err := Build(testSnapshot(), 5, testGeneratedAt)
	assert.NoError(t, err)
	second, err := Build(testSnapshot(), 5, testGeneratedAt)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildLanguageSection(t *testing.T) {
	content, err := Build(testSnapshot(), 2, testGeneratedAt)
	assert.NoError(t, err)

	// Top languages ranked by repository count; the percentage is the
	// share of language-classified repos (4 of 10 here).
	assert.Contains(t, content, "Go           ████████░░░░░░░░░░░░ 40.0% (4 repos)")
	assert.Contains(t, content, "Python       ████████░░░░░░░░░░░░ 40.0% (4 repos)")
	assert.NotContains(t, content, "JavaScript   ")

	// Ranked by repo count even when another language has more bytes.
	goIdx := strings.Index(content, "Go           ")
	pyIdx := strings.Index(content, "Python       ")
	assert.Greater(t, pyIdx, goIdx)
}

func TestBuildFallsBackToLogin(t *testing.T) {
	snap := testSnapshot()
	snap.Name = ""

	content, err := Build(snap, 5, testGeneratedAt)

	assert.NoError(t, err)
	assert.Contains(t, content, "# Hi there, I'm someone")
}

func TestBuildNoLanguages(t *testing.T) {
	snap := testSnapshot()
	snap.LanguageCounts = nil

	content, err := Build(snap, 5, testGeneratedAt)

	assert.NoError(t, err)
	assert.Contains(t, content, "No language data available")
	assert.Contains(t, content, "Top languages: N/A")
}

func TestGlyphBar(t *testing.T) {
	testCases := []struct {
		percent  float64
		expected string
	}{
		{0, "░░░░░░░░░░░░░░░░░░░░"},
		{40, "████████░░░░░░░░░░░░"},
		{100, "████████████████████"},
		{150, "████████████████████"},
		{-5, "░░░░░░░░░░░░░░░░░░░░"},
		{7.5, "█░░░░░░░░░░░░░░░░░░░"},
	}

	for _, tc := range testCases {
		bar := GlyphBar(tc.percent)
		assert.Equal(t, tc.expected, bar, "percent %.1f", tc.percent)
		assert.Equal(t, barGlyphs, len([]rune(bar)))
	}
}
