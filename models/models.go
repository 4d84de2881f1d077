// Package models defines the core data structures used throughout the application.
package models

import (
	"sort"
	"time"
)

// User represents a GitHub user profile
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
	CreatedAt   string `json:"created_at"`
}

// IsZero reports whether the profile carries no data
func (u *User) IsZero() bool {
	return u == nil || u.Login == ""
}

// DisplayName returns the profile name, falling back to the login
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Owner identifies the account a repository belongs to.
type Owner struct {
	Login string `json:"login"`
}

// Repository represents a GitHub repository as returned by the listing
// endpoint. Records are immutable once fetched; their lifetime is one
// report run.
type Repository struct {
	Name            string `json:"name"`
	Owner           Owner  `json:"owner"`
	Fork            bool   `json:"fork"`
	Private         bool   `json:"private"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	Size            int    `json:"size"` // kilobytes
	Language        string `json:"language"`
	UpdatedAt       string `json:"updated_at"`
}

// LanguageBytes accumulates byte counts per language while remembering
// the order in which languages were first seen. Plain map iteration
// would make percentage ties non-deterministic.
type LanguageBytes struct {
	order []string
	bytes map[string]int64
}

// NewLanguageBytes returns an empty accumulator
func NewLanguageBytes() *LanguageBytes {
	return &LanguageBytes{bytes: make(map[string]int64)}
}

// Add accumulates n bytes for the given language
func (lb *LanguageBytes) Add(language string, n int64) {
	if _, ok := lb.bytes[language]; !ok {
		lb.order = append(lb.order, language)
	}
	lb.bytes[language] += n
}

// Bytes returns the accumulated byte count for a language
func (lb *LanguageBytes) Bytes(language string) int64 {
	return lb.bytes[language]
}

// Total returns the byte count summed over all languages
func (lb *LanguageBytes) Total() int64 {
	var total int64
	for _, n := range lb.bytes {
		total += n
	}
	return total
}

// Names returns the languages in first-seen order
func (lb *LanguageBytes) Names() []string {
	return append([]string(nil), lb.order...)
}

// Len returns the number of distinct languages
func (lb *LanguageBytes) Len() int {
	return len(lb.order)
}

// LanguageShare is a language's share of the total byte count
type LanguageShare struct {
	Name    string
	Percent float64
}

// LanguageCount is a language paired with the number of repositories
// using it as their primary language
type LanguageCount struct {
	Name  string
	Count int
}

// StatsSnapshot holds every aggregate one report run derives from a
// profile. It is computed once and consumed by both the chart renderer
// and the report builder.
type StatsSnapshot struct {
	Username         string         `json:"username"`
	Name             string         `json:"name,omitempty"`
	RunID            string         `json:"run_id"`
	GeneratedAt      time.Time      `json:"generated_at"`
	TotalRepos       int            `json:"total_repos"`
	PublicRepos      int            `json:"public_repos"`
	OriginalRepos    int            `json:"original_repos"`
	ForkedRepos      int            `json:"forked_repos"`
	TotalStars       int            `json:"total_stars"`
	TotalForks       int            `json:"total_forks"`
	TotalSizeKB      int64          `json:"total_size_kb"`
	Followers        int            `json:"followers"`
	Following        int            `json:"following"`
	LanguageCounts   map[string]int `json:"language_counts"`
	RecentlyActive   int            `json:"recently_active"`
	RecentWindowDays int            `json:"recent_window_days"`
	AccountAgeDays   int            `json:"account_age_days"`
	LastActive       string         `json:"last_active"`
	MeanStars        float64        `json:"mean_stars"`
	MedianSizeKB     float64        `json:"median_size_kb"`
}

// DisplayName returns the profile name, falling back to the username
func (s *StatsSnapshot) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}

// TopLanguages returns up to n languages ordered by repository count.
// Ties are broken alphabetically so the result is deterministic.
func (s *StatsSnapshot) TopLanguages(n int) []LanguageCount {
	out := make([]LanguageCount, 0, len(s.LanguageCounts))
	for name, count := range s.LanguageCounts {
		out = append(out, LanguageCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
