// Package stats computes aggregate statistics over fetched profile
// data. All functions are pure and perform no I/O.
package stats

import (
	"ghprofile/models"
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"
)

// FoldedBucket is the label small language shares are merged under.
const FoldedBucket = "Other"

const dayFormat = "2006-01-02"

// ParseTimestamp parses an RFC3339 timestamp, reporting whether it was
// valid. Malformed or missing timestamps never produce an error here;
// callers fall back to a safe default.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Compute derives a statistics snapshot from the repository set and the
// user profile. The recency window decides how fresh a repository's
// last update must be to count as recently active.
func Compute(repos []models.Repository, user *models.User, now time.Time, recentWindow time.Duration) *models.StatsSnapshot {
	snap := &models.StatsSnapshot{
		GeneratedAt:      now.UTC(),
		TotalRepos:       len(repos),
		LanguageCounts:   make(map[string]int),
		RecentWindowDays: int(recentWindow.Hours() / 24),
		LastActive:       "N/A",
	}

	if user != nil {
		snap.Username = user.Login
		snap.Name = user.Name
		snap.Followers = user.Followers
		snap.Following = user.Following
		if created, ok := ParseTimestamp(user.CreatedAt); ok {
			if age := int(now.Sub(created).Hours() / 24); age > 0 {
				snap.AccountAgeDays = age
			}
		}
	}

	stars := make([]float64, 0, len(repos))
	sizes := make([]float64, 0, len(repos))
	var lastActive time.Time

	for _, repo := range repos {
		if repo.Fork {
			snap.ForkedRepos++
		} else {
			snap.OriginalRepos++
		}
		if !repo.Private {
			snap.PublicRepos++
		}

		snap.TotalStars += repo.StargazersCount
		snap.TotalForks += repo.ForksCount
		snap.TotalSizeKB += int64(repo.Size)
		stars = append(stars, float64(repo.StargazersCount))
		sizes = append(sizes, float64(repo.Size))

		if repo.Language != "" {
			snap.LanguageCounts[repo.Language]++
		}

		if updated, ok := ParseTimestamp(repo.UpdatedAt); ok {
			if now.Sub(updated) <= recentWindow {
				snap.RecentlyActive++
			}
			if updated.After(lastActive) {
				lastActive = updated
			}
		}
	}

	if !lastActive.IsZero() {
		snap.LastActive = lastActive.Format(dayFormat)
	}
	if mean, err := mstats.Mean(stars); err == nil {
		snap.MeanStars = mean
	}
	if median, err := mstats.Median(sizes); err == nil {
		snap.MedianSizeKB = median
	}

	return snap
}

// LanguagePercentages converts accumulated byte counts into percentage
// shares, sorted descending. Ties keep the order languages were first
// seen in. A zero byte total yields an empty list.
func LanguagePercentages(bytes *models.LanguageBytes) []models.LanguageShare {
	if bytes == nil {
		return nil
	}
	total := bytes.Total()
	if total == 0 {
		return nil
	}

	shares := make([]models.LanguageShare, 0, bytes.Len())
	for _, name := range bytes.Names() {
		shares = append(shares, models.LanguageShare{
			Name:    name,
			Percent: 100 * float64(bytes.Bytes(name)) / float64(total),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percent > shares[j].Percent
	})
	return shares
}

// FoldSmall merges shares below thresholdPercent into a single bucket
// appended after the qualifying languages. The bucket is never sorted
// into position.
func FoldSmall(shares []models.LanguageShare, thresholdPercent float64) []models.LanguageShare {
	kept := make([]models.LanguageShare, 0, len(shares))
	var folded float64
	var any bool

	for _, s := range shares {
		if s.Percent < thresholdPercent {
			folded += s.Percent
			any = true
			continue
		}
		kept = append(kept, s)
	}
	if any {
		kept = append(kept, models.LanguageShare{Name: FoldedBucket, Percent: folded})
	}
	return kept
}
