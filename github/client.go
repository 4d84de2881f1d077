package github

import (
	"context"
	"encoding/json"
	"fmt"
	"ghprofile/logger"
	"ghprofile/models"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Fetch errors
var (
	ErrUserFetch       = fmt.Errorf("user fetch failed")
	ErrRepositoryFetch = fmt.Errorf("repository fetch failed")
	ErrLanguageFetch   = fmt.Errorf("language fetch failed")
)

const (
	defaultTimeout  = 30 * time.Second
	maxPageSize     = 100
	userAgentPrefix = "GitHubStatsGenerator"

	// Cadence of progress log lines during the language batch.
	languageProgressEvery = 20
)

// Options configures a Client.
type Options struct {
	// Token enables authenticated requests when non-empty.
	Token string
	// Username is embedded in the User-Agent header.
	Username string
	Timeout  time.Duration
	PageSize int
	// Pause is slept between unauthenticated language calls as a
	// courtesy to the API.
	Pause time.Duration
}

// Client represents a GitHub API client
type Client struct {
	token      string
	userAgent  string
	httpClient *http.Client
	baseURL    *url.URL
	pageSize   int
	pause      time.Duration
	apiCalls   int
}

// languageEntry is one language's byte count within a single
// repository, in document order.
type languageEntry struct {
	name  string
	bytes int64
}

func NewClient(opts Options) *Client {
	baseURL, _ := url.Parse("https://api.github.com")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := opts.PageSize
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	userAgent := userAgentPrefix
	if opts.Username != "" {
		userAgent = fmt.Sprintf("%s-%s", userAgentPrefix, opts.Username)
	}

	logger.Info("Initializing GitHub client",
		zap.String("base_url", baseURL.String()),
		zap.Bool("authenticated", opts.Token != ""),
		zap.Int("page_size", pageSize))

	return &Client{
		token:      opts.Token,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		pageSize:   pageSize,
		pause:      opts.Pause,
	}
}

// APICalls returns the number of HTTP requests issued so far.
func (c *Client) APICalls() int {
	return c.apiCalls
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	if query != nil {
		reqURL.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", c.token))
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.apiCalls++
	return c.httpClient.Do(req)
}

// FetchUser retrieves a user's public profile.
func (c *Client) FetchUser(ctx context.Context, username string) (*models.User, error) {
	req, err := c.newRequest(ctx, fmt.Sprintf("/users/%s", username), nil)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetching user profile",
		zap.String("username", username),
		zap.String("url", req.URL.String()))

	resp, err := c.do(req)
	if err != nil {
		logger.Error("Failed to fetch user profile",
			zap.Error(err),
			zap.String("username", username))
		return nil, fmt.Errorf("%w: %v", ErrUserFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Failed to fetch user profile",
			zap.Int("status_code", resp.StatusCode),
			zap.String("username", username))
		return nil, fmt.Errorf("%w: status code %d", ErrUserFetch, resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		logger.Error("Failed to decode user response",
			zap.Error(err),
			zap.String("username", username))
		return nil, fmt.Errorf("%w: %v", ErrUserFetch, err)
	}

	logger.Info("Successfully fetched user profile",
		zap.String("username", user.Login),
		zap.Int("public_repos", user.PublicRepos),
		zap.Int("followers", user.Followers))

	return &user, nil
}

// FetchRepositories pages through a user's repository listing, most
// recently updated first. A mid-pagination failure aborts the loop and
// returns whatever was accumulated so far together with the error, so
// the caller decides whether partial data is usable.
func (c *Client) FetchRepositories(ctx context.Context, username string) ([]models.Repository, error) {
	var all []models.Repository
	page := 1

	for {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(c.pageSize))
		q.Set("sort", "updated")

		req, err := c.newRequest(ctx, fmt.Sprintf("/users/%s/repos", username), q)
		if err != nil {
			return all, err
		}

		logger.Info("Fetching repositories page",
			zap.String("username", username),
			zap.Int("page", page))

		resp, err := c.do(req)
		if err != nil {
			logger.Error("Repository pagination aborted",
				zap.Error(err),
				zap.String("username", username),
				zap.Int("page", page),
				zap.Int("accumulated", len(all)))
			return all, fmt.Errorf("%w: %v", ErrRepositoryFetch, err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			logger.Error("Repository pagination aborted",
				zap.Int("status_code", resp.StatusCode),
				zap.String("username", username),
				zap.Int("page", page),
				zap.Int("accumulated", len(all)))
			return all, fmt.Errorf("%w: status code %d", ErrRepositoryFetch, resp.StatusCode)
		}

		var pageRepos []models.Repository
		if err := json.NewDecoder(resp.Body).Decode(&pageRepos); err != nil {
			resp.Body.Close()
			logger.Error("Failed to decode repositories response",
				zap.Error(err),
				zap.String("username", username),
				zap.Int("page", page))
			return all, fmt.Errorf("%w: %v", ErrRepositoryFetch, err)
		}
		resp.Body.Close()

		if len(pageRepos) == 0 {
			break
		}
		all = append(all, pageRepos...)

		// A short page is the last page.
		if len(pageRepos) < c.pageSize {
			break
		}
		page++
	}

	logger.Info("Successfully fetched repositories",
		zap.String("username", username),
		zap.Int("total_count", len(all)))

	return all, nil
}

// FetchLanguageBytes retrieves the per-language byte breakdown of every
// non-fork repository and accumulates the counts. Individual failures
// are skipped with a warning; they are also collected and returned as a
// single combined error alongside the partial accumulator.
func (c *Client) FetchLanguageBytes(ctx context.Context, username string, repos []models.Repository) (*models.LanguageBytes, error) {
	acc := models.NewLanguageBytes()
	var errs *multierror.Error

	sources := 0
	for _, repo := range repos {
		if !repo.Fork {
			sources++
		}
	}
	logger.Info("Fetching language bytes",
		zap.String("username", username),
		zap.Int("repositories", sources))

	processed := 0
	skipped := 0
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		if processed > 0 && c.token == "" && c.pause > 0 {
			time.Sleep(c.pause)
		}

		owner := repo.Owner.Login
		if owner == "" {
			owner = username
		}
		entries, err := c.fetchRepoLanguages(ctx, owner, repo.Name)
		processed++
		if err != nil {
			skipped++
			logger.Warn("Skipping repository languages",
				zap.String("repo", repo.Name),
				zap.Error(err))
			errs = multierror.Append(errs, fmt.Errorf("%s: %v", repo.Name, err))
			continue
		}

		for _, e := range entries {
			acc.Add(e.name, e.bytes)
		}

		if processed%languageProgressEvery == 0 {
			logger.Info("Language fetch progress",
				zap.Int("processed", processed),
				zap.Int("total", sources))
		}
	}

	logger.Info("Finished fetching language bytes",
		zap.Int("languages", acc.Len()),
		zap.Int("repositories", processed),
		zap.Int("skipped", skipped))

	return acc, errs.ErrorOrNil()
}

func (c *Client) fetchRepoLanguages(ctx context.Context, owner, repo string) ([]languageEntry, error) {
	req, err := c.newRequest(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, repo), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLanguageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrLanguageFetch, resp.StatusCode)
	}

	entries, err := decodeOrderedLanguages(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLanguageFetch, err)
	}
	return entries, nil
}

// decodeOrderedLanguages decodes a {"language": bytes, ...} document
// preserving key order. Decoding into a map would lose the order and
// make percentage tie-breaking non-deterministic.
func decodeOrderedLanguages(r io.Reader) ([]languageEntry, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode languages response: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("unexpected languages response token %v", tok)
	}

	var entries []languageEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode languages response: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected languages key token %v", tok)
		}

		var count int64
		if err := dec.Decode(&count); err != nil {
			return nil, fmt.Errorf("failed to decode byte count for %q: %w", name, err)
		}
		entries = append(entries, languageEntry{name: name, bytes: count})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode languages response: %w", err)
	}
	return entries, nil
}
