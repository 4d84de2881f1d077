package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ghprofile/logger"
	"ghprofile/models"

	"github.com/stretchr/testify/assert"
)

func init() {
	// Initialize logger for tests
	_ = logger.Initialize("debug")
}

// testClient points a client at the given test server.
func testClient(t *testing.T, server *httptest.Server, opts Options) *Client {
	t.Helper()
	client := NewClient(opts)
	baseURL, err := url.Parse(server.URL)
	assert.NoError(t, err)
	client.baseURL = baseURL
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient(Options{Token: "test-token", Username: "someone"})

	assert.NotNil(t, client)
	assert.Equal(t, "test-token", client.token)
	assert.Equal(t, "GitHubStatsGenerator-someone", client.userAgent)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.Equal(t, 100, client.pageSize)
	assert.Equal(t, 0, client.APICalls())
}

func TestNewClientClampsOptions(t *testing.T) {
	client := NewClient(Options{Timeout: -time.Second, PageSize: 500})

	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.Equal(t, 100, client.pageSize)
	assert.Equal(t, "GitHubStatsGenerator", client.userAgent)
}

func TestFetchUser(t *testing.T) {
	testCases := []struct {
		name           string
		token          string
		mockBody       string
		mockStatusCode int
		expectedError  error
		expectedUser   *models.User
	}{
		{
			name:           "successful fetch",
			token:          "test-token",
			mockBody:       `{"login":"someone","name":"Some One","followers":12,"following":3,"public_repos":42,"created_at":"2015-01-02T10:00:00Z"}`,
			mockStatusCode: http.StatusOK,
			expectedUser: &models.User{
				Login:       "someone",
				Name:        "Some One",
				Followers:   12,
				Following:   3,
				PublicRepos: 42,
				CreatedAt:   "2015-01-02T10:00:00Z",
			},
		},
		{
			name:           "unauthenticated fetch",
			token:          "",
			mockBody:       `{"login":"someone"}`,
			mockStatusCode: http.StatusOK,
			expectedUser:   &models.User{Login: "someone"},
		},
		{
			name:           "user not found",
			token:          "test-token",
			mockBody:       `{"message":"Not Found"}`,
			mockStatusCode: http.StatusNotFound,
			expectedError:  ErrUserFetch,
		},
		{
			name:           "malformed response",
			token:          "test-token",
			mockBody:       `{"login":`,
			mockStatusCode: http.StatusOK,
			expectedError:  ErrUserFetch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Verify request headers
				if tc.token != "" {
					assert.Equal(t, "token "+tc.token, r.Header.Get("Authorization"))
				} else {
					assert.Empty(t, r.Header.Get("Authorization"))
				}
				assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
				assert.Equal(t, "GitHubStatsGenerator-someone", r.Header.Get("User-Agent"))

				assert.Equal(t, "/users/someone", r.URL.Path)

				w.WriteHeader(tc.mockStatusCode)
				fmt.Fprint(w, tc.mockBody)
			}))
			defer server.Close()

			client := testClient(t, server, Options{Token: tc.token, Username: "someone"})

			user, err := client.FetchUser(context.Background(), "someone")

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedUser, user)
			}
			assert.Equal(t, 1, client.APICalls())
		})
	}
}

func TestFetchRepositories(t *testing.T) {
	pages := map[string]string{
		"1": `[{"name":"alpha","owner":{"login":"someone"},"stargazers_count":5,"language":"Go"},{"name":"beta","fork":true}]`,
		"2": `[{"name":"gamma","size":128}]`,
	}

	var requestedPages []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/someone/repos", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))

		page := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, page)
		fmt.Fprint(w, pages[page])
	}))
	defer server.Close()

	client := testClient(t, server, Options{PageSize: 2, Username: "someone"})

	repos, err := client.FetchRepositories(context.Background(), "someone")

	assert.NoError(t, err)
	assert.Len(t, repos, 3)
	assert.Equal(t, []string{"1", "2"}, requestedPages)
	assert.Equal(t, "alpha", repos[0].Name)
	assert.Equal(t, "someone", repos[0].Owner.Login)
	assert.Equal(t, 5, repos[0].StargazersCount)
	assert.True(t, repos[1].Fork)
	assert.Equal(t, 128, repos[2].Size)
	assert.Equal(t, 2, client.APICalls())
}

func TestFetchRepositoriesStopsOnEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := testClient(t, server, Options{PageSize: 2})

	repos, err := client.FetchRepositories(context.Background(), "someone")

	assert.NoError(t, err)
	assert.Empty(t, repos)
	assert.Equal(t, 1, client.APICalls())
}

func TestFetchRepositoriesReturnsPartialOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `[{"name":"alpha"},{"name":"beta"}]`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(t, server, Options{PageSize: 2})

	repos, err := client.FetchRepositories(context.Background(), "someone")

	assert.ErrorIs(t, err, ErrRepositoryFetch)
	assert.Len(t, repos, 2)
}

func TestFetchLanguageBytes(t *testing.T) {
	responses := map[string]string{
		"/repos/someone/alpha/languages": `{"Go": 1500, "Makefile": 100}`,
		"/repos/someone/gamma/languages": `{"Go": 500, "Shell": 200}`,
	}

	var requestedPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPaths = append(requestedPaths, r.URL.Path)
		body, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	client := testClient(t, server, Options{Username: "someone"})

	repos := []models.Repository{
		{Name: "alpha", Owner: models.Owner{Login: "someone"}},
		{Name: "beta", Fork: true},
		// No owner on the record, the username is used.
		{Name: "gamma"},
	}

	bytes, err := client.FetchLanguageBytes(context.Background(), "someone", repos)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Go", "Makefile", "Shell"}, bytes.Names())
	assert.Equal(t, int64(2000), bytes.Bytes("Go"))
	assert.Equal(t, int64(100), bytes.Bytes("Makefile"))
	assert.Equal(t, int64(200), bytes.Bytes("Shell"))

	// The fork is never requested.
	for _, path := range requestedPaths {
		assert.NotContains(t, path, "beta")
	}
	assert.Equal(t, 2, client.APICalls())
}

func TestFetchLanguageBytesSkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"Python": 400}`)
	}))
	defer server.Close()

	client := testClient(t, server, Options{Username: "someone"})

	repos := []models.Repository{
		{Name: "broken"},
		{Name: "healthy"},
	}

	bytes, err := client.FetchLanguageBytes(context.Background(), "someone", repos)

	// The failure is reported but does not abort the batch.
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, int64(400), bytes.Bytes("Python"))
	assert.Equal(t, 1, bytes.Len())
}

func TestDecodeOrderedLanguages(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		expectedOrder []string
		expectedError bool
	}{
		{
			name:          "document order preserved",
			body:          `{"Go": 100, "ASM": 100, "C": 50}`,
			expectedOrder: []string{"Go", "ASM", "C"},
		},
		{
			name:          "empty document",
			body:          `{}`,
			expectedOrder: nil,
		},
		{
			name:          "not an object",
			body:          `[1,2]`,
			expectedError: true,
		},
		{
			name:          "non-numeric count",
			body:          `{"Go": "many"}`,
			expectedError: true,
		},
		{
			name:          "truncated document",
			body:          `{"Go": 100`,
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := decodeOrderedLanguages(strings.NewReader(tc.body))

			if tc.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			var order []string
			for _, e := range entries {
				order = append(order, e.name)
			}
			assert.Equal(t, tc.expectedOrder, order)
		})
	}
}
