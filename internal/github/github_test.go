package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio/internal/utils/ptr"
	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// fakeAPI serves a fixed repository listing and records the last request.
type fakeAPI struct {
	t       *testing.T
	mu      sync.Mutex
	repos   []map[string]any
	status  int
	headers map[string]string
	body    string
	last    *http.Request
}

func (f *fakeAPI) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeAPI) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = r.Clone(context.Background())
	for k, v := range f.headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	if f.body != "" {
		_, _ = w.Write([]byte(f.body))
		return
	}
	assert.NoError(f.t, json.NewEncoder(w).Encode(f.repos))
}

func newFake(t *testing.T, repos ...map[string]any) (*fakeAPI, *Client) {
	t.Helper()
	fake := &fakeAPI{t: t, repos: repos}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, NewClient(WithBaseURL(srv.URL))
}

func repo(name string, stars int, topics ...string) map[string]any {
	r := map[string]any{
		"name":             name,
		"description":      name + " description",
		"language":         "Go",
		"stargazers_count": stars,
		"fork":             false,
		"archived":         false,
		"html_url":         "https://github.com/nikeshgamal24/" + name,
		"homepage":         "",
		"updated_at":       "2025-05-01T10:00:00Z",
	}
	if len(topics) > 0 {
		r["topics"] = topics
	}
	return r
}

func TestListUserReposRequest(t *testing.T) {
	fake, client := newFake(t, repo("a", 1))

	repos, err := client.ListUserRepos(context.Background(), "nikeshgamal24")
	require.NoError(t, err)
	require.Len(t, repos, 1)

	require.NotNil(t, fake.lastRequest())
	assert.Equal(t, "/users/nikeshgamal24/repos", fake.lastRequest().URL.Path)
	assert.Equal(t, "100", fake.lastRequest().URL.Query().Get("per_page"))
	assert.Equal(t, "updated", fake.lastRequest().URL.Query().Get("sort"))
	assert.Equal(t, "desc", fake.lastRequest().URL.Query().Get("direction"))
	assert.Equal(t, constants.GitHubAcceptHeader, fake.lastRequest().Header.Get("Accept"))
	assert.Empty(t, fake.lastRequest().Header.Get("Authorization"))
	assert.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), repos[0].UpdatedAt.UTC())
}

func TestListUserReposToken(t *testing.T) {
	fake := &fakeAPI{t: t, repos: []map[string]any{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL+"/"), WithToken("ghp_secret"))
	_, err := client.ListUserRepos(context.Background(), "someone")
	require.NoError(t, err)

	assert.True(t, client.Authenticated())
	assert.Equal(t, "token ghp_secret", fake.lastRequest().Header.Get("Authorization"))
	assert.Equal(t, "/users/someone/repos", fake.lastRequest().URL.Path)

	client = NewClient(WithBaseURL(srv.URL), WithToken("github_pat_fine"))
	_, err = client.ListUserRepos(context.Background(), "someone")
	require.NoError(t, err)
	assert.Equal(t, "Bearer github_pat_fine", fake.lastRequest().Header.Get("Authorization"))
}

func TestListUserReposEmptyUsername(t *testing.T) {
	_, client := newFake(t)
	_, err := client.ListUserRepos(context.Background(), "")
	assert.True(t, errors.IsValidationError(err))
}

func TestGetUser(t *testing.T) {
	fake := &fakeAPI{t: t, body: `{"login":"nikeshgamal24","name":"Nikesh Gamal","public_repos":30,"followers":5,"html_url":"https://github.com/nikeshgamal24"}`}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	user, err := NewClient(WithBaseURL(srv.URL)).GetUser(context.Background(), "nikeshgamal24")
	require.NoError(t, err)
	assert.Equal(t, "Nikesh Gamal", user.Name)
	assert.Equal(t, 30, user.PublicRepos)
	assert.Equal(t, "/users/nikeshgamal24", fake.lastRequest().URL.Path)

	fake.respond(http.StatusNotFound, `{"message":"Not Found"}`)
	_, err = NewClient(WithBaseURL(srv.URL)).GetUser(context.Background(), "ghost")
	var nf *errors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Resource)
}

func TestRepoTopics(t *testing.T) {
	fake := &fakeAPI{t: t, body: `{"names":["react","portfolio"]}`}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	topics, err := NewClient(WithBaseURL(srv.URL)).RepoTopics(context.Background(), "nikeshgamal24", "Portfolio-Website")
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "portfolio"}, topics)
	assert.Equal(t, "/repos/nikeshgamal24/Portfolio-Website/topics", fake.lastRequest().URL.Path)
	assert.Equal(t, topicsAccept, fake.lastRequest().Header.Get("Accept"))

	fake.respond(0, `{}`)
	topics, err = NewClient(WithBaseURL(srv.URL)).RepoTopics(context.Background(), "o", "r")
	require.NoError(t, err)
	assert.Empty(t, topics)

	_, err = NewClient(WithBaseURL(srv.URL)).RepoTopics(context.Background(), "", "r")
	assert.True(t, errors.IsValidationError(err))
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"Portfolio-Website":   "Portfolio Website",
		"book-recommendation": "Book Recommendation",
		"LSTM-Project":        "LSTM Project",
		"MathQuest-Backend":   "MathQuest Backend",
		"single":              "Single",
		"Churn-Modelling-ANN": "Churn Modelling ANN",
	}
	for in, want := range tests {
		assert.Equal(t, want, Title(in), in)
	}
}

func TestToProject(t *testing.T) {
	r := Repository{
		Name:            "Bloodlink",
		Language:        ptr.String("PHP"),
		Topics:          []string{"php", "web-app"},
		StargazersCount: 4,
		HTMLURL:         "https://github.com/nikeshgamal24/Bloodlink",
		Homepage:        ptr.String("https://bloodlink.example"),
		UpdatedAt:       time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	p := ToProject(r)

	assert.Equal(t, "Bloodlink", p.Slug)
	assert.Equal(t, "Bloodlink", p.Title)
	assert.Equal(t, constants.NoDescription, p.Summary)
	assert.Equal(t, constants.NoDescription, p.Description)
	assert.Equal(t, []string{"PHP"}, p.Tech)
	assert.Equal(t, []string{"php", "web-app"}, p.Tags)
	assert.Equal(t, "https://github.com/nikeshgamal24/Bloodlink", ptr.Deref(p.Code))
	assert.Equal(t, "https://bloodlink.example", ptr.Deref(p.Live))
	assert.Nil(t, p.Image)
	assert.Equal(t, 4, p.StarCount())
	require.NotNil(t, p.Updated)
	assert.True(t, p.Updated.Time.Equal(r.UpdatedAt))

	t.Run("sparse repository", func(t *testing.T) {
		p := ToProject(Repository{Name: "bare", Homepage: ptr.To("")})
		assert.Empty(t, p.Tech)
		assert.NotNil(t, p.Tags)
		assert.Empty(t, p.Tags)
		assert.Nil(t, p.Live, "an empty homepage is not a live link")
		assert.Nil(t, p.Language)
		assert.Nil(t, p.Updated)
	})
}

func TestFilterKeep(t *testing.T) {
	filter := FilterConfig{
		MinStars:      3,
		AllowedTopics: []string{"react", "php"},
		IncludeRepos:  []string{"pinned"},
		ExcludeRepos:  []string{"hidden"},
	}

	tests := []struct {
		name string
		repo Repository
		keep bool
	}{
		{name: "passes everything", repo: Repository{Name: "x", StargazersCount: 5, Topics: []string{"react"}}, keep: true},
		{name: "below min stars", repo: Repository{Name: "x", StargazersCount: 1, Topics: []string{"react"}}},
		{name: "no matching topic", repo: Repository{Name: "x", StargazersCount: 5, Topics: []string{"rust"}}},
		{name: "absent topics skip the topic gate", repo: Repository{Name: "x", StargazersCount: 5}, keep: true},
		{name: "empty topics fail the topic gate", repo: Repository{Name: "x", StargazersCount: 5, Topics: []string{}}},
		{name: "include beats min stars and topics", repo: Repository{Name: "pinned", Topics: []string{"rust"}}, keep: true},
		{name: "exclude beats everything else", repo: Repository{Name: "hidden", StargazersCount: 99, Topics: []string{"react"}}},
		{name: "fork is always dropped", repo: Repository{Name: "pinned", Fork: true}},
		{name: "archived is always dropped", repo: Repository{Name: "pinned", Archived: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keep, filter.Keep(tt.repo))
		})
	}

	t.Run("no allowed topics disables the topic gate", func(t *testing.T) {
		f := FilterConfig{}
		assert.True(t, f.Keep(Repository{Name: "x", Topics: []string{"anything"}}))
	})
}

func TestDefaultFilterConfig(t *testing.T) {
	f := DefaultFilterConfig()
	assert.Contains(t, f.IncludeRepos, "Portfolio-Website")
	assert.Contains(t, f.ExcludeRepos, "old-portfolio")
	assert.Len(t, f.AllowedTopics, 8)
	assert.Zero(t, f.MinStars)
}

func TestSourceFetch(t *testing.T) {
	forked := repo("forked", 100)
	forked["fork"] = true
	archived := repo("archived", 100)
	archived["archived"] = true

	_, client := newFake(t,
		repo("low", 1, "react"),
		repo("high", 10, "php"),
		forked,
		archived,
		repo("mid", 5),
		repo("tie", 5),
		repo("off-topic", 50, "rust"),
	)

	src := NewSource(client, FilterConfig{AllowedTopics: []string{"react", "php"}})
	res := src.Fetch(context.Background(), "nikeshgamal24")

	require.True(t, res.Available)
	assert.NoError(t, res.Reason)
	assert.Equal(t, []string{"high", "mid", "tie", "low"}, projects.Slugs(res.Projects))
	for _, p := range res.Projects {
		assert.False(t, p.IsFork())
		assert.False(t, p.IsArchived())
	}
}

func TestSourceFetchEmptyTopics(t *testing.T) {
	untagged := repo("untagged", 5)
	untagged["topics"] = []string{}

	_, client := newFake(t, untagged, repo("tagged", 1, "react"), repo("unknown", 3))

	res := NewSource(client, FilterConfig{AllowedTopics: []string{"react"}}).Fetch(context.Background(), "x")

	require.True(t, res.Available)
	assert.Equal(t, []string{"unknown", "tagged"}, projects.Slugs(res.Projects),
		"an empty topic list is dropped, an absent one passes")
}

func TestSourceFetchFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		headers   map[string]string
		body      string
		rateLimit bool
	}{
		{name: "rate limited", status: http.StatusForbidden, headers: map[string]string{"X-RateLimit-Remaining": "0", "X-RateLimit-Reset": "1700000000"}, body: `{"message":"API rate limit exceeded"}`, rateLimit: true},
		{name: "secondary limit", status: http.StatusTooManyRequests, body: `{"message":"slow down"}`, rateLimit: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"oops"}`},
		{name: "malformed payload", status: http.StatusOK, body: `{"not":"a list"`},
		{name: "unknown user", status: http.StatusNotFound, body: `{"message":"Not Found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAPI{t: t, status: tt.status, headers: tt.headers, body: tt.body}
			srv := httptest.NewServer(fake)
			defer srv.Close()

			tl := logging.NewTestLogger(t)
			ctx := logging.WithLogger(context.Background(), tl.Logger)

			res := NewSource(NewClient(WithBaseURL(srv.URL)), DefaultFilterConfig()).Fetch(ctx, "nikeshgamal24")

			assert.False(t, res.Available)
			assert.Empty(t, res.Projects)
			require.Error(t, res.Reason)
			assert.Equal(t, tt.rateLimit, errors.IsRateLimited(res.Reason))
			if tt.rateLimit {
				tl.AssertContains(t, "rate limit exceeded")
				tl.AssertContains(t, "GITHUB_TOKEN")
			} else {
				tl.AssertContains(t, "Failed to fetch GitHub repositories")
			}
		})
	}
}

func TestSourceFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := NewSource(NewClient(WithBaseURL(url)), DefaultFilterConfig()).Fetch(context.Background(), "x")
	assert.False(t, res.Available)
	assert.True(t, errors.IsUnavailable(res.Reason))
}

func TestSourceFetchCanceled(t *testing.T) {
	_, client := newFake(t, repo("a", 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewSource(client, FilterConfig{}).Fetch(ctx, "x")
	assert.False(t, res.Available)
	assert.ErrorIs(t, res.Reason, context.Canceled)
}

func TestSourceFetchEmptyListing(t *testing.T) {
	_, client := newFake(t)
	res := NewSource(client, FilterConfig{}).Fetch(context.Background(), "x")
	assert.True(t, res.Available)
	assert.Empty(t, res.Projects)
	assert.False(t, res.Usable())
}
