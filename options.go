package portfolio

import (
	"net/http"
	"time"

	"github.com/nikeshgamal24/portfolio/internal/cache"
	"github.com/nikeshgamal24/portfolio/internal/github"
	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

// options holds the configuration of a Client.
type options struct {
	username    string
	token       string
	baseURL     string
	filters     github.FilterConfig
	httpClient  *http.Client
	httpTimeout time.Duration

	localFile string
	local     sources.Local
	remote    sources.Remote
	localOnly bool
	warning   string

	cacheTTL   time.Duration
	cacheStore cache.Store
	redisURL   string

	themeFile string

	autoRefresh         bool
	autoRefreshInterval time.Duration
}

func defaults() *options {
	return &options{
		username:            constants.DefaultUsername,
		baseURL:             constants.GitHubAPIURL,
		filters:             github.DefaultFilterConfig(),
		httpTimeout:         constants.DefaultHTTPTimeout,
		warning:             constants.RemoteUnavailableWarning,
		cacheTTL:            constants.DefaultCacheTTL,
		autoRefreshInterval: constants.DefaultRefreshInterval,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Option is a function that configures a Client.
type Option func(*options) error

// WithUsername sets the GitHub account whose repositories are listed.
func WithUsername(username string) Option {
	return func(o *options) error {
		if username == "" {
			return &errors.ValidationError{Field: "username", Message: "cannot be empty"}
		}
		o.username = username
		return nil
	}
}

// WithToken attaches a GitHub token to raise the API rate limit.
func WithToken(token string) Option {
	return func(o *options) error {
		o.token = token
		return nil
	}
}

// WithBaseURL points the client at another GitHub API root.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		if url != "" {
			o.baseURL = url
		}
		return nil
	}
}

// WithFilters replaces the repository filter.
func WithFilters(filters github.FilterConfig) Option {
	return func(o *options) error {
		if filters.MinStars < 0 {
			return &errors.ValidationError{Field: "min_stars", Value: filters.MinStars, Message: "cannot be negative"}
		}
		o.filters = filters
		return nil
	}
}

// WithHTTPClient replaces the HTTP client used for GitHub.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithHTTPTimeout sets the timeout of each GitHub request.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return &errors.ValidationError{Field: "http_timeout", Value: d, Message: "must be positive"}
		}
		o.httpTimeout = d
		return nil
	}
}

// WithLocalFile reads the fallback list from path instead of the bundled one.
func WithLocalFile(path string) Option {
	return func(o *options) error {
		o.localFile = path
		return nil
	}
}

// WithLocalSource replaces the fallback source.
func WithLocalSource(local sources.Local) Option {
	return func(o *options) error {
		o.local = local
		return nil
	}
}

// WithRemoteSource replaces the GitHub source. The cache still applies.
func WithRemoteSource(remote sources.Remote) Option {
	return func(o *options) error {
		o.remote = remote
		return nil
	}
}

// WithLocalOnly disables the remote source.
func WithLocalOnly(enabled bool) Option {
	return func(o *options) error {
		o.localOnly = enabled
		return nil
	}
}

// WithWarning replaces the advisory shown when GitHub is unavailable.
func WithWarning(msg string) Option {
	return func(o *options) error {
		if msg != "" {
			o.warning = msg
		}
		return nil
	}
}

// WithCacheTTL sets how long a fetched listing is reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) error {
		if ttl <= 0 {
			return &errors.ValidationError{Field: "cache_ttl", Value: ttl, Message: "must be positive"}
		}
		o.cacheTTL = ttl
		return nil
	}
}

// WithCacheStore replaces the in-memory listing cache.
func WithCacheStore(store cache.Store) Option {
	return func(o *options) error {
		o.cacheStore = store
		return nil
	}
}

// WithRedisURL caches listings in Redis instead of memory.
func WithRedisURL(url string) Option {
	return func(o *options) error {
		o.redisURL = url
		return nil
	}
}

// WithThemeFile sets where the theme preference is stored.
func WithThemeFile(path string) Option {
	return func(o *options) error {
		o.themeFile = path
		return nil
	}
}

// WithAutoRefresh enables periodic background refreshes.
func WithAutoRefresh(enabled bool) Option {
	return func(o *options) error {
		o.autoRefresh = enabled
		return nil
	}
}

// WithAutoRefreshInterval sets the period of background refreshes.
func WithAutoRefreshInterval(interval time.Duration) Option {
	return func(o *options) error {
		o.autoRefreshInterval = interval
		return nil
	}
}
