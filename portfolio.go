// Package portfolio is the entry point of the portfolio project reconciler.
// It lists the owner's public GitHub repositories, merges them with a bundled
// fallback list and lets callers filter the result, with optional caching,
// automatic refresh and change hooks.
//
// Example usage:
//
//	pf, err := portfolio.New(
//	    portfolio.WithUsername("nikeshgamal24"),
//	    portfolio.WithToken(os.Getenv("GITHUB_TOKEN")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pf.Close()
//
//	pf.OnRemoteUnavailable(func(err error) {
//	    log.Printf("showing fallback projects: %v", err)
//	})
//
//	listing, err := pf.Search(ctx, projects.Query{Term: "react"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(listing.Label)
package portfolio

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nikeshgamal24/portfolio/internal/cache"
	"github.com/nikeshgamal24/portfolio/internal/embedded"
	"github.com/nikeshgamal24/portfolio/internal/github"
	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/reconciler"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
	"github.com/nikeshgamal24/portfolio/pkg/theme"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client manages the reconciled project list of one GitHub user.
type Client interface {
	// Projects provides read access to the reconciled list
	Projects

	// Refresher forces a new reconcile
	Refresher

	// Themes reads and writes the viewer's theme preference
	Themes

	// Profile exposes read-only GitHub account data
	Profile

	// AutoRefresher controls periodic background refreshes
	AutoRefresher

	// Hooks registers change callbacks
	Hooks

	// Username returns the GitHub account being listed.
	Username() string

	// Close stops background work and releases cache connections.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	reconciler reconciler.Reconciler
	remote     *cache.Remote // nil when local only
	github     *github.Client
	themes     *theme.Store

	mu        sync.RWMutex
	current   *reconciler.Result
	fetchedAt time.Time

	refreshMu     sync.Mutex
	refreshTicker *time.Ticker
	stopCh        chan struct{}
	refreshCancel context.CancelFunc
	refreshDone   chan struct{}
	// ticking is set while the refresh goroutine runs a tick, hooks included.
	ticking atomic.Bool

	hooks   *hooks
	closers []func() error
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.username == "" {
		return nil, &errors.ValidationError{Field: "username", Message: "cannot be empty"}
	}

	c := &client{
		options: o,
		themes:  theme.NewStore(o.themeFile),
		hooks:   newHooks(),
		stopCh:  make(chan struct{}),
	}

	c.github = github.NewClient(
		github.WithBaseURL(o.baseURL),
		github.WithToken(o.token),
		github.WithHTTPClient(o.httpClient),
		github.WithTimeout(o.httpTimeout),
	)

	local, err := c.localSource()
	if err != nil {
		return nil, err
	}

	var remote sources.Remote
	if !o.localOnly {
		store, err := c.cacheStore()
		if err != nil {
			return nil, err
		}
		next := o.remote
		if next == nil {
			next = github.NewSource(c.github, o.filters)
		}
		c.remote = cache.Wrap(next, store, o.cacheTTL)
		remote = c.remote
	}

	c.reconciler, err = reconciler.New(remote, local,
		reconciler.WithLocalOnly(o.localOnly),
		reconciler.WithWarning(o.warning),
	)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", "", err)
	}

	if o.autoRefresh {
		if err := c.AutoRefreshOn(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *client) localSource() (sources.Local, error) {
	switch {
	case c.options.local != nil:
		return c.options.local, nil
	case c.options.localFile != "":
		local := sources.NewFile(c.options.localFile)
		ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
		defer cancel()
		if _, err := local.Load(ctx); err != nil {
			return nil, err
		}
		return local, nil
	default:
		return embedded.Local(), nil
	}
}

func (c *client) cacheStore() (cache.Store, error) {
	if c.options.cacheStore != nil {
		return c.options.cacheStore, nil
	}
	if c.options.redisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), c.options.httpTimeout)
		defer cancel()
		store, err := cache.NewRedisFromURL(ctx, c.options.redisURL, c.options.cacheTTL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, store.Close)
		return store, nil
	}
	return cache.NewMemory(c.options.cacheTTL, 2*c.options.cacheTTL), nil
}

// Username implements Client.
func (c *client) Username() string {
	return c.options.username
}

// Close implements Client.
func (c *client) Close() error {
	if err := c.AutoRefreshOff(); err != nil {
		return err
	}
	var errs []error
	for _, closer := range c.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
