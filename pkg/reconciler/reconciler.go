// Package reconciler produces the list of projects to show: it loads the
// bundled fallback, asks the remote source for the owner's repositories and
// merges the two so remote entries win per slug.
//
// A remote failure never fails a reconcile. The result then carries the
// local list and a warning meant for display.
package reconciler

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

// Reconciler combines a remote and a local project source.
type Reconciler interface {
	// Reconcile fetches username's remote listing and merges it with the
	// local list. It only fails when the local list cannot be loaded.
	Reconcile(ctx context.Context, username string) (*Result, error)

	// Local returns the local list on its own.
	Local(ctx context.Context) ([]projects.Project, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	remote  sources.Remote
	local   sources.Local
	options *options
	flight  singleflight.Group
}

// New creates a Reconciler over remote and local.
func New(remote sources.Remote, local sources.Local, opts ...Option) (Reconciler, error) {
	if local == nil {
		return nil, &errors.ValidationError{Field: "local", Message: "cannot be nil"}
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if remote == nil && !options.localOnly {
		return nil, &errors.ValidationError{Field: "remote", Message: "cannot be nil unless local only"}
	}
	return &reconciler{remote: remote, local: local, options: options}, nil
}

// Local implements Reconciler.
func (r *reconciler) Local(ctx context.Context) ([]projects.Project, error) {
	list, err := r.local.Load(ctx)
	if err != nil {
		return nil, errors.WrapResource("load", "projects", r.local.ID().String(), err)
	}
	return list, nil
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(ctx context.Context, username string) (*Result, error) {
	start := time.Now()
	ctx = logging.WithOperation(logging.WithUsername(ctx, username), "reconcile")
	logger := logging.FromContext(ctx)

	local, err := r.Local(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Username:   username,
		LocalCount: len(local),
		Source:     SourceLocal,
		StartTime:  start,
	}

	if r.options.localOnly {
		result.Projects = local
		result.finish()
		logger.Debug().Int("projects", len(local)).Msg("Reconciled local list only")
		return result, nil
	}

	remote := r.fetch(ctx, username)
	result.RemoteAvailable = remote.Available
	result.RemoteCount = len(remote.Projects)
	result.Reason = remote.Reason
	result.Projects = projects.Merge(local, remote.Projects)

	switch {
	case !remote.Available:
		result.Warning = r.options.warning
	case remote.Usable():
		result.Source = SourceMerged
	}
	result.finish()

	logger.Info().
		Bool("remote_available", result.RemoteAvailable).
		Int("remote", result.RemoteCount).
		Int("local", result.LocalCount).
		Int("projects", len(result.Projects)).
		Str("source", string(result.Source)).
		Dur("duration", result.Duration).
		Msg("Reconciled projects")
	return result, nil
}

// fetch shares one in-flight remote fetch between concurrent callers for
// the same username. A caller whose context ends stops waiting and sees an
// unavailable result; the shared fetch keeps running for the others.
func (r *reconciler) fetch(ctx context.Context, username string) sources.Result {
	ctx = logging.WithSource(ctx, r.remote.ID().String())
	ch := r.flight.DoChan(username, func() (any, error) {
		return r.remote.Fetch(context.WithoutCancel(ctx), username), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			logging.FromContext(ctx).Debug().Msg("Joined in-flight remote fetch")
		}
		return res.Val.(sources.Result)
	case <-ctx.Done():
		return sources.Unavailable(ctx.Err())
	}
}
