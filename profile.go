package portfolio

import (
	"context"

	"github.com/nikeshgamal24/portfolio/internal/github"
)

// Compile-time interface check to ensure proper implementation.
var _ Profile = (*client)(nil)

// Profile exposes read-only GitHub account data. Unlike the project
// listing, these calls return errors instead of falling back.
type Profile interface {
	// User returns the configured account's profile.
	User(ctx context.Context) (*github.User, error)

	// Topics returns the topics of one of the account's repositories.
	Topics(ctx context.Context, repo string) ([]string, error)
}

// User implements Profile.
func (c *client) User(ctx context.Context) (*github.User, error) {
	return c.github.GetUser(ctx, c.options.username)
}

// Topics implements Profile.
func (c *client) Topics(ctx context.Context, repo string) ([]string, error) {
	return c.github.RepoTopics(ctx, c.options.username, repo)
}
