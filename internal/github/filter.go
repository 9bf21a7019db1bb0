package github

import (
	"slices"
)

// FilterConfig decides which repositories are shown.
//
// A repository is kept when it is on IncludeRepos, or when it is not on
// ExcludeRepos, has at least MinStars stars and, if AllowedTopics is set and
// the payload carried a topics field, shares one of them. An empty topics
// list fails that check; a missing one skips it. Forks and archived
// repositories are always dropped.
type FilterConfig struct {
	MinStars      int      `json:"min_stars" yaml:"min_stars" mapstructure:"min_stars"`
	AllowedTopics []string `json:"allowed_topics" yaml:"allowed_topics" mapstructure:"allowed_topics"`
	IncludeRepos  []string `json:"include_repos" yaml:"include_repos" mapstructure:"include_repos"`
	ExcludeRepos  []string `json:"exclude_repos" yaml:"exclude_repos" mapstructure:"exclude_repos"`
}

// DefaultFilterConfig returns the filters the portfolio ships with.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinStars: 0,
		AllowedTopics: []string{
			"portfolio", "showcase", "demo", "web-app",
			"react", "node", "javascript", "php",
		},
		IncludeRepos: []string{
			"Portfolio-Website",
			"Project-Phoenix",
			"Book-Recommendation-System",
			"Car-Price-Prediction-Project",
			"Medical-Insurance-Prediction-Project",
			"Bloodlink",
			"Charity-Auction-Site",
			"MathQuest-Backend",
			"Customer-Claim-Value-Forecasting-Project",
			"Advance-House-Prediction-Project-EDA-Section",
			"Churn-Modelling-ANN",
			"LSTM-Project",
		},
		ExcludeRepos: []string{"old-portfolio", "test-repo"},
	}
}

// Keep reports whether repo passes the filter.
func (f FilterConfig) Keep(repo Repository) bool {
	if repo.Fork || repo.Archived {
		return false
	}
	if slices.Contains(f.IncludeRepos, repo.Name) {
		return true
	}
	if slices.Contains(f.ExcludeRepos, repo.Name) {
		return false
	}
	if repo.StargazersCount < f.MinStars {
		return false
	}
	if len(f.AllowedTopics) > 0 && repo.Topics != nil {
		for _, topic := range repo.Topics {
			if slices.Contains(f.AllowedTopics, topic) {
				return true
			}
		}
		return false
	}
	return true
}

// Apply returns the repositories that pass the filter, in input order.
func (f FilterConfig) Apply(repos []Repository) []Repository {
	kept := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if f.Keep(repo) {
			kept = append(kept, repo)
		}
	}
	return kept
}
