package github

import "time"

// Repository is the subset of GitHub's repository payload the portfolio uses.
type Repository struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	Language        *string   `json:"language"`
	Topics          []string  `json:"topics"`
	StargazersCount int       `json:"stargazers_count"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
	Homepage        *string   `json:"homepage"`
	HTMLURL         string    `json:"html_url"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// User is a GitHub account profile.
type User struct {
	Login       string    `json:"login" yaml:"login"`
	Name        string    `json:"name" yaml:"name"`
	Bio         string    `json:"bio" yaml:"bio"`
	AvatarURL   string    `json:"avatar_url" yaml:"avatar_url"`
	HTMLURL     string    `json:"html_url" yaml:"html_url"`
	PublicRepos int       `json:"public_repos" yaml:"public_repos"`
	Followers   int       `json:"followers" yaml:"followers"`
	Following   int       `json:"following" yaml:"following"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// topicsResponse is the payload of GET /repos/{owner}/{repo}/topics.
type topicsResponse struct {
	Names []string `json:"names"`
}
