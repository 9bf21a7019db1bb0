package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/nikeshgamal24/portfolio/internal/github"
	"github.com/nikeshgamal24/portfolio/internal/server"
	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// GitHub
	Username string
	Token    string
	BaseURL  string
	Filters  github.FilterConfig

	// Projects
	LocalFile string

	// Cache
	CacheTTL time.Duration
	RedisURL string

	// Theme
	ThemeFile string

	// Server
	Server server.Config

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.portfolio.yaml or ./.portfolio.yaml)
// 5. Defaults
func LoadConfig(v *viper.Viper) (*Config, error) {
	loadEnvFiles()

	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.NewConfigError("env", "bind "+env, err)
		}
	}

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".portfolio")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("file", "read config", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Username: v.GetString("github.username"),
		Token:    v.GetString("github.token"),
		BaseURL:  v.GetString("github.base_url"),

		Filters: github.FilterConfig{
			MinStars:      v.GetInt("projects.filters.min_stars"),
			AllowedTopics: v.GetStringSlice("projects.filters.allowed_topics"),
			IncludeRepos:  v.GetStringSlice("projects.filters.include_repos"),
			ExcludeRepos:  v.GetStringSlice("projects.filters.exclude_repos"),
		},

		LocalFile: v.GetString("projects.local_file"),

		CacheTTL: v.GetDuration("cache.ttl"),
		RedisURL: v.GetString("cache.redis_url"),

		ThemeFile: v.GetString("theme.file"),

		Server: server.Config{
			Host:           v.GetString("server.host"),
			Port:           v.GetInt("server.port"),
			PathPrefix:     v.GetString("server.path_prefix"),
			CORSOrigins:    v.GetStringSlice("server.cors_origins"),
			SearchDebounce: v.GetDuration("search.debounce"),
		},

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.Filters.MinStars < 0 {
		return nil, errors.NewConfigError("projects.filters", "min_stars must not be negative", nil)
	}
	if config.CacheTTL < 0 {
		return nil, errors.NewConfigError("cache", "ttl must not be negative", nil)
	}

	defaults := server.DefaultConfig()
	config.Server.ReadTimeout = defaults.ReadTimeout
	config.Server.WriteTimeout = defaults.WriteTimeout
	config.Server.IdleTimeout = defaults.IdleTimeout

	return config, nil
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"github.username": "GITHUB_USERNAME",
	"github.token":    "GITHUB_TOKEN",
	"github.base_url": "GITHUB_BASE_URL",
	"cache.redis_url": "REDIS_URL",
}

func setDefaults(v *viper.Viper) {
	filters := github.DefaultFilterConfig()
	srv := server.DefaultConfig()

	v.SetDefault("github.username", constants.DefaultUsername)
	v.SetDefault("github.base_url", constants.GitHubAPIURL)
	v.SetDefault("projects.filters.min_stars", filters.MinStars)
	v.SetDefault("projects.filters.allowed_topics", filters.AllowedTopics)
	v.SetDefault("projects.filters.include_repos", filters.IncludeRepos)
	v.SetDefault("projects.filters.exclude_repos", filters.ExcludeRepos)
	v.SetDefault("search.debounce", constants.DefaultDebounceDelay)
	v.SetDefault("cache.ttl", constants.DefaultCacheTTL)
	v.SetDefault("server.host", srv.Host)
	v.SetDefault("server.port", srv.Port)
	v.SetDefault("server.path_prefix", srv.PathPrefix)
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
