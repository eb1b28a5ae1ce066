package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Config struct {
	GithubToken          string        `mapstructure:"github_token"`
	GithubOwner          string        `mapstructure:"github_owner"`
	GithubRepo           string        `mapstructure:"github_repo"`
	GithubBaseURL        string        `mapstructure:"github_base_url"`
	MaxConcurrentFetches int           `mapstructure:"max_concurrent_fetches"`
	RetryCount           uint64        `mapstructure:"retry_count"`
	RetryDelay           time.Duration `mapstructure:"retry_delay"`
	RateLimitMaxWait     time.Duration `mapstructure:"rate_limit_max_wait"`
	LogLevel             string        `mapstructure:"log_level"`
	LogFormat            string        `mapstructure:"log_format"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		MaxConcurrentFetches: 0,
		RetryCount:           3,
		RetryDelay:           1 * time.Second,
		RateLimitMaxWait:     1 * time.Minute,
		LogLevel:             "info",
		LogFormat:            LogFormatConsole,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// GitHub token is optional - only validate if provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
	}
	if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
		return fmt.Errorf("invalid github configuration: %w", err)
	}
	if c.GithubBaseURL != "" {
		u, err := url.Parse(c.GithubBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid github_base_url: %s", c.GithubBaseURL)
		}
	}
	if c.MaxConcurrentFetches < 0 {
		return fmt.Errorf("max_concurrent_fetches cannot be negative")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay cannot be negative")
	}
	if c.RateLimitMaxWait < 0 {
		return fmt.Errorf("rate_limit_max_wait cannot be negative")
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("log_format must be %q or %q", LogFormatConsole, LogFormatJSON)
	}
	return nil
}

// ValidateForGitHubOperations validates that GitHub token is present for operations that require it
func (c *Config) ValidateForGitHubOperations() error {
	if c.GithubToken == "" {
		return fmt.Errorf("github_token is required for GitHub operations")
	}
	return c.Validate()
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	// Validate token format patterns
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	personalPAT := regexp.MustCompile(`^ghp_[a-zA-Z0-9]{36}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!personalPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validOwner := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validOwner.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	// Repository names may start or end with any of the allowed characters (.github, _site).
	validRepo := regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	if !validRepo.MatchString(repo) || repo == "." || repo == ".." {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// FileName is the config file looked up in the working directory.
const FileName = ".prscope.yaml"

// LoadConfig reads FileName from fs and the environment.
func LoadConfig(fs afero.Fs) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("yaml")
	// Configure environment variables
	v.SetEnvPrefix("PRSCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// BindEnv allows multiple env vars - it will check them in order
	bindings := map[string][]string{
		"github_token":           {"GITHUB_TOKEN", "PRSCOPE_GITHUB_TOKEN"},
		"github_owner":           {"GITHUB_OWNER", "PRSCOPE_GITHUB_OWNER"},
		"github_repo":            {"GITHUB_REPO", "PRSCOPE_GITHUB_REPO"},
		"github_base_url":        {"GITHUB_API_URL", "PRSCOPE_GITHUB_BASE_URL"},
		"max_concurrent_fetches": {"PRSCOPE_MAX_CONCURRENT_FETCHES"},
		"retry_count":            {"PRSCOPE_RETRY_COUNT"},
		"retry_delay":            {"PRSCOPE_RETRY_DELAY"},
		"rate_limit_max_wait":    {"PRSCOPE_RATE_LIMIT_MAX_WAIT"},
		"log_level":              {"PRSCOPE_LOG_LEVEL"},
		"log_format":             {"PRSCOPE_LOG_FORMAT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("max_concurrent_fetches", defaults.MaxConcurrentFetches)
	v.SetDefault("retry_count", defaults.RetryCount)
	v.SetDefault("retry_delay", defaults.RetryDelay)
	v.SetDefault("rate_limit_max_wait", defaults.RateLimitMaxWait)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	exists, err := afero.Exists(fs, FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if exists {
		v.SetConfigFile(FileName)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefaults fills owner and repo from the Actions environment,
// falling back to the origin remote of the repository in the working directory.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	owner, repo := envRepository()
	if owner == "" || repo == "" {
		remoteOwner, remoteRepo, err := originRepository()
		if err != nil {
			// No remote to fall back on; Validate reports what is missing.
			return nil
		}
		if owner == "" {
			owner = remoteOwner
		}
		if repo == "" {
			repo = remoteRepo
		}
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = owner
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = repo
	}
	return nil
}

func envRepository() (string, string) {
	owner := strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY_OWNER"))
	repo := strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY_NAME"))
	// GITHUB_REPOSITORY has the form owner/repo
	if slug := strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY")); slug != "" {
		if slugOwner, slugRepo, ok := strings.Cut(slug, "/"); ok {
			if owner == "" {
				owner = slugOwner
			}
			if repo == "" {
				repo = slugRepo
			}
		}
	}
	return owner, repo
}

func originRepository() (string, string, error) {
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("failed to open git repository: %w", err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("failed to get origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL")
	}
	return parseGitRemoteURL(urls[0])
}

// parseGitRemoteURL extracts owner and repository from https, ssh and file remotes.
func parseGitRemoteURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	var path string
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid remote URL %q: %w", raw, err)
		}
		path = u.Path
	case strings.Contains(raw, "@") && strings.Contains(raw, ":"):
		// scp-like syntax: git@github.com:owner/repo.git
		_, path, _ = strings.Cut(raw, ":")
	default:
		path = filepath.ToSlash(raw)
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot determine owner and repository from %q", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
