package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Flag combination errors surfaced by the CLI.
var (
	ErrOwnerNamePair  = errors.New("--repo-owner and --repo-name must be specified together")
	ErrRemoteConflict = errors.New("--remote cannot be used together with --repo-owner/--repo-name")
)

// Config holds all configuration for one run. The repository fields come
// from CLI flags; the token and tunables come from the environment.
type Config struct {
	Folder     string
	RepoOwner  string
	RepoName   string
	Remote     string
	OutputPath string

	GitHubToken    string
	CachePath      string
	RequestTimeout time.Duration
}

// NewConfig creates a new Config instance
func NewConfig() *Config {
	return &Config{}
}

// Load fills in the environment-sourced fields. The token is optional: its
// absence degrades the PR, review and contributor sections to empty rather
// than failing the run.
func (c *Config) Load() {
	viper.AutomaticEnv()

	c.GitHubToken = viper.GetString("GITHUB_TOKEN")

	c.CachePath = viper.GetString("REVIEW_CACHE_PATH")
	if c.CachePath == "" {
		c.CachePath = ".pr_reviews_cache.json"
	}

	if c.OutputPath == "" {
		c.OutputPath = viper.GetString("STATS_OUTPUT")
	}
	if c.OutputPath == "" {
		c.OutputPath = "docs/stats.json"
	}

	timeoutSeconds := viper.GetInt("GITHUB_TIMEOUT_SECONDS")
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	c.RequestTimeout = time.Duration(timeoutSeconds) * time.Second
}

// Validate checks the flag combination rules: owner and name travel as a
// pair, and an explicit pair makes remote auto-detection meaningless.
func (c *Config) Validate() error {
	if (c.RepoOwner == "") != (c.RepoName == "") {
		return ErrOwnerNamePair
	}
	if c.Remote != "" && c.RepoOwner != "" {
		return ErrRemoteConflict
	}
	return nil
}
