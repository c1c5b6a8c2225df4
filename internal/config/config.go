// Package config loads the changelog configuration file and the environment
// credentials.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"changelog-scout/internal/changelog/domain"
)

// Env holds the credentials read from the environment. A .env file in the
// working directory is loaded first, best effort.
type Env struct {
	Token          string `env:"GITHUB_TOKEN"`
	APIBaseURL     string `env:"GITHUB_API_URL"`
	AppID          int64  `env:"GITHUB_APP_ID"`
	InstallationID int64  `env:"GITHUB_APP_INSTALLATION_ID"`
	PrivateKeyPath string `env:"GITHUB_APP_PRIVATE_KEY_PATH"`
}

// LoadEnv reads credentials from the environment.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// File is the JSON configuration describing what to retrieve.
type File struct {
	Users         []string `json:"users"`
	Repo          string   `json:"repo"`
	NextVersion   string   `json:"next_version"`
	IncludeAuthor bool     `json:"include_author"`
	IncludeLink   bool     `json:"include_link"`
	Labels        Labels   `json:"labels"`
}

// Labels configures the label policy of the retrieval pipeline.
type Labels struct {
	Required         string            `json:"required"`
	Exclude          []string          `json:"exclude"`
	Include          []string          `json:"include"`
	ExcludeUnlabeled bool              `json:"exclude_unlabeled"`
	VersionPrefix    string            `json:"version_prefix"`
	CategoryMap      map[string]string `json:"category_map"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}

	var cfg File
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Users) == 0 {
		return File{}, &domain.ConfigError{Setting: "users", Reason: "must list at least one account"}
	}
	if cfg.Repo == "" {
		return File{}, &domain.ConfigError{Setting: "repo", Reason: "must not be empty"}
	}
	if err := cfg.LabelPolicy().Validate(); err != nil {
		return File{}, err
	}

	return cfg, nil
}

// LabelPolicy converts the labels block into the domain policy.
func (f File) LabelPolicy() domain.LabelPolicy {
	return domain.LabelPolicy{
		Required:         f.Labels.Required,
		Exclude:          f.Labels.Exclude,
		Include:          f.Labels.Include,
		ExcludeUnlabeled: f.Labels.ExcludeUnlabeled,
		CategoryMap:      f.Labels.CategoryMap,
		VersionPrefix:    f.Labels.VersionPrefix,
	}
}
