// Package main retrieves changelog pull requests and prints the resulting
// change records. Rendering a full changelog document is left to downstream
// tooling; the output here is one line per change, ordered by number.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	ghclient "changelog-scout/internal/changelog/adapters/gh_client"
	issuelisting "changelog-scout/internal/changelog/adapters/issue_listing"
	prdetail "changelog-scout/internal/changelog/adapters/pr_detail"
	ratelimit "changelog-scout/internal/changelog/adapters/rate_limit"
	"changelog-scout/internal/changelog/app"
	"changelog-scout/internal/changelog/domain"
	"changelog-scout/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "changelog.json", "Path to the changelog configuration file")
		version    = flag.String("version", "", "Changelog version to stamp on changes (defaults to next_version from the config)")
		token      = flag.String("token", "", "GitHub personal access token (or use GITHUB_TOKEN env var)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if *token != "" {
		envCfg.Token = *token
	}

	client, err := ghclient.New(ghclient.Auth{
		Token:          envCfg.Token,
		AppID:          envCfg.AppID,
		InstallationID: envCfg.InstallationID,
		PrivateKeyPath: envCfg.PrivateKeyPath,
		BaseURL:        envCfg.APIBaseURL,
	})
	if err != nil {
		return err
	}

	policy := cfg.LabelPolicy()
	service, err := app.NewService(
		app.Config{
			Accounts:      cfg.Users,
			Repo:          cfg.Repo,
			Policy:        policy,
			IncludeAuthor: cfg.IncludeAuthor,
			IncludeLink:   cfg.IncludeLink,
		},
		ratelimit.New(client),
		issuelisting.New(client, cfg.Repo, policy.Required),
		prdetail.New(client, cfg.Repo),
		slog.Default(),
	)
	if err != nil {
		return err
	}

	prs, err := service.GetChangeLogPullRequests(context.Background())
	if err != nil {
		return err
	}

	changelogVersion := cfg.NextVersion
	if *version != "" {
		changelogVersion = *version
	}

	for _, pr := range prs {
		change := domain.ConvertToChange(pr, changelogVersion)
		fmt.Printf("- %s\n", change)
	}
	return nil
}
