// Package app orchestrates the changelog retrieval pipeline: quota guard,
// listing walk, filter chain, detail fetch, merge and version filter.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"changelog-scout/internal/changelog/domain"
	"changelog-scout/internal/changelog/ports"
)

// Config is the retrieval configuration consumed, not owned, by the service.
type Config struct {
	// Accounts are the users or organizations whose repository is scanned.
	Accounts []string
	// Repo is the repository name, identical across accounts.
	Repo string
	// Policy decides which items become changelog entries.
	Policy domain.LabelPolicy
	// IncludeAuthor appends the author handle to the change text.
	IncludeAuthor bool
	// IncludeLink appends the canonical web URL to the change text.
	IncludeLink bool
}

// Service runs the retrieval pipeline. I/O is strictly sequential and
// blocking; a failure anywhere aborts the whole run with no partial result.
type Service struct {
	cfg       Config
	rateLimit ports.RateLimitPort
	listing   ports.IssueListingPort
	details   ports.PullRequestPort
	logger    *slog.Logger
}

// NewService validates the policy and wires the collaborator ports.
func NewService(
	cfg Config,
	rateLimit ports.RateLimitPort,
	listing ports.IssueListingPort,
	details ports.PullRequestPort,
	logger *slog.Logger,
) (*Service, error) {
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		rateLimit: rateLimit,
		listing:   listing,
		details:   details,
		logger:    logger,
	}, nil
}

// GetChangeLogPullRequests retrieves, filters and merges the changelog pull
// requests of every configured account, ordered by pull request number.
//
// The quota is checked once, globally, before any listing traffic. The check
// is a snapshot, not a reservation; the hosting service stays the authority.
func (s *Service) GetChangeLogPullRequests(ctx context.Context) ([]domain.PRIssue, error) {
	quota, err := s.rateLimit.CheckQuota(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking api quota: %w", err)
	}
	s.logger.Info("api quota",
		"remaining", quota.Remaining,
		"limit", quota.Limit,
		"resets_at", quota.ResetAt,
	)
	if quota.Exhausted() {
		return nil, &domain.QuotaError{Remaining: quota.Remaining, ResetAt: quota.ResetAt}
	}

	var all []domain.PRIssue
	for _, account := range s.cfg.Accounts {
		prs, err := s.collectAccount(ctx, account)
		if err != nil {
			return nil, err
		}
		s.logger.Info("fetched changelog issues", "account", account, "count", len(prs))
		all = append(all, prs...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].SortingNumber() < all[j].SortingNumber()
	})
	s.logger.Info("fetched changelog issues", "total", len(all))
	return all, nil
}

func (s *Service) collectAccount(ctx context.Context, account string) ([]domain.PRIssue, error) {
	items, err := s.listing.ListChangelogIssues(ctx, account)
	if err != nil {
		return nil, s.fatal(ctx, err, "listing issues", account)
	}

	filters := listingFilters()
	var prs []domain.PRIssue
	for _, item := range items {
		if !keepListingItem(item, s.cfg.Policy, filters) {
			continue
		}

		detail, err := s.details.GetPullRequest(ctx, account, item.Number)
		if err != nil {
			return nil, s.fatal(ctx, err, "fetching pull request", account)
		}

		pr := domain.NewPRIssue(item, detail, s.cfg.Policy, s.cfg.IncludeAuthor, s.cfg.IncludeLink)
		if !pr.IncludedInVersion(s.cfg.Policy.VersionPrefix) {
			continue
		}
		prs = append(prs, pr)
	}
	return prs, nil
}

// fatal wraps a listing or detail failure. When the failure is a non-success
// API status, the quota is re-queried for a diagnostic line so the cause is
// legible before the run aborts; that re-check is itself non-fatal.
func (s *Service) fatal(ctx context.Context, err error, op, account string) error {
	if domain.IsAPIStatus(err) {
		if quota, qerr := s.rateLimit.CheckQuota(ctx); qerr == nil {
			s.logger.Error("api call failed",
				"op", op,
				"account", account,
				"quota_remaining", quota.Remaining,
				"quota_resets_at", quota.ResetAt,
			)
		} else {
			s.logger.Error("api call failed, quota check also failed",
				"op", op,
				"account", account,
				"quota_error", qerr,
			)
		}
	}
	return fmt.Errorf("%s for account %s: %w", op, account, err)
}
