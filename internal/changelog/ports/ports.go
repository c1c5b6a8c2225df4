// Package ports defines the collaborator interfaces the changelog retrieval
// core consumes. Adapters under internal/changelog/adapters implement them.
package ports

import (
	"context"

	"changelog-scout/internal/changelog/domain"
)

// RateLimitPort reports the current API quota snapshot.
type RateLimitPort interface {
	CheckQuota(ctx context.Context) (domain.Quota, error)
}

// IssueListingPort drains every page of the issue listing for one account.
type IssueListingPort interface {
	ListChangelogIssues(ctx context.Context, owner string) ([]domain.ListingItem, error)
}

// PullRequestPort fetches the full detail record for a single pull request.
type PullRequestPort interface {
	GetPullRequest(ctx context.Context, owner string, number int) (domain.PullRequestDetail, error)
}
