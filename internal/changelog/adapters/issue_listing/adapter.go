// Package issuelisting drains the paged GitHub issue listing for a repository.
package issuelisting

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"

	"changelog-scout/internal/changelog/domain"
)

const perPage = 100

// Adapter implements ports.IssueListingPort by walking the repository issue
// listing, filtered by the required changelog label.
type Adapter struct {
	client        *github.Client
	repo          string
	requiredLabel string
}

// New creates a new issue listing adapter. requiredLabel may be empty, in
// which case the listing is not label-filtered.
func New(client *github.Client, repo, requiredLabel string) *Adapter {
	return &Adapter{client: client, repo: repo, requiredLabel: requiredLabel}
}

// ListChangelogIssues fetches every page of the issue listing for one account,
// starting at page 1 and following the Link header's next relation until the
// last page. The listing is finite by construction: the API stops emitting a
// next relation on the final page.
func (a *Adapter) ListChangelogIssues(ctx context.Context, owner string) ([]domain.ListingItem, error) {
	opts := &github.IssueListByRepoOptions{
		State: "all",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}
	if a.requiredLabel != "" {
		opts.Labels = []string{a.requiredLabel}
	}

	var items []domain.ListingItem
	for {
		issues, resp, err := a.client.Issues.ListByRepo(ctx, owner, a.repo, opts)
		if err != nil {
			if resp != nil && resp.StatusCode >= 300 {
				return nil, &domain.APIStatusError{
					StatusCode: resp.StatusCode,
					URL:        resp.Request.URL.String(),
				}
			}
			return nil, fmt.Errorf("listing issues for %s/%s page %d: %w", owner, a.repo, opts.Page, err)
		}

		for _, issue := range issues {
			items = append(items, toListingItem(issue))
		}

		page, ok := nextPage(resp.Header.Get("Link"))
		if !ok {
			break
		}
		opts.Page = page
	}

	return items, nil
}

func toListingItem(issue *github.Issue) domain.ListingItem {
	item := domain.ListingItem{Number: issue.GetNumber()}
	for _, label := range issue.Labels {
		item.Labels = append(item.Labels, label.GetName())
	}
	if links := issue.PullRequestLinks; links != nil {
		item.PullRequest = &domain.PullRequestRef{URL: links.GetURL()}
	}
	return item
}
