// Package prdetail fetches single pull request records from the GitHub API.
package prdetail

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"

	"changelog-scout/internal/changelog/domain"
)

// Adapter implements ports.PullRequestPort against the GitHub API.
type Adapter struct {
	client *github.Client
	repo   string
}

// New creates a new pull request detail adapter.
func New(client *github.Client, repo string) *Adapter {
	return &Adapter{client: client, repo: repo}
}

// GetPullRequest fetches the full record for one pull request. One call is
// made per listing item that survived the cheap filters; a non-success status
// is fatal for the run.
func (a *Adapter) GetPullRequest(ctx context.Context, owner string, number int) (domain.PullRequestDetail, error) {
	pr, resp, err := a.client.PullRequests.Get(ctx, owner, a.repo, number)
	if err != nil {
		if resp != nil && resp.StatusCode >= 300 {
			return domain.PullRequestDetail{}, &domain.APIStatusError{
				StatusCode: resp.StatusCode,
				URL:        resp.Request.URL.String(),
			}
		}
		return domain.PullRequestDetail{}, fmt.Errorf("fetching pull request %s/%s#%d: %w", owner, a.repo, number, err)
	}

	detail := domain.PullRequestDetail{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		HTMLURL:        pr.GetHTMLURL(),
		Author:         pr.GetUser().GetLogin(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
		Base: domain.BaseBranch{
			Ref: pr.GetBase().GetRef(),
			SHA: pr.GetBase().GetSHA(),
		},
	}
	if mergedAt := pr.MergedAt; mergedAt != nil {
		t := mergedAt.Time
		detail.MergedAt = &t
	}
	return detail, nil
}
