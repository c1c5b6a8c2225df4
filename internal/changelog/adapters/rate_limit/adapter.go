// Package ratelimit queries the GitHub rate-limit endpoint.
package ratelimit

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"

	"changelog-scout/internal/changelog/domain"
)

// Adapter implements ports.RateLimitPort against the GitHub API.
type Adapter struct {
	client *github.Client
}

// New creates a new rate-limit adapter.
func New(client *github.Client) *Adapter {
	return &Adapter{client: client}
}

// CheckQuota returns a snapshot of the core rate limit. The API reports the
// reset field as UTC epoch seconds; go-github decodes it into a Timestamp.
func (a *Adapter) CheckQuota(ctx context.Context) (domain.Quota, error) {
	limits, resp, err := a.client.RateLimit.Get(ctx)
	if err != nil {
		if resp != nil && resp.StatusCode >= 300 {
			return domain.Quota{}, &domain.APIStatusError{
				StatusCode: resp.StatusCode,
				URL:        resp.Request.URL.String(),
			}
		}
		return domain.Quota{}, fmt.Errorf("checking rate limit: %w", err)
	}

	core := limits.GetCore()
	if core == nil {
		return domain.Quota{}, fmt.Errorf("rate limit response has no core category")
	}
	return domain.Quota{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		ResetAt:   core.Reset.Time,
	}, nil
}
