package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"changelog-scout/internal/changelog/domain"
)

type mockRateLimit struct {
	mock.Mock
}

func (m *mockRateLimit) CheckQuota(ctx context.Context) (domain.Quota, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Quota), args.Error(1)
}

type mockListing struct {
	mock.Mock
}

func (m *mockListing) ListChangelogIssues(ctx context.Context, owner string) ([]domain.ListingItem, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListingItem), args.Error(1)
}

type mockDetails struct {
	mock.Mock
}

func (m *mockDetails) GetPullRequest(ctx context.Context, owner string, number int) (domain.PullRequestDetail, error) {
	args := m.Called(ctx, owner, number)
	return args.Get(0).(domain.PullRequestDetail), args.Error(1)
}
