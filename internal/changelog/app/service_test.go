package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"changelog-scout/internal/changelog/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okQuota() domain.Quota {
	return domain.Quota{Limit: 5000, Remaining: 4999, ResetAt: time.Unix(1700000000, 0)}
}

func detailFor(number int) domain.PullRequestDetail {
	return domain.PullRequestDetail{
		Number:  number,
		Title:   "Change " + string(rune('0'+number)),
		HTMLURL: "https://github.com/acme/widget/pull/" + string(rune('0'+number)),
		Author:  "alice",
	}
}

func newTestService(t *testing.T, cfg Config, rl *mockRateLimit, listing *mockListing, details *mockDetails) *Service {
	t.Helper()
	svc, err := NewService(cfg, rl, listing, details, testLogger())
	require.NoError(t, err)
	return svc
}

func TestNewService_InvalidVersionPrefix(t *testing.T) {
	cfg := Config{
		Accounts: []string{"acme"},
		Repo:     "widget",
		Policy:   domain.LabelPolicy{VersionPrefix: "banana"},
	}
	_, err := NewService(cfg, new(mockRateLimit), new(mockListing), new(mockDetails), testLogger())
	require.Error(t, err)
	assert.True(t, domain.IsConfig(err))
}

func TestService_QuotaExhaustedAbortsBeforeAnyTraffic(t *testing.T) {
	rl := new(mockRateLimit)
	listing := new(mockListing)
	details := new(mockDetails)

	rl.On("CheckQuota", mock.Anything).
		Return(domain.Quota{Limit: 60, Remaining: 0, ResetAt: time.Unix(1700000000, 0)}, nil).Once()

	svc := newTestService(t, Config{Accounts: []string{"acme"}, Repo: "widget"}, rl, listing, details)
	_, err := svc.GetChangeLogPullRequests(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsQuotaExhausted(err))
	listing.AssertNotCalled(t, "ListChangelogIssues", mock.Anything, mock.Anything)
	details.AssertNotCalled(t, "GetPullRequest", mock.Anything, mock.Anything, mock.Anything)
	rl.AssertExpectations(t)
}

func TestService_ExcludedItemIsNeverDetailFetched(t *testing.T) {
	rl := new(mockRateLimit)
	listing := new(mockListing)
	details := new(mockDetails)

	rl.On("CheckQuota", mock.Anything).Return(okQuota(), nil).Once()
	listing.On("ListChangelogIssues", mock.Anything, "acme").Return([]domain.ListingItem{
		prItem(1, "wontfix"),
		prItem(2, "bug"),
	}, nil).Once()
	details.On("GetPullRequest", mock.Anything, "acme", 2).Return(detailFor(2), nil).Once()

	cfg := Config{
		Accounts: []string{"acme"},
		Repo:     "widget",
		Policy:   domain.LabelPolicy{Exclude: []string{"wontfix"}},
	}
	svc := newTestService(t, cfg, rl, listing, details)
	prs, err := svc.GetChangeLogPullRequests(context.Background())

	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 2, prs[0].Number)
	details.AssertNotCalled(t, "GetPullRequest", mock.Anything, "acme", 1)
	details.AssertExpectations(t)
}

func TestService_ItemFailingExclusionAndInclusionCostsNoDetailCall(t *testing.T) {
	rl := new(mockRateLimit)
	listing := new(mockListing)
	details := new(mockDetails)

	rl.On("CheckQuota", mock.Anything).Return(okQuota(), nil).Once()
	listing.On("ListChangelogIssues", mock.Anything, "acme").Return([]domain.ListingItem{
		prItem(1, "wontfix"),
	}, nil).Once()

	cfg := Config{
		Accounts: []string{"acme"},
		Repo:     "widget",
		Policy: domain.LabelPolicy{
			Exclude: []string{"wontfix"},
			Include: []string{"bug"},
		},
	}
	svc := newTestService(t, cfg, rl, listing, details)
	prs, err := svc.GetChangeLogPullRequests(context.Background())

	require.NoError(t, err)
	assert.Empty(t, prs)
	details.AssertNotCalled(t, "GetPullRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UnlabeledItemRetrieval(t *testing.T) {
	tests := []struct {
		name             string
		excludeUnlabeled bool
		include          []string
		wantRetrieved    bool
	}{
		{name: "kept when allowed and include empty", wantRetrieved: true},
		{name: "dropped when policy requires labels", excludeUnlabeled: true, wantRetrieved: false},
		{name: "dropped when include set non-empty", include: []string{"bug"}, wantRetrieved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := new(mockRateLimit)
			listing := new(mockListing)
			details := new(mockDetails)

			rl.On("CheckQuota", mock.Anything).Return(okQuota(), nil).Once()
			listing.On("ListChangelogIssues", mock.Anything, "acme").
				Return([]domain.ListingItem{prItem(4)}, nil).Once()
			if tt.wantRetrieved {
				details.On("GetPullRequest", mock.Anything, "acme", 4).Return(detailFor(4), nil).Once()
			}

			cfg := Config{
				Accounts: []string{"acme"},
				Repo:     "widget",
				Policy: domain.LabelPolicy{
					ExcludeUnlabeled: tt.excludeUnlabeled,
					Include:          tt.include,
				},
			}
			svc := newTestService(t, cfg, rl, listing, details)
			prs, err := svc.GetChangeLogPullRequests(context.Background())

			require.NoError(t, err)
			if tt.wantRetrieved {
				require.Len(t, prs, 1)
				assert.Equal(t, 4, prs[0].Number)
			} else {
				assert.Empty(t, prs)
				details.AssertNotCalled(t, "GetPullRequest", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_VersionFilterRunsAfterMerge(t *testing.T) {
	rl := new(mockRateLimit)
	listing := new(mockListing)
	details := new(mockDetails)

	rl.On("CheckQuota", mock.Anything).Return(okQuota(), nil).Once()
	listing.On("ListChangelogIssues", mock.Anything, "acme").Return([]domain.ListingItem{
		prItem(5, "3.5", "bug"),
		prItem(6, "3.4", "bug"),
	}, nil).Once()
	// Both items pass the cheap filters and are detail-fetched; the version
	// filter then drops #5.
	details.On("GetPullRequest", mock.Anything, "acme", 5).Return(detailFor(5), nil).Once()
	details.On("GetPullRequest", mock.Anything, "acme", 6).Return(detailFor(6), nil).Once()

	cfg := Config{
		Accounts: []string{"acme"},
		Repo:     "widget",
		Policy:   domain.LabelPolicy{VersionPrefix: "3.4.1"},
	}
	svc := newTestService(t, cfg, rl, listing, details)
	prs, err := svc.GetChangeLogPullRequests(context.Background())

	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 6, prs[0].Number)
	details.AssertExpectations(t)
}

func TestService_EndToEndScenario(t *testing.T) {
	rl := new(mockRateLimit)
	listing := new(mockListing)
	details := new(mockDetails)

	rl.On("CheckQuota", mock.Anything).Return(okQuota(), nil).Once()
	// Two listing pages worth of items, already drained by the walker:
	// #1 labeled wontfix, #2 unlabeled, #3 labeled bug.
	listing.On("ListChangelogIssues", mock.Anything, "acme").Return([]domain.ListingItem{
		prItem(1, "wontfix"),
		prItem(2),
		prItem(3, "bug"),
	}, nil).Once()
	details.On("GetPullRequest", mock.Anything, "acme", 2).Return(detailFor(2), nil).Once()
	details.On("GetPullRequest", mock.Anything, "acme", 3).Return(detailFor(3), nil).Once()

	cfg := Config{
		Accounts: []string{"acme"},
		Repo:     "widget",
		Policy:   domain.LabelPolicy{Exclude: []string{"wontfix"}},
	}
	svc := newTestService(t, cfg, rl, listing, details)
	prs, err := svc.GetChangeLogPullRequests(context.Background())

	require.NoError(t, err)
	require.Len(t, prs, 2)
	assert.Equal(t, 2, prs[0].Number)
	assert.Equal(t, 3, prs[1].Number)

	changes := make([]domain.Change, 0, len(prs))
	for _, pr := range prs {
		changes = append(changes, domain.ConvertToChange(pr, "3.4.1"))
	}
	assert.Equal(t, 2, changes[0].SortingNumber)
	assert.Equal(t, 3, changes[1].SortingNumber)
	assert.Equal(t, "3.4.1", changes[0].Version)

	details.AssertNotCalled(t, "GetPullRequest", mock.Anything, "acme", 1)
	details.AssertExpectations(t)
	rl.AssertExpectations(t)
}

func TestService_AggregatesAccountsOrderedByNumber(t *testing.T) {
	rl := new(mockRateLimit)
	listing := new(mockListing)
	details := new(mockDetails)

	rl.On("CheckQuota", mock.Anything).Return(okQuota(), nil).Once()
	listing.On("ListChangelogIssues", mock.Anything, "acme").
		Return([]domain.ListingItem{prItem(9)}, nil).Once()
	listing.On("ListChangelogIssues", mock.Anything, "umbrella").
		Return([]domain.ListingItem{prItem(3)}, nil).Once()
	details.On("GetPullRequest", mock.Anything, "acme", 9).Return(detailFor(9), nil).Once()
	details.On("GetPullRequest", mock.Anything, "umbrella", 3).Return(detailFor(3), nil).Once()

	cfg := Config{Accounts: []string{"acme", "umbrella"}, Repo: "widget"}
	svc := newTestService(t, cfg, rl, listing, details)
	prs, err := svc.GetChangeLogPullRequests(context.Background())

	require.NoError(t, err)
	require.Len(t, prs, 2)
	assert.Equal(t, 3, prs[0].Number)
	assert.Equal(t, 9, prs[1].Number)
}

func TestService_APIFailureEmitsQuotaDiagnosticAndAborts(t *testing.T) {
	rl := new(mockRateLimit)
	listing := new(mockListing)
	details := new(mockDetails)

	// Once for the guard, once more for the failure diagnostic.
	rl.On("CheckQuota", mock.Anything).Return(okQuota(), nil).Twice()
	listing.On("ListChangelogIssues", mock.Anything, "acme").
		Return(nil, &domain.APIStatusError{StatusCode: 502, URL: "https://api.github.com/repos/acme/widget/issues"}).Once()

	svc := newTestService(t, Config{Accounts: []string{"acme"}, Repo: "widget"}, rl, listing, details)
	_, err := svc.GetChangeLogPullRequests(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsAPIStatus(err))
	rl.AssertNumberOfCalls(t, "CheckQuota", 2)
	details.AssertNotCalled(t, "GetPullRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_DetailFailureAborts(t *testing.T) {
	rl := new(mockRateLimit)
	listing := new(mockListing)
	details := new(mockDetails)

	rl.On("CheckQuota", mock.Anything).Return(okQuota(), nil).Twice()
	listing.On("ListChangelogIssues", mock.Anything, "acme").
		Return([]domain.ListingItem{prItem(2, "bug")}, nil).Once()
	details.On("GetPullRequest", mock.Anything, "acme", 2).
		Return(domain.PullRequestDetail{}, &domain.APIStatusError{StatusCode: 500, URL: "https://api.github.com/repos/acme/widget/pulls/2"}).Once()

	svc := newTestService(t, Config{Accounts: []string{"acme"}, Repo: "widget"}, rl, listing, details)
	prs, err := svc.GetChangeLogPullRequests(context.Background())

	require.Error(t, err)
	assert.Nil(t, prs, "no partial result on failure")
}
