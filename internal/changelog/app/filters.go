package app

import "changelog-scout/internal/changelog/domain"

// listingFilter is one predicate of the pre-fetch filter chain. keep returns
// true when the item should proceed to the next stage.
type listingFilter struct {
	name string
	keep func(domain.ListingItem, domain.LabelPolicy) bool
}

// listingFilters returns the filter chain applied to every listing item
// before a detail fetch, cheapest and most discriminating first. The order
// decides which items incur a detail-fetch call and is part of the contract.
func listingFilters() []listingFilter {
	return []listingFilter{
		{
			// Only pull requests become changelog entries.
			name: "pull-request",
			keep: func(item domain.ListingItem, _ domain.LabelPolicy) bool {
				return item.IsPullRequest()
			},
		},
		{
			name: "excluded-label",
			keep: func(item domain.ListingItem, policy domain.LabelPolicy) bool {
				return !item.HasAnyLabel(policy.Exclude)
			},
		},
		{
			name: "unlabeled",
			keep: func(item domain.ListingItem, policy domain.LabelPolicy) bool {
				return !(policy.ExcludeUnlabeled && len(item.Labels) == 0)
			},
		},
		{
			name: "included-label",
			keep: func(item domain.ListingItem, policy domain.LabelPolicy) bool {
				return len(policy.Include) == 0 || item.HasAnyLabel(policy.Include)
			},
		},
	}
}

// keepListingItem runs the chain in order and short-circuits on the first
// rejecting filter, so later predicates never see a discarded item.
func keepListingItem(item domain.ListingItem, policy domain.LabelPolicy, filters []listingFilter) bool {
	for _, f := range filters {
		if !f.keep(item, policy) {
			return false
		}
	}
	return true
}
