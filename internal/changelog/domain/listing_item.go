package domain

// ListingItem is one row of the paged issue listing, before detail enrichment.
// The issues endpoint returns both plain issues and pull requests; a row
// carries a PullRequestRef only when it represents a pull request.
type ListingItem struct {
	Number      int
	Labels      []string
	PullRequest *PullRequestRef
}

// PullRequestRef marks a listing row as a pull request. A nil reference means
// the row is a plain issue and is dropped by the filter chain.
type PullRequestRef struct {
	URL string
}

// IsPullRequest reports whether the row represents a pull request.
func (i ListingItem) IsPullRequest() bool {
	return i.PullRequest != nil
}

// HasAnyLabel reports whether any of the item's labels appears in set.
func (i ListingItem) HasAnyLabel(set []string) bool {
	for _, label := range i.Labels {
		for _, s := range set {
			if label == s {
				return true
			}
		}
	}
	return false
}
