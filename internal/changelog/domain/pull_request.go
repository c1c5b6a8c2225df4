package domain

import "time"

// PullRequestDetail is the full pull request record, fetched once per listing
// item that survives the cheap filters.
type PullRequestDetail struct {
	Number         int
	Title          string
	Body           string
	HTMLURL        string
	Author         string
	MergedAt       *time.Time
	MergeCommitSHA string
	Base           BaseBranch
}

// BaseBranch describes the branch a pull request targets.
type BaseBranch struct {
	Ref string
	SHA string
}

// Merged reports whether the pull request has been merged.
func (d PullRequestDetail) Merged() bool {
	return d.MergedAt != nil
}
