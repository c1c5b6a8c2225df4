package domain

import (
	"strings"
	"time"
)

// PRIssue is the normalized merge of a listing item and its pull request
// detail. Construction derives the category, label filter, version filter and
// display text once; the value is immutable afterwards.
type PRIssue struct {
	Number         int
	Title          string
	Body           string
	Author         string
	HTMLURL        string
	Labels         []string
	MergedAt       *time.Time
	MergeCommitSHA string
	Base           BaseBranch

	category      string
	hasCategory   bool
	labelFilter   []string
	versionFilter []string
	changeText    string
}

// NewPRIssue merges item and detail under the given policy.
//
// The category is taken from the first of the item's labels, in the item's
// label order, that has an entry in the policy's category map. Labels that
// parse as semantic versions form the version filter; mapped labels form the
// label filter, both preserving the item's label order.
func NewPRIssue(item ListingItem, detail PullRequestDetail, policy LabelPolicy, includeAuthor, includeLink bool) PRIssue {
	pr := PRIssue{
		Number:         item.Number,
		Title:          detail.Title,
		Body:           detail.Body,
		Author:         detail.Author,
		HTMLURL:        detail.HTMLURL,
		Labels:         item.Labels,
		MergedAt:       detail.MergedAt,
		MergeCommitSHA: detail.MergeCommitSHA,
		Base:           detail.Base,
	}

	for _, label := range item.Labels {
		if category, ok := policy.CategoryMap[label]; ok {
			if !pr.hasCategory {
				pr.category = category
				pr.hasCategory = true
			}
			pr.labelFilter = append(pr.labelFilter, category)
		}
		if IsSemanticVersion(label) {
			pr.versionFilter = append(pr.versionFilter, label)
		}
	}

	pr.changeText = changeText(detail, includeAuthor, includeLink)
	return pr
}

func changeText(detail PullRequestDetail, includeAuthor, includeLink bool) string {
	var sb strings.Builder
	sb.WriteString(detail.Title)
	if includeAuthor && detail.Author != "" {
		sb.WriteString(" (")
		sb.WriteString(detail.Author)
		sb.WriteString(")")
	}
	if includeLink && detail.HTMLURL != "" {
		sb.WriteString(" ")
		sb.WriteString(detail.HTMLURL)
	}
	return sb.String()
}

// Category returns the changelog category and whether one was assigned.
// No placeholder is substituted when no label matches the category map;
// handling the absent case is the renderer's responsibility.
func (pr PRIssue) Category() (string, bool) {
	return pr.category, pr.hasCategory
}

// LabelFilter returns the mapped categories of the item's labels, in the
// item's label order.
func (pr PRIssue) LabelFilter() []string {
	return pr.labelFilter
}

// VersionFilter returns the labels that encode version scoping, in the item's
// label order.
func (pr PRIssue) VersionFilter() []string {
	return pr.versionFilter
}

// SortingNumber is the key used to order changes.
func (pr PRIssue) SortingNumber() int {
	return pr.Number
}

// ChangeTextHeader is the rendered display text for the change.
func (pr PRIssue) ChangeTextHeader() string {
	return pr.changeText
}

// IncludedInVersion reports whether the pull request belongs in the given
// changelog version. An empty version filter or an empty changelogVersion
// means no scoping was requested and always matches. Otherwise the match is a
// string-prefix test: a pull request scoped to "3.4" matches "3.4", "3.4.1"
// and "3.4.0-beta".
func (pr PRIssue) IncludedInVersion(changelogVersion string) bool {
	if len(pr.versionFilter) == 0 || changelogVersion == "" {
		return true
	}
	for _, version := range pr.versionFilter {
		if strings.HasPrefix(changelogVersion, version) {
			return true
		}
	}
	return false
}
