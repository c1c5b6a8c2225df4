package domain

import (
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// LabelPolicy is the configured rule set controlling which listing items become
// changelog entries. It is read-only for the retrieval pipeline.
type LabelPolicy struct {
	// Required is the single label used as the listing-query filter.
	Required string
	// Exclude drops any item carrying one of these labels.
	Exclude []string
	// Include, when non-empty, keeps only items carrying one of these labels.
	Include []string
	// ExcludeUnlabeled drops items with no labels at all.
	ExcludeUnlabeled bool
	// CategoryMap maps a label to the changelog category it selects.
	CategoryMap map[string]string
	// VersionPrefix scopes results to one release. Empty means no scoping.
	VersionPrefix string
}

// Validate checks the policy's construction-time invariants. A non-empty
// version prefix must parse as a semantic version.
func (p LabelPolicy) Validate() error {
	if p.VersionPrefix != "" && !IsSemanticVersion(p.VersionPrefix) {
		return &ConfigError{
			Setting: "version_prefix",
			Reason:  "not a semantic version: " + strconv.Quote(p.VersionPrefix),
		}
	}
	return nil
}

// IsSemanticVersion reports whether s parses as a semantic version.
// Partial versions such as "3.4" are accepted.
func IsSemanticVersion(s string) bool {
	_, err := semver.NewVersion(s)
	return err == nil
}
