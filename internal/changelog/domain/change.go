package domain

// Change is the generic shape consumed by the changelog renderer.
type Change struct {
	SortingNumber int
	Labels        []string
	Version       string
	Text          string
}

func (c Change) String() string {
	return c.Text
}

// ConvertToChange projects a normalized pull request into a Change stamped
// with the given changelog version.
func ConvertToChange(pr PRIssue, version string) Change {
	return Change{
		SortingNumber: pr.SortingNumber(),
		Labels:        pr.LabelFilter(),
		Version:       version,
		Text:          pr.ChangeTextHeader(),
	}
}
