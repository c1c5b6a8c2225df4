package issuelisting

import (
	"regexp"
	"strconv"
	"strings"
)

var pagePattern = regexp.MustCompile(`[?&]page=(\d+)`)

// nextPage extracts the page number of the rel="next" relation from an
// RFC 5988 Link header. The header is a comma-separated list of
// `<url>; rel="relation"` segments; the page number is read from the URL
// adjacent to the next relation. The second return is false when no next
// relation is present, which is the page walk's sole termination signal.
func nextPage(link string) (int, bool) {
	for _, segment := range strings.Split(link, ",") {
		page := 0
		found := false
		isNext := false
		for _, piece := range strings.Split(segment, ";") {
			piece = strings.TrimSpace(piece)
			if m := pagePattern.FindStringSubmatch(piece); m != nil {
				if p, err := strconv.Atoi(m[1]); err == nil {
					page = p
					found = true
				}
			}
			if piece == `rel="next"` {
				isNext = true
			}
		}
		if isNext && found {
			return page, true
		}
	}
	return 0, false
}
