package ads

import (
	"strings"

	"golang.org/x/text/cases"
)

// BrowseFilter narrows the approved list. Query matches title or description,
// Location matches location; both are case-insensitive substring matches.
type BrowseFilter struct {
	Query    string
	Location string
}

func (f BrowseFilter) Empty() bool {
	return strings.TrimSpace(f.Query) == "" && strings.TrimSpace(f.Location) == ""
}

// Apply returns the ads matching f, keeping their order.
func (f BrowseFilter) Apply(in []Ad) []Ad {
	if f.Empty() {
		return in
	}

	// A Caser is stateful; one per call.
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(f.Query))
	loc := fold.String(strings.TrimSpace(f.Location))

	out := make([]Ad, 0, len(in))
	for _, ad := range in {
		if q != "" &&
			!strings.Contains(fold.String(ad.Title), q) &&
			!strings.Contains(fold.String(ad.Description), q) {
			continue
		}
		if loc != "" && !strings.Contains(fold.String(ad.Location), loc) {
			continue
		}
		out = append(out, ad)
	}
	return out
}
