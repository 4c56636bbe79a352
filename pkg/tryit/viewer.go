package tryit

import (
	"sort"
	"strings"

	"github.com/dochub-io/dochub/pkg/apidocs"
)

// PageContent is the slice of a documentation page the viewer consumes:
// the page title and its raw content text. Only pages from api-docs
// projects are handed to the viewer; other template types never reach it.
type PageContent struct {
	Title   string
	Content string
}

// Group is one navigable section of the viewer, one per source page.
type Group struct {
	Page      string
	Endpoints apidocs.Collection
}

// SortKey selects the in-group display ordering.
type SortKey string

const (
	// SortNone keeps the underlying collection order.
	SortNone SortKey = ""
	// SortByTitle orders lexicographically by endpoint title.
	SortByTitle SortKey = "title"
	// SortByMethod orders lexicographically by HTTP method.
	SortByMethod SortKey = "method"
)

// Filter narrows the visible endpoint set. Search matches
// case-insensitively against title, path, and description; Method is an
// exact (case-insensitive) method match; BookmarkedOnly keeps only
// endpoints the user has bookmarked this session.
type Filter struct {
	Search         string
	Method         string
	BookmarkedOnly bool
}

// BuildGroups parses each page's content into a group. Malformed content
// parses to an empty collection, so a corrupt page yields an empty group
// rather than failing the whole viewer.
func BuildGroups(pages []PageContent) []Group {
	groups := make([]Group, 0, len(pages))
	for _, p := range pages {
		groups = append(groups, Group{
			Page:      p.Title,
			Endpoints: apidocs.ParseCollection(p.Content),
		})
	}
	return groups
}

// Viewer is one reader session over a set of documentation pages.
// Bookmarks are local, non-persisted state.
type Viewer struct {
	groups    []Group
	bookmarks map[string]bool
}

// NewViewer builds a viewer over the given pages.
func NewViewer(pages []PageContent) *Viewer {
	return &Viewer{
		groups:    BuildGroups(pages),
		bookmarks: make(map[string]bool),
	}
}

// NewViewerFromGroups builds a viewer over pre-parsed groups, for callers
// that cache parsed collections.
func NewViewerFromGroups(groups []Group) *Viewer {
	return &Viewer{
		groups:    groups,
		bookmarks: make(map[string]bool),
	}
}

// Groups returns all groups with their full endpoint collections.
func (v *Viewer) Groups() []Group {
	return v.groups
}

// ToggleBookmark flips the bookmark for an endpoint path.
func (v *Viewer) ToggleBookmark(path string) {
	if v.bookmarks[path] {
		delete(v.bookmarks, path)
		return
	}
	v.bookmarks[path] = true
}

// Bookmarked reports whether an endpoint path is bookmarked.
func (v *Viewer) Bookmarked(path string) bool {
	return v.bookmarks[path]
}

// Visible applies search, then filter, then sort, and hides groups left
// with no matching endpoints.
func (v *Viewer) Visible(f Filter, key SortKey) []Group {
	visible := make([]Group, 0, len(v.groups))
	for _, g := range v.groups {
		kept := make(apidocs.Collection, 0, len(g.Endpoints))
		for _, e := range g.Endpoints {
			if !matchesSearch(e, f.Search) {
				continue
			}
			if f.Method != "" && !strings.EqualFold(e.Method, f.Method) {
				continue
			}
			if f.BookmarkedOnly && !v.bookmarks[e.Path] {
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			continue
		}
		sortEndpoints(kept, key)
		visible = append(visible, Group{Page: g.Page, Endpoints: kept})
	}
	return visible
}

func matchesSearch(e apidocs.Endpoint, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Path), needle) ||
		strings.Contains(strings.ToLower(e.Description), needle)
}

func sortEndpoints(c apidocs.Collection, key SortKey) {
	switch key {
	case SortByTitle:
		sort.SliceStable(c, func(i, j int) bool { return c[i].Title < c[j].Title })
	case SortByMethod:
		sort.SliceStable(c, func(i, j int) bool { return c[i].Method < c[j].Method })
	}
}
