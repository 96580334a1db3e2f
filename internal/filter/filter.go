// Package filter is the pure in-memory filtering engine for platform content.
// It narrows fetched collections to the subset matching user-supplied
// criteria. Functions here never mutate their input, never touch I/O, and
// never read the clock — callers inject the current time where needed.
package filter

import (
	"strings"
	"time"

	"github.com/litoralhub/backend/internal/domain"
)

// Criteria describes one filtering pass over a guide collection.
// Zero values mean "no restriction" for every field.
type Criteria struct {
	// Search is matched case-insensitively as a substring of the title,
	// the description, or any tag.
	Search string

	// Location is one of "", "all", "cities", "beaches", "regions", or a
	// composite key "city_<id>" / "beach_<id>". Any other value matches
	// nothing — unknown filters fail closed rather than wide open.
	Location string

	// Category is "" or "all" for no restriction, otherwise an exact match.
	Category string

	// VerifiedOnly excludes guides that have not passed moderation.
	VerifiedOnly bool
}

// Guides returns the guides matching all active criteria, in input order.
// The input slice is never modified; the result is always non-nil.
func Guides(items []domain.Guide, c Criteria) []domain.Guide {
	out := []domain.Guide{}
	for _, g := range items {
		if matches(g, c) {
			out = append(out, g)
		}
	}
	return out
}

// matches reports whether a single guide satisfies every criterion (AND).
func matches(g domain.Guide, c Criteria) bool {
	if c.VerifiedOnly && !g.IsVerified {
		return false
	}
	if !matchesCategory(g, c.Category) {
		return false
	}
	if !matchesLocation(g, c.Location) {
		return false
	}
	return matchesSearch(g, c.Search)
}

func matchesSearch(g domain.Guide, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(g.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(g.Description), needle) {
		return true
	}
	for _, tag := range g.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func matchesCategory(g domain.Guide, category string) bool {
	if category == "" || category == "all" {
		return true
	}
	return g.Category == category
}

// matchesLocation implements the location filter grammar.
// Plural forms match by location type alone; the composite "city_<id>" and
// "beach_<id>" forms additionally require an exact id match.
func matchesLocation(g domain.Guide, location string) bool {
	switch location {
	case "", "all":
		return true
	case "cities":
		return g.LocationType == domain.LocationCity
	case "beaches":
		return g.LocationType == domain.LocationBeach
	case "regions":
		return g.LocationType == domain.LocationRegion
	}
	if id, ok := strings.CutPrefix(location, "city_"); ok {
		return g.LocationType == domain.LocationCity && g.LocationID == id
	}
	if id, ok := strings.CutPrefix(location, "beach_"); ok {
		return g.LocationType == domain.LocationBeach && g.LocationID == id
	}
	// Unrecognized filter value: fail closed.
	return false
}

// Banners returns the banners whose status at the given instant equals
// status, preserving input order. Used by the admin status filter.
func Banners(items []domain.Banner, status domain.BannerStatus, now time.Time) []domain.Banner {
	out := []domain.Banner{}
	for _, b := range items {
		if b.StatusAt(now) == status {
			out = append(out, b)
		}
	}
	return out
}

// Displayable returns the banners that should render at the given instant,
// preserving input order.
func Displayable(items []domain.Banner, now time.Time) []domain.Banner {
	return Banners(items, domain.StatusActive, now)
}
