package domain

import (
	"time"

	"github.com/google/uuid"
)

// BannerStatus is the derived display state of a banner relative to a given
// instant. It is computed fresh on every call and never persisted.
type BannerStatus string

const (
	StatusActive    BannerStatus = "active"
	StatusScheduled BannerStatus = "scheduled"
	StatusExpired   BannerStatus = "expired"
	StatusInactive  BannerStatus = "inactive"
)

// ParseBannerStatus validates a status string from a query parameter.
// Returns false for anything outside the four known states.
func ParseBannerStatus(s string) (BannerStatus, bool) {
	switch BannerStatus(s) {
	case StatusActive, StatusScheduled, StatusExpired, StatusInactive:
		return BannerStatus(s), true
	}
	return "", false
}

// Banner represents a promotional banner with an optional display window.
// A nil StartDate means the banner has always started; a nil EndDate means it
// never ends. Active is an administrative override independent of the window —
// a banner inside its window can still be switched off.
type Banner struct {
	ID        uuid.UUID
	Title     string
	ImageURL  string
	LinkURL   string
	StartDate *time.Time
	EndDate   *time.Time
	Active    bool
	Priority  int // ordering only; higher shows first
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusAt classifies the banner at the given instant.
//
// Rule order is the contract: deactivation always wins, and Scheduled is
// checked before Expired so a window entirely in the future is never reported
// as expired, even for a malformed window with start after end.
func (b Banner) StatusAt(now time.Time) BannerStatus {
	if !b.Active {
		return StatusInactive
	}
	if b.StartDate != nil && b.StartDate.After(now) {
		return StatusScheduled
	}
	if b.EndDate != nil && b.EndDate.Before(now) {
		return StatusExpired
	}
	return StatusActive
}

// DisplayableAt reports whether the banner should be rendered at the given
// instant, i.e. its status resolves to active.
func (b Banner) DisplayableAt(now time.Time) bool {
	return b.StatusAt(now) == StatusActive
}
