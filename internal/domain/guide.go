// Package domain contains the core data types for the Litoral content platform.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (filter, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location type codes a guide can be attached to.
// An empty LocationType means the guide is not tied to a specific place.
const (
	LocationCity   = "city"
	LocationBeach  = "beach"
	LocationRegion = "region"
)

// Guide represents a local guide published on the platform — a piece of
// community content describing a place, activity, or service.
//
// LikesCount, SavesCount, and ViewsCount are denormalized counters. They are
// adjusted only through the explicit engagement operations (repo layer), never
// recomputed by aggregating other rows. SavesCount is kept consistent with the
// guide_saves table by updating both in the same transaction.
type Guide struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Tags         []string
	LocationType string // one of "", LocationCity, LocationBeach, LocationRegion
	LocationID   string // identifier of the city/beach/region; empty when LocationType is empty or "region"
	Category     string
	IsVerified   bool // set by the moderation process, false on creation
	LikesCount   int
	SavesCount   int
	ViewsCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EngagementKind selects which engagement counter an increment targets.
type EngagementKind string

const (
	EngagementLike EngagementKind = "like"
	EngagementView EngagementKind = "view"
)
