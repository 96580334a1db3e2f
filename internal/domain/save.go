package domain

import (
	"time"

	"github.com/google/uuid"
)

// GuideSave is the join record expressing "this user bookmarked this guide".
// At most one row exists per (UserID, GuideID) pair — enforced by the primary
// key and preserved by the toggle operation in the repo layer.
type GuideSave struct {
	UserID    uuid.UUID
	GuideID   uuid.UUID
	CreatedAt time.Time
}

// SaveResult is the outcome of a save toggle: whether the guide is now saved
// by the user, and the guide's saves count after the toggle.
type SaveResult struct {
	Saved      bool
	SavesCount int
}
