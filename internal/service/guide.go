// Package service contains the business logic for the Litoral platform API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/litoralhub/backend/internal/domain"
	"github.com/litoralhub/backend/internal/filter"
	"github.com/litoralhub/backend/internal/repo"
)

// GuideService implements business logic for Guide operations: CRUD,
// filtered listing, save toggling, and engagement counters.
type GuideService struct {
	guides repo.GuideRepo
	saves  repo.SaveRepo
}

// NewGuideService constructs a GuideService backed by the provided repos.
func NewGuideService(guides repo.GuideRepo, saves repo.SaveRepo) *GuideService {
	return &GuideService{guides: guides, saves: saves}
}

// Create validates and persists a new guide.
// Returns domain.ErrValidation if input violates business rules.
func (s *GuideService) Create(ctx context.Context, guide domain.Guide) (domain.Guide, error) {
	if err := validateGuide(guide); err != nil {
		return domain.Guide{}, err
	}
	result, err := s.guides.Create(ctx, guide)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single guide by ID.
func (s *GuideService) GetByID(ctx context.Context, id uuid.UUID) (domain.Guide, error) {
	result, err := s.guides.GetByID(ctx, id)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.GetByID: %w", err)
	}
	return result, nil
}

// List fetches all guides and applies the filter engine, then pages the
// filtered view. The returned total is the filtered count, so pagination
// reflects what the caller's criteria actually match.
// Unknown location/category filter values yield an empty result, not an error.
func (s *GuideService) List(ctx context.Context, c filter.Criteria, p domain.PaginationParams) ([]domain.Guide, int64, error) {
	all, err := s.guides.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.GuideService.List: %w", err)
	}

	matched := filter.Guides(all, c)
	total := int64(len(matched))

	start := p.Offset()
	if start >= len(matched) {
		return []domain.Guide{}, total, nil
	}
	end := start + p.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Update validates and persists changes to an existing guide.
func (s *GuideService) Update(ctx context.Context, guide domain.Guide) (domain.Guide, error) {
	if err := validateGuide(guide); err != nil {
		return domain.Guide{}, err
	}
	result, err := s.guides.Update(ctx, guide)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a guide by ID.
func (s *GuideService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.guides.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.GuideService.Delete: %w", err)
	}
	return nil
}

// ToggleSave flips the saved state of a guide for the acting user.
// Returns domain.ErrUnauthorized when there is no acting user — nothing is
// written in that case, so an anonymous click can never leave an orphaned
// relation or a drifted counter.
func (s *GuideService) ToggleSave(ctx context.Context, guideID, userID uuid.UUID) (domain.SaveResult, error) {
	if userID == uuid.Nil {
		return domain.SaveResult{}, fmt.Errorf("service.GuideService.ToggleSave: %w", domain.ErrUnauthorized)
	}
	result, err := s.saves.Toggle(ctx, guideID, userID)
	if err != nil {
		return domain.SaveResult{}, fmt.Errorf("service.GuideService.ToggleSave: %w", err)
	}
	return result, nil
}

// ListSaved returns the acting user's saved guides, most recently saved first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *GuideService) ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.Guide, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("service.GuideService.ListSaved: %w", domain.ErrUnauthorized)
	}
	guides, err := s.saves.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.GuideService.ListSaved: %w", err)
	}
	if guides == nil {
		return []domain.Guide{}, nil
	}
	return guides, nil
}

// RecordEngagement increments the guide's like or view counter for the acting
// user. Likes and views are not deduplicated per user — every call counts.
func (s *GuideService) RecordEngagement(ctx context.Context, guideID, userID uuid.UUID, kind domain.EngagementKind) (domain.Guide, error) {
	if userID == uuid.Nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.RecordEngagement: %w", domain.ErrUnauthorized)
	}
	result, err := s.guides.IncrementEngagement(ctx, guideID, kind)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.RecordEngagement: %w", err)
	}
	return result, nil
}

// validateGuide enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Category is required.
//   - LocationType, when set, must be a known code and carry a location id
//     except for regions, which are not individually addressable.
func validateGuide(guide domain.Guide) error {
	if strings.TrimSpace(guide.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(guide.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	switch guide.LocationType {
	case "", domain.LocationRegion:
	case domain.LocationCity, domain.LocationBeach:
		if guide.LocationID == "" {
			return fmt.Errorf("%w: location_id is required for %s guides", domain.ErrValidation, guide.LocationType)
		}
	default:
		return fmt.Errorf("%w: unknown location_type %q", domain.ErrValidation, guide.LocationType)
	}
	return nil
}
