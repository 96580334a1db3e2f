package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/litoralhub/backend/internal/domain"
	"github.com/litoralhub/backend/internal/filter"
	"github.com/litoralhub/backend/internal/repo"
)

// BannerService implements business logic for promotional banners.
// The clock is injected so status classification is deterministic in tests;
// pass nil to use time.Now.
type BannerService struct {
	banners repo.BannerRepo
	now     func() time.Time
}

// NewBannerService constructs a BannerService backed by the provided repo.
func NewBannerService(banners repo.BannerRepo, now func() time.Time) *BannerService {
	if now == nil {
		now = time.Now
	}
	return &BannerService{banners: banners, now: now}
}

// Create validates and persists a new banner.
// Returns domain.ErrValidation if input violates business rules.
func (s *BannerService) Create(ctx context.Context, banner domain.Banner) (domain.Banner, error) {
	if err := validateBanner(banner); err != nil {
		return domain.Banner{}, err
	}
	result, err := s.banners.Create(ctx, banner)
	if err != nil {
		return domain.Banner{}, fmt.Errorf("service.BannerService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single banner by ID.
func (s *BannerService) GetByID(ctx context.Context, id uuid.UUID) (domain.Banner, error) {
	result, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return domain.Banner{}, fmt.Errorf("service.BannerService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all banners in priority order, optionally narrowed to those
// whose current status matches the given one. Pass nil for no status filter.
// Always returns a non-nil slice.
func (s *BannerService) List(ctx context.Context, status *domain.BannerStatus) ([]domain.Banner, error) {
	banners, err := s.banners.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BannerService.List: %w", err)
	}
	if status != nil {
		return filter.Banners(banners, *status, s.now()), nil
	}
	if banners == nil {
		return []domain.Banner{}, nil
	}
	return banners, nil
}

// ListDisplayable returns the banners that should render right now, highest
// priority first. This is the public (non-admin) read path.
func (s *BannerService) ListDisplayable(ctx context.Context) ([]domain.Banner, error) {
	banners, err := s.banners.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BannerService.ListDisplayable: %w", err)
	}
	return filter.Displayable(banners, s.now()), nil
}

// Now exposes the service clock so handlers can stamp responses with the same
// instant used for classification.
func (s *BannerService) Now() time.Time {
	return s.now()
}

// Update validates and persists changes to an existing banner.
func (s *BannerService) Update(ctx context.Context, banner domain.Banner) (domain.Banner, error) {
	if err := validateBanner(banner); err != nil {
		return domain.Banner{}, err
	}
	result, err := s.banners.Update(ctx, banner)
	if err != nil {
		return domain.Banner{}, fmt.Errorf("service.BannerService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a banner by ID.
func (s *BannerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.BannerService.Delete: %w", err)
	}
	return nil
}

// validateBanner enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - A reversed display window is rejected outright; the resolver would
//     still classify it deterministically, but bad windows should never be
//     stored in the first place.
func validateBanner(banner domain.Banner) error {
	if strings.TrimSpace(banner.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if banner.StartDate != nil && banner.EndDate != nil && banner.EndDate.Before(*banner.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
