// Package handler implements the HTTP handlers for the Litoral platform API.
// All handlers are methods on Server. They are split into resource-specific
// files (guide.go, banner.go, health.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/litoralhub/backend/internal/domain"
	"github.com/litoralhub/backend/internal/filter"
)

// GuideServicer defines the business operations the guide handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type GuideServicer interface {
	Create(ctx context.Context, guide domain.Guide) (domain.Guide, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Guide, error)
	List(ctx context.Context, c filter.Criteria, p domain.PaginationParams) ([]domain.Guide, int64, error)
	Update(ctx context.Context, guide domain.Guide) (domain.Guide, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleSave(ctx context.Context, guideID, userID uuid.UUID) (domain.SaveResult, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.Guide, error)
	RecordEngagement(ctx context.Context, guideID, userID uuid.UUID, kind domain.EngagementKind) (domain.Guide, error)
}

// BannerServicer defines the business operations the banner handlers depend on.
// Now exposes the service clock so responses are stamped with the same instant
// used to classify banner status.
type BannerServicer interface {
	Create(ctx context.Context, banner domain.Banner) (domain.Banner, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Banner, error)
	List(ctx context.Context, status *domain.BannerStatus) ([]domain.Banner, error)
	ListDisplayable(ctx context.Context) ([]domain.Banner, error)
	Update(ctx context.Context, banner domain.Banner) (domain.Banner, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Now() time.Time
}

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	guides  GuideServicer
	banners BannerServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(guides GuideServicer, banners BannerServicer) *Server {
	return &Server{guides: guides, banners: banners}
}

// Routes mounts every API endpoint on a fresh chi router.
// Middleware is applied by the caller (cmd/api), not here.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/guides", func(r chi.Router) {
		r.Post("/", s.CreateGuide)
		r.Get("/", s.ListGuides)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetGuide)
			r.Put("/", s.UpdateGuide)
			r.Delete("/", s.DeleteGuide)
			r.Post("/save", s.ToggleGuideSave)
			r.Post("/like", s.LikeGuide)
			r.Post("/view", s.ViewGuide)
		})
	})

	r.Get("/saved", s.ListSavedGuides)

	r.Route("/banners", func(r chi.Router) {
		r.Post("/", s.CreateBanner)
		r.Get("/", s.ListBanners)
		r.Get("/active", s.ListActiveBanners)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetBanner)
			r.Put("/", s.UpdateBanner)
			r.Delete("/", s.DeleteBanner)
		})
	})

	return r
}
