package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/litoralhub/backend/internal/domain"
)

// dateLayout is the wire format for banner window dates.
const dateLayout = "2006-01-02"

// BannerRequest is the JSON body for creating or updating a banner.
// Dates are "2006-01-02" strings; either may be omitted for an open window.
type BannerRequest struct {
	Title     string  `json:"title"`
	ImageURL  string  `json:"image_url"`
	LinkURL   string  `json:"link_url"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Active    bool    `json:"active"`
	Priority  int     `json:"priority"`
}

// BannerResponse is the JSON representation of a banner. Status is derived at
// response time from the active flag and the date window; it is never stored.
type BannerResponse struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	ImageURL  string              `json:"image_url,omitempty"`
	LinkURL   string              `json:"link_url,omitempty"`
	StartDate *string             `json:"start_date,omitempty"`
	EndDate   *string             `json:"end_date,omitempty"`
	Active    bool                `json:"active"`
	Priority  int                 `json:"priority"`
	Status    domain.BannerStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// CreateBanner handles POST /banners.
func (s *Server) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req BannerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}
	banner, err := requestToBanner(req)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.banners.Create(r.Context(), banner)
	if err != nil {
		writeError(w, err, "banner not found")
		return
	}

	writeJSON(w, http.StatusCreated, bannerToResponse(created, s.banners.Now()))
}

// ListBanners handles GET /banners.
// The optional ?status= parameter narrows the list to banners whose derived
// status matches; values outside the four known states yield 422.
func (s *Server) ListBanners(w http.ResponseWriter, r *http.Request) {
	var status *domain.BannerStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := domain.ParseBannerStatus(raw)
		if !ok {
			writeJSON(w, http.StatusUnprocessableEntity,
				requestBody(fmt.Sprintf("unknown status %q", raw)))
			return
		}
		status = &parsed
	}

	banners, err := s.banners.List(r.Context(), status)
	if err != nil {
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, bannersToResponse(banners, s.banners.Now()))
}

// ListActiveBanners handles GET /banners/active — the public read path
// returning only banners that should render right now.
func (s *Server) ListActiveBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := s.banners.ListDisplayable(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, bannersToResponse(banners, s.banners.Now()))
}

// GetBanner handles GET /banners/{id}.
func (s *Server) GetBanner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("banner not found"))
		return
	}

	banner, err := s.banners.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "banner not found")
		return
	}

	writeJSON(w, http.StatusOK, bannerToResponse(banner, s.banners.Now()))
}

// UpdateBanner handles PUT /banners/{id}.
func (s *Server) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("banner not found"))
		return
	}

	var req BannerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}
	banner, err := requestToBanner(req)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	banner.ID = id

	updated, err := s.banners.Update(r.Context(), banner)
	if err != nil {
		writeError(w, err, "banner not found")
		return
	}

	writeJSON(w, http.StatusOK, bannerToResponse(updated, s.banners.Now()))
}

// DeleteBanner handles DELETE /banners/{id}.
func (s *Server) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("banner not found"))
		return
	}

	if err := s.banners.Delete(r.Context(), id); err != nil {
		writeError(w, err, "banner not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToBanner(req BannerRequest) (domain.Banner, error) {
	b := domain.Banner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Active:   req.Active,
		Priority: req.Priority,
	}
	var err error
	if b.StartDate, err = parseDate(req.StartDate, "start_date"); err != nil {
		return domain.Banner{}, err
	}
	if b.EndDate, err = parseDate(req.EndDate, "end_date"); err != nil {
		return domain.Banner{}, err
	}
	return b, nil
}

func parseDate(raw *string, field string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a %s date", field, dateLayout)
	}
	return &t, nil
}

func bannerToResponse(b domain.Banner, now time.Time) BannerResponse {
	resp := BannerResponse{
		ID:        b.ID,
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Active:    b.Active,
		Priority:  b.Priority,
		Status:    b.StatusAt(now),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.StartDate != nil {
		sd := b.StartDate.Format(dateLayout)
		resp.StartDate = &sd
	}
	if b.EndDate != nil {
		ed := b.EndDate.Format(dateLayout)
		resp.EndDate = &ed
	}
	return resp
}

func bannersToResponse(banners []domain.Banner, now time.Time) []BannerResponse {
	out := make([]BannerResponse, len(banners))
	for i, b := range banners {
		out[i] = bannerToResponse(b, now)
	}
	return out
}
