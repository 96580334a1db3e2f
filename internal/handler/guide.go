package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/litoralhub/backend/internal/domain"
	"github.com/litoralhub/backend/internal/filter"
)

// GuideRequest is the JSON body for creating or updating a guide.
// Counters and the verified flag are server-owned and not accepted here.
type GuideRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	LocationType string   `json:"location_type"`
	LocationID   string   `json:"location_id"`
	Category     string   `json:"category"`
}

// GuideResponse is the JSON representation of a guide.
type GuideResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Tags         []string  `json:"tags"`
	LocationType string    `json:"location_type,omitempty"`
	LocationID   string    `json:"location_id,omitempty"`
	Category     string    `json:"category"`
	IsVerified   bool      `json:"is_verified"`
	LikesCount   int       `json:"likes_count"`
	SavesCount   int       `json:"saves_count"`
	ViewsCount   int       `json:"views_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Pagination describes the page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// GuideListResponse is the paged, filtered guide collection.
type GuideListResponse struct {
	Data       []GuideResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// SaveResponse reports the outcome of a save toggle.
type SaveResponse struct {
	Saved      bool `json:"saved"`
	SavesCount int  `json:"saves_count"`
}

// EngagementResponse reports a counter after an increment.
type EngagementResponse struct {
	LikesCount int `json:"likes_count"`
	ViewsCount int `json:"views_count"`
}

// CreateGuide handles POST /guides.
func (s *Server) CreateGuide(w http.ResponseWriter, r *http.Request) {
	var req GuideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	created, err := s.guides.Create(r.Context(), requestToGuide(req))
	if err != nil {
		writeError(w, err, "guide not found")
		return
	}

	writeJSON(w, http.StatusCreated, guideToResponse(created))
}

// ListGuides handles GET /guides.
// Query parameters: q (search text), location, category, verified, page, limit.
// Filtering is ANDed; unknown location/category values match nothing.
func (s *Server) ListGuides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := filter.Criteria{
		Search:       q.Get("q"),
		Location:     q.Get("location"),
		Category:     q.Get("category"),
		VerifiedOnly: q.Get("verified") == "true",
	}
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	guides, total, err := s.guides.List(r.Context(), criteria, params)
	if err != nil {
		writeError(w, err, "")
		return
	}

	data := make([]GuideResponse, len(guides))
	for i, g := range guides {
		data[i] = guideToResponse(g)
	}
	writeJSON(w, http.StatusOK, GuideListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetGuide handles GET /guides/{id}.
func (s *Server) GetGuide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("guide not found"))
		return
	}

	guide, err := s.guides.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "guide not found")
		return
	}

	writeJSON(w, http.StatusOK, guideToResponse(guide))
}

// UpdateGuide handles PUT /guides/{id}.
func (s *Server) UpdateGuide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("guide not found"))
		return
	}

	var req GuideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	guide := requestToGuide(req)
	guide.ID = id
	updated, err := s.guides.Update(r.Context(), guide)
	if err != nil {
		writeError(w, err, "guide not found")
		return
	}

	writeJSON(w, http.StatusOK, guideToResponse(updated))
}

// DeleteGuide handles DELETE /guides/{id}.
func (s *Server) DeleteGuide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("guide not found"))
		return
	}

	if err := s.guides.Delete(r.Context(), id); err != nil {
		writeError(w, err, "guide not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleGuideSave handles POST /guides/{id}/save.
// Requires an acting user; anonymous callers get 401 with code auth_required.
func (s *Server) ToggleGuideSave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("guide not found"))
		return
	}

	result, err := s.guides.ToggleSave(r.Context(), id, actingUser(r))
	if err != nil {
		writeError(w, err, "guide not found")
		return
	}

	writeJSON(w, http.StatusOK, SaveResponse{Saved: result.Saved, SavesCount: result.SavesCount})
}

// LikeGuide handles POST /guides/{id}/like.
func (s *Server) LikeGuide(w http.ResponseWriter, r *http.Request) {
	s.recordEngagement(w, r, domain.EngagementLike)
}

// ViewGuide handles POST /guides/{id}/view.
func (s *Server) ViewGuide(w http.ResponseWriter, r *http.Request) {
	s.recordEngagement(w, r, domain.EngagementView)
}

func (s *Server) recordEngagement(w http.ResponseWriter, r *http.Request, kind domain.EngagementKind) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("guide not found"))
		return
	}

	guide, err := s.guides.RecordEngagement(r.Context(), id, actingUser(r), kind)
	if err != nil {
		writeError(w, err, "guide not found")
		return
	}

	writeJSON(w, http.StatusOK, EngagementResponse{
		LikesCount: guide.LikesCount,
		ViewsCount: guide.ViewsCount,
	})
}

// ListSavedGuides handles GET /saved — the acting user's saved guides.
func (s *Server) ListSavedGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := s.guides.ListSaved(r.Context(), actingUser(r))
	if err != nil {
		writeError(w, err, "")
		return
	}

	data := make([]GuideResponse, len(guides))
	for i, g := range guides {
		data[i] = guideToResponse(g)
	}
	writeJSON(w, http.StatusOK, data)
}

// --- mapping helpers --------------------------------------------------------

func requestToGuide(req GuideRequest) domain.Guide {
	g := domain.Guide{
		Title:        req.Title,
		Description:  req.Description,
		Tags:         req.Tags,
		LocationType: req.LocationType,
		LocationID:   req.LocationID,
		Category:     req.Category,
	}
	if g.Tags == nil {
		g.Tags = []string{}
	}
	return g
}

func guideToResponse(g domain.Guide) GuideResponse {
	tags := g.Tags
	if tags == nil {
		tags = []string{}
	}
	return GuideResponse{
		ID:           g.ID,
		Title:        g.Title,
		Description:  g.Description,
		Tags:         tags,
		LocationType: g.LocationType,
		LocationID:   g.LocationID,
		Category:     g.Category,
		IsVerified:   g.IsVerified,
		LikesCount:   g.LikesCount,
		SavesCount:   g.SavesCount,
		ViewsCount:   g.ViewsCount,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// queryInt parses an optional integer query parameter, returning nil when the
// parameter is absent or not a number.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
