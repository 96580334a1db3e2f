package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litoralhub/backend/internal/domain"
	"github.com/litoralhub/backend/internal/handler"
)

// bannerNow is the frozen clock used by banner handler tests so derived
// statuses are deterministic.
var bannerNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// mockBannerServicer is a test double for handler.BannerServicer.
// Now always returns bannerNow.
type mockBannerServicer struct {
	create          func(ctx context.Context, banner domain.Banner) (domain.Banner, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Banner, error)
	list            func(ctx context.Context, status *domain.BannerStatus) ([]domain.Banner, error)
	listDisplayable func(ctx context.Context) ([]domain.Banner, error)
	update          func(ctx context.Context, banner domain.Banner) (domain.Banner, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBannerServicer) Create(ctx context.Context, b domain.Banner) (domain.Banner, error) {
	return m.create(ctx, b)
}
func (m *mockBannerServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Banner, error) {
	return m.getByID(ctx, id)
}
func (m *mockBannerServicer) List(ctx context.Context, status *domain.BannerStatus) ([]domain.Banner, error) {
	return m.list(ctx, status)
}
func (m *mockBannerServicer) ListDisplayable(ctx context.Context) ([]domain.Banner, error) {
	return m.listDisplayable(ctx)
}
func (m *mockBannerServicer) Update(ctx context.Context, b domain.Banner) (domain.Banner, error) {
	return m.update(ctx, b)
}
func (m *mockBannerServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockBannerServicer) Now() time.Time {
	return bannerNow
}

// compile-time check: mockBannerServicer must satisfy handler.BannerServicer.
var _ handler.BannerServicer = (*mockBannerServicer)(nil)

func newBannerHandler(svc handler.BannerServicer) http.Handler {
	return handler.NewServer(nil, svc).Routes()
}

func bannerFixture() domain.Banner {
	start := bannerNow.AddDate(0, 0, -7)
	end := bannerNow.AddDate(0, 0, 7)
	return domain.Banner{
		ID:        uuid.New(),
		Title:     "Summer Festival",
		ImageURL:  "https://cdn.litoral.example/banners/festival.jpg",
		LinkURL:   "https://litoral.example/festival",
		StartDate: &start,
		EndDate:   &end,
		Active:    true,
		Priority:  10,
		CreatedAt: bannerNow.AddDate(0, -1, 0),
		UpdatedAt: bannerNow.AddDate(0, -1, 0),
	}
}

// ---- POST /banners ---------------------------------------------------------

func TestCreateBanner_201(t *testing.T) {
	fixture := bannerFixture()
	var received domain.Banner
	svc := &mockBannerServicer{
		create: func(_ context.Context, b domain.Banner) (domain.Banner, error) {
			received = b
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"title":      fixture.Title,
		"image_url":  fixture.ImageURL,
		"start_date": fixture.StartDate.Format("2006-01-02"),
		"end_date":   fixture.EndDate.Format("2006-01-02"),
		"active":     true,
		"priority":   10,
	})
	req := httptest.NewRequest(http.MethodPost, "/banners", body)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.BannerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	// The window covers bannerNow and the banner is active.
	assert.Equal(t, domain.StatusActive, resp.Status)

	require.NotNil(t, received.StartDate)
	assert.Equal(t, fixture.StartDate.Format("2006-01-02"), received.StartDate.Format("2006-01-02"))
}

func TestCreateBanner_422_BadDate(t *testing.T) {
	svc := &mockBannerServicer{}

	body := jsonBody(t, map[string]any{
		"title":      "Broken",
		"start_date": "01/06/2024",
	})
	req := httptest.NewRequest(http.MethodPost, "/banners", body)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeErrorBody(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "start_date")
}

func TestCreateBanner_422_ReversedWindow(t *testing.T) {
	svc := &mockBannerServicer{
		create: func(_ context.Context, _ domain.Banner) (domain.Banner, error) {
			return domain.Banner{}, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"title":      "Backwards",
		"start_date": "2024-06-10",
		"end_date":   "2024-06-01",
	})
	req := httptest.NewRequest(http.MethodPost, "/banners", body)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeErrorBody(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "end_date must not be before start_date", resp.Error.Message)
}

// ---- GET /banners ----------------------------------------------------------

func TestListBanners_200_NoFilter(t *testing.T) {
	fixture := bannerFixture()
	var gotStatus *domain.BannerStatus
	svc := &mockBannerServicer{
		list: func(_ context.Context, status *domain.BannerStatus) ([]domain.Banner, error) {
			gotStatus = status
			return []domain.Banner{fixture}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/banners", nil)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotStatus)

	var resp []handler.BannerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, domain.StatusActive, resp[0].Status)
}

func TestListBanners_200_StatusFilter(t *testing.T) {
	var gotStatus *domain.BannerStatus
	svc := &mockBannerServicer{
		list: func(_ context.Context, status *domain.BannerStatus) ([]domain.Banner, error) {
			gotStatus = status
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/banners?status=scheduled", nil)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotStatus)
	assert.Equal(t, domain.StatusScheduled, *gotStatus)
}

func TestListBanners_422_UnknownStatus(t *testing.T) {
	svc := &mockBannerServicer{}

	req := httptest.NewRequest(http.MethodGet, "/banners?status=paused", nil)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeErrorBody(t, rec)
	assert.Contains(t, resp.Error.Message, "paused")
}

// ---- GET /banners/active ---------------------------------------------------

func TestListActiveBanners_200(t *testing.T) {
	fixture := bannerFixture()
	svc := &mockBannerServicer{
		listDisplayable: func(_ context.Context) ([]domain.Banner, error) {
			return []domain.Banner{fixture}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/banners/active", nil)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []handler.BannerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, fixture.ID, resp[0].ID)
}

// ---- GET /banners/{id} -----------------------------------------------------

func TestGetBanner_200_DerivesScheduledStatus(t *testing.T) {
	fixture := bannerFixture()
	// Move the window entirely into the future relative to the frozen clock.
	start := bannerNow.AddDate(0, 1, 0)
	end := bannerNow.AddDate(0, 2, 0)
	fixture.StartDate = &start
	fixture.EndDate = &end

	svc := &mockBannerServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Banner, error) {
			require.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/banners/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.BannerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.StatusScheduled, resp.Status)
	require.NotNil(t, resp.StartDate)
	assert.Equal(t, start.Format("2006-01-02"), *resp.StartDate)
}

func TestGetBanner_404_NotFound(t *testing.T) {
	svc := &mockBannerServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Banner, error) {
			return domain.Banner{}, fmt.Errorf("service.BannerService.GetByID: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/banners/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeErrorBody(t, rec)
	assert.Equal(t, "not_found", resp.Error.Code)
}

// ---- PUT /banners/{id} -----------------------------------------------------

func TestUpdateBanner_200(t *testing.T) {
	fixture := bannerFixture()
	var received domain.Banner
	svc := &mockBannerServicer{
		update: func(_ context.Context, b domain.Banner) (domain.Banner, error) {
			received = b
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"title": "Renamed", "active": false})
	req := httptest.NewRequest(http.MethodPut, "/banners/"+fixture.ID.String(), body)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fixture.ID, received.ID)
	assert.Equal(t, "Renamed", received.Title)
	assert.False(t, received.Active)
	assert.Nil(t, received.StartDate)
}

// ---- DELETE /banners/{id} --------------------------------------------------

func TestDeleteBanner_204(t *testing.T) {
	id := uuid.New()
	svc := &mockBannerServicer{
		delete: func(_ context.Context, got uuid.UUID) error {
			require.Equal(t, id, got)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/banners/"+id.String(), nil)
	rec := httptest.NewRecorder()

	newBannerHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
