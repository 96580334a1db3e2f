package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/litoralhub/backend/internal/domain"
)

const bannerColumns = `id, title, image_url, link_url, start_date, end_date, active, priority,
			created_at, updated_at`

// BannerRepo defines the persistence operations for promotional banners.
// Status is never stored — it is derived from active + the date window at
// read time by the domain layer.
type BannerRepo interface {
	// Create inserts a new banner and returns the persisted record.
	Create(ctx context.Context, banner domain.Banner) (domain.Banner, error)

	// GetByID retrieves a single banner by its UUID primary key.
	// Returns domain.ErrNotFound if no banner with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Banner, error)

	// List returns all banners ordered by priority descending, then newest first.
	List(ctx context.Context) ([]domain.Banner, error)

	// Update overwrites the mutable fields of an existing banner and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, banner domain.Banner) (domain.Banner, error)

	// Delete removes a banner by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgBannerRepo is the Postgres implementation of BannerRepo.
type pgBannerRepo struct {
	db db
}

// NewBannerRepo constructs a BannerRepo backed by the provided db connection.
func NewBannerRepo(db db) BannerRepo {
	return &pgBannerRepo{db: db}
}

func (r *pgBannerRepo) Create(ctx context.Context, banner domain.Banner) (domain.Banner, error) {
	const q = `
		INSERT INTO banners (title, image_url, link_url, start_date, end_date, active, priority)
		VALUES (@title, @image_url, @link_url, @start_date, @end_date, @active, @priority)
		RETURNING ` + bannerColumns

	args := pgx.NamedArgs{
		"title":      banner.Title,
		"image_url":  banner.ImageURL,
		"link_url":   banner.LinkURL,
		"start_date": banner.StartDate, // nil becomes NULL
		"end_date":   banner.EndDate,
		"active":     banner.Active,
		"priority":   banner.Priority,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBanner(row)
	if err != nil {
		return domain.Banner{}, fmt.Errorf("repo.BannerRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBannerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Banner, error) {
	const q = `SELECT ` + bannerColumns + ` FROM banners WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanBanner(row)
	if err != nil {
		return domain.Banner{}, fmt.Errorf("repo.BannerRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all banners, highest priority first, ties broken newest first.
func (r *pgBannerRepo) List(ctx context.Context) ([]domain.Banner, error) {
	const q = `SELECT ` + bannerColumns + ` FROM banners ORDER BY priority DESC, created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BannerRepo.List: %w", err)
	}
	defer rows.Close()

	banners := []domain.Banner{}
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BannerRepo.List: scan: %w", err)
		}
		banners = append(banners, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BannerRepo.List: rows: %w", err)
	}
	return banners, nil
}

func (r *pgBannerRepo) Update(ctx context.Context, banner domain.Banner) (domain.Banner, error) {
	const q = `
		UPDATE banners
		SET title      = @title,
		    image_url  = @image_url,
		    link_url   = @link_url,
		    start_date = @start_date,
		    end_date   = @end_date,
		    active     = @active,
		    priority   = @priority,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + bannerColumns

	args := pgx.NamedArgs{
		"id":         banner.ID,
		"title":      banner.Title,
		"image_url":  banner.ImageURL,
		"link_url":   banner.LinkURL,
		"start_date": banner.StartDate,
		"end_date":   banner.EndDate,
		"active":     banner.Active,
		"priority":   banner.Priority,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBanner(row)
	if err != nil {
		return domain.Banner{}, fmt.Errorf("repo.BannerRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgBannerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM banners WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BannerRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BannerRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanBanner maps a single database row into a domain.Banner.
// It handles the UUID and nullable date conversions.
func scanBanner(s scanner) (domain.Banner, error) {
	var (
		b         domain.Banner
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &b.Title, &b.ImageURL, &b.LinkURL, &startDate, &endDate,
		&b.Active, &b.Priority, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Banner{}, domain.ErrNotFound
		}
		return domain.Banner{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	if startDate.Valid {
		sd := startDate.Time
		b.StartDate = &sd
	}
	if endDate.Valid {
		ed := endDate.Time
		b.EndDate = &ed
	}
	return b, nil
}
