// Package repo contains all database access logic for the Litoral platform API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/litoralhub/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin is included because the
// save toggle needs an explicit transaction; on pgx.Tx it opens a savepoint.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const guideColumns = `id, title, description, tags, location_type, location_id, category,
		       is_verified, likes_count, saves_count, views_count, created_at, updated_at`

// GuideRepo defines the persistence operations for Guides.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type GuideRepo interface {
	// Create inserts a new guide and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated). Counters start
	// at zero and is_verified at false regardless of the input values.
	Create(ctx context.Context, guide domain.Guide) (domain.Guide, error)

	// GetByID retrieves a single guide by its UUID primary key.
	// Returns domain.ErrNotFound if no guide with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Guide, error)

	// List returns all guides ordered by created_at descending.
	// Filtering happens in memory in the service layer, so List carries no
	// criteria of its own.
	List(ctx context.Context) ([]domain.Guide, error)

	// Update overwrites the editable fields of an existing guide and returns
	// the updated record. Counters and the verified flag are not touched.
	// Returns domain.ErrNotFound if no guide with that ID exists.
	Update(ctx context.Context, guide domain.Guide) (domain.Guide, error)

	// Delete removes a guide by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementEngagement adds 1 to the guide's like or view counter and
	// returns the updated record. Returns domain.ErrNotFound for unknown ids.
	IncrementEngagement(ctx context.Context, id uuid.UUID, kind domain.EngagementKind) (domain.Guide, error)
}

// pgGuideRepo is the Postgres implementation of GuideRepo.
type pgGuideRepo struct {
	db db
}

// NewGuideRepo constructs a GuideRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewGuideRepo(db db) GuideRepo {
	return &pgGuideRepo{db: db}
}

func (r *pgGuideRepo) Create(ctx context.Context, guide domain.Guide) (domain.Guide, error) {
	const q = `
		INSERT INTO guides (title, description, tags, location_type, location_id, category)
		VALUES (@title, @description, @tags, @location_type, @location_id, @category)
		RETURNING ` + guideColumns

	args := pgx.NamedArgs{
		"title":         guide.Title,
		"description":   guide.Description,
		"tags":          guide.Tags,
		"location_type": guide.LocationType,
		"location_id":   guide.LocationID,
		"category":      guide.Category,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanGuide(row)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgGuideRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Guide, error) {
	const q = `SELECT ` + guideColumns + ` FROM guides WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanGuide(row)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all guides ordered by created_at descending (newest first).
func (r *pgGuideRepo) List(ctx context.Context) ([]domain.Guide, error) {
	const q = `SELECT ` + guideColumns + ` FROM guides ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.GuideRepo.List: %w", err)
	}
	defer rows.Close()

	guides := []domain.Guide{}
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.GuideRepo.List: scan: %w", err)
		}
		guides = append(guides, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.GuideRepo.List: rows: %w", err)
	}
	return guides, nil
}

func (r *pgGuideRepo) Update(ctx context.Context, guide domain.Guide) (domain.Guide, error) {
	const q = `
		UPDATE guides
		SET title         = @title,
		    description   = @description,
		    tags          = @tags,
		    location_type = @location_type,
		    location_id   = @location_id,
		    category      = @category,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + guideColumns

	args := pgx.NamedArgs{
		"id":            guide.ID,
		"title":         guide.Title,
		"description":   guide.Description,
		"tags":          guide.Tags,
		"location_type": guide.LocationType,
		"location_id":   guide.LocationID,
		"category":      guide.Category,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanGuide(row)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgGuideRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM guides WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.GuideRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.GuideRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// IncrementEngagement bumps the selected counter in a single UPDATE, so rapid
// concurrent clicks never lose increments. Likes and views are deliberately
// not deduplicated per user.
func (r *pgGuideRepo) IncrementEngagement(ctx context.Context, id uuid.UUID, kind domain.EngagementKind) (domain.Guide, error) {
	var q string
	switch kind {
	case domain.EngagementLike:
		q = `UPDATE guides SET likes_count = likes_count + 1 WHERE id = @id RETURNING ` + guideColumns
	case domain.EngagementView:
		q = `UPDATE guides SET views_count = views_count + 1 WHERE id = @id RETURNING ` + guideColumns
	default:
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.IncrementEngagement: unknown kind %q", kind)
	}

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanGuide(row)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.IncrementEngagement: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanGuide maps a single database row into a domain.Guide.
func scanGuide(s scanner) (domain.Guide, error) {
	var (
		g  domain.Guide
		id pgtype.UUID
	)

	err := s.Scan(&id, &g.Title, &g.Description, &g.Tags, &g.LocationType, &g.LocationID,
		&g.Category, &g.IsVerified, &g.LikesCount, &g.SavesCount, &g.ViewsCount,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Guide{}, domain.ErrNotFound
		}
		return domain.Guide{}, err
	}

	g.ID = uuid.UUID(id.Bytes)
	if g.Tags == nil {
		g.Tags = []string{}
	}
	return g, nil
}
