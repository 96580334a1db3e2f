package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/litoralhub/backend/internal/domain"
)

// SaveRepo defines the persistence operations for the user/guide save relation.
type SaveRepo interface {
	// Toggle flips the saved state of a guide for a user. If the relation
	// exists it is removed and saves_count decremented (floored at 0);
	// otherwise it is created and saves_count incremented. Both changes
	// happen in one transaction so the counter and the relation rows can
	// never drift apart.
	// Returns domain.ErrNotFound if the guide does not exist.
	Toggle(ctx context.Context, guideID, userID uuid.UUID) (domain.SaveResult, error)

	// IsSaved reports whether the user has saved the guide.
	IsSaved(ctx context.Context, guideID, userID uuid.UUID) (bool, error)

	// ListByUser returns the guides a user has saved, most recently saved first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Guide, error)
}

// pgSaveRepo is the Postgres implementation of SaveRepo.
type pgSaveRepo struct {
	db db
}

// NewSaveRepo constructs a SaveRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx — Begin on a
// transaction opens a savepoint, so rollback isolation still works.
func NewSaveRepo(db db) SaveRepo {
	return &pgSaveRepo{db: db}
}

// Toggle removes or creates the save relation and adjusts the denormalized
// counter in the same transaction.
func (r *pgSaveRepo) Toggle(ctx context.Context, guideID, userID uuid.UUID) (domain.SaveResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.SaveResult{}, fmt.Errorf("repo.SaveRepo.Toggle: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `DELETE FROM guide_saves WHERE guide_id = @guide_id AND user_id = @user_id`
	args := pgx.NamedArgs{"guide_id": guideID, "user_id": userID}

	delTag, err := tx.Exec(ctx, del, args)
	if err != nil {
		return domain.SaveResult{}, fmt.Errorf("repo.SaveRepo.Toggle: delete: %w", err)
	}

	result := domain.SaveResult{}
	if delTag.RowsAffected() > 0 {
		// Relation existed — the toggle is an unsave.
		const dec = `
			UPDATE guides
			SET saves_count = GREATEST(saves_count - 1, 0)
			WHERE id = @guide_id
			RETURNING saves_count`
		if err := tx.QueryRow(ctx, dec, args).Scan(&result.SavesCount); err != nil {
			return domain.SaveResult{}, fmt.Errorf("repo.SaveRepo.Toggle: decrement: %w", toggleErr(err))
		}
	} else {
		const ins = `INSERT INTO guide_saves (guide_id, user_id) VALUES (@guide_id, @user_id)`
		if _, err := tx.Exec(ctx, ins, args); err != nil {
			return domain.SaveResult{}, fmt.Errorf("repo.SaveRepo.Toggle: insert: %w", toggleErr(err))
		}
		const inc = `
			UPDATE guides
			SET saves_count = saves_count + 1
			WHERE id = @guide_id
			RETURNING saves_count`
		if err := tx.QueryRow(ctx, inc, args).Scan(&result.SavesCount); err != nil {
			return domain.SaveResult{}, fmt.Errorf("repo.SaveRepo.Toggle: increment: %w", toggleErr(err))
		}
		result.Saved = true
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.SaveResult{}, fmt.Errorf("repo.SaveRepo.Toggle: commit: %w", err)
	}
	return result, nil
}

func (r *pgSaveRepo) IsSaved(ctx context.Context, guideID, userID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM guide_saves WHERE guide_id = @guide_id AND user_id = @user_id)`

	var saved bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"guide_id": guideID, "user_id": userID}).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("repo.SaveRepo.IsSaved: %w", err)
	}
	return saved, nil
}

// ListByUser returns the saved guides joined through the relation table,
// most recently saved first.
func (r *pgSaveRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Guide, error) {
	const q = `
		SELECT g.id, g.title, g.description, g.tags, g.location_type, g.location_id,
		       g.category, g.is_verified, g.likes_count, g.saves_count, g.views_count,
		       g.created_at, g.updated_at
		FROM guides g
		JOIN guide_saves gs ON gs.guide_id = g.id
		WHERE gs.user_id = @user_id
		ORDER BY gs.created_at DESC, g.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.SaveRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	guides := []domain.Guide{}
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SaveRepo.ListByUser: scan: %w", err)
		}
		guides = append(guides, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SaveRepo.ListByUser: rows: %w", err)
	}
	return guides, nil
}

// toggleErr maps "no guide row" conditions inside the toggle transaction to
// domain.ErrNotFound. A foreign-key violation on insert and an empty
// RETURNING on the counter update both mean the guide is gone.
func toggleErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
		return domain.ErrNotFound
	}
	return err
}
