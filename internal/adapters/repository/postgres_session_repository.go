package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Create(ctx context.Context, session *domain.ProgressSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	query := `
		INSERT INTO progress_sessions (
			id, item_id, user_id,
			value, duration, date, notes,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :item_id, :user_id,
			:value, :duration, :date, :notes,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced item or user does not exist")
			}
			if pqErr.Code == "23505" {
				return domain.ErrSessionConflict
			}
		}
		return err
	}
	return nil
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*domain.ProgressSession, error) {
	var session domain.ProgressSession
	query := `SELECT * FROM progress_sessions WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *PostgresSessionRepository) ListByItemID(ctx context.Context, itemID string, from, to time.Time) ([]*domain.ProgressSession, error) {
	sessions := []*domain.ProgressSession{}

	query := `
		SELECT * FROM progress_sessions
		WHERE item_id = $1
		  AND date >= $2
		  AND date <= $3
		  AND deleted_at IS NULL
		ORDER BY date DESC`

	err := r.db.SelectContext(ctx, &sessions, query, itemID, from, to)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *PostgresSessionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.ProgressSession, error) {
	sessions := []*domain.ProgressSession{}

	query := `
		SELECT * FROM progress_sessions
		WHERE user_id = $1
		  AND deleted_at IS NULL
		ORDER BY date DESC`

	err := r.db.SelectContext(ctx, &sessions, query, userID)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *PostgresSessionRepository) Update(ctx context.Context, session *domain.ProgressSession) error {
	session.Version++
	session.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE progress_sessions
		SET value = :value,
		    duration = :duration,
		    date = :date,
		    notes = :notes,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1  -- Optimistic Lock check
		  AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, session.ID)
		if !exists {
			return domain.ErrSessionNotFound
		}
		return domain.ErrSessionConflict
	}

	return nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE progress_sessions
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3 -- Security Check
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (r *PostgresSessionRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM progress_sessions WHERE id = $1", id)
	return count > 0, err
}
