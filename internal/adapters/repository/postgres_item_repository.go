package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresItemRepository struct {
	db *sqlx.DB
}

func NewPostgresItemRepository(db *sqlx.DB) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresItemRepository) scanRow(row scannable) (*domain.TrackableItem, error) {
	var item domain.TrackableItem

	err := row.Scan(
		&item.ID, &item.UserID, &item.Title, &item.Subtitle, &item.Category,
		&item.Color, &item.CoverURI, &item.Progress, &item.Total,
		&item.StartDate, &item.CompletedDate, &item.SortOrder,
		&item.Version, &item.DeletedAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *PostgresItemRepository) Create(ctx context.Context, item *domain.TrackableItem) error {
	query := `
        INSERT INTO trackable_items (
            id, user_id, title, subtitle, category,
            color, cover_uri, progress, total,
            start_date, completed_date, sort_order,
            version, deleted_at, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5,
            $6, $7, $8, $9,
            $10, $11, $12,
            1, NULL, $13, $14
        )`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.Title, item.Subtitle, item.Category,
		item.Color, item.CoverURI, item.Progress, item.Total,
		item.StartDate, item.CompletedDate, item.SortOrder,
		item.CreatedAt, item.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert trackable item: %w", err)
	}

	item.Version = 1
	return nil
}

func (r *PostgresItemRepository) GetByID(ctx context.Context, id string) (*domain.TrackableItem, error) {
	query := `SELECT * FROM trackable_items WHERE id = $1 AND deleted_at IS NULL`

	row := r.db.QueryRowContext(ctx, query, id)

	item, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return item, nil
}

func (r *PostgresItemRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackableItem, error) {
	query := `
        SELECT * FROM trackable_items
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var items []*domain.TrackableItem

	for rows.Next() {
		item, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *PostgresItemRepository) Update(ctx context.Context, item *domain.TrackableItem) error {
	query := `
        UPDATE trackable_items SET
            title=$1, subtitle=$2, category=$3, color=$4, cover_uri=$5,
            progress=$6, total=$7, start_date=$8, completed_date=$9,
            sort_order=$10,
            updated_at=NOW(), version = version + 1
        WHERE id=$11 AND version=$12 AND deleted_at IS NULL
        RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		item.Title, item.Subtitle, item.Category, item.Color, item.CoverURI,
		item.Progress, item.Total, item.StartDate, item.CompletedDate,
		item.SortOrder,
		item.ID, item.Version,
	)

	var newVersion int
	var newUpdatedAt time.Time

	err := row.Scan(&newVersion, &newUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			existsQuery := `SELECT count(*) FROM trackable_items WHERE id = $1`
			var count int
			if checkErr := r.db.QueryRowContext(ctx, existsQuery, item.ID).Scan(&count); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}

			if count == 0 {
				return domain.ErrItemNotFound
			}
			return domain.ErrItemConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	item.Version = newVersion
	item.UpdatedAt = newUpdatedAt

	return nil
}

func (r *PostgresItemRepository) Delete(ctx context.Context, id string) error {
	query := `
        UPDATE trackable_items
        SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
        WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}
