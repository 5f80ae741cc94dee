package repository

import (
	"context"
	"errors"

	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
)

// FavoritesRepository stores one row per email holding the whole favorite
// id set as a JSON-array cell. Reads and writes are whole-value: there is
// no row locking, so two sessions toggling concurrently race at
// read-modify-write granularity and the last write wins.
type FavoritesRepository struct {
	db *pgxpool.Pool
}

func NewFavoritesRepository(db *pgxpool.Pool) *FavoritesRepository {
	return &FavoritesRepository{db: db}
}

// IDsByEmail returns the stored favorite set. A missing row is
// entity.ErrNotFound; a malformed payload is an empty set, not an error.
func (r *FavoritesRepository) IDsByEmail(ctx context.Context, email string) ([]string, error) {
	var payload string

	q := `SELECT favorite_app_ids FROM favorites WHERE email = $1`

	err := r.db.QueryRow(ctx, q, email).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}

		return nil, err
	}

	return entity.ParseFavoriteIDs(payload), nil
}

// Save overwrites the user's favorite set, creating the row on first
// toggle.
func (r *FavoritesRepository) Save(ctx context.Context, email string, ids []string) error {
	q := `
	INSERT INTO favorites (email, favorite_app_ids)
	VALUES ($1, $2)
	ON CONFLICT (email) DO UPDATE SET favorite_app_ids = EXCLUDED.favorite_app_ids
	`

	_, err := r.db.Exec(ctx, q, email, entity.EncodeFavoriteIDs(ids))
	if err != nil {
		return err
	}

	return nil
}

// DeleteEmpty removes rows whose set is empty. Rows degrade to empty sets
// when a user toggles their last favorite off; this keeps the table from
// accumulating them.
func (r *FavoritesRepository) DeleteEmpty(ctx context.Context) (int64, error) {
	q := `DELETE FROM favorites WHERE favorite_app_ids IN ('', '[]')`

	result, err := r.db.Exec(ctx, q)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
