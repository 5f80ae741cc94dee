package repository

import (
	"context"
	"errors"

	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
)

// CatalogRepository reads the users, categories and apps tables. All three
// are read-only from the portal's perspective; rows are edited by the
// administrative tooling, so parsing of role cells is deliberately lenient.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) UserByEmail(ctx context.Context, email string) (entity.User, error) {
	var (
		user    entity.User
		roleRaw string
	)

	q := `
	SELECT email, full_name, role_id, avatar_url
	FROM users
	WHERE email = $1
	`

	err := r.db.QueryRow(ctx, q, email).Scan(&user.Email, &user.FullName, &roleRaw, &user.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, entity.ErrNotFound
		}

		return user, err
	}

	user.Role = entity.ParseRole(roleRaw)

	return user, nil
}

// Categories returns all categories in table (source) order. Display
// ordering by sort_order is the service's concern so that ties keep this
// source order.
func (r *CatalogRepository) Categories(ctx context.Context) ([]entity.Category, error) {
	q := `
	SELECT category_id, category_name, icon_class, sort_order
	FROM categories
	ORDER BY seq
	`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []entity.Category

	for rows.Next() {
		var c entity.Category

		err = rows.Scan(&c.ID, &c.Name, &c.IconName, &c.SortOrder)
		if err != nil {
			return nil, err
		}

		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Apps returns the full catalog, active or not. Role visibility is applied
// by the service per requesting user.
func (r *CatalogRepository) Apps(ctx context.Context) ([]entity.AppItem, error) {
	q := `
	SELECT app_id, app_name, description, app_url, icon_url, icon_color, category_id, allowed_roles, is_active
	FROM apps
	ORDER BY seq
	`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []entity.AppItem

	for rows.Next() {
		var (
			a        entity.AppItem
			rolesRaw string
		)

		err = rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.URL,
			&a.IconURL, &a.IconColor, &a.CategoryID, &rolesRaw, &a.IsActive,
		)
		if err != nil {
			return nil, err
		}

		a.AllowedRoles = entity.SplitRoles(rolesRaw)

		apps = append(apps, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}
