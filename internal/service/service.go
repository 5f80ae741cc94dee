package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
)

type CatalogRepository interface {
	UserByEmail(ctx context.Context, email string) (entity.User, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	Apps(ctx context.Context) ([]entity.AppItem, error)
}

type FavoritesRepository interface {
	IDsByEmail(ctx context.Context, email string) ([]string, error)
	Save(ctx context.Context, email string, ids []string) error
	DeleteEmpty(ctx context.Context) (int64, error)
}

type EventPublisher interface {
	FavoriteToggled(ctx context.Context, email, appID string, favorited bool)
}

type Service struct {
	catalog   CatalogRepository
	favorites FavoritesRepository
	events    EventPublisher
}

func NewService(catalog CatalogRepository, favorites FavoritesRepository, events EventPublisher) *Service {
	return &Service{
		catalog:   catalog,
		favorites: favorites,
		events:    events,
	}
}

// PortalData assembles the per-session aggregate: resolved profile,
// sorted category list, role-filtered catalog and the user's favorite ids.
// Any store failure yields entity.ErrDataUnavailable with no partial
// result; an unknown (or empty) identity is the guest profile, not an
// error.
func (s *Service) PortalData(ctx context.Context, email string) (entity.PortalData, error) {
	user, err := s.resolveUser(ctx, email)
	if err != nil {
		return entity.PortalData{}, fmt.Errorf("%w: resolve user: %w", entity.ErrDataUnavailable, err)
	}

	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return entity.PortalData{}, fmt.Errorf("%w: load categories: %w", entity.ErrDataUnavailable, err)
	}

	entity.SortCategories(categories)

	apps, err := s.catalog.Apps(ctx)
	if err != nil {
		return entity.PortalData{}, fmt.Errorf("%w: load apps: %w", entity.ErrDataUnavailable, err)
	}

	visible := visibleApps(apps, user.Role)
	logOrphanApps(ctx, visible, categories)

	favoriteIDs, err := s.loadFavorites(ctx, user.Email)
	if err != nil {
		return entity.PortalData{}, fmt.Errorf("%w: load favorites: %w", entity.ErrDataUnavailable, err)
	}

	return entity.PortalData{
		User:       user,
		Categories: categories,
		Apps:       visible,
		Favorites:  favoriteIDs,
	}, nil
}

// ToggleFavorite flips appID in the user's stored favorite set and returns
// the resulting set, which is the caller's new authoritative state. The
// toggle is pure: no check that appID exists or is visible to the user, so
// an app hidden by a role change can still be toggled off. The
// read-modify-write is not atomic across sessions (last write wins).
func (s *Service) ToggleFavorite(ctx context.Context, email, appID string) ([]string, error) {
	current, err := s.favorites.IDsByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: read favorites: %w", entity.ErrSyncFailure, err)
		}

		current = []string{}
	}

	next := entity.ToggleFavoriteID(current, appID)

	err = s.favorites.Save(ctx, email, next)
	if err != nil {
		return nil, fmt.Errorf("%w: save favorites: %w", entity.ErrSyncFailure, err)
	}

	if s.events != nil {
		s.events.FavoriteToggled(ctx, email, appID, entity.HasFavorite(next, appID))
	}

	return next, nil
}

// CompactFavorites drops favorites rows that have degraded to the empty
// set. Run periodically from main.
func (s *Service) CompactFavorites(ctx context.Context) (int64, error) {
	return s.favorites.DeleteEmpty(ctx)
}

func (s *Service) resolveUser(ctx context.Context, email string) (entity.User, error) {
	if email == "" {
		return entity.GuestUser(""), nil
	}

	user, err := s.catalog.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.GuestUser(email), nil
		}

		return entity.User{}, err
	}

	return user, nil
}

func (s *Service) loadFavorites(ctx context.Context, email string) ([]string, error) {
	if email == "" {
		return []string{}, nil
	}

	ids, err := s.favorites.IDsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return []string{}, nil
		}

		return nil, err
	}

	return ids, nil
}

func visibleApps(apps []entity.AppItem, role entity.Role) []entity.AppItem {
	visible := make([]entity.AppItem, 0, len(apps))

	for _, app := range apps {
		if !app.VisibleTo(role) {
			continue
		}

		if app.IconURL == "" && app.IconColor == "" {
			app.IconColor = entity.DefaultIconColor
		}

		visible = append(visible, app)
	}

	return visible
}

// logOrphanApps warns about catalog entries referencing a category that
// does not exist: they render in flat views but vanish from the grouped
// dashboard, which is easy to miss when editing the catalog.
func logOrphanApps(ctx context.Context, apps []entity.AppItem, categories []entity.Category) {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}

	for _, app := range apps {
		if _, ok := known[app.CategoryID]; !ok {
			slog.WarnContext(ctx, "app references unknown category",
				"app_id", app.ID, "category_id", app.CategoryID)
		}
	}
}
