package portalclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
)

// Session holds one user's loaded portal state and owns the favorites
// value: mutation happens only through Toggle (optimistic apply, then
// reconcile), never by direct assignment. Single-session only; another
// session toggling the same account diverges until its next Load.
type Session struct {
	client *Client

	user       entity.User
	categories []entity.Category
	apps       []entity.AppItem
	favorites  []string
}

func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Load performs the startup fetch. On failure no partial state is kept.
func (s *Session) Load(ctx context.Context) error {
	data, err := s.client.PortalData(ctx)
	if err != nil {
		return fmt.Errorf("load portal data: %w", err)
	}

	s.user = data.User
	s.categories = data.Categories
	s.apps = data.Apps
	s.favorites = data.Favorites

	return nil
}

func (s *Session) User() entity.User { return s.user }

func (s *Session) Favorites() []string { return s.favorites }

// View computes the visible subset for the current interaction state.
// Purely local; no backend call.
func (s *Session) View(selectedCategoryID, query string) View {
	return ComputeView(s.apps, s.categories, selectedCategoryID, query)
}

// FavoriteApps resolves the favorite set against the visible catalog, in
// catalog order. Ids hidden by a role change stay in the set but resolve
// to nothing.
func (s *Session) FavoriteApps() []entity.AppItem {
	favorites := make([]entity.AppItem, 0, len(s.favorites))

	for _, app := range s.apps {
		if entity.HasFavorite(s.favorites, app.ID) {
			favorites = append(favorites, app)
		}
	}

	return favorites
}

// Toggle flips a favorite optimistically, runs the round-trip and
// reconciles. A failed round-trip keeps the optimistic state (no
// rollback): the next authoritative fetch corrects any divergence, and
// reverting a visible toggle without explanation is worse than a
// possibly-unsynced one.
func (s *Session) Toggle(ctx context.Context, appID string) []string {
	s.favorites = ApplyToggle(s.favorites, appID)

	outcome, err := s.client.ToggleFavorite(ctx, appID)
	if err != nil {
		slog.WarnContext(ctx, "favorite toggle not confirmed", "app_id", appID, "error", err.Error())
		return s.favorites
	}

	s.favorites = Reconcile(s.favorites, outcome)

	return s.favorites
}
