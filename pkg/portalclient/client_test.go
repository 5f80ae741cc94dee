package portalclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
	"github.com/longkeutn/cong-thong-tin-sht/pkg/portalclient"
)

func portalFixture() entity.PortalData {
	return entity.PortalData{
		User:       entity.User{Email: "sales@tbsgroup.vn", FullName: "NV Kinh doanh", Role: entity.RoleSales},
		Categories: testCategories(),
		Apps:       testApps(),
		Favorites:  []string{"app_salary"},
	}
}

func newPortalServer(t *testing.T, toggleStatus int, toggleFavorites []string) (*httptest.Server, *string) {
	t.Helper()

	var seenEmail string

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/portal", func(w http.ResponseWriter, r *http.Request) {
		seenEmail = r.Header.Get("X-Auth-Request-Email")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(portalFixture())
	})

	mux.HandleFunc("POST /api/favorites/toggle", func(w http.ResponseWriter, r *http.Request) {
		seenEmail = r.Header.Get("X-Auth-Request-Email")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(toggleStatus)
		_ = json.NewEncoder(w).Encode(map[string][]string{"favorites": toggleFavorites})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, &seenEmail
}

func TestClientPortalData(t *testing.T) {
	t.Parallel()

	server, seenEmail := newPortalServer(t, http.StatusOK, nil)

	c := portalclient.NewClient(server.URL, "sales@tbsgroup.vn")

	data, err := c.PortalData(context.Background())
	require.NoError(t, err)

	require.Equal(t, "sales@tbsgroup.vn", *seenEmail)
	require.Equal(t, "sales@tbsgroup.vn", data.User.Email)
	require.Len(t, data.Apps, 4)
	require.Equal(t, []string{"app_salary"}, data.Favorites)
}

func TestClientPortalDataUnavailable(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/portal", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c := portalclient.NewClient(server.URL, "sales@tbsgroup.vn")

	_, err := c.PortalData(context.Background())
	require.ErrorIs(t, err, entity.ErrDataUnavailable)
}

func TestClientToggleFavoriteOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		favorites     []string
		authoritative bool
	}{
		{"non-empty echo is authoritative", []string{"app_salary", "app_leave"}, true},
		// A degraded backend acknowledging without state must not read as
		// "favorites cleared".
		{"empty echo is unconfirmed", []string{}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			server, _ := newPortalServer(t, http.StatusOK, test.favorites)
			c := portalclient.NewClient(server.URL, "sales@tbsgroup.vn")

			outcome, err := c.ToggleFavorite(context.Background(), "app_leave")
			require.NoError(t, err)
			require.Equal(t, test.authoritative, outcome.IsAuthoritative())
		})
	}
}

func TestSessionToggleReconciles(t *testing.T) {
	t.Parallel()

	server, _ := newPortalServer(t, http.StatusOK, []string{"app_salary", "app_leave"})
	c := portalclient.NewClient(server.URL, "sales@tbsgroup.vn")

	session := portalclient.NewSession(c)
	require.NoError(t, session.Load(context.Background()))
	require.Equal(t, []string{"app_salary"}, session.Favorites())

	final := session.Toggle(context.Background(), "app_leave")
	require.Equal(t, []string{"app_salary", "app_leave"}, final)
}

func TestSessionToggleKeepsOptimisticStateOnFailure(t *testing.T) {
	t.Parallel()

	server, _ := newPortalServer(t, http.StatusBadGateway, nil)
	c := portalclient.NewClient(server.URL, "sales@tbsgroup.vn")

	session := portalclient.NewSession(c)
	require.NoError(t, session.Load(context.Background()))

	// The failed round-trip must not roll the visible toggle back.
	final := session.Toggle(context.Background(), "app_leave")
	require.Equal(t, []string{"app_salary", "app_leave"}, final)
	require.Equal(t, []string{"app_salary", "app_leave"}, session.Favorites())
}

func TestSessionFavoriteApps(t *testing.T) {
	t.Parallel()

	server, _ := newPortalServer(t, http.StatusOK, nil)
	c := portalclient.NewClient(server.URL, "sales@tbsgroup.vn")

	session := portalclient.NewSession(c)
	require.NoError(t, session.Load(context.Background()))

	favorites := session.FavoriteApps()
	require.Len(t, favorites, 1)
	require.Equal(t, "app_salary", favorites[0].ID)
}

func TestSessionView(t *testing.T) {
	t.Parallel()

	server, _ := newPortalServer(t, http.StatusOK, nil)
	c := portalclient.NewClient(server.URL, "sales@tbsgroup.vn")

	session := portalclient.NewSession(c)
	require.NoError(t, session.Load(context.Background()))

	view := session.View("", "lương")
	require.Equal(t, []string{"app_salary"}, appIDs(view.Filtered))
}
