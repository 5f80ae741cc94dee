package portalclient

import "github.com/longkeutn/cong-thong-tin-sht/internal/entity"

// FavoriteDisplayLimit is the number of quick-access slots the dashboard
// shows. It is a display hint only: toggling past it is allowed and the
// full set is stored.
const FavoriteDisplayLimit = 6

// ToggleOutcome is the result of one toggle round-trip. Either the backend
// echoed an authoritative set, or the write was (at most) acknowledged and
// local state stands.
type ToggleOutcome struct {
	authoritative bool
	ids           []string
}

func Authoritative(ids []string) ToggleOutcome {
	return ToggleOutcome{authoritative: true, ids: ids}
}

func Unconfirmed() ToggleOutcome {
	return ToggleOutcome{}
}

func (o ToggleOutcome) IsAuthoritative() bool { return o.authoritative }

// ApplyToggle is the optimistic step: flip membership locally before the
// round-trip so the UI reflects the change with zero latency. The input
// slice is not modified.
func ApplyToggle(favorites []string, appID string) []string {
	return entity.ToggleFavoriteID(favorites, appID)
}

// Reconcile folds the round-trip result back into local state. An
// authoritative outcome replaces local state unconditionally; an
// unconfirmed one keeps it, deliberately favoring not reverting a
// user-visible action over trusting a silent backend.
func Reconcile(local []string, outcome ToggleOutcome) []string {
	if outcome.authoritative {
		final := make([]string, len(outcome.ids))
		copy(final, outcome.ids)

		return final
	}

	return local
}
