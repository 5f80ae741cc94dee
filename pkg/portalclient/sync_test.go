package portalclient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/longkeutn/cong-thong-tin-sht/pkg/portalclient"
)

func TestApplyToggle(t *testing.T) {
	t.Parallel()

	local := []string{"app_salary", "app_travel"}

	added := portalclient.ApplyToggle(local, "app_leave")
	require.Equal(t, []string{"app_salary", "app_travel", "app_leave"}, added)

	removed := portalclient.ApplyToggle(local, "app_salary")
	require.Equal(t, []string{"app_travel"}, removed)

	// The session's previous value is untouched.
	require.Equal(t, []string{"app_salary", "app_travel"}, local)
}

func TestApplyToggleInvolution(t *testing.T) {
	t.Parallel()

	local := []string{"app_salary", "app_travel"}

	twice := portalclient.ApplyToggle(portalclient.ApplyToggle(local, "app_leave"), "app_leave")
	require.ElementsMatch(t, local, twice)
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	// Local {A, B} plus an optimistic toggle of C.
	local := portalclient.ApplyToggle([]string{"app_a", "app_b"}, "app_c")
	require.Equal(t, []string{"app_a", "app_b", "app_c"}, local)

	tests := []struct {
		name    string
		outcome portalclient.ToggleOutcome
		want    []string
	}{
		{
			// The backend answered with data: it wins unconditionally,
			// even where it disagrees with the optimistic view.
			name:    "authoritative replaces local",
			outcome: portalclient.Authoritative([]string{"app_a", "app_c"}),
			want:    []string{"app_a", "app_c"},
		},
		{
			// A degraded backend acknowledged without echoing state: the
			// user's visible action is not reverted.
			name:    "unconfirmed keeps optimistic state",
			outcome: portalclient.Unconfirmed(),
			want:    []string{"app_a", "app_b", "app_c"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			final := portalclient.Reconcile(local, test.outcome)
			require.Equal(t, test.want, final)
		})
	}
}

func TestReconcileCopiesAuthoritativeSet(t *testing.T) {
	t.Parallel()

	backend := []string{"app_a"}
	final := portalclient.Reconcile([]string{"app_b"}, portalclient.Authoritative(backend))

	final = portalclient.ApplyToggle(final, "app_z")
	require.Equal(t, []string{"app_a"}, backend)
	require.Equal(t, []string{"app_a", "app_z"}, final)
}

func TestToggleOutcome(t *testing.T) {
	t.Parallel()

	require.True(t, portalclient.Authoritative([]string{"app_a"}).IsAuthoritative())
	require.False(t, portalclient.Unconfirmed().IsAuthoritative())
}
