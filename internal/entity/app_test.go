package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
)

func TestSplitRoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []entity.Role
	}{
		{"single role", "All", []entity.Role{entity.RoleAll}},
		{"several roles with spaces", "Admin, HR ,Factory", []entity.Role{entity.RoleAdmin, entity.RoleHR, entity.RoleFactory}},
		{"inconsistent casing normalized", "admin,SALES", []entity.Role{entity.RoleAdmin, entity.RoleSales}},
		{"duplicates kept, harmless", "All,All", []entity.Role{entity.RoleAll, entity.RoleAll}},
		{"blank segments dropped", "Admin,,  ,HR", []entity.Role{entity.RoleAdmin, entity.RoleHR}},
		{"empty cell", "", []entity.Role{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, test.want, entity.SplitRoles(test.raw))
		})
	}
}

func TestVisibleTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		app     entity.AppItem
		role    entity.Role
		visible bool
	}{
		{
			name:    "wildcard visible to any role",
			app:     entity.AppItem{AllowedRoles: []entity.Role{entity.RoleAll}, IsActive: true},
			role:    entity.RoleSales,
			visible: true,
		},
		{
			name:    "wildcard visible to guest",
			app:     entity.AppItem{AllowedRoles: []entity.Role{entity.RoleAll}, IsActive: true},
			role:    entity.RoleGuest,
			visible: true,
		},
		{
			name:    "direct role match",
			app:     entity.AppItem{AllowedRoles: []entity.Role{entity.RoleAdmin, entity.RoleHR}, IsActive: true},
			role:    entity.RoleHR,
			visible: true,
		},
		{
			name:    "match is case-insensitive both sides",
			app:     entity.AppItem{AllowedRoles: []entity.Role{entity.Role("sales")}, IsActive: true},
			role:    entity.Role("SALES"),
			visible: true,
		},
		{
			name:    "no role intersection",
			app:     entity.AppItem{AllowedRoles: []entity.Role{entity.RoleAdmin, entity.RoleHR}, IsActive: true},
			role:    entity.RoleSales,
			visible: false,
		},
		{
			name:    "inactive hides even wildcard",
			app:     entity.AppItem{AllowedRoles: []entity.Role{entity.RoleAll}, IsActive: false},
			role:    entity.RoleAdmin,
			visible: false,
		},
		{
			name:    "guest matches nothing but wildcard",
			app:     entity.AppItem{AllowedRoles: []entity.Role{entity.RoleAdmin, entity.RoleHR, entity.RoleFactory, entity.RoleSales}, IsActive: true},
			role:    entity.RoleGuest,
			visible: false,
		},
		{
			name:    "no roles at all",
			app:     entity.AppItem{IsActive: true},
			role:    entity.RoleAdmin,
			visible: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, test.visible, test.app.VisibleTo(test.role))
		})
	}
}

func TestSortCategoriesStable(t *testing.T) {
	t.Parallel()

	categories := []entity.Category{
		{ID: "cat_plan", SortOrder: 7},
		{ID: "cat_admin", SortOrder: 1},
		{ID: "cat_tied_first", SortOrder: 3},
		{ID: "cat_tied_second", SortOrder: 3},
	}

	entity.SortCategories(categories)

	require.Equal(t, "cat_admin", categories[0].ID)
	// Equal sort orders keep source order.
	require.Equal(t, "cat_tied_first", categories[1].ID)
	require.Equal(t, "cat_tied_second", categories[2].ID)
	require.Equal(t, "cat_plan", categories[3].ID)
}
