package portalclient

import (
	"strings"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
)

type CategoryGroup struct {
	Category entity.Category
	Apps     []entity.AppItem
}

// View is the computed visible subset for one interaction state. Groups is
// populated only for the "all categories" dashboard (no category
// selected); a selected category renders flat from Filtered.
type View struct {
	Filtered []entity.AppItem
	Groups   []CategoryGroup
}

// ComputeView narrows the already role-filtered app list by selected
// category and search query, in that order. Role filtering is the
// server's job and is never repeated here. Search is a case-insensitive
// substring match over name and description.
func ComputeView(apps []entity.AppItem, categories []entity.Category, selectedCategoryID, query string) View {
	filtered := apps

	if selectedCategoryID != "" {
		narrowed := make([]entity.AppItem, 0, len(filtered))

		for _, app := range filtered {
			if app.CategoryID == selectedCategoryID {
				narrowed = append(narrowed, app)
			}
		}

		filtered = narrowed
	}

	if query != "" {
		q := strings.ToLower(query)
		narrowed := make([]entity.AppItem, 0, len(filtered))

		for _, app := range filtered {
			if strings.Contains(strings.ToLower(app.Name), q) ||
				strings.Contains(strings.ToLower(app.Description), q) {
				narrowed = append(narrowed, app)
			}
		}

		filtered = narrowed
	}

	view := View{Filtered: filtered}

	if selectedCategoryID == "" {
		view.Groups = groupByCategory(filtered, categories)
	}

	return view
}

// groupByCategory buckets apps under their category, in category sort
// order, skipping empty groups. Apps referencing an unknown category land
// in no group; they only appear in flat views.
func groupByCategory(apps []entity.AppItem, categories []entity.Category) []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(categories))

	for _, cat := range categories {
		var catApps []entity.AppItem

		for _, app := range apps {
			if app.CategoryID == cat.ID {
				catApps = append(catApps, app)
			}
		}

		if len(catApps) > 0 {
			groups = append(groups, CategoryGroup{Category: cat, Apps: catApps})
		}
	}

	return groups
}
