package entity

import "sort"

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IconName  string `json:"iconName"`
	SortOrder int    `json:"sortOrder"`
}

// SortCategories orders categories ascending by SortOrder. The sort is
// stable: equal SortOrder values keep their source (table) order.
func SortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})
}
