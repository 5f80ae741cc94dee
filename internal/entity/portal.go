package entity

// PortalData is the aggregate served to a session at load time: the
// resolved profile, the full category list, the role-filtered catalog and
// the user's favorite app ids.
type PortalData struct {
	User       User       `json:"user"`
	Categories []Category `json:"categories"`
	Apps       []AppItem  `json:"apps"`
	Favorites  []string   `json:"favorites"`
}
