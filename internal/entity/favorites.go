package entity

import "encoding/json"

// Favorites are stored per user as a single JSON-array cell, written and
// read as a whole value. The helpers here keep that payload handling in
// one place: parsing is tolerant (a malformed cell means "no favorites",
// never a failed read) and toggling is a pure flip of membership.

// ParseFavoriteIDs decodes a favorites payload. An empty or unparsable
// payload yields an empty set.
func ParseFavoriteIDs(payload string) []string {
	if payload == "" {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(payload), &ids); err != nil {
		return []string{}
	}

	if ids == nil {
		return []string{}
	}

	return ids
}

func EncodeFavoriteIDs(ids []string) string {
	if ids == nil {
		ids = []string{}
	}

	b, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}

	return string(b)
}

func HasFavorite(ids []string, appID string) bool {
	for _, id := range ids {
		if id == appID {
			return true
		}
	}

	return false
}

// ToggleFavoriteID removes appID from ids if present, appends it otherwise.
// The input slice is not modified. No validation is done against the
// catalog: an id the user can no longer see can still be toggled off.
func ToggleFavoriteID(ids []string, appID string) []string {
	if HasFavorite(ids, appID) {
		next := make([]string, 0, len(ids)-1)

		for _, id := range ids {
			if id != appID {
				next = append(next, id)
			}
		}

		return next
	}

	next := make([]string, 0, len(ids)+1)
	next = append(next, ids...)
	next = append(next, appID)

	return next
}
