package room

import "larktalk/internal/models"

// Catalog returns the shipped room list. The entries are fixed at build time
// and not editable at runtime.
func Catalog() []models.Room {
	return []models.Room{
		{ID: "1", DisplayName: "All in One!", IconRef: "just_chatting"},
		{ID: "2", DisplayName: "History", IconRef: "history"},
		{ID: "3", DisplayName: "Programming", IconRef: "programming"},
		{ID: "4", DisplayName: "Video games", IconRef: "games"},
	}
}
