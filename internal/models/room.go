package models

// Room is a static catalog entry. The shipped catalog is fixed at build time
// and is not user-editable at runtime.
type Room struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	IconRef     string `json:"icon"`
}
