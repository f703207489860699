// Package models defines the global data models used across the application.
package models

// Message is one entry in the active room's buffer. Order is send order.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	IsSelf bool   `json:"is_self"`
}

// Senders used for the seeded welcome sequence when a room opens.
const (
	SenderSystem = "System"
	SenderBot    = "Bot"
)
