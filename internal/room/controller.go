// Package room owns the transient state of one open chat room: which room is
// active and its in-memory message buffer. At most one room session is live
// at a time; the buffer is discarded on close and never persisted. This
// component never contacts the network.
package room

import (
	"fmt"
	"strings"
	"sync"

	"larktalk/internal/models"
)

// NicknameFunc supplies the sender name for outgoing messages. It is the
// only piece of session identity the controller sees, injected read-only.
type NicknameFunc func() string

// Controller is the room session state machine. Out-of-order UI events are
// benign: closing with nothing open and sending with no active room are
// no-ops, not errors.
type Controller struct {
	mu       sync.Mutex
	active   *models.Room
	messages []models.Message

	nickname NicknameFunc
	onAppend func()
}

func NewController(nickname NicknameFunc) *Controller {
	return &Controller{nickname: nickname}
}

// SetAppendHook registers fn to run after every buffer mutation: once per
// open seed, once per sent message. The UI uses it to bring the newest
// message into view; it never fires on unrelated redraws.
func (c *Controller) SetAppendHook(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAppend = fn
}

// OpenRoom makes r the active room, implicitly closing (and discarding the
// buffer of) any room already open, and seeds the welcome sequence. History
// retrieval is a future collaborator; opening seeds only the two notices.
func (c *Controller) OpenRoom(r models.Room) {
	c.mu.Lock()
	c.active = &r
	c.messages = []models.Message{
		{Sender: models.SenderSystem, Text: fmt.Sprintf("Welcome in %s chat!", r.DisplayName)},
		{Sender: models.SenderBot, Text: "Remember to be kind :)"},
	}
	hook := c.onAppend
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// CloseRoom discards the buffer and clears the active room. Idempotent.
func (c *Controller) CloseRoom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = nil
	c.messages = nil
}

// SendMessage appends an own-message to the buffer. A whitespace-only text
// is silently ignored, as is a send with no active room; the return value
// reports whether anything was appended (callers clear their input buffer
// only then).
func (c *Controller) SendMessage(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return false
	}
	c.messages = append(c.messages, models.Message{
		Sender: c.nickname(),
		Text:   text,
		IsSelf: true,
	})
	hook := c.onAppend
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
	return true
}

// ActiveRoom returns a copy of the open room, or nil.
func (c *Controller) ActiveRoom() *models.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	r := *c.active
	return &r
}

// Messages returns a copy of the buffer in send order.
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}
