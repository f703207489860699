package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"larktalk/internal/models"
)

// ChatWindow overlays the dashboard while a room is open. It displays, it
// does not own: the message buffer lives in the room controller and is
// pushed here on every append.
type ChatWindow struct {
	*UI
	layout   *tview.Flex
	overlay  *tview.Flex
	messages *tview.List
	input    *tview.InputField
}

func (c *ChatWindow) build() {
	c.messages = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFocusOnly(true)
	c.messages.SetBorder(true).SetBorderPadding(1, 1, 2, 2)

	c.input = tview.NewInputField().
		SetPlaceholder("Write a message...").
		SetFieldWidth(0)
	c.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		if c.cfg.SendMessageHandler != nil && c.cfg.SendMessageHandler(c.input.GetText()) {
			// Cleared only when something was actually appended.
			c.input.SetText("")
		}
	})
	c.input.SetBorder(true)

	c.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(c.messages, 0, 1, false).
		AddItem(c.input, 3, 0, true)
	c.layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			if c.cfg.CloseRoomHandler != nil {
				c.cfg.CloseRoomHandler()
			}
			return nil
		}
		return event
	})

	c.overlay = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(c.layout, 0, 10, true).
			AddItem(nil, 0, 1, false), 0, 8, true).
		AddItem(nil, 0, 1, false)
}

// Open shows the window for a room. The message list is filled by Refresh.
func (c *ChatWindow) Open(r models.Room) {
	c.messages.Clear()
	c.messages.SetTitle(fmt.Sprintf("[ %s ]", r.DisplayName))
	c.input.SetText("")
	c.Pages.AddPage("chat", c.overlay, true, true)
	c.App.SetFocus(c.input)
}

// Close removes the window. Safe to call when it is not showing.
func (c *ChatWindow) Close() {
	c.Pages.RemovePage("chat")
	c.App.SetFocus(c.Dashboard.roomList)
}

// Refresh replaces the rendered buffer and brings the newest message into
// view. It runs on every buffer mutation and only then.
func (c *ChatWindow) Refresh(msgs []models.Message) {
	c.messages.Clear()
	for _, m := range msgs {
		senderColor := "yellow"
		if m.IsSelf {
			senderColor = "green"
		}
		line := fmt.Sprintf("[%s]%s:[-] %s", senderColor, tview.Escape(m.Sender), tview.Escape(m.Text))
		c.messages.AddItem(line, "", 0, nil)
	}
	if n := c.messages.GetItemCount(); n > 0 {
		c.messages.SetCurrentItem(n - 1)
	}
}
