package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"larktalk/internal/models"
)

type DashboardScreen struct {
	*UI
	layout   *tview.Flex
	welcome  *tview.TextView
	roomList *tview.List
}

func (d *DashboardScreen) build() {
	d.welcome = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	profileBtn := tview.NewButton("Profile").SetSelectedFunc(func() {
		if d.cfg.ProfileHandler != nil {
			d.cfg.ProfileHandler()
		}
	})
	logoutBtn := tview.NewButton("Log out").SetSelectedFunc(d.showLogoutConfirm)

	menu := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(d.welcome, 0, 1, false).
		AddItem(profileBtn, 12, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(logoutBtn, 12, 0, false)

	title := tview.NewTextView().
		SetText("Select room").
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorAqua)

	d.roomList = tview.NewList()
	d.roomList.SetHighlightFullLine(true)
	for _, rm := range d.cfg.Rooms {
		rm := rm
		d.roomList.AddItem(rm.DisplayName, rm.IconRef, 0, func() {
			if d.cfg.OpenRoomHandler != nil {
				d.cfg.OpenRoomHandler(rm)
			}
		})
	}
	d.roomList.SetBorder(true).SetBorderPadding(1, 1, 2, 2)

	listRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(d.roomList, 0, 2, true).
		AddItem(nil, 0, 1, false)

	d.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(menu, 1, 0, false).
		AddItem(title, 3, 0, false).
		AddItem(listRow, 0, 1, true)
}

func (d *DashboardScreen) SetNickname(nickname string) {
	d.welcome.SetText(fmt.Sprintf("Welcome, [::b]%s", tview.Escape(nickname)))
}

func (d *DashboardScreen) showLogoutConfirm() {
	modal := tview.NewModal().
		SetText("Do you wish to exit?\n\nYou will get logged out").
		AddButtons([]string{"Cancel", "Log out"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			d.Pages.RemovePage("logoutConfirm")
			if buttonLabel == "Log out" && d.cfg.LogoutHandler != nil {
				d.cfg.LogoutHandler()
			}
		})
	d.Pages.AddPage("logoutConfirm", modal, true, true)
	d.App.SetFocus(modal)
}

// ShowProfile renders the profile card. The caller only invokes this once a
// profile fetch has succeeded; until then the panel stays unavailable.
func (ui *UI) ShowProfile(p *models.Profile) {
	text := fmt.Sprintf(
		"%s\n%s\n\nLogin: %s\nEmail: %s\nCreated at: %s",
		p.Nickname, p.Roles, p.Login, p.Email, p.CreatedAt.Format("02 Jan 2006"),
	)
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			ui.Pages.RemovePage("profile")
		})
	ui.Pages.AddPage("profile", modal, true, true)
	ui.App.SetFocus(modal)
}
