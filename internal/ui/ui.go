// Package ui renders the client with tview. Screens are wired to the client
// core through the handler funcs in UIConfig; the UI itself holds no session
// or room state beyond what it is told to display.
package ui

import (
	"github.com/rivo/tview"

	"larktalk/internal/models"
)

// UIConfig carries the room catalog and the callbacks the screens invoke.
// Handlers that hit the network run asynchronously and push their UI updates
// through App.QueueUpdateDraw.
type UIConfig struct {
	Rooms []models.Room

	LoginHandler       func(login, password string)
	SignupHandler      func(draft models.RegistrationDraft)
	OpenRoomHandler    func(r models.Room)
	CloseRoomHandler   func()
	SendMessageHandler func(text string) bool
	LogoutHandler      func()
	ProfileHandler     func()
}

type UI struct {
	App   *tview.Application
	Pages *tview.Pages

	Login     *LoginScreen
	Signup    *SignupScreen
	Dashboard *DashboardScreen
	Chat      *ChatWindow

	cfg *UIConfig
}

func NewUI(cfg *UIConfig) *UI {
	ui := &UI{
		App: tview.NewApplication().EnableMouse(true),
		cfg: cfg,
	}

	ui.Login = &LoginScreen{UI: ui}
	ui.Login.build()
	ui.Signup = &SignupScreen{UI: ui}
	ui.Signup.build()
	ui.Dashboard = &DashboardScreen{UI: ui}
	ui.Dashboard.build()
	ui.Chat = &ChatWindow{UI: ui}
	ui.Chat.build()

	ui.Pages = tview.NewPages().
		AddPage("login", ui.Login.layout, true, true).
		AddPage("signup", ui.Signup.layout, true, false).
		AddPage("dashboard", ui.Dashboard.layout, true, false)

	ui.App.SetRoot(ui.Pages, true).SetFocus(ui.Pages)
	return ui
}

func (ui *UI) ShowLogin() {
	ui.Pages.SwitchToPage("login")
	ui.App.SetFocus(ui.Login.form)
}

func (ui *UI) ShowSignup() {
	ui.Signup.Reset()
	ui.Pages.SwitchToPage("signup")
	ui.App.SetFocus(ui.Signup.form)
}

func (ui *UI) ShowDashboard(nickname string) {
	ui.Dashboard.SetNickname(nickname)
	ui.Pages.SwitchToPage("dashboard")
	ui.App.SetFocus(ui.Dashboard.roomList)
}
