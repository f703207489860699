package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var banner = `
 _               _      _____     _ _
| |    __ _ _ __| | __ |_   _|_ _| | | __
| |   / _' | '__| |/ /   | |/ _' | | |/ /
| |__| (_| | |  |   <    | | (_| | |   <
|_____\__,_|_|  |_|\_\   |_|\__,_|_|_|\_\

      Where memories are created
`

type LoginScreen struct {
	*UI
	layout  *tview.Flex
	form    *tview.Form
	message *tview.TextView

	loginID  string
	password string
}

func (l *LoginScreen) build() {
	header := tview.NewTextView().
		SetText(banner).
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorAqua)

	l.form = tview.NewForm()
	l.form.AddInputField("Login", "", 0, nil, func(s string) { l.loginID = s })
	l.form.AddPasswordField("Password", "", 0, '*', func(s string) { l.password = s })
	l.form.AddButton("Sign in", func() {
		if l.cfg.LoginHandler != nil {
			l.cfg.LoginHandler(l.loginID, l.password)
		}
	})
	l.form.AddButton("Create profile", func() {
		l.ShowSignup()
	})
	l.form.SetButtonsAlign(tview.AlignCenter)
	l.form.SetBorder(true).SetTitle("[ Lark Talk ]").SetTitleAlign(tview.AlignCenter)

	l.message = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorYellow)

	formRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(l.form, 0, 2, true).
		AddItem(nil, 0, 1, false)

	l.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 9, 0, false).
		AddItem(formRow, 0, 2, true).
		AddItem(l.message, 1, 0, false).
		AddItem(nil, 0, 1, false)
}

// SetMessage updates the error line under the form.
func (l *LoginScreen) SetMessage(msg string) {
	l.message.SetText(msg)
}

// Reset clears the fields and the error line, used after logout.
func (l *LoginScreen) Reset() {
	l.loginID = ""
	l.password = ""
	l.form.GetFormItemByLabel("Login").(*tview.InputField).SetText("")
	l.form.GetFormItemByLabel("Password").(*tview.InputField).SetText("")
	l.message.SetText("")
}
