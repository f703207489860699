package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"larktalk/internal/models"
	"larktalk/internal/signup"
)

// fieldOrder keeps the violation lines aligned with the form layout.
var fieldOrder = []string{
	signup.FieldLogin,
	signup.FieldNickname,
	signup.FieldEmail,
	signup.FieldPassword,
}

type SignupScreen struct {
	*UI
	layout     *tview.Flex
	form       *tview.Form
	violations *tview.TextView
	serverMsg  *tview.TextView

	draft   models.RegistrationDraft
	current signup.Violations
}

func (s *SignupScreen) build() {
	header := tview.NewTextView().
		SetText("Create profile\n\nFirst step towards magic!").
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorAqua)

	s.current = signup.Violations{}

	s.form = tview.NewForm()
	s.form.AddInputField("Login", "", 0, nil, func(v string) {
		s.draft.Login = v
		s.fieldEdited(signup.FieldLogin)
	})
	s.form.AddInputField("Nickname", "", 0, nil, func(v string) {
		s.draft.Nickname = v
		s.fieldEdited(signup.FieldNickname)
	})
	s.form.AddInputField("Email", "", 0, nil, func(v string) {
		s.draft.Email = v
		s.fieldEdited(signup.FieldEmail)
	})
	s.form.AddPasswordField("Password", "", 0, '*', func(v string) {
		s.draft.Password = v
		s.fieldEdited(signup.FieldPassword)
	})
	s.form.AddButton("Create!", func() {
		s.serverMsg.SetText("")
		if s.cfg.SignupHandler != nil {
			s.cfg.SignupHandler(s.draft)
		}
	})
	s.form.AddButton("Sign in", func() {
		s.ShowLogin()
	})
	s.form.SetButtonsAlign(tview.AlignCenter)
	s.form.SetBorder(true).SetTitle("[ Create profile ]").SetTitleAlign(tview.AlignCenter)

	s.violations = tview.NewTextView().SetDynamicColors(true)
	s.serverMsg = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	formRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(s.form, 0, 2, true).
		AddItem(nil, 0, 1, false)

	violationRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(s.violations, 0, 2, false).
		AddItem(nil, 0, 1, false)

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 4, 0, false).
		AddItem(formRow, 13, 0, true).
		AddItem(violationRow, 0, 1, false).
		AddItem(s.serverMsg, 1, 0, false).
		AddItem(nil, 0, 1, false)
}

// fieldEdited clears only the edited field's violation; the rest of the set
// stays until the next submit.
func (s *SignupScreen) fieldEdited(field string) {
	if _, ok := s.current[field]; ok {
		s.current.Clear(field)
		s.renderViolations()
	}
}

// SetViolations replaces the rendered violation set after a submit attempt.
func (s *SignupScreen) SetViolations(v signup.Violations) {
	s.current = v
	s.renderViolations()
}

func (s *SignupScreen) renderViolations() {
	var b strings.Builder
	for _, field := range fieldOrder {
		if msg, ok := s.current[field]; ok {
			fmt.Fprintf(&b, "[red]%s:[-] %s\n", field, tview.Escape(msg))
		}
	}
	s.violations.SetText(b.String())
}

// SetServerMessage shows the signup outcome line, green on success, amber on
// failure.
func (s *SignupScreen) SetServerMessage(msg string, success bool) {
	color := "orange"
	if success {
		color = "green"
	}
	s.serverMsg.SetText(fmt.Sprintf("[%s]%s", color, tview.Escape(msg)))
}

// Reset clears the draft, the fields and any leftover messages.
func (s *SignupScreen) Reset() {
	s.draft = models.RegistrationDraft{}
	s.current = signup.Violations{}
	for _, label := range []string{"Login", "Nickname", "Email", "Password"} {
		s.form.GetFormItemByLabel(label).(*tview.InputField).SetText("")
	}
	s.violations.SetText("")
	s.serverMsg.SetText("")
}
