// Package signup validates registration drafts before submission. It is
// pure: no side effects, no network calls.
package signup

import (
	"regexp"
	"strings"

	"larktalk/internal/models"
)

// Field names, used as keys in a Violations map and by the UI to match
// inline labels to inputs.
const (
	FieldLogin    = "login"
	FieldNickname = "nickname"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Messages shown inline next to the offending field.
const (
	MsgRequired = "This field is required!"
	MsgLogin    = "Login must start from a letter (max 20 chars)."
	MsgNickname = "Nickname: 3-20 characters (letters, digits, -, _)."
	MsgEmail    = "Invalid email address!"
	MsgPassword = "Password: min. 8 characters, capital and small letter, digit and special character (no '.')."
)

var (
	loginRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.-]{0,19}$`)
	nicknameRe = regexp.MustCompile(`^[\w.-]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
)

// passwordSymbols is the only special-character set a password may use.
// Note '.' is allowed in logins and nicknames but not here.
const passwordSymbols = "@$!%*?&"

// Violations maps a field name to a human-readable message. An empty map
// means the draft is submittable.
type Violations map[string]string

// OK reports whether the draft may be submitted.
func (v Violations) OK() bool { return len(v) == 0 }

// Clear removes the violation for a single field. Editing a field clears
// only that field's entry, never the whole set.
func (v Violations) Clear(field string) { delete(v, field) }

// Validate applies the presence check first and the format check second.
// A field with a presence violation is not also checked for format.
func Validate(draft models.RegistrationDraft) Violations {
	v := Violations{}

	for field, value := range map[string]string{
		FieldLogin:    draft.Login,
		FieldNickname: draft.Nickname,
		FieldEmail:    draft.Email,
		FieldPassword: draft.Password,
	} {
		if value == "" {
			v[field] = MsgRequired
		}
	}

	if draft.Login != "" && !loginRe.MatchString(draft.Login) {
		v[FieldLogin] = MsgLogin
	}
	if draft.Nickname != "" && !nicknameRe.MatchString(draft.Nickname) {
		v[FieldNickname] = MsgNickname
	}
	if draft.Email != "" && !emailRe.MatchString(draft.Email) {
		v[FieldEmail] = MsgEmail
	}
	if draft.Password != "" && !validPassword(draft.Password) {
		v[FieldPassword] = MsgPassword
	}

	return v
}

// validPassword checks length, the required character classes and the
// restricted alphabet in a single pass. The equivalent regex needs
// lookaheads, which RE2 does not support.
func validPassword(pass string) bool {
	if len(pass) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pass {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}
