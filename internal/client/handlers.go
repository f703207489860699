package client

import (
	"errors"
	"time"

	"larktalk/internal/models"
	"larktalk/internal/session"
)

// LoginHandler runs the submit in the background; the session manager
// decides what the attempt means and the closure only paints the result.
func (cli *Client) LoginHandler(login, password string) {
	go func() {
		s, err := cli.Sessions.SubmitLogin(cli.ctx, login, password)
		cli.UI.App.QueueUpdateDraw(func() {
			if err != nil {
				// Credential mistakes stay on the message line; losing the
				// server additionally gets a dialog.
				cli.UI.Login.SetMessage(s.Message)
				if errors.Is(err, session.ErrConnectivity) || errors.Is(err, session.ErrServer) {
					cli.UI.ShowError("Sign in failed", s.Message)
				}
				return
			}
			if s.Status != session.StatusAuthenticated {
				// The attempt was superseded mid-flight (logout raced it);
				// nothing to paint.
				return
			}
			cli.enterDashboard()
		})
	}()
}

func (cli *Client) SignupHandler(draft models.RegistrationDraft) {
	go func() {
		violations, msg, err := cli.Sessions.SubmitSignup(cli.ctx, draft)
		cli.UI.App.QueueUpdateDraw(func() {
			if !violations.OK() {
				cli.UI.Signup.SetViolations(violations)
				return
			}
			cli.UI.Signup.SetServerMessage(msg, err == nil)
			if err == nil {
				// Brief pause so the success line is readable, then back
				// to the login screen.
				go func() {
					time.Sleep(time.Second)
					cli.UI.App.QueueUpdateDraw(cli.UI.ShowLogin)
				}()
			}
		})
	}()
}

func (cli *Client) OpenRoomHandler(r models.Room) {
	cli.UI.Chat.Open(r)
	cli.Rooms.OpenRoom(r)
}

func (cli *Client) CloseRoomHandler() {
	cli.Rooms.CloseRoom()
	cli.UI.Chat.Close()
}

func (cli *Client) SendMessageHandler(text string) bool {
	return cli.Rooms.SendMessage(text)
}

func (cli *Client) LogoutHandler() {
	cli.Sessions.Logout(cli.ctx)
	cli.Rooms.CloseRoom()
	cli.UI.Chat.Close()
	cli.UI.Login.Reset()
	cli.UI.ShowLogin()
}

// ProfileHandler shows the profile card, fetching it first if needed. A
// failed fetch degrades to a toast; it never logs the user out.
func (cli *Client) ProfileHandler() {
	if s := cli.Sessions.Session(); s.Profile != nil {
		cli.UI.ShowProfile(s.Profile)
		return
	}
	go func() {
		prof, err := cli.Sessions.FetchProfile(cli.ctx)
		cli.UI.App.QueueUpdateDraw(func() {
			if err != nil {
				cli.UI.ShowToast("Profile is not available right now.", 3*time.Second, nil)
				return
			}
			cli.UI.ShowProfile(prof)
		})
	}()
}

// enterDashboard switches to the room lobby and kicks off the lazy profile
// fetch. Profile failure is non-fatal by contract.
func (cli *Client) enterDashboard() {
	cli.UI.ShowDashboard(cli.Sessions.Nickname())
	go func() {
		if _, err := cli.Sessions.FetchProfile(cli.ctx); err != nil {
			// Logged by the manager; the welcome line keeps the login id.
			return
		}
		cli.UI.App.QueueUpdateDraw(func() {
			cli.UI.Dashboard.SetNickname(cli.Sessions.Nickname())
		})
	}()
}
