// Package client wires the UI to the session manager and the room
// controller. UI callbacks land here; anything that touches the network runs
// in a goroutine and pushes its screen updates through QueueUpdateDraw.
package client

import (
	"context"

	"larktalk/internal/api"
	"larktalk/internal/config"
	"larktalk/internal/logx"
	"larktalk/internal/room"
	"larktalk/internal/session"
	"larktalk/internal/storage"
	"larktalk/internal/ui"
)

type Client struct {
	UI       *ui.UI
	Sessions *session.Manager
	Rooms    *room.Controller

	ctx context.Context
}

// StartClientApp builds the whole client and runs the UI loop until exit.
func StartClientApp(cfg *config.Config) error {
	ctx := context.Background()

	store, err := storage.InitStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	apiClient := api.NewClient(cfg.APIURL, 0)
	mgr := session.NewManager(apiClient, store, session.Config{
		TrustPersistedToken: cfg.TrustPersistedToken,
	})

	cli := &Client{
		Sessions: mgr,
		Rooms:    room.NewController(mgr.Nickname),
		ctx:      ctx,
	}

	cli.UI = ui.NewUI(&ui.UIConfig{
		Rooms:              room.Catalog(),
		LoginHandler:       cli.LoginHandler,
		SignupHandler:      cli.SignupHandler,
		OpenRoomHandler:    cli.OpenRoomHandler,
		CloseRoomHandler:   cli.CloseRoomHandler,
		SendMessageHandler: cli.SendMessageHandler,
		LogoutHandler:      cli.LogoutHandler,
		ProfileHandler:     cli.ProfileHandler,
	})

	// Every buffer mutation re-renders the chat window and brings the
	// newest message into view. Appends only ever happen on the UI
	// goroutine, so this is a direct call.
	cli.Rooms.SetAppendHook(func() {
		cli.UI.Chat.Refresh(cli.Rooms.Messages())
	})

	if s := mgr.Rehydrate(ctx); s.Status == session.StatusAuthenticated {
		cli.enterDashboard()
	}

	logx.Info("client starting", "api_url", cfg.APIURL)
	return cli.UI.App.Run()
}
