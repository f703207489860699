package ui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShowErrorBringsModalToFront(t *testing.T) {
	u := NewUI(&UIConfig{})
	u.ShowError("Sign in failed", "Server connection error.")

	require.True(t, u.Pages.HasPage("error"))
	name, _ := u.Pages.GetFrontPage()
	require.Equal(t, "error", name)
}

func TestShowToastWithoutDurationStays(t *testing.T) {
	u := NewUI(&UIConfig{})
	u.ShowToast("Profile is not available right now.", 0, nil)

	require.True(t, u.Pages.HasPage("toast"))
	name, _ := u.Pages.GetFrontPage()
	require.Equal(t, "toast", name)
}
