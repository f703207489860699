package ui

import (
	"time"

	"github.com/rivo/tview"
)

// ShowToast pops an informational modal. A positive duration auto-dismisses.
func (ui *UI) ShowToast(message string, duration time.Duration, onDismiss func()) {
	modal := tview.NewModal()
	modal.SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			ui.Pages.RemovePage("toast")
			if onDismiss != nil {
				onDismiss()
			}
		})

	ui.Pages.AddPage("toast", modal, true, true)
	ui.App.SetFocus(modal)

	if duration > 0 {
		go func() {
			time.Sleep(duration)
			ui.App.QueueUpdateDraw(func() {
				ui.Pages.RemovePage("toast")
				if onDismiss != nil {
					onDismiss()
				}
			})
		}()
	}
}

// ShowError pops an error modal that stays until dismissed.
func (ui *UI) ShowError(title string, message string) {
	modal := tview.NewModal()
	modal.SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			ui.Pages.RemovePage("error")
		})
	modal.SetTitle(title).SetTitleAlign(tview.AlignCenter).SetBorder(true)

	ui.Pages.AddPage("error", modal, true, true)
	ui.App.SetFocus(modal)
}
