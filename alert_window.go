package main

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

// AlertWindow is the notification render surface: a window showing the
// active batch with one large confirm button. The alarm cue itself is
// owned by the scheduler's alarm driver, not the window.
type AlertWindow struct {
	window    fyne.Window
	app       fyne.App
	active    models.ActiveNotification
	onConfirm func()
}

// NewAlertWindow builds a window for the active notification. onConfirm is
// forwarded to the acknowledgement handler when the user taps confirm.
// Must be called on the Fyne UI thread.
func NewAlertWindow(app fyne.App, active models.ActiveNotification, onConfirm func()) *AlertWindow {
	aw := &AlertWindow{
		app:       app,
		active:    active,
		onConfirm: onConfirm,
	}

	aw.window = app.NewWindow("Care Reminder")
	aw.window.Resize(fyne.NewSize(420, 320))
	aw.window.CenterOnScreen()
	aw.buildUI()

	return aw
}

func (aw *AlertWindow) buildUI() {
	headerText := "REMINDER"
	headerColor := color.NRGBA{R: 0xd9, G: 0x53, B: 0x4f, A: 0xff}
	if aw.active.Category == models.CategoryHealth {
		headerText = "HEALTH ALERT"
		headerColor = color.NRGBA{R: 0xb0, G: 0x1e, B: 0x1e, A: 0xff}
	}

	header := canvas.NewText(headerText, headerColor)
	header.TextSize = 20
	header.TextStyle = fyne.TextStyle{Bold: true}
	header.Alignment = fyne.TextAlignCenter

	titleText := aw.active.PrimaryTitle()
	if extra := aw.active.Count() - 1; extra > 0 {
		titleText = fmt.Sprintf("%s (+%d more)", titleText, extra)
	}
	title := canvas.NewText(titleText, nil)
	title.TextSize = 32
	title.Alignment = fyne.TextAlignCenter

	detail := widget.NewLabel(aw.detailText())
	detail.Wrapping = fyne.TextWrapWord
	detail.Alignment = fyne.TextAlignCenter

	confirmButton := widget.NewButton("CONFIRM", func() {
		if aw.onConfirm != nil {
			aw.onConfirm()
		}
	})
	confirmButton.Importance = widget.HighImportance
	if aw.active.Category == models.CategoryHealth {
		confirmButton.Importance = widget.DangerImportance
	}

	content := container.NewVBox(
		container.NewPadded(header),
		container.NewPadded(title),
		widget.NewSeparator(),
		container.NewPadded(detail),
		widget.NewSeparator(),
		confirmButton,
	)

	aw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func (aw *AlertWindow) detailText() string {
	switch aw.active.Category {
	case models.CategoryCalendar:
		if len(aw.active.Events) > 0 {
			event := aw.active.Events[0]
			return fmt.Sprintf("%s\nAt %s", event.Description, event.Time)
		}
	case models.CategoryHealth:
		if len(aw.active.Alerts) > 0 {
			alert := aw.active.Alerts[0]
			return fmt.Sprintf("%s\nAt %s", alert.Description, alert.Timestamp.Format("3:04 PM"))
		}
	}
	return ""
}

// Show displays the window. Must be called on the Fyne UI thread.
func (aw *AlertWindow) Show() {
	if aw.window != nil {
		aw.window.Show()
		aw.window.RequestFocus()
	}
}

// Close dismisses the window. Must be called on the Fyne UI thread.
func (aw *AlertWindow) Close() {
	if aw.window != nil {
		aw.window.Close()
		aw.window = nil
	}
}
