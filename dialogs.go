package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

// showAddReminderDialog is the minimal calendar surface: it creates a
// reminder for today directly in the event store.
func (c *Companion) showAddReminderDialog() {
	fyne.Do(func() {
		win := c.app.NewWindow("Add Reminder")
		win.Resize(fyne.NewSize(360, 280))

		titleEntry := widget.NewEntry()
		titleEntry.SetPlaceHolder("Take morning medication")
		descEntry := widget.NewEntry()
		descEntry.SetPlaceHolder("Optional details")
		timeEntry := widget.NewEntry()
		timeEntry.SetPlaceHolder("08:00")

		categorySelect := widget.NewSelect(
			[]string{"medication", "appointment", "exercise", "other"}, nil)
		categorySelect.SetSelected("medication")

		form := widget.NewForm(
			widget.NewFormItem("Title", titleEntry),
			widget.NewFormItem("Description", descEntry),
			widget.NewFormItem("Time (HH:MM)", timeEntry),
			widget.NewFormItem("Category", categorySelect),
		)

		saveButton := widget.NewButton("Save", func() {
			if titleEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("please enter a title"), win)
				return
			}

			hours, mins := 0, 0
			if n, _ := fmt.Sscanf(timeEntry.Text, "%d:%d", &hours, &mins); n != 2 || hours < 0 || hours > 23 || mins < 0 || mins > 59 {
				dialog.ShowError(fmt.Errorf("time must be HH:MM"), win)
				return
			}

			now := time.Now()
			c.store.UpsertEvent(models.CalendarEvent{
				ID:          uuid.New().String(),
				Title:       titleEntry.Text,
				Description: descEntry.Text,
				Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
				Time:        fmt.Sprintf("%02d:%02d", hours, mins),
				Category:    models.EventCategory(categorySelect.Selected),
			})

			c.updateSystemTrayMenu()
			win.Close()
		})
		saveButton.Importance = widget.HighImportance

		win.SetContent(container.NewVBox(form, saveButton))
		win.Show()
	})
}

// showHeartRateDialog records a manual pulse measurement. Out-of-range
// readings raise a health alert through the monitor.
func (c *Companion) showHeartRateDialog() {
	fyne.Do(func() {
		win := c.app.NewWindow("Record Heart Rate")
		win.Resize(fyne.NewSize(320, 160))

		rateEntry := widget.NewEntry()
		rateEntry.SetPlaceHolder("72")

		form := widget.NewForm(
			widget.NewFormItem("Heart rate (bpm)", rateEntry),
		)

		saveButton := widget.NewButton("Record", func() {
			rate := 0
			if n, _ := fmt.Sscanf(rateEntry.Text, "%d", &rate); n != 1 || rate <= 0 || rate > 300 {
				dialog.ShowError(fmt.Errorf("heart rate must be a number between 1 and 300"), win)
				return
			}

			if alert := c.monitor.Record(rate, time.Now(), "manual"); alert != nil {
				c.app.SendNotification(fyne.NewNotification(
					"Health alert", fmt.Sprintf("%s - %d bpm", alert.Title, rate)))
			}
			win.Close()
		})
		saveButton.Importance = widget.HighImportance

		win.SetContent(container.NewVBox(form, saveButton))
		win.Show()
	})
}
