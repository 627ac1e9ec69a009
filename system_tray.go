package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

func (c *Companion) setupSystemTray() {
	c.updateSystemTrayMenu()
}

func (c *Companion) updateSystemTrayMenu() {
	if desk, ok := c.app.(desktop.App); ok {
		menuItems := []*fyne.MenuItem{}

		// Add upcoming reminders section at the top
		upcoming := c.upcomingTodayEvents(5)
		if len(upcoming) > 0 {
			headerItem := fyne.NewMenuItem("Upcoming Today:", nil)
			headerItem.Disabled = true
			menuItems = append(menuItems, headerItem)

			for _, event := range upcoming {
				eventText := fmt.Sprintf("  %s - %s", event.Time, truncateString(event.Title, 35))
				eventItem := fyne.NewMenuItem(eventText, nil)
				eventItem.Disabled = true
				menuItems = append(menuItems, eventItem)
			}

			menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		}

		menuItems = append(menuItems,
			fyne.NewMenuItem("Add Reminder...", func() {
				c.showAddReminderDialog()
			}),
			fyne.NewMenuItem("Record Heart Rate...", func() {
				c.showHeartRateDialog()
			}),
			fyne.NewMenuItem("Sync Calendars Now", func() {
				go c.syncCalendars()
			}),
		)

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		menuItems = append(menuItems, fyne.NewMenuItem("Quit", func() {
			c.quit()
		}))

		menu := fyne.NewMenu("ZenCare Companion", menuItems...)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(theme.InfoIcon())
	}
}

// upcomingTodayEvents returns the next few incomplete reminders scheduled
// between now and the end of today.
func (c *Companion) upcomingTodayEvents(limit int) []models.CalendarEvent {
	now := time.Now()
	nowMinutes := models.MinutesOfDay(now)

	upcoming := []models.CalendarEvent{}
	for _, event := range c.store.Events() {
		if event.Completed || !event.SameDay(now) {
			continue
		}

		eventMinutes, err := event.Minutes()
		if err != nil || eventMinutes < nowMinutes {
			continue
		}

		upcoming = append(upcoming, event)
		if len(upcoming) >= limit {
			break
		}
	}

	return upcoming
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
