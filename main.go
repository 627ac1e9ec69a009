package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"

	"github.com/KongSugoi/zencare-companion/pkg/alarm"
	"github.com/KongSugoi/zencare-companion/pkg/audio"
	"github.com/KongSugoi/zencare-companion/pkg/calendar"
	"github.com/KongSugoi/zencare-companion/pkg/clock"
	"github.com/KongSugoi/zencare-companion/pkg/health"
	"github.com/KongSugoi/zencare-companion/pkg/models"
	"github.com/KongSugoi/zencare-companion/pkg/scheduler"
	"github.com/KongSugoi/zencare-companion/pkg/speech"
	"github.com/KongSugoi/zencare-companion/pkg/store"
)

// Companion is the desktop shell around the notification scheduler: it
// wires the event store, the heart-rate monitor, the alarm driver and the
// alert window together and keeps the system tray current.
type Companion struct {
	app        fyne.App
	config     *models.Config
	store      *store.EventStore
	monitor    *health.Monitor
	sched      *scheduler.Scheduler
	syncTicker *time.Ticker

	alertWindow *AlertWindow
}

func main() {
	c := &Companion{
		app:   app.New(),
		store: store.NewEventStore(),
	}

	if err := c.initialize(); err != nil {
		log.Fatal(err)
	}

	c.run()
}

func (c *Companion) initialize() error {
	// .env carries the TTS endpoint in development setups
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configStore := store.NewConfigStore(c.app)
	c.config = configStore.Load()
	if url := os.Getenv("SYNTHESIZE_URL"); url != "" {
		c.config.SynthesizeURL = url
	}

	// Sync autostart state with config on startup
	if err := setupAutostart(c.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	configStore.Save(c.config)

	c.monitor = health.NewMonitor(c.store)
	c.seedEvents()

	ttsClient := speech.NewClient(c.config.SynthesizeURL, c.config.Voice)
	driver := alarm.NewDriver(beepSounder{}, logVibrator{}, &ttsSpeaker{client: ttsClient}, audio.RenderCycle)

	c.sched = scheduler.New(c.store, driver, scheduler.Options{
		Clock:        clock.RealClock{},
		PollInterval: time.Duration(c.config.PollIntervalSec) * time.Second,
		Tolerance:    time.Duration(c.config.ToleranceMin) * time.Minute,
		Priority:     c.config.GetPriority(),
		OnBatch:      c.announceBatch,
		OnChange:     c.handleActiveChange,
	})

	c.setupSystemTray()
	c.startCalendarSync()
	c.sched.Start()

	return nil
}

func (c *Companion) run() {
	c.app.Run()
}

func (c *Companion) quit() {
	if c.syncTicker != nil {
		c.syncTicker.Stop()
	}
	c.sched.Stop()
	c.app.Quit()
}

// seedEvents loads the default reminder set on first start.
func (c *Companion) seedEvents() {
	if c.config.SeedFile == "" {
		return
	}

	events, err := calendar.LoadSeed(c.config.SeedFile, time.Now())
	if err != nil {
		log.Printf("Failed to load seed events: %v", err)
		return
	}

	for _, event := range events {
		c.store.UpsertEvent(event)
	}
	log.Printf("Seeded %d default events from %s", len(events), c.config.SeedFile)
}

// announceBatch surfaces a newly due batch as a desktop notification and
// refreshes the tray.
func (c *Companion) announceBatch(count int, titles []string) {
	c.app.SendNotification(fyne.NewNotification(
		"Care reminders",
		fmt.Sprintf("%d reminder(s) due: %s", count, strings.Join(titles, ", "))))
	c.updateSystemTrayMenu()
}

// handleActiveChange shows, replaces or clears the alert window to match
// the scheduler's current notification.
func (c *Companion) handleActiveChange(active models.ActiveNotification) {
	fyne.Do(func() {
		if c.alertWindow != nil {
			c.alertWindow.Close()
			c.alertWindow = nil
		}

		if active.Category == models.CategoryNone {
			c.updateSystemTrayMenu()
			return
		}

		c.alertWindow = NewAlertWindow(c.app, active, func() {
			if active.Category == models.CategoryHealth {
				c.sched.ConfirmHealth()
			} else {
				c.sched.ConfirmCalendar()
			}
		})
		c.alertWindow.Show()
	})
}

// syncCalendars pulls events from all configured iCal sources into the
// event store.
func (c *Companion) syncCalendars() {
	if len(c.config.ICalSources) == 0 {
		return
	}

	total := 0
	for _, source := range c.config.ICalSources {
		if !source.Validate() {
			continue
		}

		events, err := calendar.FetchEvents(source, time.Now())
		if err != nil {
			log.Printf("Error fetching iCal source '%s' (%s): %v", source.Name, source.URL, err)
			continue
		}

		for _, event := range events {
			c.store.UpsertEvent(event)
		}
		total += len(events)
		log.Printf("Synced %d events from '%s'", len(events), source.Name)
	}

	log.Printf("Total synced %d events from %d iCal sources", total, len(c.config.ICalSources))
	c.updateSystemTrayMenu()
}

func (c *Companion) startCalendarSync() {
	// Do initial sync synchronously to populate data before the first tick
	if len(c.config.ICalSources) > 0 {
		c.syncCalendars()
	}

	interval := c.config.SyncInterval
	if interval <= 0 {
		interval = 30
	}

	c.syncTicker = time.NewTicker(time.Duration(interval) * time.Minute)
	go func() {
		for range c.syncTicker.C {
			c.syncCalendars()
		}
	}()
}
