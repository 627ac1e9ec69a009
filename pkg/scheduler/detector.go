package scheduler

import (
	"log"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/clock"
	"github.com/KongSugoi/zencare-companion/pkg/models"
	"github.com/KongSugoi/zencare-companion/pkg/store"
)

// Detector scans the event store for calendar events whose time of day has
// come around. Detection is best-effort: there is no catch-up for events
// whose window was missed (for example while the process was suspended).
type Detector struct {
	store     *store.EventStore
	clock     clock.Clock
	tolerance time.Duration
}

func NewDetector(s *store.EventStore, c clock.Clock, tolerance time.Duration) *Detector {
	return &Detector{store: s, clock: c, tolerance: tolerance}
}

// DueEvents returns every incomplete event scheduled for today whose time
// of day is within the tolerance window of now. Comparison is at minute
// granularity. Events with a malformed time never become due.
func (d *Detector) DueEvents() []models.CalendarEvent {
	now := d.clock.Now()
	nowMinutes := models.MinutesOfDay(now)
	toleranceMin := int(d.tolerance.Minutes())

	due := []models.CalendarEvent{}
	for _, event := range d.store.Events() {
		if event.Completed {
			continue
		}
		if !event.SameDay(now) {
			continue
		}

		eventMinutes, err := event.Minutes()
		if err != nil {
			log.Printf("Skipping event %q with unparsable time: %v", event.Title, err)
			continue
		}

		diff := eventMinutes - nowMinutes
		if diff < 0 {
			diff = -diff
		}
		if diff <= toleranceMin {
			due = append(due, event)
		}
	}

	return due
}
