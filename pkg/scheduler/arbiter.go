package scheduler

import (
	"sync"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

// Arbiter owns the sets of surfaced-but-unacknowledged notifications and
// decides which category is shown. The priority ordering is configurable;
// by default health alerts preempt calendar reminders. A preempted category
// stays queued and resumes once the more urgent one is acknowledged.
type Arbiter struct {
	mu sync.Mutex

	priority []models.NotificationCategory

	calendar []models.CalendarEvent
	health   []models.HealthAlert
	current  models.NotificationCategory
}

// NewArbiter creates an arbiter with the given category ordering, most
// urgent first. An empty ordering falls back to the default.
func NewArbiter(priority []models.NotificationCategory) *Arbiter {
	if len(priority) == 0 {
		priority = models.DefaultPriority()
	}
	return &Arbiter{
		priority: priority,
		current:  models.CategoryNone,
	}
}

// AddCalendarEvents appends newly due events to the active calendar list,
// skipping any already present by ID, and re-evaluates the shown category.
// The returned slice holds only the events actually added.
func (a *Arbiter) AddCalendarEvents(events []models.CalendarEvent) []models.CalendarEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	added := []models.CalendarEvent{}
	for _, event := range events {
		if a.hasCalendar(event.ID) {
			continue
		}
		a.calendar = append(a.calendar, event)
		added = append(added, event)
	}

	if len(added) > 0 {
		a.recompute()
	}
	return added
}

// AddHealthAlert adds an unacknowledged alert to the active health list and
// re-evaluates the shown category. Returns false for duplicates and for
// alerts already acknowledged.
func (a *Arbiter) AddHealthAlert(alert models.HealthAlert) bool {
	if alert.Acknowledged {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, active := range a.health {
		if active.ID == alert.ID {
			return false
		}
	}

	a.health = append(a.health, alert)
	a.recompute()
	return true
}

// Active returns a snapshot of the currently shown category and its items.
func (a *Arbiter) Active() models.ActiveNotification {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := models.ActiveNotification{Category: a.current}
	switch a.current {
	case models.CategoryCalendar:
		n.Events = append([]models.CalendarEvent(nil), a.calendar...)
	case models.CategoryHealth:
		n.Alerts = append([]models.HealthAlert(nil), a.health...)
	}
	return n
}

// ClearCalendar empties the active calendar list and promotes the next
// pending category. The cleared events are returned so the caller can mark
// them completed in the event store.
func (a *Arbiter) ClearCalendar() []models.CalendarEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	cleared := a.calendar
	a.calendar = nil
	a.recompute()
	return cleared
}

// ClearHealth empties the active health list and promotes the next pending
// category. The cleared alerts are returned so the caller can mark them
// acknowledged in the event store.
func (a *Arbiter) ClearHealth() []models.HealthAlert {
	a.mu.Lock()
	defer a.mu.Unlock()

	cleared := a.health
	a.health = nil
	a.recompute()
	return cleared
}

func (a *Arbiter) hasCalendar(id string) bool {
	for _, active := range a.calendar {
		if active.ID == id {
			return true
		}
	}
	return false
}

// recompute picks the first category in priority order with pending items.
// Called with the lock held; every list mutation goes through it so there
// is never a window where a lower-priority category is shown while a
// higher-priority one is pending.
func (a *Arbiter) recompute() {
	for _, cat := range a.priority {
		switch cat {
		case models.CategoryHealth:
			if len(a.health) > 0 {
				a.current = models.CategoryHealth
				return
			}
		case models.CategoryCalendar:
			if len(a.calendar) > 0 {
				a.current = models.CategoryCalendar
				return
			}
		}
	}
	a.current = models.CategoryNone
}
