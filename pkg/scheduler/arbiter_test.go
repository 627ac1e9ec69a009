package scheduler

import (
	"testing"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

func calEvent(id string) models.CalendarEvent {
	return models.CalendarEvent{ID: id, Title: "Reminder " + id}
}

func healthAlert(id string) models.HealthAlert {
	return models.HealthAlert{ID: id, Title: "Alert " + id, Timestamp: time.Now(), Severity: models.SeverityHigh}
}

func TestCalendarShownWhenOnlyCalendarPending(t *testing.T) {
	a := NewArbiter(nil)
	a.AddCalendarEvents([]models.CalendarEvent{calEvent("e1")})

	active := a.Active()
	if active.Category != models.CategoryCalendar {
		t.Fatalf("expected calendar, got %s", active.Category)
	}
	if len(active.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(active.Events))
	}
}

func TestHealthPriorityOverCalendar(t *testing.T) {
	a := NewArbiter(nil)
	a.AddCalendarEvents([]models.CalendarEvent{calEvent("e1")})
	a.AddHealthAlert(healthAlert("a1"))

	if got := a.Active().Category; got != models.CategoryHealth {
		t.Fatalf("health must win over calendar, got %s", got)
	}
}

func TestPreemptionKeepsCalendarQueued(t *testing.T) {
	a := NewArbiter(nil)
	a.AddCalendarEvents([]models.CalendarEvent{calEvent("e1")})
	a.AddHealthAlert(healthAlert("a1"))

	// The calendar batch is queued, not cleared
	cleared := a.ClearHealth()
	if len(cleared) != 1 {
		t.Fatalf("expected 1 cleared alert, got %d", len(cleared))
	}

	active := a.Active()
	if active.Category != models.CategoryCalendar {
		t.Fatalf("expected calendar to resume, got %s", active.Category)
	}
	if len(active.Events) != 1 || active.Events[0].ID != "e1" {
		t.Fatalf("calendar batch lost during preemption: %+v", active.Events)
	}
}

func TestAddCalendarEventsDeduplicates(t *testing.T) {
	a := NewArbiter(nil)
	batch := []models.CalendarEvent{calEvent("e1"), calEvent("e2")}

	if added := a.AddCalendarEvents(batch); len(added) != 2 {
		t.Fatalf("expected 2 added, got %d", len(added))
	}
	// Re-adding the same batch is idempotent
	if added := a.AddCalendarEvents(batch); len(added) != 0 {
		t.Fatalf("expected 0 added on repeat, got %d", len(added))
	}
	if got := len(a.Active().Events); got != 2 {
		t.Fatalf("expected 2 active events, got %d", got)
	}
}

func TestAddHealthAlertDeduplicates(t *testing.T) {
	a := NewArbiter(nil)
	if !a.AddHealthAlert(healthAlert("a1")) {
		t.Fatal("first add must succeed")
	}
	if a.AddHealthAlert(healthAlert("a1")) {
		t.Fatal("duplicate add must be rejected")
	}
	if a.AddHealthAlert(models.HealthAlert{ID: "a2", Acknowledged: true}) {
		t.Fatal("acknowledged alert must be rejected")
	}
}

func TestClearCalendarPromotesNone(t *testing.T) {
	a := NewArbiter(nil)
	a.AddCalendarEvents([]models.CalendarEvent{calEvent("e1")})

	cleared := a.ClearCalendar()
	if len(cleared) != 1 {
		t.Fatalf("expected 1 cleared event, got %d", len(cleared))
	}
	if got := a.Active().Category; got != models.CategoryNone {
		t.Fatalf("expected none after clearing, got %s", got)
	}
}

func TestClearCalendarPromotesHealth(t *testing.T) {
	a := NewArbiter(nil)
	a.AddCalendarEvents([]models.CalendarEvent{calEvent("e1")})
	a.AddHealthAlert(healthAlert("a1"))

	a.ClearCalendar()
	if got := a.Active().Category; got != models.CategoryHealth {
		t.Fatalf("expected health after clearing calendar, got %s", got)
	}
}

func TestCustomPriorityOrdering(t *testing.T) {
	// Calendar-first ordering flips the default preemption rule
	a := NewArbiter([]models.NotificationCategory{models.CategoryCalendar, models.CategoryHealth})
	a.AddHealthAlert(healthAlert("a1"))
	a.AddCalendarEvents([]models.CalendarEvent{calEvent("e1")})

	if got := a.Active().Category; got != models.CategoryCalendar {
		t.Fatalf("expected calendar with custom priority, got %s", got)
	}
}
