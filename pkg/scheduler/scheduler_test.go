package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/clock"
	"github.com/KongSugoi/zencare-companion/pkg/models"
	"github.com/KongSugoi/zencare-companion/pkg/store"
)

// recorderDriver captures alarm transitions for assertions
type recorderDriver struct {
	mu      sync.Mutex
	updates []models.NotificationCategory
	stops   int
}

func (r *recorderDriver) Update(active models.ActiveNotification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, active.Category)
}

func (r *recorderDriver) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
}

func (r *recorderDriver) lastUpdate() models.NotificationCategory {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.updates) == 0 {
		return models.CategoryNone
	}
	return r.updates[len(r.updates)-1]
}

func newTestScheduler(t *testing.T, now time.Time) (*Scheduler, *store.EventStore, *recorderDriver) {
	t.Helper()
	s := store.NewEventStore()
	driver := &recorderDriver{}
	sched := New(s, driver, Options{Clock: clock.FixedClock{T: now}})
	return sched, s, driver
}

func TestTickSurfacesDueEvent(t *testing.T) {
	now := at(8, 0)
	sched, s, driver := newTestScheduler(t, now)
	s.UpsertEvent(models.CalendarEvent{ID: "e1", Title: "Morning pills", Date: dayOf(now), Time: "08:00"})

	sched.Tick()

	active := sched.Active()
	if active.Category != models.CategoryCalendar {
		t.Fatalf("expected calendar active, got %s", active.Category)
	}
	if len(active.Events) != 1 || active.Events[0].ID != "e1" {
		t.Fatalf("unexpected active events: %+v", active.Events)
	}
	if driver.lastUpdate() != models.CategoryCalendar {
		t.Fatal("alarm driver not started for calendar")
	}
}

func TestRepeatedTicksDoNotDuplicate(t *testing.T) {
	now := at(8, 0)
	sched, s, _ := newTestScheduler(t, now)
	s.UpsertEvent(models.CalendarEvent{ID: "e1", Date: dayOf(now), Time: "08:00"})

	sched.Tick()
	sched.Tick()
	sched.Tick()

	if got := len(sched.Active().Events); got != 1 {
		t.Fatalf("active list must be idempotent across ticks, got %d entries", got)
	}
}

func TestHealthAlertPreemptsCalendar(t *testing.T) {
	now := at(8, 0)
	sched, s, driver := newTestScheduler(t, now)
	s.UpsertEvent(models.CalendarEvent{ID: "e1", Date: dayOf(now), Time: "08:00"})
	sched.Tick()

	sched.handleAlert(models.HealthAlert{ID: "a1", Title: "High heart rate", Severity: models.SeverityHigh, Timestamp: now})

	active := sched.Active()
	if active.Category != models.CategoryHealth {
		t.Fatalf("expected immediate preemption to health, got %s", active.Category)
	}
	if driver.lastUpdate() != models.CategoryHealth {
		t.Fatal("alarm driver not switched to health")
	}

	// The calendar batch stays queued behind the health alert
	sched.ConfirmHealth()
	active = sched.Active()
	if active.Category != models.CategoryCalendar || len(active.Events) != 1 {
		t.Fatalf("calendar batch lost during preemption: %+v", active)
	}
}

func TestConfirmCalendarMarksCompletedAndClears(t *testing.T) {
	now := at(8, 0)
	sched, s, driver := newTestScheduler(t, now)
	s.UpsertEvent(models.CalendarEvent{ID: "e1", Date: dayOf(now), Time: "08:00"})
	s.UpsertEvent(models.CalendarEvent{ID: "e2", Date: dayOf(now), Time: "08:00"})
	sched.Tick()

	sched.ConfirmCalendar()

	if got := sched.Active().Category; got != models.CategoryNone {
		t.Fatalf("expected none after confirm, got %s", got)
	}
	for _, id := range []string{"e1", "e2"} {
		event, _ := s.GetEvent(id)
		if !event.Completed {
			t.Fatalf("event %s not marked completed", id)
		}
	}
	if driver.stops == 0 {
		t.Fatal("alarm driver not stopped on confirm")
	}
}

func TestConfirmHealthAcknowledgesWholeBatch(t *testing.T) {
	now := at(8, 0)
	sched, s, _ := newTestScheduler(t, now)
	s.AddAlert(models.HealthAlert{ID: "a1", Timestamp: now})
	s.AddAlert(models.HealthAlert{ID: "a2", Timestamp: now})
	sched.handleAlert(models.HealthAlert{ID: "a1", Timestamp: now})
	sched.handleAlert(models.HealthAlert{ID: "a2", Timestamp: now})

	sched.ConfirmHealth()

	if got := len(sched.Active().Alerts); got != 0 {
		t.Fatalf("expected empty health list, got %d", got)
	}
	for _, id := range []string{"a1", "a2"} {
		alert, _ := s.GetAlert(id)
		if !alert.Acknowledged {
			t.Fatalf("alert %s not acknowledged", id)
		}
	}
}

func TestConfirmCalendarLeavesHealthUntouched(t *testing.T) {
	now := at(8, 0)
	sched, s, _ := newTestScheduler(t, now)
	s.UpsertEvent(models.CalendarEvent{ID: "e1", Date: dayOf(now), Time: "08:00"})
	sched.Tick()
	sched.handleAlert(models.HealthAlert{ID: "a1", Timestamp: now})

	sched.ConfirmCalendar()

	active := sched.Active()
	if active.Category != models.CategoryHealth || len(active.Alerts) != 1 {
		t.Fatalf("health batch must survive a calendar confirm: %+v", active)
	}
}

func TestPushedAlertReachesSchedulerLoop(t *testing.T) {
	now := at(8, 0)
	s := store.NewEventStore()
	driver := &recorderDriver{}
	sched := New(s, driver, Options{
		Clock:        clock.FixedClock{T: now},
		PollInterval: time.Hour, // keep the ticker quiet during the test
	})
	sched.Start()
	defer sched.Stop()

	s.AddAlert(models.HealthAlert{ID: "a1", Title: "High heart rate", Timestamp: now})

	deadline := time.After(2 * time.Second)
	for {
		if sched.Active().Category == models.CategoryHealth {
			return
		}
		select {
		case <-deadline:
			t.Fatal("pushed health alert never surfaced")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// gatedDriver blocks inside Update until released, to hold a tick
// mid-propagation while another goroutine tears the scheduler down.
type gatedDriver struct {
	mu      sync.Mutex
	entered chan struct{}
	gate    chan struct{}
	calls   []string
}

func newGatedDriver() *gatedDriver {
	return &gatedDriver{
		entered: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
}

func (d *gatedDriver) Update(active models.ActiveNotification) {
	select {
	case d.entered <- struct{}{}:
	default:
	}
	<-d.gate

	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, "update:"+string(active.Category))
}

func (d *gatedDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, "stop")
}

func (d *gatedDriver) sequence() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func TestStopWaitsForInFlightTick(t *testing.T) {
	now := at(8, 0)
	s := store.NewEventStore()
	driver := newGatedDriver()
	sched := New(s, driver, Options{Clock: clock.FixedClock{T: now}})
	s.UpsertEvent(models.CalendarEvent{ID: "e1", Date: dayOf(now), Time: "08:00"})

	tickDone := make(chan struct{})
	go func() {
		sched.Tick()
		close(tickDone)
	}()
	<-driver.entered

	stopDone := make(chan struct{})
	go func() {
		sched.Stop()
		close(stopDone)
	}()

	// Stop must wait for the tick still propagating to the driver
	select {
	case <-stopDone:
		t.Fatal("Stop returned while a tick was mid-propagation")
	case <-time.After(50 * time.Millisecond):
	}

	close(driver.gate)
	<-tickDone
	<-stopDone

	calls := driver.sequence()
	if len(calls) == 0 || calls[len(calls)-1] != "stop" {
		t.Fatalf("the driver must see Stop last, got sequence %v", calls)
	}
}

func TestTicksAndAlertsAfterStopAreNoOps(t *testing.T) {
	now := at(8, 0)
	sched, s, driver := newTestScheduler(t, now)
	s.UpsertEvent(models.CalendarEvent{ID: "e1", Date: dayOf(now), Time: "08:00"})

	sched.Stop()
	sched.Tick()
	sched.handleAlert(models.HealthAlert{ID: "a1", Timestamp: now})
	sched.ConfirmCalendar()

	driver.mu.Lock()
	updates := len(driver.updates)
	driver.mu.Unlock()
	if updates != 0 {
		t.Fatalf("stopped scheduler must not drive the alarm, got %d updates", updates)
	}
	if got := sched.Active().Category; got != models.CategoryNone {
		t.Fatalf("stopped scheduler must not surface anything, got %s", got)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	now := at(8, 0)
	sched, _, _ := newTestScheduler(t, now)

	sched.Start()
	sched.Start() // must not double the polling interval
	sched.Stop()
	sched.Stop() // must not panic on double stop
}

func TestOnChangeFiresOnArbitrationChange(t *testing.T) {
	now := at(8, 0)
	s := store.NewEventStore()
	var mu sync.Mutex
	changes := []models.NotificationCategory{}

	sched := New(s, nil, Options{
		Clock: clock.FixedClock{T: now},
		OnChange: func(active models.ActiveNotification) {
			mu.Lock()
			changes = append(changes, active.Category)
			mu.Unlock()
		},
	})

	s.UpsertEvent(models.CalendarEvent{ID: "e1", Date: dayOf(now), Time: "08:00"})
	sched.Tick()
	sched.ConfirmCalendar()

	mu.Lock()
	defer mu.Unlock()
	if len(changes) != 2 || changes[0] != models.CategoryCalendar || changes[1] != models.CategoryNone {
		t.Fatalf("unexpected change sequence: %v", changes)
	}
}
