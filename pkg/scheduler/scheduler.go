// Package scheduler implements the reminder/notification core: periodic
// due-event detection against the event store, arbitration between calendar
// and health notifications, and whole-batch acknowledgement.
package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/clock"
	"github.com/KongSugoi/zencare-companion/pkg/models"
	"github.com/KongSugoi/zencare-companion/pkg/store"
)

// AlarmDriver is the attention cue the scheduler drives while a
// notification is active. Update is called synchronously on every
// arbitration change; Stop must halt any running cue.
type AlarmDriver interface {
	Update(active models.ActiveNotification)
	Stop()
}

// Options configures a Scheduler. Zero values fall back to the observed
// defaults: 10 second polling, 1 minute tolerance, health before calendar.
type Options struct {
	Clock        clock.Clock
	PollInterval time.Duration
	Tolerance    time.Duration
	Priority     []models.NotificationCategory

	// OnBatch receives a summary of each newly due calendar batch for the
	// surrounding UI (toast, desktop notification).
	OnBatch func(count int, titles []string)

	// OnChange receives every arbitration change so the render surface can
	// show or clear the notification.
	OnChange func(active models.ActiveNotification)
}

// Scheduler ties the detector, arbiter and alarm driver together. Calendar
// events are poll-detected; health alerts arrive pushed on the store's
// subscription channel. Both feed the arbiter through the same loop.
//
// mu serializes every state transition, including alarm propagation: a
// Tick, pushed alert or confirm executes fully under the lock, and Stop
// takes the same lock before halting the alarm, so no alarm.Update can
// follow a completed Stop.
type Scheduler struct {
	mu sync.Mutex

	store    *store.EventStore
	detector *Detector
	arbiter  *Arbiter
	alarm    AlarmDriver
	opts     Options

	alertCh <-chan models.HealthAlert
	ticker  *time.Ticker
	done    chan struct{}
	running bool
	stopped bool
}

func New(s *store.EventStore, alarm AlarmDriver, opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = time.Minute
	}

	return &Scheduler{
		store:    s,
		detector: NewDetector(s, opts.Clock, opts.Tolerance),
		arbiter:  NewArbiter(opts.Priority),
		alarm:    alarm,
		opts:     opts,
		alertCh:  s.SubscribeAlerts(),
	}
}

// Start runs the polling loop. Starting an already running scheduler is a
// no-op, so a re-entrant caller cannot double the interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopped = false
	s.ticker = time.NewTicker(s.opts.PollInterval)
	s.done = make(chan struct{})
	s.mu.Unlock()

	// Initial check so events due right now don't wait a full interval
	s.Tick()

	go s.loop()
	log.Printf("Notification scheduler started (poll %s, tolerance %s)",
		s.opts.PollInterval, s.opts.Tolerance)
}

func (s *Scheduler) loop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.Tick()
		case alert := <-s.alertCh:
			s.handleAlert(alert)
		}
	}
}

// Stop tears the scheduler down: the polling interval is cleared and any
// in-progress alarm cue is stopped so no timers or audio resources leak.
// Stop waits for an in-flight tick or confirm to finish propagating, then
// halts the alarm last; ticks arriving afterwards are no-ops.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true

	if s.running {
		s.running = false
		s.ticker.Stop()
		close(s.done)
	}

	if s.alarm != nil {
		s.alarm.Stop()
	}
	log.Println("Notification scheduler stopped")
}

// Tick performs one detection pass: find due events, surface the newly due
// ones and announce the batch. Safe to call directly; the loop calls it on
// every poll interval. A tick racing a completed Stop is a no-op.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	due := s.detector.DueEvents()
	if len(due) == 0 {
		return
	}

	added := s.arbiter.AddCalendarEvents(due)
	if len(added) == 0 {
		return
	}

	titles := make([]string, len(added))
	for i, event := range added {
		titles[i] = event.Title
	}
	log.Printf("%d calendar reminder(s) due: %v", len(added), titles)

	if s.opts.OnBatch != nil {
		s.opts.OnBatch(len(added), titles)
	}
	s.applyLocked()
}

// handleAlert surfaces a pushed health alert. Arbitration runs
// synchronously, so a health alert preempts a displayed calendar
// notification immediately.
func (s *Scheduler) handleAlert(alert models.HealthAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if !s.arbiter.AddHealthAlert(alert) {
		return
	}
	log.Printf("Health alert surfaced: %s (severity %s)", alert.Title, alert.Severity)
	s.applyLocked()
}

// Active returns what the render surface should currently show.
func (s *Scheduler) Active() models.ActiveNotification {
	return s.arbiter.Active()
}

// ConfirmCalendar acknowledges the entire active calendar batch: the alarm
// stops, every event is marked completed in the store, and the next pending
// category (if any) is promoted.
func (s *Scheduler) ConfirmCalendar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if s.alarm != nil {
		s.alarm.Stop()
	}

	cleared := s.arbiter.ClearCalendar()
	for _, event := range cleared {
		s.store.SetCompleted(event.ID, true)
	}
	if len(cleared) > 0 {
		log.Printf("Confirmed %d calendar reminder(s)", len(cleared))
	}

	s.applyLocked()
}

// ConfirmHealth acknowledges the entire active health batch, mirroring
// ConfirmCalendar.
func (s *Scheduler) ConfirmHealth() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if s.alarm != nil {
		s.alarm.Stop()
	}

	cleared := s.arbiter.ClearHealth()
	for _, alert := range cleared {
		s.store.SetAcknowledged(alert.ID, true)
	}
	if len(cleared) > 0 {
		log.Printf("Confirmed %d health alert(s)", len(cleared))
	}

	s.applyLocked()
}

// applyLocked propagates the arbiter's current state to the alarm driver
// and the render surface. Called with mu held so propagation is ordered
// and cannot interleave with Stop.
func (s *Scheduler) applyLocked() {
	active := s.arbiter.Active()

	if s.alarm != nil {
		s.alarm.Update(active)
	}
	if s.opts.OnChange != nil {
		s.opts.OnChange(active)
	}
}
