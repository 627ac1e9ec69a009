package store

import (
	"sort"
	"sync"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

// EventStore holds the current set of calendar events, health alerts and
// heart-rate readings. All state is in-memory for the process lifetime.
//
// Health alerts are push-based: subscribers receive each newly added alert
// on a channel, so the scheduler reacts to them without polling.
type EventStore struct {
	mu sync.RWMutex

	// Map of event ID to CalendarEvent
	events map[string]*models.CalendarEvent

	// Map of alert ID to HealthAlert
	alerts map[string]*models.HealthAlert

	readings []models.HeartRateReading

	alertSubs []chan models.HealthAlert
}

func NewEventStore() *EventStore {
	return &EventStore{
		events: make(map[string]*models.CalendarEvent),
		alerts: make(map[string]*models.HealthAlert),
	}
}

// UpsertEvent adds a calendar event, or updates its details if the ID is
// already known. The completed flag of an existing event is preserved so a
// calendar re-sync never resurrects an acknowledged reminder.
func (s *EventStore) UpsertEvent(event models.CalendarEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.events[event.ID]; ok {
		existing.Title = event.Title
		existing.Description = event.Description
		existing.Date = event.Date
		existing.Time = event.Time
		existing.Category = event.Category
		existing.SourceID = event.SourceID
		return
	}

	e := event
	s.events[event.ID] = &e
}

// DeleteEvent removes a calendar event. Only the calendar surface calls
// this; the scheduler never deletes events.
func (s *EventStore) DeleteEvent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, id)
}

// GetEvent returns a copy of the event with the given ID.
func (s *EventStore) GetEvent(id string) (models.CalendarEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.events[id]; ok {
		return *e, true
	}
	return models.CalendarEvent{}, false
}

// Events returns all calendar events in display order: by date, then
// time of day, then title.
func (s *EventStore) Events() []models.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.CalendarEvent, 0, len(s.events))
	for _, e := range s.events {
		result = append(result, *e)
	}

	sort.Slice(result, func(i, j int) bool {
		di, dj := result[i].Date, result[j].Date
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if result[i].Time != result[j].Time {
			return result[i].Time < result[j].Time
		}
		return result[i].Title < result[j].Title
	})
	return result
}

// SetCompleted updates the completed flag of an event. Returns false if the
// event is unknown.
func (s *EventStore) SetCompleted(id string, completed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return false
	}
	e.Completed = completed
	return true
}

// AddAlert stores a new health alert and pushes it to all subscribers.
// A slow subscriber is skipped rather than blocking ingestion.
func (s *EventStore) AddAlert(alert models.HealthAlert) {
	s.mu.Lock()
	a := alert
	s.alerts[alert.ID] = &a
	subs := make([]chan models.HealthAlert, len(s.alertSubs))
	copy(subs, s.alertSubs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- alert:
		default:
		}
	}
}

// SubscribeAlerts returns a channel that receives every health alert added
// after the call.
func (s *EventStore) SubscribeAlerts() <-chan models.HealthAlert {
	ch := make(chan models.HealthAlert, 16)

	s.mu.Lock()
	s.alertSubs = append(s.alertSubs, ch)
	s.mu.Unlock()

	return ch
}

// Alerts returns all health alerts, newest first.
func (s *EventStore) Alerts() []models.HealthAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.HealthAlert, 0, len(s.alerts))
	for _, a := range s.alerts {
		result = append(result, *a)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result
}

// GetAlert returns a copy of the alert with the given ID.
func (s *EventStore) GetAlert(id string) (models.HealthAlert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.alerts[id]; ok {
		return *a, true
	}
	return models.HealthAlert{}, false
}

// SetAcknowledged updates the acknowledged flag of an alert. Returns false
// if the alert is unknown.
func (s *EventStore) SetAcknowledged(id string, acknowledged bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return false
	}
	a.Acknowledged = acknowledged
	return true
}

// UnacknowledgedAlerts returns all alerts not yet acknowledged, oldest first.
func (s *EventStore) UnacknowledgedAlerts() []models.HealthAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.HealthAlert{}
	for _, a := range s.alerts {
		if !a.Acknowledged {
			result = append(result, *a)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result
}

// AddReading appends a heart-rate reading.
func (s *EventStore) AddReading(reading models.HeartRateReading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, reading)
}

// Readings returns all heart-rate readings in insertion order.
func (s *EventStore) Readings() []models.HeartRateReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.HeartRateReading, len(s.readings))
	copy(result, s.readings)
	return result
}
