package models

import "time"

// NotificationCategory is which kind of notification is currently alarmed
type NotificationCategory string

const (
	CategoryNone     NotificationCategory = "none"
	CategoryCalendar NotificationCategory = "calendar"
	CategoryHealth   NotificationCategory = "health"
)

// DefaultPriority orders categories by urgency: health alerts preempt
// calendar reminders.
func DefaultPriority() []NotificationCategory {
	return []NotificationCategory{CategoryHealth, CategoryCalendar}
}

// ActiveNotification is the snapshot handed to the render surface and the
// alarm driver: the category currently being alarmed and the unacknowledged
// items behind it.
type ActiveNotification struct {
	Category NotificationCategory
	Events   []CalendarEvent
	Alerts   []HealthAlert
}

// PrimaryTitle returns the title of the first item in the batch, if any.
func (n ActiveNotification) PrimaryTitle() string {
	switch n.Category {
	case CategoryCalendar:
		if len(n.Events) > 0 {
			return n.Events[0].Title
		}
	case CategoryHealth:
		if len(n.Alerts) > 0 {
			return n.Alerts[0].Title
		}
	}
	return ""
}

// Count returns the number of items in the active batch.
func (n ActiveNotification) Count() int {
	switch n.Category {
	case CategoryCalendar:
		return len(n.Events)
	case CategoryHealth:
		return len(n.Alerts)
	}
	return 0
}

// Beep describes one tone within an alarm cycle
type Beep struct {
	Offset    time.Duration // delay from cycle start
	Frequency float64       // Hz
	Duration  time.Duration
	Volume    float64 // 0..1
}

// AlarmProfile describes the attention cue for one notification category
type AlarmProfile struct {
	Beeps          []Beep
	Vibration      []time.Duration // alternating vibrate/pause segments
	RepeatInterval time.Duration   // time between cycle starts
}

// ProfileFor returns the alarm cue for a category. Health cues use higher
// pitch and volume and a shorter repeat interval than calendar cues.
func ProfileFor(category NotificationCategory) AlarmProfile {
	if category == CategoryHealth {
		return AlarmProfile{
			Beeps: []Beep{
				{Offset: 100 * time.Millisecond, Frequency: 1200, Duration: 200 * time.Millisecond, Volume: 0.4},
				{Offset: 400 * time.Millisecond, Frequency: 1200, Duration: 200 * time.Millisecond, Volume: 0.4},
				{Offset: 700 * time.Millisecond, Frequency: 1400, Duration: 250 * time.Millisecond, Volume: 0.5},
			},
			Vibration: []time.Duration{
				300 * time.Millisecond, 100 * time.Millisecond,
				300 * time.Millisecond, 100 * time.Millisecond,
				300 * time.Millisecond,
			},
			RepeatInterval: 1500 * time.Millisecond,
		}
	}

	return AlarmProfile{
		Beeps: []Beep{
			{Offset: 100 * time.Millisecond, Frequency: 800, Duration: 150 * time.Millisecond, Volume: 0.3},
			{Offset: 350 * time.Millisecond, Frequency: 800, Duration: 150 * time.Millisecond, Volume: 0.3},
			{Offset: 600 * time.Millisecond, Frequency: 800, Duration: 150 * time.Millisecond, Volume: 0.3},
		},
		Vibration: []time.Duration{
			200 * time.Millisecond, 100 * time.Millisecond,
			200 * time.Millisecond, 100 * time.Millisecond,
			200 * time.Millisecond,
		},
		RepeatInterval: 2 * time.Second,
	}
}
