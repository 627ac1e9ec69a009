package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventCategory classifies a calendar event for display and speech
type EventCategory string

const (
	EventMedication  EventCategory = "medication"
	EventAppointment EventCategory = "appointment"
	EventExercise    EventCategory = "exercise"
	EventOther       EventCategory = "other"
)

// CalendarEvent represents a scheduled reminder on the care calendar.
// Date carries day granularity only; Time is the "HH:MM" time of day.
type CalendarEvent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	Time        string        `json:"time"`
	Category    EventCategory `json:"category"`
	Completed   bool          `json:"completed"`
	SourceID    string        `json:"source_id,omitempty"` // iCal source this event came from, if imported
}

// Minutes parses the event's "HH:MM" time into minutes since midnight.
// A malformed time returns an error; callers treat such events as never due.
func (e *CalendarEvent) Minutes() (int, error) {
	parts := strings.SplitN(e.Time, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid event time %q: expected HH:MM", e.Time)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid event hour %q: %w", parts[0], err)
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("invalid event minute %q: %w", parts[1], err)
	}

	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("event time %q out of range", e.Time)
	}

	return hour*60 + min, nil
}

// SameDay reports whether the event's date falls on the same calendar day as t.
func (e *CalendarEvent) SameDay(t time.Time) bool {
	ey, em, ed := e.Date.Date()
	ty, tm, td := t.Date()
	return ey == ty && em == tm && ed == td
}

// MinutesOfDay returns t's time of day in minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
