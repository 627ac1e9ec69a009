// Package calendar imports events from external iCal feeds and from the
// YAML seed file into the care calendar.
package calendar

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/models"
	"github.com/emersion/go-ical"
)

// FetchEvents fetches and parses today's and tomorrow's events from an
// iCal source, mapped onto day-granularity calendar events.
func FetchEvents(source models.ICalSource, now time.Time) ([]models.CalendarEvent, error) {
	resp, err := http.Get(source.URL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	bodyStr := string(body)
	if err := validateICalFormat(bodyStr); err != nil {
		return nil, err
	}

	window := now.Add(48 * time.Hour)
	decoder := ical.NewDecoder(strings.NewReader(bodyStr))

	events := []models.CalendarEvent{}
	seenIDs := make(map[string]bool)

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			parseComponent(comp, source, now, window, &events, seenIDs)
		}
	}

	return events, nil
}

// parseComponent maps one VEVENT (expanding simple daily recurrence) into
// calendar events inside the import window.
func parseComponent(comp *ical.Component, source models.ICalSource, now, window time.Time, events *[]models.CalendarEvent, seenIDs map[string]bool) {
	var (
		id, title, description, status string
		start                          time.Time
	)

	if prop := comp.Props.Get(ical.PropUID); prop != nil {
		id = prop.Value
	}
	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		title = prop.Value
	}
	if prop := comp.Props.Get(ical.PropDescription); prop != nil {
		description = prop.Value
	}
	if prop := comp.Props.Get(ical.PropStatus); prop != nil {
		status = prop.Value
	}
	if prop := comp.Props.Get(ical.PropDateTimeStart); prop != nil {
		if t, err := parseDateTimeProperty(prop); err == nil {
			start = t
		}
	}

	if start.IsZero() {
		log.Printf("  [FILTERED] Missing start time - event %q", title)
		return
	}
	if status == "CANCELLED" {
		log.Printf("  [FILTERED] Cancelled - event %q", title)
		return
	}

	starts := []time.Time{start}

	// Simplified recurrence: expand FREQ=DAILY into the import window.
	// Weekly and more exotic rules are left to a future rrule-go pass.
	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil && strings.Contains(prop.Value, "FREQ=DAILY") {
		current := start.Add(24 * time.Hour)
		for current.Before(window) {
			starts = append(starts, current)
			current = current.Add(24 * time.Hour)
		}
	}

	for _, s := range starts {
		if s.Before(startOfDay(now)) || s.After(window) {
			continue
		}

		event := models.CalendarEvent{
			ID:          id,
			Title:       title,
			Description: description,
			Date:        startOfDay(s),
			Time:        s.Format("15:04"),
			Category:    guessCategory(title),
			SourceID:    source.ID,
		}
		// Fallback: if no iCal UID, use a deterministic ID based on start
		// time and title
		if event.ID == "" {
			event.ID = source.ID + "-" + s.Format(time.RFC3339) + "-" + title
		} else if len(starts) > 1 {
			event.ID = id + "-" + s.Format("2006-01-02")
		}

		if seenIDs[event.ID] {
			continue
		}
		seenIDs[event.ID] = true
		*events = append(*events, event)
	}
}

func parseDateTimeProperty(prop *ical.Prop) (time.Time, error) {
	// First try the standard DateTime method with local timezone
	if t, err := prop.DateTime(time.Local); err == nil {
		return t.In(time.Local), nil
	}

	// If that fails, try parsing the raw value directly
	value := prop.Value

	formats := []string{
		"20060102T150405",     // Basic format: YYYYMMDDTHHMMSS
		"20060102T150405Z",    // UTC format
		time.RFC3339,          // Standard RFC3339
		"2006-01-02T15:04:05", // ISO 8601 without timezone
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", value)
}

func validateICalFormat(body string) error {
	trimmed := strings.TrimSpace(body)

	// Check if response is HTML instead of iCalendar
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "<!DOCTYPE") || strings.HasPrefix(upper, "<HTML") {
		return fmt.Errorf("received HTML instead of iCalendar data - check if URL requires authentication")
	}

	if !strings.HasPrefix(trimmed, "BEGIN:VCALENDAR") {
		previewLen := 100
		if len(trimmed) < previewLen {
			previewLen = len(trimmed)
		}
		return fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR, got: %s", trimmed[:previewLen])
	}

	return nil
}

// guessCategory maps an imported event title onto a care category.
func guessCategory(title string) models.EventCategory {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "medic"), strings.Contains(lower, "pill"):
		return models.EventMedication
	case strings.Contains(lower, "walk"), strings.Contains(lower, "exercise"), strings.Contains(lower, "gym"):
		return models.EventExercise
	case strings.Contains(lower, "doctor"), strings.Contains(lower, "clinic"), strings.Contains(lower, "hospital"), strings.Contains(lower, "checkup"):
		return models.EventAppointment
	}
	return models.EventOther
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
