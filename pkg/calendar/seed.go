package calendar

import (
	"fmt"
	"os"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout of the default-events file
type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

type seedEvent struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Day         string `yaml:"day"` // "today", "tomorrow" or YYYY-MM-DD
	Time        string `yaml:"time"`
	Category    string `yaml:"category"`
}

// LoadSeed reads default calendar events from a YAML file. Relative days
// ("today", "tomorrow") are resolved against now, so a seed file works on
// any day of first launch. Entries with an unparsable day are skipped.
func LoadSeed(path string, now time.Time) ([]models.CalendarEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	events := make([]models.CalendarEvent, 0, len(file.Events))
	for _, entry := range file.Events {
		date, err := resolveDay(entry.Day, now)
		if err != nil {
			continue
		}

		events = append(events, models.CalendarEvent{
			ID:          uuid.New().String(),
			Title:       entry.Title,
			Description: entry.Description,
			Date:        date,
			Time:        entry.Time,
			Category:    seedCategory(entry.Category),
		})
	}

	return events, nil
}

func resolveDay(day string, now time.Time) (time.Time, error) {
	switch day {
	case "", "today":
		return startOfDay(now), nil
	case "tomorrow":
		return startOfDay(now.Add(24 * time.Hour)), nil
	}

	t, err := time.ParseInLocation("2006-01-02", day, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid seed day %q: %w", day, err)
	}
	return t, nil
}

func seedCategory(category string) models.EventCategory {
	switch models.EventCategory(category) {
	case models.EventMedication, models.EventAppointment, models.EventExercise:
		return models.EventCategory(category)
	}
	return models.EventOther
}
