package models

import "strings"

// Config holds application configuration
type Config struct {
	AutoStart       bool         `json:"auto_start"`
	ICalSources     []ICalSource `json:"ical_sources"`
	SyncInterval    int          `json:"sync_interval"`     // minutes between iCal syncs
	PollIntervalSec int          `json:"poll_interval_sec"` // seconds between due-event checks
	ToleranceMin    int          `json:"tolerance_min"`     // minutes around the event time that count as due
	PriorityOrder   string       `json:"priority_order"`    // comma-separated categories, most urgent first
	SynthesizeURL   string       `json:"synthesize_url"`    // TTS endpoint; empty disables speech
	Voice           string       `json:"voice"`             // TTS voice name
	SeedFile        string       `json:"seed_file"`         // YAML file with default events; empty disables seeding
}

// ICalSource represents a named iCal calendar source
type ICalSource struct {
	ID   string `json:"id"`   // Unique identifier
	Name string `json:"name"` // Display name
	URL  string `json:"url"`  // iCal URL
}

// Validate checks if the iCal source has required fields
func (s *ICalSource) Validate() bool {
	return s.Name != "" && s.URL != ""
}

// GetPriority parses PriorityOrder into a category list. Unknown names and
// duplicates are skipped; an empty result falls back to the default
// health-before-calendar ordering.
func (c *Config) GetPriority() []NotificationCategory {
	priority := []NotificationCategory{}
	seen := make(map[NotificationCategory]bool)

	for _, part := range strings.Split(c.PriorityOrder, ",") {
		part = strings.TrimSpace(strings.ToLower(part))

		var cat NotificationCategory
		switch part {
		case "health":
			cat = CategoryHealth
		case "calendar":
			cat = CategoryCalendar
		default:
			continue
		}

		if !seen[cat] {
			priority = append(priority, cat)
			seen[cat] = true
		}
	}

	if len(priority) == 0 {
		return DefaultPriority()
	}
	return priority
}
