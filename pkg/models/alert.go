package models

import "time"

// AlertCategory identifies what triggered a health alert
type AlertCategory string

const (
	AlertHeartRateHigh AlertCategory = "heart_rate_high"
	AlertHeartRateLow  AlertCategory = "heart_rate_low"
	AlertCalendarEvent AlertCategory = "calendar_event"
)

// Severity grades how urgent a health alert is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// HealthAlert represents an immediately actionable health notification.
// Unlike a CalendarEvent it has no due time; it is eligible for
// notification the instant it is created and unacknowledged.
type HealthAlert struct {
	ID           string        `json:"id"`
	Category     AlertCategory `json:"category"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Timestamp    time.Time     `json:"timestamp"` // creation time, not a future-due time
	Severity     Severity      `json:"severity"`
	Acknowledged bool          `json:"acknowledged"`
}

// HeartRateReading is a single pulse measurement from a device or manual entry
type HeartRateReading struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Rate      int       `json:"rate"` // beats per minute
	Source    string    `json:"source"`
}
