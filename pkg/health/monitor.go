// Package health turns heart-rate readings into health alerts.
package health

import (
	"fmt"
	"log"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/models"
	"github.com/KongSugoi/zencare-companion/pkg/store"
	"github.com/google/uuid"
)

// Normal resting heart-rate band and the critical thresholds beyond which
// an alert is graded high severity.
const (
	NormalMin    = 60
	NormalMax    = 100
	CriticalLow  = 40
	CriticalHigh = 120
)

// Monitor records heart-rate readings and raises a HealthAlert whenever a
// reading falls outside the normal band.
type Monitor struct {
	store *store.EventStore
}

func NewMonitor(s *store.EventStore) *Monitor {
	return &Monitor{store: s}
}

// Record stores the reading and, if it is out of range, creates the
// corresponding alert. The returned alert is nil for normal readings.
func (m *Monitor) Record(rate int, timestamp time.Time, source string) *models.HealthAlert {
	reading := models.HeartRateReading{
		ID:        uuid.New().String(),
		Timestamp: timestamp,
		Rate:      rate,
		Source:    source,
	}
	m.store.AddReading(reading)

	if rate >= NormalMin && rate <= NormalMax {
		return nil
	}

	alert := models.HealthAlert{
		ID:        uuid.New().String(),
		Timestamp: timestamp,
		Severity:  models.SeverityMedium,
	}

	if rate < NormalMin {
		alert.Category = models.AlertHeartRateLow
		alert.Title = "Low heart rate"
	} else {
		alert.Category = models.AlertHeartRateHigh
		alert.Title = "High heart rate"
	}
	alert.Description = fmt.Sprintf(
		"Heart rate %d bpm is outside the normal range (%d-%d bpm). Please rest and consult a doctor if this persists.",
		rate, NormalMin, NormalMax)

	if rate < CriticalLow || rate > CriticalHigh {
		alert.Severity = models.SeverityHigh
	}

	m.store.AddAlert(alert)
	log.Printf("Health alert raised: %s (%d bpm, severity %s)", alert.Title, rate, alert.Severity)

	return &alert
}
