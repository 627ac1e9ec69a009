package store

import (
	"encoding/json"

	"fyne.io/fyne/v2"
	"github.com/KongSugoi/zencare-companion/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()

	config := &models.Config{
		AutoStart:       prefs.BoolWithFallback("auto_start", false),
		SyncInterval:    prefs.IntWithFallback("sync_interval", 30),
		PollIntervalSec: prefs.IntWithFallback("poll_interval_sec", 10),
		ToleranceMin:    prefs.IntWithFallback("tolerance_min", 1),
		PriorityOrder:   prefs.StringWithFallback("priority_order", "health,calendar"),
		SynthesizeURL:   prefs.String("synthesize_url"),
		Voice:           prefs.StringWithFallback("voice", "sage"),
		SeedFile:        prefs.String("seed_file"),
	}

	// Load iCal sources from JSON string
	icalSourcesJSON := prefs.String("ical_sources")
	if icalSourcesJSON != "" {
		if err := json.Unmarshal([]byte(icalSourcesJSON), &config.ICalSources); err != nil {
			config.ICalSources = []models.ICalSource{}
		}
	} else {
		config.ICalSources = []models.ICalSource{}
	}

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetInt("sync_interval", config.SyncInterval)
	prefs.SetInt("poll_interval_sec", config.PollIntervalSec)
	prefs.SetInt("tolerance_min", config.ToleranceMin)
	prefs.SetString("priority_order", config.PriorityOrder)
	prefs.SetString("synthesize_url", config.SynthesizeURL)
	prefs.SetString("voice", config.Voice)
	prefs.SetString("seed_file", config.SeedFile)

	// Save iCal sources as JSON string
	if icalSourcesJSON, err := json.Marshal(config.ICalSources); err == nil {
		prefs.SetString("ical_sources", string(icalSourcesJSON))
	}
}
