package config

import (
	"encoding/json"
	"os"
	"sync"
)

// PracticeConfig tunes the practice tables. Every field has a safe default so
// a missing or partial file never blocks startup.
type PracticeConfig struct {
	// TurnSeconds is the full countdown for one turn.
	TurnSeconds int `json:"turn_seconds"`
	// FirstWarningSeconds and SecondWarningSeconds mark the remaining time
	// at which the one-shot warnings fire.
	FirstWarningSeconds  int `json:"first_warning_seconds"`
	SecondWarningSeconds int `json:"second_warning_seconds"`

	// BotThinkMinMs and BotThinkMaxMs bound the random pause before each
	// bot move so opponents do not act instantly.
	BotThinkMinMs int `json:"bot_think_min_ms"`
	BotThinkMaxMs int `json:"bot_think_max_ms"`

	// DefaultBotCount and DefaultDifficulty apply when the match creation
	// request leaves them out.
	DefaultBotCount   int    `json:"default_bot_count"`
	DefaultDifficulty string `json:"default_difficulty"`

	// BotIdentitiesPath points at the bot name pool file.
	BotIdentitiesPath string `json:"bot_identities_path"`
}

func defaults() PracticeConfig {
	return PracticeConfig{
		TurnSeconds:          60,
		FirstWarningSeconds:  30,
		SecondWarningSeconds: 15,
		BotThinkMinMs:        800,
		BotThinkMaxMs:        2500,
		DefaultBotCount:      2,
		DefaultDifficulty:    "mid",
		BotIdentitiesPath:    "data/bot_identities.json",
	}
}

var (
	loadOnce sync.Once
	loaded   PracticeConfig
)

// Load reads the practice config from path once per process, overlaying the
// file on the defaults. Unset or invalid fields keep their default values.
func Load(path string) PracticeConfig {
	loadOnce.Do(func() {
		loaded = parse(path)
	})
	return loaded
}

func parse(path string) PracticeConfig {
	cfg := defaults()
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	var file PracticeConfig
	if err := json.Unmarshal(raw, &file); err != nil {
		return cfg
	}
	return merge(cfg, file)
}

func merge(base, file PracticeConfig) PracticeConfig {
	if file.TurnSeconds > 0 {
		base.TurnSeconds = file.TurnSeconds
	}
	if file.FirstWarningSeconds > 0 && file.FirstWarningSeconds < base.TurnSeconds {
		base.FirstWarningSeconds = file.FirstWarningSeconds
	}
	if file.SecondWarningSeconds > 0 && file.SecondWarningSeconds < base.FirstWarningSeconds {
		base.SecondWarningSeconds = file.SecondWarningSeconds
	}
	if file.BotThinkMinMs > 0 {
		base.BotThinkMinMs = file.BotThinkMinMs
	}
	if file.BotThinkMaxMs >= base.BotThinkMinMs {
		base.BotThinkMaxMs = file.BotThinkMaxMs
	}
	if file.DefaultBotCount > 0 {
		base.DefaultBotCount = file.DefaultBotCount
	}
	if file.DefaultDifficulty != "" {
		base.DefaultDifficulty = file.DefaultDifficulty
	}
	if file.BotIdentitiesPath != "" {
		base.BotIdentitiesPath = file.BotIdentitiesPath
	}
	return base
}
