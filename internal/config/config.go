package config

import (
	"os"
	"strconv"

	"github.com/apalumbo/stima/internal/estimate"
)

type Config struct {
	// Server
	Port   string
	APIKey string // empty disables auth on the API

	// Estimate defaults, overridable per run by flags or request params.
	MinHourlyRate  float64
	MaxHourlyRate  float64
	MinWeeklyHours float64
	MaxWeeklyHours float64

	DownPaymentPct int
	Milestones     int
	FeedbackWeeks  int

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port:   envOr("PORT", "8091"),
		APIKey: os.Getenv("STIMA_API_KEY"),

		MinHourlyRate:  envFloat("STIMA_MIN_HOURLY_RATE", 34),
		MaxHourlyRate:  envFloat("STIMA_MAX_HOURLY_RATE", 36),
		MinWeeklyHours: envFloat("STIMA_MIN_WEEKLY_HOURS", 12),
		MaxWeeklyHours: envFloat("STIMA_MAX_WEEKLY_HOURS", 16),

		DownPaymentPct: envInt("STIMA_DOWN_PAYMENT_PCT", 50),
		Milestones:     envInt("STIMA_MILESTONES", 0),
		FeedbackWeeks:  envInt("STIMA_FEEDBACK_WEEKS", 2),

		MaxUploadBytes: envInt64("STIMA_MAX_UPLOAD_BYTES", 10485760), // 10MB
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

// Estimate builds the ranged-mode estimate configuration from the
// defaults.
func (c Config) Estimate() estimate.Config {
	return estimate.Config{
		Rate:           estimate.Ranged(c.MinHourlyRate, c.MaxHourlyRate),
		WeeklyHours:    estimate.Ranged(c.MinWeeklyHours, c.MaxWeeklyHours),
		DownPaymentPct: c.DownPaymentPct,
		Milestones:     c.Milestones,
		FeedbackWeeks:  c.FeedbackWeeks,
	}
}

func (c Config) Validate() error {
	return c.Estimate().Validate()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
