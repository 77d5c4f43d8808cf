package practice

import (
	"os"
	"strconv"
)

// Config holds the engine tunables.
type Config struct {
	// Bounds for the randomized daily pool size.
	DailyPoolMin int
	DailyPoolMax int
	// Number of words pulled into one practice sitting.
	SessionBatchSize int
	// Number of dictionary words offered per /addwords batch.
	OnboardingBatchSize int
	// IANA timezone used for day boundaries and reminders.
	Timezone string
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DailyPoolMin:        67,
		DailyPoolMax:        76,
		SessionBatchSize:    10,
		OnboardingBatchSize: 10,
		Timezone:            "Europe/Amsterdam",
	}
}

// ApplyEnv overrides config values from environment variables when set.
func (c *Config) ApplyEnv() {
	if v, ok := envInt("DAILY_POOL_MIN"); ok {
		c.DailyPoolMin = v
	}
	if v, ok := envInt("DAILY_POOL_MAX"); ok {
		c.DailyPoolMax = v
	}
	if v, ok := envInt("PRACTICE_BATCH_SIZE"); ok {
		c.SessionBatchSize = v
	}
	if tz := os.Getenv("TZ_NAME"); tz != "" {
		c.Timezone = tz
	}
}

func envInt(name string) (int, bool) {
	s := os.Getenv(name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
