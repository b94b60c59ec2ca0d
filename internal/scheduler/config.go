package scheduler

import "time"

// Config controls when the nightly run fires.
type Config struct {
	// At is the local wall-clock trigger time, "HH:MM".
	At           string
	TickInterval time.Duration
	JobTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		At:           "22:00",
		TickInterval: time.Minute,
		JobTimeout:   30 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.At == "" {
		c.At = defaults.At
	}
	if c.TickInterval <= 0 {
		c.TickInterval = defaults.TickInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}
