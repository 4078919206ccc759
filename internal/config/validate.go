package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MediaTypes accepted by cleanup.media_type.
const (
	MediaTypePodcasts   = "podcasts"
	MediaTypeAudiobooks = "audiobooks"
	MediaTypeEverything = "everything"
)

// Mirrors the sweep package's age grammar; importing it here would cycle
// through notifications.
var minAgePattern = regexp.MustCompile(`^\d+\s*[dwmy]$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCleanup(); err != nil {
		return err
	}
	if err := c.validateSchedule(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required. Set ABS_URL or edit %s (create with 'absweep config init')", configHint())
	}
	if !strings.HasPrefix(c.Server.URL, "http://") && !strings.HasPrefix(c.Server.URL, "https://") {
		return fmt.Errorf("server.url must start with http:// or https://, got %q", c.Server.URL)
	}
	if c.Server.Token == "" {
		return fmt.Errorf("server.token is required. Set ABS_TOKEN or edit %s (create with 'absweep config init')", configHint())
	}
	return nil
}

func (c *Config) validateCleanup() error {
	switch c.Cleanup.MediaType {
	case MediaTypePodcasts, MediaTypeAudiobooks, MediaTypeEverything:
	default:
		return fmt.Errorf("cleanup.media_type must be %s, %s, or %s, got %q",
			MediaTypePodcasts, MediaTypeAudiobooks, MediaTypeEverything, c.Cleanup.MediaType)
	}
	if c.Cleanup.MinAge != "" && !minAgePattern.MatchString(c.Cleanup.MinAge) {
		return fmt.Errorf("cleanup.min_age must be a number plus d, w, m, or y (e.g. 3m), got %q", c.Cleanup.MinAge)
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if c.Schedule.IntervalMinutes <= 0 {
		return errors.New("schedule.interval_minutes must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func configHint() string {
	path, err := DefaultConfigPath()
	if err != nil {
		return "~/.config/absweep/config.toml"
	}
	return path
}
