package config

import (
	"os"
	"strings"
)

// Environment variables recognized for cron-style invocation. They take
// precedence over file values, preserving the contract of earlier releases:
//
//	ABS_URL     base URL of the Audiobookshelf instance
//	ABS_TOKEN   API token
//	VERIFY_SSL  0/false/no disables certificate verification
//	DRY_RUN     1/true/yes previews deletions without deleting
//	MEDIA_TYPE  PODCASTS, AUDIOBOOKS, or EVERYTHING
//	AGE         minimum age filter, e.g. 5d, 4w, 3m, 1y
//	DEBUG       1/true/yes forces debug-level logging
func (c *Config) applyEnvOverrides() {
	if value, ok := lookupEnv("ABS_URL"); ok {
		c.Server.URL = value
	}
	if value, ok := lookupEnv("ABS_TOKEN"); ok {
		c.Server.Token = value
	}
	if value, ok := lookupEnv("VERIFY_SSL"); ok {
		c.Server.VerifySSL = !isFalsy(value)
	}
	if value, ok := lookupEnv("DRY_RUN"); ok {
		c.Cleanup.DryRun = isTruthy(value)
	}
	if value, ok := lookupEnv("MEDIA_TYPE"); ok {
		c.Cleanup.MediaType = value
	}
	if value, ok := lookupEnv("AGE"); ok {
		c.Cleanup.MinAge = value
	}
	if value, ok := lookupEnv("DEBUG"); ok && isTruthy(value) {
		c.Logging.Level = "debug"
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func isFalsy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no":
		return true
	}
	return false
}
