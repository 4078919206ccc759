package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeServer(); err != nil {
		return err
	}
	c.normalizeCleanup()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	c.Server.Token = strings.TrimSpace(c.Server.Token)
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

func (c *Config) normalizeCleanup() {
	c.Cleanup.MediaType = strings.ToLower(strings.TrimSpace(c.Cleanup.MediaType))
	if c.Cleanup.MediaType == "" {
		c.Cleanup.MediaType = defaultMediaType
	}
	c.Cleanup.MinAge = strings.ToLower(strings.TrimSpace(c.Cleanup.MinAge))
	c.Cleanup.KeepTag = strings.TrimSpace(c.Cleanup.KeepTag)
	if c.Cleanup.KeepTag == "" {
		c.Cleanup.KeepTag = defaultKeepTag
	}
	if c.Cleanup.PageSize <= 0 {
		c.Cleanup.PageSize = defaultPageSize
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.History.Dir) == "" {
		c.History.Dir = defaultHistoryDir
	}
	if c.History.Dir, err = expandPath(c.History.Dir); err != nil {
		return fmt.Errorf("history.dir: %w", err)
	}
	if strings.TrimSpace(c.Logging.LogDir) == "" {
		c.Logging.LogDir = defaultLogDir
	}
	if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
		return fmt.Errorf("logging.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
