package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScreener(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateScreener() error {
	if c.Screener.MorningScanHour < 0 || c.Screener.MorningScanHour > 23 {
		return fmt.Errorf("screener.morning_scan_hour must be between 0 and 23, got %d", c.Screener.MorningScanHour)
	}
	if c.Screener.ScanIntervalMinutes < 5 {
		return fmt.Errorf("screener.scan_interval_minutes must be at least 5, got %d", c.Screener.ScanIntervalMinutes)
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.Hour < 0 || c.Report.Hour > 23 {
		return fmt.Errorf("report.hour must be between 0 and 23, got %d", c.Report.Hour)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.TelegramBotToken != "" && c.Notifications.TelegramChatID == "" {
		return errors.New("notifications.telegram_chat_id is required when telegram_bot_token is set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
