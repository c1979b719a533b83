package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExiftool(); err != nil {
		return err
	}
	if err := c.validateBackup(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateExiftool() error {
	if c.Exiftool.VersionTimeoutSeconds < 0 {
		return errors.New("exiftool.version_timeout_seconds must be positive")
	}
	if c.Exiftool.QueryTimeoutSeconds < 0 {
		return errors.New("exiftool.query_timeout_seconds must be positive")
	}
	if c.Exiftool.StripTimeoutSeconds < 0 {
		return errors.New("exiftool.strip_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateBackup() error {
	switch c.Backup.Mode {
	case BackupAsk, BackupAlways, BackupNever:
	default:
		return fmt.Errorf("backup.mode must be one of ask, always, never (got %q)", c.Backup.Mode)
	}
	if strings.ContainsAny(c.Backup.Suffix, `/\`) {
		return fmt.Errorf("backup.suffix must not contain path separators (got %q)", c.Backup.Suffix)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
