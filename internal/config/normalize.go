package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeExiftool(); err != nil {
		return err
	}
	c.normalizeBackup()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExiftool() error {
	if strings.TrimSpace(c.Exiftool.Path) == "" {
		if value, ok := os.LookupEnv("EXIFTOOL_PATH"); ok {
			c.Exiftool.Path = value
		}
	}
	c.Exiftool.Path = strings.TrimSpace(c.Exiftool.Path)
	if c.Exiftool.Path != "" && strings.ContainsAny(c.Exiftool.Path, `/\~`) {
		expanded, err := expandPath(c.Exiftool.Path)
		if err != nil {
			return fmt.Errorf("exiftool.path: %w", err)
		}
		c.Exiftool.Path = expanded
	}
	if c.Exiftool.VersionTimeoutSeconds == 0 {
		c.Exiftool.VersionTimeoutSeconds = defaultVersionTimeoutSeconds
	}
	if c.Exiftool.QueryTimeoutSeconds == 0 {
		c.Exiftool.QueryTimeoutSeconds = defaultQueryTimeoutSeconds
	}
	if c.Exiftool.StripTimeoutSeconds == 0 {
		c.Exiftool.StripTimeoutSeconds = defaultStripTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeBackup() {
	c.Backup.Mode = strings.ToLower(strings.TrimSpace(c.Backup.Mode))
	if c.Backup.Mode == "" {
		c.Backup.Mode = BackupAsk
	}
	if strings.TrimSpace(c.Backup.Suffix) == "" {
		c.Backup.Suffix = defaultBackupSuffix
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
