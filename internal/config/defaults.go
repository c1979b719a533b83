package config

import "time"

const (
	defaultConfigPath            = "~/.config/exifstrip/config.toml"
	localConfigName              = "exifstrip.toml"
	defaultVersionTimeoutSeconds = 5
	defaultQueryTimeoutSeconds   = 10
	defaultStripTimeoutSeconds   = 30
	defaultBackupSuffix          = "_backup"
	defaultLogFormat             = "console"
	defaultLogLevel              = "warn"
)

// Backup modes.
const (
	BackupAsk    = "ask"
	BackupAlways = "always"
	BackupNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Exiftool: Exiftool{
			VersionTimeoutSeconds: defaultVersionTimeoutSeconds,
			QueryTimeoutSeconds:   defaultQueryTimeoutSeconds,
			StripTimeoutSeconds:   defaultStripTimeoutSeconds,
		},
		Backup: Backup{
			Mode:   BackupAsk,
			Suffix: defaultBackupSuffix,
		},
		Verify: Verify{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// VersionTimeout bounds the -ver probe used while locating the tool.
func (c *Config) VersionTimeout() time.Duration {
	return time.Duration(c.Exiftool.VersionTimeoutSeconds) * time.Second
}

// QueryTimeout bounds each FileType and EXIF presence query.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Exiftool.QueryTimeoutSeconds) * time.Second
}

// StripTimeout bounds a single strip invocation.
func (c *Config) StripTimeout() time.Duration {
	return time.Duration(c.Exiftool.StripTimeoutSeconds) * time.Second
}
