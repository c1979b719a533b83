package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"exifstrip/internal/config"
	"exifstrip/internal/exiftool"
	"exifstrip/internal/faults"
	"exifstrip/internal/logging"
	"exifstrip/internal/orchestrator"
	"exifstrip/internal/prompt"
	"exifstrip/internal/report"
)

// runStrip performs one strip pass. Outcomes the user has already been
// told about never turn into a non-zero exit, and every report ends with
// the pause, including a config that fails to load.
func runStrip(cmd *cobra.Command, ctx *commandContext, flags *runFlags) error {
	out := cmd.OutOrStdout()
	reporter := report.New(out, report.ShouldColorize(out))
	in := cmd.InOrStdin()
	interactive := false
	if file, ok := in.(*os.File); ok {
		interactive = prompt.IsTerminal(file)
	}
	prompter := prompt.New(in, out, interactive)
	defer prompter.Pause(cmd.Context())

	cfg, err := ctx.ensureConfig()
	if err == nil {
		err = applyRunFlags(cmd, cfg, flags)
	}
	if err != nil {
		reporter.ConfigError(err)
		return nil
	}

	exeDir, err := config.ExecutableDir()
	if err != nil {
		reporter.Unexpected(err)
		return nil
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		reporter.Unexpected(fmt.Errorf("init logger: %w", err))
		return nil
	}

	runner := orchestrator.New(newLocator(cfg, exeDir, logger), reporter, prompter, logger, orchestrator.Options{
		Dir:          cfg.ResolveWorkDir(exeDir),
		ExeDir:       exeDir,
		GOOS:         runtime.GOOS,
		Version:      version,
		AssumeYes:    flags.yes,
		BackupMode:   cfg.Backup.Mode,
		BackupSuffix: cfg.Backup.Suffix,
		DryRun:       flags.dryRun,
		Verify:       cfg.Verify.Enabled,
	})

	_, err = runner.Run(cmd.Context())
	switch {
	case err == nil:
	case orchestrator.IsInterrupt(err):
		reporter.Interrupted()
	case faults.Fatal(err):
		logger.Debug("run stopped", logging.Error(err))
	default:
		logger.Error("run failed", logging.Error(err))
		reporter.Unexpected(err)
	}
	return nil
}

// applyRunFlags overlays explicitly set flags on the loaded config.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) error {
	changed := cmd.Flags().Changed
	if changed("dir") {
		dir, err := config.ExpandPath(strings.TrimSpace(flags.dir))
		if err != nil {
			return fmt.Errorf("resolve --dir: %w", err)
		}
		cfg.Paths.WorkDir = dir
	}
	if changed("exiftool") {
		path := strings.TrimSpace(flags.exiftool)
		if strings.ContainsAny(path, `/\~`) {
			expanded, err := config.ExpandPath(path)
			if err != nil {
				return fmt.Errorf("resolve --exiftool: %w", err)
			}
			path = expanded
		}
		cfg.Exiftool.Path = path
	}
	if changed("stay-open") {
		cfg.Exiftool.StayOpen = flags.stayOpen
	}
	switch {
	case flags.backup:
		cfg.Backup.Mode = config.BackupAlways
	case flags.noBackup:
		cfg.Backup.Mode = config.BackupNever
	}
	return nil
}

// newLocator finds ExifTool and, when configured, upgrades the located
// binary to a persistent session. A session that fails to start falls back
// to one process per call.
func newLocator(cfg *config.Config, exeDir string, logger *slog.Logger) orchestrator.Locator {
	return func(ctx context.Context) (orchestrator.MetadataTool, error) {
		client, err := exiftool.Locate(ctx, exiftool.LocateOptions{
			Configured: cfg.Exiftool.Path,
			ExeDir:     exeDir,
			Timeouts: exiftool.Timeouts{
				Version: cfg.VersionTimeout(),
				Query:   cfg.QueryTimeout(),
				Strip:   cfg.StripTimeout(),
			},
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		if !cfg.Exiftool.StayOpen {
			return client, nil
		}
		session, err := exiftool.OpenSession(client, logger)
		if err != nil {
			logger.Warn("stay-open session unavailable; running one process per call", logging.Error(err))
			return client, nil
		}
		return session, nil
	}
}
