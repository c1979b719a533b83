package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"exifstrip/internal/config"
	"exifstrip/internal/preflight"
	"exifstrip/internal/report"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check ExifTool, the work directory and the log directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			exeDir, err := config.ExecutableDir()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, exeDir)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(doctorLines(ctx, results, report.ShouldColorize(out)), "\n"))

			failed := 0
			for _, res := range results {
				if checkStatus(res) == statusError {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
}

func doctorLines(ctx *commandContext, results []preflight.Result, colorize bool) []string {
	lines := renderSectionHeader("Configuration", colorize)
	if ctx.configSeen {
		lines = append(lines, renderStatusLine("Config file", statusInfo, ctx.configPath, colorize))
	} else {
		lines = append(lines, renderStatusLine("Config file", statusInfo, "defaults (no file found)", colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	for _, res := range results {
		lines = append(lines, renderCheckLine(res, colorize))
	}
	return lines
}
