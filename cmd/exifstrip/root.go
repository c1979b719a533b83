package main

import (
	"github.com/spf13/cobra"
)

type runFlags struct {
	dir      string
	yes      bool
	backup   bool
	noBackup bool
	dryRun   bool
	exiftool string
	stayOpen bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags runFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "exifstrip",
		Short: "Strip EXIF metadata from the images in a directory",
		Long: "exifstrip removes EXIF and other metadata from the JPEG, PNG, TIFF, WEBP and BMP\n" +
			"files in its own directory (or --dir) using ExifTool, keeping each image's\n" +
			"orientation. Nothing is changed until you confirm.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The strip run loads its own config so a bad file is reported
			// like any other run outcome.
			if cmd == cmd.Root() || shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(cmd, ctx, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.Flags().StringVar(&flags.dir, "dir", "", "Directory to process (default: the program's directory)")
	rootCmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.Flags().BoolVar(&flags.backup, "backup", false, "Create a backup of every file before stripping")
	rootCmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "Do not create backups")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Inspect and report without modifying files")
	rootCmd.Flags().StringVar(&flags.exiftool, "exiftool", "", "Path to the ExifTool executable")
	rootCmd.Flags().BoolVar(&flags.stayOpen, "stay-open", false, "Keep one ExifTool process running for the whole batch")
	rootCmd.MarkFlagsMutuallyExclusive("backup", "no-backup")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
