// Package report renders the console output of a strip run.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"exifstrip/internal/faults"
	"exifstrip/internal/imagefmt"
	"exifstrip/internal/inspect"
	"exifstrip/internal/strip"
)

const ruleWidth = 60

// Reporter writes progress and results for one run.
type Reporter struct {
	out     io.Writer
	printer *message.Printer

	good func(a ...interface{}) string
	bad  func(a ...interface{}) string
	warn func(a ...interface{}) string
	info func(a ...interface{}) string
}

// New returns a Reporter writing to out. Color is applied only when
// colorize is set.
func New(out io.Writer, colorize bool) *Reporter {
	return &Reporter{
		out:     out,
		printer: message.NewPrinter(language.English),
		good:    Paint(colorize, color.FgGreen),
		bad:     Paint(colorize, color.FgRed),
		warn:    Paint(colorize, color.FgYellow),
		info:    Paint(colorize, color.FgBlue),
	}
}

// ShouldColorize reports whether writer is a terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Paint returns a sprint function in attrs, or a plain one when enabled is
// false.
func Paint(enabled bool, attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Banner opens the run.
func (r *Reporter) Banner(version string) {
	r.println(r.info(fmt.Sprintf("exifstrip %s - image metadata remover", version)))
	r.rule()
}

// ToolFound reports the located ExifTool version.
func (r *Reporter) ToolFound(version string) {
	r.println(r.good("✓") + " ExifTool " + version)
	r.println("")
}

// DirectoryError reports that the work directory could not be listed.
func (r *Reporter) DirectoryError(err error) {
	r.println(r.bad(fmt.Sprintf("Error: cannot read directory - %v", err)))
}

// LockHeld reports that another run already owns dir.
func (r *Reporter) LockHeld(dir string) {
	r.println(r.bad("Error: another exifstrip run is already processing " + dir))
}

// NoImages reports an empty work directory.
func (r *Reporter) NoImages(dir string) {
	exts := make([]string, 0, len(imagefmt.DiscoveryExtensions))
	for _, ext := range imagefmt.DiscoveryExtensions {
		exts = append(exts, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	r.println("No image files found in the directory")
	r.println("Supported formats: " + strings.Join(exts, ", "))
	r.println("Directory: " + dir)
}

// Found announces the number of candidates about to be inspected.
func (r *Reporter) Found(count int) {
	r.println(fmt.Sprintf("Found %d candidate image %s", count, plural(count, "file", "files")))
	r.println("")
	r.println("Checking file formats and EXIF data...")
}

// Inspected prints one progress line for an inspection result.
func (r *Reporter) Inspected(index, total int, res inspect.Result) {
	prefix := fmt.Sprintf("  [%2d/%d] %s", index, total, res.Name)
	if !res.Valid() {
		r.println(prefix + " " + r.bad(fmt.Sprintf("[error: %s]", describeInspectError(res))))
		return
	}
	status := []string{"type: " + res.Format.String()}
	if res.Mismatch {
		status = append(status, r.warn("⚠ extension mismatch"))
	}
	if res.HasMetadata {
		status = append(status, "has EXIF")
	} else {
		status = append(status, "no EXIF")
	}
	r.println(prefix + " [" + strings.Join(status, ", ") + "]")
}

// InspectionTable renders all valid results as a table.
func (r *Reporter) InspectionTable(results []inspect.Result) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		if !res.Valid() {
			rows = append(rows, []string{res.Name, "-", "-", "invalid: " + describeInspectError(res)})
			continue
		}
		exif := "no"
		if res.HasMetadata {
			exif = "yes"
		}
		ext := "ok"
		if res.Mismatch {
			ext = "mismatch (use " + res.Format.CanonicalExt() + ")"
		}
		rows = append(rows, []string{res.Name, res.Format.String(), exif, ext})
	}
	r.println(renderTable(inspectionColumns, rows, nil))
}

// NoValidFiles reports that every candidate was rejected.
func (r *Reporter) NoValidFiles() {
	r.println("")
	r.println("No valid image files found")
}

// Mismatches prints the grouped extension mismatch warning.
func (r *Reporter) Mismatches(results []inspect.Result) {
	if len(results) == 0 {
		return
	}
	r.println("")
	r.println(r.warn(fmt.Sprintf("⚠  %d %s an extension that does not match the actual format:",
		len(results), plural(len(results), "file has", "files have"))))
	for _, res := range results {
		r.println(fmt.Sprintf("  - %s (actual format: %s)", res.Name, res.Format))
	}
	r.println("  These files can still be processed; a temporary copy with the correct extension is used")
}

// NoMetadata reports that nothing needs stripping.
func (r *Reporter) NoMetadata(valid int) {
	r.println("")
	r.println(fmt.Sprintf("No images with EXIF data found (%d valid %s checked)", valid, plural(valid, "file", "files")))
}

// Pending lists the files about to be stripped and what will happen to them.
func (r *Reporter) Pending(results []inspect.Result) {
	r.println("")
	r.println(fmt.Sprintf("%d %s with EXIF data to process:", len(results), plural(len(results), "file", "files")))
	for _, res := range results {
		r.println("  - " + res.Name)
	}
	r.println("")
	r.println("How files are processed:")
	r.println("• EXIF is removed precisely, the image is not re-encoded")
	r.println("• The correct orientation is kept")
	r.println("• File size stays almost the same")
	r.println("• Image quality is fully preserved")
	r.println("• Extension mismatches are handled automatically")
	r.println("")
	r.println(r.warn("Note: capture details, GPS location, camera settings and other metadata will be removed"))
	r.println("")
}

// Cancelled reports that the user declined.
func (r *Reporter) Cancelled() {
	r.println("Operation cancelled")
}

// DryRun reports that a dry run stopped before modifying anything.
func (r *Reporter) DryRun() {
	r.println(r.info("Dry run: no files were modified"))
}

// Start separates inspection from processing output.
func (r *Reporter) Start() {
	r.println("")
	r.println("Processing...")
	r.rule()
}

// FileHeader introduces one file being stripped.
func (r *Reporter) FileHeader(index, total int, name string) {
	r.println(fmt.Sprintf("[%2d/%d] %s", index, total, name))
}

// Outcome prints the detail lines for a stripped file.
func (r *Reporter) Outcome(out strip.Outcome) {
	if out.BackupPath != "" {
		r.println("    Backup: " + out.BackupPath)
	}
	if out.UsedTemp {
		r.println("    Using a temporary copy to work around the extension mismatch")
	}
	if out.OK() {
		r.println("    " + r.good(fmt.Sprintf("✓ Done (size change: %+d bytes)", out.Delta())))
		for _, w := range out.Warnings {
			r.println("    " + r.warn("⚠ verify: "+w))
		}
		return
	}
	r.println("    " + r.bad(DescribeFailure(out.Err)))
}

// ResultsTable renders one row per processed file and a footer totalling
// the successful size changes.
func (r *Reporter) ResultsTable(outcomes []strip.Outcome) {
	rows := make([][]string, 0, len(outcomes))
	var ok, failed int
	var total int64
	for _, out := range outcomes {
		name := filepath.Base(out.Path)
		status, delta := "ok", r.printer.Sprintf("%+d", out.Delta())
		if !out.OK() {
			status, delta = "failed", "-"
			failed++
		} else {
			ok++
			total += out.Delta()
			if len(out.Warnings) > 0 {
				status = "ok (warnings)"
			}
		}
		rows = append(rows, []string{name, status, delta, out.BackupPath})
	}
	footer := []string{
		"Total",
		fmt.Sprintf("%d ok, %d failed", ok, failed),
		r.printer.Sprintf("%+d", total),
		"",
	}
	r.println(renderTable(resultColumns, rows, footer))
}

// Summary prints the final counters.
func (r *Reporter) Summary(processed, failed int, delta int64) {
	r.println("")
	r.rule()
	r.println("Done!")
	r.println(r.good(fmt.Sprintf("✓ Processed: %d %s", processed, plural(processed, "file", "files"))))
	if failed > 0 {
		r.println(r.bad(fmt.Sprintf("✗ Failed: %d %s", failed, plural(failed, "file", "files"))))
	}
	if processed > 0 {
		r.println(r.DescribeDelta(delta))
	}
	r.rule()
}

// DescribeDelta phrases an aggregate size change. Negative means smaller.
func (r *Reporter) DescribeDelta(delta int64) string {
	switch {
	case delta < 0:
		return fmt.Sprintf("📉 Total size decreased by %s", r.bytes(-delta))
	case delta > 0:
		return fmt.Sprintf("📈 Total size increased by %s", r.bytes(delta))
	default:
		return "📊 File sizes unchanged"
	}
}

// Interrupted reports a user interrupt.
func (r *Reporter) Interrupted() {
	r.println("")
	r.println("")
	r.println(r.warn("⚠  Operation interrupted by user"))
}

// ConfigError reports a config file or flag that could not be applied.
func (r *Reporter) ConfigError(err error) {
	r.println("")
	r.println(r.bad(fmt.Sprintf("❌ Configuration error: %v", err)))
	r.println("Fix the file, or run \"exifstrip config init --overwrite\" to start over")
}

// Unexpected reports an error that escaped the normal flow.
func (r *Reporter) Unexpected(err error) {
	r.println("")
	r.println(r.bad(fmt.Sprintf("❌ Unexpected error: %v", err)))
	r.println("Check whether the files are in use by another program")
}

// DescribeFailure renders a per-file strip failure.
func DescribeFailure(err error) string {
	switch {
	case errors.Is(err, faults.ErrTimeout):
		return "✗ Timed out"
	case errors.Is(err, faults.ErrExternalTool):
		cause := faults.Cause(err)
		var te *faults.ToolError
		if errors.As(err, &te) && strings.TrimSpace(te.Stderr) == "" {
			cause = "ExifTool returned an error"
		}
		return "✗ Failed: " + cause
	default:
		return fmt.Sprintf("✗ Error: %v", err)
	}
}

func describeInspectError(res inspect.Result) string {
	switch err := res.Err; {
	case errors.Is(err, faults.ErrUnsupported):
		if res.Format == "" {
			return "unsupported format"
		}
		return "unsupported format: " + res.Format.String()
	case errors.Is(err, faults.ErrTimeout):
		return "timed out"
	case errors.Is(err, faults.ErrExternalTool):
		return "cannot read file info"
	default:
		return err.Error()
	}
}

func (r *Reporter) bytes(n int64) string {
	s := r.printer.Sprintf("%d bytes", n)
	if n >= 1000 {
		s += " (" + humanize.Bytes(uint64(n)) + ")"
	}
	return s
}

func (r *Reporter) rule() {
	r.println(strings.Repeat("=", ruleWidth))
}

func (r *Reporter) println(line string) {
	fmt.Fprintln(r.out, line)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
