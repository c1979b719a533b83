package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column is one table column of a run report.
type column struct {
	title string
	align text.Align
	// maxWidth wraps longer cells, such as backup paths. Zero leaves the
	// column unbounded.
	maxWidth int
}

var (
	inspectionColumns = []column{
		{title: "File", align: text.AlignLeft},
		{title: "Format", align: text.AlignLeft},
		{title: "EXIF", align: text.AlignCenter},
		{title: "Extension", align: text.AlignLeft},
	}
	resultColumns = []column{
		{title: "File", align: text.AlignLeft},
		{title: "Result", align: text.AlignLeft},
		{title: "Size change (bytes)", align: text.AlignRight},
		{title: "Backup", align: text.AlignLeft, maxWidth: 48},
	}
)

// renderTable draws rows under cols. A non-nil footer is drawn beneath the
// rows and aligned like the column above it.
func renderTable(cols []column, rows [][]string, footer []string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	titles := make([]string, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, col := range cols {
		titles[i] = col.title
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       col.align,
			AlignHeader: text.AlignLeft,
			AlignFooter: col.align,
			WidthMax:    col.maxWidth,
		}
	}
	tw.AppendHeader(tableRow(titles, len(cols)))
	for _, row := range rows {
		tw.AppendRow(tableRow(row, len(cols)))
	}
	if footer != nil {
		tw.AppendFooter(tableRow(footer, len(cols)))
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// tableRow pads or truncates cells to width.
func tableRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
