// Package render prints grids and tables as aligned text or JSON lines.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/filc/internal/model"
)

// Options selects the output form of a render call.
type Options struct {
	Machine bool
	Reverse bool
	Number  int
}

// Grid writes a grid as a styled table, or as one JSON line in machine mode.
func Grid(w io.Writer, grid model.Grid, st Styler, opts Options) error {
	if opts.Machine {
		return JSON(w, grid)
	}
	if grid.Title != "" {
		if _, err := fmt.Fprintln(w, st.Title(grid.Title)); err != nil {
			return err
		}
	}
	if grid.Empty() {
		return nil
	}
	rows := make([][]string, len(grid.Rows))
	for i, row := range grid.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = st.Cell(c)
		}
		rows[i] = cells
	}
	return writeLines(w, formatTable(grid.Header, rows, map[int]bool{0: true}))
}

// Table writes rows under headers. Reverse and Number apply before printing.
func Table(w io.Writer, headers []string, rows [][]string, opts Options) error {
	rows = Limit(rows, opts.Reverse, opts.Number)
	return writeLines(w, formatTable(headers, rows, nil))
}

// Limit reverses rows when asked and keeps at most n of them (n <= 0 keeps all).
func Limit[T any](rows []T, reverse bool, n int) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// displayWidth ignores ANSI escapes and counts wide runes twice.
func displayWidth(value string) int {
	return lipgloss.Width(value)
}
