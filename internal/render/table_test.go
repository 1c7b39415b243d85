package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/verte-zerg/filc/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{".", "subject", "room"}
	rows := [][]string{
		{"1", "Matematika", "12"},
		{"10", "Ének", ""},
	}
	lines := formatTable(headers, rows, map[int]bool{0: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " .  subject     room" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1  Matematika  12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10  Ének" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestGridPlainAndMachine(t *testing.T) {
	grid := model.Grid{
		Title:  "Monday, 2026-10-19",
		Header: []string{".", "Monday"},
		Rows: [][]model.Cell{
			{{Text: "1"}, {Text: "Matematika 12", Status: model.StatusCancelled}},
		},
	}
	var buf bytes.Buffer
	if err := Grid(&buf, grid, Plain(), Options{}); err != nil {
		t.Fatalf("grid: %v", err)
	}
	want := "Monday, 2026-10-19\n.  Monday\n1  Matematika 12\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	if err := Grid(&buf, grid, Plain(), Options{Machine: true}); err != nil {
		t.Fatalf("grid json: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected a single JSON line, got %q", buf.String())
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(buf.String(), `"status":"cancelled"`) {
		t.Fatalf("expected status name in json: %s", buf.String())
	}
}

func TestTableLimit(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}}
	var buf bytes.Buffer
	if err := Table(&buf, []string{"X"}, rows, Options{Reverse: true, Number: 2}); err != nil {
		t.Fatalf("table: %v", err)
	}
	if buf.String() != "X\nc\nb\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if len(rows) != 3 || rows[0][0] != "a" {
		t.Fatalf("input rows must not be modified: %v", rows)
	}
}

func TestStylerTruncatesAndStaysPlain(t *testing.T) {
	long := strings.Repeat("x", maxCellWidth+10)
	got := Plain().Cell(model.Cell{Text: long, Status: model.StatusTest})
	if !strings.HasSuffix(got, "…") || displayWidth(got) > maxCellWidth {
		t.Fatalf("expected truncation to %d columns, got %q", maxCellWidth, got)
	}
	var buf bytes.Buffer
	if got := NewStyler(&buf, false).Cell(model.Cell{Text: "Fizika", Status: model.StatusCancelled}); got != "Fizika" {
		t.Fatalf("expected plain text without color, got %q", got)
	}
}
