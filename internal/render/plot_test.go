package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	if err := Chart(&buf, "Average", []float64{5, 4.5, 4.33, 4.25}, 20, 4); err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title and 4 rows, got %d lines", len(lines))
	}
	if lines[0] != "Average" {
		t.Fatalf("expected title, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], " 5.00") || !strings.HasPrefix(lines[4], " 4.25") {
		t.Fatalf("unexpected axis labels:\n%s", buf.String())
	}
}

func TestChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Chart(&buf, "Average", nil, 20, 4); err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series")
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := axisLabelWidth + displayWidth(axisSeparator)
	if got := PlotWidthFor(80); got != 80-axisWidth {
		t.Fatalf("expected width %d, got %d", 80-axisWidth, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}
