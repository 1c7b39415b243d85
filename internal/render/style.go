package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/filc/internal/model"
)

// maxCellWidth caps long topics so tables stay readable.
const maxCellWidth = 48

// Styler maps cell statuses to terminal styles.
type Styler struct {
	color  bool
	title  lipgloss.Style
	styles map[model.Status]lipgloss.Style
}

// NewStyler returns a Styler for w. With color false every cell is plain text.
func NewStyler(w io.Writer, color bool) Styler {
	r := lipgloss.NewRenderer(w)
	return Styler{
		color: color,
		title: r.NewStyle().Bold(true),
		styles: map[model.Status]lipgloss.Style{
			model.StatusHappening:   r.NewStyle().Foreground(lipgloss.Color("6")),
			model.StatusUpcoming:    r.NewStyle().Foreground(lipgloss.Color("3")),
			model.StatusCancelled:   r.NewStyle().Foreground(lipgloss.Color("1")),
			model.StatusAbsent:      r.NewStyle().Background(lipgloss.Color("1")),
			model.StatusSubstituted: r.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")),
			model.StatusTest:        r.NewStyle().Background(lipgloss.Color("4")),
			model.StatusGap:         r.NewStyle().Faint(true),
		},
	}
}

// Plain returns a Styler that never styles.
func Plain() Styler {
	return Styler{}
}

// Cell renders a cell's text, truncated, in the style of its status.
func (s Styler) Cell(c model.Cell) string {
	text := runewidth.Truncate(c.Text, maxCellWidth, "…")
	if !s.color || text == "" {
		return text
	}
	if style, ok := s.styles[c.Status]; ok {
		return style.Render(text)
	}
	return text
}

// Title renders a heading.
func (s Styler) Title(text string) string {
	if !s.color {
		return text
	}
	return s.title.Render(text)
}
