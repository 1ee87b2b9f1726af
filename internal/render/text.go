package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/datepicker/internal/picker"
)

const cellWidth = 4

// TextRenderer draws an engine's view month as a terminal grid.
//
// Each cell is four columns wide. Markers: [20] selected, (11) today,
// ~ 4  disabled, 25* scheduled. Padding days from neighbouring months are
// blank in plain mode and dimmed otherwise.
type TextRenderer struct {
	plain  bool
	styles styles
}

type styles struct {
	title     lipgloss.Style
	weekday   lipgloss.Style
	padding   lipgloss.Style
	selected  lipgloss.Style
	today     lipgloss.Style
	disabled  lipgloss.Style
	scheduled lipgloss.Style
}

// NewTextRenderer creates a renderer; plain disables all ANSI styling
func NewTextRenderer(plain bool, scheduleColor string) *TextRenderer {
	if scheduleColor == "" {
		scheduleColor = "#4CAF50"
	}
	return &TextRenderer{
		plain: plain,
		styles: styles{
			title:     lipgloss.NewStyle().Bold(true),
			weekday:   lipgloss.NewStyle().Faint(true),
			padding:   lipgloss.NewStyle().Faint(true),
			selected:  lipgloss.NewStyle().Reverse(true).Bold(true),
			today:     lipgloss.NewStyle().Underline(true),
			disabled:  lipgloss.NewStyle().Faint(true).Strikethrough(true),
			scheduled: lipgloss.NewStyle().Foreground(lipgloss.Color(scheduleColor)),
		},
	}
}

// Render writes the header, weekday row, day grid and selection footer
func (r *TextRenderer) Render(w io.Writer, e *picker.Engine) error {
	var b strings.Builder

	title := e.ViewMonth().Format("MMMM YYYY")
	b.WriteString(r.style(r.styles.title, center(title, 7*cellWidth)))
	b.WriteString("\n")

	for _, h := range e.WeekdayHeaders() {
		b.WriteString(r.style(r.styles.weekday, fmt.Sprintf("%*s", cellWidth, h)))
	}
	b.WriteString("\n")

	for i, cell := range e.Cells() {
		b.WriteString(r.cell(cell))
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}

	selected := e.DisplayValue()
	if selected == "" {
		selected = "-"
	}
	fmt.Fprintf(&b, "Selected: %s (%s)\n", selected, e.State())

	_, err := io.WriteString(w, b.String())
	return err
}

// CellText returns the unstyled four-column text of a cell
func CellText(cell picker.DayCell) string {
	if !cell.IsCurrentMonth {
		return strings.Repeat(" ", cellWidth)
	}

	prefix, suffix := " ", " "
	switch {
	case cell.IsSelected:
		prefix, suffix = "[", "]"
	case cell.IsToday:
		prefix, suffix = "(", ")"
	case cell.IsDisabled:
		prefix = "~"
	}
	if suffix == " " && cell.HasSchedule {
		suffix = "*"
	}
	return fmt.Sprintf("%s%2d%s", prefix, cell.Date.Day(), suffix)
}

func (r *TextRenderer) cell(cell picker.DayCell) string {
	if r.plain {
		return CellText(cell)
	}

	text := fmt.Sprintf(" %2d ", cell.Date.Day())
	if cell.HasSchedule && cell.IsCurrentMonth {
		text = fmt.Sprintf(" %2d•", cell.Date.Day())
	}

	switch {
	case !cell.IsCurrentMonth:
		return r.styles.padding.Render(text)
	case cell.IsSelected:
		return r.styles.selected.Render(text)
	case cell.IsDisabled:
		return r.styles.disabled.Render(text)
	case cell.IsToday:
		return r.styles.today.Render(text)
	case cell.HasSchedule:
		return r.styles.scheduled.Render(text)
	}
	return text
}

func (r *TextRenderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
