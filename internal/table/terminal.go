package table

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

var (
	// HighlightColor matches the light blue used on the web page.
	HighlightColor = lipgloss.Color("#ADD8E6")
	cellWidth      = 4
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Title       lipgloss.Style
	Cell        lipgloss.Style
	Highlighted lipgloss.Style
	Blank       lipgloss.Style
	Colors      map[wheel.Color]lipgloss.Style
}

// DefaultStyles returns styles bound to the given renderer.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	base := r.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	return Styles{
		Title:       r.NewStyle().Bold(true).MarginBottom(1),
		Cell:        base,
		Highlighted: base.Background(HighlightColor).Foreground(lipgloss.Color("#101F38")).Bold(true),
		Blank:       base,
		Colors: map[wheel.Color]lipgloss.Style{
			wheel.Red:   r.NewStyle().Foreground(lipgloss.Color("#e53935")),
			wheel.Black: r.NewStyle().Foreground(lipgloss.Color("#f2f2f2")),
			wheel.Green: r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		},
	}
}

// Render draws the grid with the given styles.
func (g Grid) Render(styles Styles) string {
	var sb strings.Builder

	if g.Title != "" {
		sb.WriteString(styles.Title.Render(g.Title))
		sb.WriteString("\n")
	}

	for r := range g.Cells {
		cells := make([]string, 0, Cols)
		for _, cell := range g.Cells[r] {
			switch {
			case cell.Blank:
				cells = append(cells, styles.Blank.Render(""))
			case cell.Highlighted:
				cells = append(cells, styles.Highlighted.Render(cell.Label()))
			default:
				label := cell.Label()
				if s, ok := styles.Colors[cell.Color]; ok {
					label = s.Render(label)
				}
				cells = append(cells, styles.Cell.Render(label))
			}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteTerminal renders each grid to w, one after the other.
func WriteTerminal(w io.Writer, grids ...Grid) error {
	styles := DefaultStyles(lipgloss.NewRenderer(w))
	for i, g := range grids {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, g.Render(styles)); err != nil {
			return err
		}
	}
	return nil
}
