package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are bound to one writer, so colors are dropped automatically when
// it is not a terminal.
type styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
	Accept  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Title:   r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    r.NewStyle().Bold(true),
		Accept:  r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// table renders left-aligned columns sized to their widest cell. Cells may
// already carry styling; widths are measured without escape sequences.
type table struct {
	st      styles
	headers []string
	rows    [][]string
}

func (t *table) addRow(values ...string) {
	for len(values) < len(t.headers) {
		values = append(values, "")
	}
	t.rows = append(t.rows, values)
}

func (t *table) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i := range t.headers {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	line := func(cells []string, style *lipgloss.Style) {
		for i, c := range cells[:len(t.headers)] {
			if style != nil {
				sb.WriteString(style.Render(c))
			} else {
				sb.WriteString(c)
			}
			if i < len(t.headers)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)+2))
			}
		}
		sb.WriteString("\n")
	}
	line(t.headers, &t.st.Bold)
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	sb.WriteString(t.st.Dim.Render(strings.Repeat("─", total-2)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		line(row, nil)
	}
	return sb.String()
}
