package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mrlokans/library-manager/internal/charts"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/navigation"
)

const maxBarWidth = 30

var pageTitles = map[navigation.Page]string{
	navigation.PageHome:      "Personal Library Manager",
	navigation.PageRegister:  "Register",
	navigation.PageLogin:     "Login",
	navigation.PageAddBook:   "Add a New Book",
	navigation.PageViewBooks: "Your Library",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := pageTitles[m.state.Page]
	if m.state.Page == navigation.PageMenu && m.state.User != nil {
		title = fmt.Sprintf("Welcome, %s!", m.state.User.Username)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if m.flash != "" {
		b.WriteString(successStyle.Render(m.flash) + "\n\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n\n")
	}

	if m.state.Page == navigation.PageViewBooks {
		b.WriteString(m.libraryView())
		b.WriteString("\n")
	}

	for i, c := range m.controls() {
		b.WriteString(m.controlView(c, i == m.focus))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(normalStyle.Render("Working...") + "\n")
	}

	b.WriteString(helpStyle.Render("tab/↑↓ move • enter select • ←→ change status • esc back • ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) controlView(c control, selected bool) string {
	var line string
	switch c.kind {
	case controlInput:
		line = fmt.Sprintf("%-9s %s", c.label+":", m.inputs[c.index].View())
	case controlStatus:
		line = fmt.Sprintf("%-9s < %s >", c.label+":", entities.BookStatuses[m.status])
	case controlButton:
		line = "[ " + c.label + " ]"
	}

	if selected {
		return selectedStyle.Render("> " + line)
	}
	return normalStyle.Render(line)
}

// libraryView lists the books and draws both distributions as text bars.
func (m Model) libraryView() string {
	if m.busy && m.books == nil {
		return ""
	}
	if len(m.books) == 0 {
		return normalStyle.Render(navigation.MsgNoBooks) + "\n"
	}

	rows := make([][]string, len(m.books))
	for i, book := range m.books {
		rows[i] = []string{book.Title, book.Author, book.Genre, string(book.Status)}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Title", "Author", "Genre", "Status").
		Rows(rows...)

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Books by Genre"))
	b.WriteString("\n")
	b.WriteString(renderBars(charts.GenreDistribution(m.books)))
	b.WriteString(sectionStyle.Render("Books by Status"))
	b.WriteString("\n")
	b.WriteString(renderBars(charts.StatusDistribution(m.books)))
	return b.String()
}

// renderBars draws one line per label, scaled so the largest count spans
// maxBarWidth cells.
func renderBars(dist charts.Distribution) string {
	total := dist.Total()
	if total == 0 {
		return ""
	}

	labelWidth := 0
	for _, c := range dist {
		labelWidth = max(labelWidth, lipgloss.Width(c.Label))
	}
	largest := dist[0].Count

	var b strings.Builder
	for _, c := range dist {
		width := max(1, c.Count*maxBarWidth/largest)
		percent := 100 * float64(c.Count) / float64(total)
		fmt.Fprintf(&b, "%s%s %s %d (%.1f%%)\n",
			c.Label,
			strings.Repeat(" ", labelWidth-lipgloss.Width(c.Label)),
			barStyle.Render(strings.Repeat("█", width)),
			c.Count,
			percent)
	}
	return b.String()
}
