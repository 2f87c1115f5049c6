package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tally/internal/domain"
	"tally/internal/theme"
)

var languageHeaders = []string{"Language", "Files", "Lines", "Code", "Comments", "Blanks"}

// RenderLanguages renders per-language counts as a table with a trailing
// total row. Rows are ordered by key, or by name when key is empty.
func RenderLanguages(langs domain.Languages, key domain.SortKey, reverse bool) string {
	if len(langs) == 0 {
		return theme.MutedStyle.Render("No files counted.")
	}

	rows := make([][]string, 0, len(langs)+1)
	for _, row := range langs.Sorted(key, reverse) {
		rows = append(rows, languageRow(row.Name, row.Language))
	}
	totalRow := len(rows)
	rows = append(rows, languageRow(domain.TotalKey, langs.Total()))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.BorderStyle).
		Headers(languageHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch row {
			case table.HeaderRow:
				style = theme.HeaderStyle
			case totalRow:
				style = theme.TotalStyle
			default:
				style = theme.CellStyle
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return t.String()
}

func languageRow(name string, lang domain.Language) []string {
	return []string{
		name,
		strconv.Itoa(lang.Files),
		strconv.Itoa(lang.Lines()),
		strconv.Itoa(lang.Code),
		strconv.Itoa(lang.Comments),
		strconv.Itoa(lang.Blanks),
	}
}
