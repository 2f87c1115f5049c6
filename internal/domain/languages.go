package domain

import "sort"

// TotalKey is the entry name that carries the summed totals in serialized output
const TotalKey = "Total"

// Language holds the counts for one language
type Language struct {
	Blanks   int `json:"blanks" msgpack:"blanks" toml:"blanks" yaml:"blanks"`
	Code     int `json:"code" msgpack:"code" toml:"code" yaml:"code"`
	Comments int `json:"comments" msgpack:"comments" toml:"comments" yaml:"comments"`
	Files    int `json:"files" msgpack:"files" toml:"files" yaml:"files"`
}

// Lines returns the total number of lines counted
func (l Language) Lines() int {
	return l.Blanks + l.Code + l.Comments
}

// Add sums other into l
func (l *Language) Add(other Language) {
	l.Blanks += other.Blanks
	l.Code += other.Code
	l.Comments += other.Comments
	l.Files += other.Files
}

// Languages maps a language name to its counts
type Languages map[string]Language

// Merge adds every entry of other into l
func (l Languages) Merge(other Languages) {
	for name, lang := range other {
		cur := l[name]
		cur.Add(lang)
		l[name] = cur
	}
}

// Total sums all languages
func (l Languages) Total() Language {
	var total Language
	for _, lang := range l {
		total.Add(lang)
	}
	return total
}

// SortKey selects the column used to order languages
type SortKey string

const (
	SortBlanks   SortKey = "blanks"
	SortCode     SortKey = "code"
	SortComments SortKey = "comments"
	SortFiles    SortKey = "files"
	SortLines    SortKey = "lines"
)

// LanguageRow is a named Language used for ordered output
type LanguageRow struct {
	Language
	Name string
}

// Sorted returns the languages ordered by key (descending), or by name when key is empty.
// Ties are broken by name so output is stable.
func (l Languages) Sorted(key SortKey, reverse bool) []LanguageRow {
	rows := make([]LanguageRow, 0, len(l))
	for name, lang := range l {
		rows = append(rows, LanguageRow{Language: lang, Name: name})
	}

	value := func(r LanguageRow) int {
		switch key {
		case SortBlanks:
			return r.Blanks
		case SortCode:
			return r.Code
		case SortComments:
			return r.Comments
		case SortFiles:
			return r.Files
		case SortLines:
			return r.Lines()
		}
		return 0
	}

	sort.Slice(rows, func(i, j int) bool {
		vi, vj := value(rows[i]), value(rows[j])
		if vi != vj {
			return vi > vj
		}
		return rows[i].Name < rows[j].Name
	})

	if reverse {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	return rows
}
