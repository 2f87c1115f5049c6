package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tally/internal/domain"
)

func TestRenderLanguages(t *testing.T) {
	langs := domain.Languages{
		"Go":   {Files: 2, Code: 40, Comments: 5, Blanks: 5},
		"Rust": {Files: 1, Code: 90, Comments: 1, Blanks: 9},
	}

	out := RenderLanguages(langs, domain.SortCode, false)

	for _, h := range languageHeaders {
		assert.Contains(t, out, h)
	}
	rust := strings.Index(out, "Rust")
	goIdx := strings.Index(out, "Go ")
	total := strings.Index(out, domain.TotalKey)
	assert.Less(t, rust, goIdx)
	assert.Less(t, goIdx, total)
	assert.Contains(t, out, "150")
}

func TestRenderLanguages_Empty(t *testing.T) {
	out := RenderLanguages(domain.Languages{}, domain.SortCode, false)

	assert.Contains(t, out, "No files counted.")
}
