package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Results\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~ new")
	require.NoError(t, err)
	assert.Contains(t, html, `<h1 id="results">Results</h1>`)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<del>old</del>")
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	html, err := RenderMarkdown("hello <script>alert(1)</script> <a href=\"javascript:alert(1)\">x</a>")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "hello")
}
