package quickstart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinoMarkdown(t *testing.T) {
	guide, ok := Lookup(" Pino ")
	require.True(t, ok)

	md := guide.Markdown("42")

	assert.True(t, strings.HasPrefix(md, "# Logging with Pino.JS\n"))
	assert.Contains(t, md, "## 3. Setup the Pino HTTP transport.")
	assert.Contains(t, md, "```js\nimport pino from 'pino'")
	assert.Contains(t, md, "projectID: '42'")
	assert.NotContains(t, md, projectIDPlaceholder)
	assert.Contains(t, md, "npm install @highlight-run/node pino")
}

func TestMarkdownKeepsPlaceholderWithoutProject(t *testing.T) {
	guide, _ := Lookup("pino")
	assert.Contains(t, guide.Markdown(""), projectIDPlaceholder)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"pino"}, Names())
	_, ok := Lookup("winston")
	assert.False(t, ok)
}
