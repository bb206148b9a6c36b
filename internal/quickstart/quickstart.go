// Package quickstart holds the bundled setup guides shown in the docs pane.
package quickstart

import (
	"fmt"
	"sort"
	"strings"
)

type CodeBlock struct {
	Text     string
	Language string
}

type Entry struct {
	Title   string
	Content string
	Code    []CodeBlock
}

type Content struct {
	Title    string
	Subtitle string
	Entries  []Entry
}

// Markdown renders c with projectID substituted for the placeholder.
func (c Content) Markdown(projectID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", c.Title, c.Subtitle)
	for i, entry := range c.Entries {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, entry.Title)
		if entry.Content != "" {
			b.WriteString(entry.Content)
			b.WriteString("\n")
		}
		for _, code := range entry.Code {
			fmt.Fprintf(&b, "\n```%s\n%s\n```\n", code.Language, strings.TrimRight(code.Text, "\n"))
		}
	}
	out := b.String()
	if projectID = strings.TrimSpace(projectID); projectID != "" {
		out = strings.ReplaceAll(out, projectIDPlaceholder, projectID)
	}
	return out
}

const projectIDPlaceholder = "<YOUR_PROJECT_ID>"

var guides = map[string]Content{
	"pino": pinoContent,
}

// Lookup returns the guide registered under name.
func Lookup(name string) (Content, bool) {
	c, ok := guides[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

func Names() []string {
	out := make([]string, 0, len(guides))
	for name := range guides {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func installSnippet(packages ...string) Entry {
	return Entry{
		Title:   "Install the relevant packages.",
		Content: "Install the highlight.io transport alongside your logging library.",
		Code: []CodeBlock{{
			Text:     "npm install " + strings.Join(append([]string{"@highlight-run/node"}, packages...), " "),
			Language: "bash",
		}},
	}
}

var previousInstall = Entry{
	Title:   "Set up your backend SDK.",
	Content: "Logs are tied to sessions and errors through the backend SDK. Install it for Node.js before wiring up the transport.",
}

var verifyLogs = Entry{
	Title: "Verify your backend logs are being recorded.",
	Content: "Visit the highlight logs portal and check that backend logs are coming in. " +
		"Logs usually show up within a few seconds of being written.",
}

var pinoContent = Content{
	Title:    "Logging with Pino.JS",
	Subtitle: "Learn how to set up highlight.io log ingestion for Pino.JS.",
	Entries: []Entry{
		previousInstall,
		installSnippet("pino"),
		{
			Title: "Setup the Pino HTTP transport.",
			Content: "The Pino HTTP transport will send JSON logs to highlight.io. " +
				"Make sure to set the `project` and `service` query string parameters.",
			Code: []CodeBlock{{
				Text: `import pino from 'pino'

const logger = pino({
    level: 'info',
    transport: {
        targets: [
            {
                target: '@highlight-run/pino',
                options: {
                    projectID: '<YOUR_PROJECT_ID>',
                },
                level: 'info',
            },
        ],
    },
})

logger.info({ key: 'my-value' }, 'hello, highlight.io!')`,
				Language: "js",
			}},
		},
		verifyLogs,
	},
}
