package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown converts markdown to sanitized HTML. Member names and references
// are user input, so the output always goes through the bluemonday policy.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewMarkdown() *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("div", "span", "table", "p")
	policy.AllowAttrs("style").OnElements("th", "td")

	return &Markdown{md: md, policy: policy}
}

func (m *Markdown) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return m.policy.Sanitize(buf.String()), nil
}

var cellEscaper = strings.NewReplacer(
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"\n", " ",
)

// Escape makes s safe to embed as literal text in a markdown line or table cell.
func Escape(s string) string {
	return cellEscaper.Replace(s)
}
