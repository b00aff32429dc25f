// Package adf renders Atlassian Document Format rich text to Markdown.
//
// Jira Cloud returns descriptions and comment bodies as ADF documents: a tree
// of typed block and inline nodes. This package walks that tree and produces
// GitHub-flavored Markdown suitable for terminal output and agent prompts.
package adf

import (
	"encoding/json"
	"fmt"
	"strings"
)

const indent = "  "

// node is the generic ADF tree node. Unknown node types degrade to their
// collected text content rather than failing the whole document.
type node struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Content []node `json:"content"`
	Attrs   attrs  `json:"attrs"`
	Marks   []mark `json:"marks"`
}

type attrs struct {
	Level       int    `json:"level"`
	Order       int    `json:"order"`
	Language    string `json:"language"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	ShortName   string `json:"shortName"`
	DisplayName string `json:"displayName"`
	ID          string `json:"id"`
	URL         string `json:"url"`
	Timestamp   any    `json:"timestamp"`
}

type mark struct {
	Type  string `json:"type"`
	Attrs struct {
		Href string `json:"href"`
	} `json:"attrs"`
}

// docEnvelope matches the shapes rich-text values arrive in: the doc itself,
// or an object carrying it under "body" (comments) or "description" (issues).
type docEnvelope struct {
	Type        string          `json:"type"`
	Version     int             `json:"version"`
	Content     []node          `json:"content"`
	Body        json.RawMessage `json:"body"`
	Description json.RawMessage `json:"description"`
}

// Render renders an ADF document to Markdown. The raw value may be the doc
// itself or a wrapper containing it under "body" or "description". ok is
// false when raw does not contain an ADF document.
func Render(raw json.RawMessage) (md string, ok bool) {
	doc, ok := extractDoc(raw)
	if !ok {
		return "", false
	}

	var blocks []string
	for _, n := range doc {
		lines := renderBlock(n, 0)
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n"), true
}

// extractDoc locates the ADF content slice inside raw, following one level of
// "body"/"description" nesting.
func extractDoc(raw json.RawMessage) ([]node, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var env docEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if env.Type == "doc" || (env.Version != 0 && env.Content != nil) {
		return env.Content, true
	}
	if len(env.Body) > 0 {
		if content, ok := extractDoc(env.Body); ok {
			return content, true
		}
	}
	if len(env.Description) > 0 {
		if content, ok := extractDoc(env.Description); ok {
			return content, true
		}
	}
	return nil, false
}

// renderBlock renders one block node to lines without trailing newlines.
func renderBlock(n node, listLevel int) []string {
	switch n.Type {
	case "paragraph":
		return paragraphLines(n)
	case "heading":
		return []string{renderHeading(n)}
	case "bulletList":
		return renderList(n, listLevel, false)
	case "orderedList":
		return renderList(n, listLevel, true)
	case "blockquote":
		return renderBlockquote(n, listLevel)
	case "panel":
		return renderPanel(n, listLevel)
	case "codeBlock":
		return renderCodeBlock(n)
	case "rule":
		return []string{"---"}
	case "table":
		return renderTable(n)
	default:
		if text := collectText(n); text != "" {
			return []string{text}
		}
		return nil
	}
}

// paragraphLines renders a paragraph, turning hardBreak nodes into Markdown
// line breaks (two trailing spaces).
func paragraphLines(n node) []string {
	lines := []string{""}
	for _, child := range n.Content {
		if child.Type == "hardBreak" {
			lines[len(lines)-1] = strings.TrimRight(lines[len(lines)-1], " ") + "  "
			lines = append(lines, "")
			continue
		}
		lines[len(lines)-1] += renderInline(child)
	}
	return lines
}

func renderHeading(n node) string {
	level := n.Attrs.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	var b strings.Builder
	for _, child := range n.Content {
		b.WriteString(renderInline(child))
	}
	return strings.TrimRight(strings.Repeat("#", level)+" "+b.String(), " ")
}

func renderList(n node, listLevel int, ordered bool) []string {
	var lines []string
	index := 1
	if ordered && n.Attrs.Order > 0 {
		index = n.Attrs.Order
	}
	for _, item := range n.Content {
		lines = append(lines, renderListItem(item, listLevel, ordered, index)...)
		if ordered {
			index++
		}
	}
	return lines
}

func renderListItem(n node, listLevel int, ordered bool, index int) []string {
	prefix := strings.Repeat(indent, listLevel)
	bullet := "-"
	if ordered {
		bullet = fmt.Sprintf("%d.", index)
	}
	bulletPrefix := prefix + bullet + " "
	continuation := strings.Repeat(" ", len(bulletPrefix))

	if len(n.Content) == 0 {
		return []string{strings.TrimRight(bulletPrefix, " ")}
	}

	var lines []string
	first := n.Content[0]
	if first.Type == "paragraph" {
		paragraph := paragraphLines(first)
		if len(paragraph) > 0 {
			lines = append(lines, bulletPrefix+paragraph[0])
			for _, line := range paragraph[1:] {
				lines = append(lines, continuation+line)
			}
		} else {
			lines = append(lines, strings.TrimRight(bulletPrefix, " "))
		}
	} else {
		lines = append(lines, strings.TrimRight(bulletPrefix, " "))
		lines = append(lines, renderBlockInList(first, listLevel, continuation)...)
	}

	for _, block := range n.Content[1:] {
		lines = append(lines, renderBlockInList(block, listLevel, continuation)...)
	}
	return lines
}

// renderBlockInList renders a non-leading block inside a list item. Nested
// lists indent one level deeper; other blocks align under the bullet text.
func renderBlockInList(n node, listLevel int, continuation string) []string {
	if n.Type == "bulletList" || n.Type == "orderedList" {
		return renderBlock(n, listLevel+1)
	}
	var lines []string
	for _, line := range renderBlock(n, listLevel) {
		lines = append(lines, continuation+line)
	}
	return lines
}

func renderBlockquote(n node, listLevel int) []string {
	inner := renderInnerBlocks(n.Content, listLevel, false)
	if len(inner) == 0 {
		return []string{">"}
	}
	var lines []string
	for _, line := range inner {
		lines = append(lines, strings.TrimRight("> "+line, " "))
	}
	return lines
}

// renderPanel renders Jira panels as blockquotes with a bolded title.
func renderPanel(n node, listLevel int) []string {
	title := ""
	if n.Attrs.Title != "" {
		title = "**" + escapeMarkdown(n.Attrs.Title) + "** "
	}
	inner := renderInnerBlocks(n.Content, listLevel, false)
	if len(inner) == 0 {
		return []string{strings.TrimRight("> "+title, " ")}
	}
	lines := []string{strings.TrimRight("> "+title+inner[0], " ")}
	for _, line := range inner[1:] {
		lines = append(lines, strings.TrimRight("> "+line, " "))
	}
	return lines
}

func renderCodeBlock(n node) []string {
	fence := "```"
	if n.Attrs.Language != "" {
		fence += n.Attrs.Language
	}
	code := collectText(n)
	lines := strings.Split(code, "\n")
	if code == "" {
		lines = []string{""}
	}
	out := make([]string, 0, len(lines)+2)
	out = append(out, fence)
	out = append(out, lines...)
	out = append(out, "```")
	return out
}

func renderTable(n node) []string {
	if len(n.Content) == 0 {
		return nil
	}

	var rows [][]string
	headerRow := false
	for _, row := range n.Content {
		var cells []string
		for _, cell := range row.Content {
			if cell.Type == "tableHeader" {
				headerRow = true
			}
			cellLines := renderInnerBlocks(cell.Content, 0, true)
			cells = append(cells, strings.TrimSpace(strings.Join(cellLines, "<br>")))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	pad := func(row []string) []string {
		for len(row) < colCount {
			row = append(row, "")
		}
		return row
	}

	lines := []string{"| " + strings.Join(pad(rows[0]), " | ") + " |"}
	if headerRow {
		separators := make([]string, colCount)
		for i := range separators {
			separators[i] = "---"
		}
		lines = append(lines, "| "+strings.Join(separators, " | ")+" |")
	}
	start := 0
	if headerRow {
		start = 1
	}
	for _, row := range rows[start:] {
		lines = append(lines, "| "+strings.Join(pad(row), " | ")+" |")
	}
	return lines
}

// renderInnerBlocks renders nested blocks and splits the joined result back
// into lines. tight joins blocks with a single newline (table cells).
func renderInnerBlocks(nodes []node, listLevel int, tight bool) []string {
	var blocks []string
	for _, n := range nodes {
		lines := renderBlock(n, listLevel)
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if len(blocks) == 0 {
		return nil
	}
	sep := "\n\n"
	if tight {
		sep = "\n"
	}
	return strings.Split(strings.Join(blocks, sep), "\n")
}

// renderInline renders one inline node to Markdown text.
func renderInline(n node) string {
	switch n.Type {
	case "text":
		return applyMarks(n.Text, n.Marks)
	case "emoji":
		if n.Attrs.Text != "" {
			return n.Attrs.Text
		}
		return n.Attrs.ShortName
	case "mention":
		text := n.Attrs.Text
		if text == "" {
			text = n.Attrs.DisplayName
		}
		if text == "" {
			text = n.Attrs.ID
		}
		if text == "" {
			return ""
		}
		return "@" + text
	case "inlineCard":
		if n.Attrs.URL == "" {
			return ""
		}
		return "<" + n.Attrs.URL + ">"
	case "status":
		if n.Attrs.Text == "" {
			return ""
		}
		return "`" + escapeMarkdown(n.Attrs.Text) + "`"
	case "date":
		if n.Attrs.Text != "" {
			return n.Attrs.Text
		}
		return stringify(n.Attrs.Timestamp)
	case "hardBreak":
		return ""
	}

	if len(n.Content) > 0 {
		var b strings.Builder
		for _, child := range n.Content {
			b.WriteString(renderInline(child))
		}
		return b.String()
	}
	if n.Text != "" {
		return escapeMarkdown(n.Text)
	}
	if n.Attrs.URL != "" {
		return "<" + n.Attrs.URL + ">"
	}
	return ""
}

// applyMarks wraps text in Markdown syntax for its marks. Code marks win over
// everything else and suppress Markdown escaping inside the span.
func applyMarks(text string, marks []mark) string {
	if len(marks) == 0 {
		return escapeMarkdown(text)
	}

	for _, m := range marks {
		if m.Type == "code" {
			return "`" + strings.ReplaceAll(text, "`", "\\`") + "`"
		}
	}

	value := escapeMarkdown(text)
	for _, m := range marks {
		switch m.Type {
		case "strong":
			value = "**" + value + "**"
		case "em":
			value = "*" + value + "*"
		case "strike":
			value = "~~" + value + "~~"
		case "underline":
			value = "<u>" + value + "</u>"
		}
	}

	for _, m := range marks {
		if m.Type == "link" && m.Attrs.Href != "" {
			value = "[" + value + "](" + m.Attrs.Href + ")"
			break
		}
	}
	return value
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`~`, `\~`,
	`[`, `\[`,
	`]`, `\]`,
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// collectText gathers the plain text of a subtree, used for code blocks and
// unknown node types.
func collectText(n node) string {
	switch n.Type {
	case "text":
		return n.Text
	case "hardBreak":
		return "\n"
	case "emoji", "mention":
		if n.Attrs.Text != "" {
			return n.Attrs.Text
		}
		return n.Attrs.ShortName
	}

	var b strings.Builder
	for _, child := range n.Content {
		b.WriteString(collectText(child))
	}
	return b.String()
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
