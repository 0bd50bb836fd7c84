// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/text"
)

// CodeBlock renders <pre> as a fenced block and a bare <code> as an inline
// span. <code> directly inside <pre> is part of the block.
type CodeBlock struct{}

func (CodeBlock) Matches(d *dom.Dom, id dom.NodeID) bool {
	switch d.TagName(id) {
	case "pre":
		return true
	case "code":
		parent, err := d.Parent(id)
		return err != nil || d.TagName(parent) != "pre"
	}
	return false
}

func (CodeBlock) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	saved := ctx.PreserveWhitespace
	ctx.PreserveWhitespace = true
	defer func() { ctx.PreserveWhitespace = saved }()

	switch d.TagName(id) {
	case "pre":
		indent := ctx.blockIndent()
		content, err := e.RenderChildren(d, id, ctx)
		if err != nil {
			return "", err
		}
		return fence(ctx, indent, DetectLanguage(d, id), content), nil
	case "code":
		content, err := e.RenderChildren(d, id, ctx)
		if err != nil {
			return "", err
		}
		return inlineCode(content), nil
	}
	return "", unsupported(d, id, "code")
}

// CodeFrame renders highlighter output: any element carrying data-lang or a
// "code-frame" class. The code is the text of its first <code> descendant.
type CodeFrame struct{}

func (CodeFrame) Matches(d *dom.Dom, id dom.NodeID) bool {
	_, hasLang := d.Attr(id, "data-lang")
	class, _ := d.Attr(id, "class")
	if !hasLang && !strings.Contains(class, "code-frame") {
		return false
	}
	return !insidePre(d, id)
}

func (CodeFrame) Render(_ *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	src := id
	if code, ok := d.FindElementByTag(id, "code"); ok {
		src = code
	}
	content := d.CollectTextContent(src)
	if text.IsBlank(content) {
		return "", nil
	}
	return fence(ctx, ctx.blockIndent(), DetectLanguage(d, id), content), nil
}

func insidePre(d *dom.Dom, id dom.NodeID) bool {
	for {
		parent, err := d.Parent(id)
		if err != nil || parent == dom.InvalidNode {
			return false
		}
		if d.TagName(parent) == "pre" {
			return true
		}
		id = parent
	}
}

// fence wraps content in a fenced block. Inside a list item every line
// after the opening fence is indented to the item's content column.
func fence(ctx *Context, indent, lang, content string) string {
	content = trimTrailingBlankLines(content)
	pad := ctx.continuationIndent()
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("```")
	b.WriteString(lang)
	b.WriteString("\n")
	if content != "" {
		b.WriteString(pad)
		b.WriteString(text.Indent(content, pad))
		b.WriteString("\n")
	}
	b.WriteString(pad)
	b.WriteString("```\n\n")
	ctx.ListFirstItem = false
	return b.String()
}

func inlineCode(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if strings.Contains(content, "`") {
		return "`` " + content + " ``"
	}
	return "`" + content + "`"
}

func trimTrailingBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

var languagePrefixes = []string{"language-", "lang-", "highlight-"}

// knownLanguages are bare class names taken as a language. Single letters
// are left out since highlighters use them for token classes.
var knownLanguages = map[string]bool{
	"bash": true, "sh": true, "shell": true, "zsh": true, "console": true,
	"cpp": true, "csharp": true, "cs": true, "css": true, "scss": true,
	"go": true, "golang": true, "html": true, "xml": true, "java": true,
	"javascript": true, "js": true, "jsx": true, "typescript": true, "ts": true, "tsx": true,
	"json": true, "yaml": true, "yml": true, "toml": true, "ini": true,
	"python": true, "py": true, "ruby": true, "rb": true, "rust": true, "rs": true,
	"php": true, "sql": true, "swift": true, "kotlin": true, "scala": true,
	"lua": true, "perl": true, "dart": true, "elixir": true, "haskell": true,
	"diff": true, "dockerfile": true, "makefile": true, "markdown": true,
	"graphql": true, "powershell": true, "plaintext": true,
}

// DetectLanguage finds a fence label for a code element: data-lang, then a
// prefixed class (language-x, lang-x, highlight-x), then a bare known
// language class, then the same search on each child in order. The search
// does not look below the first <code> element, whose descendants are
// highlighter token spans.
func DetectLanguage(d *dom.Dom, id dom.NodeID) string {
	lang, _ := detectLanguage(d, id)
	return lang
}

// detectLanguage reports the label found and whether the search is over.
func detectLanguage(d *dom.Dom, id dom.NodeID) (string, bool) {
	if lang := ownLanguage(d, id); lang != "" {
		return lang, true
	}
	if d.TagName(id) == "code" {
		return "", true
	}

	children, err := d.Children(id)
	if err != nil {
		return "", true
	}
	for _, c := range children {
		if d.TagName(c) == "" {
			continue
		}
		if lang, done := detectLanguage(d, c); done {
			return lang, true
		}
	}
	return "", false
}

// ownLanguage reads the label from the element's own attributes.
func ownLanguage(d *dom.Dom, id dom.NodeID) string {
	if v, ok := d.Attr(id, "data-lang"); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	class, _ := d.Attr(id, "class")
	tokens := strings.Fields(class)
	for _, tok := range tokens {
		for _, p := range languagePrefixes {
			if lang, ok := strings.CutPrefix(tok, p); ok && lang != "" {
				return lang
			}
		}
	}
	for _, tok := range tokens {
		if lower := strings.ToLower(tok); knownLanguages[lower] {
			return lower
		}
	}
	return ""
}
