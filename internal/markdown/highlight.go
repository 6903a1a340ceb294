package markdown

import (
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Token classes emitted around highlighted spans.
const (
	classKeyword  = "token-keyword"
	classString   = "token-string"
	classFunction = "token-function"
	classComment  = "token-comment"
	classNumber   = "token-number"
)

// highlightLexers lists the languages that get highlighted, keyed by every
// fence label that selects them.
var highlightLexers = map[string]string{
	"javascript": "javascript",
	"js":         "javascript",
	"typescript": "typescript",
	"ts":         "typescript",
	"python":     "python",
	"py":         "python",
}

// Highlight HTML-escapes code and wraps keywords, string literals, comments,
// numbers and function names in <span class="token-..."> for JavaScript,
// TypeScript and Python. Code in any other language is only escaped.
func Highlight(code, language string) string {
	name, ok := highlightLexers[strings.ToLower(language)]
	if !ok {
		return html.EscapeString(code)
	}

	lexer := lexers.Get(name)
	if lexer == nil {
		return html.EscapeString(code)
	}

	text := code
	// line comments only match up to a newline
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return html.EscapeString(code)
	}

	var (
		out     strings.Builder
		pending strings.Builder
		current string
	)

	flush := func() {
		if pending.Len() == 0 {
			return
		}
		writeSpan(&out, current, pending.String())
		pending.Reset()
	}

	for _, token := range iterator.Tokens() {
		class := tokenClass(token.Type)
		if class != current {
			flush()
			current = class
		}
		pending.WriteString(token.Value)
	}
	flush()

	highlighted := out.String()
	if !strings.HasSuffix(code, "\n") {
		highlighted = strings.TrimSuffix(highlighted, "\n")
	}

	return highlighted
}

func tokenClass(tokenType chroma.TokenType) string {
	switch {
	case tokenType == chroma.NameFunction || tokenType == chroma.NameFunctionMagic:
		return classFunction
	case tokenType.InCategory(chroma.Keyword):
		return classKeyword
	case tokenType.InSubCategory(chroma.LiteralString):
		return classString
	case tokenType.InSubCategory(chroma.LiteralNumber):
		return classNumber
	case tokenType.InCategory(chroma.Comment):
		return classComment
	default:
		return ""
	}
}

// writeSpan keeps trailing newlines outside the span so that line comments do
// not swallow the line break.
func writeSpan(out *strings.Builder, class, value string) {
	if class == "" {
		out.WriteString(html.EscapeString(value))
		return
	}

	body := strings.TrimRight(value, "\n")
	if body == "" {
		out.WriteString(value)
		return
	}

	out.WriteString(`<span class="`)
	out.WriteString(class)
	out.WriteString(`">`)
	out.WriteString(html.EscapeString(body))
	out.WriteString(`</span>`)
	out.WriteString(value[len(body):])
}
