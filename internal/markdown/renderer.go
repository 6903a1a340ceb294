// Package markdown turns Markdown source into HTML for the editor preview.
//
// Source is parsed into a goldmark AST and rendered from the tree, so the
// order in which constructs are recognised never changes the output. Fenced
// code blocks get a labeled container and token highlighting (see Highlight).
package markdown

import (
	"bytes"
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type options struct {
	unsafeHTML    bool
	sanitize      bool
	externalLinks bool
	hardWraps     bool
}

type Option func(*options)

// WithUnsafeHTML passes raw HTML in the source through to the output.
func WithUnsafeHTML(enabled bool) Option {
	return func(o *options) { o.unsafeHTML = enabled }
}

// WithSanitize runs the rendered HTML through a user-generated-content policy.
func WithSanitize(enabled bool) Option {
	return func(o *options) { o.sanitize = enabled }
}

// WithExternalLinks makes links open in a new tab without leaking the opener.
func WithExternalLinks(enabled bool) Option {
	return func(o *options) { o.externalLinks = enabled }
}

// WithHardWraps renders single newlines inside a paragraph as <br>.
func WithHardWraps(enabled bool) Option {
	return func(o *options) { o.hardWraps = enabled }
}

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

var defaultRenderer = New()

// Render converts source with the default options.
func Render(source string) string {
	return defaultRenderer.Render(source)
}

func New(opts ...Option) *Renderer {
	o := options{externalLinks: true}
	for _, opt := range opts {
		opt(&o)
	}

	var rendererOptions []goldmark.Option
	var htmlOptions []renderer.Option
	if o.unsafeHTML {
		htmlOptions = append(htmlOptions, goldmarkhtml.WithUnsafe())
	}
	if o.hardWraps {
		htmlOptions = append(htmlOptions, goldmarkhtml.WithHardWraps())
	}
	if len(htmlOptions) > 0 {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(htmlOptions...))
	}

	parserOptions := []parser.Option{parser.WithAutoHeadingID()}
	if o.externalLinks {
		parserOptions = append(parserOptions, parser.WithASTTransformers(util.Prioritized(&linkTargets{}, 100)))
	}

	md := goldmark.New(append(rendererOptions,
		goldmark.WithExtensions(extension.GFM, &codeBlocks{}),
		goldmark.WithParserOptions(parserOptions...),
	)...)

	r := &Renderer{md: md}
	if o.sanitize {
		r.policy = newPolicy()
	}

	return r
}

// Render never fails: anything the parser does not recognise stays as text.
func (that *Renderer) Render(source string) string {
	var buf bytes.Buffer
	if err := that.md.Convert([]byte(source), &buf); err != nil {
		return "<pre>" + html.EscapeString(source) + "</pre>"
	}

	if that.policy != nil {
		return that.policy.Sanitize(buf.String())
	}

	return buf.String()
}

var (
	classValue = regexp.MustCompile(`^[\w\- ]+$`)
	relValue   = regexp.MustCompile(`^[a-z ]+$`)
)

// newPolicy keeps the markup produced by the renderer. Links keep their rel
// and always carry noreferrer, plus noopener when they open a new tab.
func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(classValue).OnElements("div", "span", "pre", "code")
	policy.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	policy.AllowAttrs("rel").Matching(relValue).OnElements("a")
	policy.RequireNoFollowOnLinks(false)
	policy.RequireNoReferrerOnLinks(true)

	return policy
}
