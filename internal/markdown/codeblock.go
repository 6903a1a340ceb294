package markdown

import (
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// defaultLanguage labels fences that carry no info string.
const defaultLanguage = "plaintext"

// codeBlocks replaces goldmark's fenced code block output with a labeled,
// highlighted container:
//
//	<div class="code-block"><div class="code-header"><span class="code-lang">js</span></div>
//	<pre><code class="language-js">...</code></pre></div>
type codeBlocks struct{}

func (that *codeBlocks) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&codeBlockRenderer{}, 100),
	))
}

type codeBlockRenderer struct{}

func (that *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, that.renderFencedCodeBlock)
}

func (that *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	block, ok := node.(*ast.FencedCodeBlock)
	if !ok {
		return ast.WalkContinue, nil
	}

	language := defaultLanguage
	if info := block.Language(source); len(info) > 0 {
		language = string(info)
	}

	var code strings.Builder
	lines := block.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	label := html.EscapeString(language)

	_, _ = w.WriteString(`<div class="code-block"><div class="code-header"><span class="code-lang">`)
	_, _ = w.WriteString(label)
	_, _ = w.WriteString(`</span></div><pre><code class="language-`)
	_, _ = w.WriteString(label)
	_, _ = w.WriteString(`">`)
	_, _ = w.WriteString(Highlight(strings.Trim(code.String(), "\n"), language))
	_, _ = w.WriteString("</code></pre></div>\n")

	return ast.WalkSkipChildren, nil
}
