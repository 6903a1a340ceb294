package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var (
	targetBlank = []byte("_blank")
	relNoopener = []byte("noopener noreferrer")
)

// linkTargets opens every inline link in a new browsing context.
type linkTargets struct{}

func (that *linkTargets) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if link, ok := node.(*ast.Link); ok {
			link.SetAttributeString("target", targetBlank)
			link.SetAttributeString("rel", relNoopener)
		}

		return ast.WalkContinue, nil
	})
}
