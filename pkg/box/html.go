package box

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node converts the subtree into an x/net/html node tree. Class and style are
// emitted first, followed by attributes in insertion order. Text precedes
// child elements.
func (b *Box) Node() *html.Node {
	if b == nil {
		return nil
	}
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     b.tag,
		DataAtom: atom.Lookup([]byte(b.tag)),
	}
	if len(b.classes) > 0 {
		node.Attr = append(node.Attr, html.Attribute{Key: "class", Val: strings.Join(b.classes, " ")})
	}
	if style := b.StyleString(); style != "" {
		node.Attr = append(node.Attr, html.Attribute{Key: "style", Val: style})
	}
	for _, attr := range b.attrs {
		node.Attr = append(node.Attr, html.Attribute{Key: attr.name, Val: attr.value})
	}
	if b.text != "" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: b.text})
	}
	for _, child := range b.children {
		node.AppendChild(child.Node())
	}
	return node
}

// RenderHTML writes the subtree as HTML.
func (b *Box) RenderHTML(w io.Writer) error {
	if b == nil {
		return fmt.Errorf("box: render nil box")
	}
	if err := html.Render(w, b.Node()); err != nil {
		return fmt.Errorf("box: render html: %w", err)
	}
	return nil
}

// HTML returns the subtree rendered as an HTML string.
func (b *Box) HTML() (string, error) {
	var buf bytes.Buffer
	if err := b.RenderHTML(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
