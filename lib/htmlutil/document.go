package htmlutil

import (
	"bytes"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Query is anything that can answer a css selector with elements in document order.
type Query interface {
	QuerySelectorAll(selector string) []Element
}

// Document is an immutable fetched html page. The parsed tree is built lazily
// on the first query and shared by every later one.
type Document struct {
	Url  string
	Html string

	tree *parsedTree
}

type parsedTree struct {
	once sync.Once
	doc  *goquery.Document
}

func NewDocument(url, contents string) Document {
	return Document{
		Url:  url,
		Html: contents,
		tree: &parsedTree{},
	}
}

func parse(contents string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		// html.Parse only fails on reader errors, which a strings.Reader never returns
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

func (d Document) root() *goquery.Document {
	if d.tree == nil {
		return parse(d.Html)
	}
	d.tree.once.Do(func() {
		d.tree.doc = parse(d.Html)
	})
	return d.tree.doc
}

func (d Document) QuerySelectorAll(selector string) []Element {
	sel := d.root().Find(selector)
	out := make([]Element, len(sel.Nodes))
	for i, n := range sel.Nodes {
		out[i] = Element{node: n}
	}
	return out
}

// QuerySelector returns the first match of selector.
func (d Document) QuerySelector(selector string) (Element, bool) {
	all := d.QuerySelectorAll(selector)
	if len(all) == 0 {
		return Element{}, false
	}
	return all[0], true
}

func (d Document) Body() (Element, bool) {
	return d.QuerySelector("body")
}

// base is the document url hrefs are resolved against, nil when the document
// has no absolute url.
func (d Document) base() *url.URL {
	base, err := url.Parse(d.Url)
	if err != nil || !base.IsAbs() {
		return nil
	}
	return base
}

// Resolve resolves href against the document url the way a browser follows
// a link. Without an absolute document url the parsed href is returned as is.
func (d Document) Resolve(href string) (*url.URL, error) {
	link, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, err
	}
	if base := d.base(); base != nil {
		return base.ResolveReference(link), nil
	}
	return link, nil
}

// Anchors returns every element matching selector that carries an href, with
// the href resolved against the document url.
func (d Document) Anchors(selector string) []Anchor {
	return GetAnchors(d.base(), d.QuerySelectorAll(selector))
}

// InputValue looks up `input[name=<name>]` and returns its value attribute,
// falling back to the checked attribute.
func (d Document) InputValue(name string) (string, bool) {
	input, ok := d.QuerySelector("input[name=\"" + name + "\"]")
	if !ok {
		return "", false
	}
	if value, ok := input.Attr("value"); ok {
		return value, true
	}
	return input.Attr("checked")
}

// Element is a read-only view of a node matched inside a Document.
type Element struct {
	node *html.Node
}

func (e Element) TagName() string {
	if e.node == nil {
		return ""
	}
	return e.node.Data
}

// TextContent is the whitespace normalized text of the element and all its descendants.
func (e Element) TextContent() string {
	if e.node == nil {
		return ""
	}
	return NormalizeText(GetText(e.node))
}

func (e Element) InnerHTML() string {
	if e.node == nil {
		return ""
	}
	var buff bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		err := html.Render(&buff, c)
		if err != nil {
			return buff.String()
		}
	}
	return buff.String()
}

func (e Element) Attr(name string) (string, bool) {
	if e.node == nil {
		return "", false
	}
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e Element) AttrOr(name, fallback string) string {
	value, ok := e.Attr(name)
	if !ok {
		return fallback
	}
	return value
}

func (e Element) Attributes() map[string]string {
	out := map[string]string{}
	if e.node == nil {
		return out
	}
	for _, a := range e.node.Attr {
		out[a.Key] = a.Val
	}
	return out
}

// Children returns the element children in document order, text and comment
// nodes are skipped.
func (e Element) Children() []Element {
	if e.node == nil {
		return nil
	}
	var out []Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		out = append(out, Element{node: c})
	}
	return out
}

// Child returns the i-th element child, ok is false when the element is
// structurally shorter than expected.
func (e Element) Child(i int) (Element, bool) {
	children := e.Children()
	if i < 0 || i >= len(children) {
		return Element{}, false
	}
	return children[i], true
}

// Path walks down a chain of child indexes.
func (e Element) Path(indexes ...int) (Element, bool) {
	current := e
	for _, i := range indexes {
		next, ok := current.Child(i)
		if !ok {
			return Element{}, false
		}
		current = next
	}
	return current, true
}

func (e Element) QuerySelectorAll(selector string) []Element {
	if e.node == nil {
		return nil
	}
	sel := goquery.NewDocumentFromNode(e.node).Find(selector)
	out := make([]Element, len(sel.Nodes))
	for i, n := range sel.Nodes {
		out[i] = Element{node: n}
	}
	return out
}
