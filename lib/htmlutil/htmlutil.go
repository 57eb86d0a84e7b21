package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// NormalizeText trims and collapses every whitespace run into a single space,
// this is what a browser-like textContent reader gives back for table cells.
func NormalizeText(s string) string {
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every `<...>` sequence from a string.
func StripTags(s string) string {
	return tagRegex.ReplaceAllString(s, "")
}

// PlainText turns serialized markup into the text a reader sees: tags are
// stripped and entities such as &amp; and &#39; are decoded.
func PlainText(markup string) string {
	return strings.TrimSpace(html.UnescapeString(StripTags(markup)))
}

type Anchor struct {
	Name string
	Url  *url.URL
}

// GetAnchors resolves the href of every element against base, elements without
// a parsable href are dropped.
func GetAnchors(base *url.URL, elements []Element) []Anchor {
	anchors := []Anchor{}
	for _, e := range elements {
		href, ok := e.Attr("href")
		if !ok {
			continue
		}
		link, err := url.Parse(href)
		if err != nil {
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		name := removeNonPrintable(e.TextContent())
		name = NormalizeText(name)

		anchors = append(anchors, Anchor{
			Name: name,
			Url:  link,
		})
	}
	return anchors
}
