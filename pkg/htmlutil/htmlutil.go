package htmlutil

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// GetText concatenates every text node under `node`.
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

// Attr returns the value of the attribute `key` on `node`.
func Attr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// next returns the node after `node` in document order, descending into
// children first.
func next(node *html.Node) *html.Node {
	if node.FirstChild != nil {
		return node.FirstChild
	}
	for node != nil {
		if node.NextSibling != nil {
			return node.NextSibling
		}
		node = node.Parent
	}
	return nil
}

// Walk calls `visit` on `root` and every node under it in document order
// until `visit` returns false.
func Walk(root *html.Node, visit func(*html.Node) bool) {
	if root == nil {
		return
	}
	var recurse func(*html.Node) bool
	recurse = func(n *html.Node) bool {
		if !visit(n) {
			return false
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if !recurse(child) {
				return false
			}
		}
		return true
	}
	recurse(root)
}

// FindTextNode returns the first text node under `root` that contains `substr`.
func FindTextNode(root *html.Node, substr string) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type == html.TextNode && strings.Contains(n.Data, substr) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByIdPattern returns the first element under `root` whose id matches
// `pattern`, the match is unanchored like regexp.MatchString.
func FindByIdPattern(root *html.Node, pattern *regexp.Regexp) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		id, ok := Attr(n, "id")
		if ok && pattern.MatchString(id) {
			found = n
			return false
		}
		return true
	})
	return found
}

// NextSiblingElement returns the first sibling after `node` that is an
// element named `tag`.
func NextSiblingElement(node *html.Node, tag string) *html.Node {
	if node == nil {
		return nil
	}
	for sibling := node.NextSibling; sibling != nil; sibling = sibling.NextSibling {
		if sibling.Type == html.ElementNode && sibling.Data == tag {
			return sibling
		}
	}
	return nil
}

// NextElement returns the first element named `tag` after `node` in document
// order, this includes the descendants of `node`.
func NextElement(node *html.Node, tag string) *html.Node {
	if node == nil {
		return nil
	}
	for n := next(node); n != nil; n = next(n) {
		if n.Type == html.ElementNode && n.Data == tag {
			return n
		}
	}
	return nil
}
