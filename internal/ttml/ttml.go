package ttml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Attribute names used by lyric TTML documents. Qualified names carry the
// conventional namespace prefix as written in the file.
const (
	AttrBegin = "begin"
	AttrEnd   = "end"
	AttrDur   = "dur"
	AttrRole  = "ttm:role"
	AttrAgent = "ttm:agent"
	AttrKey   = "itunes:key"
	AttrRoman = "x-roman"
)

// ttm:role values
const (
	RoleBackground  = "x-bg"
	RoleTranslation = "x-translation"
)

// ParseError reports input markup that could not be parsed as TTML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse TTML: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Document is a parsed TTML file. The underlying tree keeps namespace
// prefixes, attribute order and text nodes, so a document can be annotated
// and serialized without disturbing untouched content.
type Document struct {
	root *xmlquery.Node
}

// Parse parses TTML bytes into a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	doc := &Document{root: root}
	if tt := doc.Root(); tt == nil || tt.Data != "tt" {
		return nil, &ParseError{Err: fmt.Errorf("missing tt root element")}
	}
	return doc, nil
}

// ParseFile reads and parses a TTML file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	doc, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Root returns the tt root element.
func (d *Document) Root() *xmlquery.Node {
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// Body returns the body element, or nil if absent.
func (d *Document) Body() *xmlquery.Node {
	return firstChildElement(d.Root(), "body")
}

// Head returns the head element, or nil if absent.
func (d *Document) Head() *xmlquery.Node {
	return firstChildElement(d.Root(), "head")
}

// Paragraphs returns every p element across all divs, in document order.
func (d *Document) Paragraphs() []*xmlquery.Node {
	var paragraphs []*xmlquery.Node
	for _, div := range ChildElements(d.Body(), "div") {
		paragraphs = append(paragraphs, ChildElements(div, "p")...)
	}
	return paragraphs
}

// Serialize renders the document back to XML, declaration included.
func (d *Document) Serialize() []byte {
	return []byte(d.root.OutputXML(true))
}

// WriteFile serializes the document to path.
func (d *Document) WriteFile(path string) error {
	if err := os.WriteFile(path, d.Serialize(), 0644); err != nil {
		return fmt.Errorf("failed to write TTML file: %w", err)
	}
	return nil
}

// ChildElements returns the direct child elements of n with the given local
// name, regardless of namespace prefix. A nil parent yields nil.
func ChildElements(n *xmlquery.Node, name string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var elems []*xmlquery.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == name {
			elems = append(elems, child)
		}
	}
	return elems
}

// Text returns the node's direct text content, excluding text inside child
// elements. This mirrors how a span's own words are distinct from nested
// background-vocal spans.
func Text(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			sb.WriteString(child.Data)
		}
	}
	return sb.String()
}

// namespace URIs behind the prefixes lyric TTML files use; attribute
// lookup accepts either form so it does not depend on how the parser
// resolved the prefix
var nsURIs = map[string]string{
	"tt":     "http://www.w3.org/ns/ttml",
	"ttm":    "http://www.w3.org/ns/ttml#metadata",
	"itunes": "http://music.apple.com/lyric-ttml-internal",
	"amll":   "http://www.example.com/ns/amll",
	"xml":    "http://www.w3.org/XML/1998/namespace",
}

// Attr returns the value of the attribute with the given (possibly
// qualified) name, or "" if absent.
func Attr(n *xmlquery.Node, name string) string {
	if n == nil {
		return ""
	}
	space, local := splitQName(name)
	for _, a := range n.Attr {
		if attrMatches(a, space, local) {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present, even when empty.
func HasAttr(n *xmlquery.Node, name string) bool {
	if n == nil {
		return false
	}
	space, local := splitQName(name)
	for _, a := range n.Attr {
		if attrMatches(a, space, local) {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces an attribute, keeping its position when it
// already exists.
func SetAttr(n *xmlquery.Node, name, value string) {
	space, local := splitQName(name)
	for i, a := range n.Attr {
		if attrMatches(a, space, local) {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{
		Name:  xml.Name{Space: space, Local: local},
		Value: value,
	})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *xmlquery.Node, name string) {
	space, local := splitQName(name)
	for i, a := range n.Attr {
		if attrMatches(a, space, local) {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func attrMatches(a xmlquery.Attr, space, local string) bool {
	if a.Name.Local != local {
		return false
	}
	if a.Name.Space == space {
		return true
	}
	return space != "" && a.Name.Space == nsURIs[space]
}

var nsPrefixes = func() map[string]string {
	m := make(map[string]string, len(nsURIs))
	for prefix, uri := range nsURIs {
		m[uri] = prefix
	}
	return m
}()

// QualifiedAttrName returns an attribute's name as written in a document
// ("ttm:role", "xml:id", "begin"), mapping a resolved namespace URI back
// to its conventional prefix.
func QualifiedAttrName(a xmlquery.Attr) string {
	switch {
	case a.Name.Space == "":
		return a.Name.Local
	case a.Name.Space == "xmlns":
		return "xmlns:" + a.Name.Local
	}
	if prefix, ok := nsPrefixes[a.Name.Space]; ok {
		return prefix + ":" + a.Name.Local
	}
	return a.Name.Space + ":" + a.Name.Local
}

// Role returns the node's ttm:role value, accepting the bare role
// attribute some files carry.
func Role(n *xmlquery.Node) string {
	if v := Attr(n, AttrRole); v != "" {
		return v
	}
	return Attr(n, "role")
}

func firstChildElement(n *xmlquery.Node, name string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == name {
			return child
		}
	}
	return nil
}

func splitQName(name string) (space, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
