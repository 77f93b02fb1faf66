// Package lint renders TTML in a canonical form: known attributes in a
// fixed order, two-space indentation for structural elements, and p
// content kept inline so no whitespace is introduced between spans.
package lint

import (
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ttml-tools/ttmlkit/internal/ttml"
)

// attribute ordering priority; unknown attributes sort alphabetically
// after the known ones
var attrOrder = map[string]int{
	"begin":         0,
	"end":           1,
	"dur":           2,
	"ttm:agent":     3,
	"ttm:role":      4,
	"itunes:key":    5,
	"itunes:timing": 6,
	"type":          7,
	"xml:id":        8,
	"xml:lang":      9,
	"x-roman":       10,
	"for":           11,
}

// Format parses TTML and renders it canonically.
func Format(data []byte) ([]byte, error) {
	doc, err := ttml.Parse(data)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	renderElement(&sb, doc.Root(), 0)
	return []byte(sb.String()), nil
}

// Check reports whether data is already formatted; when it is not, it also
// returns the first line (1-based) that differs from the canonical form.
func Check(data []byte) (bool, int, error) {
	formatted, err := Format(data)
	if err != nil {
		return false, 0, err
	}
	if string(formatted) == string(data) {
		return true, 0, nil
	}

	got := strings.Split(string(data), "\n")
	want := strings.Split(string(formatted), "\n")
	for i := 0; i < len(got) && i < len(want); i++ {
		if got[i] != want[i] {
			return false, i + 1, nil
		}
	}
	return false, min(len(got), len(want)) + 1, nil
}

func renderElement(sb *strings.Builder, n *xmlquery.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	if n.Data == "p" {
		sb.WriteString(indent)
		writeOpenTag(sb, n)
		sb.WriteString(">")
		renderInlineChildren(sb, n)
		sb.WriteString("</" + qname(n) + ">\n")
		return
	}

	if !hasElementChildren(n) {
		sb.WriteString(indent)
		writeOpenTag(sb, n)
		text := strings.TrimSpace(collectText(n))
		if text == "" {
			sb.WriteString("/>\n")
		} else {
			sb.WriteString(">" + escapeText(text) + "</" + qname(n) + ">\n")
		}
		return
	}

	sb.WriteString(indent)
	writeOpenTag(sb, n)
	sb.WriteString(">\n")
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			renderElement(sb, child, depth+1)
		}
	}
	sb.WriteString(indent + "</" + qname(n) + ">\n")
}

// renderInlineChildren emits p (and nested span) content on one line.
// Whitespace between two spans collapses to a single space, keeping its
// word-break meaning; whitespace at the edges is dropped.
func renderInlineChildren(sb *strings.Builder, n *xmlquery.Node) {
	pendingSpace := false
	wroteAny := false
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(child.Data) == "" {
				if child.Data != "" {
					pendingSpace = true
				}
			} else {
				if pendingSpace && wroteAny {
					sb.WriteString(" ")
				}
				pendingSpace = false
				wroteAny = true
				sb.WriteString(escapeText(strings.TrimSpace(child.Data)))
			}
		case xmlquery.ElementNode:
			if pendingSpace && wroteAny {
				sb.WriteString(" ")
			}
			pendingSpace = false
			wroteAny = true
			writeOpenTag(sb, child)
			if child.FirstChild == nil {
				sb.WriteString("/>")
			} else {
				sb.WriteString(">")
				renderInlineChildren(sb, child)
				sb.WriteString("</" + qname(child) + ">")
			}
		}
	}
}

func writeOpenTag(sb *strings.Builder, n *xmlquery.Node) {
	sb.WriteString("<" + qname(n))
	for _, a := range sortedAttrs(n) {
		sb.WriteString(" " + attrName(a) + "=\"" + escapeAttr(a.Value) + "\"")
	}
}

func sortedAttrs(n *xmlquery.Node) []xmlquery.Attr {
	attrs := make([]xmlquery.Attr, len(n.Attr))
	copy(attrs, n.Attr)
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrSortKey(attrName(attrs[i])) < attrSortKey(attrName(attrs[j]))
	})
	return attrs
}

// attrSortKey builds a sortable string key: known attributes first in
// priority order, then the rest alphabetically.
func attrSortKey(name string) string {
	if prio, ok := attrOrder[name]; ok {
		return string(rune('0'+prio)) + name
	}
	return "z" + name
}

func attrName(a xmlquery.Attr) string {
	return ttml.QualifiedAttrName(a)
}

func qname(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

func hasElementChildren(n *xmlquery.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

func collectText(n *xmlquery.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			sb.WriteString(child.Data)
		}
	}
	return sb.String()
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	return strings.ReplaceAll(escapeText(s), `"`, "&quot;")
}
