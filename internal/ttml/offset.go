package ttml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ParseOffset parses a timing shift. A value with an "ms" suffix is read as
// milliseconds ("100ms", "-50ms"); anything else as seconds ("1.5", "-0.25").
func ParseOffset(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "ms") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "ms"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid millisecond offset %q", s)
		}
		return v / 1000, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return v, nil
}

// Offset shifts every begin and end attribute in the document by delta
// seconds, clamping at zero, and updates the body dur to the latest end
// time found afterwards.
func (d *Document) Offset(delta float64) error {
	if err := shiftTimes(d.Root(), delta); err != nil {
		return err
	}

	body := d.Body()
	if body == nil {
		return nil
	}
	maxEnd, err := latestEnd(d.Root())
	if err != nil {
		return err
	}
	if HasAttr(body, AttrDur) {
		SetAttr(body, AttrDur, FormatClock(maxEnd))
	}
	return nil
}

func shiftTimes(n *xmlquery.Node, delta float64) error {
	if n == nil {
		return nil
	}
	for _, attr := range []string{AttrBegin, AttrEnd} {
		if !HasAttr(n, attr) {
			continue
		}
		t, err := ParseClock(Attr(n, attr))
		if err != nil {
			return err
		}
		t += delta
		if t < 0 {
			t = 0
		}
		SetAttr(n, attr, FormatClock(t))
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		if err := shiftTimes(child, delta); err != nil {
			return err
		}
	}
	return nil
}

func latestEnd(n *xmlquery.Node) (float64, error) {
	if n == nil {
		return 0, nil
	}
	var max float64
	if HasAttr(n, AttrEnd) {
		t, err := ParseClock(Attr(n, AttrEnd))
		if err != nil {
			return 0, err
		}
		max = t
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		t, err := latestEnd(child)
		if err != nil {
			return 0, err
		}
		if t > max {
			max = t
		}
	}
	return max, nil
}
