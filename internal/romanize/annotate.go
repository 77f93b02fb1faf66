package romanize

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ttml-tools/ttmlkit/internal/logging"
	"github.com/ttml-tools/ttmlkit/internal/ttml"
)

// Annotator writes x-roman attributes onto a document's qualifying nodes.
//
// Policy: existing x-roman values are overwritten (the tool regenerates
// annotations), and a backend failure on a single node is logged and
// skipped rather than aborting the run.
type Annotator struct {
	Backend Backend
	Log     *logging.Logger

	skipped int
}

func NewAnnotator(backend Backend, log *logging.Logger) *Annotator {
	return &Annotator{Backend: backend, Log: log}
}

// Skipped reports how many nodes were left unannotated because the backend
// failed on their text.
func (a *Annotator) Skipped() int { return a.skipped }

// Annotate walks every paragraph depth-first and annotates each
// non-translation node that carries text in the backend's script. Nested
// spans (background vocals) are annotated at every level; containers get
// the space-joined romanization of their children.
func (a *Annotator) Annotate(doc *ttml.Document) {
	for _, p := range doc.Paragraphs() {
		a.annotate(p)
	}
}

// annotate returns the node's romanization and whether any descendant was
// actually romanized. Nodes whose subtree produced nothing are left
// untouched, so Latin-script lines never acquire an x-roman attribute.
func (a *Annotator) annotate(n *xmlquery.Node) (string, bool) {
	if ttml.Role(n) == ttml.RoleTranslation {
		return "", false
	}

	spans := ttml.ChildElements(n, "span")
	if len(spans) == 0 {
		return a.annotateLeaf(n)
	}

	var parts []string
	annotated := false
	for _, span := range spans {
		roman, ok := a.annotate(span)
		if ok {
			annotated = true
		}
		switch {
		case roman != "":
			parts = append(parts, roman)
		case ttml.Role(span) != ttml.RoleTranslation:
			// keep the original text so the joined line stays complete
			if text := strings.TrimSpace(ttml.Text(span)); text != "" {
				parts = append(parts, text)
			}
		}
	}

	joined := strings.Join(parts, " ")
	if annotated && joined != "" {
		ttml.SetAttr(n, ttml.AttrRoman, joined)
	}
	return joined, annotated
}

func (a *Annotator) annotateLeaf(n *xmlquery.Node) (string, bool) {
	text := strings.TrimSpace(ttml.Text(n))
	if text == "" {
		return "", false
	}

	roman, err := a.Backend.Romanize(text)
	if err != nil {
		a.skipped++
		if a.Log != nil {
			a.Log.Warnw("Skipping node: romanization failed",
				"backend", a.Backend.Name(),
				"text", text,
				"error", err,
			)
		}
		return "", false
	}
	if roman == "" {
		return "", false
	}

	ttml.SetAttr(n, ttml.AttrRoman, roman)
	return roman, true
}
