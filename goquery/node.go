// Package goquery implements the HTML side of sigstub on top of
// github.com/PuerkitoBio/goquery: page extraction and index link selection.
package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sigstub"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nodeKind maps the first node of sel onto the extractor's node kinds.
// This is the only place that knows which tags the manuals use.
func nodeKind(sel *goquery.Selection) sigstub.NodeKind {
	if sel.Length() == 0 {
		return sigstub.NodeOther
	}
	n := sel.Get(0)
	if n.Type != html.ElementNode {
		return sigstub.NodeOther
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return sigstub.NodeHeader
	case atom.Blockquote:
		return sigstub.NodeContainer
	case atom.P:
		return sigstub.NodeParagraph
	case atom.Hr:
		return sigstub.NodeDivider
	case atom.Dl:
		return sigstub.NodeDefinitionList
	case atom.Dt:
		return sigstub.NodeTerm
	case atom.Dd:
		return sigstub.NodeDescription
	default:
		return sigstub.NodeOther
	}
}

// nodeText returns the normalized text of sel and all its descendants.
func nodeText(sel *goquery.Selection) string {
	return sigstub.NormalizeText(sel.Text())
}

// tagName is used in diagnostics only.
func tagName(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return "nothing"
	}
	return "<" + goquery.NodeName(sel) + ">"
}
