package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sigstub"
)

// Section header titles of a basis-style manual page.
const (
	SynopsisHeader    = "Synopsis"
	InterfaceHeader   = "Interface"
	DescriptionHeader = "Description"
)

// DefaultHeaderSelector matches the section headers of the SML Basis pages.
const DefaultHeaderSelector = "h4"

var _ sigstub.PageExtractor = (*Extractor)(nil)

// Extractor parses basis-style manual pages: a Synopsis blockquote followed
// by description paragraphs, an Interface blockquote and a Description
// definition list.
type Extractor struct {
	headerSelector string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHeaderSelector sets the CSS selector for section headers.
// Defaults to DefaultHeaderSelector.
func WithHeaderSelector(selector string) Option {
	return func(e *Extractor) {
		e.headerSelector = selector
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{headerSelector: DefaultHeaderSelector}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract implements sigstub.PageExtractor. Missing sections only produce
// warnings; a section whose markup is malformed fails the page with an
// ESTRUCTURE error.
func (e *Extractor) Extract(page *sigstub.Page) (*sigstub.PageInfo, sigstub.Warnings, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Text))
	if err != nil {
		return nil, nil, sigstub.Errorf(sigstub.EINVALID, "%s: failed to parse HTML: %v", page.Name, err)
	}

	p := &pageParser{
		name:    page.Name,
		headers: doc.Find(e.headerSelector),
		info:    &sigstub.PageInfo{},
	}
	if err := p.synopsis(); err != nil {
		return nil, p.warnings, err
	}
	if err := p.interfaceSection(); err != nil {
		return nil, p.warnings, err
	}
	if err := p.description(); err != nil {
		return nil, p.warnings, err
	}
	return p.info, p.warnings, nil
}

// pageParser holds the state of one Extract call.
type pageParser struct {
	name     string
	headers  *goquery.Selection
	info     *sigstub.PageInfo
	warnings sigstub.Warnings
}

// header returns the first header whose text is title, or nil.
func (p *pageParser) header(title string) *goquery.Selection {
	match := p.headers.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return nodeText(s) == title
	}).First()
	if match.Length() == 0 {
		return nil
	}
	return match
}

// section returns the single element following header, which must be of
// the given kind.
func (p *pageParser) section(header *goquery.Selection, title string, want sigstub.NodeKind) (*goquery.Selection, error) {
	next := header.Next()
	if next.Length() != 1 || nodeKind(next) != want {
		return nil, sigstub.Errorf(sigstub.ESTRUCTURE, "%s: %s: expected one %s after header, found %s %q",
			p.name, title, want, tagName(next), nodeText(next))
	}
	return next, nil
}

func (p *pageParser) synopsis() error {
	header := p.header(SynopsisHeader)
	if header == nil {
		p.warnings.Add(p.name, sigstub.WarnMissingSynopsis, "missing synopsis")
		return nil
	}
	cur, err := p.section(header, SynopsisHeader, sigstub.NodeContainer)
	if err != nil {
		return err
	}

	lines := sigstub.Tokenize(nodeText(cur))
	if lines[0] == "" {
		return sigstub.Errorf(sigstub.ESTRUCTURE, "%s: empty synopsis", p.name)
	}
	if sigstub.LeadingWord(lines[0]) == "signature" {
		p.info.SignatureName = lines[0]
		lines = lines[1:]
	} else {
		p.warnings.Addf(p.name, sigstub.WarnMissingSignature, "missing signature in synopsis: %q", lines[0])
	}
	p.info.AuxiliaryNames = lines

	for {
		cur = cur.Next()
		switch nodeKind(cur) {
		case sigstub.NodeParagraph:
			p.info.Description = append(p.info.Description, nodeText(cur))
			continue
		case sigstub.NodeDivider:
			return nil
		}
		if cur.Length() == 0 {
			p.warnings.Add(p.name, sigstub.WarnUnexpectedMarkup, "synopsis not terminated by a divider")
			return nil
		}
		p.warnings.Addf(p.name, sigstub.WarnUnexpectedMarkup, "ignoring %s in synopsis", tagName(cur))
	}
}

func (p *pageParser) interfaceSection() error {
	header := p.header(InterfaceHeader)
	if header == nil {
		p.warnings.Add(p.name, sigstub.WarnMissingInterface, "missing interface")
		return nil
	}
	elem, err := p.section(header, InterfaceHeader, sigstub.NodeContainer)
	if err != nil {
		return err
	}
	text := nodeText(elem)
	if text == "" {
		return nil
	}
	p.info.Declarations = sigstub.Tokenize(text)
	return nil
}

func (p *pageParser) description() error {
	header := p.header(DescriptionHeader)
	if header == nil {
		p.warnings.Add(p.name, sigstub.WarnMissingDescription, "missing description")
		return nil
	}
	dl, err := p.section(header, DescriptionHeader, sigstub.NodeDefinitionList)
	if err != nil {
		return err
	}

	var names []string
	dl.Children().Each(func(_ int, child *goquery.Selection) {
		switch nodeKind(child) {
		case sigstub.NodeTerm:
			if t := nodeText(child); t != "" {
				names = append(names, t)
			}
		case sigstub.NodeDescription:
			if len(names) == 0 {
				p.warnings.Addf(p.name, sigstub.WarnUnexpectedMarkup, "ignoring description without a term: %q", nodeText(child))
				return
			}
			p.info.DocEntries = append(p.info.DocEntries, sigstub.DocEntry{
				Names: names,
				Prose: nodeText(child),
			})
			names = nil
		default:
			p.warnings.Addf(p.name, sigstub.WarnUnexpectedMarkup, "ignoring %s in description", tagName(child))
		}
	})
	if len(names) != 0 {
		return sigstub.Errorf(sigstub.ESTRUCTURE, "%s: description ends with unpaired terms %q",
			p.name, strings.Join(names, ", "))
	}
	return nil
}
