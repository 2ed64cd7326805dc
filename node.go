package sigstub

// NodeKind is the minimal classification of manual markup the extractor
// works with. Only the HTML adapter maps raw elements onto it.
type NodeKind int

// Node kinds.
const (
	NodeOther NodeKind = iota
	NodeHeader
	NodeContainer
	NodeParagraph
	NodeDivider
	NodeTerm
	NodeDescription
	NodeDefinitionList
)

var nodeKindNames = [...]string{
	NodeOther:          "other",
	NodeHeader:         "header",
	NodeContainer:      "container",
	NodeParagraph:      "paragraph",
	NodeDivider:        "divider",
	NodeTerm:           "term",
	NodeDescription:    "description",
	NodeDefinitionList: "definition-list",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "other"
	}
	return nodeKindNames[k]
}
