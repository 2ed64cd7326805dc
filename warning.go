package sigstub

import "fmt"

// WarningKind classifies a data-quality issue found while processing a page.
type WarningKind string

// Warning kinds. None of these fail a page.
const (
	WarnMissingSynopsis    WarningKind = "missing-synopsis"
	WarnMissingSignature   WarningKind = "missing-signature"
	WarnMissingInterface   WarningKind = "missing-interface"
	WarnMissingDescription WarningKind = "missing-description"
	WarnUnexpectedMarkup   WarningKind = "unexpected-markup"
	WarnUnusedDoc          WarningKind = "unused-doc"
	WarnDuplicateDoc       WarningKind = "duplicate-doc"
	WarnMultiplyUsedDoc    WarningKind = "multiply-used-doc"
	WarnOrphanDeclarations WarningKind = "orphan-declarations"
	WarnUnbalancedNesting  WarningKind = "unbalanced-nesting"
)

// Warning is a recoverable issue tied to one page.
type Warning struct {
	Page    string
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Page, w.Kind, w.Message)
}

// Warnings collects the warnings of one page run.
type Warnings []Warning

// Add appends a warning.
func (ws *Warnings) Add(page string, kind WarningKind, msg string) {
	*ws = append(*ws, Warning{Page: page, Kind: kind, Message: msg})
}

// Addf appends a warning with a formatted message.
func (ws *Warnings) Addf(page string, kind WarningKind, format string, args ...any) {
	ws.Add(page, kind, fmt.Sprintf(format, args...))
}
