package sigstub

import (
	"fmt"
	"sort"
)

// Diagnostics records the mismatches between a page's declarations and its
// documentation. They are expected noise in hand-written manuals and are
// reported as warnings, never as errors.
type Diagnostics struct {
	// Unused maps documented names that no declaration uses to their prose.
	Unused map[string]string

	// Duplicate maps names documented more than once to the earlier prose,
	// which the later entry overwrote.
	Duplicate map[string]string

	// UsedMultiple lists, sorted, the documented names that more than one
	// declaration resolved to.
	UsedMultiple []string
}

// Empty reports whether there is nothing to report.
func (d Diagnostics) Empty() bool {
	return len(d.Unused) == 0 && len(d.Duplicate) == 0 && len(d.UsedMultiple) == 0
}

// Warnings converts the diagnostics to page warnings, ordered by kind and
// then by name.
func (d Diagnostics) Warnings(page string) Warnings {
	var ws Warnings
	for _, name := range sortedKeys(d.Unused) {
		ws.Addf(page, WarnUnusedDoc, "%s: %s", name, d.Unused[name])
	}
	for _, name := range sortedKeys(d.Duplicate) {
		ws.Addf(page, WarnDuplicateDoc, "%s: %s", name, d.Duplicate[name])
	}
	for _, name := range d.UsedMultiple {
		ws.Add(page, WarnMultiplyUsedDoc, name)
	}
	return ws
}

// Reconciliation is the result of merging declarations with documentation.
type Reconciliation struct {
	// Declarations are in the same order as the input declarations.
	Declarations []AnnotatedDeclaration
	Diagnostics  Diagnostics
}

// DocMap folds doc entries into a map from canonical name to prose.
// The second result maps every name documented twice to the prose it had
// before being overwritten.
//
// An entry with a single name whose first word is not a keyword is taken
// to be an inline declaration echoed by the manual, so the name is folded
// into the prose. With several names, the first gets the prose and the rest
// get a "See <first>." cross-reference.
func DocMap(entries []DocEntry) (docs map[string]string, duplicate map[string]string, err error) {
	docs = make(map[string]string)
	duplicate = make(map[string]string)
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, nil, err
		}
		first := e.Names[0]
		firstName, err := CanonicalName(first)
		if err != nil {
			return nil, nil, err
		}
		if prev, ok := docs[firstName]; ok {
			duplicate[firstName] = prev
		}
		if len(e.Names) == 1 {
			docs[firstName] = singleProse(first, e.Prose)
			continue
		}
		docs[firstName] = e.Prose
		for _, other := range e.Names[1:] {
			name, err := CanonicalName(other)
			if err != nil {
				return nil, nil, err
			}
			docs[name] = fmt.Sprintf("See %s.", firstName)
		}
	}
	return docs, duplicate, nil
}

func singleProse(name, prose string) string {
	switch {
	case IsStarter(LeadingWord(name)):
		return prose
	case prose == "":
		return name
	default:
		return name + " " + prose
	}
}

// Reconcile annotates each declaration with the prose documenting its
// canonical name. The output keeps the declaration order.
func Reconcile(declarations []string, entries []DocEntry) (*Reconciliation, error) {
	docs, duplicate, err := DocMap(entries)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(declarations))
	multiple := make(map[string]bool)
	annotated := make([]AnnotatedDeclaration, 0, len(declarations))
	for _, decl := range declarations {
		name, err := CanonicalName(decl)
		if err != nil {
			return nil, err
		}
		prose, documented := docs[name]
		if used[name] && documented {
			multiple[name] = true
		}
		used[name] = true
		annotated = append(annotated, AnnotatedDeclaration{Text: decl, Prose: prose})
	}

	unused := make(map[string]string)
	for name, prose := range docs {
		if !used[name] {
			unused[name] = prose
		}
	}

	usedMultiple := make([]string, 0, len(multiple))
	for name := range multiple {
		usedMultiple = append(usedMultiple, name)
	}
	sort.Strings(usedMultiple)

	return &Reconciliation{
		Declarations: annotated,
		Diagnostics: Diagnostics{
			Unused:       unused,
			Duplicate:    duplicate,
			UsedMultiple: usedMultiple,
		},
	}, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
