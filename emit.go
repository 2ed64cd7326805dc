package sigstub

import (
	"strings"
	"unicode/utf8"
)

// Emitter defaults.
const (
	DefaultWidth  = 100
	DefaultIndent = "  "
)

const whereType = "where type"

// Emitter renders a StubFile as SML text. The zero value is ready to use.
type Emitter struct {
	// NoComments suppresses every comment block.
	NoComments bool

	// Width is the maximum comment line width, indent included.
	// Defaults to DefaultWidth.
	Width int

	// Indent is one nesting level. Defaults to DefaultIndent.
	Indent string
}

func (e *Emitter) width() int {
	if e.Width <= 0 {
		return DefaultWidth
	}
	return e.Width
}

func (e *Emitter) indent(level int) string {
	unit := e.Indent
	if unit == "" {
		unit = DefaultIndent
	}
	return strings.Repeat(unit, level)
}

// Emit renders f. The returned warnings cover the reconciliation
// diagnostics and any layout problem found while nesting declarations.
func (e *Emitter) Emit(f *StubFile) (*Stub, Warnings) {
	var ws Warnings
	var lines []string

	if len(f.Description) != 0 {
		lines = e.comment(lines, "", f.Description)
	}

	if !f.HasSignature() {
		if w := f.Validate(); w != nil {
			ws = append(ws, *w)
		}
	} else {
		lines = append(lines, f.SignatureName+" = sig")
		var ok bool
		lines, ok = e.declarations(lines, f.Declarations)
		if !ok {
			ws.Add(f.Name, WarnUnbalancedNesting, "sig and end do not balance in the interface")
		}
		lines = append(lines, "end")
	}
	lines = append(lines, "")

	for _, name := range f.AuxiliaryNames {
		lines = e.splitWhereType(lines, "", name+" = struct end")
	}
	if len(f.AuxiliaryNames) != 0 {
		lines = append(lines, "")
	}

	if !f.Diagnostics.Empty() {
		ws = append(ws, f.Diagnostics.Warnings(f.Name)...)
	}
	return &Stub{Name: f.Name, Text: strings.Join(lines, "\n")}, ws
}

// declarations appends the annotated declarations, re-nesting embedded
// sub-signatures. It reports false when the sig/end pairs do not balance;
// the level is then clamped so output stays inside the signature.
func (e *Emitter) declarations(lines []string, decls []AnnotatedDeclaration) ([]string, bool) {
	level := 1
	balanced := true
	for _, d := range decls {
		text := strings.TrimSpace(d.Text)
		if closesBlock(text) {
			level--
			if level < 1 {
				level = 1
				balanced = false
			}
		}
		// A comment on a closing line sits at the closing line's level.
		if d.HasProse() {
			lines = e.comment(lines, e.indent(level), []string{d.Prose})
		}
		lines = e.splitWhereType(lines, e.indent(level), text)
		if opensBlock(text) {
			level++
		}
	}
	return lines, balanced && level == 1
}

// closesBlock reports whether a declaration closes a sub-signature. The
// tokenizer always starts a line at "end", so a trailing "where type"
// clause may follow it.
func closesBlock(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	return fields[0] == "end" || fields[len(fields)-1] == "end"
}

func opensBlock(text string) bool {
	return strings.HasSuffix(text, ": sig")
}

// splitWhereType puts every "where type" clause after the first part on
// its own line, one level deeper.
func (e *Emitter) splitWhereType(lines []string, indent, s string) []string {
	parts := strings.Split(s, whereType)
	lines = append(lines, indent+strings.TrimSpace(parts[0]))
	for _, wt := range parts[1:] {
		lines = append(lines, indent+e.indent(1)+whereType+" "+strings.TrimSpace(wt))
	}
	return lines
}

func (e *Emitter) comment(lines []string, indent string, paragraphs []string) []string {
	if e.NoComments {
		return lines
	}
	return WriteComment(lines, indent, paragraphs, e.width())
}

// WriteComment appends paragraphs to lines as a "(*! ... *)" block at the
// given indent, word-wrapped so that no line is wider than width. A word
// longer than the width sits alone on its line. Paragraphs are separated by
// one blank line.
func WriteComment(lines []string, indent string, paragraphs []string, width int) []string {
	lineStart := indent + " *"
	lines = append(lines, indent+"(*!")
	for i, paragraph := range paragraphs {
		cur := lineStart
		for _, word := range strings.Fields(paragraph) {
			toAdd := " " + word
			if cur != lineStart && utf8.RuneCountInString(cur)+utf8.RuneCountInString(toAdd) > width {
				lines = append(lines, cur)
				cur = lineStart + toAdd
			} else {
				cur += toAdd
			}
		}
		lines = append(lines, cur)
		if i+1 != len(paragraphs) {
			lines = append(lines, "")
		}
	}
	return append(lines, indent+" *)")
}
