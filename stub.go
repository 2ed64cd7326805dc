package sigstub

import "context"

// AnnotatedDeclaration is one interface declaration with the prose that
// documents it, if any.
type AnnotatedDeclaration struct {
	Text  string
	Prose string // empty means absent
}

// HasProse reports whether documentation was found for the declaration.
func (d AnnotatedDeclaration) HasProse() bool {
	return d.Prose != ""
}

// StubFile is everything needed to emit one page's stub.
type StubFile struct {
	Name           string
	Description    []string
	SignatureName  string
	Declarations   []AnnotatedDeclaration
	AuxiliaryNames []string
	Diagnostics    Diagnostics
}

// Validate checks that declarations only appear under a signature. The
// result is a warning, not an error: the caller keeps the data.
func (f *StubFile) Validate() *Warning {
	if !f.HasSignature() && len(f.Declarations) != 0 {
		return &Warning{
			Page:    f.Name,
			Kind:    WarnOrphanDeclarations,
			Message: "no signature name but the page declares an interface",
		}
	}
	return nil
}

// HasSignature reports whether the page named a signature to wrap the
// declarations in.
func (f *StubFile) HasSignature() bool {
	return f.SignatureName != ""
}

// NewStubFile assembles a StubFile from extracted page info and its
// reconciliation.
func NewStubFile(name string, info *PageInfo, r *Reconciliation) *StubFile {
	return &StubFile{
		Name:           name,
		Description:    info.Description,
		SignatureName:  info.SignatureName,
		Declarations:   r.Declarations,
		AuxiliaryNames: info.AuxiliaryNames,
		Diagnostics:    r.Diagnostics,
	}
}

// Stub is the emitted text of one page.
type Stub struct {
	Name string
	Text string // SML
}

// StubStore persists stubs with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type StubStore interface {
	Save(ctx context.Context, stub *Stub) error
	Commit() error
	Abort() error
}
