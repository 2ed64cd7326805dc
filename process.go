package sigstub

// ProcessPage runs the full pipeline on one page: extract, reconcile,
// emit. Warnings from every stage are returned in that order. An error
// means the page produced no stub; warnings gathered before the failure
// are still returned.
func ProcessPage(ex PageExtractor, em *Emitter, page *Page) (*Stub, Warnings, error) {
	info, ws, err := ex.Extract(page)
	if err != nil {
		return nil, ws, err
	}

	r, err := Reconcile(info.Declarations, info.DocEntries)
	if err != nil {
		return nil, ws, Errorf(ErrorCode(err), "%s: %s", page.Name, ErrorMessage(err))
	}

	stub, emitted := em.Emit(NewStubFile(page.Name, info, r))
	return stub, append(ws, emitted...), nil
}
