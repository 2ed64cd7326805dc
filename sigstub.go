// Package sigstub rebuilds Standard ML interface stubs from HTML reference
// manuals. It harvests library manual pages, extracts the synopsis,
// interface and description sections, reconciles the declarations with
// their documentation and emits annotated .sml signature stubs.
//
// This package contains domain types, interfaces and the pure
// reconcile/emit pipeline, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, sqlite/, http/).
package sigstub
