package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Store gives read access to a PDF document's object graph. The navigation
// packages only depend on this interface, so they work the same against a
// file-backed document and an in-memory one.
type Store interface {
	// Catalog returns the document catalog dictionary
	Catalog() (types.Dict, error)

	// Resolve follows obj through indirect references until it reaches a
	// direct object. Non-reference objects come back unchanged; a nil obj
	// resolves to nil.
	Resolve(obj types.Object) (types.Object, error)

	// PageRefs returns the indirect reference of every page in document
	// order. Index 0 holds page 1.
	PageRefs() []types.IndirectRef

	// PageCount returns the total number of pages
	PageCount() int
}
