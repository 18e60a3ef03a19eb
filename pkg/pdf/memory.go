package pdf

import (
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// MemDoc is an in-memory Store. It backs synthetic documents assembled
// object by object, which is how the package tests build their fixtures.
type MemDoc struct {
	objects  map[int]types.Object
	catalog  types.Dict
	pageRefs []types.IndirectRef
}

// NewMemDoc returns an empty in-memory document
func NewMemDoc() *MemDoc {
	return &MemDoc{objects: make(map[int]types.Object)}
}

// Put stores obj under the given object number and returns a reference to
// it. Storing a second object under the same number replaces the first.
func (m *MemDoc) Put(number int, obj types.Object) types.IndirectRef {
	m.objects[number] = obj
	return *types.NewIndirectRef(number, 0)
}

// SetCatalog installs the document catalog dictionary
func (m *MemDoc) SetCatalog(dict types.Dict) {
	m.catalog = dict
}

// AddPage appends ref as the next page in document order
func (m *MemDoc) AddPage(ref types.IndirectRef) {
	m.pageRefs = append(m.pageRefs, ref)
}

// Catalog returns the document catalog dictionary
func (m *MemDoc) Catalog() (types.Dict, error) {
	if m.catalog == nil {
		return nil, errors.New("document has no catalog")
	}
	return m.catalog, nil
}

// Resolve follows obj through indirect references until it reaches a direct
// object
func (m *MemDoc) Resolve(obj types.Object) (types.Object, error) {
	for depth := 0; depth < maxResolveDepth; depth++ {
		if p, ok := obj.(*types.IndirectRef); ok {
			obj = *p
		}
		ref, ok := obj.(types.IndirectRef)
		if !ok {
			return obj, nil
		}
		next, found := m.objects[ref.ObjectNumber.Value()]
		if !found {
			return nil, fmt.Errorf("object %d not found", ref.ObjectNumber.Value())
		}
		obj = next
	}
	return nil, fmt.Errorf("indirect reference chain exceeds %d levels", maxResolveDepth)
}

// PageRefs returns the indirect reference of every page in document order
func (m *MemDoc) PageRefs() []types.IndirectRef {
	return m.pageRefs
}

// PageCount returns the total number of pages
func (m *MemDoc) PageCount() int {
	return len(m.pageRefs)
}
