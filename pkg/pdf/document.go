package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfnav-golang/pkg/logging"
)

// maxResolveDepth bounds indirect reference chains so a reference loop in a
// damaged file cannot hang resolution.
const maxResolveDepth = 64

// Document is a Store backed by a pdfcpu context read from a file.
type Document struct {
	ctx      *model.Context
	filepath string
	pageRefs []types.IndirectRef
}

// Open opens a PDF file
func Open(filepath string) (*Document, error) {
	return OpenWithPassword(filepath, "")
}

// OpenWithPassword opens a password-protected PDF file. An empty password
// opens unprotected files.
func OpenWithPassword(filepath string, password string) (*Document, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// Create pdfcpu configuration
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	// Parse PDF with pdfcpu
	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	// Validate the PDF
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	doc := &Document{
		ctx:      ctx,
		filepath: filepath,
	}

	if err := doc.initializePageRefs(); err != nil {
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	logging.Logger().Debug("opened document", "path", filepath, "pages", len(doc.pageRefs))

	return doc, nil
}

// initializePageRefs records the indirect reference of every page in
// document order.
func (d *Document) initializePageRefs() error {
	pageCount := d.ctx.PageCount
	d.pageRefs = make([]types.IndirectRef, pageCount)

	for i := 1; i <= pageCount; i++ {
		_, ref, _, err := d.ctx.PageDict(i, false)
		if err != nil {
			return fmt.Errorf("failed to locate page %d: %w", i, err)
		}
		if ref == nil {
			return fmt.Errorf("page %d has no indirect reference", i)
		}
		d.pageRefs[i-1] = *ref
	}

	return nil
}

// Catalog returns the document catalog dictionary
func (d *Document) Catalog() (types.Dict, error) {
	return d.ctx.Catalog()
}

// Resolve follows obj through indirect references until it reaches a direct
// object
func (d *Document) Resolve(obj types.Object) (types.Object, error) {
	for depth := 0; depth < maxResolveDepth; depth++ {
		if p, ok := obj.(*types.IndirectRef); ok {
			obj = *p
		}
		ref, ok := obj.(types.IndirectRef)
		if !ok {
			return obj, nil
		}
		next, err := d.ctx.Dereference(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to dereference object %d: %w", ref.ObjectNumber.Value(), err)
		}
		obj = next
	}
	return nil, fmt.Errorf("indirect reference chain exceeds %d levels", maxResolveDepth)
}

// PageRefs returns the indirect reference of every page in document order
func (d *Document) PageRefs() []types.IndirectRef {
	return d.pageRefs
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.pageRefs)
}

// Path returns the path the document was opened from
func (d *Document) Path() string {
	return d.filepath
}

// Info returns the document information dictionary fields
func (d *Document) Info() DocInfo {
	info := DocInfo{
		Path:      d.filepath,
		PageCount: d.PageCount(),
	}

	if d.ctx.Info == nil {
		return info
	}
	dict, ok := ResolveDict(d, *d.ctx.Info)
	if !ok {
		return info
	}

	fillInfoFromDict(d, dict, &info)
	return info
}

// Close releases resources associated with the document
func (d *Document) Close() error {
	d.ctx = nil
	d.pageRefs = nil
	return nil
}
