// Package pdfnav inspects PDF navigation structure: page ranges, page
// labels, outlines, named destinations, document metadata, and page-level
// text.
package pdfnav

import (
	"github.com/pyhub-apps/pdfnav-golang/pkg/outline"
	"github.com/pyhub-apps/pdfnav-golang/pkg/pagelabels"
	"github.com/pyhub-apps/pdfnav-golang/pkg/pagerange"
	"github.com/pyhub-apps/pdfnav-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfnav-golang/pkg/text"
)

// Re-export types from the internal packages for the public API
type (
	Document      = pdf.Document
	Store         = pdf.Store
	DocInfo       = pdf.DocInfo
	PageRange     = pagerange.Range
	PageRef       = pagerange.PageRef
	Rotation      = pagerange.Rotation
	PageLabel     = pagelabels.PageLabel
	TocEntry      = outline.Entry
	FlatTocEntry  = outline.FlatEntry
	TextExtractor = text.Extractor
	PageText      = text.PageText
	GrepMatch     = text.Match
	GrepOptions   = text.GrepOptions
)

// Rotation tags recognized after a page number
const (
	RotationNone  = pagerange.RotationNone
	RotationRight = pagerange.RotationRight
	RotationDown  = pagerange.RotationDown
	RotationLeft  = pagerange.RotationLeft
)

// Re-export the range, label, outline, and search helpers
var (
	ParsePageRange     = pagerange.Parse
	ParsePageRanges    = pagerange.ParseList
	ExpandPageRanges   = pagerange.ExpandList
	PageLabels         = pagelabels.Labels
	Toc                = outline.Toc
	FlattenToc         = outline.Flatten
	LookupNamedDest    = outline.LookupNamed
	DefaultGrepOptions = text.DefaultGrepOptions
)

// Re-export the file-level page operations
var (
	ExtractPages = pdf.ExtractPagesFile
	SplitPages   = pdf.SplitSinglePages
	MergeFiles   = pdf.MergeFiles
)

// Open opens a PDF file for structure inspection
func Open(filepath string) (*pdf.Document, error) {
	return pdf.Open(filepath)
}

// OpenWithPassword opens a password-protected PDF file
func OpenWithPassword(filepath string, password string) (*pdf.Document, error) {
	return pdf.OpenWithPassword(filepath, password)
}

// OpenText opens a PDF file for text extraction
// This tries the ledongthuc reader first as it has the most accurate
// positioned output, then falls back to dslipak
func OpenText(filepath string) (*text.Extractor, error) {
	return text.Open(filepath)
}

// Info reads the document information dictionary of a PDF file
func Info(filepath string) (DocInfo, error) {
	doc, err := pdf.Open(filepath)
	if err != nil {
		return DocInfo{}, err
	}
	defer doc.Close()
	return doc.Info(), nil
}
