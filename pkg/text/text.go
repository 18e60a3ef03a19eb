// Package text extracts per-page text from PDF files and searches it with
// regular expressions.
package text

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	gopdf "github.com/dslipak/pdf"
	lpdf "github.com/ledongthuc/pdf"

	"github.com/pyhub-apps/pdfnav-golang/pkg/logging"
)

// PageText pairs a 1-based page number with its extracted text
type PageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Match is one pattern hit on a page line. Offsets are byte positions
// within Text.
type Match struct {
	Page       int    `json:"page"`
	LineNumber int    `json:"line_number"`
	Text       string `json:"text"`
	MatchStart int    `json:"match_start"`
	MatchEnd   int    `json:"match_end"`
}

// GrepOptions controls a text search
type GrepOptions struct {
	CaseInsensitive bool
	MaxResults      int
	ContextChars    int
}

// DefaultGrepOptions returns the standard search limits: at most 100
// matches, 60 characters of display context around each.
func DefaultGrepOptions() GrepOptions {
	return GrepOptions{MaxResults: 100, ContextChars: 60}
}

// fragment is one positioned run of text on a page
type fragment struct {
	s       string
	x, y, w float64
}

type backend interface {
	name() string
	pageCount() int
	pageFragments(page int) ([]fragment, error)
	close() error
}

// Extractor reads per-page text out of one open PDF file
type Extractor struct {
	path    string
	backend backend
}

// Open opens a PDF file for text extraction. The ledongthuc reader gives
// the most accurate positioned output; when it cannot read the file the
// dslipak reader is tried next.
func Open(path string) (*Extractor, error) {
	lb, err := openLedongthuc(path)
	if err == nil {
		return &Extractor{path: path, backend: lb}, nil
	}
	firstErr := err

	db, err := openDslipak(path)
	if err == nil {
		logging.Logger().Debug("text backend fallback", "path", path, "backend", db.name())
		return &Extractor{path: path, backend: db}, nil
	}

	return nil, fmt.Errorf("failed to open PDF for text extraction: %w", firstErr)
}

// PageCount returns the total number of pages
func (e *Extractor) PageCount() int {
	return e.backend.pageCount()
}

// Close releases the underlying reader
func (e *Extractor) Close() error {
	return e.backend.close()
}

// PageText returns the text of one 1-based page, lines top to bottom
func (e *Extractor) PageText(page int) (string, error) {
	if page < 1 || page > e.PageCount() {
		return "", fmt.Errorf("page %d is out of range (1-%d)", page, e.PageCount())
	}
	frags, err := e.backend.pageFragments(page)
	if err != nil {
		return "", err
	}
	return strings.Join(assembleLines(frags), "\n"), nil
}

// Pages returns the text of the requested 1-based pages in the given
// order. Every page is validated against the document before any text is
// read.
func (e *Extractor) Pages(pages []int) ([]PageText, error) {
	total := e.PageCount()
	for _, p := range pages {
		if p < 1 || p > total {
			return nil, fmt.Errorf("page %d is out of range (1-%d)", p, total)
		}
	}

	out := make([]PageText, 0, len(pages))
	for _, p := range pages {
		txt, err := e.PageText(p)
		if err != nil {
			return nil, err
		}
		out = append(out, PageText{Page: p, Text: txt})
	}
	return out, nil
}

// Search compiles pattern according to opts and greps the document
func (e *Extractor) Search(pattern string, opts GrepOptions) ([]Match, error) {
	expr := pattern
	if opts.CaseInsensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return e.Grep(re, opts.MaxResults)
}

// Grep scans every page line by line and returns pattern hits in reading
// order, with multiple hits per line reported separately. A positive
// maxResults caps the number of matches.
func (e *Extractor) Grep(re *regexp.Regexp, maxResults int) ([]Match, error) {
	var matches []Match
	total := e.PageCount()

	for page := 1; page <= total; page++ {
		text, err := e.PageText(page)
		if err != nil {
			logging.Logger().Debug("skipping unreadable page", "page", page, "error", err)
			continue
		}
		if text == "" {
			continue
		}

		for lineIdx, line := range strings.Split(text, "\n") {
			for _, loc := range re.FindAllStringIndex(line, -1) {
				matches = append(matches, Match{
					Page:       page,
					LineNumber: lineIdx + 1,
					Text:       line,
					MatchStart: loc[0],
					MatchEnd:   loc[1],
				})
				if maxResults > 0 && len(matches) >= maxResults {
					return matches, nil
				}
			}
		}
	}

	return matches, nil
}

// lineYTolerance groups fragments whose baselines differ by at most this
// many points into the same line.
const lineYTolerance = 3.0

// wordXGap inserts a space between adjacent fragments of a line when the
// horizontal gap between them exceeds this many points.
const wordXGap = 3.0

// assembleLines turns positioned fragments into text lines ordered top to
// bottom. PDF y coordinates grow upward, so higher y means an earlier
// line.
func assembleLines(frags []fragment) []string {
	if len(frags) == 0 {
		return nil
	}

	sorted := make([]fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if abs(sorted[i].y-sorted[j].y) > lineYTolerance {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})

	// Group into lines
	var lines [][]fragment
	currentY := sorted[0].y
	var current []fragment
	for _, f := range sorted {
		if abs(f.y-currentY) > lineYTolerance {
			if len(current) > 0 {
				lines = append(lines, current)
			}
			current = []fragment{f}
			currentY = f.y
		} else {
			current = append(current, f)
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, joinLine(line))
	}
	return out
}

func joinLine(line []fragment) string {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].x < line[j].x
	})

	var b strings.Builder
	for i, f := range line {
		if i > 0 {
			gap := f.x - (line[i-1].x + line[i-1].w)
			if gap > wordXGap && !strings.HasSuffix(line[i-1].s, " ") && !strings.HasPrefix(f.s, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(f.s)
	}
	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ledongthucBackend reads pages through the ledongthuc/pdf library
type ledongthucBackend struct {
	file   io.Closer
	reader *lpdf.Reader
}

func openLedongthuc(path string) (*ledongthucBackend, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}
	return &ledongthucBackend{file: f, reader: r}, nil
}

func (b *ledongthucBackend) name() string {
	return "ledongthuc"
}

func (b *ledongthucBackend) pageCount() int {
	return b.reader.NumPage()
}

func (b *ledongthucBackend) pageFragments(page int) (frags []fragment, err error) {
	// The reader panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = fmt.Errorf("failed to read page %d: %v", page, r)
		}
	}()

	p := b.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	content := p.Content()
	frags = make([]fragment, 0, len(content.Text))
	for _, t := range content.Text {
		frags = append(frags, fragment{s: t.S, x: t.X, y: t.Y, w: t.W})
	}
	return frags, nil
}

func (b *ledongthucBackend) close() error {
	if b.file != nil {
		return b.file.Close()
	}
	return nil
}

// dslipakBackend reads pages through the dslipak/pdf library
type dslipakBackend struct {
	reader *gopdf.Reader
}

func openDslipak(path string) (*dslipakBackend, error) {
	r, err := gopdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}
	return &dslipakBackend{reader: r}, nil
}

func (b *dslipakBackend) name() string {
	return "dslipak"
}

func (b *dslipakBackend) pageCount() int {
	return b.reader.NumPage()
}

func (b *dslipakBackend) pageFragments(page int) (frags []fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = fmt.Errorf("failed to read page %d: %v", page, r)
		}
	}()

	p := b.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	content := p.Content()
	frags = make([]fragment, 0, len(content.Text))
	for _, t := range content.Text {
		frags = append(frags, fragment{s: t.S, x: t.X, y: t.Y, w: t.W})
	}
	return frags, nil
}

func (b *dslipakBackend) close() error {
	// The reader owns its file handle and exposes no way to close it
	return nil
}
