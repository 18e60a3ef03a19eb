// Package pagerange parses page range specifications like "1-5,8,10-end"
// and expands them into explicit lists of 1-based page numbers.
package pagerange

import (
	"fmt"
	"strconv"
	"strings"
)

// Rotation is a rotation tag attached to a page range, as in "1-5R".
// Tags are recognized and preserved for compatibility with common range
// notations; expansion does not act on them.
type Rotation int

const (
	// RotationNone means no rotation tag was present
	RotationNone Rotation = iota
	// RotationRight rotates 90 degrees clockwise (R)
	RotationRight
	// RotationDown rotates 180 degrees (D)
	RotationDown
	// RotationLeft rotates 90 degrees counter-clockwise (L)
	RotationLeft
)

// String returns a lowercase name for the rotation tag
func (r Rotation) String() string {
	switch r {
	case RotationRight:
		return "right"
	case RotationDown:
		return "down"
	case RotationLeft:
		return "left"
	default:
		return "none"
	}
}

// PageRef refers to a single page: either an explicit 1-based number or
// the document's last page via the "end" keyword
type PageRef struct {
	// Number is the 1-based page number; ignored when End is true
	Number int
	// End marks a reference to the last page of the document
	End bool
}

// Range is one parsed page range with an optional rotation tag
type Range struct {
	// Start is the first page of the range
	Start PageRef
	// End is the last page of the range, or nil for a single page
	End *PageRef
	// Rotation is the rotation tag, RotationNone when absent
	Rotation Rotation
}

// ParseError reports a page range specification that does not follow the
// range grammar.
type ParseError struct {
	Input string // offending input fragment, empty when nothing useful to show
	Msg   string // description of the violation
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return e.Msg
	}
	return e.Msg + ": " + e.Input
}

// RangeError reports a page reference that cannot be satisfied by the
// document being addressed.
type RangeError struct {
	What  string // "start page" or "end page"
	Page  int    // offending page number; 0 when the reference itself was zero
	Total int    // page count of the document
}

func (e *RangeError) Error() string {
	if e.Page == 0 {
		return "page numbers must be >= 1"
	}
	return fmt.Sprintf("%s %d exceeds total pages %d", e.What, e.Page, e.Total)
}

// Parse parses a single page range specification such as "5", "1-5", "9-6",
// "5-end", or "1-5R". A trailing R/L/D rotation tag is only recognized when
// the character before it is a digit, so "end" keeps its final 'd'.
func Parse(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, &ParseError{Msg: "empty page range"}
	}

	rangePart, rotation := splitRotation(s)

	if dash := strings.IndexByte(rangePart, '-'); dash >= 0 {
		// A leading dash would make the first ref a negative number
		if dash == 0 {
			return Range{}, &ParseError{Input: s, Msg: "invalid page range"}
		}

		start, err := parsePageRef(rangePart[:dash])
		if err != nil {
			return Range{}, err
		}
		end, err := parsePageRef(rangePart[dash+1:])
		if err != nil {
			return Range{}, err
		}
		return Range{Start: start, End: &end, Rotation: rotation}, nil
	}

	page, err := parsePageRef(rangePart)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: page, Rotation: rotation}, nil
}

// Expand resolves the range against a document with totalPages pages and
// returns the explicit list of 1-based page numbers. Reversed ranges like
// "9-6" expand in descending order.
func (r Range) Expand(totalPages int) ([]int, error) {
	start := r.Start.resolve(totalPages)
	end := start
	if r.End != nil {
		end = r.End.resolve(totalPages)
	}

	if start == 0 || end == 0 {
		return nil, &RangeError{Total: totalPages}
	}
	if start > totalPages {
		return nil, &RangeError{What: "start page", Page: start, Total: totalPages}
	}
	if end > totalPages {
		return nil, &RangeError{What: "end page", Page: end, Total: totalPages}
	}

	if start <= end {
		pages := make([]int, 0, end-start+1)
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
		return pages, nil
	}

	pages := make([]int, 0, start-end+1)
	for p := start; p >= end; p-- {
		pages = append(pages, p)
	}
	return pages, nil
}

// ParseList parses a comma-separated list of page ranges such as
// "1-5,10,15-end"
func ParseList(s string) ([]Range, error) {
	parts := strings.Split(s, ",")
	ranges := make([]Range, 0, len(parts))
	for _, part := range parts {
		r, err := Parse(part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// ExpandList parses a comma-separated list of page ranges and expands every
// range against totalPages, concatenating the results in order without
// deduplication.
func ExpandList(s string, totalPages int) ([]int, error) {
	ranges, err := ParseList(s)
	if err != nil {
		return nil, err
	}

	var pages []int
	for _, r := range ranges {
		expanded, err := r.Expand(totalPages)
		if err != nil {
			return nil, err
		}
		pages = append(pages, expanded...)
	}
	return pages, nil
}

func (ref PageRef) resolve(totalPages int) int {
	if ref.End {
		return totalPages
	}
	return ref.Number
}

// splitRotation strips a trailing rotation tag when it directly follows a
// digit and returns the remaining range text with the tag's rotation.
func splitRotation(s string) (string, Rotation) {
	if len(s) < 2 {
		return s, RotationNone
	}
	if prev := s[len(s)-2]; prev < '0' || prev > '9' {
		return s, RotationNone
	}
	switch s[len(s)-1] {
	case 'R', 'r':
		return s[:len(s)-1], RotationRight
	case 'L', 'l':
		return s[:len(s)-1], RotationLeft
	case 'D', 'd':
		return s[:len(s)-1], RotationDown
	}
	return s, RotationNone
}

func parsePageRef(s string) (PageRef, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "end") {
		return PageRef{End: true}, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return PageRef{}, &ParseError{Input: s, Msg: "invalid page number"}
	}
	return PageRef{Number: int(n)}, nil
}
