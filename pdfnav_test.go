package pdfnav

import (
	"reflect"
	"testing"
)

func TestParsePageRangeFacade(t *testing.T) {
	r, err := ParsePageRange("2-5R")
	if err != nil {
		t.Fatalf("Failed to parse range: %v", err)
	}
	if r.Start.Number != 2 {
		t.Errorf("Expected start 2, got %d", r.Start.Number)
	}
	if r.End == nil || r.End.Number != 5 {
		t.Errorf("Expected end 5, got %+v", r.End)
	}
	if r.Rotation != RotationRight {
		t.Errorf("Expected right rotation, got %v", r.Rotation)
	}
}

func TestExpandPageRangesFacade(t *testing.T) {
	pages, err := ExpandPageRanges("1-3,5,end", 10)
	if err != nil {
		t.Fatalf("Failed to expand ranges: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{1, 2, 3, 5, 10}) {
		t.Errorf("Unexpected pages: %v", pages)
	}
}

func TestFlattenTocFacade(t *testing.T) {
	entries := []TocEntry{
		{Title: "One", Page: 1, Children: []TocEntry{
			{Title: "Sub", Page: 2, Level: 1},
		}},
		{Title: "Two", Page: 5},
	}

	flat := FlattenToc(entries)
	if len(flat) != 3 {
		t.Fatalf("Expected 3 flat entries, got %d", len(flat))
	}
	if flat[0].Title != "One" || flat[1].Title != "Sub" || flat[2].Title != "Two" {
		t.Errorf("Unexpected order: %+v", flat)
	}
	if flat[1].Level != 1 {
		t.Errorf("Expected level 1 for nested entry, got %d", flat[1].Level)
	}
}

func TestDefaultGrepOptionsFacade(t *testing.T) {
	opts := DefaultGrepOptions()
	if opts.MaxResults != 100 {
		t.Errorf("Expected max results 100, got %d", opts.MaxResults)
	}
	if opts.ContextChars != 60 {
		t.Errorf("Expected context chars 60, got %d", opts.ContextChars)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("testdata/missing.pdf"); err == nil {
		t.Error("Expected error opening a missing file")
	}
	if _, err := OpenText("testdata/missing.pdf"); err == nil {
		t.Error("Expected error opening a missing file for text")
	}
	if _, err := Info("testdata/missing.pdf"); err == nil {
		t.Error("Expected error reading info of a missing file")
	}
}
