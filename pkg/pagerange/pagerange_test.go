package pagerange

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSinglePage(t *testing.T) {
	r, err := Parse("5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Start != (PageRef{Number: 5}) || r.End != nil || r.Rotation != RotationNone {
		t.Fatalf("unexpected range: %+v", r)
	}

	pages, err := r.Expand(10)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{5}) {
		t.Errorf("unexpected pages: %v", pages)
	}
}

func TestParseRange(t *testing.T) {
	r, err := Parse("1-5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	pages, err := r.Expand(10)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{1, 2, 3, 4, 5}) {
		t.Errorf("unexpected pages: %v", pages)
	}
}

func TestReverseRange(t *testing.T) {
	r, err := Parse("5-1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	pages, err := r.Expand(10)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{5, 4, 3, 2, 1}) {
		t.Errorf("unexpected pages: %v", pages)
	}
}

func TestEndKeyword(t *testing.T) {
	r, err := Parse("5-end")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.End == nil || !r.End.End {
		t.Fatalf("end keyword not recognized: %+v", r)
	}
	pages, err := r.Expand(10)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{5, 6, 7, 8, 9, 10}) {
		t.Errorf("unexpected pages: %v", pages)
	}

	// "end" alone refers to the last page
	pages, err = ExpandList("end", 7)
	if err != nil {
		t.Fatalf("expand end: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{7}) {
		t.Errorf("unexpected pages: %v", pages)
	}
}

func TestRotationTags(t *testing.T) {
	tests := []struct {
		input string
		want  Rotation
	}{
		{"1-5R", RotationRight},
		{"1-5r", RotationRight},
		{"1-5L", RotationLeft},
		{"1-5l", RotationLeft},
		{"1-5D", RotationDown},
		{"1-5d", RotationDown},
		{"5R", RotationRight},
		{"1-5", RotationNone},
	}
	for _, tt := range tests {
		r, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.input, err)
		}
		if r.Rotation != tt.want {
			t.Errorf("parse %q: rotation = %v, want %v", tt.input, r.Rotation, tt.want)
		}
	}

	// Expansion is unaffected by the tag
	r, err := Parse("1-5R")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	pages, err := r.Expand(10)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{1, 2, 3, 4, 5}) {
		t.Errorf("unexpected pages: %v", pages)
	}
}

func TestEndKeepsFinalD(t *testing.T) {
	// The trailing 'd' of "end" must not be read as a rotation tag
	r, err := Parse("end")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !r.Start.End || r.Rotation != RotationNone {
		t.Fatalf("unexpected range: %+v", r)
	}
}

func TestCommaSeparated(t *testing.T) {
	pages, err := ExpandList("1-3,7,9-10", 10)
	if err != nil {
		t.Fatalf("expand list: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{1, 2, 3, 7, 9, 10}) {
		t.Errorf("unexpected pages: %v", pages)
	}
}

func TestNoDeduplication(t *testing.T) {
	pages, err := ExpandList("1-3,2-4", 10)
	if err != nil {
		t.Fatalf("expand list: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{1, 2, 3, 2, 3, 4}) {
		t.Errorf("unexpected pages: %v", pages)
	}
}

func TestWhitespaceTolerance(t *testing.T) {
	pages, err := ExpandList(" 1 - 3 , 5 ", 10)
	if err != nil {
		t.Fatalf("expand list: %v", err)
	}
	if !reflect.DeepEqual(pages, []int{1, 2, 3, 5}) {
		t.Errorf("unexpected pages: %v", pages)
	}
}

func TestInvalidPageZero(t *testing.T) {
	// "0" parses fine; the error surfaces on expansion
	r, err := Parse("0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = r.Expand(10)
	if err == nil {
		t.Fatal("expected expand error for page 0")
	}
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %T: %v", err, err)
	}
	if re.Page != 0 {
		t.Errorf("unexpected offending page: %d", re.Page)
	}
}

func TestPageExceedsTotal(t *testing.T) {
	r, err := Parse("15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = r.Expand(10)
	if err == nil {
		t.Fatal("expected expand error for page beyond total")
	}
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %T: %v", err, err)
	}
	if re.Page != 15 || re.Total != 10 {
		t.Errorf("unexpected error detail: %+v", re)
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"-5",
		"1-2-3",
		"abc",
		"2R-3",
		"5rr",
		"1,2", // commas belong to ParseList, not Parse
	}
	for _, input := range inputs {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("parse %q: expected error", input)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("parse %q: expected ParseError, got %T: %v", input, err, err)
		}
	}
}

func TestParseListPropagatesErrors(t *testing.T) {
	if _, err := ParseList("1-3,,5"); err == nil {
		t.Error("expected error for empty segment")
	}
	if _, err := ParseList(""); err == nil {
		t.Error("expected error for empty list")
	}
}

func TestExpandListError(t *testing.T) {
	_, err := ExpandList("1-3,15", 10)
	if err == nil {
		t.Fatal("expected error for out-of-bounds segment")
	}
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %T: %v", err, err)
	}
}
