// Package pagelabels resolves the PageLabels number tree of a document into
// per-page logical labels like "i", "iv", "1", "A-1".
package pagelabels

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfnav-golang/pkg/logging"
	"github.com/pyhub-apps/pdfnav-golang/pkg/pdf"
)

// PageLabel pairs a physical page number with its logical label
type PageLabel struct {
	PhysicalPage int    `json:"physical_page"`
	LogicalLabel string `json:"logical_label"`
}

// Style is the numbering style of a label range
type Style int

const (
	// StyleNone renders no number, only the range prefix
	StyleNone Style = iota
	// StyleDecimal renders 1, 2, 3, ...
	StyleDecimal
	// StyleLowerRoman renders i, ii, iii, iv, ...
	StyleLowerRoman
	// StyleUpperRoman renders I, II, III, IV, ...
	StyleUpperRoman
	// StyleLowerAlpha renders a, b, ..., z, aa, ab, ...
	StyleLowerAlpha
	// StyleUpperAlpha renders A, B, ..., Z, AA, AB, ...
	StyleUpperAlpha
)

// Range is one label range from the PageLabels number tree
type Range struct {
	// StartPage is the 0-based physical page index where the range starts
	StartPage int
	// Style selects how the numeric part is rendered
	Style Style
	// Prefix is prepended to every label of the range
	Prefix string
	// StartValue is the numeric value of the range's first page
	StartValue int
}

// Labels computes the logical label of every page in the document. Documents
// without a usable PageLabels tree get plain "1".."N" labels.
func Labels(s pdf.Store) ([]PageLabel, error) {
	total := s.PageCount()

	catalog, err := s.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	// Only the referenced form is followed; an inline PageLabels
	// dictionary gets default numbering.
	var ref types.IndirectRef
	switch v := catalog["PageLabels"].(type) {
	case types.IndirectRef:
		ref = v
	case *types.IndirectRef:
		ref = *v
	default:
		return defaultLabels(total), nil
	}

	root, ok := pdf.ResolveDict(s, ref)
	if !ok {
		return defaultLabels(total), nil
	}

	ranges := TreeRanges(s, root)
	logging.Logger().Debug("page label ranges", "count", len(ranges))

	labels := make([]PageLabel, 0, total)
	for page := 1; page <= total; page++ {
		labels = append(labels, PageLabel{
			PhysicalPage: page,
			LogicalLabel: LabelFor(ranges, page-1),
		})
	}
	return labels, nil
}

// TreeRanges collects every label range reachable from the given number
// tree root and returns them sorted by start page. Ranges sharing a start
// page keep their encounter order, so the later one wins lookups.
func TreeRanges(s pdf.Store, root types.Dict) []Range {
	var ranges []Range
	visited := make(map[int]bool)
	walkTree(s, root, visited, &ranges)

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].StartPage < ranges[j].StartPage
	})
	return ranges
}

// LabelFor renders the label of the 0-based page index against the sorted
// range list. Pages before the first range fall back to plain decimal
// numbering from 1.
func LabelFor(ranges []Range, pageIndex int) string {
	r := Range{StartPage: 0, Style: StyleDecimal, Prefix: "", StartValue: 1}
	for i := len(ranges) - 1; i >= 0; i-- {
		if ranges[i].StartPage <= pageIndex {
			r = ranges[i]
			break
		}
	}

	value := r.StartValue + (pageIndex - r.StartPage)

	var number string
	switch r.Style {
	case StyleDecimal:
		number = strconv.Itoa(value)
	case StyleLowerRoman:
		number = strings.ToLower(toRoman(value))
	case StyleUpperRoman:
		number = toRoman(value)
	case StyleLowerAlpha:
		number = strings.ToLower(toAlpha(value))
	case StyleUpperAlpha:
		number = toAlpha(value)
	case StyleNone:
		number = ""
	}

	return r.Prefix + number
}

func walkTree(s pdf.Store, dict types.Dict, visited map[int]bool, ranges *[]Range) {
	if nums, ok := pdf.ResolveArray(s, dict["Nums"]); ok {
		parseNums(s, nums, ranges)
	}

	kids, ok := pdf.ResolveArray(s, dict["Kids"])
	if !ok {
		return
	}
	for _, kid := range kids {
		ref, ok := kid.(types.IndirectRef)
		if !ok {
			continue
		}
		number := ref.ObjectNumber.Value()
		if visited[number] {
			logging.Logger().Warn("page label tree cycle", "object", number)
			continue
		}
		visited[number] = true

		kidDict, ok := pdf.ResolveDict(s, ref)
		if !ok {
			continue
		}
		walkTree(s, kidDict, visited, ranges)
	}
}

// parseNums reads [index, label-dict, index, label-dict, ...] pairs. A
// trailing odd element and malformed pairs are skipped.
func parseNums(s pdf.Store, nums types.Array, ranges *[]Range) {
	for i := 0; i+1 < len(nums); i += 2 {
		start, ok := nums[i].(types.Integer)
		if !ok {
			continue
		}

		labelDict, ok := pdf.ResolveDict(s, nums[i+1])
		if !ok {
			continue
		}

		// An absent or malformed S entry means prefix-only numbering,
		// an unknown style name falls back to decimal.
		style := StyleNone
		if name, ok := pdf.ResolveName(s, labelDict["S"]); ok {
			switch name {
			case "D":
				style = StyleDecimal
			case "r":
				style = StyleLowerRoman
			case "R":
				style = StyleUpperRoman
			case "a":
				style = StyleLowerAlpha
			case "A":
				style = StyleUpperAlpha
			default:
				style = StyleDecimal
			}
		}

		prefix := ""
		if p, ok := pdf.ResolveText(s, labelDict["P"]); ok {
			prefix = p
		}

		startValue := 1
		if v, ok := pdf.ResolveInt(s, labelDict["St"]); ok {
			startValue = v
		}

		*ranges = append(*ranges, Range{
			StartPage:  start.Value(),
			Style:      style,
			Prefix:     prefix,
			StartValue: startValue,
		})
	}
}

func defaultLabels(total int) []PageLabel {
	labels := make([]PageLabel, 0, total)
	for page := 1; page <= total; page++ {
		labels = append(labels, PageLabel{
			PhysicalPage: page,
			LogicalLabel: strconv.Itoa(page),
		})
	}
	return labels
}

// toRoman renders n in uppercase Roman numerals. Zero has no Roman form and
// comes back as "0".
func toRoman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}

	values := []struct {
		value   int
		numeral string
	}{
		{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
		{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
		{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
	}

	var b strings.Builder
	for _, v := range values {
		for n >= v.value {
			b.WriteString(v.numeral)
			n -= v.value
		}
	}
	return b.String()
}

// toAlpha renders n in bijective base-26 letters: 1 is A, 26 is Z, 27 is
// AA. Zero and below have no letter form and come back empty.
func toAlpha(n int) string {
	if n <= 0 {
		return ""
	}

	var letters []byte
	remaining := n - 1
	for {
		letters = append([]byte{byte(remaining%26) + 'A'}, letters...)
		if remaining < 26 {
			break
		}
		remaining = remaining/26 - 1
	}
	return string(letters)
}
