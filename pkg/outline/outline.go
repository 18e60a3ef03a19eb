// Package outline walks a document's bookmark tree and resolves entry
// destinations, including named destinations, to 1-based page numbers.
package outline

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfnav-golang/pkg/logging"
	"github.com/pyhub-apps/pdfnav-golang/pkg/pdf"
)

// Entry is one outline item. Page 0 means the entry's destination did not
// resolve to a page.
type Entry struct {
	Title    string  `json:"title"`
	Page     int     `json:"page,omitempty"`
	Level    int     `json:"level"`
	Children []Entry `json:"children,omitempty"`
}

// FlatEntry is an Entry without its subtree
type FlatEntry struct {
	Title string `json:"title"`
	Page  int    `json:"page,omitempty"`
	Level int    `json:"level"`
}

// Toc walks the outline tree and returns its hierarchical entries. A
// document without an outline yields no entries and no error.
func Toc(s pdf.Store) ([]Entry, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	outlinesRef, ok := pdf.DictRef(catalog, "Outlines")
	if !ok {
		return nil, nil
	}
	outlines, ok := pdf.ResolveDict(s, outlinesRef)
	if !ok {
		return nil, nil
	}
	firstRef, ok := pdf.DictRef(outlines, "First")
	if !ok {
		return nil, nil
	}

	w := newWalker(s)
	entries := w.walk(firstRef, 0)
	logging.Logger().Debug("outline walked", "roots", len(entries), "nodes", len(w.visited))
	return entries, nil
}

// Flatten returns the entries of the tree in reading order
func Flatten(entries []Entry) []FlatEntry {
	var result []FlatEntry
	flattenInto(entries, &result)
	return result
}

func flattenInto(entries []Entry, result *[]FlatEntry) {
	for _, e := range entries {
		*result = append(*result, FlatEntry{Title: e.Title, Page: e.Page, Level: e.Level})
		flattenInto(e.Children, result)
	}
}

// ResolveDestination resolves a destination object, which may be an
// explicit destination array, a named destination, or a reference to
// either, to a 1-based page number. 0 means no page.
func ResolveDestination(s pdf.Store, dest types.Object) int {
	return newWalker(s).resolveDest(dest)
}

// LookupNamed resolves a named destination through the Names/Dests name
// tree, falling back to the legacy Dests dictionary. The looked-up value
// may itself be a name; alias chains are followed, and a chain that loops
// back to a name already being resolved yields 0. 0 means no page.
func LookupNamed(s pdf.Store, name string) int {
	return newWalker(s).namedDest(name)
}

type walker struct {
	store   pdf.Store
	pageNum map[types.IndirectRef]int
	visited map[int]bool
	// names holds the named destinations whose chains are being followed
	// right now, so an alias loop ends at the revisited name while
	// unrelated entries may still reuse it.
	names map[string]bool
}

func newWalker(s pdf.Store) *walker {
	refs := s.PageRefs()
	pageNum := make(map[types.IndirectRef]int, len(refs))
	for i, ref := range refs {
		pageNum[ref] = i + 1
	}
	return &walker{
		store:   s,
		pageNum: pageNum,
		visited: make(map[int]bool),
		names:   make(map[string]bool),
	}
}

// walk follows the First/Next chain starting at first. Every node is
// recorded in the shared visited set; meeting one again ends the walk, so
// sibling or parent loops cannot recurse forever.
func (w *walker) walk(first types.IndirectRef, level int) []Entry {
	var entries []Entry

	ref := first
	for {
		number := ref.ObjectNumber.Value()
		if w.visited[number] {
			logging.Logger().Warn("outline cycle", "object", number)
			break
		}
		w.visited[number] = true

		dict, ok := pdf.ResolveDict(w.store, ref)
		if !ok {
			break
		}

		title := "Untitled"
		if t, ok := pdf.ResolveText(w.store, dict["Title"]); ok {
			title = t
		}

		var children []Entry
		if childRef, ok := pdf.DictRef(dict, "First"); ok {
			children = w.walk(childRef, level+1)
		}

		entries = append(entries, Entry{
			Title:    title,
			Page:     w.entryPage(dict),
			Level:    level,
			Children: children,
		})

		next, ok := pdf.DictRef(dict, "Next")
		if !ok {
			break
		}
		ref = next
	}

	return entries
}

// entryPage finds the target page of an outline item. A Dest entry wins
// over an A action; only GoTo actions are followed.
func (w *walker) entryPage(dict types.Dict) int {
	if dest, found := dict["Dest"]; found {
		return w.resolveDest(dest)
	}

	action, ok := pdf.ResolveDict(w.store, dict["A"])
	if !ok {
		return 0
	}
	if name, ok := pdf.ResolveName(w.store, action["S"]); !ok || name != "GoTo" {
		return 0
	}
	if dest, found := action["D"]; found {
		return w.resolveDest(dest)
	}
	return 0
}

func (w *walker) resolveDest(dest types.Object) int {
	resolved, err := w.store.Resolve(dest)
	if err != nil || resolved == nil {
		return 0
	}

	switch v := resolved.(type) {
	case types.Name:
		return w.namedDest(v.Value())
	case types.StringLiteral, types.HexLiteral:
		if name, ok := pdf.DecodeText(resolved); ok {
			return w.namedDest(name)
		}
	case types.Array:
		return w.pageFromDestArray(v)
	}
	return 0
}

// pageFromDestArray reads the page from an explicit destination array like
// [pageRef /XYZ left top zoom]
func (w *walker) pageFromDestArray(arr types.Array) int {
	if len(arr) == 0 {
		return 0
	}
	ref, ok := arr[0].(types.IndirectRef)
	if !ok {
		return 0
	}
	return w.pageNum[ref]
}

func (w *walker) namedDest(name string) int {
	if w.names[name] {
		logging.Logger().Warn("named destination cycle", "name", name)
		return 0
	}
	w.names[name] = true
	defer delete(w.names, name)

	catalog, err := w.store.Catalog()
	if err != nil {
		return 0
	}

	// Modern form: a name tree under Names/Dests
	if names, ok := pdf.ResolveDict(w.store, catalog["Names"]); ok {
		if destsRoot, ok := pdf.ResolveDict(w.store, names["Dests"]); ok {
			if page := w.searchNameTree(destsRoot, name, make(map[int]bool)); page != 0 {
				return page
			}
		}
	}

	// Legacy form: a plain dictionary mapping names to destinations
	if dests, ok := pdf.ResolveDict(w.store, catalog["Dests"]); ok {
		if dest, found := dests[name]; found {
			return w.resolveDest(dest)
		}
	}

	return 0
}

// searchNameTree scans a name tree depth first. Leaf Names arrays hold
// [key, destination, ...] pairs; a key match ends the scan of its node even
// when the destination does not resolve.
func (w *walker) searchNameTree(dict types.Dict, name string, visited map[int]bool) int {
	if names, ok := pdf.ResolveArray(w.store, dict["Names"]); ok {
		for i := 0; i+1 < len(names); i += 2 {
			key, ok := pdf.DecodeText(names[i])
			if !ok {
				continue
			}
			if key == name {
				return w.resolveDest(names[i+1])
			}
		}
	}

	if kids, ok := pdf.ResolveArray(w.store, dict["Kids"]); ok {
		for _, kid := range kids {
			ref, ok := kid.(types.IndirectRef)
			if !ok {
				continue
			}
			number := ref.ObjectNumber.Value()
			if visited[number] {
				logging.Logger().Warn("name tree cycle", "object", number)
				continue
			}
			visited[number] = true

			kidDict, ok := pdf.ResolveDict(w.store, ref)
			if !ok {
				continue
			}
			if page := w.searchNameTree(kidDict, name, visited); page != 0 {
				return page
			}
		}
	}

	return 0
}
