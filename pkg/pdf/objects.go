package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// The helpers below read typed values out of the object graph. A missing
// entry, a type mismatch, and a dangling reference all come back as ok ==
// false; callers treat absence as benign.

// ResolveDict resolves obj and returns it as a dictionary
func ResolveDict(s Store, obj types.Object) (types.Dict, bool) {
	if obj == nil {
		return nil, false
	}
	resolved, err := s.Resolve(obj)
	if err != nil {
		return nil, false
	}
	d, ok := resolved.(types.Dict)
	return d, ok
}

// ResolveArray resolves obj and returns it as an array
func ResolveArray(s Store, obj types.Object) (types.Array, bool) {
	if obj == nil {
		return nil, false
	}
	resolved, err := s.Resolve(obj)
	if err != nil {
		return nil, false
	}
	a, ok := resolved.(types.Array)
	return a, ok
}

// ResolveInt resolves obj and returns its integer value
func ResolveInt(s Store, obj types.Object) (int, bool) {
	if obj == nil {
		return 0, false
	}
	resolved, err := s.Resolve(obj)
	if err != nil {
		return 0, false
	}
	i, ok := resolved.(types.Integer)
	if !ok {
		return 0, false
	}
	return i.Value(), true
}

// ResolveName resolves obj and returns the name's value
func ResolveName(s Store, obj types.Object) (string, bool) {
	if obj == nil {
		return "", false
	}
	resolved, err := s.Resolve(obj)
	if err != nil {
		return "", false
	}
	n, ok := resolved.(types.Name)
	if !ok {
		return "", false
	}
	return n.Value(), true
}

// ResolveText resolves obj and decodes it as a PDF text string
func ResolveText(s Store, obj types.Object) (string, bool) {
	if obj == nil {
		return "", false
	}
	resolved, err := s.Resolve(obj)
	if err != nil {
		return "", false
	}
	return DecodeText(resolved)
}

// DictRef returns the entry for key as an unresolved indirect reference
func DictRef(dict types.Dict, key string) (types.IndirectRef, bool) {
	obj, found := dict[key]
	if !found {
		return types.IndirectRef{}, false
	}
	ref, ok := obj.(types.IndirectRef)
	return ref, ok
}
