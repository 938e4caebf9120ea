// Package ir defines the intermediate definition tree that the XML parser
// produces, the recovery engine repairs, and the TypeScript emitter reads.
package ir

import "strings"

// TypeRef is a normalized type reference. Name is one of the TypeScript
// primitives, an arbitrary user type name, or a literal compound form such
// as "[number, number]" or "number | string".
type TypeRef struct {
	// Name is the normalized type name.
	Name string

	// IsArray marks a T[] type.
	IsArray bool

	// Value holds the literal value for enum members; empty otherwise.
	Value string
}

// String renders the reference as TypeScript source. Compound names are
// parenthesized before the array suffix so "(number | string)[]" comes out
// right.
func (t TypeRef) String() string {
	if !t.IsArray {
		return t.Name
	}
	if strings.Contains(t.Name, " | ") {
		return "(" + t.Name + ")[]"
	}
	return t.Name + "[]"
}

// Type returns a plain TypeRef for a name.
func Type(name string) TypeRef {
	return TypeRef{Name: name}
}

// ArrayOf returns an array TypeRef for a name.
func ArrayOf(name string) TypeRef {
	return TypeRef{Name: name, IsArray: true}
}

// ContainsType reports whether refs already holds a reference equal to r
// ignoring the enum value.
func ContainsType(refs []TypeRef, r TypeRef) bool {
	for _, existing := range refs {
		if existing.Name == r.Name && existing.IsArray == r.IsArray {
			return true
		}
	}
	return false
}

// RemoveType returns refs without any reference named name, preserving order.
func RemoveType(refs []TypeRef, name string) []TypeRef {
	out := refs[:0]
	for _, r := range refs {
		if r.Name != name {
			out = append(out, r)
		}
	}
	return out
}
