package ir

import (
	"regexp"
	"strings"
)

// Type vocabulary rewrites applied by Normalize. The source documents use an
// inconsistent mix of spellings ("Number", "int", "Real (0 - 100)") that all
// collapse onto the TypeScript primitives.
var (
	rangedNumberPat = regexp.MustCompile(`^(Unit|Real)(\s*\([\d.]+ - [\d.]+( points)?\))?$`)
	shortLongPat    = regexp.MustCompile(`^(Short|Long) Integers?$`)
	realsPat        = regexp.MustCompile(`^Arrays? of (\d+) Reals$`)
	arrayOfPat      = regexp.MustCompile(`^Array of (.+?)s?$`)
)

var simpleRewrites = map[string]string{
	"varies=any": "any",
	"Any":        "any",
	"Undefined":  "undefined",
	"Object":     "object",
	"String":     "string",
	"Boolean":    "boolean",
	"bool":       "boolean",
	"Number":     "number",
	"int":        "number",
	"Int32":      "number",
	"uint":       "number",
	"Swatche":    "Swatch",

	"JavaScript Function": "Function",
}

// Normalize maps a raw type name from the source vocabulary onto the target
// vocabulary. isArray is the state of the <array> sibling; some rewrites
// (fixed-size tuples) clear it, one ("Array of Reals") sets it.
// Normalize is idempotent: normalized output passes through unchanged.
func Normalize(name string, isArray bool) TypeRef {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".")
	name = strings.TrimSuffix(name, "enumerators")
	name = strings.TrimSuffix(name, "enumerator")
	name = strings.TrimSpace(name)

	if mapped, ok := simpleRewrites[name]; ok {
		return TypeRef{Name: mapped, IsArray: isArray}
	}
	if rangedNumberPat.MatchString(name) {
		return TypeRef{Name: "number", IsArray: isArray}
	}
	if shortLongPat.MatchString(name) {
		return TypeRef{Name: "number", IsArray: isArray}
	}

	switch name {
	case "Array of 4 Units (0 - 8640 points)":
		return TypeRef{Name: "[number, number, number, number]"}
	case "Array of Reals":
		return TypeRef{Name: "number", IsArray: true}
	case "Array of 2 Units", "Arrays of 2 Units":
		return TypeRef{Name: "[number | string, number | string]"}
	case "Array of 2 Strings", "Arrays of 2 Strings":
		return TypeRef{Name: "[string, string]"}
	}

	if m := realsPat.FindStringSubmatch(name); m != nil {
		switch m[1] {
		case "2":
			return TypeRef{Name: "[number, number]"}
		case "3":
			return TypeRef{Name: "[number, number, number]"}
		case "6":
			return TypeRef{Name: "[number, number, number, number, number, number]"}
		}
	}

	if m := arrayOfPat.FindStringSubmatch(name); m != nil {
		inner := Normalize(m[1], false)
		inner.IsArray = true
		return inner
	}

	return TypeRef{Name: name, IsArray: isArray}
}
