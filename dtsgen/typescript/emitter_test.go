package typescript

import (
	"strings"
	"testing"

	"esdtsgen/dtsgen/ir"
)

// TestEmit covers the declaration forms with substring assertions.
func TestEmit(t *testing.T) {
	tests := []struct {
		name    string
		defs    []*ir.Definition
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name: "class with property and method",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "Document",
				Desc: []string{"A document."},
				Props: []*ir.Property{
					{
						Kind:     ir.KindProperty,
						Name:     "name",
						Readonly: true,
						Desc:     []string{"The document name."},
						Types:    []ir.TypeRef{ir.Type("string")},
					},
					{
						Kind:  ir.KindMethod,
						Name:  "close",
						Types: []ir.TypeRef{ir.Type("void")},
					},
				},
			}},
			want: []string{
				"/** A document. */",
				"declare class Document {",
				"/** The document name. */",
				"  readonly name: string;",
				"  close(): void;",
				"}",
			},
		},
		{
			name: "extends clause",
			defs: []*ir.Definition{{
				Kind:    ir.KindClass,
				Name:    "TextFrame",
				Extends: "PageItem",
			}},
			want: []string{"declare class TextFrame extends PageItem {"},
		},
		{
			name: "interface",
			defs: []*ir.Definition{{
				Kind: ir.KindInterface,
				Name: "Collection",
				Props: []*ir.Property{{
					Kind:  ir.KindProperty,
					Name:  "length",
					Types: []ir.TypeRef{ir.Type("number")},
				}},
			}},
			want:    []string{"declare interface Collection {", "  length: number;"},
			notWant: []string{"class"},
		},
		{
			name: "enum with literal values",
			defs: []*ir.Definition{{
				Kind: ir.KindEnum,
				Name: "AnchorPosition",
				Props: []*ir.Property{{
					Kind:  ir.KindEnumMember,
					Name:  "TOP_LEFT",
					Types: []ir.TypeRef{{Name: "AnchorPosition", Value: "1095716453"}},
				}},
			}},
			want: []string{"declare enum AnchorPosition {", "  TOP_LEFT = 1095716453,"},
		},
		{
			name: "enum string value is quoted",
			defs: []*ir.Definition{{
				Kind: ir.KindEnum,
				Name: "BlendMode",
				Props: []*ir.Property{{
					Kind:  ir.KindEnumMember,
					Name:  "NORMAL",
					Types: []ir.TypeRef{{Name: "BlendMode", Value: "norm"}},
				}},
			}},
			want: []string{`  NORMAL = "norm",`},
		},
		{
			name: "dotted name becomes namespace",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "ScriptUI.Button",
			}},
			want: []string{
				"declare namespace ScriptUI {",
				"  class Button {",
			},
			notWant: []string{"declare class"},
		},
		{
			name: "constructor has no return type",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "File",
				Props: []*ir.Property{{
					Kind:  ir.KindMethod,
					Name:  ir.ConstructorName,
					Types: []ir.TypeRef{ir.Type("File")},
					Params: []*ir.Parameter{{
						Name:  "path",
						Types: []ir.TypeRef{ir.Type("string")},
					}},
				}},
			}},
			want:    []string{"  constructor(path: string);"},
			notWant: []string{"constructor(path: string): File"},
		},
		{
			name: "optional union and rest parameters",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "Doc",
				Props: []*ir.Property{{
					Kind:  ir.KindMethod,
					Name:  "place",
					Types: []ir.TypeRef{ir.Type("void")},
					Params: []*ir.Parameter{
						{
							Name:     "target",
							Optional: true,
							Types:    []ir.TypeRef{ir.Type("number"), ir.Type("string")},
						},
						{
							Name:  "...rest",
							Types: []ir.TypeRef{ir.ArrayOf("PageItem")},
						},
					},
				}},
			}},
			want: []string{"  place(target?: number | string, ...rest: PageItem[]): void;"},
		},
		{
			name: "keyword parameter renamed",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "Doc",
				Props: []*ir.Property{{
					Kind:  ir.KindMethod,
					Name:  "exportFile",
					Types: []ir.TypeRef{ir.Type("void")},
					Params: []*ir.Parameter{{
						Name:  "with",
						Types: []ir.TypeRef{ir.Type("object")},
					}},
				}},
			}},
			want: []string{"  exportFile(with_: object): void;"},
		},
		{
			name: "indexer",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "PageItems",
				Props: []*ir.Property{{
					Kind:  ir.KindIndexer,
					Name:  ir.IndexerName,
					Types: []ir.TypeRef{ir.Type("PageItem")},
				}},
			}},
			want: []string{"  [index: number]: PageItem;"},
		},
		{
			name: "jsdoc with params",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "Doc",
				Props: []*ir.Property{{
					Kind:  ir.KindMethod,
					Name:  "setValue",
					Desc:  []string{"Sets the value."},
					Types: []ir.TypeRef{ir.Type("boolean")},
					Params: []*ir.Parameter{{
						Name:  "value",
						Desc:  []string{"The value to set."},
						Types: []ir.TypeRef{ir.Type("string")},
					}},
				}},
			}},
			want: []string{
				"  /**",
				"   * Sets the value.",
				"   * @param value - The value to set.",
				"   */",
				"  setValue(value: string): boolean;",
			},
		},
		{
			name: "no jsdoc without descriptions",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "Doc",
				Props: []*ir.Property{{
					Kind:  ir.KindProperty,
					Name:  "name",
					Types: []ir.TypeRef{ir.Type("string")},
				}},
			}},
			notWant: []string{"/**"},
		},
		{
			name: "static members",
			defs: []*ir.Definition{{
				Kind: ir.KindClass,
				Name: "Doc",
				Props: []*ir.Property{{
					Kind:     ir.KindProperty,
					Name:     "VERSION",
					IsStatic: true,
					Types:    []ir.TypeRef{ir.Type("number")},
				}},
			}},
			want: []string{"  static VERSION: number;"},
		},
		{
			name: "header",
			defs: []*ir.Definition{{Kind: ir.KindClass, Name: "Doc"}},
			opts: Options{Header: "// Generated declarations."},
			want: []string{"// Generated declarations.\n\ndeclare class Doc {"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Emit(tt.defs, tt.opts)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(got, notWant) {
					t.Errorf("output should not contain %q:\n%s", notWant, got)
				}
			}
		})
	}
}

func TestEscapeParamName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"for", "for_"},
		{"with", "with_"},
		{"in", "in_"},
		{"default", "default_"},
		{"return", "return_"},
		{"export", "export_"},
		{"function", "function_"},
		{"value", "value"},
	}
	for _, tt := range tests {
		if got := escapeParamName(tt.in); got != tt.want {
			t.Errorf("escapeParamName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
