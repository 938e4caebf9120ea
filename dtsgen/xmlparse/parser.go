// Package xmlparse builds the definition tree from the ExtendScript API XML.
// The XML is authoritative for structure only; the parser records every site
// of observed text corruption so the recovery engine can repair it against
// the binary string index.
package xmlparse

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"esdtsgen/dtsgen/ir"
)

var memberNamePat = regexp.MustCompile(`[^\[\]0-9a-zA-Z_$.]`)

// Parse walks the document and produces the definition list. Traversal is
// direct-child navigation by path only; the parser never searches the whole
// subtree for a tag.
func Parse(doc *etree.Document) ([]*ir.Definition, error) {
	pkg := doc.SelectElement("package")
	if pkg == nil {
		return nil, Errorf(CodeNoRoot, "document has no package root")
	}

	var defs []*ir.Definition
	for _, el := range pkg.SelectElements("classdef") {
		def, err := parseDefinition(el)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func parseDefinition(el *etree.Element) (*ir.Definition, error) {
	name := el.SelectAttrValue("name", "")

	def := &ir.Definition{
		Name: name,
		Desc: extractDesc(el),
	}
	if sc := el.SelectElement("superclass"); sc != nil {
		def.Extends = strings.TrimSpace(flattenText(sc))
	}

	groups := el.SelectElements("elements")
	hasCtor := false
	for _, group := range groups {
		if group.SelectAttrValue("type", "") == "constructor" && len(group.ChildElements()) > 0 {
			hasCtor = true
		}
		if group.SelectElement("constructor") != nil {
			hasCtor = true
		}
	}

	switch {
	case el.SelectAttr("enumeration") != nil:
		def.Kind = ir.KindEnum
	case el.SelectAttr("dynamic") != nil:
		if hasCtor {
			def.Kind = ir.KindClass
		} else {
			def.Kind = ir.KindInterface
		}
	default:
		return nil, Errorf(CodeUnknownDefinition, "classdef %q is neither enumeration nor dynamic", name)
	}

	for _, group := range groups {
		groupType := group.SelectAttrValue("type", "")
		isStatic := groupType == "class"
		isCtor := groupType == "constructor"

		for _, memberEl := range group.ChildElements() {
			prop, err := parseMember(def, memberEl, isStatic, isCtor)
			if err != nil {
				return nil, err
			}
			def.Props = append(def.Props, prop)
		}
	}

	return def, nil
}

func parseMember(def *ir.Definition, el *etree.Element, isStatic, isCtor bool) (*ir.Property, error) {
	prop := &ir.Property{
		IsStatic: isStatic,
		Desc:     extractDesc(el),
	}

	name := el.SelectAttrValue("name", "")
	switch {
	case isCtor || el.Tag == "constructor":
		prop.Kind = ir.KindMethod
		prop.Name = ir.ConstructorName
	case name == ".index":
		prop.Kind = ir.KindIndexer
		prop.Name = ir.IndexerName
	case el.Tag == "property":
		prop.Kind = ir.KindProperty
		prop.Name = sanitizeMemberName(name)
	case el.Tag == "method":
		prop.Kind = ir.KindMethod
		prop.Name = sanitizeMemberName(name)
	default:
		return nil, Errorf(CodeUnknownMember, "member %q of %q has unknown tag %q", name, def.Name, el.Tag)
	}
	prop.Readonly = el.SelectAttrValue("rwaccess", "") == "readonly"

	dt := parseDatatype(el.SelectElement("datatype"))
	prop.Desc = append(prop.Desc, dt.salvaged...)

	switch prop.Kind {
	case ir.KindMethod:
		prop.Types = dt.refs
		if len(prop.Types) == 0 {
			prop.Types = []ir.TypeRef{ir.Type("void")}
		}
		if params := el.SelectElement("parameters"); params != nil {
			parseParams(prop, params)
		}
		rescueMethodDesc(prop)
		for _, p := range prop.Params {
			if p.State != nil && p.State.Malformed {
				prop.NeedsFullBinaryRecovery = true
			}
		}
		prop.HasParamsToEnrich = len(prop.Params) > 0

	case ir.KindIndexer:
		prop.Types = dt.refs
		if len(prop.Types) == 0 {
			prop.Types = []ir.TypeRef{ir.Type("any")}
		}
		if params := el.SelectElement("parameters"); params != nil {
			parseParams(prop, params)
		}

	default:
		prop.Types = dt.refs
		if len(prop.Types) == 0 {
			prop.Types = []ir.TypeRef{ir.Type("any")}
		}
		if def.Kind == ir.KindEnum {
			prop.Kind = ir.KindEnumMember
			prop.Readonly = true
			if dt.value != "" && len(prop.Types) > 0 {
				prop.Types[0].Value = dt.value
			}
		}
	}

	applyCanAccept(prop)
	return prop, nil
}

// sanitizeMemberName keeps brackets, word characters, $ and dots; everything
// else becomes an underscore.
func sanitizeMemberName(name string) string {
	return memberNamePat.ReplaceAllString(name, "_")
}

// rescueMethodDesc detects the generator bug where the method description is
// dumped onto the last parameter: the last parameter is the only one with a
// description, and that description came from an XML description node. The
// XML-sourced lines move to the method; type-derived lines stay put.
func rescueMethodDesc(method *ir.Property) {
	if len(method.Desc) > 0 || len(method.Params) == 0 {
		return
	}
	last := method.Params[len(method.Params)-1]
	if len(last.Desc) == 0 || last.State == nil || !last.State.DescFromXML {
		return
	}
	for _, p := range method.Params[:len(method.Params)-1] {
		if len(p.Desc) > 0 {
			return
		}
	}
	n := last.State.XMLDescCount
	if n <= 0 {
		return
	}
	if n > len(last.Desc) {
		n = len(last.Desc)
	}
	method.Desc = append(method.Desc, last.Desc[:n]...)
	last.Desc = append([]string(nil), last.Desc[n:]...)
	last.State.DescFromXML = false
}

// extractDesc joins shortdesc and description, re-splits on newlines,
// collapses internal double spaces, trims, and drops empty lines.
func extractDesc(el *etree.Element) []string {
	if el == nil {
		return nil
	}
	short := flattenText(el.SelectElement("shortdesc"))
	long := flattenText(el.SelectElement("description"))
	return splitDescLines(short + "\n" + long)
}

func splitDescLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// flattenText concatenates all character data under an element, including
// text inside nested markup.
func flattenText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.CharData:
			b.WriteString(c.Data)
		case *etree.Element:
			b.WriteString(flattenText(c))
		}
	}
	return b.String()
}
