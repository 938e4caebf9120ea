// Package typescript renders the repaired definition tree as a TypeScript
// declaration file.
package typescript

import (
	"bytes"
	"strings"

	"esdtsgen/dtsgen/ir"
)

// Options configures declaration output.
type Options struct {
	// Header is emitted verbatim at the top of the file when non-empty.
	Header string

	// Indent is the per-level indentation; two spaces when empty.
	Indent string
}

// Emit renders the definitions as a complete .d.ts file.
func Emit(defs []*ir.Definition, opts Options) string {
	e := &emitter{indent: opts.Indent}
	if e.indent == "" {
		e.indent = "  "
	}

	var buf bytes.Buffer
	if opts.Header != "" {
		buf.WriteString(opts.Header)
		if !strings.HasSuffix(opts.Header, "\n") {
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	for i, def := range defs {
		if i > 0 {
			buf.WriteString("\n")
		}
		e.emitDefinition(&buf, def)
	}
	return buf.String()
}

type emitter struct {
	indent string
}

// emitDefinition writes one declaration. A dotted name X.Y.Z becomes
// namespace X containing Y.Z.
func (e *emitter) emitDefinition(buf *bytes.Buffer, def *ir.Definition) {
	if ns, rest, ok := strings.Cut(def.Name, "."); ok {
		buf.WriteString("declare namespace ")
		buf.WriteString(ns)
		buf.WriteString(" {\n")
		e.emitBody(buf, def, rest, e.indent, false)
		buf.WriteString("}\n")
		return
	}
	e.emitBody(buf, def, def.Name, "", true)
}

func (e *emitter) emitBody(buf *bytes.Buffer, def *ir.Definition, name, indent string, topLevel bool) {
	e.emitJSDoc(buf, indent, def.Desc, nil)

	buf.WriteString(indent)
	if topLevel {
		buf.WriteString("declare ")
	}
	switch def.Kind {
	case ir.KindEnum:
		e.emitEnum(buf, def, name, indent)
		return
	case ir.KindInterface:
		buf.WriteString("interface ")
	default:
		buf.WriteString("class ")
	}
	buf.WriteString(name)
	if def.Extends != "" {
		buf.WriteString(" extends ")
		buf.WriteString(def.Extends)
	}
	buf.WriteString(" {\n")

	for _, prop := range def.Props {
		e.emitMember(buf, indent+e.indent, prop)
	}

	buf.WriteString(indent)
	buf.WriteString("}\n")
}

func (e *emitter) emitEnum(buf *bytes.Buffer, def *ir.Definition, name, indent string) {
	buf.WriteString("enum ")
	buf.WriteString(name)
	buf.WriteString(" {\n")

	inner := indent + e.indent
	for _, member := range def.Props {
		e.emitJSDoc(buf, inner, member.Desc, nil)
		buf.WriteString(inner)
		buf.WriteString(member.Name)
		if len(member.Types) > 0 && member.Types[0].Value != "" {
			buf.WriteString(" = ")
			buf.WriteString(formatEnumValue(member.Types[0].Value))
		}
		buf.WriteString(",\n")
	}

	buf.WriteString(indent)
	buf.WriteString("}\n")
}

func (e *emitter) emitMember(buf *bytes.Buffer, indent string, prop *ir.Property) {
	switch prop.Kind {
	case ir.KindMethod:
		e.emitMethod(buf, indent, prop)
	case ir.KindIndexer:
		e.emitIndexer(buf, indent, prop)
	default:
		e.emitProperty(buf, indent, prop)
	}
}

func (e *emitter) emitProperty(buf *bytes.Buffer, indent string, prop *ir.Property) {
	e.emitJSDoc(buf, indent, prop.Desc, nil)
	buf.WriteString(indent)
	if prop.IsStatic {
		buf.WriteString("static ")
	}
	if prop.Readonly {
		buf.WriteString("readonly ")
	}
	buf.WriteString(prop.Name)
	buf.WriteString(": ")
	buf.WriteString(typeUnion(prop.Types))
	buf.WriteString(";\n")
}

func (e *emitter) emitMethod(buf *bytes.Buffer, indent string, prop *ir.Property) {
	e.emitJSDoc(buf, indent, prop.Desc, prop.Params)
	buf.WriteString(indent)
	if prop.IsStatic {
		buf.WriteString("static ")
	}
	buf.WriteString(prop.Name)
	buf.WriteString("(")
	for i, param := range prop.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		e.emitParam(buf, param)
	}
	buf.WriteString(")")
	if prop.Name != ir.ConstructorName {
		buf.WriteString(": ")
		buf.WriteString(typeUnion(prop.Types))
	}
	buf.WriteString(";\n")
}

func (e *emitter) emitIndexer(buf *bytes.Buffer, indent string, prop *ir.Property) {
	e.emitJSDoc(buf, indent, prop.Desc, nil)
	buf.WriteString(indent)

	keyName, keyType := "index", "number"
	if len(prop.Params) > 0 {
		keyName = escapeParamName(strings.TrimPrefix(prop.Params[0].Name, "..."))
		keyType = typeUnion(prop.Params[0].Types)
	}
	buf.WriteString("[")
	buf.WriteString(keyName)
	buf.WriteString(": ")
	buf.WriteString(keyType)
	buf.WriteString("]: ")
	buf.WriteString(typeUnion(prop.Types))
	buf.WriteString(";\n")
}

func (e *emitter) emitParam(buf *bytes.Buffer, param *ir.Parameter) {
	rest := strings.HasPrefix(param.Name, "...")
	if rest {
		buf.WriteString("...")
		buf.WriteString(escapeParamName(strings.TrimPrefix(param.Name, "...")))
	} else {
		buf.WriteString(escapeParamName(param.Name))
		if param.Optional {
			buf.WriteString("?")
		}
	}
	buf.WriteString(": ")
	buf.WriteString(typeUnion(param.Types))
}

// typeUnion joins a type list with " | ".
func typeUnion(types []ir.TypeRef) string {
	if len(types) == 0 {
		return "any"
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

// emitJSDoc writes a comment block when there is anything to say: the
// member's description lines plus one @param line per described parameter.
func (e *emitter) emitJSDoc(buf *bytes.Buffer, indent string, desc []string, params []*ir.Parameter) {
	var paramLines []string
	for _, p := range params {
		if len(p.Desc) == 0 {
			continue
		}
		name := escapeParamName(strings.TrimPrefix(p.Name, "..."))
		paramLines = append(paramLines, "@param "+name+" - "+strings.Join(p.Desc, " "))
	}
	if len(desc) == 0 && len(paramLines) == 0 {
		return
	}

	if len(desc) == 1 && len(paramLines) == 0 {
		buf.WriteString(indent)
		buf.WriteString("/** ")
		buf.WriteString(desc[0])
		buf.WriteString(" */\n")
		return
	}

	buf.WriteString(indent)
	buf.WriteString("/**\n")
	for _, line := range desc {
		buf.WriteString(indent)
		buf.WriteString(" * ")
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	for _, line := range paramLines {
		buf.WriteString(indent)
		buf.WriteString(" * ")
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	buf.WriteString(indent)
	buf.WriteString(" */\n")
}
