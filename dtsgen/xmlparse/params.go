package xmlparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"esdtsgen/dtsgen/ir"
)

var (
	colonSplitPat  = regexp.MustCompile(`^(.*):(\S+)$`)
	uArgPat        = regexp.MustCompile(`^uArg(\d+)$`)
	canAcceptPat   = regexp.MustCompile(`^(.*?)Can(?: also)? (?:accept|return):(.*)$`)
	nestedArrayPat = regexp.MustCompile(`Arrays? of Arrays? of`)
)

// measurementUnitType is emitted verbatim by the upstream generator for
// unit-bearing values.
const measurementUnitType = "Measurement Unit (Number or String)=any"

type datatypeResult struct {
	refs      []ir.TypeRef
	salvaged  []string
	malformed bool
	value     string
}

// parseDatatype reads a datatype element: the type text, the array sibling,
// and the literal value for enum members. Colon-split corruption is detected
// here: a type payload of the form "<description>:<type>" yields the real
// type on the right and a salvaged description line on the left.
func parseDatatype(dt *etree.Element) datatypeResult {
	var res datatypeResult
	if dt == nil {
		return res
	}
	if v := dt.SelectElement("value"); v != nil {
		res.value = strings.TrimSpace(flattenText(v))
	}
	isArray := dt.SelectElement("array") != nil

	text := strings.TrimSpace(flattenText(dt.SelectElement("type")))
	if text == "" {
		return res
	}

	if text == measurementUnitType {
		res.refs = []ir.TypeRef{{Name: "number | string", IsArray: isArray}}
		return res
	}

	if m := colonSplitPat.FindStringSubmatch(text); m != nil {
		desc := strings.TrimSuffix(strings.TrimSpace(m[1]), ".")
		if desc != "" {
			res.salvaged = append(res.salvaged, desc)
		}
		res.malformed = true
		res.refs = []ir.TypeRef{ir.Normalize(m[2], isArray)}
		return res
	}

	ref := ir.Normalize(text, isArray)
	if ref.Name == text && strings.Contains(text, " ") {
		// The generator leaked a description into the type slot: the
		// normalizer did not recognize it and it is not an identifier.
		res.salvaged = append(res.salvaged, text)
		res.refs = []ir.TypeRef{{Name: "any", IsArray: isArray}}
		return res
	}
	res.refs = []ir.TypeRef{ref}
	return res
}

// parseParams fills the method's parameter list, applying the placeholder
// synthesis rules for corrupt names and the sticky-forward optional rule.
func parseParams(method *ir.Property, paramsEl *etree.Element) {
	elems := paramsEl.SelectElements("parameter")

	// Placeholder names already present in the XML must not be reused when
	// synthesizing replacements.
	used := make(map[string]bool)
	for _, el := range elems {
		if name := el.SelectAttrValue("name", ""); uArgPat.MatchString(name) {
			used[name] = true
		}
	}
	nextPlaceholder := func() string {
		for k := 1; ; k++ {
			name := fmt.Sprintf("uArg%d", k)
			if !used[name] {
				used[name] = true
				return name
			}
		}
	}

	optional := false
	for _, el := range elems {
		param := &ir.Parameter{
			Name: el.SelectAttrValue("name", ""),
			Desc: extractDesc(el),
		}
		param.State = &ir.ParseState{DescFromXML: len(param.Desc) > 0}

		switch {
		case param.Name != "" && param.Name[0] >= '0' && param.Name[0] <= '9':
			// Garbage from an upstream comma split; the text is not worth
			// keeping as a description.
			param.State.WasDigitName = true
			param.Name = nextPlaceholder()
		case strings.Contains(param.Name, " "):
			// A description leaked into the name attribute.
			param.Desc = append([]string{strings.TrimSpace(param.Name)}, param.Desc...)
			param.State.WasSpaceName = true
			param.Name = nextPlaceholder()
		case param.Name == "":
			param.Name = nextPlaceholder()
		}

		param.State.XMLDescCount = len(param.Desc)

		dt := parseDatatype(el.SelectElement("datatype"))
		param.Desc = append(param.Desc, dt.salvaged...)
		param.State.Malformed = dt.malformed
		param.Types = dt.refs
		if len(param.Types) == 0 {
			param.Types = []ir.TypeRef{ir.Type("any")}
		}

		// The attribute is sticky: once one parameter is optional, every
		// later parameter in the same list is too. A description that talks
		// about being optional marks only its own parameter.
		if el.SelectAttrValue("optional", "") == "true" {
			optional = true
		}
		param.Optional = optional || descMentionsOptional(param.Desc)
		param.Desc = stripOptionalToken(param.Desc)

		if strings.Contains(param.Name, "...") {
			param.Name = "...rest"
			param.Types[0].IsArray = true
		}

		method.Params = append(method.Params, param)
	}
}

func descMentionsOptional(desc []string) bool {
	for _, line := range desc {
		if strings.Contains(strings.ToLower(line), "optional") {
			return true
		}
	}
	return false
}

func stripOptionalToken(desc []string) []string {
	var out []string
	for _, line := range desc {
		line = strings.ReplaceAll(line, "(Optional)", "")
		line = strings.TrimSpace(line)
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// applyCanAccept folds "Can accept: X, Y or Z" / "Can return: ..." lines
// into the member's type union. Lines describing element contents or nested
// arrays are left alone.
func applyCanAccept(prop *ir.Property) {
	if len(prop.Desc) == 0 {
		return
	}
	m := canAcceptPat.FindStringSubmatch(prop.Desc[0])
	if m == nil {
		return
	}
	tail := m[2]
	if strings.Contains(tail, "containing") || nestedArrayPat.MatchString(tail) {
		return
	}

	for _, piece := range strings.Split(tail, ",") {
		for _, alt := range strings.Split(piece, " or ") {
			alt = strings.TrimSpace(alt)
			if alt == "" {
				continue
			}
			ref := ir.Normalize(alt, false)
			if ref.Name == "" || ir.ContainsType(prop.Types, ref) {
				continue
			}
			prop.Types = append(prop.Types, ref)
		}
	}

	if trimmed := ir.RemoveType(prop.Types, "any"); len(trimmed) > 0 {
		prop.Types = trimmed
	}

	left := strings.TrimSpace(m[1])
	if left == "" {
		prop.Desc = prop.Desc[1:]
	} else {
		prop.Desc[0] = left
	}
}
