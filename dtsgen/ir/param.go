package ir

import "regexp"

// ParseState carries the corruption signals the XML parser observed for one
// parameter. It is bookkeeping with a bounded lifetime: produced during XML
// parse, consumed by the recovery engine, and stripped before emit.
type ParseState struct {
	// Malformed is set when the <type> element carried a colon, meaning the
	// upstream generator split a description-plus-type string at the wrong
	// boundary.
	Malformed bool

	// DescFromXML is set when the description originated from a genuine XML
	// description node rather than a salvaged malformed name.
	DescFromXML bool

	// WasSpaceName is set when the parameter was synthesized because the XML
	// name attribute contained spaces.
	WasSpaceName bool

	// WasDigitName is set when the parameter was synthesized because the XML
	// name attribute started with a digit.
	WasDigitName bool

	// XMLDescCount is the number of description lines present before
	// type-derived lines were appended.
	XMLDescCount int
}

// Parameter is a method parameter.
type Parameter struct {
	Name     string
	Desc     []string
	Optional bool

	// Types is interpreted as a union and is never empty; "void" never
	// appears here.
	Types []TypeRef

	// State is the transient parsing view; nil once ClearParseState has run.
	State *ParseState
}

var placeholderPat = regexp.MustCompile(`^(arg|uArg)\d+$`)

// IsPlaceholder reports whether the parameter still carries a synthesized
// argN / uArgN name.
func (p *Parameter) IsPlaceholder() bool {
	return placeholderPat.MatchString(p.Name)
}

// ClearParseState drops the transient parsing view from every parameter of
// every definition. Called once recovery is done so the emitter sees only
// semantic fields.
func ClearParseState(defs []*Definition) {
	for _, def := range defs {
		for _, prop := range def.Props {
			prop.NeedsFullBinaryRecovery = false
			prop.HasParamsToEnrich = false
			for _, param := range prop.Params {
				param.State = nil
			}
		}
	}
}
