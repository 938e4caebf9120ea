package ir

// DefinitionKind discriminates the top-level declaration forms.
type DefinitionKind string

const (
	KindClass     DefinitionKind = "class"
	KindInterface DefinitionKind = "interface"
	KindEnum      DefinitionKind = "enum"
)

// PropertyKind is the tagged variant for members. Emitter dispatch is a
// switch on the tag, not polymorphism.
type PropertyKind string

const (
	KindProperty   PropertyKind = "property"
	KindMethod     PropertyKind = "method"
	KindIndexer    PropertyKind = "indexer"
	KindEnumMember PropertyKind = "enum-member"
)

// IndexerName is the canonical member name for indexers.
const IndexerName = "__indexer"

// ConstructorName is the canonical member name for constructors.
const ConstructorName = "constructor"

// Property is a member of a class, interface, or enum.
type Property struct {
	Kind     PropertyKind
	IsStatic bool
	Readonly bool
	Name     string
	Desc     []string

	// Params is empty unless Kind is KindMethod or KindIndexer.
	Params []*Parameter

	// Types is the return type for methods, the declared type for
	// properties, and the value type for enum members. Interpreted as a
	// union when it has more than one entry.
	Types []TypeRef

	// NeedsFullBinaryRecovery is set when any parameter's type element was
	// colon-split; the recovery engine may then rename placeholder
	// parameters positionally and overwrite descriptions.
	NeedsFullBinaryRecovery bool

	// HasParamsToEnrich is set when the method has any parameters at all.
	HasParamsToEnrich bool
}

// IsMethod reports whether the member carries a parameter list.
func (p *Property) IsMethod() bool {
	return p.Kind == KindMethod || p.Kind == KindIndexer
}

// Definition is a class, interface, or enum declaration. Name may contain
// dots; the emitter splits those into a namespace at output time.
type Definition struct {
	Kind    DefinitionKind
	Name    string
	Desc    []string
	Extends string
	Props   []*Property
}

// FindProp looks up a member by name. Returns nil if not found.
func (d *Definition) FindProp(name string) *Property {
	for _, p := range d.Props {
		if p.Name == name {
			return p
		}
	}
	return nil
}
