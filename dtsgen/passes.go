package dtsgen

import (
	"sort"

	"esdtsgen/dtsgen/ir"
)

// pruneInherited removes members that any transitive ancestor already
// declares. A superclass that is not in the definition list is an external
// type and is skipped; a cycle in the extends chain terminates the walk.
func pruneInherited(defs []*ir.Definition) {
	byName := make(map[string]*ir.Definition, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}

	for _, def := range defs {
		if def.Extends == "" {
			continue
		}

		inherited := make(map[string]bool)
		visited := map[string]bool{def.Name: true}
		for parent := byName[def.Extends]; parent != nil; parent = byName[parent.Extends] {
			if visited[parent.Name] {
				break
			}
			visited[parent.Name] = true
			for _, prop := range parent.Props {
				inherited[prop.Name] = true
			}
			if parent.Extends == "" {
				break
			}
		}
		if len(inherited) == 0 {
			continue
		}

		kept := def.Props[:0]
		for _, prop := range def.Props {
			if !inherited[prop.Name] {
				kept = append(kept, prop)
			}
		}
		def.Props = kept
	}
}

// sortDefinitions orders definitions by name; within each definition,
// non-methods come before methods and each group is name-ascending.
func sortDefinitions(defs []*ir.Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	for _, def := range defs {
		sort.SliceStable(def.Props, func(i, j int) bool {
			bi, bj := kindBucket(def.Props[i]), kindBucket(def.Props[j])
			if bi != bj {
				return bi < bj
			}
			return def.Props[i].Name < def.Props[j].Name
		})
	}
}

func kindBucket(prop *ir.Property) int {
	if prop.Kind == ir.KindMethod {
		return 1
	}
	return 0
}

// applyTypeMappings rewrites type names per the configured overrides.
func applyTypeMappings(defs []*ir.Definition, mappings map[string]string) {
	if len(mappings) == 0 {
		return
	}
	rewrite := func(refs []ir.TypeRef) {
		for i := range refs {
			if mapped, ok := mappings[refs[i].Name]; ok {
				refs[i].Name = mapped
			}
		}
	}
	for _, def := range defs {
		for _, prop := range def.Props {
			rewrite(prop.Types)
			for _, param := range prop.Params {
				rewrite(param.Types)
			}
		}
	}
}
