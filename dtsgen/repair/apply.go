package repair

import (
	"sort"
	"strings"

	"esdtsgen/dtsgen/ir"
)

// removeCommaSplitParams drops spurious parameters introduced when the
// upstream generator exploded a comma-bearing description into several XML
// parameter elements. The comma count of the locally extracted descriptions
// says how many parameters are surplus; the least plausible names go first.
func removeCommaSplitParams(method *ir.Property, matches []paramMatch, localCount int) {
	commas := 0
	for _, m := range matches {
		if m.source == sourceLocal {
			commas += strings.Count(m.desc, ",")
		}
	}
	if commas == 0 || len(method.Params) <= localCount {
		return
	}

	matched := make(map[string]bool, len(matches))
	for _, m := range matches {
		matched[m.name] = true
	}

	type candidate struct {
		param    *ir.Parameter
		priority int
	}
	var candidates []candidate
	for _, param := range method.Params {
		if matched[param.Name] {
			continue
		}
		if prio, ok := removalPriority(param); ok {
			candidates = append(candidates, candidate{param, prio})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority < candidates[j].priority
	})

	n := commas
	if n > len(candidates) {
		n = len(candidates)
	}
	doomed := make(map[*ir.Parameter]bool, n)
	for _, c := range candidates[:n] {
		doomed[c.param] = true
	}

	kept := method.Params[:0]
	for _, param := range method.Params {
		if !doomed[param] {
			kept = append(kept, param)
		}
	}
	method.Params = kept
}

// removalPriority ranks a parameter as a comma-split artifact. A parameter
// matching more than one rule takes the strongest (lowest) priority.
func removalPriority(param *ir.Parameter) (int, bool) {
	name := param.Name
	wasSpaceName := param.State != nil && param.State.WasSpaceName
	if wasSpaceName ||
		(strings.Contains(name, " ") && len(strings.Fields(name)) >= 3) ||
		strings.HasSuffix(name, ".") || strings.HasSuffix(name, "!") ||
		strings.HasSuffix(name, "?") || strings.HasSuffix(name, ",") {
		return 1, true
	}
	if (name != "" && name[0] >= '0' && name[0] <= '9') ||
		(param.State != nil && param.State.WasDigitName) {
		return 2, true
	}
	if param.IsPlaceholder() {
		return 3, true
	}
	return 0, false
}

// applyMatches adopts each match onto an XML parameter: by exact name first,
// then positionally for placeholder parameters when the method is in full
// binary recovery.
func applyMatches(method *ir.Property, matches []paramMatch) {
	adopted := make(map[*ir.Parameter]bool)

	for _, m := range matches {
		var target *ir.Parameter
		for _, param := range method.Params {
			if param.Name == m.name && !adopted[param] {
				target = param
				break
			}
		}

		if target == nil && method.NeedsFullBinaryRecovery &&
			m.source == sourceLocal && m.localPos < len(method.Params) {
			// Window index 0 sits immediately left of the method name and
			// lines up with the last parameter.
			cand := method.Params[len(method.Params)-1-m.localPos]
			if !adopted[cand] && cand.IsPlaceholder() {
				cand.Name = m.name
				target = cand
			}
		}
		if target == nil {
			continue
		}
		adopted[target] = true

		if len(target.Desc) == 0 || method.NeedsFullBinaryRecovery {
			target.Desc = []string{m.desc}
		}
		if strings.Contains(strings.ToLower(m.desc), "optional") {
			target.Optional = true
		}
	}
}
