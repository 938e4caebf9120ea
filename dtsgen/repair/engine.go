// Package repair cross-references the parsed definition tree against the
// binary string index and fixes what the upstream generator corrupted:
// parameter names, parameter descriptions, method descriptions, and spurious
// comma-split parameters.
package repair

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"esdtsgen/dtsgen/binscan"
	"esdtsgen/dtsgen/ir"
)

// matchSource says where a ParamMatch came from.
type matchSource int

const (
	sourceLocal matchSource = iota
	sourceClassCache
	sourceGlobalCache
)

// paramMatch is one observed "name: description" pairing for a method.
type paramMatch struct {
	name   string
	desc   string
	source matchSource

	// localPos is the window index for sourceLocal matches; window index 0
	// is the entry immediately left of the method name in the blob, which
	// corresponds to the method's last parameter.
	localPos int
}

// binaryMethodInfo is the result of stage-1 extraction for one method.
type binaryMethodInfo struct {
	matches    []paramMatch
	methodDesc string
}

var realNamePat = regexp.MustCompile(`^(arg|uArg)\d+$`)

// Engine repairs definitions in place using the blob indexes and the merged
// parameter cache.
type Engine struct {
	indexes []*binscan.Index
	cache   binscan.ParamCache
	log     *slog.Logger
}

// NewEngine builds the per-blob caches, merges them first-seen-wins, and
// returns an engine over the given indexes.
func NewEngine(indexes []*binscan.Index, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	caches := make([]binscan.ParamCache, 0, len(indexes))
	for _, idx := range indexes {
		caches = append(caches, binscan.BuildCache(idx))
	}
	return &Engine{
		indexes: indexes,
		cache:   binscan.MergeCaches(caches),
		log:     log,
	}
}

// RepairAll runs recovery over every method of every definition. Running it
// twice is a no-op: every rule either leaves a field alone or writes the
// value it would write again.
func (e *Engine) RepairAll(defs []*ir.Definition) {
	for _, def := range defs {
		for _, prop := range def.Props {
			if prop.Kind != ir.KindMethod {
				continue
			}
			e.repairMethod(def, prop)
		}
	}
}

func (e *Engine) repairMethod(def *ir.Definition, method *ir.Property) {
	entry, idx := e.findMethod(method.Name)
	info := binaryMethodInfo{}
	if entry != nil {
		window := extractWindow(idx, entry, len(method.Params)+2)
		info = extractMatches(window)
	}

	if method.HasParamsToEnrich {
		e.enrichFromCaches(method, &info)
	}

	if len(info.matches) == 0 && info.methodDesc == "" {
		return
	}
	e.log.Debug("repairing method",
		slog.String("class", def.Name),
		slog.String("method", method.Name),
		slog.Int("matches", len(info.matches)),
	)

	localCount := 0
	for _, m := range info.matches {
		if m.source == sourceLocal {
			localCount++
		}
	}
	removeCommaSplitParams(method, info.matches, localCount)
	applyMatches(method, info.matches)

	if len(method.Desc) == 0 && info.methodDesc != "" {
		method.Desc = []string{info.methodDesc}
	}
}

// findMethod locates the method name in the blobs, first match wins.
func (e *Engine) findMethod(name string) (*binscan.Entry, *binscan.Index) {
	for _, idx := range e.indexes {
		if entry := idx.Lookup(name); entry != nil {
			return entry, idx
		}
	}
	return nil, nil
}

// enrichFromCaches adds cache-backed matches for XML parameters with real
// identifier names that the local window did not cover. The class-cache and
// global-cache phases read the same merged cache today; they are kept
// separate so a locality restriction on the first phase stays a local
// change.
func (e *Engine) enrichFromCaches(method *ir.Property, info *binaryMethodInfo) {
	for _, source := range []matchSource{sourceClassCache, sourceGlobalCache} {
		for _, param := range method.Params {
			if !isRealName(param.Name) || isMatched(info.matches, param.Name) {
				continue
			}
			if desc, ok := e.cache[param.Name]; ok {
				info.matches = append(info.matches, paramMatch{
					name:   param.Name,
					desc:   desc,
					source: source,
				})
			}
		}
	}
}

// isRealName reports whether a parameter name is a genuine identifier
// rather than a synthesized placeholder or leaked prose.
func isRealName(name string) bool {
	if name == "" || realNamePat.MatchString(name) {
		return false
	}
	if strings.Contains(name, " ") {
		return false
	}
	return name[0] < '0' || name[0] > '9'
}

func isMatched(matches []paramMatch, name string) bool {
	for _, m := range matches {
		if m.name == name {
			return true
		}
	}
	return false
}
