package dtsgen

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/beevik/etree"

	"esdtsgen/dtsgen/binscan"
	"esdtsgen/dtsgen/ir"
	"esdtsgen/dtsgen/repair"
	"esdtsgen/dtsgen/typescript"
	"esdtsgen/dtsgen/xmlparse"
)

// Blob is one native library file. Name is opaque; Bytes is the raw file
// content.
type Blob struct {
	Name  string
	Bytes []byte
}

// Convert runs the full pipeline: parse the XML into the definition tree,
// repair it against the blobs, prune inherited members, sort, and emit the
// declaration file. With no blobs the recovery stage is skipped and output
// is produced from the XML alone.
func Convert(doc *etree.Document, blobs []Blob, cfg *Config) (string, error) {
	return ConvertWithLogger(doc, blobs, cfg, nil)
}

// ConvertWithLogger is Convert with informational progress logging. Logging
// never affects output.
func ConvertWithLogger(doc *etree.Document, blobs []Blob, cfg *Config, log *slog.Logger) (string, error) {
	cfg = applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	defs, err := xmlparse.Parse(doc)
	if err != nil {
		return "", fmt.Errorf("failed to parse definitions: %w", err)
	}
	log.Info("parsed definitions", slog.Int("count", len(defs)))

	if len(blobs) > 0 {
		indexes := make([]*binscan.Index, 0, len(blobs))
		for _, blob := range blobs {
			idx := binscan.Scan(blob.Name, blob.Bytes)
			log.Debug("indexed blob",
				slog.String("blob", blob.Name),
				slog.Int("strings", len(idx.Entries)),
			)
			indexes = append(indexes, idx)
		}
		repair.NewEngine(indexes, log).RepairAll(defs)
	}
	ir.ClearParseState(defs)

	applyTypeMappings(defs, cfg.TypeMappings)
	pruneInherited(defs)
	sortDefinitions(defs)

	return typescript.Emit(defs, typescript.Options{
		Header: cfg.Header,
		Indent: cfg.Indent,
	}), nil
}
