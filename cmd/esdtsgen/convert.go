package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/gobwas/glob"

	"esdtsgen/dtsgen"
	"esdtsgen/dtsgen/sink"
)

type ConvertCmd struct {
	XML     string   `arg:"" help:"Path to the ExtendScript API XML file."`
	Blobs   []string `help:"Glob patterns selecting native library files with ground-truth strings." short:"b"`
	BlobDir string   `help:"Directory the blob patterns are matched against." default:"." name:"blob-dir"`
	Out     string   `help:"Output path for the declaration file (default: stdout)." short:"o"`
	Config  string   `help:"Path to a TOML overrides file." short:"c"`
	Verbose bool     `help:"Enable progress logging." short:"v"`
}

func (c *ConvertCmd) Run() error {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(c.XML); err != nil {
		return fmt.Errorf("read XML: %w", err)
	}

	var cfg *dtsgen.Config
	if c.Config != "" {
		loaded, err := dtsgen.LoadConfig(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	blobs, err := loadBlobs(c.BlobDir, c.Blobs)
	if err != nil {
		return err
	}
	log.Info("loaded blobs", slog.Int("count", len(blobs)))

	output, err := dtsgen.ConvertWithLogger(doc, blobs, cfg, log)
	if err != nil {
		return err
	}

	if c.Out == "" {
		fmt.Print(output)
		return nil
	}
	if err := sink.NewFilesystemSink().WriteFile(c.Out, []byte(output)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// loadBlobs matches the glob patterns against the blob directory and reads
// every matching file, in stable name order per pattern.
func loadBlobs(dir string, patterns []string) ([]dtsgen.Blob, error) {
	var blobs []dtsgen.Blob
	seen := make(map[string]bool)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if len(patterns) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("read blob directory: %w", err)
	}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad blob pattern %q: %w", pattern, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !g.Match(entry.Name()) || seen[entry.Name()] {
				continue
			}
			seen[entry.Name()] = true
			path := filepath.Join(dir, entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read blob %q: %w", path, err)
			}
			blobs = append(blobs, dtsgen.Blob{Name: entry.Name(), Bytes: data})
		}
	}
	return blobs, nil
}
