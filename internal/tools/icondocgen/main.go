package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/louisbranch/iconkit/internal/codegen/source"
	"github.com/louisbranch/iconkit/internal/platform/config"
	"github.com/louisbranch/iconkit/internal/platform/icons"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		config.ExitErr(err)
	}
}

func run(args []string, stdout io.Writer, stderr io.Writer) error {
	var outPath string
	var sourceDir string
	var rootFlag string
	flags := flag.NewFlagSet("icondocgen", flag.ContinueOnError)
	flags.StringVar(&outPath, "out", "docs/icon-catalog.md", "output path for the icon catalog")
	flags.StringVar(&sourceDir, "source", filepath.Join("lucide", "icons"), "icon source directory")
	flags.StringVar(&rootFlag, "root", "", "repo root (defaults to locating go.mod)")
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		return err
	}

	root, err := resolveRoot(rootFlag)
	if err != nil {
		return err
	}
	output := underRoot(root, outPath)
	entries, err := loadEntries(underRoot(root, sourceDir))
	if err != nil {
		return err
	}

	content := fmt.Sprintf(`---
title: "Icon Catalog"
nav_order: 30
---

%s`, icons.CatalogMarkdown(entries))
	if err := writeOutput(output, content); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d icons to %s\n", len(entries), output)
	return nil
}

// loadEntries reads every icon in dir with its deprecation flag.
func loadEntries(dir string) ([]icons.Entry, error) {
	ids, err := source.Discover(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]icons.Entry, 0, len(ids))
	for _, id := range ids {
		meta, err := source.LoadMetadata(dir, id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, icons.Entry{ID: id, Deprecated: meta.Deprecated})
	}
	return entries, nil
}

func underRoot(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func writeOutput(output, content string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// resolveRoot chooses the repository root so generated docs land in the right tree.
func resolveRoot(flagRoot string) (string, error) {
	if flagRoot != "" {
		return filepath.Clean(flagRoot), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working dir: %w", err)
	}
	return findModuleRoot(wd)
}

// findModuleRoot walks upward to locate the module root for generation.
func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("go.mod not found above %s", start)
}
