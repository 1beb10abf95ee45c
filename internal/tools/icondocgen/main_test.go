package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

const svg = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0L1 1"/></svg>`

func writeRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/project\n"), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}
	icons := filepath.Join(root, "lucide", "icons")
	if err := os.MkdirAll(icons, 0o755); err != nil {
		t.Fatalf("mkdir icons: %v", err)
	}
	files := map[string]string{
		"zap.svg":           svg,
		"zap.json":          `{"tags": ["flash"]}`,
		"a-arrow-down.svg":  svg,
		"a-arrow-down.json": `{"deprecated": true}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(icons, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func TestRunWritesCatalog(t *testing.T) {
	root := writeRoot(t)
	outPath := "docs/icon-catalog.md"
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	if err := run([]string{"-root", root, "-out", outPath}, &stdout, &stderr); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr output: %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "wrote 2 icons") {
		t.Fatalf("stdout = %q", stdout.String())
	}

	data, err := os.ReadFile(filepath.Join(root, outPath))
	if err != nil {
		t.Fatalf("read generated catalog: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "title: \"Icon Catalog\"") {
		t.Fatalf("catalog output missing title:\n%s", out)
	}
	deprecated := strings.Index(out, "| a-arrow-down | AArrowDownIcon | yes |")
	plain := strings.Index(out, "| zap | ZapIcon |  |")
	if deprecated < 0 || plain < 0 || deprecated > plain {
		t.Fatalf("catalog rows missing or out of order:\n%s", out)
	}
}

func TestRunResolvesRootFromWorkingDirectory(t *testing.T) {
	root := writeRoot(t)
	chdir(t, root)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	if err := run([]string{}, &stdout, &stderr); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr output: %q", stderr.String())
	}
	data, err := os.ReadFile(filepath.Join(root, "docs", "icon-catalog.md"))
	if err != nil {
		t.Fatalf("read generated catalog: %v", err)
	}
	if !strings.Contains(string(data), "ZapIcon") {
		t.Fatalf("catalog output missing icons:\n%s", string(data))
	}
}

func TestRunReturnsErrorWhenRootMissing(t *testing.T) {
	chdir(t, t.TempDir())

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	err := run([]string{}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected root resolution error")
	}
	if !strings.Contains(err.Error(), "go.mod not found above") {
		t.Fatalf("error = %q, want go.mod not found", err.Error())
	}
}

func TestRunReturnsSourceErrorWhenIconsMissing(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/project\n"), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	err := run([]string{"-root", root}, &stdout, &stderr)
	if apperrors.CodeOf(err) != apperrors.CodeSourceUnavailable {
		t.Fatalf("code = %q, want %q (err %v)", apperrors.CodeOf(err), apperrors.CodeSourceUnavailable, err)
	}
}

func TestRunReturnsUsageErrorOnInvalidFlag(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	err := run([]string{"-unknown"}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected parse error for invalid flag")
	}
	if !strings.Contains(err.Error(), "flag provided but not defined") {
		t.Fatalf("error = %q, want invalid flag message", err.Error())
	}
}
