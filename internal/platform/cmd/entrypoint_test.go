package cmd

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	SourceDir string `yaml:"source_dir" env:"CMD_TEST_SOURCE_DIR"`
	Mode      string `yaml:"mode" env:"CMD_TEST_MODE"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_SOURCE_DIR", "env/icons")
	t.Setenv("CMD_TEST_MODE", "external")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config: %v", err)
	}
	fs.StringVar(&cfgRef.SourceDir, "source", cfgRef.SourceDir, "source")
	fs.StringVar(&cfgRef.Mode, "mode", cfgRef.Mode, "mode")

	if err := ParseArgs(fs, []string{"-source", "flag/icons"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.SourceDir != "flag/icons" {
		t.Fatalf("expected flag value for source, got %q", cfgRef.SourceDir)
	}
	if cfgRef.Mode != "external" {
		t.Fatalf("expected env mode, got %q", cfgRef.Mode)
	}
}

func TestLoadConfigLayersFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iconkit.yaml")
	if err := os.WriteFile(path, []byte("source_dir: file/icons\nmode: inline\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CMD_TEST_MODE", "external")

	cfg := testConfig{SourceDir: "default/icons"}
	if err := LoadConfig(&cfg, path, ""); err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SourceDir != "file/icons" {
		t.Fatalf("source dir = %q, want file value", cfg.SourceDir)
	}
	if cfg.Mode != "external" {
		t.Fatalf("mode = %q, want env override", cfg.Mode)
	}
}

func TestLoadConfigRejectsNilTarget(t *testing.T) {
	if err := LoadConfig[testConfig](nil, "", ""); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing command error")
	}
	if err := RunWithTelemetry(context.Background(), CommandGenerate, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("ICONKIT_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	err := RunWithTelemetry(context.Background(), CommandGenerate, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
