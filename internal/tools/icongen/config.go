package icongen

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/louisbranch/iconkit/internal/codegen/model"
	"github.com/louisbranch/iconkit/internal/codegen/render"
	entrypoint "github.com/louisbranch/iconkit/internal/platform/cmd"
	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

// ConfigSection is the key of the generation settings in a config file.
const ConfigSection = "generate"

// Config holds generation settings.
type Config struct {
	SourceDir  string `yaml:"source_dir" env:"ICONKIT_SOURCE_DIR"`
	OutDir     string `yaml:"out_dir" env:"ICONKIT_OUT_DIR"`
	OutFile    string `yaml:"out_file" env:"ICONKIT_OUT_FILE"`
	Mode       string `yaml:"mode" env:"ICONKIT_MODE"`
	AssetDir   string `yaml:"asset_dir" env:"ICONKIT_ASSET_DIR"`
	Target     string `yaml:"target" env:"ICONKIT_TARGET"`
	Template   string `yaml:"template" env:"ICONKIT_TEMPLATE"`
	GoPackage  string `yaml:"go_package" env:"ICONKIT_GO_PACKAGE"`
	Workers    int    `yaml:"workers" env:"ICONKIT_WORKERS"`
	MergePaths bool   `yaml:"merge_paths" env:"ICONKIT_MERGE_PATHS"`
}

// DefaultConfig returns the settings for generating the Slint library from a
// Lucide checkout in the workspace root.
func DefaultConfig() Config {
	return Config{
		SourceDir:  filepath.Join("lucide", "icons"),
		OutDir:     "lucide-slint",
		OutFile:    "lib.slint",
		Mode:       model.ModeInline.String(),
		AssetDir:   "icons",
		Target:     render.TargetSlint,
		GoPackage:  "icons",
		Workers:    1,
		MergePaths: true,
	}
}

// BindFlags registers generation flags on fs, defaulting to cfg's values.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.SourceDir, "source", cfg.SourceDir, "directory containing <id>.svg and <id>.json")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	fs.StringVar(&cfg.OutFile, "out-file", cfg.OutFile, "generated file name inside the output directory")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "output mode: inline or external")
	fs.StringVar(&cfg.AssetDir, "asset-dir", cfg.AssetDir, "directory for copied drawings in external mode, relative to -out")
	fs.StringVar(&cfg.Target, "target", cfg.Target, "built-in template: slint or go")
	fs.StringVar(&cfg.Template, "template", cfg.Template, "custom template file (overrides the built-in template)")
	fs.StringVar(&cfg.GoPackage, "go-package", cfg.GoPackage, "package name for the go target")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "icons processed concurrently")
	fs.BoolVar(&cfg.MergePaths, "merge-paths", cfg.MergePaths, "merge all paths of an icon into one before normalizing")
}

// ParseConfig layers defaults, the -config file, the environment and flags
// into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()
	if err := LoadLayers(&cfg, ConfigFileArg(args)); err != nil {
		return Config{}, err
	}

	var configFile string
	fs.StringVar(&configFile, "config", "", "YAML config file")
	BindFlags(fs, &cfg)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadLayers applies the generate section of file and then the environment
// to cfg.
func LoadLayers(cfg *Config, file string) error {
	if err := entrypoint.LoadConfig(cfg, file, ConfigSection); err != nil {
		return apperrors.Wrap(apperrors.CodeConfigInvalid, "load generate config", err)
	}
	return nil
}

// ConfigFileArg returns the value of the -config flag in args, if any. It
// runs before the real flag parse so file values can become flag defaults.
func ConfigFileArg(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return ""
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// Validate reports the first unusable setting as a CONFIG_INVALID error.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperrors.New(apperrors.CodeConfigInvalid, fmt.Sprintf(format, args...))
	}
	if strings.TrimSpace(c.SourceDir) == "" {
		return invalid("source dir is required")
	}
	if strings.TrimSpace(c.OutDir) == "" {
		return invalid("out dir is required")
	}
	if strings.TrimSpace(c.OutFile) == "" {
		return invalid("out file is required")
	}
	mode, err := model.ParseOutputMode(c.Mode)
	if err != nil {
		return err
	}
	if mode == model.ModeExternalResource && !filepath.IsLocal(c.AssetDir) {
		return invalid("asset dir %q must be a relative path inside the output directory", c.AssetDir)
	}
	switch c.Target {
	case render.TargetSlint, render.TargetGo:
	default:
		return invalid("unknown target %q (want %s or %s)", c.Target, render.TargetSlint, render.TargetGo)
	}
	if c.Workers < 1 {
		return invalid("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// OutputPath is the path of the generated artifact.
func (c Config) OutputPath() string {
	return filepath.Join(c.OutDir, c.OutFile)
}
