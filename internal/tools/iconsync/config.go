package iconsync

import (
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/iconkit/internal/platform/cmd"
	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
	"github.com/louisbranch/iconkit/internal/tools/icongen"
)

// ConfigSection is the key of the sync settings in a config file.
const ConfigSection = "sync"

// Config holds sync settings. Generate configures the generation run that
// follows a successful checkout.
type Config struct {
	Repo         string `yaml:"repo" env:"ICONKIT_UPSTREAM_REPO"`
	APIBaseURL   string `yaml:"github_api" env:"ICONKIT_GITHUB_API"`
	Submodule    string `yaml:"submodule" env:"ICONKIT_SUBMODULE"`
	Manifest     string `yaml:"manifest" env:"ICONKIT_MANIFEST"`
	MaxTagDepth  int    `yaml:"max_tag_depth" env:"ICONKIT_MAX_TAG_DEPTH"`
	SkipGenerate bool   `yaml:"skip_generate" env:"ICONKIT_SKIP_GENERATE"`
	Force        bool   `yaml:"force" env:"ICONKIT_FORCE_SYNC"`
	Token        string `yaml:"-" env:"GITHUB_TOKEN"`

	Generate icongen.Config `yaml:"-"`
}

// DefaultConfig returns settings for syncing the Lucide submodule.
func DefaultConfig() Config {
	return Config{
		Repo:        "lucide-icons/lucide",
		APIBaseURL:  "https://api.github.com",
		Submodule:   "lucide",
		Manifest:    "iconkit.toml",
		MaxTagDepth: 5,
		Generate:    icongen.DefaultConfig(),
	}
}

// ParseConfig layers defaults, the -config file, the environment and flags.
// Generation flags are accepted too and configure the follow-up run.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()
	file := icongen.ConfigFileArg(args)
	if err := entrypoint.LoadConfig(&cfg, file, ConfigSection); err != nil {
		return Config{}, apperrors.Wrap(apperrors.CodeConfigInvalid, "load sync config", err)
	}
	if err := icongen.LoadLayers(&cfg.Generate, file); err != nil {
		return Config{}, err
	}

	var configFile string
	fs.StringVar(&configFile, "config", "", "YAML config file")
	fs.StringVar(&cfg.Repo, "repo", cfg.Repo, "upstream GitHub repository (owner/name)")
	fs.StringVar(&cfg.APIBaseURL, "github-api", cfg.APIBaseURL, "GitHub REST API base URL")
	fs.StringVar(&cfg.Submodule, "submodule", cfg.Submodule, "path of the upstream git submodule")
	fs.StringVar(&cfg.Manifest, "manifest", cfg.Manifest, "TOML manifest recording the synced release")
	fs.IntVar(&cfg.MaxTagDepth, "max-tag-depth", cfg.MaxTagDepth, "maximum annotated tag hops to follow")
	fs.BoolVar(&cfg.SkipGenerate, "skip-generate", cfg.SkipGenerate, "only sync sources, do not regenerate")
	fs.BoolVar(&cfg.Force, "force", cfg.Force, "check out and regenerate even when the manifest is current")
	icongen.BindFlags(fs, &cfg.Generate)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting as a CONFIG_INVALID error.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperrors.New(apperrors.CodeConfigInvalid, fmt.Sprintf(format, args...))
	}
	owner, name, ok := strings.Cut(c.Repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return invalid("repo %q must look like owner/name", c.Repo)
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return invalid("github api url is required")
	}
	if strings.TrimSpace(c.Submodule) == "" {
		return invalid("submodule path is required")
	}
	if strings.TrimSpace(c.Manifest) == "" {
		return invalid("manifest path is required")
	}
	if c.MaxTagDepth < 1 {
		return invalid("max tag depth must be at least 1, got %d", c.MaxTagDepth)
	}
	if c.SkipGenerate {
		return nil
	}
	return c.Generate.Validate()
}
