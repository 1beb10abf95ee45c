package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/iconkit/internal/platform/config"
	"github.com/louisbranch/iconkit/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Command identifiers used for telemetry service names and CLI dispatch.
const (
	CommandGenerate = "generate"
	CommandSync     = "sync"
)

// RunOptions controls shared entrypoint behavior for commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
}

// LoadConfig layers one section of an optional YAML file and then the
// environment over the defaults already present in cfg. An empty section
// decodes the whole file.
func LoadConfig[T any](cfg *T, file, section string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if err := config.LoadYAMLSection(file, section, cfg); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseConfig loads environment overrides into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures observability and executes a command.
func RunWithTelemetry(ctx context.Context, command string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, command, RunOptions{}, run)
}

// RunWithTelemetryAndOptions configures observability and executes a command.
func RunWithTelemetryAndOptions(ctx context.Context, command string, options RunOptions, run func(context.Context) error) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("command name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, command)
	if err != nil {
		return err
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", command, err)
		}
	}()
	return run(ctx)
}
