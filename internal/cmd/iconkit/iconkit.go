// Package iconkit dispatches the iconkit subcommands.
package iconkit

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"golang.org/x/text/language"

	"github.com/louisbranch/iconkit/internal/codegen/diag"
	entrypoint "github.com/louisbranch/iconkit/internal/platform/cmd"
	"github.com/louisbranch/iconkit/internal/tools/icongen"
	"github.com/louisbranch/iconkit/internal/tools/iconsync"
)

// ErrUsage reports a missing or unknown subcommand. Usage has already been
// printed when it is returned.
var ErrUsage = errors.New("invalid usage")

const usage = `Usage: iconkit <command> [flags]

Commands:
  generate   generate the icon library from the icon source directory
  sync       check out the latest upstream release and regenerate

Run "iconkit <command> -h" for the flags of a command.
`

// Run executes the subcommand named by args[0].
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return ErrUsage
	}
	command, rest := args[0], args[1:]
	switch command {
	case entrypoint.CommandGenerate:
		return runGenerate(ctx, rest, stdout, stderr)
	case entrypoint.CommandSync:
		return runSync(ctx, rest, stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", command, usage)
		return ErrUsage
	}
}

func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(entrypoint.CommandGenerate, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := icongen.ParseConfig(fs, args)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.CommandGenerate, func(ctx context.Context) error {
		result, err := icongen.Run(ctx, cfg)
		if err != nil {
			return err
		}
		report(stdout, stderr, result)
		return nil
	})
}

func runSync(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(entrypoint.CommandSync, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := iconsync.ParseConfig(fs, args)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.CommandSync, func(ctx context.Context) error {
		result, err := iconsync.Run(ctx, cfg, stdout)
		if err != nil {
			return err
		}
		if result.Generation != nil {
			report(stdout, stderr, *result.Generation)
		}
		return nil
	})
}

func report(stdout, stderr io.Writer, result icongen.Result) {
	writeWarnings(stderr, result.Diagnostics)
	fmt.Fprintln(stdout, result.Summary(language.English))
}

func writeWarnings(w io.Writer, diagnostics []diag.Diagnostic) {
	for _, d := range diagnostics {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
}
