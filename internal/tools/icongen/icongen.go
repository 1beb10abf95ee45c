// Package icongen runs the icon generation pipeline: discover icon sources,
// build icon records and render the generated library.
package icongen

import (
	"context"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/iconkit/internal/codegen/diag"
	"github.com/louisbranch/iconkit/internal/codegen/model"
	"github.com/louisbranch/iconkit/internal/codegen/render"
	"github.com/louisbranch/iconkit/internal/codegen/source"
	"github.com/louisbranch/iconkit/internal/platform/otel"
)

// Result describes a completed generation run.
type Result struct {
	Icons       []model.Icon
	Diagnostics []diag.Diagnostic
	OutputPath  string
	// Bytes is the size of the generated artifact.
	Bytes int
}

// Summary formats the one-line completion message for tag.
func (r Result) Summary(tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("Successfully transformed %d icons (%s)",
		len(r.Icons), humanize.Bytes(uint64(r.Bytes)))
}

// Run executes the pipeline. The artifact is written once, after every icon
// has been built; any error leaves it untouched.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	mode, err := model.ParseOutputMode(cfg.Mode)
	if err != nil {
		return Result{}, err
	}
	renderer, err := render.New(render.Options{
		Target:       cfg.Target,
		TemplatePath: cfg.Template,
		GoPackage:    cfg.GoPackage,
	})
	if err != nil {
		return Result{}, err
	}

	ids, err := traced(ctx, "icongen.discover", func(context.Context, trace.Span) ([]string, error) {
		return source.Discover(cfg.SourceDir)
	})
	if err != nil {
		return Result{}, err
	}

	var diags diag.Collector
	builder := model.Builder{
		SourceDir:  cfg.SourceDir,
		OutDir:     cfg.OutDir,
		AssetDir:   cfg.AssetDir,
		Mode:       mode,
		Workers:    cfg.Workers,
		MergePaths: cfg.MergePaths,
	}
	icons, err := traced(ctx, "icongen.build", func(ctx context.Context, span trace.Span) ([]model.Icon, error) {
		span.SetAttributes(
			attribute.Int("icon.count", len(ids)),
			attribute.String("icon.mode", mode.String()),
			attribute.Int("icon.workers", cfg.Workers),
		)
		icons, err := builder.Build(ctx, ids, &diags)
		span.SetAttributes(attribute.Int("icon.warnings", diags.Len()))
		return icons, err
	})
	if err != nil {
		return Result{}, err
	}

	output := cfg.OutputPath()
	written, err := traced(ctx, "icongen.render", func(_ context.Context, span trace.Span) (int, error) {
		span.SetAttributes(attribute.String("output.path", output))
		return renderer.WriteFile(output, icons)
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Icons:       icons,
		Diagnostics: diags.Diagnostics(),
		OutputPath:  output,
		Bytes:       written,
	}, nil
}

// traced runs fn inside a span named name, recording its error.
func traced[T any](ctx context.Context, name string, fn func(context.Context, trace.Span) (T, error)) (T, error) {
	ctx, span := otel.Tracer().Start(ctx, name)
	defer span.End()
	value, err := fn(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return value, err
}
