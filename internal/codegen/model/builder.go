package model

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/iconkit/internal/codegen/diag"
	"github.com/louisbranch/iconkit/internal/codegen/geometry"
	"github.com/louisbranch/iconkit/internal/codegen/source"
	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
	"github.com/louisbranch/iconkit/internal/platform/icons"
	"github.com/louisbranch/iconkit/internal/platform/otel"
)

// Builder turns icon identifiers into Icon records.
type Builder struct {
	// SourceDir holds <id>.svg and <id>.json for every icon.
	SourceDir string
	// OutDir is the directory of the generated artifact.
	OutDir string
	// AssetDir is where external drawings are copied, relative to OutDir.
	AssetDir string
	Mode     OutputMode
	// Decode defaults to geometry.Decode.
	Decode DecodeFunc
	// Workers bounds concurrent icon processing. Values below 1 mean 1.
	Workers int
	// MergePaths joins all sub-paths of a drawing into one before
	// normalization, so a multi-element icon yields a single record.
	MergePaths bool
}

// Build produces one Icon per identifier, in the order given. It stops at
// the first failing icon and returns no icons in that case. Warnings are
// reported to diags, which may be nil.
func (b Builder) Build(ctx context.Context, ids []string, diags *diag.Collector) ([]Icon, error) {
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	if b.Mode == ModeExternalResource {
		if err := os.MkdirAll(b.assetDir(), 0o755); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeIOError, "create asset dir", err)
		}
	}

	out := make([]Icon, len(ids))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, id := range ids {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			icon, err := b.buildIcon(groupCtx, id, diags)
			if err != nil {
				return err
			}
			out[i] = icon
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (b Builder) buildIcon(ctx context.Context, id string, diags *diag.Collector) (icon Icon, err error) {
	if err := ctx.Err(); err != nil {
		return Icon{}, err
	}
	ctx, span := otel.Tracer().Start(ctx, "model.icon",
		trace.WithAttributes(
			attribute.String("icon.id", id),
			attribute.String("icon.mode", b.Mode.String()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	meta, err := source.LoadMetadata(b.SourceDir, id)
	if err != nil {
		return Icon{}, err
	}
	icon = Icon{
		Name:       icons.ComponentName(id),
		ID:         id,
		Deprecated: meta.Deprecated,
	}

	switch b.Mode {
	case ModeExternalResource:
		icon.Resource, err = b.copyDrawing(id)
	default:
		report := diags.For(id).Observe(func(d diag.Diagnostic) {
			span.AddEvent("warning", trace.WithAttributes(
				attribute.String("diagnostic.kind", string(d.Kind)),
				attribute.String("diagnostic.message", d.Message),
			))
		})
		icon.Paths, err = b.normalize(id, report)
	}
	if err != nil {
		return Icon{}, err
	}
	return icon, nil
}

func (b Builder) normalize(id string, report diag.Scope) ([]geometry.PathRecord, error) {
	data, err := readDrawing(b.SourceDir, id)
	if err != nil {
		return nil, err
	}
	decode := b.Decode
	if decode == nil {
		decode = geometry.Decode
	}
	meta := map[string]string{"icon": id}

	drawing, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeParseError, fmt.Sprintf("parse icon %s", id), meta, err)
	}
	if b.MergePaths {
		drawing = geometry.Merge(drawing)
	}
	records, err := geometry.Normalize(drawing, report)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeParseError, fmt.Sprintf("normalize icon %s", id), meta, err)
	}
	return records, nil
}

func (b Builder) copyDrawing(id string) (string, error) {
	data, err := readDrawing(b.SourceDir, id)
	if err != nil {
		return "", err
	}
	name := id + source.DrawingExt
	dest := filepath.Join(b.assetDir(), name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", apperrors.WrapWithMetadata(apperrors.CodeIOError,
			fmt.Sprintf("copy icon %s", id), map[string]string{"icon": id, "path": dest}, err)
	}
	return path.Join(filepath.ToSlash(b.AssetDir), name), nil
}

func (b Builder) assetDir() string {
	return filepath.Join(b.OutDir, b.AssetDir)
}

func readDrawing(dir, id string) ([]byte, error) {
	src := source.DrawingPath(dir, id)
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeIOError,
			fmt.Sprintf("read icon %s", id), map[string]string{"icon": id, "path": src}, err)
	}
	return data, nil
}
