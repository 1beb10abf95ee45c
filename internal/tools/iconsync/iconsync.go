// Package iconsync moves the upstream icon source checkout to the latest
// release and regenerates the icon library from it.
package iconsync

import (
	"context"
	"fmt"
	"io"

	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
	"github.com/louisbranch/iconkit/internal/platform/otel"
	"github.com/louisbranch/iconkit/internal/tools/icongen"
)

// Result describes a completed sync.
type Result struct {
	Version string
	Commit  string
	// UpToDate is set when the manifest already recorded the release and
	// nothing was checked out or generated.
	UpToDate bool
	// Generation is nil when generation was skipped.
	Generation *icongen.Result
}

// Syncer runs the sync steps against its collaborators.
type Syncer struct {
	Client   *Client
	Git      GitRunner
	Generate func(context.Context, icongen.Config) (icongen.Result, error)
	// Out receives progress lines.
	Out io.Writer
}

// Run syncs with the default GitHub client, the git binary and the
// generation pipeline.
func Run(ctx context.Context, cfg Config, out io.Writer) (Result, error) {
	syncer := Syncer{
		Client:   NewClient(cfg.APIBaseURL, cfg.Token),
		Git:      ExecGit{},
		Generate: icongen.Run,
		Out:      out,
	}
	return syncer.Sync(ctx, cfg)
}

// Sync resolves the latest upstream release to a commit, checks the
// submodule out at that commit, records it in the manifest and, unless
// disabled, regenerates the library. When the manifest already records that
// release and commit, Sync stops after resolving it unless cfg.Force is set.
func (s Syncer) Sync(ctx context.Context, cfg Config) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	out := s.Out
	if out == nil {
		out = io.Discard
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	ctx, span := otel.Tracer().Start(ctx, "iconsync.sync")
	defer span.End()
	span.SetAttributes(otel.UpstreamRepoKey.String(cfg.Repo))

	tag, err := s.Client.LatestRelease(ctx, cfg.Repo)
	if err != nil {
		return Result{}, err
	}
	span.SetAttributes(otel.UpstreamTagKey.String(tag))
	fmt.Fprintf(out, "latest release of %s: %s\n", cfg.Repo, tag)

	commit, err := s.Client.ResolveTag(ctx, cfg.Repo, tag, cfg.MaxTagDepth)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(out, "tag %s resolves to commit %s\n", tag, commit)

	current, err := ReadUpstream(cfg.Manifest)
	if err != nil {
		return Result{}, err
	}
	if !cfg.Force && current == (Upstream{Version: tag, Commit: commit}) {
		fmt.Fprintf(out, "%s already records %s, nothing to do\n", cfg.Manifest, tag)
		return Result{Version: tag, Commit: commit, UpToDate: true}, nil
	}

	if err := s.checkout(ctx, cfg.Submodule, commit); err != nil {
		return Result{}, err
	}
	fmt.Fprintf(out, "checked out %s at %s\n", cfg.Submodule, commit)

	if err := WriteUpstream(cfg.Manifest, Upstream{Version: tag, Commit: commit}); err != nil {
		return Result{}, err
	}
	fmt.Fprintf(out, "recorded %s in %s\n", tag, cfg.Manifest)

	result := Result{Version: tag, Commit: commit}
	if cfg.SkipGenerate {
		return result, nil
	}
	generation, err := s.Generate(ctx, cfg.Generate)
	if err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}
	result.Generation = &generation
	return result, nil
}

func (s Syncer) checkout(ctx context.Context, submodule, commit string) error {
	meta := map[string]string{"submodule": submodule, "commit": commit}
	if err := s.Git.Run(ctx, "submodule", "update", "--init", "--recursive"); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeCheckoutFailed, "update submodules", meta, err)
	}
	if err := s.Git.Run(ctx, "-C", submodule, "checkout", commit); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeCheckoutFailed,
			fmt.Sprintf("check out %s in %s", commit, submodule), meta, err)
	}
	return nil
}
