package iconsync

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

const upstreamTable = "upstream"

// Upstream records which upstream release the icon sources come from.
type Upstream struct {
	Version string `toml:"version"`
	Commit  string `toml:"commit"`
}

// ReadUpstream returns the [upstream] table of the manifest at path. A
// missing manifest yields a zero Upstream.
func ReadUpstream(path string) (Upstream, error) {
	var doc struct {
		Upstream Upstream `toml:"upstream"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Upstream{}, nil
		}
		return Upstream{}, apperrors.WrapWithMetadata(apperrors.CodeConfigInvalid,
			"decode manifest", map[string]string{"path": path}, err)
	}
	return doc.Upstream, nil
}

// WriteUpstream sets the [upstream] table of the manifest at path, keeping
// every other table. The manifest is created when missing.
func WriteUpstream(path string, upstream Upstream) error {
	meta := map[string]string{"path": path}
	doc := map[string]any{}
	if _, err := toml.DecodeFile(path, &doc); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.WrapWithMetadata(apperrors.CodeConfigInvalid, "decode manifest", meta, err)
	}
	doc[upstreamTable] = upstream

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeIOError, "encode manifest", meta, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapWithMetadata(apperrors.CodeIOError, "create manifest dir", meta, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeIOError, fmt.Sprintf("write manifest %s", path), meta, err)
	}
	return nil
}
