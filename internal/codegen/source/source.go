// Package source discovers icon sources and loads their metadata sidecars.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

const (
	// DrawingExt is the extension of icon drawing files.
	DrawingExt = ".svg"
	// MetadataExt is the extension of icon metadata sidecars.
	MetadataExt = ".json"
)

const sourceHint = "make sure the icon source tree is checked out (for example with `iconkit sync`) and run from the workspace root"

// Metadata is the subset of an icon's sidecar the pipeline reads.
type Metadata struct {
	Deprecated bool `json:"deprecated"`
}

// Discover returns the sorted, de-duplicated identifiers of every drawing
// file in dir.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(
			apperrors.CodeSourceUnavailable,
			fmt.Sprintf("read icon source directory %s", dir),
			map[string]string{"dir": dir},
			err,
		).WithHint(sourceHint)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, DrawingExt) {
			continue
		}
		id := strings.TrimSuffix(name, DrawingExt)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return dedupSorted(ids), nil
}

func dedupSorted(ids []string) []string {
	sort.Strings(ids)
	out := ids[:0]
	for i, id := range ids {
		if i > 0 && id == ids[i-1] {
			continue
		}
		out = append(out, id)
	}
	return out
}

// DrawingPath returns the path of the drawing file for id.
func DrawingPath(dir, id string) string {
	return filepath.Join(dir, id+DrawingExt)
}

// MetadataPath returns the path of the metadata sidecar for id.
func MetadataPath(dir, id string) string {
	return filepath.Join(dir, id+MetadataExt)
}

// LoadMetadata reads the sidecar for id. A missing, unreadable or malformed
// sidecar is a METADATA_INVALID error.
func LoadMetadata(dir, id string) (Metadata, error) {
	path := MetadataPath(dir, id)
	meta := map[string]string{"icon": id, "path": path}

	data, err := os.ReadFile(path)
	if err != nil {
		message := fmt.Sprintf("read metadata for icon %s", id)
		if errors.Is(err, fs.ErrNotExist) {
			message = fmt.Sprintf("metadata for icon %s not found", id)
		}
		return Metadata{}, apperrors.WrapWithMetadata(apperrors.CodeMetadataInvalid, message, meta, err)
	}

	var value Metadata
	if err := json.Unmarshal(data, &value); err != nil {
		return Metadata{}, apperrors.WrapWithMetadata(apperrors.CodeMetadataInvalid,
			fmt.Sprintf("decode metadata for icon %s", id), meta, err)
	}
	return value, nil
}
