package recorder

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"flowcap/internal/logging"
	"flowcap/internal/manifest"
)

// List enumerates the recordings under root, sorted by workflow name.
// Directories without a parseable manifest are skipped with a warning;
// only a failure to read the root itself is an error.
func List(root string) ([]*manifest.Manifest, error) {
	if root == "" {
		root = DefaultRoot
	}

	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read recordings root: %w", err)
	}

	log := logging.New("recorder")
	var manifests []*manifest.Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name(), manifest.FileName)
		m, err := manifest.Load(path)
		if err != nil {
			log.Warn("skipping recording", slog.String("dir", entry.Name()), slog.Any("err", err))
			continue
		}
		manifests = append(manifests, m)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].WorkflowName < manifests[j].WorkflowName
	})
	return manifests, nil
}
