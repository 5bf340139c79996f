package book

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	berrors "git.home.luguber.info/inful/bookgen/internal/book/errors"
	"git.home.luguber.info/inful/bookgen/internal/util/sets"
)

// FileNameForFeature maps a feature name to its section file name:
// every underscore becomes a dash and ".md" is appended.
func FileNameForFeature(name string) string {
	return strings.ReplaceAll(name, "_", "-") + ".md"
}

// FeatureNameForFile is the inverse of FileNameForFeature: the extension is
// stripped and dashes map back to underscores.
func FeatureNameForFile(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return strings.ReplaceAll(base, "-", "_")
}

// CollectSectionNames lists the feature names that already have a section
// file in dir. Only direct children count: the book keeps one section file
// per feature, never nested. A directory that does not exist yet yields an
// empty set. The result is a fresh snapshot, never cached.
func CollectSectionNames(dir string) (sets.Set[string], error) {
	names := sets.New[string]()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return names, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", berrors.ErrSectionScanFailed, dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names.Add(FeatureNameForFile(entry.Name()))
	}
	return names, nil
}
