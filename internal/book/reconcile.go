package book

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	berrors "git.home.luguber.info/inful/bookgen/internal/book/errors"
	"git.home.luguber.info/inful/bookgen/internal/features"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
)

// Reconcile generates a stub under outDir for every unstable feature in the
// registry that has no section file under sectionDir. Existing sections are
// left untouched and nothing is ever deleted: pages for features that later
// leave the registry simply remain (the book is append-only). Returns the
// number of stubs written.
func Reconcile(reg features.Registry, sectionDir, outDir string, renderer *StubRenderer) (int, error) {
	documented, err := CollectSectionNames(sectionDir)
	if err != nil {
		return 0, err
	}
	missing := reg.UnstableNames().Difference(documented)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", berrors.ErrOutputDirCreateFailed, outDir, err)
	}

	// Each stub is independent; sorting only makes logs and failures reproducible.
	names := missing.Values()
	sort.Strings(names)

	written := 0
	for _, name := range names {
		f, ok := reg[name]
		if !ok {
			return written, fmt.Errorf("%w: %s", berrors.ErrUnknownFeature, name)
		}
		path := filepath.Join(outDir, FileNameForFeature(name))
		if err := renderer.WriteStub(path, f); err != nil {
			return written, err
		}
		written++
		slog.Debug("Generated stub section", logfields.Feature(name), logfields.Path(path))
	}

	slog.Info("Reconciled section directory",
		logfields.Section(filepath.Base(outDir)),
		logfields.Count(written),
		slog.Int("documented", len(documented)))
	return written, nil
}
