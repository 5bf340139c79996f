package book

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	berrors "git.home.luguber.info/inful/bookgen/internal/book/errors"
	"git.home.luguber.info/inful/bookgen/internal/config"
	"git.home.luguber.info/inful/bookgen/internal/features"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/mirror"
)

// Report summarizes one generation run.
type Report struct {
	LangFeatures int
	LibFeatures  int
	LangStubs    int
	LibStubs     int
}

// Generate runs the full pipeline against a source tree: collect both
// feature registries, reconcile each against its section directory, mirror
// the hand-written book into the destination, and render SUMMARY.md. The
// book lands under destRoot/src, the layout mdbook expects SUMMARY.md in.
//
// Any failure aborts the run; there is no partial-success mode. Files
// already written before the failure are left behind for the operator to
// inspect, and a re-run after fixing the cause overwrites them.
func Generate(ctx context.Context, cfg *config.Config, srcRoot, destRoot string) (Report, error) {
	var report Report

	lang, err := features.CollectLangFeatures(srcRoot, cfg.Features)
	if err != nil {
		return report, err
	}
	lib, err := features.CollectLibFeatures(srcRoot, cfg.Features, lang)
	if err != nil {
		return report, err
	}
	report.LangFeatures = len(lang)
	report.LibFeatures = len(lib)

	bookSrc := filepath.Join(srcRoot, cfg.Book.SourceDir)
	destDir := filepath.Join(destRoot, "src")
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return report, fmt.Errorf("%w: %s: %w", berrors.ErrOutputDirCreateFailed, destDir, err)
	}

	renderer := NewStubRenderer(cfg.Stubs.IssueURLFormat)

	report.LangStubs, err = Reconcile(lang,
		filepath.Join(bookSrc, cfg.Book.LangFeaturesDir),
		filepath.Join(destDir, cfg.Book.LangFeaturesDir),
		renderer)
	if err != nil {
		return report, err
	}
	report.LibStubs, err = Reconcile(lib,
		filepath.Join(bookSrc, cfg.Book.LibFeaturesDir),
		filepath.Join(destDir, cfg.Book.LibFeaturesDir),
		renderer)
	if err != nil {
		return report, err
	}

	// Hand-written pages land next to the stubs. Features with a section
	// file never got a stub, so the copy replaces nothing that was generated.
	if err := mirror.CopyTree(ctx, bookSrc, destDir); err != nil {
		return report, err
	}

	if err := RenderSummary(destDir, lang, lib, cfg.Book); err != nil {
		return report, err
	}

	slog.Info("Book generated",
		logfields.Path(destDir),
		slog.Int("lang_stubs", report.LangStubs),
		slog.Int("lib_stubs", report.LibStubs),
		slog.Int("lang_features", report.LangFeatures),
		slog.Int("lib_features", report.LibFeatures))
	return report, nil
}
