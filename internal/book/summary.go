package book

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	berrors "git.home.luguber.info/inful/bookgen/internal/book/errors"
	"git.home.luguber.info/inful/bookgen/internal/config"
	"git.home.luguber.info/inful/bookgen/internal/features"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/util/sets"
)

var summaryTpl = template.Must(template.ParseFS(templateFS, "templates/summary.md"))

type summaryContext struct {
	CompilerFlagsDir string
	LangFeaturesDir  string
	LibFeaturesDir   string
	CompilerFlags    string
	LanguageFeatures string
	LibraryFeatures  string
}

// RenderSummary writes SUMMARY.md under destDir, indexing the compiler-flag
// sections present on disk plus every unstable feature of both registries.
// It runs after reconciliation and mirroring so each listed page exists.
// Lists are sorted so consecutive runs produce identical, diffable output.
func RenderSummary(destDir string, lang, lib features.Registry, bookCfg config.BookConfig) error {
	compilerFlags, err := CollectSectionNames(filepath.Join(destDir, bookCfg.CompilerFlagsDir))
	if err != nil {
		return err
	}

	ctx := summaryContext{
		CompilerFlagsDir: bookCfg.CompilerFlagsDir,
		LangFeaturesDir:  bookCfg.LangFeaturesDir,
		LibFeaturesDir:   bookCfg.LibFeaturesDir,
		CompilerFlags:    summaryList(compilerFlags, bookCfg.CompilerFlagsDir),
		LanguageFeatures: summaryList(lang.UnstableNames(), bookCfg.LangFeaturesDir),
		LibraryFeatures:  summaryList(lib.UnstableNames(), bookCfg.LibFeaturesDir),
	}

	summaryPath := filepath.Join(destDir, "SUMMARY.md")
	var buf bytes.Buffer
	if err := summaryTpl.Execute(&buf, ctx); err != nil {
		return fmt.Errorf("%w: %w", berrors.ErrSummaryWriteFailed, err)
	}
	if err := os.WriteFile(summaryPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", berrors.ErrSummaryWriteFailed, summaryPath, err)
	}

	slog.Info("Rendered summary", logfields.Path(summaryPath))
	return nil
}

// summaryList renders one line per name: an indented markdown link labelled
// with the feature name pointing at dir/<name-with-dashes>.md. An empty set
// renders as the empty string so the section body stays blank, not omitted.
func summaryList(names sets.Set[string], dir string) string {
	sorted := names.Values()
	sort.Strings(sorted)

	var buf bytes.Buffer
	for _, name := range sorted {
		fmt.Fprintf(&buf, "    - [%s](%s/%s)\n", name, dir, FileNameForFeature(name))
	}
	return buf.String()
}
