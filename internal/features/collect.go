package features

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/bookgen/internal/config"
	ferrors "git.home.luguber.info/inful/bookgen/internal/features/errors"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
)

// gateLineRe matches one feature-gate declaration, e.g.
//
//	(active, non_ascii_idents, "1.0.0", Some(28979)),
//	(accepted, associated_types, "1.0.0", None),
var gateLineRe = regexp.MustCompile(`^\s*\((active|accepted|removed),\s*([A-Za-z0-9_]+),\s*"([^"]+)",\s*(?:None|Some\((\d+)\))\),?`)

// Stability attribute forms scanned in library sources:
//
//	#[unstable(feature = "ip", reason = "...", issue = "27709")]
//	#![stable(feature = "rust1", since = "1.0.0")]
var (
	unstableAttrRe = regexp.MustCompile(`#!?\[unstable\(([^)]*)\)`)
	stableAttrRe   = regexp.MustCompile(`#!?\[stable\(([^)]*)\)`)
	featureArgRe   = regexp.MustCompile(`feature\s*=\s*"([^"]+)"`)
	issueArgRe     = regexp.MustCompile(`issue\s*=\s*"(\d+)"`)
	sinceArgRe     = regexp.MustCompile(`since\s*=\s*"([^"]+)"`)
)

// CollectLangFeatures parses the language feature-gate declarations file
// under root into a registry. Duplicate declarations are an error: the gate
// file is the single source of truth for language feature names.
func CollectLangFeatures(root string, cfg config.FeaturesConfig) (Registry, error) {
	gatePath := filepath.Join(root, cfg.GateFile)
	file, err := os.Open(gatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ferrors.ErrGateFileUnreadable, gatePath, err)
	}
	defer file.Close()

	registry := Registry{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		m := gateLineRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		name := m[2]
		if _, exists := registry[name]; exists {
			return nil, fmt.Errorf("%w: %s in %s", ferrors.ErrDuplicateFeature, name, gatePath)
		}
		issue := 0
		if m[4] != "" {
			issue, _ = strconv.Atoi(m[4])
		}
		registry[name] = Feature{
			Name:          name,
			Stability:     stabilityForGateStatus(m[1]),
			Since:         m[3],
			TrackingIssue: issue,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ferrors.ErrGateFileUnreadable, gatePath, err)
	}

	slog.Debug("Collected language features", logfields.Count(len(registry)), logfields.Path(gatePath))
	return registry, nil
}

func stabilityForGateStatus(status string) Stability {
	switch status {
	case "active":
		return Unstable
	case "removed":
		return Removed
	default:
		return Stable
	}
}

// CollectLibFeatures scans the configured library roots under root for
// stability attributes and builds the library feature registry. Names already
// declared as language features are skipped so each feature is owned by
// exactly one registry. Roots absent from the tree are skipped, not errors.
func CollectLibFeatures(root string, cfg config.FeaturesConfig, lang Registry) (Registry, error) {
	registry := Registry{}

	for _, libRoot := range cfg.LibRoots {
		scanRoot := filepath.Join(root, libRoot)
		if _, err := os.Stat(scanRoot); os.IsNotExist(err) {
			slog.Debug("Library root not present, skipping", logfields.Path(scanRoot))
			continue
		}

		err := filepath.Walk(scanRoot, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				// Test suites declare throwaway feature gates; they never get book sections.
				if name := info.Name(); name == "test" || name == "tests" {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, cfg.SourceExt) {
				return nil
			}
			return collectLibFeaturesFromFile(path, registry, lang)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ferrors.ErrLibScanFailed, scanRoot, err)
		}
	}

	slog.Debug("Collected library features", logfields.Count(len(registry)))
	return registry, nil
}

func collectLibFeaturesFromFile(path string, registry Registry, lang Registry) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if m := unstableAttrRe.FindStringSubmatch(line); m != nil {
			mergeLibFeature(registry, lang, parseAttrArgs(m[1], Unstable))
		} else if m := stableAttrRe.FindStringSubmatch(line); m != nil {
			mergeLibFeature(registry, lang, parseAttrArgs(m[1], Stable))
		}
	}
	return scanner.Err()
}

func parseAttrArgs(args string, stability Stability) Feature {
	f := Feature{Stability: stability}
	if m := featureArgRe.FindStringSubmatch(args); m != nil {
		f.Name = m[1]
	}
	if m := issueArgRe.FindStringSubmatch(args); m != nil {
		f.TrackingIssue, _ = strconv.Atoi(m[1])
	}
	if m := sinceArgRe.FindStringSubmatch(args); m != nil {
		f.Since = m[1]
	}
	return f
}

// mergeLibFeature folds one attribute occurrence into the registry. The same
// library feature name legitimately appears on many items, so duplicates are
// merged rather than rejected: stable wins over unstable, and an unstable
// occurrence contributes its tracking issue to an issue-less earlier one.
func mergeLibFeature(registry Registry, lang Registry, f Feature) {
	if f.Name == "" {
		return
	}
	if _, isLang := lang[f.Name]; isLang {
		return
	}

	existing, seen := registry[f.Name]
	if !seen {
		registry[f.Name] = f
		return
	}
	if existing.Stability == Stable {
		return
	}
	if f.Stability == Stable {
		registry[f.Name] = f
		return
	}
	if existing.TrackingIssue <= 0 && f.TrackingIssue > 0 {
		existing.TrackingIssue = f.TrackingIssue
		registry[f.Name] = existing
	}
}
