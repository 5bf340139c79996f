package features

import (
	"git.home.luguber.info/inful/bookgen/internal/util/sets"
)

// Stability of a declared feature.
type Stability string

const (
	Unstable Stability = "unstable"
	Stable   Stability = "stable"
	Removed  Stability = "removed"
)

// Feature is one declared feature gate. Immutable once collected.
type Feature struct {
	Name      string
	Stability Stability
	Since     string
	// TrackingIssue is the issue number tracking stabilization.
	// Zero or negative means the feature has no tracking issue.
	TrackingIssue int
}

// HasTrackingIssue reports whether the feature carries a usable tracking issue.
func (f Feature) HasTrackingIssue() bool { return f.TrackingIssue > 0 }

// Registry maps feature names to their declarations. One registry exists for
// language features and one for library features; names are unique within
// each. Built once per run, read-only afterward.
type Registry map[string]Feature

// UnstableNames returns the names of all unstable features in the registry.
func (r Registry) UnstableNames() sets.Set[string] {
	names := sets.New[string]()
	for name, f := range r {
		if f.Stability == Unstable {
			names.Add(name)
		}
	}
	return names
}
