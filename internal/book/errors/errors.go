package errors

// Package errors provides sentinel errors for book generation stages.
// These enable consistent classification while keeping user-facing
// messages descriptive via wrapping.

import "errors"

var (
	// ErrSectionScanFailed indicates listing a section directory failed.
	ErrSectionScanFailed = errors.New("section directory scan failed")
	// ErrOutputDirCreateFailed indicates creating an output directory failed.
	ErrOutputDirCreateFailed = errors.New("output directory create failed")
	// ErrStubWriteFailed indicates rendering or writing a stub page failed.
	ErrStubWriteFailed = errors.New("stub page write failed")
	// ErrSummaryWriteFailed indicates rendering or writing SUMMARY.md failed.
	ErrSummaryWriteFailed = errors.New("summary write failed")
	// ErrUnknownFeature indicates a missing-set name had no registry entry.
	// The missing set is derived from the registry, so this is an internal
	// consistency failure, never skipped silently.
	ErrUnknownFeature = errors.New("feature not present in registry")
)
