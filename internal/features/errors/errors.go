package errors

// Package errors provides sentinel errors for feature collection.
// These enable consistent classification while keeping user-facing
// messages descriptive via wrapping.

import "errors"

var (
	// ErrGateFileUnreadable indicates the feature-gate declarations file could not be read.
	ErrGateFileUnreadable = errors.New("feature gate file unreadable")
	// ErrDuplicateFeature indicates the same feature name was declared twice in one registry.
	ErrDuplicateFeature = errors.New("duplicate feature declaration")
	// ErrLibScanFailed indicates walking a library root for stability attributes failed.
	ErrLibScanFailed = errors.New("library feature scan failed")
)
