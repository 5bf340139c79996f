package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFeature  = "feature"
	KeySection  = "section"
	KeyRegistry = "registry"
	KeyPath     = "path"
	KeyCount    = "count"
	KeyRunID    = "run_id"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Feature(name string) slog.Attr { return slog.String(KeyFeature, name) }
func Section(s string) slog.Attr    { return slog.String(KeySection, s) }
func Registry(r string) slog.Attr   { return slog.String(KeyRegistry, r) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
