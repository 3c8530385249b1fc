package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyPath        = "path"
	KeyFile        = "file"
	KeyFrom        = "from"
	KeyTo          = "to"
	KeyPackage     = "package"
	KeyCount       = "count"
	KeyPattern     = "pattern"
	KeyDestination = "destination"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func From(p string) slog.Attr         { return slog.String(KeyFrom, p) }
func To(p string) slog.Attr           { return slog.String(KeyTo, p) }
func Package(name string) slog.Attr   { return slog.String(KeyPackage, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Pattern(p string) slog.Attr      { return slog.String(KeyPattern, p) }
func Destination(d string) slog.Attr  { return slog.String(KeyDestination, d) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
