package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBlockType  = "block_type"
	KeyGenerator  = "generator"
	KeyDocumentID = "document_id"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyDiagnostic = "diagnostic"
	KeyBlocks     = "blocks"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BlockType(t string) slog.Attr    { return slog.String(KeyBlockType, t) }
func Generator(ref string) slog.Attr  { return slog.String(KeyGenerator, ref) }
func DocumentID(id string) slog.Attr  { return slog.String(KeyDocumentID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Diagnostic(msg string) slog.Attr { return slog.String(KeyDiagnostic, msg) }
func Blocks(n int) slog.Attr          { return slog.Int(KeyBlocks, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
