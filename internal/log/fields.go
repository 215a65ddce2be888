package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldEntity    = "entity"
	FieldCount     = "count"
	FieldReport    = "report"
	FieldBackend   = "backend"
)

// Standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStore     = "store"
	ComponentAnalytics = "analytics"
	ComponentExport    = "export"
)
