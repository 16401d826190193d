package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldTable      = "table"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldDatabase   = "database"
)
