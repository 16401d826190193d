package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrTable     = "table"
	AttrKind      = "kind"
	AttrTruncated = "truncated"
)
