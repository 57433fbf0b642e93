package logging

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldCode      = "code"

	// Actor
	FieldLoginID = "login_id"

	// Client-side
	FieldPage    = "page"
	FieldEntryID = "entry_id"
	FieldStore   = "token_store"
)
