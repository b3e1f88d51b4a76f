package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldWindow      = "window"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldBudget      = "budget_status"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentSession = "session"
	ComponentStore   = "store"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
)
