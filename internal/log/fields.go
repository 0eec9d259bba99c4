package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldExpenseID  = "expense_id"
	FieldPaidBy     = "paid_by"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldView       = "view"
	FieldBackendURL = "backend_url"
)

// Components defines standard component names
const (
	ComponentApp  = "app"
	ComponentHTTP = "http"
	ComponentAPI  = "api"
)

// Operations defines standard operation names
const (
	OpList     = "list"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpOverall = "overall_stats"
	OpMonthly = "monthly_breakdown"
)
