package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldMonth     = "month"
	FieldDate      = "date"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentExpense = "expense"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpInit      = "init"
	OpAppend    = "append"
	OpList      = "list"
	OpSummarize = "summarize"
	OpHighest   = "highest"
	OpExport    = "export"
	OpPublish   = "publish"
)
