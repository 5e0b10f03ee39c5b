package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldBackend    = "backend"
	FieldCategory   = "category"
	FieldPeriod     = "period"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldCurrency   = "currency"
	FieldSymbol     = "symbol"
	FieldReportKind = "report_kind"
	FieldReportID   = "report_id"
	FieldRowCount   = "row_count"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentSource  = "source"
	ComponentMarket  = "market"
	ComponentReports = "reports"
	ComponentArchive = "archive"
	ComponentSink    = "sink"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
)
