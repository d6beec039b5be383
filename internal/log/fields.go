package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldClientIP     = "client_ip"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldQuery        = "query"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldUserAgent    = "user_agent"
	FieldSuccess      = "success"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldScreen       = "screen"
	FieldFilterType   = "filter_type"
	FieldSearch       = "search"
	FieldResultCount  = "result_count"
	FieldBackend      = "backend"
	FieldExportFormat = "export_format"
	FieldExportPath   = "export_path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentService  = "finance_service"
	ComponentStorage  = "storage"
	ComponentBackend  = "backend"
	ComponentCache    = "cache"
	ComponentCLI      = "cli"
	ComponentExport   = "export"
	ComponentSecurity = "security"
)

// Operations defines standard operation names
const (
	OpList     = "list"
	OpLoad     = "load"
	OpMigrate  = "migrate"
	OpRender   = "render"
	OpExport   = "export"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError adds the error message; nil errors are skipped.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithScreen adds the screen name and, when set, the transaction filter.
func (f LogFields) WithScreen(screen, filterType, search string) LogFields {
	f[FieldScreen] = screen
	if filterType != "" {
		f[FieldFilterType] = filterType
	}
	if search != "" {
		f[FieldSearch] = search
	}
	return f
}

func (f LogFields) WithExport(format, path string) LogFields {
	f[FieldExportFormat] = format
	f[FieldExportPath] = path
	return f
}

func (f LogFields) WithHTTPRequest(method, path, query, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	if userAgent != "" {
		f[FieldUserAgent] = userAgent
	}
	return f
}

func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
	return f
}

// ToSlice converts LogFields to slog key/value pairs. The component is
// left out since Logger adds it.
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		if k == FieldComponent {
			continue
		}
		slice = append(slice, k, v)
	}
	return slice
}
