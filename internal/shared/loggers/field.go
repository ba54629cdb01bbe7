package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldProject     = "project"
	FieldWindow      = "window"
	FieldBatchID     = "batch_id"
	FieldRecordCount = "record_count"
	FieldCacheKey    = "cache_key"

	FieldPartitionId = "partition_id"
)
