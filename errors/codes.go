package errors

// ErrorCode identifies an application error independently of its HTTP status
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_VALIDATION_FAILED
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_JOB_NOT_COMPLETED
	ErrorCode_JOB_INVALID_STATE
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:           "HTTP_OK",
	ErrorCode_INTERNAL:          "INTERNAL",
	ErrorCode_INVALID_PAYLOAD:   "INVALID_PAYLOAD",
	ErrorCode_VALIDATION_FAILED: "VALIDATION_FAILED",
	ErrorCode_NOT_FOUND:         "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:    "ALREADY_EXISTS",
	ErrorCode_JOB_NOT_COMPLETED: "JOB_NOT_COMPLETED",
	ErrorCode_JOB_INVALID_STATE: "JOB_INVALID_STATE",
}

// String returns the code's name, e.g. "NOT_FOUND"
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON bodies and logs
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
