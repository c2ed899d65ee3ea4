package errors

// ErrorCode identifies the closed set of error variants callers can branch on.
type ErrorCode int32

const (
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002

	ErrorCode_INVALID_JSON       ErrorCode = 2000
	ErrorCode_MISSING_AUDIO_FILE ErrorCode = 2001

	ErrorCode_TRANSCRIPTION_FAILED          ErrorCode = 3000
	ErrorCode_AUTH_FAILED                   ErrorCode = 3001
	ErrorCode_GENERATION_FAILED             ErrorCode = 3002
	ErrorCode_PARTICIPANT_GENERATION_FAILED ErrorCode = 3003

	ErrorCode_PROVIDER_CONNECTION ErrorCode = 4000
	ErrorCode_PROVIDER_TIMEOUT    ErrorCode = 4001
	ErrorCode_PROVIDER_TRANSPORT  ErrorCode = 4002

	ErrorCode_HTTP_OK ErrorCode = 200
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                      "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:              "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                     "NOT_FOUND",
	ErrorCode_INVALID_JSON:                  "INVALID_JSON",
	ErrorCode_MISSING_AUDIO_FILE:            "MISSING_AUDIO_FILE",
	ErrorCode_TRANSCRIPTION_FAILED:          "TRANSCRIPTION_FAILED",
	ErrorCode_AUTH_FAILED:                   "AUTH_FAILED",
	ErrorCode_GENERATION_FAILED:             "GENERATION_FAILED",
	ErrorCode_PARTICIPANT_GENERATION_FAILED: "PARTICIPANT_GENERATION_FAILED",
	ErrorCode_PROVIDER_CONNECTION:           "PROVIDER_CONNECTION",
	ErrorCode_PROVIDER_TIMEOUT:              "PROVIDER_TIMEOUT",
	ErrorCode_PROVIDER_TRANSPORT:            "PROVIDER_TRANSPORT",
	ErrorCode_HTTP_OK:                       "HTTP_OK",
}

// String returns the symbolic name for the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
