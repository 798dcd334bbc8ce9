package errors

import "net/http"

// ErrorCode is a string identifier for a specific error condition.  Codes are
// grouped by module prefix (COMMON, VOC, MOL, GRP, REG, DAT).
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeStorageError       ErrorCode = "COMMON_012"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Sentinel codes without a module.
const (
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Vocabulary Module Error Codes
const (
	ErrCodeVocabularyNotFound ErrorCode = "VOC_001"
	ErrCodeVocabularyExists   ErrorCode = "VOC_002"
	ErrCodeVocabularyInvalid  ErrorCode = "VOC_003"
)

// Molecule Module Error Codes
const (
	ErrCodeUnknownAtomType ErrorCode = "MOL_001"
	ErrCodeUnknownBondType ErrorCode = "MOL_002"
	ErrCodeUnknownElement  ErrorCode = "MOL_003"
	ErrCodeInvalidBond     ErrorCode = "MOL_004"
)

// Graph Module Error Codes
const (
	ErrCodeFeatureDecodeFailed ErrorCode = "GRP_001"
	// ErrCodeNodeNotVisited marks an edge whose endpoint has no assigned atom.
	ErrCodeNodeNotVisited ErrorCode = "GRP_002"
	ErrCodeInvalidGraph   ErrorCode = "GRP_003"
)

// Register Module Error Codes
const (
	ErrCodeRegisterInvalid ErrorCode = "REG_001"
)

// Dataset Module Error Codes
const (
	ErrCodeDatasetLoadFailed        ErrorCode = "DAT_001"
	ErrCodeDatasetFormatUnsupported ErrorCode = "DAT_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeVocabularyNotFound: http.StatusNotFound,
	ErrCodeVocabularyExists:   http.StatusConflict,
	ErrCodeVocabularyInvalid:  http.StatusBadRequest,

	ErrCodeUnknownAtomType: http.StatusUnprocessableEntity,
	ErrCodeUnknownBondType: http.StatusUnprocessableEntity,
	ErrCodeUnknownElement:  http.StatusUnprocessableEntity,
	ErrCodeInvalidBond:     http.StatusUnprocessableEntity,

	ErrCodeFeatureDecodeFailed: http.StatusUnprocessableEntity,
	ErrCodeNodeNotVisited:      http.StatusUnprocessableEntity,
	ErrCodeInvalidGraph:        http.StatusBadRequest,

	ErrCodeRegisterInvalid: http.StatusBadRequest,

	ErrCodeDatasetLoadFailed:        http.StatusInternalServerError,
	ErrCodeDatasetFormatUnsupported: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeStorageError:       "storage error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeVocabularyNotFound: "vocabulary not found",
	ErrCodeVocabularyExists:   "vocabulary already registered",
	ErrCodeVocabularyInvalid:  "invalid vocabulary",

	ErrCodeUnknownAtomType: "atom code not in vocabulary",
	ErrCodeUnknownBondType: "bond type not implemented",
	ErrCodeUnknownElement:  "unknown element symbol",
	ErrCodeInvalidBond:     "invalid bond",

	ErrCodeFeatureDecodeFailed: "failed to decode feature vector",
	ErrCodeNodeNotVisited:      "edge references a node without an atom",
	ErrCodeInvalidGraph:        "invalid graph",

	ErrCodeRegisterInvalid: "invalid coordinate register",

	ErrCodeDatasetLoadFailed:        "failed to load dataset",
	ErrCodeDatasetFormatUnsupported: "unsupported dataset format",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

//Personal.AI order the ending
