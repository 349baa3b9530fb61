package domain

import (
	"errors"
	"fmt"
)

// Category sentinels. Use with NewSubSystemError for subsystem-specific errors.
var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrDuplicate    = fmt.Errorf("duplicate")
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrRateLimit    = fmt.Errorf("rate limit exceeded")
)

// Sentinel errors for the domain layer.
var (
	// ErrEmptyTarget is returned when a render is attempted without a target domain.
	// Presentation layers turn it into a prompt rather than a failure.
	ErrEmptyTarget = fmt.Errorf("target domain is empty")

	ErrCatalogInvalid   = fmt.Errorf("catalog invalid")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrConfigLoad       = fmt.Errorf("failed to load configuration")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op        string // operation name (e.g., "Renderer.Render")
	Err       error  // underlying sentinel or wrapped error
	Detail    string // human-readable detail
	SubSystem string // subsystem identifier (e.g., "catalog"); used for ErrorCode dispatch
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// NewSubSystemError creates a DomainError tagged with a subsystem for ErrorCode dispatch.
func NewSubSystemError(subsystem, op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail, SubSystem: subsystem}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ErrorCode is a machine-parseable error category returned by the JSON API.
type ErrorCode string

const (
	CodeUnknown         ErrorCode = "UNKNOWN"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeDuplicate       ErrorCode = "DUPLICATE"
	CodeInvalidInput    ErrorCode = "INVALID_INPUT"
	CodeRateLimit       ErrorCode = "RATE_LIMIT"
	CodeEmptyTarget     ErrorCode = "EMPTY_TARGET"
	CodeCatalogInvalid  ErrorCode = "CATALOG_INVALID"
	CodeCategoryMissing ErrorCode = "CATEGORY_NOT_FOUND"
	CodeConfigLoad      ErrorCode = "CONFIG_LOAD"

	// Subsystem-specific codes resolved through subSystemCodeMap.
	CodeCatalogDuplicate ErrorCode = "CATALOG_DUPLICATE_ID"
	CodeDorkNotFound     ErrorCode = "DORK_NOT_FOUND"
)

// errorCodeMap maps sentinel errors to their machine-parseable codes.
var errorCodeMap = map[error]ErrorCode{
	ErrNotFound:         CodeNotFound,
	ErrDuplicate:        CodeDuplicate,
	ErrInvalidInput:     CodeInvalidInput,
	ErrRateLimit:        CodeRateLimit,
	ErrEmptyTarget:      CodeEmptyTarget,
	ErrCatalogInvalid:   CodeCatalogInvalid,
	ErrCategoryNotFound: CodeCategoryMissing,
	ErrConfigLoad:       CodeConfigLoad,
}

// subSystemCodeMap maps (category sentinel, subsystem) pairs to specific ErrorCodes.
var subSystemCodeMap = map[error]map[string]ErrorCode{
	ErrNotFound: {
		"category": CodeCategoryMissing,
		"dork":     CodeDorkNotFound,
	},
	ErrDuplicate: {
		"catalog": CodeCatalogDuplicate,
	},
}

// ErrorCodeOf returns the machine-parseable error code for the given error.
// It unwraps DomainError and uses errors.Is to match sentinel errors.
// Returns CodeUnknown if no matching sentinel is found.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	if code, ok := errorCodeMap[err]; ok {
		return code
	}

	var de *DomainError
	if errors.As(err, &de) {
		if code := de.Code(); code != CodeUnknown {
			return code
		}
	}

	for sentinel, code := range errorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	return CodeUnknown
}

// Code returns the ErrorCode for this DomainError's underlying sentinel.
// If SubSystem is set, checks the subSystemCodeMap for a specific code.
func (e *DomainError) Code() ErrorCode {
	if e.SubSystem != "" {
		if subsysMap, ok := subSystemCodeMap[e.Err]; ok {
			if code, ok := subsysMap[e.SubSystem]; ok {
				return code
			}
		}
	}
	if code, ok := errorCodeMap[e.Err]; ok {
		return code
	}
	return CodeUnknown
}
