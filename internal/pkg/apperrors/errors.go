package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for status mapping and user guidance.
type Kind string

const (
	KindConfiguration        Kind = "configuration"
	KindValidation           Kind = "validation"
	KindAuthentication       Kind = "authentication"
	KindPermission           Kind = "permission_denied"
	KindNotFound             Kind = "not_found"
	KindUnsupportedFormat    Kind = "unsupported_format"
	KindUnsupportedSubFormat Kind = "unsupported_subformat"
	KindParse                Kind = "parse_error"
	KindCorruptedSource      Kind = "corrupted_source"
	KindNoText               Kind = "no_extractable_text"
	KindIO                   Kind = "io_error"
	KindDownload             Kind = "download_error"
	KindGeneration           Kind = "generation_error"
	KindTimeout              Kind = "timeout"
	KindUnknown              Kind = "unknown"
)

// Sentinels usable with errors.Is; every *Error matches the sentinel of its kind.
var (
	ErrConfiguration        = errors.New("configuration error")
	ErrValidationFailed     = errors.New("validation failed")
	ErrAuthentication       = errors.New("authentication failed")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrUnsupportedSubFormat = errors.New("unsupported sub-format")
	ErrParse                = errors.New("parse error")
	ErrCorruptedSource      = errors.New("corrupted source")
	ErrNoText               = errors.New("no extractable text")
	ErrIO                   = errors.New("i/o error")
	ErrDownload             = errors.New("download failed")
	ErrGeneration           = errors.New("generation failed")
	ErrTimeout              = errors.New("timeout")
	ErrUnknown              = errors.New("unknown error")
)

var sentinels = map[Kind]error{
	KindConfiguration:        ErrConfiguration,
	KindValidation:           ErrValidationFailed,
	KindAuthentication:       ErrAuthentication,
	KindPermission:           ErrPermissionDenied,
	KindNotFound:             ErrResourceNotFound,
	KindUnsupportedFormat:    ErrUnsupportedFormat,
	KindUnsupportedSubFormat: ErrUnsupportedSubFormat,
	KindParse:                ErrParse,
	KindCorruptedSource:      ErrCorruptedSource,
	KindNoText:               ErrNoText,
	KindIO:                   ErrIO,
	KindDownload:             ErrDownload,
	KindGeneration:           ErrGeneration,
	KindTimeout:              ErrTimeout,
	KindUnknown:              ErrUnknown,
}

var suggestions = map[Kind]string{
	KindUnsupportedFormat:    "This file type cannot be read. Try exporting it as PDF, DOCX or plain text.",
	KindUnsupportedSubFormat: "This format needs the extraction worker (EXTRACTION_WORKER_COMMAND). Without it, save legacy Office files as DOCX or PPTX.",
	KindParse:                "The file content is malformed. Check that it is valid before uploading.",
	KindCorruptedSource:      "The file appears to be damaged or password protected. Try downloading it again.",
	KindNoText:               "No text was found. Scanned documents need OCR before notes can be generated.",
	KindIO:                   "The file could not be read from disk. Check that it still exists and is readable.",
	KindDownload:             "The file could not be downloaded from Canvas. Check your access to it and retry.",
	KindTimeout:              "The request took too long. Try again, or use a smaller file.",
}

// Error is the typed application error.
type Error struct {
	Kind     Kind
	Message  string
	Status   int
	Resource string
	Scope    string
	Err      error
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap implements errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// HTTPStatus returns the response status for the error.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindConfiguration, KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnsupportedFormat, KindUnsupportedSubFormat:
		return http.StatusUnsupportedMediaType
	case KindParse, KindCorruptedSource, KindNoText:
		return http.StatusUnprocessableEntity
	case KindDownload, KindGeneration:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Suggestion returns user guidance for extraction-time kinds, or "".
func (e *Error) Suggestion() string {
	return suggestions[e.Kind]
}

func newError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NewConfigurationError reports a missing or malformed setting.
func NewConfigurationError(format string, args ...interface{}) *Error {
	return newError(KindConfiguration, nil, format, args...)
}

// NewValidationError reports malformed or empty input.
func NewValidationError(format string, args ...interface{}) *Error {
	return newError(KindValidation, nil, format, args...)
}

func NewAuthenticationError(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// NewPermissionError names the scope the token is missing.
func NewPermissionError(scope string) *Error {
	return &Error{
		Kind:    KindPermission,
		Scope:   scope,
		Message: fmt.Sprintf("insufficient permissions: the token is missing the %s scope", scope),
	}
}

// NewNotFoundError names the requested resource id.
func NewNotFoundError(resource, id string) *Error {
	return &Error{
		Kind:     KindNotFound,
		Resource: id,
		Message:  strings.TrimSpace(resource+" "+id) + " not found",
	}
}

func NewUnsupportedFormatError(mimeType string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Resource: mimeType, Message: fmt.Sprintf("unsupported format: %s", mimeType)}
}

func NewUnsupportedSubFormatError(mimeType, reason string) *Error {
	return &Error{
		Kind:     KindUnsupportedSubFormat,
		Resource: mimeType,
		Message:  fmt.Sprintf("unsupported sub-format %s: %s", mimeType, reason),
	}
}

func NewParseError(err error, format string, args ...interface{}) *Error {
	return newError(KindParse, err, format, args...)
}

func NewCorruptedSourceError(err error, format string, args ...interface{}) *Error {
	return newError(KindCorruptedSource, err, format, args...)
}

func NewNoTextError(filename string) *Error {
	return &Error{Kind: KindNoText, Resource: filename, Message: fmt.Sprintf("no extractable text in %s", filename)}
}

func NewIOError(err error, format string, args ...interface{}) *Error {
	return newError(KindIO, err, format, args...)
}

// NewDownloadError carries the upstream status; statuses below 400 map to 502.
func NewDownloadError(status int, format string, args ...interface{}) *Error {
	e := newError(KindDownload, nil, format, args...)
	if status >= http.StatusBadRequest {
		e.Status = status
	}
	return e
}

// NewGenerationError maps upstream 429 to 429 and everything else to 502.
func NewGenerationError(status int, err error, format string, args ...interface{}) *Error {
	e := newError(KindGeneration, err, format, args...)
	if status == http.StatusTooManyRequests {
		e.Status = status
	}
	return e
}

func NewTimeoutError(err error, format string, args ...interface{}) *Error {
	return newError(KindTimeout, err, format, args...)
}

// NewUnknownError mirrors the upstream status, defaulting to 500.
func NewUnknownError(status int, err error, format string, args ...interface{}) *Error {
	e := newError(KindUnknown, err, format, args...)
	if status >= http.StatusBadRequest {
		e.Status = status
	}
	return e
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err; untyped errors are unknown, deadlines are timeouts.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUnknown
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPStatus()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
