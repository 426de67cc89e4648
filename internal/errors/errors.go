package errors

import (
	"context"
	stderrors "errors"
	"fmt"

	"jscore/internal/config"
	"jscore/internal/input"
	"jscore/internal/jsparse"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// SyntaxError indicates the source does not parse
	SyntaxError ErrorCode = "SYNTAX_ERROR"
	// UnsupportedLanguage indicates no grammar for the requested language
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// InputUnreadable indicates the source could not be read or decompressed
	InputUnreadable ErrorCode = "INPUT_UNREADABLE"
	// InputTooLarge indicates the source exceeds the configured size limit
	InputTooLarge ErrorCode = "INPUT_TOO_LARGE"
	// ParserUnavailable indicates a build without tree-sitter support
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// ConfigInvalid indicates a configuration file or value was rejected
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// FixtureMismatch indicates a fixture suite case scored unexpectedly
	FixtureMismatch ErrorCode = "FIXTURE_MISMATCH"
	// InvalidArgument indicates a bad command line argument or flag
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// Timeout indicates the operation ran out of time
	Timeout ErrorCode = "TIMEOUT"
	// Canceled indicates the run was interrupted, e.g. by Ctrl-C
	Canceled ErrorCode = "CANCELED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction is a suggested next step for an error.
type FixAction struct {
	Command     string `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// JscoreError is an error with a stable code, as reported by the CLI.
type JscoreError struct {
	Code           ErrorCode   `json:"code" yaml:"code" toml:"code"`
	Message        string      `json:"message" yaml:"message" toml:"message"`
	Details        interface{} `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty" yaml:"suggestedFixes,omitempty" toml:"suggestedFixes,omitempty"`
	cause          error
}

// New creates a JscoreError carrying the default suggestions for its code.
func New(code ErrorCode, message string, cause error) *JscoreError {
	return &JscoreError{
		Code:           code,
		Message:        message,
		SuggestedFixes: GetSuggestedFixes(code),
		cause:          cause,
	}
}

// Error implements the error interface
func (e *JscoreError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *JscoreError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *JscoreError) WithDetails(details interface{}) *JscoreError {
	e.Details = details
	return e
}

// ExitCode is the process exit status for the error.
func (e *JscoreError) ExitCode() int {
	if e.Code == SyntaxError {
		return 2
	}
	return 1
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	UnsupportedLanguage: {
		{Command: "jscore score --lang=javascript", Description: "Pick one of javascript, typescript or tsx"},
	},
	ParserUnavailable: {
		{Command: "CGO_ENABLED=1 go install ./cmd/jscore", Description: "Rebuild with CGO enabled"},
	},
	InputTooLarge: {
		{Command: "jscore config show", Description: "Check input.maxFileSizeBytes"},
	},
	InvalidArgument: {
		{Command: "jscore help", Description: "Show usage"},
	},
	ConfigInvalid: {
		{Command: "jscore config init --force", Description: "Write a fresh default configuration"},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	return ErrorActions[code]
}

// Classify converts err into a JscoreError. Errors that already are one are
// returned as is; nil stays nil.
func Classify(err error) *JscoreError {
	if err == nil {
		return nil
	}

	var jerr *JscoreError
	if stderrors.As(err, &jerr) {
		return jerr
	}

	var serr *jsparse.SyntaxError
	var cerr *config.ConfigError
	switch {
	case stderrors.As(err, &serr):
		return New(SyntaxError, "source does not parse", err).WithDetails(serr)
	case stderrors.Is(err, jsparse.ErrUnsupportedLanguage):
		return New(UnsupportedLanguage, "language not supported", err)
	case stderrors.Is(err, jsparse.ErrNoCGO):
		return New(ParserUnavailable, "parser not available in this build", err)
	case stderrors.Is(err, input.ErrTooLarge):
		return New(InputTooLarge, "input exceeds size limit", err)
	case stderrors.Is(err, input.ErrUnknownLanguage):
		return New(UnsupportedLanguage, "cannot detect language", err)
	case stderrors.As(err, &cerr):
		return New(ConfigInvalid, "invalid configuration", err).WithDetails(cerr)
	case stderrors.Is(err, context.DeadlineExceeded):
		return New(Timeout, "operation did not complete in time", err)
	case stderrors.Is(err, context.Canceled):
		return New(Canceled, "operation was cancelled", err)
	}
	return New(InternalError, "unexpected error", err)
}
