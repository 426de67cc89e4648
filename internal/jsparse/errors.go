package jsparse

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrNoCGO is returned when parsing is unavailable due to missing CGO.
var ErrNoCGO = errors.New("parsing requires CGO (tree-sitter)")

// ErrUnsupportedLanguage is matched by every UnsupportedLanguageError.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// UnsupportedLanguageError reports a language name the parser has no grammar for.
type UnsupportedLanguageError struct {
	Name string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %q", e.Name)
}

// Is makes errors.Is(err, ErrUnsupportedLanguage) hold.
func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// SyntaxError reports source text that does not parse under the grammar, or
// that breaks an early-error rule of the language (Reason is set then).
// Line and Column are 1-based and point at the first offending token.
type SyntaxError struct {
	Language Language `json:"language" yaml:"language" toml:"language"`
	Line     int      `json:"line" yaml:"line" toml:"line"`
	Column   int      `json:"column" yaml:"column" toml:"column"`
	Near     string   `json:"near,omitempty" yaml:"near,omitempty" toml:"near,omitempty"`
	Missing  bool     `json:"missing,omitempty" yaml:"missing,omitempty" toml:"missing,omitempty"`
	Reason   string   `json:"reason,omitempty" yaml:"reason,omitempty" toml:"reason,omitempty"`
}

func (e *SyntaxError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("syntax error (%d:%d): %s", e.Line, e.Column, e.Reason)
	}
	if e.Missing {
		return fmt.Sprintf("syntax error (%d:%d): missing %s", e.Line, e.Column, e.Near)
	}
	if e.Near == "" {
		return fmt.Sprintf("syntax error (%d:%d)", e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error (%d:%d): unexpected %q", e.Line, e.Column, e.Near)
}

// truncateNear cuts s to at most limit bytes without splitting a UTF-8 sequence.
func truncateNear(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := limit
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
