// Package jsparse turns ECMAScript-family source text into ESTree-shaped
// trees using tree-sitter.
package jsparse

import (
	"path/filepath"
	"strings"
)

// Language represents a supported source dialect.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// LoweringVersion identifies how concrete syntax trees map onto ESTree nodes.
// Bump it whenever a node starts lowering to a different shape, since scores
// computed from the old shape are stale.
const LoweringVersion = 2

// Languages lists every supported dialect.
var Languages = []Language{LangJavaScript, LangTypeScript, LangTSX}

// LanguageFromExtension returns the Language for a file extension.
func LanguageFromExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case ".js", ".mjs", ".cjs":
		return LangJavaScript, true
	case ".jsx":
		return LangJavaScript, true // JSX uses JS parser
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	default:
		return "", false
	}
}

// LanguageFromPath detects the Language of a path, looking through a
// trailing .gz or .zst compression suffix.
func LanguageFromPath(path string) (Language, bool) {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".gz", ".zst":
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return LanguageFromExtension(filepath.Ext(base))
}

// ParseLanguage parses a user-supplied language name. Short aliases such as
// "js" and "ts" are accepted.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "javascript", "js", "jsx", "ecmascript":
		return LangJavaScript, nil
	case "typescript", "ts":
		return LangTypeScript, nil
	case "tsx":
		return LangTSX, nil
	default:
		return "", &UnsupportedLanguageError{Name: s}
	}
}
