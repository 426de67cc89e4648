// Package input reads source text for scoring from files, compressed files
// or standard input.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"jscore/internal/jsparse"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

var (
	// ErrTooLarge is returned when the (decompressed) input exceeds the limit.
	ErrTooLarge = errors.New("input too large")

	// ErrUnknownLanguage is returned when no language was given and none
	// can be detected from the path.
	ErrUnknownLanguage = errors.New("cannot determine source language")
)

// Source is loaded source text.
type Source struct {
	Path  string
	Bytes []byte

	// Language is detected from Path; Detected is false when the extension
	// is not recognized or the source came from stdin.
	Language jsparse.Language
	Detected bool
}

// Load reads path, or stdin when path is "-". Files ending in .gz or .zst are
// decompressed. A positive maxBytes limits the decompressed size.
func Load(path string, maxBytes int64) (*Source, error) {
	if path == Stdin {
		return Read(os.Stdin, Stdin, maxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	return Read(f, path, maxBytes)
}

// Read loads source text from r. name selects decompression and language
// detection the same way a file path does.
func Read(r io.Reader, name string, maxBytes int64) (*Source, error) {
	rc, err := decoder(r, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := readLimited(rc, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	src := &Source{Path: name, Bytes: data}
	if name != Stdin {
		src.Language, src.Detected = jsparse.LanguageFromPath(name)
	}
	return src, nil
}

// ResolveLanguage picks the language to parse with: an explicit override,
// then the detected language, then fallback.
func (s *Source) ResolveLanguage(override, fallback string) (jsparse.Language, error) {
	switch {
	case override != "":
		return jsparse.ParseLanguage(override)
	case s.Detected:
		return s.Language, nil
	case fallback != "":
		return jsparse.ParseLanguage(fallback)
	}
	return "", fmt.Errorf("%s: %w", s.Path, ErrUnknownLanguage)
}

func decoder(r io.Reader, name string) (io.ReadCloser, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create gzip decoder: %w", err)
		}
		return zr, nil
	case strings.HasSuffix(lower, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		return zr.IOReadCloser(), nil
	}
	return io.NopCloser(r), nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if n > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	return buf.Bytes(), nil
}
