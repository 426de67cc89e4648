package input

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"jscore/internal/jsparse"
)

const sample = "if (a) { b; } else { c; }\n"

func TestLoad_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.ts")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(src.Bytes) != sample {
		t.Errorf("Bytes = %q, want %q", src.Bytes, sample)
	}
	if !src.Detected || src.Language != jsparse.LangTypeScript {
		t.Errorf("Language = %q (detected %v), want typescript", src.Language, src.Detected)
	}
}

func TestLoad_Compressed(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write([]byte(sample))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	var zst bytes.Buffer
	enc, err := zstd.NewWriter(&zst)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = enc.Write([]byte(sample))
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		lang jsparse.Language
	}{
		{"bundle.js.gz", gz.Bytes(), jsparse.LangJavaScript},
		{"view.tsx.zst", zst.Bytes(), jsparse.LangTSX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, tt.data, 0o644); err != nil {
				t.Fatal(err)
			}

			src, err := Load(path, 1024)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if string(src.Bytes) != sample {
				t.Errorf("Bytes = %q, want %q", src.Bytes, sample)
			}
			if src.Language != tt.lang {
				t.Errorf("Language = %q, want %q", src.Language, tt.lang)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.js"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestRead_Limit(t *testing.T) {
	tests := []struct {
		name    string
		max     int64
		wantErr bool
	}{
		{"unlimited", 0, false},
		{"exact", int64(len(sample)), false},
		{"one short", int64(len(sample)) - 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(sample), "a.js", tt.max)
			if tt.wantErr != errors.Is(err, ErrTooLarge) {
				t.Errorf("error = %v, want ErrTooLarge: %v", err, tt.wantErr)
			}
		})
	}
}

func TestRead_LimitAppliesAfterDecompression(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write(bytes.Repeat([]byte("a;"), 4096))
	_ = zw.Close()

	_, err := Read(&gz, "big.js.gz", 1024)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}

func TestRead_CorruptArchive(t *testing.T) {
	_, err := Read(strings.NewReader("not gzip"), "a.js.gz", 0)
	if err == nil {
		t.Error("expected error for corrupt gzip input")
	}
}

func TestRead_Stdin(t *testing.T) {
	src, err := Read(strings.NewReader(sample), Stdin, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if src.Detected {
		t.Error("stdin should not detect a language")
	}
}

func TestSource_ResolveLanguage(t *testing.T) {
	detected := &Source{Path: "a.tsx", Language: jsparse.LangTSX, Detected: true}
	unknown := &Source{Path: "-"}

	tests := []struct {
		name     string
		src      *Source
		override string
		fallback string
		want     jsparse.Language
		wantErr  error
	}{
		{"override wins", detected, "js", "typescript", jsparse.LangJavaScript, nil},
		{"detected", detected, "", "typescript", jsparse.LangTSX, nil},
		{"fallback", unknown, "", "typescript", jsparse.LangTypeScript, nil},
		{"bad override", detected, "cobol", "", "", jsparse.ErrUnsupportedLanguage},
		{"nothing", unknown, "", "", "", ErrUnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.src.ResolveLanguage(tt.override, tt.fallback)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}
