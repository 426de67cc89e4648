package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	jserrors "jscore/internal/errors"
	"jscore/internal/output"
	"jscore/internal/slogutil"
)

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level flag variables.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)
	state = runState{logger: slogutil.NewDiscardLogger()}

	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(stdout, "jscore version ") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--format", "json")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	var info map[string]string
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if info["version"] == "" || info["goVersion"] == "" {
		t.Errorf("version info = %v", info)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jscore.toml")

	code, stdout, stderr := runCLI(t, "config", "init", "--config", path)
	if code != 0 {
		t.Fatalf("init exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Wrote "+path) {
		t.Errorf("stdout = %q", stdout)
	}

	code, _, stderr = runCLI(t, "config", "init", "--config", path)
	if code != 1 || !strings.Contains(stderr, string(jserrors.InvalidArgument)) {
		t.Errorf("second init: code = %d, stderr = %q", code, stderr)
	}

	code, _, stderr = runCLI(t, "config", "init", "--config", path, "--force")
	if code != 0 {
		t.Errorf("init --force exit code = %d, stderr: %s", code, stderr)
	}

	code, stdout, stderr = runCLI(t, "config", "show", "--config", path, "--format", "json")
	if code != 0 {
		t.Fatalf("show exit code = %d, stderr: %s", code, stderr)
	}
	var view struct {
		Path   string `json:"path"`
		Config struct {
			Language string `json:"language"`
		} `json:"config"`
	}
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("show output is not JSON: %v\n%s", err, stdout)
	}
	if view.Path != path || view.Config.Language != "javascript" {
		t.Errorf("view = %+v", view)
	}
}

func TestConfigShow_Human(t *testing.T) {
	code, stdout, _ := runCLI(t, "config", "show")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"# Config file: (defaults)", "language = 'javascript'", "[output]"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigShow_EnvOverride(t *testing.T) {
	t.Setenv("JSCORE_OUTPUT_FORMAT", "yaml")

	code, stdout, _ := runCLI(t, "config", "show")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "format: yaml") {
		t.Errorf("want YAML output selected by the environment, got:\n%s", stdout)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jscore.toml")
	if err := os.WriteFile(path, []byte("[output]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "config", "show", "--config", path)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "CONFIG_INVALID") || !strings.Contains(stderr, "jscore config init --force") {
		t.Errorf("stderr = %q", stderr)
	}

	// init must still work with a broken file in place
	code, _, stderr = runCLI(t, "config", "init", "--config", path, "--force")
	if code != 0 {
		t.Errorf("init over broken config: code = %d, stderr = %s", code, stderr)
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too many files", []string{"score", "a.js", "b.js"}},
		{"missing suite", []string{"check"}},
		{"unknown flag", []string{"score", "--bogus"}},
		{"bad format", []string{"version", "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, "INVALID_ARGUMENT") {
				t.Errorf("stderr = %q", stderr)
			}
		})
	}
}

func TestScore_MissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "score", filepath.Join(t.TempDir(), "missing.js"))
	if code != 1 || !strings.Contains(stderr, "INPUT_UNREADABLE") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestScore_TooLarge(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.js")
	if err := os.WriteFile(src, bytes.Repeat([]byte("a;"), 64), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "jscore.toml")
	if err := os.WriteFile(cfg, []byte("[input]\nmaxFileSizeBytes = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "score", src, "--config", cfg)
	if code != 1 || !strings.Contains(stderr, "INPUT_TOO_LARGE") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestScore_UnknownLanguage(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.js")
	if err := os.WriteFile(src, []byte("a;"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "score", src, "--lang", "cobol")
	if code != 1 || !strings.Contains(stderr, "UNSUPPORTED_LANGUAGE") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestReportError(t *testing.T) {
	jerr := jserrors.New(jserrors.ParserUnavailable, "parser not available in this build", nil)

	var human bytes.Buffer
	reportError(&human, jerr, output.FormatHuman)
	if !strings.Contains(human.String(), "Error: [PARSER_UNAVAILABLE]") || !strings.Contains(human.String(), "try: CGO_ENABLED=1") {
		t.Errorf("human = %q", human.String())
	}

	var machine bytes.Buffer
	reportError(&machine, jerr, output.FormatJSON)
	var decoded struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(machine.Bytes(), &decoded); err != nil {
		t.Fatalf("json error output: %v\n%s", err, machine.String())
	}
	if decoded.Error.Code != "PARSER_UNAVAILABLE" {
		t.Errorf("code = %q", decoded.Error.Code)
	}
}

func TestCacheCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	code, _, stderr := runCLI(t, "cache", "stats")
	if code != 1 || !strings.Contains(stderr, "INVALID_ARGUMENT") {
		t.Errorf("stats without cache: code = %d, stderr = %q", code, stderr)
	}

	code, stdout, stderr := runCLI(t, "cache", "stats", "--cache", dbPath)
	if code != 0 {
		t.Fatalf("stats exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Cache: "+dbPath) || !strings.Contains(stdout, "Entries: 0") {
		t.Errorf("stdout = %q", stdout)
	}

	code, stdout, _ = runCLI(t, "cache", "clear", "--cache", dbPath)
	if code != 0 || stdout != "Removed 0 cached scores\n" {
		t.Errorf("clear: code = %d, stdout = %q", code, stdout)
	}
}

func TestExecute_ContextPerRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	for i := 0; i < 3; i++ {
		code, stdout, stderr := runCLI(t, "cache", "stats", "--cache", dbPath)
		if code != 0 {
			t.Fatalf("run %d: exit code = %d, stderr: %s", i, code, stderr)
		}
		if !strings.Contains(stdout, "Entries: 0") {
			t.Errorf("run %d: stdout = %q", i, stdout)
		}
		if err := cacheStatsCmd.Context().Err(); err == nil {
			t.Errorf("run %d: command context should be cancelled once execute returns", i)
		}
	}
}
