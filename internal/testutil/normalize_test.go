package testutil

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	in := `{"runId": "3f1c2a9e-8b7d-4c6e-9a5f-0123456789ab", "path": "/tmp/x/app.js", "text": "a\nb"}`
	want := `{"runId": "<run-id>", "path": "<root>/app.js", "text": "a\nb"}`

	if got := string(Normalize([]byte(in), "/tmp/x", "")); got != want {
		t.Errorf("Normalize() = %s, want %s", got, want)
	}
}

func TestUnifiedDiff(t *testing.T) {
	diff := unifiedDiff("a\nb\nc\n", "a\nB\nc\n", "x.golden")

	for _, want := range []string{"--- x.golden (expected)", "+++ x.golden (got)", "-b", "+B"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
}
