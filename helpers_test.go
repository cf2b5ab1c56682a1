package hrx

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile writes content to dir/name, creating parent dirs.
func writeTestFile(t testing.TB, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}

// readTestFile returns file content as string.
func readTestFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}

// allowAll returns registry that continues without a callback.
func allowAll() *Progress {
	return NewProgress(ProgressOptions{AllowUnregistered: true})
}

// recordingProgress returns registry that records reports and stops when
// stopAfter reports were seen; stopAfter <= 0 never stops.
func recordingProgress(t testing.TB, stopAfter int) (*Progress, *[]string) {
	t.Helper()

	var names []string
	p := NewProgress(ProgressOptions{})
	err := p.Set(CallbackText, func(name string, _ int64) bool {
		names = append(names, name)
		return stopAfter <= 0 || len(names) < stopAfter
	})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	return p, &names
}

// mustParse parses text or fails the test.
func mustParse(t testing.TB, text string) *Document {
	t.Helper()

	doc, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}

	return doc
}
