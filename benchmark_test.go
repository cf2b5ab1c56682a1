package hrx

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

const (
	benchDefaultEntries = 128
	benchLargeEntries   = 16384
)

var (
	// benchListSink prevents compiler elimination in list benchmark loops.
	benchListSink int
)

func BenchmarkParse(b *testing.B) {
	text := benchArchiveText(benchDefaultEntries)

	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for b.Loop() {
		doc, err := Parse(text)
		if err != nil {
			b.Fatalf("Parse: %v", err)
		}
		benchListSink = doc.Len()
	}
}

func BenchmarkParseLarge(b *testing.B) {
	text := benchArchiveText(benchLargeEntries)

	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for b.Loop() {
		doc, err := Parse(text)
		if err != nil {
			b.Fatalf("Parse: %v", err)
		}
		benchListSink = doc.Len()
	}
}

func BenchmarkSerialize(b *testing.B) {
	doc := mustParse(b, benchArchiveText(benchDefaultEntries))

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		var sb strings.Builder
		if err := doc.Serialize(&sb); err != nil {
			b.Fatalf("Serialize: %v", err)
		}
		benchListSink = sb.Len()
	}
}

func BenchmarkSessionWalk(b *testing.B) {
	path := writeTestFile(b, b.TempDir(), "bench.hrx", benchArchiveText(benchDefaultEntries))

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		s, err := Open(path)
		if err != nil {
			b.Fatalf("Open: %v", err)
		}

		n := 0
		for {
			if _, err := s.Next(); err != nil {
				break
			}
			n++
		}
		_ = s.Close()
		benchListSink = n
	}
}

func BenchmarkPackReplace(b *testing.B) {
	dir := b.TempDir()
	archive := writeTestFile(b, dir, "bench.hrx", benchArchiveText(benchDefaultEntries))
	writeTestFile(b, dir, "src/dir/file_0064.txt", "replaced\n")

	opts := PackOptions{
		SourceRoot: filepath.Join(dir, "src"),
		Progress:   allowAll(),
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		res, err := Pack(context.Background(), archive, []string{"dir/file_0064.txt"}, opts)
		if err != nil {
			b.Fatalf("Pack: %v", err)
		}
		benchListSink = res.Replaced
	}
}

// benchArchiveText builds archive text with n small text entries.
func benchArchiveText(n int) string {
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "<===> dir/file_%04d.txt\nline one of %d\nline two\n", i, i)
	}

	return sb.String()
}
