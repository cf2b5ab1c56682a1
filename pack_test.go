package hrx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/woozymasta/pathrules"
)

func TestPackCreatesArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeTestFile(t, src, "a.txt", "hi")
	writeTestFile(t, src, "sub/b.txt", "")
	archive := filepath.Join(dir, "out.hrx")

	progress, names := recordingProgress(t, 0)
	res, err := Pack(context.Background(), archive, []string{"a.txt", `sub\b.txt`}, PackOptions{
		SourceRoot: src,
		Progress:   progress,
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if res.Added != 2 || res.Replaced != 0 || res.Bytes != 2 || res.BoundaryLength != DefaultBoundaryLength {
		t.Fatalf("result=%+v", res)
	}
	if !slices.Equal(*names, []string{"a.txt", "sub/b.txt"}) {
		t.Fatalf("reports=%v", *names)
	}

	if got := readTestFile(t, archive); got != "<===> a.txt\nhi\n<===> sub/b.txt\n\n" {
		t.Fatalf("archive=%q", got)
	}
}

func TestPackReplacesInPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := writeTestFile(t, dir, "a.hrx", "<===> first\nold\n<===> second\nkeep\n")
	writeTestFile(t, dir, "first", "new")
	writeTestFile(t, dir, "third", "3")

	res, err := Pack(context.Background(), archive, []string{"third", "first"}, PackOptions{
		SourceRoot: dir,
		Progress:   allowAll(),
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if res.Added != 1 || res.Replaced != 1 {
		t.Fatalf("result=%+v", res)
	}

	doc, err := Load(archive)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Paths(); !slices.Equal(got, []string{"first", "second", "third"}) {
		t.Fatalf("order=%v", got)
	}
	first, _ := doc.Get("first")
	if first.Content() != "new" {
		t.Fatalf("first=%q", first.Content())
	}
}

func TestPackEntryPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		item      string
		subPath   string
		want      string
		savePaths bool
	}{
		{name: "keep structure", item: `sub\file.txt`, want: "sub/file.txt"},
		{name: "collapse", item: "sub/file.txt", savePaths: true, want: "file.txt"},
		{name: "sub path", item: "a.txt", subPath: "docs", want: "docs/a.txt"},
		{name: "host sub path", item: `x\a.txt`, subPath: `docs\v1`, want: "docs/v1/x/a.txt"},
		{name: "sub path collapse", item: "x/a.txt", subPath: "docs", savePaths: true, want: "docs/a.txt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := packEntryPath(tc.item, tc.subPath, tc.savePaths)
			if err != nil {
				t.Fatalf("packEntryPath: %v", err)
			}
			if got != tc.want {
				t.Fatalf("packEntryPath(%q, %q, %v)=%q, want %q", tc.item, tc.subPath, tc.savePaths, got, tc.want)
			}
		})
	}

	if _, err := packEntryPath("../x", "", false); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestPackSavePathsFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, dir, "sub/file.txt", "x")
	archive := filepath.Join(dir, "out.hrx")

	_, err := Pack(context.Background(), archive, []string{"sub/file.txt"}, PackOptions{
		SourceRoot: dir,
		Progress:   allowAll(),
		Flags:      FlagSavePaths,
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	doc, err := Load(archive)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Paths(); !slices.Equal(got, []string{"file.txt"}) {
		t.Fatalf("paths=%v", got)
	}
}

func TestPackDefaultDenyWithoutCallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "hi")
	archive := filepath.Join(dir, "out.hrx")

	_, err := Pack(context.Background(), archive, []string{"a.txt"}, PackOptions{SourceRoot: dir})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := os.Stat(archive); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("archive written after abort: %v", err)
	}
}

func TestPackAbortLeavesArchiveUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	original := "<===> keep\nme\n"
	archive := writeTestFile(t, dir, "a.hrx", original)
	writeTestFile(t, dir, "one", "1")
	writeTestFile(t, dir, "two", "2")
	writeTestFile(t, dir, "three", "3")

	progress, names := recordingProgress(t, 2)
	_, err := Pack(context.Background(), archive, []string{"one", "two", "three"}, PackOptions{
		SourceRoot: dir,
		Progress:   progress,
		Flags:      FlagMoveFiles,
	})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if len(*names) != 2 {
		t.Fatalf("reports after stop: %v", *names)
	}
	if got := readTestFile(t, archive); got != original {
		t.Fatalf("archive changed: %q", got)
	}
	for _, name := range []string{"one", "two", "three"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("source %s removed after abort: %v", name, err)
		}
	}
}

func TestPackMoveFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeTestFile(t, dir, "a.txt", "hi")
	archive := filepath.Join(dir, "out.hrx")

	_, err := Pack(context.Background(), archive, []string{"a.txt"}, PackOptions{
		SourceRoot: dir,
		Progress:   allowAll(),
		Flags:      FlagMoveFiles,
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("source kept after move: %v", err)
	}
}

func TestPackErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	original := "<===> keep\nme\n"
	archive := writeTestFile(t, dir, "a.hrx", original)
	writeTestFile(t, dir, "ok.txt", "fine")
	binary := filepath.Join(dir, "bin.dat")
	if err := os.WriteFile(binary, []byte{0xff, 0x00, 0xfe}, 0o644); err != nil {
		t.Fatal(err)
	}
	broken := writeTestFile(t, dir, "broken.hrx", "garbage")

	testCases := []struct {
		name    string
		archive string
		subPath string
		items   []string
		want    error
		flags   PackFlags
	}{
		{name: "encrypt", archive: archive, items: []string{"ok.txt"}, flags: FlagEncrypt, want: ErrNotSupported},
		{name: "missing source", archive: archive, items: []string{"ok.txt", "missing.txt"}, want: ErrOpen},
		{name: "binary source", archive: archive, items: []string{"bin.dat"}, want: ErrDecode},
		{name: "invalid entry path", archive: archive, subPath: "../up", items: []string{"ok.txt"}, want: ErrUnknownFormat},
		{name: "missing source with invalid name", archive: archive, items: []string{"missing:name.txt"}, want: ErrOpen},
		{name: "broken archive", archive: broken, items: []string{"ok.txt"}, want: ErrBadArchive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Pack(context.Background(), tc.archive, tc.items, PackOptions{
				SourceRoot: dir,
				SubPath:    tc.subPath,
				Progress:   allowAll(),
				Flags:      tc.flags,
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if got := readTestFile(t, archive); got != original {
				t.Fatalf("archive changed: %q", got)
			}
		})
	}
}

func TestPackGrowsBoundary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, dir, "inner.hrx", "<===> x\ny\n")
	archive := filepath.Join(dir, "outer.hrx")

	res, err := Pack(context.Background(), archive, []string{"inner.hrx"}, PackOptions{
		SourceRoot: dir,
		Progress:   allowAll(),
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if res.BoundaryLength != 4 {
		t.Fatalf("boundary=%d, want 4", res.BoundaryLength)
	}

	doc, err := Load(archive)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	entry, _ := doc.Get("inner.hrx")
	if entry.Content() != "<===> x\ny\n" {
		t.Fatalf("content=%q", entry.Content())
	}
}

func TestPackFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "a")
	writeTestFile(t, dir, "debug.log", "log")
	writeTestFile(t, dir, "sub/b.txt", "b")
	archive := filepath.Join(dir, "out.hrx")

	res, err := Pack(context.Background(), archive, []string{"a.txt", "debug.log", "sub/b.txt"}, PackOptions{
		SourceRoot: dir,
		Progress:   allowAll(),
		Filter: []pathrules.Rule{
			{Action: pathrules.ActionExclude, Pattern: "*.log"},
		},
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if res.Added != 2 || res.Skipped != 1 {
		t.Fatalf("result=%+v", res)
	}

	doc, err := Load(archive)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Paths(); !slices.Equal(got, []string{"a.txt", "sub/b.txt"}) {
		t.Fatalf("paths=%v", got)
	}
}

func TestPackCanceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Pack(ctx, filepath.Join(dir, "out.hrx"), []string{"a.txt"}, PackOptions{
		SourceRoot: dir,
		Progress:   allowAll(),
	})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
