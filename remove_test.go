package hrx

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := writeTestFile(t, dir, "a.hrx", exampleArchive)

	progress, names := recordingProgress(t, 0)
	res, err := Remove(context.Background(), archive, []string{"a.txt"}, RemoveOptions{Progress: progress})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if res.Removed != 1 || res.Bytes != 2 {
		t.Fatalf("result=%+v", res)
	}
	if !slices.Equal(*names, []string{"a.txt"}) {
		t.Fatalf("reports=%v", *names)
	}

	if got := readTestFile(t, archive); got != "<===> dir/b.txt\n\n" {
		t.Fatalf("archive=%q", got)
	}
}

func TestRemoveHostSeparators(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := writeTestFile(t, dir, "a.hrx", exampleArchive)

	if _, err := Remove(context.Background(), archive, []string{`dir\b.txt`}, RemoveOptions{Progress: allowAll()}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := readTestFile(t, archive); got != "<===> a.txt\nhi\n" {
		t.Fatalf("archive=%q", got)
	}
}

func TestRemoveDirectoryContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := writeTestFile(t, dir, "a.hrx", "<===> d/\n<===> d/x\nxx\n<===> d/y/z\nz\n<===> dd/x\nkeep\n<===> top\nt\n")

	res, err := Remove(context.Background(), archive, []string{`d\*.*`}, RemoveOptions{Progress: allowAll()})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if res.Removed != 3 || res.Bytes != 3 {
		t.Fatalf("result=%+v", res)
	}

	doc, err := Load(archive)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Paths(); !slices.Equal(got, []string{"dd/x", "top"}) {
		t.Fatalf("paths=%v", got)
	}
}

func TestRemoveExactPathBeforeDirectoryContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := writeTestFile(t, dir, "a.hrx", "<===> dir/*.*\nstar\n<===> dir/keep.txt\nkeep\n")

	res, err := Remove(context.Background(), archive, []string{"dir/*.*"}, RemoveOptions{Progress: allowAll()})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if res.Removed != 1 || res.Bytes != 4 {
		t.Fatalf("result=%+v", res)
	}

	doc, err := Load(archive)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Paths(); !slices.Equal(got, []string{"dir/keep.txt"}) {
		t.Fatalf("paths=%v", got)
	}
}

func TestRemoveMissingLeavesArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := writeTestFile(t, dir, "a.hrx", exampleArchive)

	for _, list := range [][]string{{"a.txt", "missing.txt"}, {"nope/*.*"}} {
		_, err := Remove(context.Background(), archive, list, RemoveOptions{Progress: allowAll()})
		if !errors.Is(err, ErrNoFiles) {
			t.Fatalf("expected ErrNoFiles for %v, got %v", list, err)
		}
		if got := readTestFile(t, archive); got != exampleArchive {
			t.Fatalf("archive changed: %q", got)
		}
	}
}

func TestRemoveAbort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := writeTestFile(t, dir, "a.hrx", exampleArchive)

	progress, _ := recordingProgress(t, 1)
	_, err := Remove(context.Background(), archive, []string{"a.txt", "dir/b.txt"}, RemoveOptions{Progress: progress})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if got := readTestFile(t, archive); got != exampleArchive {
		t.Fatalf("archive changed: %q", got)
	}

	_, err = Remove(context.Background(), archive, []string{"a.txt"}, RemoveOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted without callback, got %v", err)
	}
}

func TestRemoveLoadError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Remove(context.Background(), dir+"/missing.hrx", []string{"a"}, RemoveOptions{Progress: allowAll()})
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
}
