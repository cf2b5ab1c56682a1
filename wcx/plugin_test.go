package wcx

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"
)

const exampleArchive = "<===> a.txt\nhi\n<===> dir/\n<===> dir/b.txt\n\n"

func writeArchive(t *testing.T, dir string, text string) string {
	t.Helper()

	path := filepath.Join(dir, "example.hrx")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestPluginListAndExtract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewPlugin(PluginOptions{})

	data := OpenArchiveData{ArcName: writeArchive(t, dir, exampleArchive), OpenMode: PK_OM_EXTRACT}
	h := p.OpenArchive(&data)
	if h == 0 || data.OpenResult != 0 {
		t.Fatalf("OpenArchive=%d, result %d", h, data.OpenResult)
	}
	if p.Open() != 1 {
		t.Fatalf("Open=%d", p.Open())
	}

	var names []string
	var attrs []int32
	for {
		var hd HeaderDataEx
		code := p.ReadHeaderEx(h, &hd)
		if code == E_END_ARCHIVE {
			break
		}
		if code != 0 {
			t.Fatalf("ReadHeaderEx=%d", code)
		}
		names = append(names, hd.Name())
		attrs = append(attrs, hd.FileAttr)

		op := PK_SKIP
		dest := ""
		if hd.Name() == "a.txt" {
			op = PK_EXTRACT
			dest = filepath.Join(dir, "out.txt")
		}
		if code := p.ProcessFile(h, op, "", dest); code != 0 {
			t.Fatalf("ProcessFile=%d", code)
		}
	}

	if !equalList(names, []string{"a.txt", "dir", `dir\b.txt`}) {
		t.Fatalf("names=%q", names)
	}
	if attrs[1] != FileAttrDirectory || attrs[0] != 0 {
		t.Fatalf("attrs=%v", attrs)
	}

	out, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil || string(out) != "hi" {
		t.Fatalf("extracted=%q, %v", out, err)
	}

	var hd HeaderData
	if code := p.ReadHeader(h, &hd); code != E_END_ARCHIVE {
		t.Fatalf("ReadHeader after end=%d", code)
	}

	if code := p.CloseArchive(h); code != 0 {
		t.Fatalf("CloseArchive=%d", code)
	}
	if code := p.CloseArchive(h); code != E_ECLOSE {
		t.Fatalf("second CloseArchive=%d", code)
	}
	if code := p.ReadHeader(h, &hd); code == 0 {
		t.Fatal("ReadHeader on closed handle succeeded")
	}
}

func TestPluginOpenErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewPlugin(PluginOptions{})

	data := OpenArchiveData{ArcName: filepath.Join(dir, "missing.hrx")}
	if h := p.OpenArchive(&data); h != 0 || data.OpenResult != E_EOPEN {
		t.Fatalf("missing: handle %d result %d", h, data.OpenResult)
	}

	bad := filepath.Join(dir, "bad.hrx")
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, code := p.OpenArchiveW(append(utf16.Encode([]rune(bad)), 0), PK_OM_LIST)
	if h != 0 || code != E_BAD_ARCHIVE {
		t.Fatalf("bad: handle %d result %d", h, code)
	}
}

func TestPluginExtractAbortedByInstanceCallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewPlugin(PluginOptions{})

	var globalCalls int
	p.SetProcessDataProc(0, func(string, int32) int32 {
		globalCalls++
		return 1
	})

	data := OpenArchiveData{ArcName: writeArchive(t, dir, exampleArchive)}
	h := p.OpenArchive(&data)
	defer p.CloseArchive(h)

	var wideNames []string
	p.SetProcessDataProcW(h, func(name []uint16, size int32) int32 {
		if len(name) == 0 || name[len(name)-1] != 0 {
			t.Errorf("wide name not NUL terminated: %v", name)
		}
		wideNames = append(wideNames, string(utf16.Decode(name[:len(name)-1])))
		if size != 2 {
			t.Errorf("size=%d, want 2", size)
		}
		return 0
	})

	var hd HeaderDataExW
	if code := p.ReadHeaderExW(h, &hd); code != 0 {
		t.Fatalf("ReadHeaderExW=%d", code)
	}
	if hd.Name() != "a.txt" {
		t.Fatalf("name=%q", hd.Name())
	}

	dest := append(utf16.Encode([]rune(filepath.Join(dir, "x.txt"))), 0)
	if code := p.ProcessFileW(h, PK_EXTRACT, nil, dest); code != E_EABORTED {
		t.Fatalf("ProcessFileW=%d, want E_EABORTED", code)
	}
	if !equalList(wideNames, []string{"a.txt"}) || globalCalls != 0 {
		t.Fatalf("wide=%q global=%d", wideNames, globalCalls)
	}
}

func TestPluginPackAndDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "f.txt"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}
	archive := filepath.Join(dir, "new.hrx")

	p := NewPlugin(PluginOptions{})
	addList := JoinList(`sub\f.txt`)

	if code := p.PackFiles(archive, "", src, addList, 0); code != E_EABORTED {
		t.Fatalf("PackFiles without callback=%d, want E_EABORTED", code)
	}
	if _, err := os.Stat(archive); !os.IsNotExist(err) {
		t.Fatalf("archive created after abort: %v", err)
	}

	var reports []string
	p.SetProcessDataProc(^Handle(0), func(name string, _ int32) int32 {
		reports = append(reports, name)
		return 1
	})

	if code := p.PackFiles(archive, "", src, addList, PK_PACK_ENCRYPT); code != E_NOT_SUPPORTED {
		t.Fatalf("PackFiles encrypt=%d", code)
	}
	if code := p.PackFiles(archive, `docs`, src, addList, 0); code != 0 {
		t.Fatalf("PackFiles=%d", code)
	}
	if !equalList(reports, []string{`docs\sub\f.txt`}) {
		t.Fatalf("reports=%q", reports)
	}
	if !p.CanYouHandleThisFile(archive) {
		t.Fatal("CanYouHandleThisFile=false for packed archive")
	}

	got, err := os.ReadFile(archive)
	if err != nil || string(got) != "<===> docs/sub/f.txt\ntext\n" {
		t.Fatalf("archive=%q, %v", got, err)
	}

	if code := p.DeleteFiles(archive, JoinList("missing")); code != E_NO_FILES {
		t.Fatalf("DeleteFiles missing=%d", code)
	}

	wideList := utf16.Encode([]rune(JoinList(`docs\sub\f.txt`)))
	if code := p.DeleteFilesW(append(utf16.Encode([]rune(archive)), 0), wideList); code != 0 {
		t.Fatalf("DeleteFilesW=%d", code)
	}
	if p.CanYouHandleThisFile(archive) {
		t.Fatal("CanYouHandleThisFile=true for empty archive")
	}
}

func TestPluginPackFilesWSavePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "deep"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "deep", "n.txt"), []byte("n"), 0o644); err != nil {
		t.Fatal(err)
	}
	archive := filepath.Join(dir, "w.hrx")

	p := NewPlugin(PluginOptions{AllowUnregistered: true})
	code := p.PackFilesW(
		append(utf16.Encode([]rune(archive)), 0),
		nil,
		append(utf16.Encode([]rune(dir)), 0),
		utf16.Encode([]rune(JoinList("deep/n.txt"))),
		PK_PACK_SAVE_PATHS|PK_PACK_MOVE_FILES,
	)
	if code != 0 {
		t.Fatalf("PackFilesW=%d", code)
	}

	got, err := os.ReadFile(archive)
	if err != nil || string(got) != "<===> n.txt\nn\n" {
		t.Fatalf("archive=%q, %v", got, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "deep", "n.txt")); !os.IsNotExist(err) {
		t.Fatalf("source kept after move: %v", err)
	}
}

func TestPluginFlags(t *testing.T) {
	t.Parallel()

	p := NewPlugin(PluginOptions{})
	if p.GetPackerCaps() != Capabilities() || p.GetBackgroundFlags() != BackgroundFlags() {
		t.Fatal("flag passthrough mismatch")
	}
	p.SetChangeVolProc(0, nil)
	if p.CanYouHandleThisFile(filepath.Join(t.TempDir(), "none.hrx")) {
		t.Fatal("CanYouHandleThisFile=true for missing file")
	}
}
