package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("hello.greet", []byte("Hello Alice"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("hello.greet", []byte("Goodbye Alice"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetLatest("hello.greet")
	if !ok || latest != id2 {
		t.Fatalf("Expected latest ID %d, got %d (ok=%v)", id2, latest, ok)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "Hello Alice" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
	if fs.Get(FileID(7)) != nil {
		t.Error("Get of unknown id must return nil")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.greet", []byte("Hello Alice\nGoodbye Bob\n"))

	tests := []struct {
		name  string
		span  Span
		start LineCol
		end   LineCol
	}{
		{"first token", Span{File: id, Start: 0, End: 5}, LineCol{1, 1}, LineCol{1, 6}},
		{"newline belongs to line 1", Span{File: id, Start: 11, End: 12}, LineCol{1, 12}, LineCol{2, 1}},
		{"second line name", Span{File: id, Start: 20, End: 23}, LineCol{2, 9}, LineCol{2, 12}},
		{"end of file", Span{File: id, Start: 24, End: 24}, LineCol{3, 1}, LineCol{3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.start || end != tt.end {
				t.Errorf("Resolve(%v) = %v-%v, want %v-%v", tt.span, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("test.greet", []byte("Hello Alice\n\nGoodbye Bob")))

	want := map[uint32]string{0: "", 1: "Hello Alice", 2: "", 3: "Goodbye Bob", 4: ""}
	for line, text := range want {
		if got := f.GetLine(line); got != text {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, text)
		}
	}
	if got := f.LineStart(3); got != 13 {
		t.Errorf("LineStart(3) = %d, want 13", got)
	}
}

func TestLoadKeepsLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.greet")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Hello Alice\r\nGoodbye Bob\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "Hello Alice\r\nGoodbye Bob\r\n" {
		t.Errorf("content = %q, want BOM stripped and CRLF kept", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Errorf("flags = %b, want BOM bit", f.Flags)
	}
	if len(f.LineIdx) != 2 || f.LineIdx[0] != 12 {
		t.Errorf("LineIdx = %v, want [12 25]", f.LineIdx)
	}
	if got := f.GetLine(2); got != "Goodbye Bob" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.LineStart(2); got != 13 {
		t.Errorf("LineStart(2) = %d, want 13", got)
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "/home/user/project/src/hello.greet"}
	if got := f.FormatPath("basename", ""); got != "hello.greet" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath("relative", "/home/user/project"); got != "src/hello.greet" {
		t.Errorf("relative = %q", got)
	}
	if got := f.FormatPath("unknown", ""); got != f.Path {
		t.Errorf("default = %q", got)
	}
}
