package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"greet/internal/diag"
	"greet/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/hello.greet", []byte("Hello 123\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnrecognizedInput, source.Span{File: fileID, Start: 6, End: 9}, `unrecognized input "123"`))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/hello.greet:1:7"},
		{"Relative path", PathModeRelative, "src/hello.greet:1:7"},
		{"Basename only", PathModeBasename, "hello.greet:1:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR SYN2002") {
				t.Error("Expected severity and code in output")
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.greet", []byte("Hello Alice\nHi Bob\n"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnrecognizedInput, source.Span{File: fileID, Start: 15, End: 18}, `unrecognized input "Bob"`))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})

	want := `a.greet:2:4: ERROR SYN2002: unrecognized input "Bob"
 1 | Hello Alice
 2 | Hi Bob
   |    ^~~
`
	if got := buf.String(); got != want {
		t.Fatalf("pretty output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("日本 Bob")
	fileID := fs.AddVirtual("w.greet", content)

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnrecognizedInput, source.Span{File: fileID, Start: 7, End: 10}, "x"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	// два иероглифа занимают по две колонки
	if !strings.Contains(buf.String(), "\n   |      ^~~\n") {
		t.Fatalf("caret not aligned to display width:\n%s", buf.String())
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.greet", []byte("Helloworld\n"))

	at := source.Span{File: fileID, Start: 5, End: 5}
	d := diag.NewError(diag.SynMissingField, at, "greeting is missing its name").
		WithField("name").
		WithNote(source.Span{File: fileID, Start: 0, End: 5}, "greeting starts here").
		WithFix("insert a space", diag.FixEdit{Span: at, NewText: " "})
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: test.greet:1:1: greeting starts here",
		"fix #1: insert a space",
		`apply=" "`,
		"preview:",
		"- Helloworld",
		"+ Hello world",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyCRLFFile(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("crlf.greet", []byte("Hello Bob\r\nHelloworld\r\n"))

	at := source.Span{File: fileID, Start: 16, End: 16}
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynMissingField, at, "greeting is missing its name").
		WithFix("insert a space", diag.FixEdit{Span: at, NewText: " "}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true, ShowPreview: true})
	output := buf.String()

	if strings.Contains(output, "\r") {
		t.Fatalf("carriage return leaked into output:\n%q", output)
	}
	for _, want := range []string{"crlf.greet:2:6:", " 2 | Helloworld\n", "- Helloworld\n", "+ Hello world\n"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.greet", []byte("Hi\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnrecognizedInput, source.Span{File: fileID, Start: 0, End: 2}, "x"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("unexpected escape codes without color:\n%q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("expected escape codes with color:\n%q", colored.String())
	}
}
