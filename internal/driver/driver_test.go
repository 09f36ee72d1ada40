package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/pipeline"
	"greet/internal/token"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestTokenize(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.greet": "Hello 42"})
	res, err := Tokenize(filepath.Join(dir, "a.greet"), grammar.Default(), 10)
	if err != nil {
		t.Fatal(err)
	}
	kinds := make([]token.Kind, len(res.Tokens))
	for i, tok := range res.Tokens {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{token.Hello, token.Invalid, token.EOF}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if res.Bag.Count(diag.LexUnknownInput) != 1 {
		t.Fatalf("expected one LEX1001 warning, got %d", res.Bag.Len())
	}
}

func TestParseFileCRLF(t *testing.T) {
	dir := writeFiles(t, map[string]string{"crlf.greet": "\ufeffHello Alice\r\nGoodbye Bob\r\n"})
	res, err := Parse(context.Background(), filepath.Join(dir, "crlf.greet"), grammar.Default(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Greetings != 2 || res.Bag.Len() != 0 {
		t.Fatalf("greetings=%d diags=%d", res.Greetings, res.Bag.Len())
	}
}

func TestParseCRLFOffsets(t *testing.T) {
	content := "Hello Bob\r\nHi\r\n"
	dir := writeFiles(t, map[string]string{"crlf.greet": content})
	res, err := Parse(context.Background(), filepath.Join(dir, "crlf.greet"), grammar.Default(), 0)
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynUnrecognizedInput {
		t.Fatalf("diagnostics = %v", items)
	}
	if sp := items[0].Primary; sp.Start != 11 || sp.End != 13 || content[sp.Start:sp.End] != "Hi" {
		t.Errorf("UnrecognizedInput span = %d..%d, want 11..13", sp.Start, sp.End)
	}

	root := res.Builder.Tree(res.FileID)
	if root.Span.Start != 0 || int(root.Span.End) != len(content) {
		t.Errorf("source_file span = %d..%d, want 0..%d", root.Span.Start, root.Span.End, len(content))
	}
	name := root.Children[0].Children[1]
	if content[name.Span.Start:name.Span.End] != "Bob" {
		t.Errorf("name span %d..%d does not point at Bob", name.Span.Start, name.Span.End)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(context.Background(), filepath.Join(t.TempDir(), "nope.greet"), grammar.Default(), 0); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseDirOrderAndEvents(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.greet":        "Hello Bob",
		"a.greet":        "Hi there",
		"nested/c.greet": "goodbye Carol hello Dave",
		"skip.txt":       "Hello Nobody",
	})

	var rec pipeline.Recorder
	fs, results, err := ParseDir(context.Background(), dir, grammar.Default(), 0, 2, &rec)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	wantNames := []string{"a.greet", "b.greet", "nested/c.greet"}
	wantGreetings := []int{0, 1, 2}
	for i, r := range results {
		rel := fs.Get(r.FileID).FormatPath("relative", dir)
		if rel != wantNames[i] {
			t.Errorf("result %d is %s, want %s", i, rel, wantNames[i])
		}
		if r.Greetings != wantGreetings[i] {
			t.Errorf("%s: greetings = %d, want %d", rel, r.Greetings, wantGreetings[i])
		}
		if r.Builder == nil || r.Builder.Files.Get(r.ASTFile) == nil {
			t.Errorf("%s: missing tree", rel)
		}
	}
	if results[0].Bag.Count(diag.SynUnrecognizedInput) != 2 {
		t.Errorf("a.greet: expected 2 unrecognized inputs")
	}

	done := 0
	for _, ev := range rec.Events() {
		if ev.Status == pipeline.StatusDone {
			done++
		}
	}
	if done != 3 {
		t.Errorf("expected 3 done events, got %d", done)
	}
}

func TestParseDirCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.greet": "Hello Bob"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ParseDir(ctx, dir, grammar.Default(), 0, 1, nil); err == nil {
		t.Fatal("expected context error")
	}
}

func TestDiagnoseWithCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.greet":  "Hello Alice\n",
		"bad.greet": "Hello 123\nHEllo Bob\n",
	})
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	g := grammar.Default()
	opts := DiagnoseOptions{Cache: cache, Jobs: 2}

	first, err := Diagnose(context.Background(), dir, g, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Diagnose(context.Background(), dir, g, opts)
	if err != nil {
		t.Fatal(err)
	}

	for i := range first.Files {
		if first.Files[i].Cached {
			t.Errorf("%s: first run must not hit the cache", first.Files[i].Path)
		}
		if !second.Files[i].Cached {
			t.Errorf("%s: second run must hit the cache", second.Files[i].Path)
		}
	}
	if !first.HasErrors() || !second.HasErrors() {
		t.Fatal("bad.greet must produce errors")
	}
	if first.Greetings() != 1 || second.Greetings() != 1 {
		t.Fatalf("greetings: %d / %d", first.Greetings(), second.Greetings())
	}

	got := diag.FormatShortDiagnostics(second.Merged().Items(), second.FileSet, true)
	want := diag.FormatShortDiagnostics(first.Merged().Items(), first.FileSet, true)
	if got != want {
		t.Fatalf("cached diagnostics differ\n got:\n%s\nwant:\n%s", got, want)
	}

	// другая грамматика - другой ключ
	lit, _ := grammar.Lookup("literal")
	third, err := Diagnose(context.Background(), dir, lit, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Fatal("a different grammar must not reuse cached results")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var key Digest
	key[0] = 1

	var out Summary
	if hit, err := cache.Get(key, &out); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}

	in := &Summary{
		Grammar:   "regex",
		Greetings: 3,
		Diagnostics: []CachedDiagnostic{{
			Severity: uint8(diag.SevError),
			Code:     uint16(diag.SynMissingField),
			Field:    "name",
			Start:    5,
			End:      5,
			Notes:    []CachedNote{{Start: 0, End: 5, Msg: "greeting starts here"}},
		}},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if !reflect.DeepEqual(*in, out) {
		t.Fatalf("round trip mismatch\n got %+v\nwant %+v", out, *in)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Get(key, &out); hit {
		t.Fatal("DropAll must clear entries")
	}
}

func TestDiagnoseTimings(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.greet": "Hello Bob"})
	res, err := Diagnose(context.Background(), filepath.Join(dir, "a.greet"), grammar.Default(), DiagnoseOptions{EnableTimings: true})
	if err != nil {
		t.Fatal(err)
	}
	bag := res.Files[0].Bag
	if bag.Count(diag.ObsTimings) != 1 || bag.HasErrors() {
		t.Fatalf("expected one timing entry and no errors, got %d items", bag.Len())
	}
	if len(res.Files[0].Timing.Phases) != 1 || res.Files[0].Timing.Phases[0].Name != "parse" {
		t.Fatalf("unexpected timing phases %+v", res.Files[0].Timing.Phases)
	}
}

func TestDiagnoseUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read everything")
	}
	dir := writeFiles(t, map[string]string{"locked.greet": "Hello Bob"})
	p := filepath.Join(dir, "locked.greet")
	if err := os.Chmod(p, 0); err != nil {
		t.Fatal(err)
	}
	res, err := Diagnose(context.Background(), dir, grammar.Default(), DiagnoseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].Bag.Count(diag.IOLoadFileError) != 1 {
		t.Fatal("expected IO4001")
	}
}
