package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"greet/internal/diag"
	"greet/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, gutter, caret, fix *color.Color
}

// цвета создаём на вызов, глобальный color.NoColor не трогаем
func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		fix:    color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(fs, file, opts.PathMode), start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(), d.Message)

	writeSnippet(w, fs, file, d.Primary, opts, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			np, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				pal.note.Sprint("note:"), formatPath(fs, fs.Get(n.Span.File), opts.PathMode), np.Line, np.Col, n.Msg)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for i, fix := range d.Fixes {
		fmt.Fprintf(w, "  %s\n", pal.fix.Sprintf("fix #%d: %s", i+1, fix.Title))
		for _, e := range fix.Edits {
			ep, _ := fs.Resolve(e.Span)
			fmt.Fprintf(w, "    edit %s:%d:%d apply=%s\n",
				formatPath(fs, fs.Get(e.Span.File), opts.PathMode), ep.Line, ep.Col, strconv.Quote(e.NewText))
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, e)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, l := range preview.before {
				fmt.Fprintf(w, "      - %s\n", l)
			}
			for _, l := range preview.after {
				fmt.Fprintf(w, "      + %s\n", l)
			}
		}
	}
}

// writeSnippet печатает строку исходника (плюс Context строк сверху) и каретку под span.
func writeSnippet(w io.Writer, fs *source.FileSet, file *source.File, sp source.Span, opts PrettyOpts, pal palette) {
	if file == nil || int(sp.End) > len(file.Content) {
		return
	}
	start, end := fs.Resolve(sp)
	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); ctx < first { // #nosec G115 -- non-negative int8
		first -= ctx
	} else {
		first = 1
	}
	gutterWidth := len(strconv.FormatUint(uint64(start.Line), 10))

	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, " %s %s\n",
			pal.gutter.Sprintf("%*d |", gutterWidth, ln),
			clip(expandTabs(file.GetLine(ln)), opts.Width))
	}

	line := file.GetLine(start.Line)
	colStart := int(start.Col - 1)
	colEnd := len(line)
	if end.Line == start.Line {
		colEnd = min(int(end.Col-1), len(line))
	}
	colStart = min(colStart, len(line))

	pad := runewidth.StringWidth(expandTabs(line[:colStart]))
	width := runewidth.StringWidth(expandTabs(line[colStart:colEnd]))
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, " %s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad), pal.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, int(width), "")
	}
	return runewidth.Truncate(s, int(width), "...")
}
