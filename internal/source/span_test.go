package source

import "testing"

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 0, End: 5}
	b := Span{File: 1, Start: 6, End: 11}
	if got := a.Cover(b); got != (Span{File: 1, Start: 0, End: 11}) {
		t.Errorf("Cover = %v", got)
	}
	// разные файлы не объединяются
	other := Span{File: 2, Start: 100, End: 200}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files = %v, want %v", got, a)
	}
}

func TestSpan_Predicates(t *testing.T) {
	outer := Span{File: 0, Start: 0, End: 11}
	inner := Span{File: 0, Start: 6, End: 11}
	if !outer.Contains(inner) || inner.Contains(outer) {
		t.Error("Contains is wrong")
	}
	if !(Span{Start: 0, End: 5}).Before(inner) {
		t.Error("Before is wrong")
	}
	if head := inner.Head(); !head.Empty() || head.Start != 6 {
		t.Errorf("Head = %v", head)
	}
	tail := inner.Tail()
	if !tail.Empty() || tail.Start != 11 {
		t.Errorf("Tail = %v", tail)
	}
	if inner.Len() != 5 {
		t.Errorf("Len = %d", inner.Len())
	}
}
