package diag

import (
	"testing"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(DeclUnresolvedType, span(0, 0, 1), "a")) {
		t.Fatalf("first add rejected")
	}
	if !b.Add(NewError(DeclUnresolvedType, span(0, 1, 2), "b")) {
		t.Fatalf("second add rejected")
	}
	if b.Add(NewError(DeclUnresolvedType, span(0, 2, 3), "c")) {
		t.Fatalf("add past cap accepted")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestBagDefaultCap(t *testing.T) {
	b := NewBag(0)
	if !b.Add(NewError(DeclUnresolvedType, span(0, 0, 1), "a")) {
		t.Fatalf("zero cap should fall back to the default, not drop")
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	b := NewBag(8)
	b.Add(NewWarning(DeclUntypedParameter, span(0, 0, 1), "w"))
	if b.HasErrors() {
		t.Fatalf("warning counted as error")
	}
	if b.ErrorCount() != 0 {
		t.Fatalf("error count = %d", b.ErrorCount())
	}
	b.Add(NewError(DeclArityMismatch, span(0, 1, 2), "e"))
	if !b.HasErrors() || b.ErrorCount() != 1 {
		t.Fatalf("error not counted: %d", b.ErrorCount())
	}
}

func TestMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(DeclUnresolvedType, span(0, 0, 1), "a"))
	other := NewBag(2)
	other.Add(NewError(DeclUnresolvedType, span(0, 1, 2), "b"))
	other.Add(NewError(DeclUnresolvedType, span(0, 2, 3), "c"))
	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("merged len = %d, want 3", a.Len())
	}
	a.Merge(nil)
	if a.Len() != 3 {
		t.Fatalf("nil merge changed len to %d", a.Len())
	}
}

func TestSortOrdersByPosition(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(DeclUnresolvedType, span(1, 5, 6), "later file"))
	b.Add(NewError(DeclUnresolvedType, span(0, 9, 10), "first file, later offset"))
	b.Add(NewError(DeclUnresolvedType, span(0, 2, 3), "first file, early offset"))
	b.Sort()
	items := b.Items()
	if items[0].Primary.Start != 2 || items[1].Primary.Start != 9 || items[2].Primary.File != 1 {
		t.Fatalf("unexpected order: %v %v %v", items[0].Primary, items[1].Primary, items[2].Primary)
	}
}

func TestDedup(t *testing.T) {
	b := NewBag(8)
	d := NewError(DeclUnresolvedType, span(0, 0, 4), "dup")
	b.Add(d)
	b.Add(d)
	b.Add(NewError(DeclArityMismatch, span(0, 0, 4), "different code"))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("dedup kept %d, want 2", b.Len())
	}
}

func TestCodeString(t *testing.T) {
	if got := DeclUnresolvedType.String(); got != "SS3001" {
		t.Fatalf("code string = %q", got)
	}
}
