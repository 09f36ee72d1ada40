package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"greet/internal/ast"
	"greet/internal/diag"
	"greet/internal/source"
)

// CheckSpanInvariants runs the structural invariants on a parsed file:
// 1) the root spans the whole file content
// 2) every node span lies inside its parent's span
// 3) siblings appear in source order and do not overlap
// 4) a greeting has exactly a salutation followed by a name
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	if b.Files.Get(fileID) == nil {
		return fmt.Errorf("file node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return CheckTreeInvariants(b.Tree(fileID), sf.ID, lenContent)
}

// CheckTreeInvariants is CheckSpanInvariants on an already materialized tree.
func CheckTreeInvariants(root ast.Node, file source.FileID, contentLen uint32) error {
	if root.Kind != ast.NodeSourceFile {
		return fmt.Errorf("root is %s, want SourceFile", root.Kind)
	}
	if root.Span.Start != 0 || root.Span.End != contentLen {
		return fmt.Errorf("file span %v does not cover content [0,%d)", root.Span, contentLen)
	}
	if root.Span.File != file {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", root.Span.File, file)
	}
	return checkChildren(root, file)
}

func checkChildren(parent ast.Node, file source.FileID) error {
	var prev *ast.Node
	for i := range parent.Children {
		c := &parent.Children[i]
		if c.Span.File != file {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", c.Kind, c.Span.File, file)
		}
		if !parent.Span.Contains(c.Span) {
			return fmt.Errorf("%s span %v is outside parent %s span %v", c.Kind, c.Span, parent.Kind, parent.Span)
		}
		if c.Kind.IsLeaf() && c.Span.Empty() {
			return fmt.Errorf("empty %s leaf at %v", c.Kind, c.Span)
		}
		if prev != nil && c.Span.Start < prev.Span.End {
			return fmt.Errorf("%s %v overlaps or precedes %s %v", c.Kind, c.Span, prev.Kind, prev.Span)
		}
		if err := checkChildren(*c, file); err != nil {
			return err
		}
		if err := checkShape(*c); err != nil {
			return err
		}
		prev = c
	}
	return nil
}

func checkShape(n ast.Node) error {
	switch n.Kind {
	case ast.NodeGreeting:
		if len(n.Children) != 2 {
			return fmt.Errorf("greeting at %v has %d children, want 2", n.Span, len(n.Children))
		}
		sal, name := n.Children[0], n.Children[1]
		if sal.Field != ast.FieldSalutation || !sal.Kind.IsSalutation() {
			return fmt.Errorf("greeting at %v: first child is %s/%s", n.Span, sal.Kind, sal.Field)
		}
		if name.Field != ast.FieldName || name.Text == "" {
			return fmt.Errorf("greeting at %v: second child is %s/%s", n.Span, name.Kind, name.Field)
		}
		if n.Span != sal.Span.Cover(name.Span) {
			return fmt.Errorf("greeting span %v is not the hull of its children", n.Span)
		}
	case ast.NodeNameDefinition:
		if len(n.Children) != 2 || n.Children[1].Field != ast.FieldName {
			return fmt.Errorf("name definition at %v is malformed", n.Span)
		}
	}
	return nil
}

// CheckDiagnosticOrder verifies diagnostics in emission order: each primary
// span is well formed and inside the file, starts never go backwards, and
// non-empty spans do not overlap. Empty spans mark positions and may share
// an offset with their neighbours.
func CheckDiagnosticOrder(diags []diag.Diagnostic, contentLen uint32) error {
	var lastStart, lastEnd uint32
	for i, d := range diags {
		sp := d.Primary
		if sp.End < sp.Start {
			return fmt.Errorf("%s #%d has inverted span %v", d.Code.ID(), i, sp)
		}
		if sp.End > contentLen {
			return fmt.Errorf("%s #%d span %v points past EOF (%d)", d.Code.ID(), i, sp, contentLen)
		}
		if sp.Start < lastStart {
			return fmt.Errorf("%s #%d at %v is out of order", d.Code.ID(), i, sp)
		}
		if !sp.Empty() && sp.Start < lastEnd {
			return fmt.Errorf("%s #%d at %v overlaps an earlier diagnostic ending at %d", d.Code.ID(), i, sp, lastEnd)
		}
		lastStart = sp.Start
		if !sp.Empty() {
			lastEnd = sp.End
		}
	}
	return nil
}
