package ast

import (
	"testing"

	"github.com/mjcompiler/mjc/internal/token"
)

func leaf(kind NodeKind, v int64) *Node {
	return MakeLeaf(kind, v, token.Position{Line: 1, Column: 1})
}

func TestNullNodeIsSingleton(t *testing.T) {
	if !IsNull(NullNode()) {
		t.Fatal("NullNode() must be null")
	}
	if !IsNull(nil) {
		t.Fatal("a nil *Node must be treated as null")
	}
}

func TestMakeOpFillsDummyChildren(t *testing.T) {
	n := MakeOp(AddOp, nil, nil, token.Position{})
	if !IsNull(Left(n)) || !IsNull(Right(n)) {
		t.Fatal("MakeOp with nil children must install Dummy, never a Go nil")
	}
}

func TestAccessorsOnNonInternalNode(t *testing.T) {
	l := leaf(IntLit, 42)
	if !IsNull(Left(l)) || !IsNull(Right(l)) {
		t.Fatal("Left/Right of a leaf must be Dummy")
	}
	if OpOf(l) != NoOp {
		t.Fatal("OpOf a leaf must be NoOp")
	}
}

func TestAttachLeftmostBuildsCommaList(t *testing.T) {
	// Each element is a CommaOp whose Left is the free slot the next
	// element attaches to and whose Right holds the value (a bare leaf
	// has no child slots to attach into).
	elem := func(v int64) *Node { return MakeOp(CommaOp, NullNode(), leaf(IntLit, v), token.Position{}) }
	var list *Node = NullNode()
	list = AttachLeftmost(elem(1), list)
	list = AttachLeftmost(elem(2), list)
	list = AttachLeftmost(elem(3), list)

	if got := LeftDepth(list); got != 3 {
		t.Fatalf("LeftDepth = %d, want 3", got)
	}

	// Each AttachLeftmost descends to the first Dummy and installs there,
	// so the first element attached stays at the root and later ones
	// sit deeper along the left spine.
	if IntOf(Right(list)) != 1 {
		t.Fatalf("root element = %d, want 1 (first attached)", IntOf(Right(list)))
	}
}

func TestAttachLeftmostOnDummyReturnsT1(t *testing.T) {
	got := AttachLeftmost(leaf(IntLit, 7), NullNode())
	if got.Kind != IntLit || IntOf(got) != 7 {
		t.Fatal("attaching onto Dummy must return t1 itself")
	}
}

func TestAttachRightmostWalksRightSpine(t *testing.T) {
	elem := func(v int64) *Node { return MakeOp(CommaOp, leaf(IntLit, v), NullNode(), token.Position{}) }
	var list *Node = NullNode()
	list = AttachRightmost(elem(1), list)
	list = AttachRightmost(elem(2), list)

	if IntOf(Left(Right(list))) != 2 {
		t.Fatalf("second attach must land under Right, got %v", Right(list))
	}
}

func TestSetLeftSetRightNeverStoreNil(t *testing.T) {
	n := MakeOp(AddOp, leaf(IntLit, 1), leaf(IntLit, 2), token.Position{})
	SetLeft(n, nil)
	SetRight(n, nil)
	if !IsNull(Left(n)) || !IsNull(Right(n)) {
		t.Fatal("SetLeft/SetRight(nil) must store Dummy")
	}
}

func TestPrintTreeDoesNotPanicOnDummy(t *testing.T) {
	if out := PrintTree(NullNode(), nil); out != "" {
		t.Fatalf("PrintTree(Dummy) = %q, want empty", out)
	}
}
