package ax

import (
	"errors"
	"testing"
)

func twoLevelTree() (*fakeElement, *fakeElement, *fakeElement) {
	ok := el("AXButton").withAttr(AttrTitle, "OK").withActions("press")
	status := el("AXStaticText").withAttr(AttrTitle, "Status")
	root := el("AXWindow", ok, status)
	return root, ok, status
}

func TestResolve_RoundTrip(t *testing.T) {
	a := el("AXButton").withActions("press")
	b := el("AXStaticText").withAttr(AttrTitle, "hello")
	inner := el("AXGroup", a, b)
	c := el("AXTextField")
	root := el("AXWindow", inner, c)

	tests := []struct {
		id   string
		want *fakeElement
	}{
		{"0", root},
		{"0/0", inner},
		{"0/0/0", a},
		{"0/0/1", b},
		{"0/1", c},
	}
	for _, tt := range tests {
		got, err := Resolve(root, tt.id)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tt.id, err)
			continue
		}
		if got != Element(tt.want) {
			t.Errorf("Resolve(%q) returned the wrong element", tt.id)
		}
	}
}

func TestResolve_SerializedIDsRoundTrip(t *testing.T) {
	root, _, _ := twoLevelTree()
	node, err := Serializer{}.Serialize(root)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	var walk func(n Node)
	walk = func(n Node) {
		if _, err := Resolve(root, n.ID); err != nil {
			t.Errorf("Resolve(%q) on the unchanged tree: %v", n.ID, err)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(*node)
}

func TestResolve_OutOfRangeIsNotFound(t *testing.T) {
	root, _, _ := twoLevelTree()

	// Addressed as if a third child existed (removed since serialization).
	_, err := Resolve(root, "0/2")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(0/2) = %v, want ErrNotFound", err)
	}
	_, err = Resolve(root, "0/0/0")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(0/0/0) on a leaf = %v, want ErrNotFound", err)
	}
}

func TestResolve_UnreadableChildListIsNotFound(t *testing.T) {
	inner := el("AXGroup")
	inner.childrenErr = errFakeGone
	root := el("AXWindow", inner)

	_, err := Resolve(root, "0/0/0")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve past unreadable children = %v, want ErrNotFound", err)
	}
}

func TestResolve_AtSuffixForm(t *testing.T) {
	root, ok, _ := twoLevelTree()
	got, err := Resolve(root, "button[0]@0/0")
	if err != nil {
		t.Fatalf("Resolve(@-form): %v", err)
	}
	if got != Element(ok) {
		t.Error("Resolve(@-form) returned the wrong element")
	}
}

func TestResolve_NativeIdentifier(t *testing.T) {
	target := el("AXButton").withAttr(AttrIdentifier, "sidebar-toggle").withActions("press")
	root := el("AXWindow", el("AXGroup", target))

	got, err := Resolve(root, "sidebar-toggle")
	if err != nil {
		t.Fatalf("Resolve(identifier): %v", err)
	}
	if got != Element(target) {
		t.Error("Resolve(identifier) returned the wrong element")
	}

	_, err = Resolve(root, "no-such-identifier")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(unknown identifier) = %v, want ErrNotFound", err)
	}
}

func TestResolve_EmptyAndNil(t *testing.T) {
	root, _, _ := twoLevelTree()
	if _, err := Resolve(root, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(\"\") = %v, want ErrNotFound", err)
	}
	if _, err := Resolve(nil, "0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(nil root) = %v, want ErrNotFound", err)
	}
}

func TestResolve_SkipsUnreadableChildren(t *testing.T) {
	// The resolver must index the same retained child list the serializer
	// produced, so a dead sibling does not shift addressing.
	broken := el("AXButton")
	broken.attrErrs = map[string]error{AttrRole: errFakeGone}
	target := el("AXStaticText").withAttr(AttrTitle, "Third")
	root := el("AXWindow", el("AXButton").withActions("press"), broken, target)

	got, err := Resolve(root, "0/1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != Element(target) {
		t.Error("Resolve(0/1) did not skip the unreadable sibling")
	}
}
