package ax

import (
	"errors"
	"fmt"
)

// fakeElement is an in-memory Element used across the package tests. It
// can be made flaky per attribute to exercise the failure-tolerance paths.
type fakeElement struct {
	attrs    map[string]string
	attrErrs map[string]error

	// roleReadsOK, when > 0, allows that many successful role reads and
	// errors afterwards (simulates a handle dying mid-serialization).
	roleReadsOK int
	roleReads   int

	actions    []string
	actionsErr error

	children    []*fakeElement
	childrenErr error
	parent      *fakeElement

	frame    [4]float64
	frameErr error

	performed  []string
	performErr map[string]error

	set    map[string]string
	setErr error
}

var errFakeGone = errors.New("element gone")

func (f *fakeElement) Attr(name string) (string, error) {
	if name == AttrRole && f.roleReadsOK > 0 {
		f.roleReads++
		if f.roleReads > f.roleReadsOK {
			return "", errFakeGone
		}
	}
	if err, ok := f.attrErrs[name]; ok {
		return "", err
	}
	v, ok := f.attrs[name]
	if !ok {
		return "", fmt.Errorf("attribute %q unsupported", name)
	}
	return v, nil
}

func (f *fakeElement) SetAttr(name, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.set == nil {
		f.set = make(map[string]string)
	}
	f.set[name] = value
	return nil
}

func (f *fakeElement) Actions() ([]string, error) {
	if f.actionsErr != nil {
		return nil, f.actionsErr
	}
	return append([]string(nil), f.actions...), nil
}

func (f *fakeElement) Children() ([]Element, error) {
	if f.childrenErr != nil {
		return nil, f.childrenErr
	}
	kids := make([]Element, len(f.children))
	for i, c := range f.children {
		kids[i] = c
	}
	return kids, nil
}

func (f *fakeElement) Parent() (Element, error) {
	if f.parent == nil {
		return nil, nil
	}
	return f.parent, nil
}

func (f *fakeElement) Perform(action string) error {
	if err, ok := f.performErr[action]; ok {
		return err
	}
	f.performed = append(f.performed, action)
	return nil
}

func (f *fakeElement) Frame() (x, y, w, h float64, err error) {
	if f.frameErr != nil {
		return 0, 0, 0, 0, f.frameErr
	}
	return f.frame[0], f.frame[1], f.frame[2], f.frame[3], nil
}

// el builds a fakeElement with a role and links children to it.
func el(role string, children ...*fakeElement) *fakeElement {
	f := &fakeElement{attrs: map[string]string{AttrRole: role}, children: children}
	for _, c := range children {
		c.parent = f
	}
	return f
}

func (f *fakeElement) withAttr(name, value string) *fakeElement {
	f.attrs[name] = value
	return f
}

func (f *fakeElement) withActions(actions ...string) *fakeElement {
	f.actions = actions
	return f
}

func (f *fakeElement) withFrame(x, y, w, h float64) *fakeElement {
	f.frame = [4]float64{x, y, w, h}
	return f
}
