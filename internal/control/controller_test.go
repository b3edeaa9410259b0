package control

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/guipilot/guipilot/internal/ax"
	"github.com/guipilot/guipilot/internal/platform"
)

// stubElement is a minimal ax.Element for wiring tests. The engine's own
// behavior is covered in the ax package; here we only need trees the
// controller can resolve and act on.
type stubElement struct {
	attrs    map[string]string
	actions  []string
	children []*stubElement
	parent   *stubElement

	frame      [4]float64
	frameOK    bool
	performErr error
	performed  []string
	setErr     error
}

func (s *stubElement) Attr(name string) (string, error) {
	if v, ok := s.attrs[name]; ok {
		return v, nil
	}
	return "", fmt.Errorf("attribute %q unsupported", name)
}

func (s *stubElement) SetAttr(name, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.attrs == nil {
		s.attrs = map[string]string{}
	}
	s.attrs[name] = value
	return nil
}

func (s *stubElement) Actions() ([]string, error) { return s.actions, nil }

func (s *stubElement) Children() ([]ax.Element, error) {
	kids := make([]ax.Element, len(s.children))
	for i, c := range s.children {
		kids[i] = c
	}
	return kids, nil
}

func (s *stubElement) Parent() (ax.Element, error) {
	if s.parent == nil {
		return nil, nil
	}
	return s.parent, nil
}

func (s *stubElement) Perform(action string) error {
	if s.performErr != nil {
		return s.performErr
	}
	s.performed = append(s.performed, action)
	return nil
}

func (s *stubElement) Frame() (x, y, w, h float64, err error) {
	if !s.frameOK {
		return 0, 0, 0, 0, errors.New("no frame")
	}
	return s.frame[0], s.frame[1], s.frame[2], s.frame[3], nil
}

func stub(role string, children ...*stubElement) *stubElement {
	s := &stubElement{attrs: map[string]string{ax.AttrRole: role}, children: children}
	for _, c := range children {
		c.parent = s
	}
	return s
}

type fakeTrees struct {
	root *stubElement
	err  error
}

func (f *fakeTrees) AppRoot(appRef string) (ax.Element, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.root, nil
}

type fakeInputter struct {
	clicks  [][2]int
	typed   []string
	keys    []string
	scrolls [][4]int
	err     error
}

func (f *fakeInputter) Click(x, y int) error {
	if f.err != nil {
		return f.err
	}
	f.clicks = append(f.clicks, [2]int{x, y})
	return nil
}

func (f *fakeInputter) TypeText(text string) error {
	f.typed = append(f.typed, text)
	return nil
}

func (f *fakeInputter) KeyTap(key string) error {
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeInputter) Scroll(x, y, dx, dy int) error {
	if f.err != nil {
		return f.err
	}
	f.scrolls = append(f.scrolls, [4]int{x, y, dx, dy})
	return nil
}

type fakeApps struct {
	apps      []platform.AppInfo
	listErr   error
	launched  []string
	launchErr error
	focused   []string
}

func (f *fakeApps) RunningApps() ([]platform.AppInfo, error) { return f.apps, f.listErr }
func (f *fakeApps) Launch(appRef string) error {
	if f.launchErr != nil {
		return f.launchErr
	}
	f.launched = append(f.launched, appRef)
	return nil
}
func (f *fakeApps) Focus(appRef string) error {
	f.focused = append(f.focused, appRef)
	return nil
}

type fakePermissions struct {
	trusted bool
	opened  bool
}

func (f *fakePermissions) AccessibilityTrusted(prompt bool) bool { return f.trusted }
func (f *fakePermissions) OpenPrivacySettings() error {
	f.opened = true
	return nil
}

type fakeScripter struct {
	pressed   []string
	pressErr  error
	setFields []string
	setErr    error
	launched  []string
	processes []string
}

func (f *fakeScripter) PressButton(ctx context.Context, appRef, label string) error {
	if f.pressErr != nil {
		return f.pressErr
	}
	f.pressed = append(f.pressed, appRef+"/"+label)
	return nil
}

func (f *fakeScripter) SetTextField(ctx context.Context, appRef, label, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setFields = append(f.setFields, appRef+"/"+label+"="+value)
	return nil
}

func (f *fakeScripter) Launch(ctx context.Context, appRef string) error {
	f.launched = append(f.launched, appRef)
	return nil
}

func (f *fakeScripter) Activate(ctx context.Context, appRef string) error { return nil }

func (f *fakeScripter) Processes(ctx context.Context) ([]string, error) {
	return f.processes, nil
}

type fakeScreenshotter struct {
	img image.Image
	err error
}

func (f *fakeScreenshotter) CaptureDisplay() (image.Image, error) { return f.img, f.err }

func testProvider(root *stubElement) (*platform.Provider, *fakeInputter) {
	in := &fakeInputter{}
	return &platform.Provider{
		Trees:         &fakeTrees{root: root},
		Inputter:      in,
		Apps:          &fakeApps{},
		Permissions:   &fakePermissions{trusted: true},
		Screenshotter: &fakeScreenshotter{img: image.NewRGBA(image.Rect(0, 0, 20, 20))},
	}, in
}

func TestListElements(t *testing.T) {
	button := stub("AXButton")
	button.attrs[ax.AttrTitle] = "OK"
	button.actions = []string{"press"}
	root := stub("AXWindow", button)
	provider, _ := testProvider(root)

	c := New(provider, nil, nil, DefaultConfig())
	node, err := c.ListElements(context.Background(), ListOptions{App: "Notes"})
	if err != nil {
		t.Fatalf("ListElements: %v", err)
	}
	if node.ID != "0" || len(node.Children) != 1 {
		t.Errorf("tree = %+v", node)
	}
	if node.Children[0].Name != "OK" {
		t.Errorf("child name = %q, want OK", node.Children[0].Name)
	}
}

func TestListElements_PermissionFastFail(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	provider.Permissions = &fakePermissions{trusted: false}

	c := New(provider, nil, nil, DefaultConfig())
	_, err := c.ListElements(context.Background(), ListOptions{App: "Notes"})
	if !errors.Is(err, ax.ErrPermissionDenied) {
		t.Errorf("ListElements = %v, want ErrPermissionDenied", err)
	}
}

func TestPerformAction_AccessibilityTier(t *testing.T) {
	button := stub("AXButton")
	button.actions = []string{"press"}
	root := stub("AXWindow", button)
	provider, in := testProvider(root)

	c := New(provider, nil, nil, DefaultConfig())
	outcome, err := c.PerformAction(context.Background(), ActionOptions{App: "Notes", ID: "0/0", Action: "press"})
	if err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	if outcome.Channel != ChannelAccessibility {
		t.Errorf("channel = %q, want accessibility", outcome.Channel)
	}
	if len(button.performed) != 1 || button.performed[0] != "press" {
		t.Errorf("performed = %v", button.performed)
	}
	if len(in.clicks) != 0 {
		t.Errorf("coordinate tier should not run, clicked %v", in.clicks)
	}
}

func TestPerformAction_CoordinateFallback(t *testing.T) {
	// The element advertises no actions anywhere, so the accessibility
	// tier cannot dispatch; the captured center drives a click instead.
	label := stub("AXStaticText")
	label.frame = [4]float64{100, 200, 40, 20}
	label.frameOK = true
	root := stub("AXWindow", label)
	provider, in := testProvider(root)

	c := New(provider, nil, nil, DefaultConfig())
	outcome, err := c.PerformAction(context.Background(), ActionOptions{App: "Notes", ID: "0/0", Action: "press"})
	if err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	if outcome.Channel != ChannelCoordinates {
		t.Errorf("channel = %q, want coordinates", outcome.Channel)
	}
	if len(in.clicks) != 1 || in.clicks[0] != [2]int{120, 210} {
		t.Errorf("clicks = %v, want [[120 210]]", in.clicks)
	}
}

func TestPerformAction_TextEntryCoordinateFallback(t *testing.T) {
	field := stub("AXTextField")
	field.setErr = errors.New("value not settable")
	field.frame = [4]float64{10, 10, 100, 20}
	field.frameOK = true
	root := stub("AXWindow", field)
	provider, in := testProvider(root)

	c := New(provider, nil, nil, DefaultConfig())
	v := "hello"
	outcome, err := c.PerformAction(context.Background(), ActionOptions{App: "Notes", ID: "0/0", Action: "type", Value: &v})
	if err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	if outcome.Channel != ChannelCoordinates {
		t.Errorf("channel = %q, want coordinates", outcome.Channel)
	}
	if len(in.clicks) != 1 {
		t.Errorf("clicks = %v, want one click before typing", in.clicks)
	}
	if len(in.typed) != 1 || in.typed[0] != "hello" {
		t.Errorf("typed = %v, want [hello]", in.typed)
	}
}

func TestPerformAction_ScriptFallbackByLabel(t *testing.T) {
	// A labeled element with no actionable ancestors: the script tier gets
	// first refusal before coordinates.
	label := stub("AXStaticText")
	label.attrs[ax.AttrTitle] = "Done"
	label.frame = [4]float64{10, 10, 10, 10}
	label.frameOK = true
	root := stub("AXWindow", label)
	provider, in := testProvider(root)
	scripts := &fakeScripter{}

	c := New(provider, scripts, nil, DefaultConfig())
	outcome, err := c.PerformAction(context.Background(), ActionOptions{App: "Notes", ID: "0/0", Action: "press"})
	if err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	if outcome.Channel != ChannelScript {
		t.Errorf("channel = %q, want script", outcome.Channel)
	}
	if len(scripts.pressed) != 1 || scripts.pressed[0] != "Notes/Done" {
		t.Errorf("pressed = %v", scripts.pressed)
	}
	if len(in.clicks) != 0 {
		t.Errorf("coordinate tier ran after script succeeded: %v", in.clicks)
	}
}

func TestPerformAction_ScriptFailureFallsToCoordinates(t *testing.T) {
	label := stub("AXStaticText")
	label.attrs[ax.AttrTitle] = "Done"
	label.frame = [4]float64{10, 10, 10, 10}
	label.frameOK = true
	root := stub("AXWindow", label)
	provider, in := testProvider(root)
	scripts := &fakeScripter{pressErr: errors.New("no such button")}

	c := New(provider, scripts, nil, DefaultConfig())
	outcome, err := c.PerformAction(context.Background(), ActionOptions{App: "Notes", ID: "0/0", Action: "press"})
	if err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	if outcome.Channel != ChannelCoordinates {
		t.Errorf("channel = %q, want coordinates", outcome.Channel)
	}
	if len(in.clicks) != 1 {
		t.Errorf("clicks = %v", in.clicks)
	}
}

func TestPerformAction_AllTiersFailReturnsFirstError(t *testing.T) {
	label := stub("AXStaticText") // no actions, no frame
	root := stub("AXWindow", label)
	provider, _ := testProvider(root)

	c := New(provider, nil, nil, DefaultConfig())
	_, err := c.PerformAction(context.Background(), ActionOptions{App: "Notes", ID: "0/0", Action: "press"})
	if !errors.Is(err, ax.ErrActionUnsupported) {
		t.Errorf("PerformAction = %v, want the accessibility error", err)
	}
}

func TestPerformAction_AbortSurfaces(t *testing.T) {
	label := stub("AXStaticText")
	label.frame = [4]float64{10, 10, 10, 10}
	label.frameOK = true
	root := stub("AXWindow", label)
	provider, in := testProvider(root)
	in.err = platform.ErrAborted

	c := New(provider, nil, nil, DefaultConfig())
	_, err := c.PerformAction(context.Background(), ActionOptions{App: "Notes", ID: "0/0", Action: "press"})
	if !errors.Is(err, platform.ErrAborted) {
		t.Errorf("PerformAction = %v, want ErrAborted", err)
	}
}

func TestReadValue_NoFallback(t *testing.T) {
	field := stub("AXTextField")
	field.attrs[ax.AttrValue] = "42"
	root := stub("AXWindow", field)
	provider, in := testProvider(root)

	c := New(provider, nil, nil, DefaultConfig())
	v, err := c.ReadValue(context.Background(), "Notes", "0/0")
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	if v != "42" {
		t.Errorf("value = %q, want 42", v)
	}
	if len(in.clicks)+len(in.typed) != 0 {
		t.Error("reads must never touch the input tiers")
	}
}

func TestReadValue_UnresolvableIsError(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	c := New(provider, nil, nil, DefaultConfig())
	_, err := c.ReadValue(context.Background(), "Notes", "0/9")
	if !errors.Is(err, ax.ErrNotFound) {
		t.Errorf("ReadValue = %v, want ErrNotFound", err)
	}
}

func TestScroll_AccessibilityFirst(t *testing.T) {
	area := stub("AXScrollArea")
	area.actions = []string{"scrolldown"}
	root := stub("AXWindow", area)
	provider, in := testProvider(root)

	c := New(provider, nil, nil, DefaultConfig())
	outcome, err := c.Scroll(context.Background(), "Notes", "0/0", "down", 0)
	if err != nil {
		t.Fatalf("Scroll: %v", err)
	}
	if outcome.Channel != ChannelAccessibility {
		t.Errorf("channel = %q, want accessibility", outcome.Channel)
	}
	if len(in.scrolls) != 0 {
		t.Errorf("wheel events = %v, want none", in.scrolls)
	}
}

func TestScroll_WheelFallback(t *testing.T) {
	area := stub("AXGroup")
	area.frame = [4]float64{0, 0, 200, 200}
	area.frameOK = true
	root := stub("AXWindow", area)
	provider, in := testProvider(root)

	c := New(provider, nil, nil, DefaultConfig())
	outcome, err := c.Scroll(context.Background(), "Notes", "0/0", "down", 3)
	if err != nil {
		t.Fatalf("Scroll: %v", err)
	}
	if outcome.Channel != ChannelCoordinates {
		t.Errorf("channel = %q, want coordinates", outcome.Channel)
	}
	if len(in.scrolls) != 1 || in.scrolls[0] != [4]int{100, 100, 0, -3} {
		t.Errorf("scrolls = %v, want [[100 100 0 -3]]", in.scrolls)
	}
}

func TestScroll_UnknownDirection(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	c := New(provider, nil, nil, DefaultConfig())
	if _, err := c.Scroll(context.Background(), "Notes", "0", "sideways", 0); err == nil {
		t.Error("unknown direction should error")
	}
}

func TestRunningApps_Native(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	provider.Apps = &fakeApps{apps: []platform.AppInfo{{Name: "Finder", PID: 100}}}

	c := New(provider, nil, nil, DefaultConfig())
	apps, err := c.RunningApps(context.Background())
	if err != nil {
		t.Fatalf("RunningApps: %v", err)
	}
	if len(apps) != 1 || apps[0].Name != "Finder" {
		t.Errorf("apps = %v", apps)
	}
}

func TestRunningApps_ScriptFallback(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	provider.Apps = &fakeApps{listErr: errors.New("process table unavailable")}
	scripts := &fakeScripter{processes: []string{"Finder", "Notes"}}

	c := New(provider, scripts, nil, DefaultConfig())
	apps, err := c.RunningApps(context.Background())
	if err != nil {
		t.Fatalf("RunningApps: %v", err)
	}
	if len(apps) != 2 || apps[1].Name != "Notes" {
		t.Errorf("apps = %v", apps)
	}
}

func TestStartApp_ScriptFallback(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	provider.Apps = &fakeApps{launchErr: errors.New("not found in workspace")}
	scripts := &fakeScripter{}

	c := New(provider, scripts, nil, DefaultConfig())
	if err := c.StartApp(context.Background(), "Notes", 0, false); err != nil {
		t.Fatalf("StartApp: %v", err)
	}
	if len(scripts.launched) != 1 || scripts.launched[0] != "Notes" {
		t.Errorf("launched = %v", scripts.launched)
	}
}

func TestStartApp_NativeLaunch(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	apps := &fakeApps{}
	provider.Apps = apps

	c := New(provider, nil, nil, DefaultConfig())
	if err := c.StartApp(context.Background(), "Notes", time.Millisecond, false); err != nil {
		t.Fatalf("StartApp: %v", err)
	}
	if len(apps.launched) != 1 || apps.launched[0] != "Notes" {
		t.Errorf("launched = %v", apps.launched)
	}
	if len(apps.focused) != 0 {
		t.Errorf("focused = %v, want none without the focus flag", apps.focused)
	}
}

func TestStartApp_FocusAfterLaunch(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	apps := &fakeApps{}
	provider.Apps = apps

	c := New(provider, nil, nil, DefaultConfig())
	if err := c.StartApp(context.Background(), "Notes", 0, true); err != nil {
		t.Fatalf("StartApp: %v", err)
	}
	if len(apps.launched) != 1 || apps.launched[0] != "Notes" {
		t.Errorf("launched = %v", apps.launched)
	}
	if len(apps.focused) != 1 || apps.focused[0] != "Notes" {
		t.Errorf("focused = %v, want [Notes]", apps.focused)
	}
}

func TestCheckPermissions(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	c := New(provider, nil, nil, DefaultConfig())
	if state := c.CheckPermissions(false); !state.Trusted || state.Hint != "" {
		t.Errorf("state = %+v, want trusted with no hint", state)
	}

	provider.Permissions = &fakePermissions{trusted: false}
	if state := c.CheckPermissions(false); state.Trusted || state.Hint == "" {
		t.Errorf("state = %+v, want untrusted with a hint", state)
	}
}

func TestScreenshot_EncodesPNG(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	c := New(provider, nil, nil, DefaultConfig())
	data, err := c.Screenshot(context.Background(), ScreenshotOptions{Format: "png", Scale: 1.0})
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if len(data) == 0 || string(data[1:4]) != "PNG" {
		t.Errorf("not a PNG payload: %d bytes", len(data))
	}
}

func TestScreenshot_AnnotationBestEffort(t *testing.T) {
	provider, _ := testProvider(stub("AXWindow"))
	provider.Trees = &fakeTrees{err: errors.New("app gone")}

	c := New(provider, nil, nil, DefaultConfig())
	data, err := c.Screenshot(context.Background(), ScreenshotOptions{Format: "png", Scale: 1.0, Annotate: true, App: "Notes"})
	if err != nil {
		t.Fatalf("annotation failure must not fail the capture: %v", err)
	}
	if len(data) == 0 {
		t.Error("no image data")
	}
}

func TestScrollDelta(t *testing.T) {
	tests := []struct {
		action string
		dx, dy int
	}{
		{"scrollup", 0, 5},
		{"scrolldown", 0, -5},
		{"scrollleft", 5, 0},
		{"scrollright", -5, 0},
	}
	for _, tt := range tests {
		dx, dy := scrollDelta(tt.action, 0)
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("scrollDelta(%s) = (%d,%d), want (%d,%d)", tt.action, dx, dy, tt.dx, tt.dy)
		}
	}
}
