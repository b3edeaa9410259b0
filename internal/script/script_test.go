package script

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestQuote(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Safari", `"Safari"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestAppReference(t *testing.T) {
	if got := AppReference("Safari"); got != `application "Safari"` {
		t.Errorf("AppReference by name = %s", got)
	}
	if got := AppReference("com.apple.Safari"); got != `application id "com.apple.Safari"` {
		t.Errorf("AppReference by bundle id = %s", got)
	}
}

func TestScriptBuilders(t *testing.T) {
	tests := []struct {
		name   string
		source string
		wants  []string
	}{
		{"launch", LaunchScript("Notes"), []string{`application "Notes"`, "launch", "activate"}},
		{"activate", ActivateScript("com.apple.Notes"), []string{`application id "com.apple.Notes"`, "activate"}},
		{"press", PressButtonScript("Notes", "OK"), []string{`process "Notes"`, `click button "OK" of front window`}},
		{"click named", ClickMenuItemScript("Notes", "Done"), []string{`whose name is "Done"`}},
		{"set field", SetTextFieldScript("Notes", "Search", "cats"), []string{`text field "Search"`, `to "cats"`}},
		{"set first field", SetTextFieldScript("Notes", "", "cats"), []string{"text field 1"}},
		{"read field", TextFieldValueScript("Notes", "Search"), []string{`get value of text field "Search"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.wants {
				if !strings.Contains(tt.source, want) {
					t.Errorf("script %q does not contain %q", tt.source, want)
				}
			}
		})
	}
}

func TestRunner_TrimsOutput(t *testing.T) {
	r := &Runner{execute: func(ctx context.Context, source string) (string, error) {
		return "  hello \n", nil
	}}
	out, err := r.Run(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q, want hello", out)
	}
}

func TestRunner_Timeout(t *testing.T) {
	r := &Runner{
		Timeout: 10 * time.Millisecond,
		execute: func(ctx context.Context, source string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	_, err := r.Run(context.Background(), "delay 60")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Run = %v, want ErrTimeout", err)
	}
}

func TestRunner_PassesThroughErrors(t *testing.T) {
	boom := errors.New("execution error: no such button")
	r := &Runner{execute: func(ctx context.Context, source string) (string, error) {
		return "", boom
	}}
	_, err := r.Run(context.Background(), "ignored")
	if !errors.Is(err, boom) {
		t.Errorf("Run = %v, want the script error", err)
	}
}

func TestChannel_PressButtonFallsBackToNamedElement(t *testing.T) {
	var sources []string
	r := &Runner{execute: func(ctx context.Context, source string) (string, error) {
		sources = append(sources, source)
		if strings.Contains(source, "click button") {
			return "", errors.New("no such button")
		}
		return "", nil
	}}
	c := &Channel{Runner: r}
	if err := c.PressButton(context.Background(), "Notes", "Done"); err != nil {
		t.Fatalf("PressButton: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("ran %d scripts, want 2 (button then named element)", len(sources))
	}
	if !strings.Contains(sources[1], "whose name is") {
		t.Errorf("fallback script = %q", sources[1])
	}
}

func TestChannel_Processes(t *testing.T) {
	r := &Runner{execute: func(ctx context.Context, source string) (string, error) {
		return "Finder, Safari, Notes", nil
	}}
	c := &Channel{Runner: r}
	got, err := c.Processes(context.Background())
	if err != nil {
		t.Fatalf("Processes: %v", err)
	}
	want := []string{"Finder", "Safari", "Notes"}
	if len(got) != len(want) {
		t.Fatalf("Processes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Processes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
