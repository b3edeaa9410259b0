package platform

import (
	"fmt"
	"strings"
	"time"
)

// AppInfo describes one running application.
type AppInfo struct {
	Name      string `json:"name"                yaml:"name"`
	BundleID  string `json:"bundle_id,omitempty" yaml:"bundle_id,omitempty"`
	PID       int    `json:"pid"                 yaml:"pid"`
	Frontmost bool   `json:"frontmost,omitempty" yaml:"frontmost,omitempty"`
}

// InputConfig tunes coordinate-level input simulation.
type InputConfig struct {
	// AbortOnCornerMove aborts a pending simulated gesture when the
	// physical cursor sits in the top-left screen corner, giving the human
	// at the machine an escape hatch.
	AbortOnCornerMove bool

	// InterActionDelay is the pause inserted after each simulated event so
	// the target application can observe it.
	InterActionDelay time.Duration
}

// DefaultInputConfig returns the input simulation policy used in
// production: the corner escape hatch on, a human-ish pacing delay.
func DefaultInputConfig() InputConfig {
	return InputConfig{
		AbortOnCornerMove: true,
		InterActionDelay:  100 * time.Millisecond,
	}
}

// ErrAborted is returned by input simulation when the corner escape hatch
// cancelled a pending gesture.
var ErrAborted = fmt.Errorf("input aborted: cursor in the screen corner")

// AppRefIsBundleID reports whether an app reference looks like a bundle
// identifier ("com.apple.Safari") rather than a display name ("Safari").
func AppRefIsBundleID(ref string) bool {
	if strings.HasSuffix(strings.ToLower(ref), ".app") {
		return false
	}
	return strings.Contains(ref, ".") && !strings.Contains(ref, " ")
}

// NameVariations returns the lookup candidates tried when resolving an app
// by display name. Application names differ between what users type and
// what the process table reports, so resolution tries a few obvious
// spellings before giving up.
func NameVariations(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	seen := map[string]bool{}
	variations := make([]string, 0, 4)
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}
	// Users sometimes pass the bundle directory name ("Notes.app").
	if trimmed := strings.TrimSuffix(name, ".app"); trimmed != name {
		name = strings.TrimSpace(trimmed)
	}
	add(name)
	add(titleCase(name))
	add(strings.ToLower(name))
	add(strings.ReplaceAll(name, " ", ""))
	return variations
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
