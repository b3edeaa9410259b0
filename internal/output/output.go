// Package output renders command results. All structured output goes to
// stdout; logs go to stderr so the two streams can be piped separately.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guipilot/guipilot/internal/ax"
	"github.com/guipilot/guipilot/internal/platform"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// TreeResult is the top-level output of the `elements` command and the
// list_elements tool.
type TreeResult struct {
	App    string   `yaml:"app,omitempty"    json:"app,omitempty"`
	PID    int      `yaml:"pid,omitempty"    json:"pid,omitempty"`
	Window string   `yaml:"window,omitempty" json:"window,omitempty"`
	TS     int64    `yaml:"ts"               json:"ts"`
	Tree   *ax.Node `yaml:"tree"             json:"tree"`
}

// ActionResult reports one dispatched action.
type ActionResult struct {
	App     string `yaml:"app"               json:"app"`
	ID      string `yaml:"id"                json:"id"`
	Action  string `yaml:"action"            json:"action"`
	Status  string `yaml:"status"            json:"status"`
	Channel string `yaml:"channel,omitempty" json:"channel,omitempty"`
	Detail  string `yaml:"detail,omitempty"  json:"detail,omitempty"`
}

// ValueResult reports one value read.
type ValueResult struct {
	App   string `yaml:"app"   json:"app"`
	ID    string `yaml:"id"    json:"id"`
	Value string `yaml:"value" json:"value"`
}

// AppsResult is the top-level output of the `apps` command.
type AppsResult struct {
	TS   int64              `yaml:"ts"   json:"ts"`
	Apps []platform.AppInfo `yaml:"apps" json:"apps"`
}

// PermissionsResult reports the accessibility trust state.
type PermissionsResult struct {
	Trusted bool   `yaml:"accessibility"  json:"accessibility"`
	Hint    string `yaml:"hint,omitempty" json:"hint,omitempty"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return fprintJSON(w, v, PrettyOutput)
	case FormatYAML:
		return fprintYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// Marshal renders v in the current output format as a string, for callers
// that embed results in another protocol rather than printing them.
func Marshal(v interface{}) (string, error) {
	var sb strings.Builder
	if err := Fprint(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func fprintJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func fprintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
