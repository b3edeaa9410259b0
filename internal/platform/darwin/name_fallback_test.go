//go:build darwin

package darwin

import (
	"reflect"
	"testing"
)

func TestNameFallbackAttrs_TextRoles(t *testing.T) {
	want := []string{"AXLabel", "AXPlaceholderValue", "AXValue"}
	for _, role := range []string{"AXStaticText", "AXTextField", "AXTextArea", "AXSearchField", "AXComboBox", "AXLink"} {
		if got := nameFallbackAttrs(role); !reflect.DeepEqual(got, want) {
			t.Errorf("nameFallbackAttrs(%q) = %v, want %v", role, got, want)
		}
	}
}

func TestNameFallbackAttrs_NonTextRoles(t *testing.T) {
	// A slider or checkbox value must never be read as its name.
	for _, role := range []string{"AXSlider", "AXCheckBox", "AXButton", "AXGroup", "AXWindow", ""} {
		if got := nameFallbackAttrs(role); got != nil {
			t.Errorf("nameFallbackAttrs(%q) = %v, want nil", role, got)
		}
	}
}
