//go:build darwin

package darwin

// nameFallbackAttrs lists the value-family attributes that carry an
// element's visible text when its title-like attributes are empty.
// Static text keeps its content in AXValue; fields expose a placeholder
// before any typed value. Non-text roles get no fallback, so a slider's
// numeric value never becomes its name.
func nameFallbackAttrs(rawRole string) []string {
	switch rawRole {
	case "AXStaticText", "AXTextField", "AXTextArea", "AXSearchField", "AXComboBox", "AXLink":
		return []string{"AXLabel", "AXPlaceholderValue", "AXValue"}
	}
	return nil
}
