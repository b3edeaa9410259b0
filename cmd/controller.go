package cmd

import (
	"fmt"

	"github.com/guipilot/guipilot/internal/control"
	"github.com/guipilot/guipilot/internal/platform"
	"github.com/guipilot/guipilot/internal/script"
)

// newController builds the shared Controller used by the CLI commands and
// the MCP server: native platform backends plus the scripting channel.
func newController() (*control.Controller, error) {
	cfg := control.DefaultConfig()
	provider, err := platform.NewProvider(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize platform backend: %w", err)
	}
	return control.New(provider, script.NewChannel(), logger, cfg), nil
}
