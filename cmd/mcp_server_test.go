package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/guipilot/guipilot/internal/control"
	"github.com/guipilot/guipilot/internal/output"
	"github.com/mark3labs/mcp-go/mcp"
)

// newTestServer builds an MCP server over a controller with no platform
// backend. Handlers should surface errors as tool results, not Go errors.
func newTestServer() *mcpServer {
	return newMCPServer(control.New(nil, nil, nil, control.DefaultConfig()))
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestServe_UnsupportedTransport(t *testing.T) {
	s := newTestServer()
	err := s.serve(MCPConfig{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "websocket") {
		t.Errorf("error should name the transport: %v", err)
	}
}

func TestHandleListElements_NoBackend(t *testing.T) {
	s := newTestServer()
	res, err := s.handleListElements(context.Background(), callRequest(map[string]interface{}{
		"app": "Notes",
	}))
	if err != nil {
		t.Fatalf("handler returned Go error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool result error without a platform backend")
	}
}

func TestHandlePerformAction_NoBackend(t *testing.T) {
	s := newTestServer()
	res, err := s.handlePerformAction(context.Background(), callRequest(map[string]interface{}{
		"app": "Notes",
		"id":  "0/1",
	}))
	if err != nil {
		t.Fatalf("handler returned Go error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool result error without a platform backend")
	}
}

func TestHandleCheckPermissions_NoBackend(t *testing.T) {
	s := newTestServer()
	res, err := s.handleCheckPermissions(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler returned Go error: %v", err)
	}
	if res.IsError {
		t.Error("check_permissions should degrade to an untrusted report, not an error")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	if !strings.Contains(text.Text, "accessibility: false") {
		t.Errorf("expected untrusted report, got:\n%s", text.Text)
	}
}

func TestResultText_YAML(t *testing.T) {
	prev := output.OutputFormat
	output.OutputFormat = output.FormatYAML
	defer func() { output.OutputFormat = prev }()

	text := resultText(output.ActionResult{App: "Notes", ID: "0/1", Action: "press", Status: "ok"})
	for _, want := range []string{"app: Notes", "id: 0/1", "action: press", "status: ok"} {
		if !strings.Contains(text, want) {
			t.Errorf("resultText missing %q:\n%s", want, text)
		}
	}
}
