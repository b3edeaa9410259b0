package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/guipilot/guipilot/internal/control"
	"github.com/guipilot/guipilot/internal/output"
	"github.com/guipilot/guipilot/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// mcpServer wraps the MCP server with the shared controller.
type mcpServer struct {
	ctrl *control.Controller
	mcp  *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all guipilot tools.
func newMCPServer(ctrl *control.Controller) *mcpServer {
	s := &mcpServer{ctrl: ctrl}
	s.mcp = mcpserver.NewMCPServer(
		"guipilot",
		version.Version,
	)
	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// list_elements
	s.mcp.AddTool(
		mcp.NewTool("list_elements",
			mcp.WithDescription("Read the UI element tree of an application's focused window. Returns elements with stable ids, roles, names, and available actions."),
			mcp.WithString("app", mcp.Description("Application name or bundle id (e.g. 'Notes', 'com.apple.Safari')"), mcp.Required()),
			mcp.WithNumber("depth", mcp.Description("Max depth to traverse (0 = default bound)")),
		),
		s.handleListElements,
	)

	// perform_element_action
	s.mcp.AddTool(
		mcp.NewTool("perform_element_action",
			mcp.WithDescription("Perform an action (press, showmenu, open, type, ...) on a UI element by id, with automatic fallback to scripting and coordinate simulation"),
			mcp.WithString("app", mcp.Description("Application name or bundle id"), mcp.Required()),
			mcp.WithString("id", mcp.Description("Element id from list_elements (e.g. '0/1/2' or 'Save@0/1/2')"), mcp.Required()),
			mcp.WithString("action", mcp.Description("Action to perform (default: press)")),
			mcp.WithString("value", mcp.Description("Value for text-entry actions (type, input, setvalue)")),
		),
		s.handlePerformAction,
	)

	// read_value
	s.mcp.AddTool(
		mcp.NewTool("read_value",
			mcp.WithDescription("Read the current value of a UI element via the accessibility layer"),
			mcp.WithString("app", mcp.Description("Application name or bundle id"), mcp.Required()),
			mcp.WithString("id", mcp.Description("Element id from list_elements"), mcp.Required()),
		),
		s.handleReadValue,
	)

	// scroll
	s.mcp.AddTool(
		mcp.NewTool("scroll",
			mcp.WithDescription("Scroll within a UI element"),
			mcp.WithString("app", mcp.Description("Application name or bundle id"), mcp.Required()),
			mcp.WithString("id", mcp.Description("Element id from list_elements"), mcp.Required()),
			mcp.WithString("direction", mcp.Description("Scroll direction: up, down, left, right"), mcp.Required()),
			mcp.WithNumber("amount", mcp.Description("Wheel clicks for the coordinate fallback (default: 5)")),
		),
		s.handleScroll,
	)

	// list_running_apps
	s.mcp.AddTool(
		mcp.NewTool("list_running_apps",
			mcp.WithDescription("List visible running applications with bundle ids and PIDs"),
		),
		s.handleListApps,
	)

	// start_app
	s.mcp.AddTool(
		mcp.NewTool("start_app",
			mcp.WithDescription("Launch an application (or bring a running one to the front) and wait for it to settle"),
			mcp.WithString("app", mcp.Description("Application name or bundle id"), mcp.Required()),
			mcp.WithNumber("wait", mcp.Description("Milliseconds to wait after launch (default: 1000)")),
			mcp.WithBoolean("focus", mcp.Description("Bring the app to the front after the wait")),
		),
		s.handleStartApp,
	)

	// focus_app
	s.mcp.AddTool(
		mcp.NewTool("focus_app",
			mcp.WithDescription("Bring a running application to the front"),
			mcp.WithString("app", mcp.Description("Application name or bundle id"), mcp.Required()),
		),
		s.handleFocusApp,
	)

	// check_permissions
	s.mcp.AddTool(
		mcp.NewTool("check_permissions",
			mcp.WithDescription("Check whether this process is trusted to use the accessibility APIs"),
			mcp.WithBoolean("prompt", mcp.Description("Ask the OS to show its permission prompt")),
		),
		s.handleCheckPermissions,
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture a downscaled screenshot of the display, optionally annotated with element ids"),
			mcp.WithString("format", mcp.Description("Image format: png, jpg (default: png)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default: 80)")),
			mcp.WithNumber("scale", mcp.Description("Scale factor 0.1-1.0 (default: 0.5)")),
			mcp.WithBoolean("annotate", mcp.Description("Overlay element ids from app's focused window")),
			mcp.WithString("app", mcp.Description("Application whose elements are annotated")),
		),
		s.handleScreenshot,
	)
}

// resultText renders v in the current output format for an MCP response.
func resultText(v interface{}) string {
	text, err := output.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return text
}

func (s *mcpServer) handleListElements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")
	depth := intParam(params, "depth", 0)

	node, err := s.ctrl.ListElements(ctx, control.ListOptions{App: app, MaxDepth: depth})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultText(output.TreeResult{
		App:  app,
		TS:   time.Now().Unix(),
		Tree: node,
	})), nil
}

func (s *mcpServer) handlePerformAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := control.ActionOptions{
		App:    stringParam(params, "app", ""),
		ID:     stringParam(params, "id", ""),
		Action: stringParam(params, "action", "press"),
	}
	if _, ok := params["value"]; ok {
		value := stringParam(params, "value", "")
		opts.Value = &value
	}

	outcome, err := s.ctrl.PerformAction(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultText(output.ActionResult{
		App:     opts.App,
		ID:      opts.ID,
		Action:  opts.Action,
		Status:  "ok",
		Channel: outcome.Channel,
		Detail:  outcome.Detail,
	})), nil
}

func (s *mcpServer) handleReadValue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")
	id := stringParam(params, "id", "")

	value, err := s.ctrl.ReadValue(ctx, app, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultText(output.ValueResult{App: app, ID: id, Value: value})), nil
}

func (s *mcpServer) handleScroll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")
	id := stringParam(params, "id", "")
	direction := stringParam(params, "direction", "")
	amount := intParam(params, "amount", 0)

	outcome, err := s.ctrl.Scroll(ctx, app, id, direction, amount)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultText(output.ActionResult{
		App:     app,
		ID:      id,
		Action:  "scroll" + direction,
		Status:  "ok",
		Channel: outcome.Channel,
		Detail:  outcome.Detail,
	})), nil
}

func (s *mcpServer) handleListApps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	apps, err := s.ctrl.RunningApps(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultText(output.AppsResult{TS: time.Now().Unix(), Apps: apps})), nil
}

func (s *mcpServer) handleStartApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")
	waitMs := intParam(params, "wait", 1000)
	focus := boolParam(params, "focus", false)

	if err := s.ctrl.StartApp(ctx, app, time.Duration(waitMs)*time.Millisecond, focus); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultText(output.ActionResult{App: app, Action: "start", Status: "ok"})), nil
}

func (s *mcpServer) handleFocusApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")

	if err := s.ctrl.FocusApp(ctx, app); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultText(output.ActionResult{App: app, Action: "focus", Status: "ok"})), nil
}

func (s *mcpServer) handleCheckPermissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	prompt := boolParam(params, "prompt", false)

	state := s.ctrl.CheckPermissions(prompt)
	return mcp.NewToolResultText(resultText(output.PermissionsResult{
		Trusted: state.Trusted,
		Hint:    state.Hint,
	})), nil
}

func (s *mcpServer) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	format := stringParam(params, "format", "png")

	data, err := s.ctrl.Screenshot(ctx, control.ScreenshotOptions{
		Format:   format,
		Quality:  intParam(params, "quality", 80),
		Scale:    floatParam(params, "scale", 0.5),
		Annotate: boolParam(params, "annotate", false),
		App:      stringParam(params, "app", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b64 := base64.StdEncoding.EncodeToString(data)
	mimeType := "image/png"
	if format == "jpg" || format == "jpeg" {
		mimeType = "image/jpeg"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     b64,
				MIMEType: mimeType,
			},
		},
	}, nil
}
