// Package mcpserver exposes flowcap's workflows as MCP tools over stdio, so
// an agent can list recordings, replay them, and capture screenshots without
// shelling out to the CLI.
package mcpserver

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"flowcap/internal/executor"
	"flowcap/internal/manifest"
	"flowcap/internal/recorder"
	"flowcap/internal/workflow"
)

// Server wraps the MCP SDK server around the workflow core.
type Server struct {
	MCPServer *sdkmcp.Server
	Root      string // recordings root for list/run tools
	WorkDir   string // artifact collection base for run_workflow
}

// NewServer creates an MCP server with the workflow tool set registered.
func NewServer(root, workDir string) *Server {
	s := &Server{Root: root, WorkDir: workDir}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "flowcap", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over the given transport until the context ends.
func (s *Server) Run(ctx context.Context, transport sdkmcp.Transport) error {
	return s.MCPServer.Run(ctx, transport)
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_workflows",
		Description: "List recorded workflows: name, description, required parameters, declared artifacts.",
	}, s.handleListWorkflows)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "run_workflow",
		Description: "Replay a recorded workflow by name with parameter substitution. Returns the execution result.",
	}, s.handleRunWorkflow)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "capture_screenshots",
		Description: "Capture screenshots of an HTML page across viewports and UI states. Stub renderer unless browser=chrome.",
	}, s.handleCaptureScreenshots)
}

// --- Tool input/output types ---

type listWorkflowsInput struct{}

type workflowSummary struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Version         string            `json:"version"`
	InputParameters map[string]string `json:"input_parameters,omitempty"`
	OutputArtifacts []string          `json:"output_artifacts,omitempty"`
}

type listWorkflowsOutput struct {
	Workflows []workflowSummary `json:"workflows"`
	Total     int               `json:"total"`
}

type runWorkflowInput struct {
	Name       string            `json:"name" jsonschema:"workflow name under the recordings root"`
	Parameters map[string]string `json:"parameters,omitempty" jsonschema:"parameter values keyed by the manifest's input parameter names"`
}

type captureScreenshotsInput struct {
	HTMLPath  string   `json:"html_path" jsonschema:"path to the HTML page to capture"`
	OutputDir string   `json:"output_dir" jsonschema:"directory to write {viewport}_{state}.png files into"`
	Viewports []string `json:"viewports,omitempty" jsonschema:"viewport presets (desktop, tablet, mobile); default all"`
	States    []string `json:"states,omitempty" jsonschema:"UI states to capture; default overview, task_detail, log_expanded, log_collapsed"`
	Browser   string   `json:"browser,omitempty" jsonschema:"renderer: stub (default) or chrome"`
}

type runOutput struct {
	Success       bool     `json:"success"`
	WorkflowName  string   `json:"workflow_name"`
	Artifacts     []string `json:"artifacts,omitempty"`
	Logs          []string `json:"logs,omitempty"`
	Error         string   `json:"error,omitempty"`
	ExecutionTime float64  `json:"execution_time_seconds"`
}

func toRunOutput(res manifest.Result) runOutput {
	return runOutput{
		Success:       res.Success,
		WorkflowName:  res.WorkflowName,
		Artifacts:     res.Artifacts,
		Logs:          res.Logs,
		Error:         res.Error,
		ExecutionTime: res.ExecutionTime,
	}
}

// --- Tool handlers ---

func (s *Server) handleListWorkflows(_ context.Context, _ *sdkmcp.CallToolRequest, _ listWorkflowsInput) (*sdkmcp.CallToolResult, listWorkflowsOutput, error) {
	manifests, err := recorder.List(s.Root)
	if err != nil {
		return nil, listWorkflowsOutput{}, fmt.Errorf("list workflows: %w", err)
	}

	out := listWorkflowsOutput{Total: len(manifests)}
	for _, m := range manifests {
		out.Workflows = append(out.Workflows, workflowSummary{
			Name:            m.WorkflowName,
			Description:     m.Description,
			Version:         m.Version,
			InputParameters: m.InputParameters,
			OutputArtifacts: m.OutputArtifacts,
		})
	}
	return nil, out, nil
}

func (s *Server) handleRunWorkflow(ctx context.Context, _ *sdkmcp.CallToolRequest, input runWorkflowInput) (*sdkmcp.CallToolResult, runOutput, error) {
	if input.Name == "" {
		return nil, runOutput{}, fmt.Errorf("name is required")
	}

	e := executor.New(input.Name, input.Parameters)
	e.Root = s.Root
	e.WorkDir = s.WorkDir

	return nil, toRunOutput(e.Execute(ctx)), nil
}

func (s *Server) handleCaptureScreenshots(ctx context.Context, _ *sdkmcp.CallToolRequest, input captureScreenshotsInput) (*sdkmcp.CallToolResult, runOutput, error) {
	if input.HTMLPath == "" || input.OutputDir == "" {
		return nil, runOutput{}, fmt.Errorf("html_path and output_dir are required")
	}

	var renderer workflow.Renderer
	switch input.Browser {
	case "", "stub":
		renderer = &workflow.StubRenderer{}
	case "chrome":
		renderer = &workflow.ChromeRenderer{}
	default:
		return nil, runOutput{}, fmt.Errorf("unknown browser %q (valid: stub, chrome)", input.Browser)
	}

	wf := &workflow.Screenshot{
		HTMLPath:  input.HTMLPath,
		OutputDir: input.OutputDir,
		Viewports: input.Viewports,
		States:    input.States,
		Renderer:  renderer,
	}
	return nil, toRunOutput(wf.Execute(ctx)), nil
}
