package main

import (
	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"flowcap/internal/logging"
	"flowcap/internal/mcpserver"
)

var serveFlags struct {
	root    string
	workDir string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing list_workflows,
run_workflow, and capture_screenshots tools, so an agent can drive flowcap
directly instead of shelling out to the CLI.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.root, "root", "", "recordings root (default from config)")
	f.StringVar(&serveFlags.workDir, "workdir", "", "artifact collection base directory (default cwd)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	root := serveFlags.root
	if root == "" {
		root = cfg.RecordingsRoot
	}

	srv := mcpserver.NewServer(root, serveFlags.workDir)

	logging.New("mcp").Info("starting flowcap MCP server over stdio")
	return srv.Run(cmd.Context(), &sdkmcp.StdioTransport{})
}
