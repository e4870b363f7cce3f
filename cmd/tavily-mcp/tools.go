package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/tavily-mcp/internal/jsonschema"
	"github.com/leofalp/tavily-mcp/internal/utils"
	"github.com/leofalp/tavily-mcp/providers/tool/tavily"
)

// toolMetadata is the JSON shape printed by the tools command, matching
// what MCP hosts receive from tools/list.
type toolMetadata struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

func newToolsCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print tool metadata as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := tavily.ToolSpecs()
			if name != "" {
				spec, ok := tavily.ToolSpecFor(name)
				if !ok {
					return fmt.Errorf("unknown tool %q", name)
				}
				specs = []tavily.ToolSpec{spec}
			}

			metadata := make([]toolMetadata, len(specs))
			for i, spec := range specs {
				metadata[i] = toolMetadata{Name: spec.Name, Description: spec.Description, InputSchema: spec.InputSchema}
			}

			var out any = metadata
			if name != "" {
				out = metadata[0]
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), utils.JSONToString(out, true))
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "print only the named tool")
	return cmd
}
