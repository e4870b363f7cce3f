package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCallCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool> [json-args|-]",
		Short: "Invoke one tool and print the response",
		Long: "Invoke one tool once and print the response JSON.\n\n" +
			"Arguments are a JSON object; minor syntax errors (single quotes,\n" +
			"unquoted keys, trailing commas) are repaired. Use - to read them\n" +
			"from stdin.",
		Example: `  tavily-mcp call tavily-search '{query: "golang generics", max_results: 5}'
  echo '{"url": "https://go.dev"}' | tavily-mcp call tavily-map -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			t, ok := catalog.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown tool %q", args[0])
			}

			input := "{}"
			if len(args) == 2 {
				input = args[1]
			}
			if input == "-" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading arguments: %w", err)
				}
				input = string(raw)
			}

			output, err := t.Call(cmd.Context(), input)
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, []byte(output), "", "  "); err != nil {
				pretty.Reset()
				pretty.WriteString(output)
			}
			pretty.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(pretty.Bytes())
			return err
		},
	}

	return cmd
}
