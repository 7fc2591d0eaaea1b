package main

import (
	"github.com/spf13/cobra"

	"github.com/risor-io/expr/dis"
)

func newDisCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [expression]",
		Short: "Disassemble the bytecode of an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.getSource(cmd, args)
			if err != nil {
				return err
			}
			format, err := checkFormat(flagString(cmd, "output"))
			if err != nil {
				return err
			}
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			code, err := engine.Compile(source)
			if err != nil {
				return a.formatError(err)
			}
			instructions, err := dis.Disassemble(code, engine)
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(a.out, map[string]any{
					"source":       source,
					"strings":      code.Strings(),
					"instructions": instructions,
				})
			}
			return dis.Print(instructions, a.out)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	return cmd
}
