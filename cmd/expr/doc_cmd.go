package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/risor-io/expr"
	"github.com/risor-io/expr/internal/table"
)

var docCategories = []string{"functions", "operators", "syntax", "errors"}

func newDocCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc [topic]",
		Aliases: []string{"d"},
		Short:   "Show functions, operators and syntax",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(flagString(cmd, "output"))
			if err != nil {
				return err
			}
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			var topic string
			if len(args) > 0 {
				topic = args[0]
			}
			if format == "json" {
				return writeJSON(a.out, docsFor(engine, topic).Data())
			}
			if topic == "" || topic == "functions" {
				return printFunctionTable(a, engine.FunctionDocs())
			}
			fmt.Fprintln(a.out, docsFor(engine, topic).JSON())
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	return cmd
}

func docsFor(engine *expr.Engine, topic string) *expr.Documentation {
	switch {
	case topic == "":
		return engine.Docs(expr.DocsCategory("functions"))
	case topic == "all":
		return engine.Docs(expr.DocsAll())
	}
	for _, category := range docCategories {
		if strings.EqualFold(topic, category) {
			return engine.Docs(expr.DocsCategory(category))
		}
	}
	return engine.Docs(expr.DocsTopic(topic))
}

func printFunctionTable(a *app, docs []expr.FunctionDoc) error {
	name := color.New(color.Bold)
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		signature := doc.Name + "(" + strings.Join(doc.Args, ", ") + ")"
		rows = append(rows, []string{name.Sprint(signature), doc.Returns, doc.Doc})
	}
	return table.NewTable(a.out).
		WithHeader([]string{"FUNCTION", "RETURNS", "DESCRIPTION"}).
		WithRows(rows).
		Render()
}
