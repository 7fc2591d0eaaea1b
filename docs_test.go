package expr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/expr/modules/trig"
	"github.com/risor-io/expr/object"
)

func TestDocsQuick(t *testing.T) {
	e := newEngine(t)
	j := e.Docs().JSON()
	require.Contains(t, j, `"version"`)
	require.Contains(t, j, `"topics"`)
}

func TestDocsAll(t *testing.T) {
	e := newEngine(t, WithPlugins(trig.New()))
	var full struct {
		Functions []FunctionDoc `json:"functions"`
		Operators []any         `json:"operators"`
		Errors    []any         `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(e.Docs(DocsAll()).JSON()), &full))
	require.Len(t, full.Functions, len(e.FunctionNames()))
	require.NotEmpty(t, full.Operators)
	require.NotEmpty(t, full.Errors)

	sources := map[string]string{}
	for _, fn := range full.Functions {
		sources[fn.Name] = fn.Source
	}
	require.Equal(t, "builtins", sources["ABS"])
	require.Equal(t, "trig", sources["SIN"])
}

func TestDocsTopic(t *testing.T) {
	e := newEngine(t)
	doc, ok := e.Docs(DocsTopic("round")).Data().(FunctionDoc)
	require.True(t, ok)
	require.Equal(t, "ROUND", doc.Name)
	require.Equal(t, "ROUND(2.5)", doc.Example)

	e.SetFunction("ROUND", func(call *object.Call) (object.Value, error) { return object.Null, nil })
	doc = e.Docs(DocsTopic("ROUND")).Data().(FunctionDoc)
	require.Equal(t, "host", doc.Source)
	require.Empty(t, doc.Doc)

	require.Contains(t, e.Docs(DocsTopic("&")).JSON(), "AND")
	require.Contains(t, e.Docs(DocsTopic("nope")).JSON(), "unknown topic")
}

func TestDocsCategory(t *testing.T) {
	e := newEngine(t)
	require.Contains(t, e.Docs(DocsCategory("functions")).JSON(), `"count": 30`)
	require.Contains(t, e.Docs(DocsCategory("syntax")).JSON(), "$name")
	require.Contains(t, e.Docs(DocsCategory("bogus")).JSON(), "unknown category")
}
