package expr

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/risor-io/expr/builtins"
)

// Version is the current release.
const Version = "1.0.0"

// DocsOption configures documentation retrieval.
type DocsOption func(*docsOptions)

type docsOptions struct {
	category string
	topic    string
	all      bool
}

// DocsCategory filters documentation to a category: "functions",
// "operators", "syntax" or "errors".
func DocsCategory(cat string) DocsOption {
	return func(o *docsOptions) {
		o.category = cat
	}
}

// DocsTopic retrieves documentation for a single function or operator.
func DocsTopic(topic string) DocsOption {
	return func(o *docsOptions) {
		o.topic = topic
	}
}

// DocsAll returns complete documentation.
func DocsAll() DocsOption {
	return func(o *docsOptions) {
		o.all = true
	}
}

// Documentation provides structured access to the language reference.
type Documentation struct {
	data any
}

// JSON returns the documentation as indented JSON.
func (d *Documentation) JSON() string {
	b, _ := json.MarshalIndent(d.data, "", "  ")
	return string(b)
}

// Data returns the raw documentation data.
func (d *Documentation) Data() any {
	return d.data
}

// FunctionDoc describes a callable function.
type FunctionDoc struct {
	Name    string   `json:"name"`
	Doc     string   `json:"doc,omitempty"`
	Args    []string `json:"args,omitempty"`
	Returns string   `json:"returns,omitempty"`
	Example string   `json:"example,omitempty"`
	Source  string   `json:"source"`
}

type docsOperator struct {
	Symbol     string `json:"symbol"`
	Precedence int    `json:"precedence"`
	Notes      string `json:"notes"`
}

type docsSyntaxItem struct {
	Syntax string `json:"syntax"`
	Notes  string `json:"notes"`
}

type docsErrorPattern struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Example string `json:"example"`
	Fix     string `json:"fix"`
}

type docsQuickReference struct {
	Version string            `json:"version"`
	Syntax  []docsSyntaxItem  `json:"syntax"`
	Topics  map[string]string `json:"topics"`
}

type docsFull struct {
	Version   string             `json:"version"`
	Functions []FunctionDoc      `json:"functions"`
	Operators []docsOperator     `json:"operators"`
	Syntax    []docsSyntaxItem   `json:"syntax"`
	Errors    []docsErrorPattern `json:"errors"`
}

// Docs returns the language reference, including every function currently
// registered with the engine.
//
//	docs := engine.Docs(expr.DocsCategory("functions"))
//	fmt.Println(docs.JSON())
func (e *Engine) Docs(opts ...DocsOption) *Documentation {
	o := &docsOptions{}
	for _, opt := range opts {
		opt(o)
	}
	switch {
	case o.all:
		return &Documentation{data: docsFull{
			Version:   Version,
			Functions: e.FunctionDocs(),
			Operators: docsOperators,
			Syntax:    docsSyntax,
			Errors:    docsErrors,
		}}
	case o.category != "":
		return &Documentation{data: e.categoryDocs(o.category)}
	case o.topic != "":
		return &Documentation{data: e.topicDocs(o.topic)}
	}
	return &Documentation{data: docsQuickReference{
		Version: Version,
		Syntax:  docsSyntax,
		Topics: map[string]string{
			"functions": "Functions registered with the engine",
			"operators": "Operators and their precedence",
			"syntax":    "Literals, parameters and calls",
			"errors":    "Compile and runtime errors",
		},
	}}
}

// FunctionDocs describes the callable functions, sorted by name. Functions
// added with SetFunction have no documentation beyond their name.
func (e *Engine) FunctionDocs() []FunctionDoc {
	names := e.FunctionNames()
	e.mu.RLock()
	defer e.mu.RUnlock()
	docs := make([]FunctionDoc, 0, len(names))
	for _, name := range names {
		doc, ok := e.docs[name]
		if !ok {
			doc = FunctionDoc{Name: name, Source: "host"}
		}
		docs = append(docs, doc)
	}
	return docs
}

func (e *Engine) recordDoc(source string, entry builtins.Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs[strings.ToUpper(entry.Name)] = FunctionDoc{
		Name:    strings.ToUpper(entry.Name),
		Doc:     entry.Doc,
		Args:    entry.Args,
		Returns: entry.Returns,
		Example: entry.Example,
		Source:  source,
	}
}

func (e *Engine) categoryDocs(category string) any {
	switch category {
	case "functions":
		functions := e.FunctionDocs()
		return map[string]any{
			"category":  "functions",
			"count":     len(functions),
			"functions": functions,
		}
	case "operators":
		return map[string]any{"category": "operators", "operators": docsOperators}
	case "syntax":
		return map[string]any{"category": "syntax", "items": docsSyntax}
	case "errors":
		return map[string]any{"category": "errors", "patterns": docsErrors}
	}
	return map[string]any{"error": "unknown category: " + category}
}

func (e *Engine) topicDocs(topic string) any {
	name := strings.ToUpper(topic)
	for _, doc := range e.FunctionDocs() {
		if doc.Name == name {
			return doc
		}
	}
	for _, operator := range docsOperators {
		if operator.Symbol == topic {
			return operator
		}
	}
	names := e.FunctionNames()
	for _, operator := range docsOperators {
		names = append(names, operator.Symbol)
	}
	sort.Strings(names)
	return map[string]any{
		"error":     "unknown topic: " + topic,
		"available": names,
	}
}

var docsOperators = []docsOperator{
	{"|", 1, "OR; yields the left operand if truthy, else the right, without evaluating the right side"},
	{"&", 2, "AND; yields the left operand if falsy, else the right, without evaluating the right side"},
	{"=", 3, "equality; integers and decimals compare numerically"},
	{"!=", 3, "inequality"},
	{">", 4, "greater than; numbers only"},
	{">=", 4, "greater than or equal"},
	{"<", 4, "less than"},
	{"<=", 4, "less than or equal"},
	{"+", 5, "addition; integer unless either operand is a decimal"},
	{"-", 5, "subtraction"},
	{"*", 6, "multiplication"},
	{"/", 6, "division; integer division truncates and fails on zero"},
	{"%", 6, "remainder"},
	{"^", 6, "exclusive or of the operands' truthiness"},
	{"!", 7, "prefix NOT"},
	{"-x", 7, "prefix negation"},
}

var docsSyntax = []docsSyntaxItem{
	{"42, 0.5, 1.5f, NaN", "numeric literals; an f suffix stores a 32-bit decimal"},
	{"TRUE, FALSE, NULL", "constants, in any case"},
	{"'text', \"text\"", "string literals, usable only as function arguments"},
	{"$name", "parameter from the evaluation context or the engine globals"},
	{"NAME(a, b)", "function call with up to 255 arguments"},
	{"(a + b) * c", "grouping"},
}

var docsErrors = []docsErrorPattern{
	{
		Kind:    "compile",
		Message: "'X' is not a function",
		Example: "SQR(4)",
		Fix:     "call a registered function; the error suggests similar names",
	},
	{
		Kind:    "compile",
		Message: "Orphaned expression; expected an operator or end of input",
		Example: "TRUE 1234",
		Fix:     "join the values with an operator",
	},
	{
		Kind:    "name",
		Message: "parameter 'x' is not defined",
		Example: "$x + 1",
		Fix:     "set the parameter on the context or in the engine globals",
	},
	{
		Kind:    "type",
		Message: "unsupported operand types for +: bool and integer",
		Example: "TRUE + 1",
		Fix:     "convert with INTEGER() or DECIMAL()",
	},
	{
		Kind:    "arithmetic",
		Message: "integer division by zero",
		Example: "1 / 0",
		Fix:     "use a decimal operand to get infinity instead",
	},
}
