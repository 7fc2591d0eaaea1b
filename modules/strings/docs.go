package strings

import "github.com/risor-io/expr/builtins"

var stringEntries = []builtins.Entry{
	{
		Name:    "COMPARE",
		Fn:      CompareStr,
		Doc:     "Compare two strings lexically, returning -1, 0 or 1",
		Args:    []string{"a", "b"},
		Returns: "integer",
		Example: "COMPARE('a', 'b')",
	},
	{
		Name:    "CONTAINS",
		Fn:      Contains,
		Doc:     "Return TRUE if substr is within s",
		Args:    []string{"s", "substr"},
		Returns: "bool",
		Example: "CONTAINS('seafood', 'foo')",
	},
	{
		Name:    "COUNT",
		Fn:      Count,
		Doc:     "Count non-overlapping instances of substr in s",
		Args:    []string{"s", "substr"},
		Returns: "integer",
		Example: "COUNT('cheese', 'e')",
	},
	{
		Name:    "EQUAL_FOLD",
		Fn:      EqualFold,
		Doc:     "Return TRUE if the strings are equal ignoring case",
		Args:    []string{"a", "b"},
		Returns: "bool",
		Example: "EQUAL_FOLD('Go', 'GO')",
	},
	{
		Name:    "HAS_PREFIX",
		Fn:      HasPrefix,
		Doc:     "Return TRUE if s begins with prefix",
		Args:    []string{"s", "prefix"},
		Returns: "bool",
		Example: "HAS_PREFIX('golang', 'go')",
	},
	{
		Name:    "HAS_SUFFIX",
		Fn:      HasSuffix,
		Doc:     "Return TRUE if s ends with suffix",
		Args:    []string{"s", "suffix"},
		Returns: "bool",
		Example: "HAS_SUFFIX('golang', 'lang')",
	},
	{
		Name:    "INDEX",
		Fn:      Index,
		Doc:     "Return the byte index of the first substr in s, or -1",
		Args:    []string{"s", "substr"},
		Returns: "integer",
		Example: "INDEX('chicken', 'ken')",
	},
	{
		Name:    "IS_EMPTY",
		Fn:      IsEmpty,
		Doc:     "Return TRUE if s is empty or only whitespace",
		Args:    []string{"s"},
		Returns: "bool",
		Example: "IS_EMPTY('  ')",
	},
	{
		Name:    "LAST_INDEX",
		Fn:      LastIndex,
		Doc:     "Return the byte index of the last substr in s, or -1",
		Args:    []string{"s", "substr"},
		Returns: "integer",
		Example: "LAST_INDEX('go gopher', 'go')",
	},
	{
		Name:    "LEN",
		Fn:      Len,
		Doc:     "Return the number of characters in s",
		Args:    []string{"s"},
		Returns: "integer",
		Example: "LEN('héllo')",
	},
}
