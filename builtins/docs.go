package builtins

// Builtins returns the default function entries, in alphabetical order.
func Builtins() []Entry {
	entries := make([]Entry, len(builtinEntries))
	copy(entries, builtinEntries)
	return entries
}

var builtinEntries = []Entry{
	{
		Name:    "ABS",
		Fn:      Abs,
		Doc:     "Return the absolute value of a number",
		Args:    []string{"x"},
		Returns: "integer|decimal",
		Example: "ABS(-3)",
	},
	{
		Name:    "AND",
		Fn:      And,
		Doc:     "Return TRUE if every argument is truthy",
		Args:    []string{"values..."},
		Returns: "bool",
		Example: "AND($a > 1, $b)",
	},
	{
		Name:    "BOOL",
		Fn:      Bool,
		Doc:     "Convert a value to a bool using truthiness",
		Args:    []string{"value"},
		Returns: "bool",
		Example: "BOOL(1)",
	},
	{
		Name:    "CEIL",
		Fn:      Ceil,
		Doc:     "Round a number up to the nearest whole value",
		Args:    []string{"x"},
		Returns: "integer|decimal",
		Example: "CEIL(1.2)",
	},
	{
		Name:    "CLAMP",
		Fn:      Clamp,
		Doc:     "Limit a number to the range [min, max]",
		Args:    []string{"x", "min", "max"},
		Returns: "integer|decimal",
		Example: "CLAMP($x, 0, 100)",
	},
	{
		Name:    "DECIMAL",
		Fn:      Decimal,
		Doc:     "Convert a value to a decimal",
		Args:    []string{"value"},
		Returns: "decimal",
		Example: "DECIMAL(3)",
	},
	{
		Name:    "E",
		Fn:      E,
		Doc:     "Return Euler's number",
		Returns: "decimal",
		Example: "E()",
	},
	{
		Name:    "EXP",
		Fn:      Exp,
		Doc:     "Return e raised to the power x",
		Args:    []string{"x"},
		Returns: "decimal",
		Example: "EXP(1)",
	},
	{
		Name:    "FLOOR",
		Fn:      Floor,
		Doc:     "Round a number down to the nearest whole value",
		Args:    []string{"x"},
		Returns: "integer|decimal",
		Example: "FLOOR(1.8)",
	},
	{
		Name:    "IF",
		Fn:      If,
		Doc:     "Return then if cond is truthy, otherwise else",
		Args:    []string{"cond", "then", "else"},
		Returns: "any",
		Example: "IF($x > 0, 1, -1)",
	},
	{
		Name:    "INTEGER",
		Fn:      Integer,
		Doc:     "Convert a value to an integer, truncating decimals",
		Args:    []string{"value"},
		Returns: "integer",
		Example: "INTEGER(2.7)",
	},
	{
		Name:    "ISNAN",
		Fn:      IsNaN,
		Doc:     "Return TRUE if the value is a NaN decimal",
		Args:    []string{"value"},
		Returns: "bool",
		Example: "ISNAN(0.0 / 0)",
	},
	{
		Name:    "IS_BOOL",
		Fn:      IsBool,
		Doc:     "Return TRUE if the value is a bool",
		Args:    []string{"value"},
		Returns: "bool",
		Example: "IS_BOOL($flag)",
	},
	{
		Name:    "IS_DECIMAL",
		Fn:      IsDecimal,
		Doc:     "Return TRUE if the value is a decimal",
		Args:    []string{"value"},
		Returns: "bool",
		Example: "IS_DECIMAL(1.5)",
	},
	{
		Name:    "IS_INTEGER",
		Fn:      IsInteger,
		Doc:     "Return TRUE if the value is an integer",
		Args:    []string{"value"},
		Returns: "bool",
		Example: "IS_INTEGER(1)",
	},
	{
		Name:    "IS_NULL",
		Fn:      IsNull,
		Doc:     "Return TRUE if the value is null",
		Args:    []string{"value"},
		Returns: "bool",
		Example: "IS_NULL($maybe)",
	},
	{
		Name:    "IS_NUMBER",
		Fn:      IsNumber,
		Doc:     "Return TRUE if the value is an integer or a decimal",
		Args:    []string{"value"},
		Returns: "bool",
		Example: "IS_NUMBER($x)",
	},
	{
		Name:    "LOG",
		Fn:      Log,
		Doc:     "Return the natural logarithm, or the logarithm in the given base",
		Args:    []string{"x", "base?"},
		Returns: "decimal",
		Example: "LOG(8, 2)",
	},
	{
		Name:    "LOG10",
		Fn:      Log10,
		Doc:     "Return the base 10 logarithm",
		Args:    []string{"x"},
		Returns: "decimal",
		Example: "LOG10(1000)",
	},
	{
		Name:    "LOG2",
		Fn:      Log2,
		Doc:     "Return the base 2 logarithm",
		Args:    []string{"x"},
		Returns: "decimal",
		Example: "LOG2(8)",
	},
	{
		Name:    "MAX",
		Fn:      Max,
		Doc:     "Return the largest argument",
		Args:    []string{"a", "b", "more..."},
		Returns: "integer|decimal",
		Example: "MAX(1, 5, 3)",
	},
	{
		Name:    "MIN",
		Fn:      Min,
		Doc:     "Return the smallest argument",
		Args:    []string{"a", "b", "more..."},
		Returns: "integer|decimal",
		Example: "MIN(1, 5, 3)",
	},
	{
		Name:    "OR",
		Fn:      Or,
		Doc:     "Return TRUE if any argument is truthy",
		Args:    []string{"values..."},
		Returns: "bool",
		Example: "OR($a, $b)",
	},
	{
		Name:    "POW",
		Fn:      Pow,
		Doc:     "Return x raised to the power y",
		Args:    []string{"x", "y"},
		Returns: "decimal",
		Example: "POW(2, 10)",
	},
	{
		Name:    "ROUND",
		Fn:      Round,
		Doc:     "Round a number to the nearest whole value, ties to even",
		Args:    []string{"x"},
		Returns: "integer|decimal",
		Example: "ROUND(2.5)",
	},
	{
		Name:    "SIGN",
		Fn:      Sign,
		Doc:     "Return -1, 0 or 1 according to the sign of x",
		Args:    []string{"x"},
		Returns: "integer",
		Example: "SIGN(-4.2)",
	},
	{
		Name:    "SQRT",
		Fn:      Sqrt,
		Doc:     "Return the square root",
		Args:    []string{"x"},
		Returns: "decimal",
		Example: "SQRT(16)",
	},
	{
		Name:    "SUM",
		Fn:      Sum,
		Doc:     "Add all arguments",
		Args:    []string{"a", "b", "more..."},
		Returns: "integer|decimal",
		Example: "SUM(1, 2, 3.5)",
	},
	{
		Name:    "TRUNC",
		Fn:      Trunc,
		Doc:     "Remove the fractional part of a number",
		Args:    []string{"x"},
		Returns: "integer|decimal",
		Example: "TRUNC(-2.7)",
	},
	{
		Name:    "XOR",
		Fn:      Xor,
		Doc:     "Return TRUE if exactly one argument is truthy",
		Args:    []string{"a", "b"},
		Returns: "bool",
		Example: "XOR($a, $b)",
	},
}
