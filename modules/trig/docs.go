package trig

import "github.com/risor-io/expr/builtins"

var trigEntries = []builtins.Entry{
	{Name: "ACOS", Fn: Acos, Doc: "Return the arc cosine of x", Args: []string{"x"}, Returns: "decimal", Example: "ACOS(1)"},
	{Name: "ACOSH", Fn: Acosh, Doc: "Return the inverse hyperbolic cosine of x", Args: []string{"x"}, Returns: "decimal", Example: "ACOSH(1)"},
	{Name: "ASIN", Fn: Asin, Doc: "Return the arc sine of x", Args: []string{"x"}, Returns: "decimal", Example: "ASIN(0)"},
	{Name: "ASINH", Fn: Asinh, Doc: "Return the inverse hyperbolic sine of x", Args: []string{"x"}, Returns: "decimal", Example: "ASINH(0)"},
	{Name: "ATAN", Fn: Atan, Doc: "Return the arc tangent of x", Args: []string{"x"}, Returns: "decimal", Example: "ATAN(1)"},
	{Name: "ATAN2", Fn: Atan2, Doc: "Return the arc tangent of y/x, using the signs to pick the quadrant", Args: []string{"y", "x"}, Returns: "decimal", Example: "ATAN2(1, -1)"},
	{Name: "ATANH", Fn: Atanh, Doc: "Return the inverse hyperbolic tangent of x", Args: []string{"x"}, Returns: "decimal", Example: "ATANH(0.5)"},
	{Name: "COS", Fn: Cos, Doc: "Return the cosine of x", Args: []string{"x"}, Returns: "decimal", Example: "COS(PI())"},
	{Name: "COSH", Fn: Cosh, Doc: "Return the hyperbolic cosine of x", Args: []string{"x"}, Returns: "decimal", Example: "COSH(0)"},
	{Name: "DEGREES", Fn: Degrees, Doc: "Convert radians to degrees", Args: []string{"x"}, Returns: "decimal", Example: "DEGREES(PI())"},
	{Name: "PI", Fn: Pi, Doc: "Return pi", Returns: "decimal", Example: "PI()"},
	{Name: "PI2", Fn: Pi2, Doc: "Return two times pi", Returns: "decimal", Example: "PI2()"},
	{Name: "RADIANS", Fn: Radians, Doc: "Convert degrees to radians", Args: []string{"x"}, Returns: "decimal", Example: "RADIANS(180)"},
	{Name: "SIN", Fn: Sin, Doc: "Return the sine of x", Args: []string{"x"}, Returns: "decimal", Example: "SIN(PI() / 2)"},
	{Name: "SINH", Fn: Sinh, Doc: "Return the hyperbolic sine of x", Args: []string{"x"}, Returns: "decimal", Example: "SINH(0)"},
	{Name: "TAN", Fn: Tan, Doc: "Return the tangent of x", Args: []string{"x"}, Returns: "decimal", Example: "TAN(0)"},
	{Name: "TANH", Fn: Tanh, Doc: "Return the hyperbolic tangent of x", Args: []string{"x"}, Returns: "decimal", Example: "TANH(0)"},
}
