package typescript

import "strconv"

// Parameter names that collide with statement keywords; the declaration
// emitter renames these by appending an underscore.
var reservedParamNames = map[string]bool{
	"for":      true,
	"with":     true,
	"in":       true,
	"default":  true,
	"return":   true,
	"export":   true,
	"function": true,
}

// escapeParamName escapes a parameter name that collides with a keyword.
func escapeParamName(name string) string {
	if reservedParamNames[name] {
		return name + "_"
	}
	return name
}

// formatEnumValue renders an enum member's literal. Numbers stay bare,
// everything else is quoted.
func formatEnumValue(value string) string {
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return value
	}
	return strconv.Quote(value)
}
