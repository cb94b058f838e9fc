package world

import "fmt"

// Enum converts an enumeration value into a text variable using its String
// form. Any type implementing fmt.Stringer can be stored this way.
func Enum(v fmt.Stringer) Variable {
	return Text(v.String())
}

// IsEnum reports whether the variable holds the text form of e.
func IsEnum(v Variable, e fmt.Stringer) bool {
	return v == Enum(e)
}
