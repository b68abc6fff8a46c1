package lox

import "strconv"

// isTruthy implements Lox's truthiness table: nil and false are falsy,
// everything else - including 0 and "" - is truthy.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's `==`: nil equals only nil, and any two values of
// different concrete types are unequal (so 1 == "1" is false, not a type
// error). float64 comparison inherits IEEE-754 semantics from Go directly,
// so NaN != NaN falls out for free.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return false
	}
}

// stringify renders a runtime value the way `print` displays it. Numbers
// use Go's shortest round-tripping decimal form with a trailing ".0"
// dropped for integral values - a deliberate, documented choice (see
// DESIGN.md) kept consistent across every print in a run.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case Stringer:
		return val.String()
	default:
		return "<value>"
	}
}

// Stringer is implemented by runtime callables/instances that need a
// custom display form in print output and error messages.
type Stringer interface {
	String() string
}

// typeName names a runtime value's Lox-level type. The interpreter's
// runtime error messages do not include it.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Function, *NativeFunction:
		return "function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	default:
		return "value"
	}
}
