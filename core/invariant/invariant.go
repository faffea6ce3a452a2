// Package invariant provides contract assertions for the grouping engine.
//
// Assertions here guard programmer errors: a word node with empty text, a
// parse stack that lost its root, an AST node of an unknown shape. User input
// never trips them; malformed grouping is reported as an error value by the
// parser instead.
//
// All functions panic on violation.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func Flatten(node ast.Node, prefix string) []string {
//	    invariant.NotNil(node, "node")
//	    // ... walk ...
//	}
func Precondition(condition bool, format string, args ...any) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...any) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks internal consistency during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Example:
//
//	for _, tok := range tokens {
//	    // ... push/pop ...
//	    invariant.Invariant(len(stack) >= 1, "synthetic root must stay on the stack")
//	}
func Invariant(condition bool, format string, args ...any) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil, including typed nils of pointer kinds the
// engine passes around.
func NotNil(value any, name string) {
	if isNil(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

// Unreachable panics unconditionally. Use it as the default arm of a switch
// over a closed set of cases.
func Unreachable(format string, args ...any) {
	fail("INVARIANT", "unreachable: "+format, args...)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// fail panics with a formatted message including the violating call site.
func fail(kind, format string, args ...any) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]any{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
