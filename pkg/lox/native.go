package lox

import "time"

// installNatives pre-populates globals with the natives conventional Lox
// programs expect but that no declaration in user source ever defines.
func installNatives(globals *Environment) {
	globals.Define("clock", NewNativeFunction("clock", 0, func(*Interpreter, []any) (any, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	}))
}
