package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeFunctionCallsWrappedClosure(t *testing.T) {
	called := false
	fn := NewNativeFunction("mark", 0, func(interp *Interpreter, args []any) (any, error) {
		called = true
		return "ok", nil
	})

	interp := NewInterpreter(NewReporter(), &bytes.Buffer{})
	v, err := fn.Call(interp, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.True(t, called)
	assert.Equal(t, 0, fn.Arity())
	assert.Equal(t, "<native fn mark>", fn.String())
}

func TestFunctionBindInsertsThisOnlyEnvironment(t *testing.T) {
	decl := &FunctionStmt{
		Name: Token{Lexeme: "greet"},
		Body: []Stmt{},
	}
	closure := NewEnvironment(nil)
	fn := NewFunction(decl, closure, false)

	instance := NewInstance(NewClass("Greeter", nil, nil))
	bound := fn.bind(instance)

	v, err := bound.closure.Get(Token{Lexeme: "this"})
	require.NoError(t, err)
	assert.Same(t, instance, v)

	// The original function's closure must be untouched by bind.
	_, err = closure.Get(Token{Lexeme: "this"})
	assert.Error(t, err)
}

func TestClassArityReflectsInitMethod(t *testing.T) {
	initDecl := &FunctionStmt{Name: Token{Lexeme: "init"}, Params: []Token{{Lexeme: "a"}, {Lexeme: "b"}}}
	class := NewClass("Point", nil, map[string]*Function{
		"init": NewFunction(initDecl, NewEnvironment(nil), true),
	})
	assert.Equal(t, 2, class.Arity())

	empty := NewClass("Empty", nil, nil)
	assert.Equal(t, 0, empty.Arity())
}

func TestClassFindMethodFallsThroughToSuperclass(t *testing.T) {
	parentDecl := &FunctionStmt{Name: Token{Lexeme: "speak"}}
	parent := NewClass("Animal", nil, map[string]*Function{
		"speak": NewFunction(parentDecl, NewEnvironment(nil), false),
	})
	child := NewClass("Dog", parent, map[string]*Function{})

	method := child.FindMethod("speak")
	require.NotNil(t, method)
	assert.Equal(t, "speak", method.decl.Name.Lexeme)

	assert.Nil(t, child.FindMethod("missing"))
}

func TestInstanceGetAndSetFields(t *testing.T) {
	instance := NewInstance(NewClass("Box", nil, nil))
	instance.Set(Token{Lexeme: "contents"}, "gold")

	v, err := instance.Get(Token{Lexeme: "contents"})
	require.NoError(t, err)
	assert.Equal(t, "gold", v)
}

func TestInstanceGetUnknownPropertyIsRuntimeError(t *testing.T) {
	instance := NewInstance(NewClass("Box", nil, nil))
	_, err := instance.Get(Token{Lexeme: "missing"})
	require.Error(t, err)
	assert.IsType(t, &RuntimeError{}, err)
}
