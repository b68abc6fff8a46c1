package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)

	v, err := env.Get(Token{Lexeme: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEnvironmentGetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(Token{Lexeme: "missing"})
	require.Error(t, err)
	assert.IsType(t, &RuntimeError{}, err)
}

func TestEnvironmentWalksEnclosingChain(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", 1.0)
	inner := NewEnvironment(outer)

	v, err := inner.Get(Token{Lexeme: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEnvironmentAssignDoesNotCreateBinding(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(Token{Lexeme: "a"}, 1.0)
	require.Error(t, err)
}

func TestEnvironmentShadowing(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", 1.0)
	inner := NewEnvironment(outer)
	inner.Define("a", 2.0)

	v, err := inner.Get(Token{Lexeme: "a"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	outerV, err := outer.Get(Token{Lexeme: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, outerV)
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment(nil)
	block := NewEnvironment(global)
	inner := NewEnvironment(block)

	global.Define("a", "global")
	assert.Equal(t, "global", inner.GetAt(2, "a"))

	inner.AssignAt(2, Token{Lexeme: "a"}, "updated")
	v, err := global.Get(Token{Lexeme: "a"})
	require.NoError(t, err)
	assert.Equal(t, "updated", v)
}
