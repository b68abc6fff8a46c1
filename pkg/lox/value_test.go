package lox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	assert.False(t, isTruthy(nil))
	assert.False(t, isTruthy(false))
	assert.True(t, isTruthy(true))
	assert.True(t, isTruthy(0.0))
	assert.True(t, isTruthy(""))
	assert.True(t, isTruthy("anything"))
}

func TestIsEqual(t *testing.T) {
	assert.True(t, isEqual(nil, nil))
	assert.False(t, isEqual(nil, false))
	assert.True(t, isEqual(1.0, 1.0))
	assert.False(t, isEqual(1.0, "1"))
	assert.True(t, isEqual("a", "a"))
	assert.False(t, isEqual(math.NaN(), math.NaN()))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "nil", stringify(nil))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "false", stringify(false))
	assert.Equal(t, "1", stringify(1.0))
	assert.Equal(t, "1.5", stringify(1.5))
	assert.Equal(t, "hi", stringify("hi"))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "number", typeName(1.0))
	assert.Equal(t, "string", typeName("x"))
	assert.Equal(t, "boolean", typeName(true))
	assert.Equal(t, "nil", typeName(nil))
}
