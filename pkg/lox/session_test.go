package lox

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionReusesGlobalsAcrossRunCalls(t *testing.T) {
	var out bytes.Buffer
	session := NewSession(&out)

	session.Run(`var count = 0;`, "<repl>")
	require.Empty(t, session.Reporter.Errors())

	session.Run(`count = count + 1; print count;`, "<repl>")
	require.Empty(t, session.Reporter.Errors())
	assert.Equal(t, "1\n", out.String())

	session.Run(`count = count + 1; print count;`, "<repl>")
	require.Empty(t, session.Reporter.Errors())
	assert.Equal(t, "1\n2\n", out.String())
}

func TestSessionResetsDiagnosticsBetweenRunCalls(t *testing.T) {
	var out bytes.Buffer
	session := NewSession(&out)

	session.Run(`1 + ;`, "<repl>")
	require.True(t, session.Reporter.HadStaticError())

	session.Run(`print "still works";`, "<repl>")
	require.Empty(t, session.Reporter.Errors())
	assert.Equal(t, "still works\n", out.String())
}

func TestSessionRunFilesSharesGlobalScopeAcrossFiles(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "first.lox")
	second := filepath.Join(dir, "second.lox")
	require.NoError(t, os.WriteFile(first, []byte(`var greeting = "hi";`), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(`print greeting;`), 0o644))

	var out bytes.Buffer
	session := NewSession(&out)
	err := session.RunFiles([]string{first, second})
	require.NoError(t, err)
	require.Empty(t, session.Reporter.Errors())
	assert.Equal(t, "hi\n", out.String())
}

func TestSessionRunFilesReportsErrorsFromEveryFile(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.lox")
	alsoBad := filepath.Join(dir, "also_bad.lox")
	require.NoError(t, os.WriteFile(bad, []byte(`1 + ;`), 0o644))
	require.NoError(t, os.WriteFile(alsoBad, []byte(`print ;`), 0o644))

	var out bytes.Buffer
	session := NewSession(&out)
	err := session.RunFiles([]string{bad, alsoBad})
	require.NoError(t, err)
	assert.True(t, session.Reporter.HadStaticError())
	assert.Len(t, session.Reporter.Errors(), 2)
}
