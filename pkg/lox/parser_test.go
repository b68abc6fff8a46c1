package lox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, source string) ([]Stmt, *Reporter) {
	t.Helper()
	reporter := NewReporter()
	scanner := NewScanner(source, "<test>", reporter)
	parser := NewParser(scanner, reporter)
	return parser.Parse(), reporter
}

func TestParserVarDeclaration(t *testing.T) {
	stmts, reporter := parseAll(t, `var a = 1;`)
	require.Empty(t, reporter.Errors())
	require.Len(t, stmts, 1)

	v, ok := stmts[0].(*VarStmt)
	require.True(t, ok)
	assert.Equal(t, "a", v.Name.Lexeme)
	lit, ok := v.Init.(*LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Value)
}

func TestParserExpressionPrecedence(t *testing.T) {
	stmts, reporter := parseAll(t, `1 + 2 * 3;`)
	require.Empty(t, reporter.Errors())
	require.Len(t, stmts, 1)

	expr := stmts[0].(*ExpressionStmt).Expr
	bin, ok := expr.(*Binary)
	require.True(t, ok)
	assert.Equal(t, TokenPlus, bin.Op.Kind)

	rhs, ok := bin.Right.(*Binary)
	require.True(t, ok)
	assert.Equal(t, TokenStar, rhs.Op.Kind)
}

func TestParserAssignmentTargets(t *testing.T) {
	stmts, reporter := parseAll(t, `a = 1; a.b = 2;`)
	require.Empty(t, reporter.Errors())
	require.Len(t, stmts, 2)

	_, ok := stmts[0].(*ExpressionStmt).Expr.(*Assign)
	assert.True(t, ok)
	_, ok = stmts[1].(*ExpressionStmt).Expr.(*Set)
	assert.True(t, ok)
}

func TestParserInvalidAssignmentTargetIsReported(t *testing.T) {
	_, reporter := parseAll(t, `1 + 2 = 3;`)
	require.Len(t, reporter.Errors(), 1)
	assert.Contains(t, reporter.Errors()[0].Error(), "invalid assignment target")
}

// TestParserForDesugaring checks that `for` expands to the documented
// block/while nesting instead of a dedicated ForStmt node.
func TestParserForDesugaring(t *testing.T) {
	stmts, reporter := parseAll(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Empty(t, reporter.Errors())
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*BlockStmt)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 2)

	_, ok = outer.Stmts[0].(*VarStmt)
	assert.True(t, ok)

	while, ok := outer.Stmts[1].(*WhileStmt)
	require.True(t, ok)

	body, ok := while.Body.(*BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
	_, ok = body.Stmts[0].(*PrintStmt)
	assert.True(t, ok)
	_, ok = body.Stmts[1].(*ExpressionStmt)
	assert.True(t, ok)
}

func TestParserClassWithSuperclassAndMethods(t *testing.T) {
	stmts, reporter := parseAll(t, `
		class Animal {
			speak() { return "..."; }
		}
		class Dog < Animal {
			speak() { return "woof"; }
		}
	`)
	require.Empty(t, reporter.Errors())
	require.Len(t, stmts, 2)

	dog, ok := stmts[1].(*ClassStmt)
	require.True(t, ok)
	require.NotNil(t, dog.Superclass)
	assert.Equal(t, "Animal", dog.Superclass.Name.Lexeme)
	require.Len(t, dog.Methods, 1)
	assert.Equal(t, "speak", dog.Methods[0].Name.Lexeme)
}

func TestParserTooManyArgumentsIsReportedNotFatal(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	source := "f(" + strings.Join(args, ",") + ");"

	stmts, reporter := parseAll(t, source)
	require.Len(t, stmts, 1)
	require.Len(t, reporter.Errors(), 1)
	assert.Contains(t, reporter.Errors()[0].Error(), "can't have more than 255 arguments")
}

func TestParserSynchronizeRecoversAfterError(t *testing.T) {
	stmts, reporter := parseAll(t, `var = ; var b = 2;`)
	require.NotEmpty(t, reporter.Errors())

	// The first declaration fails to parse and is skipped, but the second
	// one, after synchronize() resumes at the next `var`, must still land.
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*VarStmt)
	require.True(t, ok)
	assert.Equal(t, "b", v.Name.Lexeme)
}
