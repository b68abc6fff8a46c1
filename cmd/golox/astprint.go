package main

import (
	"fmt"
	"strings"

	"github.com/ccuetoh/golox/pkg/lox"
)

// prettyPrintSource scans and parses source - stopping before resolution or
// interpretation - and writes a parenthesized rendering of the resulting AST
// to stdout. It is the -p/--pretty-print flag's entire job; nothing else in
// the CLI or the interpreter core depends on it.
func prettyPrintSource(source, filename string) error {
	reporter := lox.NewReporter()
	scanner := lox.NewScanner(source, filename, reporter)
	parser := lox.NewParser(scanner, reporter)
	stmts := parser.Parse()

	printDiagnostics(reporter)
	if reporter.HadStaticError() {
		return nil
	}

	p := &astPrinter{}
	for _, s := range stmts {
		fmt.Println(p.stmt(s))
	}
	return nil
}

// astPrinter renders statements and expressions as Lisp-like
// S-expressions, in the spirit of Crafting Interpreters' own debug printer.
type astPrinter struct{}

func (p *astPrinter) stmt(s lox.Stmt) string {
	switch s := s.(type) {
	case *lox.BlockStmt:
		parts := make([]string, len(s.Stmts))
		for i, st := range s.Stmts {
			parts[i] = p.stmt(st)
		}
		return parenthesize("block", parts...)
	case *lox.ClassStmt:
		name := s.Name.Lexeme
		if s.Superclass != nil {
			name += " < " + s.Superclass.Name.Lexeme
		}
		methods := make([]string, len(s.Methods))
		for i, m := range s.Methods {
			methods[i] = p.stmt(m)
		}
		return parenthesize("class "+name, methods...)
	case *lox.ExpressionStmt:
		return p.expr(s.Expr)
	case *lox.FunctionStmt:
		params := make([]string, len(s.Params))
		for i, tok := range s.Params {
			params[i] = tok.Lexeme
		}
		body := make([]string, len(s.Body))
		for i, st := range s.Body {
			body[i] = p.stmt(st)
		}
		return parenthesize("fun "+s.Name.Lexeme+"("+strings.Join(params, " ")+")", body...)
	case *lox.IfStmt:
		if s.Else != nil {
			return parenthesize("if", p.expr(s.Cond), p.stmt(s.Then), p.stmt(s.Else))
		}
		return parenthesize("if", p.expr(s.Cond), p.stmt(s.Then))
	case *lox.PrintStmt:
		return parenthesize("print", p.expr(s.Expr))
	case *lox.ReturnStmt:
		if s.Value != nil {
			return parenthesize("return", p.expr(s.Value))
		}
		return "(return)"
	case *lox.VarStmt:
		if s.Init != nil {
			return parenthesize("var "+s.Name.Lexeme, p.expr(s.Init))
		}
		return "(var " + s.Name.Lexeme + ")"
	case *lox.WhileStmt:
		return parenthesize("while", p.expr(s.Cond), p.stmt(s.Body))
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}

func (p *astPrinter) expr(e lox.Expr) string {
	switch e := e.(type) {
	case *lox.Assign:
		return parenthesize("= "+e.Name.Lexeme, p.expr(e.Value))
	case *lox.Binary:
		return parenthesize(e.Op.Lexeme, p.expr(e.Left), p.expr(e.Right))
	case *lox.Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = p.expr(a)
		}
		return parenthesize("call", append([]string{p.expr(e.Callee)}, args...)...)
	case *lox.Get:
		return parenthesize("get "+e.Name.Lexeme, p.expr(e.Obj))
	case *lox.Grouping:
		return parenthesize("group", p.expr(e.Expr))
	case *lox.LiteralExpr:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *lox.Logical:
		return parenthesize(e.Op.Lexeme, p.expr(e.Left), p.expr(e.Right))
	case *lox.Set:
		return parenthesize("set "+e.Name.Lexeme, p.expr(e.Obj), p.expr(e.Value))
	case *lox.Super:
		return "(super " + e.Method.Lexeme + ")"
	case *lox.This:
		return "this"
	case *lox.Unary:
		return parenthesize(e.Op.Lexeme, p.expr(e.Right))
	case *lox.Variable:
		return e.Name.Lexeme
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func parenthesize(name string, parts ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, part := range parts {
		b.WriteByte(' ')
		b.WriteString(part)
	}
	b.WriteByte(')')
	return b.String()
}
