package lox

import "fmt"

// LexError is a scan-time diagnostic. The scanner reports one of these per
// offending character or unterminated literal and keeps scanning.
type LexError struct {
	Line int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Msg)
}

// ParseError is a syntax diagnostic, token-aware: EOF renders " at end",
// any other token renders " at '<lexeme>'".
type ParseError struct {
	Token Token
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, where(e.Token), e.Msg)
}

// ResolveError is a static diagnostic raised by the [Resolver]: redeclared
// locals, self-referencing initialisers, and return/this/super misuse.
type ResolveError struct {
	Token Token
	Msg   string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, where(e.Token), e.Msg)
}

func where(tok Token) string {
	if tok.Kind == TokenEOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", tok.Lexeme)
}

// RuntimeError aborts the current Interpret call. It carries the token
// whose evaluation failed so the line can be reported.
type RuntimeError struct {
	Token Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Token.Line)
}

// Reporter is the single diagnostic sink shared by every phase. It is the
// only state shared between the scanner, parser, resolver and interpreter
// besides the AST itself.
type Reporter struct {
	errs          []error
	hadRuntimeErr bool
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) Lex(line int, msg string) {
	r.errs = append(r.errs, &LexError{Line: line, Msg: msg})
}

func (r *Reporter) Parse(tok Token, msg string) {
	r.errs = append(r.errs, &ParseError{Token: tok, Msg: msg})
}

func (r *Reporter) Resolve(tok Token, msg string) {
	r.errs = append(r.errs, &ResolveError{Token: tok, Msg: msg})
}

func (r *Reporter) Runtime(err *RuntimeError) {
	r.errs = append(r.errs, err)
	r.hadRuntimeErr = true
}

// Errors returns every diagnostic recorded so far, in emission order.
func (r *Reporter) Errors() []error { return r.errs }

// HadStaticError reports whether any lex, parse or resolve error has been
// recorded. A true result means the program must not be interpreted.
func (r *Reporter) HadStaticError() bool {
	for _, err := range r.errs {
		switch err.(type) {
		case *LexError, *ParseError, *ResolveError:
			return true
		}
	}
	return false
}

// HadRuntimeError reports whether a runtime error was recorded.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeErr }

// Reset clears all recorded diagnostics, for REPL use between lines: a
// syntax error on one line must not poison the next.
func (r *Reporter) Reset() {
	r.errs = nil
	r.hadRuntimeErr = false
}

// merge appends another Reporter's diagnostics onto this one, used to fold
// per-file Reporters (built to avoid concurrent writes during RunFiles'
// parallel scan+parse stage) back into the session's shared Reporter.
func (r *Reporter) merge(other *Reporter) {
	r.errs = append(r.errs, other.errs...)
	r.hadRuntimeErr = r.hadRuntimeErr || other.hadRuntimeErr
}
