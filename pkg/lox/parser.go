package lox

// maxArgs is the limit on call-argument and function-parameter counts.
// Exceeding it is reported but does not stop parsing.
const maxArgs = 255

// SyntacticAnalyzer is the streaming interface a [Parser] exposes. Like
// [Tokenizer], [Do] streams top-level statements that [Get] returns one at
// a time. The [Resolver] and [Interpreter] do not consume it: they take the
// []Stmt returned by the blocking [Parser.Parse].
type SyntacticAnalyzer interface {
	Do()
	Get() Stmt
	GetFilename() string
}

// Parser is a recursive-descent parser producing a []Stmt from a
// [Tokenizer]'s token stream, with panic-mode error recovery at statement
// boundaries.
type Parser struct {
	filename  string
	tokenizer Tokenizer
	reporter  *Reporter

	output chan Stmt
	buf    *Token

	// lastConsumed is the most recently consumed token, used by
	// productions that need the token behind a matchAny/consume call
	// whose return value they didn't capture.
	lastConsumed Token
}

// NewParser creates a parser pulling tokens from tokenizer. Syntax errors
// are reported to reporter.
func NewParser(tokenizer Tokenizer, reporter *Reporter) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
		reporter:  reporter,
		output:    make(chan Stmt, 2),
	}
}

func (p *Parser) GetFilename() string { return p.filename }

// Get fetches the next available statement, blocking until one is ready.
func (p *Parser) Get() Stmt { return <-p.output }

// Do starts the tokenizer and streams one top-level declaration at a time,
// closing the channel once the source is exhausted.
func (p *Parser) Do() {
	go p.tokenizer.Do()

	for p.peek().Kind != TokenEOF {
		if stmt := p.declaration(); stmt != nil {
			p.output <- stmt
		}
	}

	close(p.output)
}

// Parse runs Do synchronously and returns the full statement slice. This is
// the entry point used by the Resolver, which must see the whole program
// before the Interpreter runs.
func (p *Parser) Parse() []Stmt {
	go p.Do()

	var stmts []Stmt
	for stmt := range p.output {
		stmts = append(stmts, stmt)
	}
	return stmts
}

// --- token access -----------------------------------------------------

func (p *Parser) peek() Token {
	if p.buf == nil {
		tok := p.tokenizer.Get()
		p.buf = &tok
	}
	return *p.buf
}

func (p *Parser) next() Token {
	tok := p.peek()
	p.buf = nil
	p.lastConsumed = tok
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) matchAny(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.next()
			return true
		}
	}
	return false
}

// consume advances past a token of kind, or reports a parse error and
// panics with parseError{} to unwind to the nearest recovery point.
func (p *Parser) consume(kind TokenKind, msg string) Token {
	if p.check(kind) {
		return p.next()
	}
	panic(p.error(p.peek(), msg))
}

// parseError is an internal control-flow sentinel. The diagnostic itself is
// already recorded on the Reporter by the time it's panicked with.
type parseError struct{}

func (p *Parser) error(tok Token, msg string) parseError {
	p.reporter.Parse(tok, msg)
	return parseError{}
}

// synchronize discards tokens until a likely statement boundary, so a
// single syntax error doesn't cascade into spurious follow-on errors.
func (p *Parser) synchronize() {
	for p.peek().Kind != TokenEOF {
		if p.peek().Kind == TokenSemicolon {
			p.next()
			return
		}

		switch p.peek().Kind {
		case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			return
		}

		p.next()
	}
}

// --- declarations -------------------------------------------------------

// declaration returns nil when a parse error was recovered from; callers
// (block and Do/Parse) must skip nil entries rather than append them.
func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.matchAny(TokenClass):
		return p.classDecl()
	case p.matchAny(TokenFun):
		return p.function("function")
	case p.matchAny(TokenVar):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() Stmt {
	name := p.consume(TokenIdentifier, "expected class name")

	var superclass *Variable
	if p.matchAny(TokenLess) {
		p.consume(TokenIdentifier, "expected superclass name")
		superclass = &Variable{Name: p.lastConsumed}
	}

	p.consume(TokenLeftBrace, "expected '{' before class body")

	var methods []*FunctionStmt
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		methods = append(methods, p.function("method"))
	}

	p.consume(TokenRightBrace, "expected '}' after class body")

	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *FunctionStmt {
	name := p.consume(TokenIdentifier, "expected "+kind+" name")

	p.consume(TokenLeftParen, "expected '(' after "+kind+" name")
	var params []Token
	if !p.check(TokenRightParen) {
		for {
			if len(params) >= maxArgs {
				p.error(p.peek(), "can't have more than 255 parameters")
			}
			params = append(params, p.consume(TokenIdentifier, "expected parameter name"))
			if !p.matchAny(TokenComma) {
				break
			}
		}
	}
	p.consume(TokenRightParen, "expected ')' after parameters")

	p.consume(TokenLeftBrace, "expected '{' before "+kind+" body")
	body := p.block()

	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() Stmt {
	name := p.consume(TokenIdentifier, "expected variable name")

	var init Expr
	if p.matchAny(TokenEqual) {
		init = p.expression()
	}

	p.consume(TokenSemicolon, "expected ';' after variable declaration")
	return &VarStmt{Name: name, Init: init}
}

// --- statements -----------------------------------------------------

func (p *Parser) statement() Stmt {
	switch {
	case p.matchAny(TokenFor):
		return p.forStmt()
	case p.matchAny(TokenIf):
		return p.ifStmt()
	case p.matchAny(TokenPrint):
		return p.printStmt()
	case p.matchAny(TokenReturn):
		return p.returnStmt()
	case p.matchAny(TokenWhile):
		return p.whileStmt()
	case p.matchAny(TokenLeftBrace):
		return &BlockStmt{Stmts: p.block()}
	default:
		return p.expressionStmt()
	}
}

// forStmt desugars `for(init; cond; inc) body` into
// `{ init; while (cond) { body; inc; } }` at parse time. A missing cond
// becomes the literal true; missing init/inc are simply omitted.
func (p *Parser) forStmt() Stmt {
	p.consume(TokenLeftParen, "expected '(' after 'for'")

	var init Stmt
	switch {
	case p.matchAny(TokenSemicolon):
		init = nil
	case p.check(TokenVar):
		p.next()
		init = p.varDecl()
	default:
		init = p.expressionStmt()
	}

	var cond Expr
	if !p.check(TokenSemicolon) {
		cond = p.expression()
	}
	p.consume(TokenSemicolon, "expected ';' after loop condition")

	var inc Expr
	if !p.check(TokenRightParen) {
		inc = p.expression()
	}
	p.consume(TokenRightParen, "expected ')' after for clauses")

	body := p.statement()

	if inc != nil {
		body = &BlockStmt{Stmts: []Stmt{body, &ExpressionStmt{Expr: inc}}}
	}

	if cond == nil {
		cond = &LiteralExpr{Value: true}
	}
	body = &WhileStmt{Cond: cond, Body: body}

	if init != nil {
		body = &BlockStmt{Stmts: []Stmt{init, body}}
	}

	return body
}

func (p *Parser) ifStmt() Stmt {
	p.consume(TokenLeftParen, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(TokenRightParen, "expected ')' after if condition")

	then := p.statement()
	var elseBranch Stmt
	if p.matchAny(TokenElse) {
		elseBranch = p.statement()
	}

	return &IfStmt{Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) printStmt() Stmt {
	value := p.expression()
	p.consume(TokenSemicolon, "expected ';' after value")
	return &PrintStmt{Expr: value}
}

func (p *Parser) returnStmt() Stmt {
	keyword := p.lastConsumed

	var value Expr
	if !p.check(TokenSemicolon) {
		value = p.expression()
	}

	p.consume(TokenSemicolon, "expected ';' after return value")
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() Stmt {
	p.consume(TokenLeftParen, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(TokenRightParen, "expected ')' after condition")
	body := p.statement()

	return &WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) block() []Stmt {
	var stmts []Stmt
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	p.consume(TokenRightBrace, "expected '}' after block")
	return stmts
}

func (p *Parser) expressionStmt() Stmt {
	expr := p.expression()
	p.consume(TokenSemicolon, "expected ';' after expression")
	return &ExpressionStmt{Expr: expr}
}

// --- expressions -----------------------------------------------------

func (p *Parser) expression() Expr {
	return p.assignment()
}

func (p *Parser) assignment() Expr {
	expr := p.or()

	if p.matchAny(TokenEqual) {
		equals := p.lastConsumed
		value := p.assignment()

		switch e := expr.(type) {
		case *Variable:
			return &Assign{Name: e.Name, Value: value}
		case *Get:
			return &Set{Obj: e.Obj, Name: e.Name, Value: value}
		}

		p.error(equals, "invalid assignment target")
	}

	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()

	for p.check(TokenOr) {
		op := p.next()
		right := p.and()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}

	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()

	for p.check(TokenAnd) {
		op := p.next()
		right := p.equality()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}

	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()

	for p.check(TokenBangEqual) || p.check(TokenEqualEqual) {
		op := p.next()
		right := p.comparison()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}

	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()

	for p.check(TokenGreater) || p.check(TokenGreaterEqual) || p.check(TokenLess) || p.check(TokenLessEqual) {
		op := p.next()
		right := p.term()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}

	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()

	for p.check(TokenMinus) || p.check(TokenPlus) {
		op := p.next()
		right := p.factor()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}

	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()

	for p.check(TokenSlash) || p.check(TokenStar) {
		op := p.next()
		right := p.unary()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}

	return expr
}

func (p *Parser) unary() Expr {
	if p.check(TokenBang) || p.check(TokenMinus) {
		op := p.next()
		right := p.unary()
		return &Unary{Op: op, Right: right}
	}

	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()

	for {
		switch {
		case p.matchAny(TokenLeftParen):
			expr = p.finishCall(expr)
		case p.matchAny(TokenDot):
			name := p.consume(TokenIdentifier, "expected property name after '.'")
			expr = &Get{Obj: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(TokenRightParen) {
		for {
			if len(args) >= maxArgs {
				p.error(p.peek(), "can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.matchAny(TokenComma) {
				break
			}
		}
	}

	paren := p.consume(TokenRightParen, "expected ')' after arguments")
	return &Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.matchAny(TokenFalse):
		return &LiteralExpr{Value: false}
	case p.matchAny(TokenTrue):
		return &LiteralExpr{Value: true}
	case p.matchAny(TokenNil):
		return &LiteralExpr{Value: nil}
	case p.check(TokenNumber), p.check(TokenString):
		return &LiteralExpr{Value: p.next().Literal}
	case p.matchAny(TokenSuper):
		keyword := p.lastConsumed
		p.consume(TokenDot, "expected '.' after 'super'")
		method := p.consume(TokenIdentifier, "expected superclass method name")
		return &Super{Keyword: keyword, Method: method}
	case p.matchAny(TokenThis):
		return &This{Keyword: p.lastConsumed}
	case p.matchAny(TokenIdentifier):
		return &Variable{Name: p.lastConsumed}
	case p.matchAny(TokenLeftParen):
		expr := p.expression()
		p.consume(TokenRightParen, "expected ')' after expression")
		return &Grouping{Expr: expr}
	default:
		panic(p.error(p.peek(), "expected expression"))
	}
}
