package lox

// functionType tracks what kind of function body the resolver is currently
// inside, so `return` and bare-`return` inside `init` can be validated.
type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classType tracks whether the resolver is inside a class body and
// whether that class has a superclass, so `this`/`super` misuse can be
// reported.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver is a static pass that runs to completion before interpretation
// begins. For every Variable and Assign node it records, on the
// Interpreter, the lexical hop count from the use site to its binding
// scope. The global scope is never pushed onto the scope stack - a name
// that resolves to no local scope falls through to globals at runtime.
type Resolver struct {
	interp   *Interpreter
	reporter *Reporter

	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
}

// NewResolver creates a resolver that will annotate interp's resolution
// table. Errors are reported to reporter.
func NewResolver(interp *Interpreter, reporter *Reporter) *Resolver {
	return &Resolver{interp: interp, reporter: reporter}
}

// Resolve walks every top-level statement. It must be called, to
// completion, before Interpreter.Interpret runs on the same statements.
func (r *Resolver) Resolve(stmts []Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) peekScope() map[string]bool {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare marks name as present-but-not-yet-initialised in the current
// local scope. A redeclaration in the same local scope is an error;
// global scope isn't tracked so top-level re-`var` is always fine.
func (r *Resolver) declare(name Token) {
	scope := r.peekScope()
	if scope == nil {
		return
	}

	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.Resolve(name, "already a variable with this name in this scope")
	}

	scope[name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	scope := r.peekScope()
	if scope == nil {
		return
	}
	scope[name.Lexeme] = true
}

// resolveLocal walks the scope stack inside-out, and on the first scope
// containing name records the hop distance against expr's identity.
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.interp.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
	// Not found in any local scope: falls through to globals at runtime.
}

func (r *Resolver) resolveFunction(decl *FunctionStmt, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()

	for _, param := range decl.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(decl.Body)
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ClassStmt:
		r.resolveClassStmt(s)
	case *ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *PrintStmt:
		r.resolveExpr(s.Expr)
	case *ReturnStmt:
		if r.currentFunction == fnNone {
			r.reporter.Resolve(s.Keyword, "can't return from top-level code")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.reporter.Resolve(s.Keyword, "can't return a value from an initializer")
			}
			r.resolveExpr(s.Value)
		}
	case *VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	}
}

func (r *Resolver) resolveClassStmt(s *ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reporter.Resolve(s.Superclass.Name, "a class can't inherit from itself")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peekScope()["this"] = true
	defer r.endScope()

	for _, method := range s.Methods {
		typ := fnMethod
		if method.Name.Lexeme == "init" {
			typ = fnInitializer
		}
		r.resolveFunction(method, typ)
	}
}

func (r *Resolver) resolveExpr(expr Expr) {
	switch e := expr.(type) {
	case *Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *Get:
		r.resolveExpr(e.Obj)
	case *Grouping:
		r.resolveExpr(e.Expr)
	case *LiteralExpr:
		// Nothing to resolve.
	case *Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Obj)
	case *Super:
		if r.currentClass == classNone {
			r.reporter.Resolve(e.Keyword, "can't use 'super' outside of a class")
		} else if r.currentClass != classSubclass {
			r.reporter.Resolve(e.Keyword, "can't use 'super' in a class with no superclass")
		}
		r.resolveLocal(e, e.Keyword)
	case *This:
		if r.currentClass == classNone {
			r.reporter.Resolve(e.Keyword, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *Unary:
		r.resolveExpr(e.Right)
	case *Variable:
		r.resolveVariable(e)
	}
}

func (r *Resolver) resolveVariable(e *Variable) {
	scope := r.peekScope()
	if scope != nil {
		if defined, ok := scope[e.Name.Lexeme]; ok && !defined {
			r.reporter.Resolve(e.Name, "can't read local variable in its own initializer")
		}
	}
	r.resolveLocal(e, e.Name)
}
