package lox

import (
	"fmt"
	"io"
)

// Interpreter owns the globals environment, the current environment
// pointer, and the resolution table built by the Resolver. It pairs two
// tree-walking visitors - evaluate for expressions, execute for statements
// - implemented as exhaustive type switches rather than an Accept/Visitor
// pair.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[Expr]int
	reporter    *Reporter
	stdout      io.Writer
}

// NewInterpreter creates an interpreter writing `print` output to stdout
// and diagnostics to reporter. The globals environment is pre-populated
// with the native `clock` function.
func NewInterpreter(reporter *Reporter, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	interp := &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[Expr]int),
		reporter:    reporter,
		stdout:      stdout,
	}
	installNatives(globals)
	return interp
}

// Resolve records the hop distance the Resolver computed for expr. expr's
// pointer identity is the map key: the same variable name used twice
// produces two distinct keys.
func (interp *Interpreter) Resolve(expr Expr, depth int) {
	interp.locals[expr] = depth
}

// Interpret executes each statement in order. A runtime error aborts this
// call (remaining statements in stmts are not run) but is recorded on the
// Reporter rather than panicking, so a REPL can call Interpret again for
// the next line.
func (interp *Interpreter) Interpret(stmts []Stmt) {
	for _, stmt := range stmts {
		if err := interp.execute(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				interp.reporter.Runtime(rerr)
			} else {
				interp.reporter.Runtime(&RuntimeError{Msg: err.Error()})
			}
			return
		}
	}
}

// --- statement execution -----------------------------------------------

func (interp *Interpreter) execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *BlockStmt:
		return interp.executeBlock(s.Stmts, NewEnvironment(interp.environment))
	case *ClassStmt:
		return interp.executeClassStmt(s)
	case *ExpressionStmt:
		_, err := interp.evaluate(s.Expr)
		return err
	case *FunctionStmt:
		fn := NewFunction(s, interp.environment, false)
		interp.environment.Define(s.Name.Lexeme, fn)
		return nil
	case *IfStmt:
		cond, err := interp.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return interp.execute(s.Then)
		}
		if s.Else != nil {
			return interp.execute(s.Else)
		}
		return nil
	case *PrintStmt:
		v, err := interp.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(interp.stdout, stringify(v))
		return nil
	case *ReturnStmt:
		var value any
		if s.Value != nil {
			v, err := interp.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &controlReturn{value: value}
	case *VarStmt:
		var value any
		if s.Init != nil {
			v, err := interp.evaluate(s.Init)
			if err != nil {
				return err
			}
			value = v
		}
		interp.environment.Define(s.Name.Lexeme, value)
		return nil
	case *WhileStmt:
		for {
			cond, err := interp.evaluate(s.Cond)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := interp.execute(s.Body); err != nil {
				return err
			}
		}
	}

	return nil
}

// executeBlock runs stmts in env, restoring the previous environment on
// any exit - normal, error, or an in-flight controlReturn.
func (interp *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := interp.environment
	interp.environment = env
	defer func() { interp.environment = previous }()

	for _, stmt := range stmts {
		if err := interp.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (interp *Interpreter) executeClassStmt(s *ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := interp.evaluate(s.Superclass)
		if err != nil {
			return err
		}

		sc, ok := v.(*Class)
		if !ok {
			return &RuntimeError{Token: s.Superclass.Name, Msg: "superclass must be a class"}
		}
		superclass = sc
	}

	interp.environment.Define(s.Name.Lexeme, nil)

	methodEnv := interp.environment
	if superclass != nil {
		methodEnv = NewEnvironment(interp.environment)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	return interp.environment.Assign(s.Name, class)
}

// --- expression evaluation -----------------------------------------------

func (interp *Interpreter) evaluate(expr Expr) (any, error) {
	switch e := expr.(type) {
	case *Assign:
		return interp.evalAssign(e)
	case *Binary:
		return interp.evalBinary(e)
	case *Call:
		return interp.evalCall(e)
	case *Get:
		return interp.evalGet(e)
	case *Grouping:
		return interp.evaluate(e.Expr)
	case *LiteralExpr:
		return e.Value, nil
	case *Logical:
		return interp.evalLogical(e)
	case *Set:
		return interp.evalSet(e)
	case *Super:
		return interp.evalSuper(e)
	case *This:
		return interp.lookupVariable(e.Keyword, e)
	case *Unary:
		return interp.evalUnary(e)
	case *Variable:
		return interp.lookupVariable(e.Name, e)
	}

	return nil, fmt.Errorf("unhandled expression type %T", expr)
}

func (interp *Interpreter) lookupVariable(name Token, expr Expr) (any, error) {
	if distance, ok := interp.locals[expr]; ok {
		return interp.environment.GetAt(distance, name.Lexeme), nil
	}
	return interp.globals.Get(name)
}

func (interp *Interpreter) evalAssign(e *Assign) (any, error) {
	value, err := interp.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := interp.locals[e]; ok {
		interp.environment.AssignAt(distance, e.Name, value)
		return value, nil
	}

	if err := interp.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (interp *Interpreter) evalBinary(e *Binary) (any, error) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := interp.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case TokenPlus:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Token: e.Op, Msg: "operands must be two numbers or two strings"}
	case TokenMinus:
		lf, rf, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf - rf, nil
	case TokenStar:
		lf, rf, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf * rf, nil
	case TokenSlash:
		lf, rf, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf / rf, nil
	case TokenGreater:
		lf, rf, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf > rf, nil
	case TokenGreaterEqual:
		lf, rf, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf >= rf, nil
	case TokenLess:
		lf, rf, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf < rf, nil
	case TokenLessEqual:
		lf, rf, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf <= rf, nil
	case TokenBangEqual:
		return !isEqual(left, right), nil
	case TokenEqualEqual:
		return isEqual(left, right), nil
	}

	return nil, fmt.Errorf("unhandled binary operator %s", e.Op.Kind)
}

func (interp *Interpreter) numberOperands(op Token, left, right any) (float64, float64, error) {
	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, &RuntimeError{Token: op, Msg: "operands must be numbers"}
	}
	return lf, rf, nil
}

func (interp *Interpreter) evalCall(e *Call) (any, error) {
	callee, err := interp.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(e.Args))
	for i, arg := range e.Args {
		v, err := interp.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Msg: "can only call functions and classes"}
	}

	if len(args) != callable.Arity() {
		return nil, &RuntimeError{
			Token: e.Paren,
			Msg:   fmt.Sprintf("expected %d arguments but got %d", callable.Arity(), len(args)),
		}
	}

	return callable.Call(interp, args)
}

func (interp *Interpreter) evalGet(e *Get) (any, error) {
	obj, err := interp.evaluate(e.Obj)
	if err != nil {
		return nil, err
	}

	instance, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeError{Token: e.Name, Msg: "only instances have properties"}
	}

	return instance.Get(e.Name)
}

func (interp *Interpreter) evalSet(e *Set) (any, error) {
	obj, err := interp.evaluate(e.Obj)
	if err != nil {
		return nil, err
	}

	instance, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeError{Token: e.Name, Msg: "only instances have fields"}
	}

	value, err := interp.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(e.Name, value)
	return value, nil
}

func (interp *Interpreter) evalSuper(e *Super) (any, error) {
	distance := interp.locals[e]
	superclass := interp.environment.GetAt(distance, "super").(*Class)
	instance := interp.environment.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, &RuntimeError{Token: e.Method, Msg: "undefined property '" + e.Method.Lexeme + "'"}
	}

	return method.bind(instance), nil
}

func (interp *Interpreter) evalLogical(e *Logical) (any, error) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Kind == TokenOr {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}

	return interp.evaluate(e.Right)
}

func (interp *Interpreter) evalUnary(e *Unary) (any, error) {
	right, err := interp.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case TokenMinus:
		f, ok := right.(float64)
		if !ok {
			return nil, &RuntimeError{Token: e.Op, Msg: "operand must be a number"}
		}
		return -f, nil
	case TokenBang:
		return !isTruthy(right), nil
	}

	return nil, fmt.Errorf("unhandled unary operator %s", e.Op.Kind)
}
