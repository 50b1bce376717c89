// interpreter.go: the tree-walking evaluator. Walks the AST a second time,
// evaluating expressions and executing statements against a chain of
// environments, dispatching variable reads/writes through the resolver's
// Resolution map. Binary operands are evaluated exactly once each, and a
// while loop's condition is re-evaluated on every iteration.
package lox

import "fmt"

// Interpreter walks a resolved program and executes it against a chain of
// environments rooted at Globals.
type Interpreter struct {
	Globals    *Env
	env        *Env
	resolution Resolution
}

// NewInterpreter builds an interpreter with an empty global environment and
// the native functions registered (native.go: clock()).
func NewInterpreter() *Interpreter {
	globals := NewEnv(nil)
	ip := &Interpreter{Globals: globals, env: globals}
	registerNatives(ip)
	return ip
}

// Interpret executes a resolved program. On the first runtime error it
// stops and returns that error; stdout effects already produced by earlier
// statements are not rolled back.
func (ip *Interpreter) Interpret(stmts []Stmt, resolution Resolution) error {
	ip.resolution = resolution
	var rtErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if rp, ok := r.(runtimePanic); ok {
					rtErr = rp.err
					return
				}
				panic(r)
			}
		}()
		for _, stmt := range stmts {
			ip.execute(stmt)
		}
	}()
	return rtErr
}

// ----- statement execution -----

func (ip *Interpreter) execute(stmt Stmt) {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		ip.evaluate(s.Expression)
	case *PrintStmt:
		value := ip.evaluate(s.Expression)
		fmt.Println(Stringify(value))
	case *VarStmt:
		var value Value = Nil
		if s.Initializer != nil {
			value = ip.evaluate(s.Initializer)
		}
		ip.env.Define(s.Name.Lexeme, value)
	case *BlockStmt:
		ip.executeBlock(s.Statements, NewEnv(ip.env))
	case *IfStmt:
		if ip.evaluate(s.Condition).IsTruthy() {
			ip.execute(s.ThenBranch)
		} else if s.ElseBranch != nil {
			ip.execute(s.ElseBranch)
		}
	case *WhileStmt:
		for ip.evaluate(s.Condition).IsTruthy() {
			ip.execute(s.Body)
		}
	case *FunctionStmt:
		fn := NewFunction(s, ip.env, false)
		ip.env.Define(s.Name.Lexeme, Value{Kind: ValFunction, Data: fn})
	case *ReturnStmt:
		var value Value = Nil
		if s.Value != nil {
			value = ip.evaluate(s.Value)
		}
		panic(returnSignal{value: value})
	case *ClassStmt:
		ip.executeClass(s)
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", s))
	}
}

// executeBlock runs stmts against env, always restoring the interpreter's
// previous environment on the way out — including when a statement panics
// with a return signal or a runtime error.
func (ip *Interpreter) executeBlock(stmts []Stmt, env *Env) {
	previous := ip.env
	ip.env = env
	defer func() { ip.env = previous }()
	for _, stmt := range stmts {
		ip.execute(stmt)
	}
}

func (ip *Interpreter) executeClass(stmt *ClassStmt) {
	var superclass *Class
	if stmt.Superclass != nil {
		sup := ip.evaluate(stmt.Superclass)
		if sup.Kind != ValClass {
			throwRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sup.Data.(*Class)
	}

	ip.env.Define(stmt.Name.Lexeme, Nil)

	classEnv := ip.env
	if stmt.Superclass != nil {
		classEnv = NewEnv(ip.env)
		classEnv.Define("super", Value{Kind: ValClass, Data: superclass})
	}

	methods := map[string]*Function{}
	for _, m := range stmt.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, classEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(stmt.Name.Lexeme, superclass, methods)
	ip.env.Assign(stmt.Name, Value{Kind: ValClass, Data: class})
}

// ----- expression evaluation -----

func (ip *Interpreter) evaluate(expr Expr) Value {
	switch e := expr.(type) {
	case *Literal:
		return literalValue(e.Value)
	case *Grouping:
		return ip.evaluate(e.Expression)
	case *Unary:
		return ip.evalUnary(e)
	case *Binary:
		return ip.evalBinary(e)
	case *Logical:
		return ip.evalLogical(e)
	case *Variable:
		return ip.lookupVariable(e.Name, e)
	case *Assign:
		return ip.evalAssign(e)
	case *Call:
		return ip.evalCall(e)
	case *Get:
		return ip.evalGet(e)
	case *Set:
		return ip.evalSet(e)
	case *This:
		return ip.lookupVariable(e.Keyword, e)
	case *Super:
		return ip.evalSuper(e)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", e))
	}
}

func literalValue(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolVal(x)
	case float64:
		return NumberVal(x)
	case string:
		return StringVal(x)
	default:
		panic(fmt.Sprintf("interpreter: unsupported literal payload %T", x))
	}
}

// lookupVariable dispatches through the resolution map when present, else
// falls back to a name walk to globals.
func (ip *Interpreter) lookupVariable(name Token, expr Expr) Value {
	if distance, ok := ip.resolution[expr]; ok {
		v, _ := ip.env.GetAt(distance, name.Lexeme)
		return v
	}
	return ip.Globals.Get(name)
}

func (ip *Interpreter) evalAssign(e *Assign) Value {
	value := ip.evaluate(e.Value)
	if distance, ok := ip.resolution[e]; ok {
		ip.env.AssignAt(distance, e.Name.Lexeme, value)
	} else {
		ip.Globals.Assign(e.Name, value)
	}
	return value
}

func (ip *Interpreter) evalUnary(e *Unary) Value {
	right := ip.evaluate(e.Right)
	switch e.Operator.Type {
	case MINUS:
		checkNumberOperand(e.Operator, right)
		return NumberVal(-right.asNumber())
	case BANG:
		return BoolVal(!right.IsTruthy())
	}
	panic("interpreter: unhandled unary operator")
}

// evalBinary evaluates left once, then right once.
func (ip *Interpreter) evalBinary(e *Binary) Value {
	left := ip.evaluate(e.Left)
	right := ip.evaluate(e.Right)
	op := e.Operator

	switch op.Type {
	case GREATER:
		checkNumberOperands(op, left, right)
		return BoolVal(left.asNumber() > right.asNumber())
	case GREATER_EQUAL:
		checkNumberOperands(op, left, right)
		return BoolVal(left.asNumber() >= right.asNumber())
	case LESS:
		checkNumberOperands(op, left, right)
		return BoolVal(left.asNumber() < right.asNumber())
	case LESS_EQUAL:
		checkNumberOperands(op, left, right)
		return BoolVal(left.asNumber() <= right.asNumber())
	case BANG_EQUAL:
		return BoolVal(!ValuesEqual(left, right))
	case EQUAL_EQUAL:
		return BoolVal(ValuesEqual(left, right))
	case MINUS:
		checkNumberOperands(op, left, right)
		return NumberVal(left.asNumber() - right.asNumber())
	case SLASH:
		checkNumberOperands(op, left, right)
		return NumberVal(left.asNumber() / right.asNumber())
	case STAR:
		checkNumberOperands(op, left, right)
		return NumberVal(left.asNumber() * right.asNumber())
	case PLUS:
		return ip.evalPlus(op, left, right)
	}
	panic("interpreter: unhandled binary operator")
}

// evalPlus implements the overload rules for +: number+number adds,
// string+string concatenates, anything else is a type error.
func (ip *Interpreter) evalPlus(op Token, left, right Value) Value {
	if left.Kind == ValNumber && right.Kind == ValNumber {
		return NumberVal(left.asNumber() + right.asNumber())
	}
	if left.Kind == ValString && right.Kind == ValString {
		return StringVal(left.asString() + right.asString())
	}
	throwRuntimeError(op, "Operands must be two numbers or two strings.")
	panic("unreachable")
}

// evalLogical short-circuits and returns the determining operand value
// unconverted.
func (ip *Interpreter) evalLogical(e *Logical) Value {
	left := ip.evaluate(e.Left)
	if e.Operator.Type == OR {
		if left.IsTruthy() {
			return left
		}
	} else { // AND
		if !left.IsTruthy() {
			return left
		}
	}
	return ip.evaluate(e.Right)
}

func (ip *Interpreter) evalCall(e *Call) Value {
	callee := ip.evaluate(e.Callee)

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = ip.evaluate(a)
	}

	callable, ok := AsCallable(callee)
	if !ok {
		throwRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		throwRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(ip, args)
}

func (ip *Interpreter) evalGet(e *Get) Value {
	object := ip.evaluate(e.Object)
	if object.Kind != ValInstance {
		throwRuntimeError(e.Name, "Only instances have properties.")
	}
	return object.Data.(*Instance).Get(e.Name)
}

func (ip *Interpreter) evalSet(e *Set) Value {
	object := ip.evaluate(e.Object)
	if object.Kind != ValInstance {
		throwRuntimeError(e.Name, "Only instances have fields.")
	}
	value := ip.evaluate(e.Value)
	object.Data.(*Instance).Set(e.Name, value)
	return value
}

// evalSuper implements super.method: look up `super` at its recorded depth,
// `this` at depth-1 (the method-body scope inside it), and resolve the
// method on the superclass, returning it bound to `this`.
func (ip *Interpreter) evalSuper(e *Super) Value {
	distance := ip.resolution[e]
	superVal, _ := ip.env.GetAt(distance, "super")
	superclass := superVal.Data.(*Class)

	thisVal, _ := ip.env.GetAt(distance-1, "this")
	instance := thisVal.Data.(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		throwRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return Value{Kind: ValFunction, Data: method.Bind(instance)}
}

// ----- operand checks -----

func checkNumberOperand(op Token, v Value) {
	if v.Kind != ValNumber {
		throwRuntimeError(op, "Operand must be a number.")
	}
}

func checkNumberOperands(op Token, left, right Value) {
	if left.Kind != ValNumber || right.Kind != ValNumber {
		throwRuntimeError(op, "Operands must be numbers.")
	}
}
