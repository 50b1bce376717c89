// resolver.go: the static resolver. A single pre-order walk over the AST
// that binds every variable expression to a lexical scope depth and
// enforces the static rules (return only in functions, this/super only in
// methods/subclasses, no self-referential initializer, no duplicate local
// names). Scope depth is computed as distance = len(scopes)-1-i so it
// agrees with Env.GetAt/AssignAt's indexing, and is covered by
// resolver_test.go's depth-recording tests.
package lox

// functionContext tracks whether the resolver is currently inside a
// function, a method, or an initializer method.
type functionContext int

const (
	fnNone functionContext = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classContext tracks whether the resolver is currently inside a class body,
// and whether that class has a superclass.
type classContext int

const (
	clsNone classContext = iota
	clsClass
	clsSubclass
)

// Resolver performs a single pre-order walk over a program and populates a
// Resolution (expression-node identity -> scope depth).
type Resolver struct {
	scopes      []map[string]bool
	resolution  Resolution
	currentFn   functionContext
	currentCls  classContext
	errors      []error
}

// Resolution maps an expression node's identity to the scope depth at which
// its binding lives. Expressions absent from the map refer to globals.
type Resolution map[Expr]int

// NewResolver creates a resolver ready to resolve one program.
func NewResolver() *Resolver {
	return &Resolver{resolution: Resolution{}}
}

// Resolve walks stmts once and returns the resulting Resolution, or any
// static errors encountered. Resolution is a pure function of the AST: the
// same statements always produce the same map.
func Resolve(stmts []Stmt) (Resolution, []error) {
	r := NewResolver()
	r.resolveStmts(stmts)
	return r.resolution, r.errors
}

func (r *Resolver) errorAt(tok Token, message string) {
	r.errors = append(r.errors, &ResolveError{Token: tok, Message: message})
}

// ----- scope stack -----

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() map[string]bool {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare adds name to the innermost scope as not-yet-initialized, erroring
// if the name is already present there.
func (r *Resolver) declare(name Token) {
	scope := r.innermost()
	if scope == nil {
		return
	}
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks name as initialized in the innermost scope.
func (r *Resolver) define(name Token) {
	scope := r.innermost()
	if scope == nil {
		return
	}
	scope[name.Lexeme] = true
}

// resolveLocal walks scopes from innermost outward, recording the distance
// to the first scope that declares name.Lexeme.
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.resolution[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: assumed global, no map entry.
}

// ----- statements -----

func (r *Resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *PrintStmt:
		r.resolveExpr(s.Expression)
	case *ReturnStmt:
		if r.currentFn == fnNone {
			r.errorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFn == fnInitializer {
				r.errorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ClassStmt:
		r.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, ctx functionContext) {
	enclosing := r.currentFn
	r.currentFn = ctx
	defer func() { r.currentFn = enclosing }()

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveClass(cls *ClassStmt) {
	enclosingCls := r.currentCls
	r.currentCls = clsClass
	defer func() { r.currentCls = enclosingCls }()

	r.declare(cls.Name)
	r.define(cls.Name)

	if cls.Superclass != nil {
		if cls.Superclass.Name.Lexeme == cls.Name.Lexeme {
			r.errorAt(cls.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentCls = clsSubclass
		r.resolveExpr(cls.Superclass)

		r.beginScope()
		r.innermost()["super"] = true
	}

	r.beginScope()
	r.innermost()["this"] = true

	for _, method := range cls.Methods {
		ctx := fnMethod
		if method.Name.Lexeme == "init" {
			ctx = fnInitializer
		}
		r.resolveFunction(method, ctx)
	}

	r.endScope() // "this" scope

	if cls.Superclass != nil {
		r.endScope() // "super" scope
	}
}

// ----- expressions -----

func (r *Resolver) resolveExpr(expr Expr) {
	switch e := expr.(type) {
	case *Variable:
		if scope := r.innermost(); scope != nil {
			if declared, ok := scope[e.Name.Lexeme]; ok && !declared {
				r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *Get:
		r.resolveExpr(e.Object)
	case *Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *Grouping:
		r.resolveExpr(e.Expression)
	case *Literal:
		// no sub-expressions, nothing to resolve
	case *Unary:
		r.resolveExpr(e.Right)
	case *This:
		if r.currentCls == clsNone {
			r.errorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *Super:
		if r.currentCls == clsNone {
			r.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
		} else if r.currentCls != clsSubclass {
			r.errorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	default:
		panic("resolver: unhandled expression type")
	}
}
