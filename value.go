// value.go: the runtime dynamic-type model and the callable hierarchy
// (functions, native functions, classes) built on top of it.
package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind is the tag discriminating which case of Value.Data is valid.
type ValueKind int

const (
	ValNil ValueKind = iota
	ValBool
	ValNumber
	ValString
	ValFunction
	ValNativeFn
	ValClass
	ValInstance
)

// Value is the universal runtime carrier: a tag plus a Go value appropriate
// to that tag. nil/bool/float64/string for the primitive cases; *Function,
// *NativeFn, *Class, *Instance for the callable/object cases.
type Value struct {
	Kind ValueKind
	Data interface{}
}

var Nil = Value{Kind: ValNil}

func BoolVal(b bool) Value   { return Value{Kind: ValBool, Data: b} }
func NumberVal(n float64) Value { return Value{Kind: ValNumber, Data: n} }
func StringVal(s string) Value  { return Value{Kind: ValString, Data: s} }

func (v Value) asBool() bool     { return v.Data.(bool) }
func (v Value) asNumber() float64 { return v.Data.(float64) }
func (v Value) asString() string  { return v.Data.(string) }

// IsTruthy: every value except nil and false is truthy (0 is truthy; empty
// string is truthy).
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case ValNil:
		return false
	case ValBool:
		return v.asBool()
	default:
		return true
	}
}

// ValuesEqual requires matching types, except nil == nil is true and nil
// never equals a non-nil value.
func ValuesEqual(a, b Value) bool {
	if a.Kind == ValNil && b.Kind == ValNil {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValNil:
		return true
	case ValBool:
		return a.asBool() == b.asBool()
	case ValNumber:
		return a.asNumber() == b.asNumber()
	case ValString:
		return a.asString() == b.asString()
	default:
		// Functions/classes/instances compare by identity of their boxed pointer.
		return a.Data == b.Data
	}
}

// Stringify renders a value the way print writes it.
func Stringify(v Value) string {
	switch v.Kind {
	case ValNil:
		return "nil"
	case ValBool:
		if v.asBool() {
			return "true"
		}
		return "false"
	case ValNumber:
		return formatNumber(v.asNumber())
	case ValString:
		return v.asString()
	case ValFunction:
		return "<fn " + v.Data.(*Function).Declaration.Name.Lexeme + ">"
	case ValNativeFn:
		return "<native fn>"
	case ValClass:
		return v.Data.(*Class).Name
	case ValInstance:
		return v.Data.(*Instance).Class.Name + " instance"
	default:
		return fmt.Sprintf("<unknown value %v>", v.Data)
	}
}

// formatNumber trims a trailing ".0": integral doubles print without a
// fractional part, everything else uses the shortest round-trip form.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return strings.TrimSuffix(s, ".0")
}

// Callable is satisfied by every value that can appear in call position.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []Value) Value
	String() string
}

// Function is a user-defined callable: parameters, body, and the closure
// environment captured at declaration time.
type Function struct {
	Declaration   *FunctionStmt
	Closure       *Env
	IsInitializer bool
}

func NewFunction(decl *FunctionStmt, closure *Env, isInitializer bool) *Function {
	return &Function{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) String() string { return "<fn " + f.Declaration.Name.Lexeme + ">" }

// Bind produces a bound method: a fresh Function whose closure is a new
// scope, parented on f's closure, with "this" predefined.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnv(f.Closure)
	env.Define("this", Value{Kind: ValInstance, Data: instance})
	return NewFunction(f.Declaration, env, f.IsInitializer)
}

func (f *Function) Call(interp *Interpreter, args []Value) Value {
	env := NewEnv(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	var result Value
	func() {
		defer func() {
			if r := recover(); r != nil {
				if sig, ok := r.(returnSignal); ok {
					result = sig.value
					return
				}
				panic(r)
			}
		}()
		interp.executeBlock(f.Declaration.Body, env)
	}()

	if f.IsInitializer {
		this, _ := f.Closure.GetAt(0, "this")
		return this
	}
	return result
}

// NativeFn is a host-provided callable; the sole instance shipped by golox
// is clock() (native.go).
type NativeFn struct {
	NameStr string
	ArityN  int
	Fn      func(interp *Interpreter, args []Value) Value
}

func (n *NativeFn) Arity() int { return n.ArityN }
func (n *NativeFn) String() string { return "<native fn>" }
func (n *NativeFn) Call(interp *Interpreter, args []Value) Value { return n.Fn(interp, args) }

// Class holds a name, optional superclass, and its own method table.
// Calling a class constructs an instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) String() string { return c.Name }

// FindMethod walks the superclass chain looking for name, returning the
// unbound Function.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the initializer's arity, or 0 if the class has no init method.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(interp *Interpreter, args []Value) Value {
	instance := &Instance{Class: c, Fields: map[string]Value{}}
	if init := c.FindMethod("init"); init != nil {
		init.Bind(instance).Call(interp, args)
	}
	return Value{Kind: ValInstance, Data: instance}
}

// Instance is a mutable property map plus a reference to its class. Cycles
// through fields are permitted and unremarkable under Go's garbage
// collector.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// Get resolves a property access: fields first, then a bound method walking
// the superclass chain.
func (i *Instance) Get(name Token) Value {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v
	}
	if method := i.Class.FindMethod(name.Lexeme); method != nil {
		return Value{Kind: ValFunction, Data: method.Bind(i)}
	}
	throwRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
	panic("unreachable")
}

func (i *Instance) Set(name Token, value Value) {
	i.Fields[name.Lexeme] = value
}

func (i *Instance) String() string { return i.Class.Name + " instance" }

// AsCallable extracts the Callable behind a Value, or (nil, false) if v does
// not support calling.
func AsCallable(v Value) (Callable, bool) {
	switch v.Kind {
	case ValFunction:
		return v.Data.(*Function), true
	case ValNativeFn:
		return v.Data.(*NativeFn), true
	case ValClass:
		return v.Data.(*Class), true
	default:
		return nil, false
	}
}
