// ast_printer.go: a debug visitor that renders an expression tree as a fully
// parenthesized Lisp-like string, e.g. "(+ 1 (* 2 3))". Wired into golox's
// `-p` flag, which parses a program, prints its AST, and exits without
// evaluating it.
package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintAST renders expr the way the reference AstPrinter does: every
// operator application wrapped in parentheses, operands space-separated.
func PrintAST(expr Expr) string {
	switch e := expr.(type) {
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Grouping:
		return parenthesize("group", e.Expression)
	case *Literal:
		return printLiteral(e.Value)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		args := append([]Expr{e.Callee}, e.Args...)
		return parenthesize("call", args...)
	case *Get:
		return parenthesize("get ."+e.Name.Lexeme, e.Object)
	case *Set:
		return parenthesize("set ."+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super ." + e.Method.Lexeme + ")"
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(PrintAST(e))
	}
	b.WriteByte(')')
	return b.String()
}

func printLiteral(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

// PrintProgram renders each top-level statement's expression form, one per
// line, for statements that wrap a single expression; other statement kinds
// render a short tag. This is a debugging convenience, not a formatter.
func PrintProgram(stmts []Stmt) string {
	var b strings.Builder
	for i, s := range stmts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(printStmt(s))
	}
	return b.String()
}

func printStmt(s Stmt) string {
	switch st := s.(type) {
	case *ExpressionStmt:
		return PrintAST(st.Expression)
	case *PrintStmt:
		return parenthesize("print", st.Expression)
	case *VarStmt:
		if st.Initializer == nil {
			return "(var " + st.Name.Lexeme + ")"
		}
		return parenthesize("var "+st.Name.Lexeme, st.Initializer)
	case *BlockStmt:
		var b strings.Builder
		b.WriteString("(block")
		for _, inner := range st.Statements {
			b.WriteByte(' ')
			b.WriteString(printStmt(inner))
		}
		b.WriteByte(')')
		return b.String()
	case *IfStmt:
		return "(if " + PrintAST(st.Condition) + " " + printStmt(st.ThenBranch) + ")"
	case *WhileStmt:
		return "(while " + PrintAST(st.Condition) + " " + printStmt(st.Body) + ")"
	case *FunctionStmt:
		return "(fun " + st.Name.Lexeme + ")"
	case *ReturnStmt:
		if st.Value == nil {
			return "(return)"
		}
		return parenthesize("return", st.Value)
	case *ClassStmt:
		return "(class " + st.Name.Lexeme + ")"
	default:
		return fmt.Sprintf("<unknown stmt %T>", st)
	}
}
