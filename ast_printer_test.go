package lox

import "testing"

func Test_PrintAST_BinaryExpression(t *testing.T) {
	expr := &Binary{
		Left:     &Literal{Value: float64(1)},
		Operator: Token{Type: PLUS, Lexeme: "+"},
		Right: &Binary{
			Left:     &Literal{Value: float64(2)},
			Operator: Token{Type: STAR, Lexeme: "*"},
			Right:    &Literal{Value: float64(3)},
		},
	}
	want := "(+ 1 (* 2 3))"
	if got := PrintAST(expr); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func Test_PrintAST_Grouping(t *testing.T) {
	expr := &Grouping{Expression: &Literal{Value: float64(5)}}
	if got := PrintAST(expr); got != "(group 5)" {
		t.Fatalf("want \"(group 5)\", got %q", got)
	}
}

func Test_PrintAST_NilLiteral(t *testing.T) {
	if got := PrintAST(&Literal{Value: nil}); got != "nil" {
		t.Fatalf("want \"nil\", got %q", got)
	}
}

func Test_PrintAST_Unary(t *testing.T) {
	expr := &Unary{Operator: Token{Lexeme: "-"}, Right: &Literal{Value: float64(4)}}
	if got := PrintAST(expr); got != "(- 4)" {
		t.Fatalf("want \"(- 4)\", got %q", got)
	}
}

func Test_PrintProgram_ExpressionStatement(t *testing.T) {
	stmts := mustParse(t, "1 + 2;")
	if got := PrintProgram(stmts); got != "(+ 1 2)" {
		t.Fatalf("want \"(+ 1 2)\", got %q", got)
	}
}

func Test_PrintProgram_MultipleStatements_OnePerLine(t *testing.T) {
	stmts := mustParse(t, "print 1; print 2;")
	want := "(print 1)\n(print 2)"
	if got := PrintProgram(stmts); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
