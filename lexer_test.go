package lox

import (
	"reflect"
	"testing"
)

func scan(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	toks, errs := l.ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("ScanTokens errors: %v", errs)
	}
	return toks
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := scan(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_Punctuation(t *testing.T) {
	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE,
		COMMA, DOT, MINUS, PLUS, SEMICOLON, SLASH, STAR,
	}
	wantTypes(t, "(){},.-+;/*", want)
}

func Test_Lexer_TwoCharOperators(t *testing.T) {
	want := []TokenType{BANG_EQUAL, EQUAL_EQUAL, LESS_EQUAL, GREATER_EQUAL}
	wantTypes(t, "!= == <= >=", want)
}

func Test_Lexer_SingleCharVsTwoChar(t *testing.T) {
	want := []TokenType{BANG, EQUAL, LESS, GREATER}
	wantTypes(t, "! = < >", want)
}

func Test_Lexer_LineComment_Ignored(t *testing.T) {
	want := []TokenType{VAR, IDENTIFIER, EQUAL, NUMBER, SEMICOLON}
	wantTypes(t, "var x = 1; // trailing comment\n", want)
}

func Test_Lexer_String_Literal(t *testing.T) {
	toks := scan(t, `"hello world"`)
	if toks[0].Type != STRING {
		t.Fatalf("want STRING, got %v", toks[0].Type)
	}
	if toks[0].Literal.(string) != "hello world" {
		t.Fatalf("want literal %q, got %q", "hello world", toks[0].Literal)
	}
}

func Test_Lexer_UnterminatedString_ReportsError(t *testing.T) {
	l := NewLexer(`"unterminated`)
	_, errs := l.ScanTokens()
	if len(errs) == 0 {
		t.Fatalf("expected an unterminated-string error")
	}
}

func Test_Lexer_Number_IntegerAndFloat(t *testing.T) {
	toks := scan(t, "123 45.67")
	if toks[0].Literal.(float64) != 123 {
		t.Fatalf("want 123, got %v", toks[0].Literal)
	}
	if toks[1].Literal.(float64) != 45.67 {
		t.Fatalf("want 45.67, got %v", toks[1].Literal)
	}
}

func Test_Lexer_Keywords_And_Identifiers(t *testing.T) {
	want := []TokenType{CLASS, IDENTIFIER, LEFT_BRACE, FUN, IDENTIFIER}
	wantTypes(t, "class Foo { fun bar", want)
}

func Test_Lexer_Identifier_Line_Tracking(t *testing.T) {
	toks := scan(t, "var a = 1;\nvar b = 2;")
	if toks[0].Line != 1 {
		t.Fatalf("want line 1 for first token, got %d", toks[0].Line)
	}
	var sawLine2 bool
	for _, tk := range toks {
		if tk.Lexeme == "b" && tk.Line == 2 {
			sawLine2 = true
		}
	}
	if !sawLine2 {
		t.Fatalf("expected 'b' to be scanned on line 2")
	}
}

func Test_Lexer_MultipleErrors_AllReported(t *testing.T) {
	l := NewLexer("@ # $")
	_, errs := l.ScanTokens()
	if len(errs) != 3 {
		t.Fatalf("want 3 errors for 3 unexpected characters, got %d: %v", len(errs), errs)
	}
}

func Test_Lexer_EOF_Terminates_Stream(t *testing.T) {
	toks := scan(t, "var a = 1;")
	if toks[len(toks)-1].Type != EOF {
		t.Fatalf("expected final token to be EOF, got %v", toks[len(toks)-1].Type)
	}
}
