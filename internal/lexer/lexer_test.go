package lexer

import (
	"testing"

	"github.com/lis05/cotton-go/internal/source"
)

func TestNextTokenBasic(t *testing.T) {
	input := `function fact(n){ if n<=1 { return 1; } return n*fact(n-1); }`

	tests := []struct {
		typ TokenType
		lit string
	}{
		{FUNCTION, "function"}, {IDENT, "fact"}, {LPAREN, "("}, {IDENT, "n"}, {RPAREN, ")"},
		{LBRACE, "{"}, {IF, "if"}, {IDENT, "n"}, {LEQ, "<="}, {INT, "1"}, {LBRACE, "{"},
		{RETURN, "return"}, {INT, "1"}, {SEMICOLON, ";"}, {RBRACE, "}"},
		{RETURN, "return"}, {IDENT, "n"}, {STAR, "*"}, {IDENT, "fact"}, {LPAREN, "("},
		{IDENT, "n"}, {MINUS, "-"}, {INT, "1"}, {RPAREN, ")"}, {SEMICOLON, ";"},
		{RBRACE, "}"}, {EOF, ""},
	}

	l := New(input, 0)
	for i, want := range tests {
		got := l.NextToken()
		if got.Type != want.typ || got.Literal != want.lit {
			t.Fatalf("token %d: got %v(%q), want %v(%q)", i, got.Type, got.Literal, want.typ, want.lit)
		}
	}
}

func TestNextTokenLiterals(t *testing.T) {
	l := New(`3.14 "ab\ncd" 'x' true false nothing`, 0)
	want := []TokenType{REAL, STRING, CHAR, TRUE, FALSE, NOTHING, EOF}
	for i, w := range want {
		got := l.NextToken()
		if got.Type != w {
			t.Fatalf("token %d: got %v, want %v", i, got.Type, w)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`, 0)
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lex error, got %d", len(l.Errors()))
	}
	if l.Errors()[0].Category != source.CategoryLex {
		t.Fatalf("expected lex category, got %v", l.Errors()[0].Category)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("a\nbc", 0)
	tok1 := l.NextToken()
	if tok1.Area.First.Line != 1 || tok1.Area.First.Column != 1 {
		t.Fatalf("unexpected position for first token: %+v", tok1.Area.First)
	}
	tok2 := l.NextToken()
	if tok2.Area.First.Line != 2 || tok2.Area.First.Column != 1 {
		t.Fatalf("unexpected position for second token: %+v", tok2.Area.First)
	}
}
