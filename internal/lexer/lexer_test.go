package lexer

import (
	"testing"

	"github.com/funvibe/funlet/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var five = 5;
var half = 0.5;
print five + half * (2 - 1) / 3;
if (five >= 5) { print "big"; }
!true == false; five != nil;
a < b; a <= b; a > b;
foo.bar, baz;`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
		expectedLine   int
	}{
		{token.VAR, "var", 1},
		{token.IDENT, "five", 1},
		{token.ASSIGN, "=", 1},
		{token.NUMBER, "5", 1},
		{token.SEMICOLON, ";", 1},
		{token.VAR, "var", 2},
		{token.IDENT, "half", 2},
		{token.ASSIGN, "=", 2},
		{token.NUMBER, "0.5", 2},
		{token.SEMICOLON, ";", 2},
		{token.PRINT, "print", 3},
		{token.IDENT, "five", 3},
		{token.PLUS, "+", 3},
		{token.IDENT, "half", 3},
		{token.ASTERISK, "*", 3},
		{token.LPAREN, "(", 3},
		{token.NUMBER, "2", 3},
		{token.MINUS, "-", 3},
		{token.NUMBER, "1", 3},
		{token.RPAREN, ")", 3},
		{token.SLASH, "/", 3},
		{token.NUMBER, "3", 3},
		{token.SEMICOLON, ";", 3},
		{token.IF, "if", 4},
		{token.LPAREN, "(", 4},
		{token.IDENT, "five", 4},
		{token.GTE, ">=", 4},
		{token.NUMBER, "5", 4},
		{token.RPAREN, ")", 4},
		{token.LBRACE, "{", 4},
		{token.PRINT, "print", 4},
		{token.STRING, `"big"`, 4},
		{token.SEMICOLON, ";", 4},
		{token.RBRACE, "}", 4},
		{token.BANG, "!", 5},
		{token.TRUE, "true", 5},
		{token.EQ, "==", 5},
		{token.FALSE, "false", 5},
		{token.SEMICOLON, ";", 5},
		{token.IDENT, "five", 5},
		{token.NOT_EQ, "!=", 5},
		{token.NIL, "nil", 5},
		{token.SEMICOLON, ";", 5},
		{token.IDENT, "a", 6},
		{token.LT, "<", 6},
		{token.IDENT, "b", 6},
		{token.SEMICOLON, ";", 6},
		{token.IDENT, "a", 6},
		{token.LTE, "<=", 6},
		{token.IDENT, "b", 6},
		{token.SEMICOLON, ";", 6},
		{token.IDENT, "a", 6},
		{token.GT, ">", 6},
		{token.IDENT, "b", 6},
		{token.SEMICOLON, ";", 6},
		{token.IDENT, "foo", 7},
		{token.DOT, ".", 7},
		{token.IDENT, "bar", 7},
		{token.COMMA, ",", 7},
		{token.IDENT, "baz", 7},
		{token.SEMICOLON, ";", 7},
		{token.EOF, "", 7},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong type. expected=%v, got=%v (lexeme %q)",
				i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - wrong lexeme. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - wrong line. expected=%d, got=%d (lexeme %q)",
				i, tt.expectedLine, tok.Line, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "and class else false for fun if nil or print return super this true var while"
	expected := []token.TokenType{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR,
		token.FUN, token.IF, token.NIL, token.OR, token.PRINT,
		token.RETURN, token.SUPER, token.THIS, token.TRUE, token.VAR,
		token.WHILE,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("keyword[%d]: expected %v, got %v (%q)", i, want, tok.Type, tok.Lexeme)
		}
	}
	if tok := l.NextToken(); tok.Type != token.EOF {
		t.Errorf("expected EOF after keywords, got %v", tok.Type)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		lexemes []string
	}{
		{"123", []string{"123"}},
		{"123.456", []string{"123.456"}},
		{"0.5", []string{"0.5"}},
		// A trailing dot is not part of the number.
		{"123.", []string{"123", "."}},
		{"1.2.3", []string{"1.2", ".", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			for i, want := range tt.lexemes {
				tok := l.NextToken()
				if tok.Lexeme != want {
					t.Errorf("token[%d]: expected lexeme %q, got %q (%v)", i, want, tok.Lexeme, tok.Type)
				}
			}
			if tok := l.NextToken(); tok.Type != token.EOF {
				t.Errorf("expected EOF, got %v (%q)", tok.Type, tok.Lexeme)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	t.Run("lexeme keeps quotes", func(t *testing.T) {
		l := New(`"hello world"`)
		tok := l.NextToken()
		if tok.Type != token.STRING {
			t.Fatalf("expected STRING, got %v", tok.Type)
		}
		if tok.Lexeme != `"hello world"` {
			t.Errorf("expected lexeme with quotes, got %q", tok.Lexeme)
		}
	})

	t.Run("multi-line string counts lines", func(t *testing.T) {
		l := New("\"one\ntwo\"\nx")
		tok := l.NextToken()
		if tok.Type != token.STRING {
			t.Fatalf("expected STRING, got %v", tok.Type)
		}
		if tok.Line != 2 {
			t.Errorf("string token line: expected 2, got %d", tok.Line)
		}
		ident := l.NextToken()
		if ident.Type != token.IDENT || ident.Line != 3 {
			t.Errorf("expected IDENT on line 3, got %v on line %d", ident.Type, ident.Line)
		}
	})

	t.Run("unterminated string", func(t *testing.T) {
		l := New(`"never closed`)
		tok := l.NextToken()
		if tok.Type != token.ERROR {
			t.Fatalf("expected ERROR, got %v", tok.Type)
		}
		if tok.Lexeme != "Unterminated string." {
			t.Errorf("expected diagnostic lexeme, got %q", tok.Lexeme)
		}
	})
}

func TestComments(t *testing.T) {
	input := "// leading comment\nprint 1; // trailing\n// the end"
	l := New(input)

	expected := []struct {
		kind token.TokenType
		line int
	}{
		{token.PRINT, 2},
		{token.NUMBER, 2},
		{token.SEMICOLON, 2},
		{token.EOF, 3},
	}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.kind || tok.Line != want.line {
			t.Errorf("token[%d]: expected %v line %d, got %v line %d",
				i, want.kind, want.line, tok.Type, tok.Line)
		}
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != token.ERROR {
		t.Fatalf("expected ERROR, got %v", tok.Type)
	}
	if tok.Lexeme != "Unexpected character." {
		t.Errorf("expected diagnostic lexeme, got %q", tok.Lexeme)
	}
	// The scanner recovers and keeps going.
	if tok := l.NextToken(); tok.Type != token.EOF {
		t.Errorf("expected EOF after error, got %v", tok.Type)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != token.EOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Type)
		}
	}
}
