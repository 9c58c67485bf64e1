package lexer

import (
	"github.com/funvibe/funlet/internal/token"
)

type Lexer struct {
	input   string
	start   int // start of the lexeme being scanned
	current int // current reading position in input
	line    int // current line number
}

func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken scans and returns the next token. The token stream is produced
// lazily, one token per call; after the input is exhausted every further
// call returns an EOF token. Malformed input never stops the scan: it is
// returned as an ERROR token whose Lexeme holds the diagnostic message.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	l.start = l.current

	if l.isAtEnd() {
		return l.makeToken(token.EOF)
	}

	c := l.advance()

	if isLetter(c) {
		return l.readIdentifier()
	}
	if isDigit(c) {
		return l.readNumber()
	}

	switch c {
	case '(':
		return l.makeToken(token.LPAREN)
	case ')':
		return l.makeToken(token.RPAREN)
	case '{':
		return l.makeToken(token.LBRACE)
	case '}':
		return l.makeToken(token.RBRACE)
	case ',':
		return l.makeToken(token.COMMA)
	case '.':
		return l.makeToken(token.DOT)
	case '-':
		return l.makeToken(token.MINUS)
	case '+':
		return l.makeToken(token.PLUS)
	case ';':
		return l.makeToken(token.SEMICOLON)
	case '/':
		return l.makeToken(token.SLASH)
	case '*':
		return l.makeToken(token.ASTERISK)
	case '!':
		if l.match('=') {
			return l.makeToken(token.NOT_EQ)
		}
		return l.makeToken(token.BANG)
	case '=':
		if l.match('=') {
			return l.makeToken(token.EQ)
		}
		return l.makeToken(token.ASSIGN)
	case '<':
		if l.match('=') {
			return l.makeToken(token.LTE)
		}
		return l.makeToken(token.LT)
	case '>':
		if l.match('=') {
			return l.makeToken(token.GTE)
		}
		return l.makeToken(token.GT)
	case '"':
		return l.readString()
	}

	return l.errorToken("Unexpected character.")
}

// skipWhitespace consumes spaces, tabs, carriage returns, newlines and
// // line comments. Comments and whitespace are not tokens.
func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.line++
			l.advance()
		case '/':
			if l.peekNext() == '/' {
				for l.peek() != '\n' && !l.isAtEnd() {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() token.Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	return l.makeToken(token.LookupIdent(l.input[l.start:l.current]))
}

func (l *Lexer) readNumber() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	// A fractional part needs a digit after the dot; a trailing dot is
	// left for the next token.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.makeToken(token.NUMBER)
}

func (l *Lexer) readString() token.Token {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.isAtEnd() {
		return l.errorToken("Unterminated string.")
	}
	l.advance() // closing quote
	return l.makeToken(token.STRING)
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.input)
}

func (l *Lexer) advance() byte {
	c := l.input[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.input[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.input) {
		return 0
	}
	return l.input[l.current+1]
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.input[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) makeToken(kind token.TokenType) token.Token {
	return token.Token{
		Type:   kind,
		Lexeme: l.input[l.start:l.current],
		Line:   l.line,
	}
}

func (l *Lexer) errorToken(message string) token.Token {
	return token.Token{
		Type:   token.ERROR,
		Lexeme: message,
		Line:   l.line,
	}
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
