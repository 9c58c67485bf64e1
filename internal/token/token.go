package token

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	// Punctuation.
	LPAREN TokenType = iota // (
	RPAREN                  // )
	LBRACE                  // {
	RBRACE                  // }
	COMMA                   // ,
	DOT                     // .
	MINUS                   // -
	PLUS                    // +
	SEMICOLON               // ;
	SLASH                   // /
	ASTERISK                // *

	// One- and two-character operators.
	BANG   // !
	ASSIGN // =
	EQ     // ==
	NOT_EQ // !=
	LT     // <
	GT     // >
	LTE    // <=
	GTE    // >=

	// Literals.
	IDENT
	STRING
	NUMBER

	// Keywords.
	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE

	// ERROR marks malformed input; the token's Lexeme carries the
	// diagnostic message instead of source text.
	ERROR
	// EOF marks exhausted input.
	EOF
)

// Names maps token types to display names for diagnostics and tests.
var Names = map[TokenType]string{
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	COMMA:     "COMMA",
	DOT:       "DOT",
	MINUS:     "MINUS",
	PLUS:      "PLUS",
	SEMICOLON: "SEMICOLON",
	SLASH:     "SLASH",
	ASTERISK:  "ASTERISK",
	BANG:      "BANG",
	ASSIGN:    "ASSIGN",
	EQ:        "EQ",
	NOT_EQ:    "NOT_EQ",
	LT:        "LT",
	GT:        "GT",
	LTE:       "LTE",
	GTE:       "GTE",
	IDENT:     "IDENT",
	STRING:    "STRING",
	NUMBER:    "NUMBER",
	AND:       "AND",
	CLASS:     "CLASS",
	ELSE:      "ELSE",
	FALSE:     "FALSE",
	FOR:       "FOR",
	FUN:       "FUN",
	IF:        "IF",
	NIL:       "NIL",
	OR:        "OR",
	PRINT:     "PRINT",
	RETURN:    "RETURN",
	SUPER:     "SUPER",
	THIS:      "THIS",
	TRUE:      "TRUE",
	VAR:       "VAR",
	WHILE:     "WHILE",
	ERROR:     "ERROR",
	EOF:       "EOF",
}

func (t TokenType) String() string {
	if name, ok := Names[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is one lexical unit. Lexeme is the exact source substring (for
// STRING tokens it includes both quotes); Line is 1-based.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

// LookupIdent reports the keyword type for ident, or IDENT when it is not
// a reserved word. Keywords are matched by branching on the leading one or
// two characters and comparing the remaining suffix directly, so no hash
// of the identifier is ever computed.
func LookupIdent(ident string) TokenType {
	switch ident[0] {
	case 'a':
		return checkKeyword(ident, 1, "nd", AND)
	case 'c':
		return checkKeyword(ident, 1, "lass", CLASS)
	case 'e':
		return checkKeyword(ident, 1, "lse", ELSE)
	case 'f':
		if len(ident) > 1 {
			switch ident[1] {
			case 'a':
				return checkKeyword(ident, 2, "lse", FALSE)
			case 'o':
				return checkKeyword(ident, 2, "r", FOR)
			case 'u':
				return checkKeyword(ident, 2, "n", FUN)
			}
		}
	case 'i':
		return checkKeyword(ident, 1, "f", IF)
	case 'n':
		return checkKeyword(ident, 1, "il", NIL)
	case 'o':
		return checkKeyword(ident, 1, "r", OR)
	case 'p':
		return checkKeyword(ident, 1, "rint", PRINT)
	case 'r':
		return checkKeyword(ident, 1, "eturn", RETURN)
	case 's':
		return checkKeyword(ident, 1, "uper", SUPER)
	case 't':
		if len(ident) > 1 {
			switch ident[1] {
			case 'h':
				return checkKeyword(ident, 2, "is", THIS)
			case 'r':
				return checkKeyword(ident, 2, "ue", TRUE)
			}
		}
	case 'v':
		return checkKeyword(ident, 1, "ar", VAR)
	case 'w':
		return checkKeyword(ident, 1, "hile", WHILE)
	}
	return IDENT
}

func checkKeyword(ident string, offset int, rest string, kind TokenType) TokenType {
	if ident[offset:] == rest {
		return kind
	}
	return IDENT
}
