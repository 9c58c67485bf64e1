package vm

import (
	"fmt"
	"io"

	"github.com/funvibe/funlet/internal/lexer"
	"github.com/funvibe/funlet/internal/token"
)

const maxLocals = 256

// Local represents a local variable during compilation. Its index in the
// compiler's local list is its stack slot at run time.
type Local struct {
	Name  string
	Depth int  // Scope depth where this local was declared
	Ready bool // False until the initializer has run; guards self-reference
}

// Compiler translates a token stream into bytecode in a single pass; no
// syntax tree is ever built. Expressions are parsed by precedence climbing
// over a fixed rule table and emit instructions as they reduce; statements
// drive the statement-level grammar directly.
type Compiler struct {
	lex      *lexer.Lexer
	current  token.Token
	previous token.Token

	chunk *Chunk

	locals     []Local
	scopeDepth int // 0 = global

	hadError  bool // Permanent: any diagnostic fails the compilation
	panicMode bool // Transient: suppresses cascades until a statement boundary
	errOut    io.Writer
}

// Compile scans and compiles source into a fresh chunk. Diagnostics are
// written to errOut as they are found; when any were reported the chunk is
// withheld and ErrCompile returned.
func Compile(source string, errOut io.Writer) (*Chunk, error) {
	c := &Compiler{
		lex:    lexer.New(source),
		chunk:  NewChunk(),
		errOut: errOut,
	}

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	c.emit(OP_RETURN)

	if c.hadError {
		return nil, ErrCompile
	}
	return c.chunk, nil
}

// advance moves the two-token window forward. ERROR tokens produced by the
// scanner are reported here and skipped, so the rest of the compiler only
// ever sees well-formed tokens.
func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lex.NextToken()
		if c.current.Type != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

// consume advances past the expected token or reports message.
func (c *Compiler) consume(kind token.TokenType, message string) {
	if c.current.Type == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *Compiler) check(kind token.TokenType) bool {
	return c.current.Type == kind
}

func (c *Compiler) match(kind token.TokenType) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

// errorAt reports one diagnostic and enters panic mode; while panicking,
// further reports are swallowed until synchronize clears the flag.
func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	fmt.Fprintf(c.errOut, "[line %d] Error", tok.Line)
	switch tok.Type {
	case token.EOF:
		fmt.Fprint(c.errOut, " at end")
	case token.ERROR:
		// The lexeme is the message itself; no location fragment.
	default:
		fmt.Fprintf(c.errOut, " at '%s'", tok.Lexeme)
	}
	fmt.Fprintf(c.errOut, ": %s\n", message)
}

// synchronize skips to the next statement boundary: just past a semicolon,
// or right before a keyword that can start a statement. One syntax error
// then costs at most one statement, and independent errors later in the
// source still surface in the same pass.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Type != token.EOF {
		if c.previous.Type == token.SEMICOLON {
			return
		}
		switch c.current.Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}
