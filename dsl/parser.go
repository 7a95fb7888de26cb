// Package dsl parses folio document files into an AST.
package dsl

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var documentParser = participle.MustBuild[Document](
	participle.Lexer(folioLexer),
	participle.Elide(elided...),
)

// SyntaxError is a parse failure at a source position.
type SyntaxError struct {
	Pos lexer.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Parse parses DSL content from an io.Reader. filename only labels
// positions in errors.
func Parse(filename string, r io.Reader) (*Document, error) {
	doc, err := documentParser.Parse(filename, r)
	if err != nil {
		return nil, syntaxError(err)
	}
	return doc, nil
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*Document, error) {
	doc, err := documentParser.ParseString("", input)
	if err != nil {
		return nil, syntaxError(err)
	}
	return doc, nil
}

func syntaxError(err error) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se
	}
	var pe participle.Error
	if errors.As(err, &pe) {
		return &SyntaxError{Pos: pe.Position(), Msg: pe.Message()}
	}
	return err
}

// Expression is an unparsed run of tokens, evaluated by the builder.
type Expression struct {
	Parts []*Lexeme
}

// Parse implements participle.Parseable. The run ends at a line break,
// a brace, ';' or ',' outside brackets, or at the ']' closing an
// enclosing array.
func (e *Expression) Parse(lex *lexer.PeekingLexer) error {
	var parts []*Lexeme
	depth := 0
	for {
		tok := lex.Peek()
		if tok.EOF() || endsExpression(tok, depth) {
			break
		}
		next, err := take(lex)
		if err != nil {
			return err
		}
		switch next.Raw {
		case "(", "[":
			depth++
		case ")", "]":
			depth = max(depth-1, 0)
		}
		parts = append(parts, &next)
	}
	if len(parts) == 0 {
		return participle.NextMatch
	}
	e.Parts = parts
	return nil
}

func endsExpression(tok *lexer.Token, depth int) bool {
	switch tok.Type {
	case tNewline, tLBrace, tRBrace:
		return depth == 0
	case tSymbol:
		switch tok.Value {
		case ";", ",", "]":
			return depth == 0
		}
	}
	return false
}

// StringLiteral is a quoted string, unquoted on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return errors.New("dsl: 字符串缺少内容")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}
