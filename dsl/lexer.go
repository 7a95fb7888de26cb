package dsl

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// 词法规则。Color 必须排在 HashComment 之前，Path 排在 Ident 之前。
var folioLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n+`},
	{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
	{Name: "HashComment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in|%|x)?`},
	{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
	{Name: "Path", Pattern: `[A-Za-z_][A-Za-z0-9_-]*(?:\.[A-Za-z_][A-Za-z0-9_-]*|\[\d+\])+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:]`},
	{Name: "LBrace", Pattern: `{`},
	{Name: "RBrace", Pattern: `}`},
})

var elided = []string{"Whitespace", "LineComment", "BlockComment", "HashComment"}

// kinds maps token types back to rule names; the ones the grammar
// atoms inspect are resolved once.
var (
	kinds = func() map[lexer.TokenType]string {
		out := map[lexer.TokenType]string{}
		for name, tt := range folioLexer.Symbols() {
			out[tt] = name
		}
		return out
	}()

	tNewline = tokenType("Newline")
	tLBrace  = tokenType("LBrace")
	tRBrace  = tokenType("RBrace")
	tSymbol  = tokenType("Symbol")
	tString  = tokenType("String")
)

func tokenType(name string) lexer.TokenType {
	tt, ok := folioLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("dsl: 未定义的词法规则 %s", name))
	}
	return tt
}

// Lexeme is a single token as seen by command arguments and expressions.
// String tokens carry their unquoted text in Value.
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// IsNumber reports whether the lexeme is a number, with or without unit.
func (l *Lexeme) IsNumber() bool { return l.Type == "Number" }

// IsWord reports whether the lexeme is a bare identifier or dotted path.
func (l *Lexeme) IsWord() bool { return l.Type == "Ident" || l.Type == "Path" }

// IsString reports whether the lexeme was a quoted string.
func (l *Lexeme) IsString() bool { return l.Type == "String" }

// Parse implements participle.Parseable. An argument list ends at a line
// break, a brace or a semicolon.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok.EOF() || endsArgs(tok) {
		return participle.NextMatch
	}
	next, err := take(lex)
	if err != nil {
		return err
	}
	*l = next
	return nil
}

func endsArgs(tok *lexer.Token) bool {
	switch tok.Type {
	case tNewline, tLBrace, tRBrace:
		return true
	case tSymbol:
		return tok.Value == ";"
	}
	return false
}

// take consumes one token.
func take(lex *lexer.PeekingLexer) (Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return Lexeme{}, participle.NextMatch
	}
	out := Lexeme{Type: kinds[tok.Type], Value: tok.Value, Raw: tok.Value, Pos: tok.Pos}
	if out.Type == "" {
		out.Type = fmt.Sprintf("#%d", tok.Type)
	}
	if tok.Type == tString {
		s, err := strconv.Unquote(tok.Value)
		if err != nil {
			return Lexeme{}, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("字符串 %s 无法解析: %v", tok.Value, err)}
		}
		out.Value = s
	}
	return out, nil
}
