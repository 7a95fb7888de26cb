package dsl

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Document is the root AST node of a folio document file. Every page
// section becomes one part of a merged document.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'doc' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one top-level block: meta, resources or page.
type Section struct {
	Meta      *Directive   `parser:"  'meta' @@"`
	Resources *Directive   `parser:"| 'resources' @@"`
	Page      *PageSection `parser:"| @@"`
}

// Directive is a keyword followed by a block.
type Directive struct {
	Block *Block `parser:"@@"`
}

// Kind returns the section keyword.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Resources != nil:
		return "resources"
	case s.Page != nil:
		return "page"
	}
	return "unknown"
}

// PageSection describes one part of the document: its page geometry and
// the header, footer and content flowing through its pages.
type PageSection struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Spec  PageSpec       `parser:"'page' @@"`
	Block *Block         `parser:"@@"`
}

// PageSpec holds the tokens after the page keyword (size, orientation,
// margin).
type PageSpec struct {
	Size   string    `parser:"@Ident"`
	Params []*Lexeme `parser:"@@*"`
}

// Block is a braced list of statements separated by newlines or ';'.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is exactly one of an assignment, a command or a bare string.
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment is `key: value`.
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Command is `name args... [{ block }]`.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// TextLiteral is a bare string statement.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value is the right-hand side of an assignment.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Object *InlineObject  `parser:"| @@"`
	Expr   *Expression    `parser:"| @@"`
}

// ArrayValue is `[ a, b ]`; newlines also separate items.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// InlineObject is `{ key: value; ... }` on the right of an assignment.
type InlineObject struct {
	Entries []*Assignment `parser:"'{' Newline* ( @@ Newline* ( (';' | Newline+) Newline* @@ Newline* )* )? Newline* '}'"`
}

// Pages returns the page sections in declaration order.
func (d *Document) Pages() []*PageSection {
	var out []*PageSection
	for _, s := range d.Sections {
		if s.Page != nil {
			out = append(out, s.Page)
		}
	}
	return out
}

// Blocks returns the blocks of every section of the given kind.
func (d *Document) Blocks(kind string) []*Block {
	var out []*Block
	for _, s := range d.Sections {
		if s.Kind() != kind {
			continue
		}
		switch {
		case s.Meta != nil && s.Meta.Block != nil:
			out = append(out, s.Meta.Block)
		case s.Resources != nil && s.Resources.Block != nil:
			out = append(out, s.Resources.Block)
		case s.Page != nil && s.Page.Block != nil:
			out = append(out, s.Page.Block)
		}
	}
	return out
}

// Lookup returns the text of the last assignment to key in the block.
func (b *Block) Lookup(key string) string {
	if b == nil {
		return ""
	}
	var out string
	for _, stmt := range b.Statements {
		if stmt.Assignment != nil && stmt.Assignment.Key == key {
			out = stmt.Assignment.Value.Text()
		}
	}
	return out
}

// Text flattens a scalar value. Arrays and objects have no text form.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Expr != nil:
		return v.Expr.String()
	}
	return ""
}

// List returns the non-empty items of an array value, or the value itself
// as a single item.
func (v *Value) List() []string {
	if v == nil {
		return nil
	}
	if v.Array == nil {
		if s := v.Text(); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(v.Array.Values))
	for _, item := range v.Array.Values {
		if s := item.Text(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String joins the expression tokens without separators.
func (e *Expression) String() string {
	var sb strings.Builder
	for _, p := range e.Parts {
		sb.WriteString(p.Value)
	}
	return sb.String()
}
