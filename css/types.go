// Package css implements the mutable stylesheet tree the compressor works
// on: node types, a parser building the tree from source text on top of
// github.com/tdewolff/parse and a minified serializer. The tree is owned by
// the caller; all transformations mutate it in place.
package css

import "strings"

// Node is implemented by every tree node kind.
type Node interface {
	node()
}

// StyleSheet is the tree root: an ordered sequence of top-level items
// (*Rule, *AtRule, *Comment, *Raw).
type StyleSheet struct {
	Children *List
}

func NewStyleSheet() *StyleSheet {
	return &StyleSheet{Children: NewList()}
}

// Rule is a selector list with a declaration block.
type Rule struct {
	Selectors SelectorList
	Block     *Block
}

// AtRule is an at-rule such as @media or @import. Block is nil for
// at-rules terminated by a semicolon.
type AtRule struct {
	Name    string // with leading '@', lower case
	Prelude string // normalized prelude text, may be empty
	Block   *Block
}

// Block is an ordered sequence of *Declaration nodes and, for at-rules,
// nested *Rule and *AtRule nodes.
type Block struct {
	Children *List
}

func NewBlock() *Block {
	return &Block{Children: NewList()}
}

// Declarations calls fn for every declaration in the block in order.
// fn may remove the visited declaration.
func (b *Block) Declarations(fn func(it *Item, d *Declaration)) {
	b.Children.Each(func(it *Item) {
		if d, ok := it.Value.(*Declaration); ok {
			fn(it, d)
		}
	})
}

// Declaration is a single property declaration.
type Declaration struct {
	Property  string // lower case
	Value     Value
	Important bool
}

// Comment is an exclamation comment; Text is the comment body without the
// enclosing delimiters (leading '!' included). Ordinary comments are
// dropped at parse time.
type Comment struct {
	Text string
}

// Raw is an unparsed passthrough fragment, kept verbatim.
type Raw struct {
	Data string
}

func (*StyleSheet) node()  {}
func (*Rule) node()        {}
func (*AtRule) node()      {}
func (*Block) node()       {}
func (*Declaration) node() {}
func (*Comment) node()     {}
func (*Raw) node()         {}

// SelectorList is the prelude of a rule. Order is preserved verbatim in
// output; for matching purposes it is a set.
type SelectorList struct {
	Selectors []Selector
}

// Selector is a single complex selector kept as normalized opaque text.
// The compressor compares selectors textually and never inspects their
// internal structure.
type Selector struct {
	Raw string
}

// Contains reports whether the list has a selector textually equal to s.
func (sl SelectorList) Contains(s Selector) bool {
	for _, have := range sl.Selectors {
		if have.Raw == s.Raw {
			return true
		}
	}
	return false
}

// Intersects reports whether two selector lists share at least one
// textually identical selector.
func (sl SelectorList) Intersects(other SelectorList) bool {
	for _, s := range other.Selectors {
		if sl.Contains(s) {
			return true
		}
	}
	return false
}

// Merge appends selectors from other that are not yet present, keeping
// first-appearance order.
func (sl *SelectorList) Merge(other SelectorList) {
	for _, s := range other.Selectors {
		if !sl.Contains(s) {
			sl.Selectors = append(sl.Selectors, s)
		}
	}
}

// TokenType discriminates value tokens. The set deliberately mirrors the
// CSS syntax token kinds the compressor needs to distinguish; everything
// else is kept as TokenRaw and passed through untouched.
type TokenType int

const (
	TokenIdent TokenType = iota
	TokenFunction  // function name with trailing '('
	TokenNumber
	TokenDimension // number with unit
	TokenPercentage
	TokenHash // with leading '#'
	TokenString
	TokenURL // complete url(...) form
	TokenComma
	TokenColon
	TokenDelim
	TokenLeftParen
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket
	TokenRaw
)

// Token is a single value component. Whitespace is never stored; the
// serializer re-inserts the separators the grammar requires.
type Token struct {
	Type TokenType
	Data string
}

// Value is a declaration value as a whitespace-free token sequence.
type Value struct {
	Tokens []Token
}

// IsKeyword reports whether the value is the single identifier kw
// (ASCII case-insensitive).
func (v Value) IsKeyword(kw string) bool {
	return len(v.Tokens) == 1 && v.Tokens[0].Type == TokenIdent &&
		strings.EqualFold(v.Tokens[0].Data, kw)
}
