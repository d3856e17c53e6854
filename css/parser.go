package css

import (
	"bytes"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	cssparse "github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser builds stylesheet trees from CSS text. Parsing is best-effort:
// constructs the tokenizer cannot make sense of are kept as raw
// passthrough nodes, never reported as errors.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a StyleSheet. The optional source parameter
// identifies what is being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *StyleSheet {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing stylesheet", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	sheet := NewStyleSheet()
	input := parse.NewInput(bytes.NewReader(data))
	p.run(cssparse.NewParser(input, false), sheet.Children)
	return sheet
}

// ParseBlock parses a bare declaration list (the contents of a block,
// without selectors or braces) into a Block.
func (p *Parser) ParseBlock(data []byte, source ...string) *Block {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing declaration list", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	block := NewBlock()
	input := parse.NewInput(bytes.NewReader(data))
	p.run(cssparse.NewParser(input, true), block.Children)
	return block
}

// run drives the grammar iterator, appending nodes to the list stack.
// Nested at-rule and ruleset blocks push their child list; the matching
// end grammar pops it.
func (p *Parser) run(parser *cssparse.Parser, top *List) {
	stack := []*List{top}
	current := func() *List { return stack[len(stack)-1] }

	var pending []Selector

	for {
		gt, _, data := parser.Next()

		switch gt {
		case cssparse.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return

		case cssparse.QualifiedRuleGrammar:
			// one selector group of a comma-separated prelude
			pending = append(pending, splitSelectors(data, parser.Values())...)

		case cssparse.BeginRulesetGrammar:
			pending = append(pending, splitSelectors(data, parser.Values())...)
			rule := &Rule{Selectors: SelectorList{Selectors: pending}, Block: NewBlock()}
			pending = nil
			current().PushBack(rule)
			stack = append(stack, rule.Block.Children)

		case cssparse.EndRulesetGrammar, cssparse.EndAtRuleGrammar:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case cssparse.BeginAtRuleGrammar:
			at := &AtRule{
				Name:    strings.ToLower(string(data)),
				Prelude: preludeText(parser.Values()),
				Block:   NewBlock(),
			}
			current().PushBack(at)
			stack = append(stack, at.Block.Children)

		case cssparse.AtRuleGrammar:
			current().PushBack(&AtRule{
				Name:    strings.ToLower(string(data)),
				Prelude: preludeText(parser.Values()),
			})

		case cssparse.DeclarationGrammar:
			value, important := declarationValue(parser.Values())
			current().PushBack(&Declaration{
				Property:  strings.ToLower(string(data)),
				Value:     value,
				Important: important,
			})

		case cssparse.CustomPropertyGrammar:
			// custom property values are verbatim text, whitespace included
			raw := strings.TrimSpace(rawText(parser.Values()))
			current().PushBack(&Declaration{
				Property: string(data),
				Value:    Value{Tokens: []Token{{Type: TokenRaw, Data: raw}}},
			})

		case cssparse.CommentGrammar:
			// only exclamation comments survive parsing
			text := string(data)
			if strings.HasPrefix(text, "/*!") {
				current().PushBack(&Comment{Text: strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")})
			}

		case cssparse.TokenGrammar:
			// stray token the grammar could not place, keep verbatim
			current().PushBack(&Raw{Data: string(data)})
		}
	}
}

// declarationValue maps value tokens into the tree token form, stripping
// whitespace and the trailing "!important" marker.
func declarationValue(tokens []cssparse.Token) (Value, bool) {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.TokenType == cssparse.WhitespaceToken {
			continue
		}
		out = append(out, mapToken(t))
	}

	important := false
	if n := len(out); n >= 2 &&
		out[n-1].Type == TokenIdent && strings.EqualFold(out[n-1].Data, "important") &&
		out[n-2].Type == TokenDelim && out[n-2].Data == "!" {
		out = out[:n-2]
		important = true
	}
	return Value{Tokens: out}, important
}

func mapToken(t cssparse.Token) Token {
	data := string(t.Data)
	switch t.TokenType {
	case cssparse.IdentToken:
		return Token{Type: TokenIdent, Data: data}
	case cssparse.FunctionToken:
		return Token{Type: TokenFunction, Data: data}
	case cssparse.NumberToken:
		return Token{Type: TokenNumber, Data: data}
	case cssparse.DimensionToken:
		return Token{Type: TokenDimension, Data: data}
	case cssparse.PercentageToken:
		return Token{Type: TokenPercentage, Data: data}
	case cssparse.HashToken:
		return Token{Type: TokenHash, Data: data}
	case cssparse.StringToken:
		return Token{Type: TokenString, Data: data}
	case cssparse.URLToken:
		return Token{Type: TokenURL, Data: data}
	case cssparse.CommaToken:
		return Token{Type: TokenComma, Data: data}
	case cssparse.ColonToken:
		return Token{Type: TokenColon, Data: data}
	case cssparse.DelimToken:
		return Token{Type: TokenDelim, Data: data}
	case cssparse.LeftParenthesisToken:
		return Token{Type: TokenLeftParen, Data: data}
	case cssparse.RightParenthesisToken:
		return Token{Type: TokenRightParen, Data: data}
	case cssparse.LeftBracketToken:
		return Token{Type: TokenLeftBracket, Data: data}
	case cssparse.RightBracketToken:
		return Token{Type: TokenRightBracket, Data: data}
	default:
		return Token{Type: TokenRaw, Data: data}
	}
}

func rawText(tokens []cssparse.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return sb.String()
}

// splitSelectors builds normalized selectors from prelude tokens,
// splitting at top-level commas. Whitespace runs collapse to a single
// space and spaces around child/sibling combinators are dropped.
func splitSelectors(data []byte, tokens []cssparse.Token) []Selector {
	var (
		selectors []Selector
		sb        strings.Builder
		depth     int
		space     bool
	)
	if len(data) > 0 {
		sb.Write(data)
	}

	flush := func() {
		raw := strings.TrimSpace(sb.String())
		sb.Reset()
		space = false
		if raw != "" {
			selectors = append(selectors, Selector{Raw: raw})
		}
	}

	for _, t := range tokens {
		switch t.TokenType {
		case cssparse.WhitespaceToken:
			space = true
			continue
		case cssparse.CommaToken:
			if depth == 0 {
				flush()
				continue
			}
		case cssparse.FunctionToken, cssparse.LeftParenthesisToken, cssparse.LeftBracketToken:
			depth++
		case cssparse.RightParenthesisToken, cssparse.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}

		text := string(t.Data)
		if space {
			// a space before a combinator is redundant
			if sb.Len() > 0 && !isCombinator(text) && !endsWithCombinator(sb.String()) {
				sb.WriteByte(' ')
			}
			space = false
		}
		sb.WriteString(text)
	}
	flush()
	return selectors
}

func isCombinator(text string) bool {
	return text == ">" || text == "+" || text == "~"
}

func endsWithCombinator(s string) bool {
	return s != "" && isCombinator(s[len(s)-1:])
}

// preludeText normalizes an at-rule prelude: single spaces between
// tokens, none around punctuation.
func preludeText(tokens []cssparse.Token) string {
	var (
		sb    strings.Builder
		space bool
	)
	for _, t := range tokens {
		if t.TokenType == cssparse.WhitespaceToken {
			space = true
			continue
		}
		text := string(t.Data)
		if space && sb.Len() > 0 && !noSpaceBefore(t.TokenType) && !noSpaceAfterLast(&sb) {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(text)
	}
	return strings.TrimSpace(sb.String())
}

func noSpaceBefore(tt cssparse.TokenType) bool {
	switch tt {
	case cssparse.RightParenthesisToken, cssparse.RightBracketToken,
		cssparse.ColonToken, cssparse.CommaToken, cssparse.SemicolonToken:
		return true
	}
	return false
}

func noSpaceAfterLast(sb *strings.Builder) bool {
	s := sb.String()
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case '(', '[', ':', ',':
		return true
	}
	return false
}
