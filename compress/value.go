package compress

import (
	"strings"

	"cssc/css"
)

// compressBlock runs the whole value-compression stage over one
// declaration block: same-property dedup, per-token value minification
// and shorthand work. Surviving declarations keep their relative order.
func (c *context) compressBlock(b *css.Block) {
	c.dedupDeclarations(b)
	b.Declarations(func(_ *css.Item, d *css.Declaration) {
		c.compressValue(d)
	})
	c.foldShorthands(b)
	c.consolidateLonghands(b)
}

// compressValue rewrites one declaration's value tokens to their
// shortest equivalent form. Unrecognized syntax passes through; the
// rewrite is best-effort and lossless by construction.
func (c *context) compressValue(d *css.Declaration) {
	if strings.HasPrefix(d.Property, "--") {
		// custom property values are verbatim text
		return
	}

	tokens := d.Value.Tokens
	out := make([]css.Token, 0, len(tokens))
	depth := 0
	changed := false

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Type {
		case css.TokenFunction:
			if rep, consumed, ok := compressColorFunction(tokens, i); ok {
				out = append(out, rep)
				i += consumed - 1
				changed = true
				continue
			}
			depth++
		case css.TokenLeftParen, css.TokenLeftBracket:
			depth++
		case css.TokenRightParen, css.TokenRightBracket:
			if depth > 0 {
				depth--
			}
		case css.TokenNumber:
			if n := compressNumber(t.Data); n != t.Data {
				t.Data = n
				changed = true
			}
		case css.TokenPercentage:
			num := compressNumber(strings.TrimSuffix(t.Data, "%"))
			if n := num + "%"; n != t.Data {
				t.Data = n
				changed = true
			}
		case css.TokenDimension:
			text, bare := compressDimension(t.Data, depth == 0)
			if text != t.Data {
				t.Data = text
				if bare {
					t.Type = css.TokenNumber
				}
				changed = true
			}
		case css.TokenHash:
			if rep, ok := compressHash(t); ok {
				t = rep
				changed = true
			}
		case css.TokenIdent:
			if isColorProperty(d.Property) {
				if rep, ok := compressColorKeyword(t); ok {
					t = rep
					changed = true
				}
			}
		}
		out = append(out, t)
	}

	if changed {
		d.Value.Tokens = out
		c.n.valuesCompressed++
	}
}

// isColorProperty reports whether a bare keyword in the property's value
// may safely be treated as a color name. Keyword-to-hex rewriting is
// restricted to these; hex and rgb()/hsl() forms are unambiguous
// anywhere.
func isColorProperty(prop string) bool {
	if strings.HasSuffix(prop, "-color") {
		return true
	}
	switch prop {
	case "color", "background", "border", "border-top", "border-right",
		"border-bottom", "border-left", "outline", "fill", "stroke",
		"box-shadow", "text-shadow", "column-rule":
		return true
	}
	return false
}
