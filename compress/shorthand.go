package compress

import (
	"strings"

	"cssc/css"
)

// dedupDeclarations removes same-property declarations that can never
// win the cascade inside one block: a later declaration supersedes an
// earlier one unless the earlier is important and the later is not.
// Custom properties are left alone.
func (c *context) dedupDeclarations(b *css.Block) {
	type slot struct {
		it *css.Item
		d  *css.Declaration
	}
	seen := make(map[string]slot)

	b.Declarations(func(it *css.Item, d *css.Declaration) {
		if strings.HasPrefix(d.Property, "--") {
			return
		}
		if prev, ok := seen[d.Property]; ok {
			if d.Important || !prev.d.Important {
				b.Children.Remove(prev.it)
				c.n.declarationsRemoved++
			} else {
				// earlier important beats later normal
				b.Children.Remove(it)
				c.n.declarationsRemoved++
				return
			}
		}
		seen[d.Property] = slot{it: it, d: d}
	})
}

// trblProperties take 1-4 top/right/bottom/left component values.
var trblProperties = map[string]bool{
	"margin": true, "padding": true, "inset": true,
	"border-width": true, "border-style": true, "border-color": true,
}

// foldShorthands shortens repeated components of box shorthand values
// ("1px 2px 1px 2px" -> "1px 2px").
func (c *context) foldShorthands(b *css.Block) {
	b.Declarations(func(_ *css.Item, d *css.Declaration) {
		if !trblProperties[d.Property] {
			return
		}
		if folded, ok := foldTRBL(d.Value); ok {
			d.Value = folded
			c.n.valuesCompressed++
		}
	})
}

func simpleComponent(t css.Token) bool {
	switch t.Type {
	case css.TokenNumber, css.TokenDimension, css.TokenPercentage, css.TokenIdent:
		return true
	}
	return false
}

// foldTRBL folds a 2-4 component box value to its shortest equivalent.
func foldTRBL(v css.Value) (css.Value, bool) {
	n := len(v.Tokens)
	if n < 2 || n > 4 {
		return v, false
	}
	for _, t := range v.Tokens {
		if !simpleComponent(t) {
			return v, false
		}
	}

	// expand to top/right/bottom/left, then drop redundant tails
	four := make([]css.Token, 4)
	switch n {
	case 2:
		four[0], four[1] = v.Tokens[0], v.Tokens[1]
		four[2], four[3] = v.Tokens[0], v.Tokens[1]
	case 3:
		four[0], four[1], four[2] = v.Tokens[0], v.Tokens[1], v.Tokens[2]
		four[3] = v.Tokens[1]
	case 4:
		copy(four, v.Tokens)
	}

	same := func(a, b css.Token) bool { return a.Type == b.Type && a.Data == b.Data }

	out := four
	if same(out[3], out[1]) {
		out = out[:3]
		if same(out[2], out[0]) {
			out = out[:2]
			if same(out[1], out[0]) {
				out = out[:1]
			}
		}
	}
	if len(out) >= n {
		return v, false
	}
	return css.Value{Tokens: out}, true
}

var consolidatedShorthands = []struct {
	base  string
	sides [4]string
}{
	{"margin", [4]string{"margin-top", "margin-right", "margin-bottom", "margin-left"}},
	{"padding", [4]string{"padding-top", "padding-right", "padding-bottom", "padding-left"}},
}

// consolidateLonghands replaces a complete set of side longhands with the
// equivalent shorthand. Only applies when all four are present with
// uniform importance, each value is one simple component and the block
// does not also declare the shorthand itself (dedup against a partial
// shorthand is not order-safe).
func (c *context) consolidateLonghands(b *css.Block) {
	for _, sh := range consolidatedShorthands {
		type slot struct {
			it *css.Item
			d  *css.Declaration
		}
		var (
			found   = make(map[string]slot, 4)
			last    *css.Item
			blocked bool
		)
		b.Declarations(func(it *css.Item, d *css.Declaration) {
			if d.Property == sh.base {
				blocked = true
				return
			}
			for _, side := range sh.sides {
				if d.Property == side {
					if len(d.Value.Tokens) != 1 || !simpleComponent(d.Value.Tokens[0]) {
						blocked = true
						return
					}
					found[side] = slot{it: it, d: d}
					last = it
				}
			}
		})
		if blocked || len(found) != 4 {
			continue
		}

		important := found[sh.sides[0]].d.Important
		uniform := true
		for _, side := range sh.sides[1:] {
			if found[side].d.Important != important {
				uniform = false
				break
			}
		}
		if !uniform {
			continue
		}

		tokens := make([]css.Token, 0, 4)
		for _, side := range sh.sides {
			tokens = append(tokens, found[side].d.Value.Tokens[0])
		}
		value := css.Value{Tokens: tokens}
		if folded, ok := foldTRBL(value); ok {
			value = folded
		}

		// the shorthand takes the position of the last longhand to keep
		// any interleaved declarations' override order intact
		b.Children.InsertBefore(&css.Declaration{
			Property:  sh.base,
			Value:     value,
			Important: important,
		}, last)
		for _, side := range sh.sides {
			b.Children.Remove(found[side].it)
		}
		// four longhands out, one shorthand in
		c.n.declarationsRemoved += 3
	}
}
