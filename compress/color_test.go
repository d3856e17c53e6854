package compress

import (
	"testing"

	"cssc/css"
)

func TestFoldHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"FF0000", "f00", true},
		{"ff0000", "f00", true},
		{"f00", "f00", true},
		{"112233", "123", true},
		{"123456", "123456", true},
		{"ff000080", "ff000080", true}, // 8-digit hex has alpha, keep it
		{"header", "", false},          // id selector hash
		{"ff00", "", false},
	}
	for _, tt := range tests {
		got, ok := foldHex(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("foldHex(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCompressHash(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"#FF0000", "red", true},
		{"#ff0000", "red", true},
		{"#000000", "#000", true},
		{"#123", "#123", false},
		{"#ABCDEF", "#abcdef", true},
		{"#abcdef", "#abcdef", false},
		{"#main", "#main", false},
	}
	for _, tt := range tests {
		got, changed := compressHash(css.Token{Type: css.TokenHash, Data: tt.in})
		if got.Data != tt.want || changed != tt.changed {
			t.Errorf("compressHash(%q) = %q, %v, want %q, %v", tt.in, got.Data, changed, tt.want, tt.changed)
		}
	}
}

func TestCompressColorKeyword(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"black", "#000", true},
		{"White", "#fff", true},
		{"rebeccapurple", "#639", true},
		{"red", "red", false},  // already shortest
		{"blue", "blue", false},
	}
	for _, tt := range tests {
		got, changed := compressColorKeyword(css.Token{Type: css.TokenIdent, Data: tt.in})
		if got.Data != tt.want || changed != tt.changed {
			t.Errorf("compressColorKeyword(%q) = %q, %v, want %q, %v", tt.in, got.Data, changed, tt.want, tt.changed)
		}
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		h, s, l float64
		r, g, b int
	}{
		{0, 1, 0.5, 255, 0, 0},
		{120, 1, 0.25, 0, 128, 0},
		{240, 1, 0.5, 0, 0, 255},
		{0, 0, 0.5, 128, 128, 128},
		{360, 1, 0.5, 255, 0, 0},
		{-120, 1, 0.5, 0, 0, 255},
	}
	for _, tt := range tests {
		r, g, b := hslToRGB(tt.h, tt.s, tt.l)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("hslToRGB(%v, %v, %v) = %d, %d, %d, want %d, %d, %d",
				tt.h, tt.s, tt.l, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestCompressColorFunction(t *testing.T) {
	mk := func(toks ...css.Token) []css.Token { return toks }
	fn := func(name string) css.Token { return css.Token{Type: css.TokenFunction, Data: name + "("} }
	num := func(s string) css.Token { return css.Token{Type: css.TokenNumber, Data: s} }
	pct := func(s string) css.Token { return css.Token{Type: css.TokenPercentage, Data: s} }
	comma := css.Token{Type: css.TokenComma, Data: ","}
	rp := css.Token{Type: css.TokenRightParen, Data: ")"}

	tests := []struct {
		name     string
		tokens   []css.Token
		want     string
		consumed int
		ok       bool
	}{
		{
			name:     "rgb to keyword",
			tokens:   mk(fn("rgb"), num("255"), comma, num("0"), comma, num("0"), rp),
			want:     "red",
			consumed: 7,
			ok:       true,
		},
		{
			name:     "rgba alpha one",
			tokens:   mk(fn("rgba"), num("0"), comma, num("0"), comma, num("0"), comma, num("1"), rp),
			want:     "#000",
			consumed: 9,
			ok:       true,
		},
		{
			name:   "rgba translucent stays",
			tokens: mk(fn("rgba"), num("0"), comma, num("0"), comma, num("0"), comma, num("0.5"), rp),
			ok:     false,
		},
		{
			name:     "percent channels",
			tokens:   mk(fn("rgb"), pct("100%"), comma, pct("0%"), comma, pct("0%"), rp),
			want:     "red",
			consumed: 7,
			ok:       true,
		},
		{
			name:     "hsl to hex",
			tokens:   mk(fn("hsl"), num("120"), comma, pct("100%"), comma, pct("25%"), rp),
			want:     "green",
			consumed: 7,
			ok:       true,
		},
		{
			name:   "hsl without percent stays",
			tokens: mk(fn("hsl"), num("120"), comma, num("1"), comma, num("0.25"), rp),
			ok:     false,
		},
		{
			name:   "var argument stays",
			tokens: mk(fn("rgb"), css.Token{Type: css.TokenFunction, Data: "var("}, css.Token{Type: css.TokenIdent, Data: "--r"}, rp, comma, num("0"), comma, num("0"), rp),
			ok:     false,
		},
		{
			name:   "not a color function",
			tokens: mk(fn("url"), css.Token{Type: css.TokenIdent, Data: "x"}, rp),
			ok:     false,
		},
	}
	for _, tt := range tests {
		got, consumed, ok := compressColorFunction(tt.tokens, 0)
		if ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !tt.ok {
			continue
		}
		if got.Data != tt.want || consumed != tt.consumed {
			t.Errorf("%s: got %q consumed %d, want %q consumed %d", tt.name, got.Data, consumed, tt.want, tt.consumed)
		}
	}
}
