package compress

import (
	"fmt"
	"strconv"
	"strings"

	"cssc/css"
)

// Color minification picks the shortest equivalent notation: hex digits
// fold, rgb()/hsl() functions collapse to hex and hex trades places with
// a keyword only when the keyword is strictly shorter (and vice versa).
// Anything not provably a color is left untouched.

// hexToName maps folded lower-case hex (no '#') to a strictly shorter
// color keyword.
var hexToName = map[string]string{
	"f00":    "red",
	"000080": "navy",
	"008000": "green",
	"008080": "teal",
	"4b0082": "indigo",
	"800000": "maroon",
	"800080": "purple",
	"808000": "olive",
	"808080": "gray",
	"a0522d": "sienna",
	"a52a2a": "brown",
	"c0c0c0": "silver",
	"cd853f": "peru",
	"d2b48c": "tan",
	"da70d6": "orchid",
	"dda0dd": "plum",
	"ee82ee": "violet",
	"f0e68c": "khaki",
	"f0ffff": "azure",
	"f5deb3": "wheat",
	"f5f5dc": "beige",
	"fa8072": "salmon",
	"faf0e6": "linen",
	"ff6347": "tomato",
	"ff7f50": "coral",
	"ffa500": "orange",
	"ffc0cb": "pink",
	"ffd700": "gold",
	"ffe4c4": "bisque",
	"fffafa": "snow",
	"fffff0": "ivory",
}

// nameToHex maps lower-case color keywords to a strictly shorter hex
// form (already folded).
var nameToHex = map[string]string{
	"black":                "#000",
	"white":                "#fff",
	"yellow":               "#ff0",
	"fuchsia":              "#f0f",
	"magenta":              "#f0f",
	"blanchedalmond":       "#ffebcd",
	"cornflowerblue":       "#6495ed",
	"cornsilk":             "#fff8dc",
	"darkgoldenrod":        "#b8860b",
	"darkolivegreen":       "#556b2f",
	"darkorange":           "#ff8c00",
	"darkslateblue":        "#483d8b",
	"darkslategray":        "#2f4f4f",
	"darkturquoise":        "#00ced1",
	"goldenrod":            "#daa520",
	"lavenderblush":        "#fff0f5",
	"lemonchiffon":         "#fffacd",
	"lightgoldenrodyellow": "#fafad2",
	"lightslategray":       "#789",
	"lightyellow":          "#ffffe0",
	"mediumseagreen":       "#3cb371",
	"mediumspringgreen":    "#00fa9a",
	"mediumvioletred":      "#c71585",
	"navajowhite":          "#ffdead",
	"paleturquoise":        "#afeeee",
	"palevioletred":        "#db7093",
	"rebeccapurple":        "#639",
	"sandybrown":           "#f4a460",
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// foldHex lower-cases hex digits (no '#') and folds RRGGBB to RGB when
// the pairs repeat. Returns ok=false for anything that is not a color
// hex (id selectors also tokenize as hashes).
func foldHex(hex string) (string, bool) {
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return "", false
		}
	}
	hex = strings.ToLower(hex)
	switch len(hex) {
	case 3, 8:
		return hex, true
	case 6:
		if hex[0] == hex[1] && hex[2] == hex[3] && hex[4] == hex[5] {
			return string([]byte{hex[0], hex[2], hex[4]}), true
		}
		return hex, true
	default:
		return "", false
	}
}

// compressHash rewrites a hash token to its shortest color form.
func compressHash(t css.Token) (css.Token, bool) {
	hex, ok := foldHex(strings.TrimPrefix(t.Data, "#"))
	if !ok {
		return t, false
	}
	if name, ok := hexToName[hex]; ok {
		return css.Token{Type: css.TokenIdent, Data: name}, true
	}
	out := "#" + hex
	if out == t.Data {
		return t, false
	}
	return css.Token{Type: css.TokenHash, Data: out}, true
}

// compressColorKeyword trades a color keyword for a shorter hex form.
func compressColorKeyword(t css.Token) (css.Token, bool) {
	if hex, ok := nameToHex[strings.ToLower(t.Data)]; ok {
		return css.Token{Type: css.TokenHash, Data: hex}, true
	}
	return t, false
}

// compressColorFunction collapses rgb()/rgba()/hsl()/hsla() starting at
// tokens[i] into a single hex or keyword token. Returns the replacement,
// the count of consumed tokens and ok. Alpha other than exactly 1 keeps
// the function untouched.
func compressColorFunction(tokens []css.Token, i int) (css.Token, int, bool) {
	name := strings.ToLower(strings.TrimSuffix(tokens[i].Data, "("))
	switch name {
	case "rgb", "rgba", "hsl", "hsla":
	default:
		return css.Token{}, 0, false
	}

	var args []css.Token
	consumed := 1
	closed := false
	for j := i + 1; j < len(tokens); j++ {
		consumed++
		if tokens[j].Type == css.TokenRightParen {
			closed = true
			break
		}
		args = append(args, tokens[j])
	}
	if !closed {
		return css.Token{}, 0, false
	}

	nums, ok := colorArgs(args)
	if !ok {
		return css.Token{}, 0, false
	}
	switch len(nums) {
	case 4:
		if nums[3].text != "1" {
			return css.Token{}, 0, false
		}
		nums = nums[:3]
	case 3:
	default:
		return css.Token{}, 0, false
	}

	var r, g, b int
	if name == "hsl" || name == "hsla" {
		for _, a := range nums[1:] {
			if !a.percent {
				return css.Token{}, 0, false
			}
		}
		r, g, b = hslToRGB(nums[0].value, nums[1].value/100, nums[2].value/100)
	} else {
		for k, a := range nums {
			v := a.value
			if a.percent {
				v = v * 255 / 100
			}
			if k < 3 {
				nums[k].value = v
			}
		}
		r, g, b = clampByte(nums[0].value), clampByte(nums[1].value), clampByte(nums[2].value)
	}

	out, _ := compressHash(css.Token{Type: css.TokenHash, Data: fmt.Sprintf("#%02x%02x%02x", r, g, b)})
	return out, consumed, true
}

type colorArg struct {
	value   float64
	percent bool
	text    string
}

// colorArgs accepts the legacy comma form and the modern space form of
// color function arguments: numbers or percentages only, optionally a
// '/'-separated alpha. Anything else (var(), calc(), keywords) bails.
func colorArgs(tokens []css.Token) ([]colorArg, bool) {
	var out []colorArg
	for _, t := range tokens {
		switch t.Type {
		case css.TokenComma:
			continue
		case css.TokenDelim:
			if t.Data == "/" {
				continue
			}
			return nil, false
		case css.TokenNumber, css.TokenPercentage:
			text := strings.TrimSuffix(t.Data, "%")
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, false
			}
			out = append(out, colorArg{
				value:   v,
				percent: t.Type == css.TokenPercentage,
				text:    compressNumber(text),
			})
		default:
			return nil, false
		}
	}
	return out, true
}

func clampByte(v float64) int {
	n := int(v + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// hslToRGB converts hue (degrees), saturation and lightness (0..1) to
// 8-bit RGB components.
func hslToRGB(h, s, l float64) (int, int, int) {
	h = h - 360*float64(int(h/360))
	if h < 0 {
		h += 360
	}
	h /= 360

	if s == 0 {
		v := clampByte(l * 255)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	channel := func(t float64) int {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return clampByte((p + (q-p)*6*t) * 255)
		case t < 1.0/2:
			return clampByte(q * 255)
		case t < 2.0/3:
			return clampByte((p + (q-p)*(2.0/3-t)*6) * 255)
		default:
			return clampByte(p * 255)
		}
	}
	return channel(h + 1.0/3), channel(h), channel(h - 1.0/3)
}
