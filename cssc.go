// Package cssc is a structural CSS minifier: it parses a stylesheet,
// compresses values and declarations, merges rules where the cascade
// provably keeps the same outcome and serializes the result back to
// minimal text. The heavy lifting lives in packages css (tree, parser,
// serializer) and compress (the engine); this package wires them into
// convenience entry points.
package cssc

import (
	"cssc/compress"
	"cssc/css"
)

// Result holds the minified stylesheet text.
type Result struct {
	CSS string
}

// Minify parses, compresses and re-serializes a whole stylesheet. The
// options value is only read, never modified; nil means defaults.
func Minify(source string, opts *compress.Options) (Result, error) {
	var o compress.Options
	if opts != nil {
		o = *opts
	}

	sheet := css.NewParser(o.Logger).Parse([]byte(source))
	res := compress.Compress(sheet, o)
	return Result{CSS: res.Ast.String()}, nil
}

// MinifyBlock is Minify constrained to a bare declaration list (the
// text between the braces of a rule).
func MinifyBlock(source string, opts *compress.Options) (Result, error) {
	var o compress.Options
	if opts != nil {
		o = *opts
	}

	block := css.NewParser(o.Logger).ParseBlock([]byte(source))
	res, err := compress.CompressBlock(block, o)
	if err != nil {
		return Result{}, err
	}
	return Result{CSS: res.Ast.String()}, nil
}
