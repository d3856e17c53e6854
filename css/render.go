package css

import (
	"io"
	"strings"
)

// Serialization renders canonical minified text: no whitespace beyond what
// token adjacency requires, declarations separated by ';', exclamation
// comments each on their own line. A nil or empty tree renders as the
// empty string.

type countingWriter struct {
	w    io.Writer
	n    int64
	last byte
	err  error
}

func (cw *countingWriter) WriteString(s string) {
	if cw.err != nil || s == "" {
		return
	}
	n, err := io.WriteString(cw.w, s)
	cw.n += int64(n)
	cw.err = err
	cw.last = s[len(s)-1]
}

// WriteTo writes the stylesheet as minified CSS, implementing io.WriterTo.
func (s *StyleSheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if s != nil && s.Children != nil {
		for it := s.Children.First(); it != nil; it = it.Next() {
			writeNode(cw, it.Value)
		}
	}
	return cw.n, cw.err
}

// String returns the minified CSS text of the stylesheet.
func (s *StyleSheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeNode(cw *countingWriter, n Node) {
	switch n := n.(type) {
	case *Rule:
		writeRule(cw, n)
	case *AtRule:
		writeAtRule(cw, n)
	case *Comment:
		writeComment(cw, n)
	case *Declaration:
		writeDeclaration(cw, n)
	case *Raw:
		cw.WriteString(n.Data)
	}
}

func writeRule(cw *countingWriter, r *Rule) {
	for i, sel := range r.Selectors.Selectors {
		if i > 0 {
			cw.WriteString(",")
		}
		cw.WriteString(sel.Raw)
	}
	cw.WriteString("{")
	writeBlockBody(cw, r.Block)
	cw.WriteString("}")
}

func writeAtRule(cw *countingWriter, a *AtRule) {
	cw.WriteString(a.Name)
	if a.Prelude != "" {
		if a.Prelude[0] != '(' {
			cw.WriteString(" ")
		}
		cw.WriteString(a.Prelude)
	}
	if a.Block == nil {
		cw.WriteString(";")
		return
	}
	cw.WriteString("{")
	writeBlockBody(cw, a.Block)
	cw.WriteString("}")
}

func writeBlockBody(cw *countingWriter, b *Block) {
	if b == nil || b.Children == nil {
		return
	}
	needSemi := false
	for it := b.Children.First(); it != nil; it = it.Next() {
		if d, ok := it.Value.(*Declaration); ok {
			if needSemi {
				cw.WriteString(";")
			}
			writeDeclaration(cw, d)
			needSemi = true
			continue
		}
		needSemi = false
		writeNode(cw, it.Value)
	}
}

func writeDeclaration(cw *countingWriter, d *Declaration) {
	cw.WriteString(d.Property)
	cw.WriteString(":")
	writeValue(cw, d.Value)
	if d.Important {
		cw.WriteString("!important")
	}
}

func writeComment(cw *countingWriter, c *Comment) {
	// every retained comment sits on its own line
	if cw.n > 0 && cw.last != '\n' {
		cw.WriteString("\n")
	}
	cw.WriteString("/*")
	cw.WriteString(c.Text)
	cw.WriteString("*/\n")
}

func writeValue(cw *countingWriter, v Value) {
	var prev *Token
	for i := range v.Tokens {
		t := &v.Tokens[i]
		if prev != nil && needSpace(prev, t) {
			cw.WriteString(" ")
		}
		cw.WriteString(t.Data)
		prev = t
	}
}

// Text renders any single node as minified text. Used for canonical
// comparison keys.
func Text(n Node) string {
	var sb strings.Builder
	cw := &countingWriter{w: &sb}
	writeNode(cw, n)
	return sb.String()
}

// String returns the minified text of a bare declaration block (no
// braces), usable for the declaration-list entry point.
func (b *Block) String() string {
	var sb strings.Builder
	cw := &countingWriter{w: &sb}
	writeBlockBody(cw, b)
	return sb.String()
}

// String returns the minified text of the value.
func (v Value) String() string {
	var sb strings.Builder
	cw := &countingWriter{w: &sb}
	writeValue(cw, v)
	return sb.String()
}

// String returns the minified text of the selector list.
func (sl SelectorList) String() string {
	raws := make([]string, len(sl.Selectors))
	for i, s := range sl.Selectors {
		raws[i] = s.Raw
	}
	return strings.Join(raws, ",")
}

// wordToken reports whether a token would merge with an adjacent word
// token if written without separation.
func wordToken(t *Token) bool {
	switch t.Type {
	case TokenIdent, TokenFunction, TokenNumber, TokenDimension,
		TokenPercentage, TokenHash, TokenString, TokenURL, TokenRaw:
		return true
	}
	return false
}

// signDelim matches the arithmetic operators that CSS requires to be
// surrounded by whitespace (calc expressions).
func signDelim(t *Token) bool {
	return t.Type == TokenDelim && (t.Data == "+" || t.Data == "-")
}

func needSpace(prev, cur *Token) bool {
	if prev.Type == TokenFunction {
		// function token data carries the opening parenthesis
		return false
	}
	if signDelim(prev) || signDelim(cur) {
		return true
	}
	if prev.Type == TokenRightParen && wordToken(cur) {
		// a closing parenthesis and the next component stay separated
		return true
	}
	return wordToken(prev) && wordToken(cur)
}
