package compress_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cssc/compress"
	"cssc/css"
)

func TestCompressValues(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "numbers and zero units",
			in:   ".a{margin:0px;width:0.5em;top:+1px;left:-0.25rem}",
			want: ".a{margin:0;width:.5em;top:1px;left:-.25rem}",
		},
		{
			name: "zero unit kept inside calc",
			in:   ".a{width:calc(100% - 0px)}",
			want: ".a{width:calc(100% - 0px)}",
		},
		{
			name: "colors",
			in:   ".a{color:#FF0000;background-color:rgb(0,0,128);border-color:black}",
			want: ".a{color:red;background-color:navy;border-color:#000}",
		},
		{
			name: "keyword untouched outside color properties",
			in:   ".a{grid-area:black}",
			want: ".a{grid-area:black}",
		},
		{
			name: "translucent rgba survives",
			in:   ".a{color:rgba(255,0,0,.5)}",
			want: ".a{color:rgba(255,0,0,.5)}",
		},
		{
			name: "duplicate declarations collapse",
			in:   ".a{color:rgba(255,0,0,1);width:0px;color:#ff0000}",
			want: ".a{width:0;color:red}",
		},
		{
			name: "box shorthand folds",
			in:   ".a{margin:10px 20px 10px 20px}",
			want: ".a{margin:10px 20px}",
		},
		{
			name: "longhands consolidate",
			in:   ".a{margin-top:0;margin-right:0;margin-bottom:0;margin-left:0}",
			want: ".a{margin:0}",
		},
		{
			name: "custom property verbatim",
			in:   ".a{--brand:  #FF0000  ;color:var(--brand)}",
			want: ".a{--brand:#FF0000;color:var(--brand)}",
		},
		{
			name: "emptied rule removed",
			in:   ".a{}.b{color:red}",
			want: ".b{color:red}",
		},
	}
	for _, tt := range tests {
		got := run(t, tt.in, compress.Options{Restructure: compress.Bool(false)})
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCompressIdentity(t *testing.T) {
	sheet := css.NewParser(nil).Parse([]byte(".a{color:red}"))
	res := compress.Compress(sheet, compress.Options{})
	if res.Ast != sheet {
		t.Error("Compress must return the tree it was given")
	}
}

func TestCompressNil(t *testing.T) {
	res := compress.Compress(nil, compress.Options{})
	if res.Ast != nil {
		t.Errorf("nil input: got %v, want nil tree", res.Ast)
	}
	if got := res.Ast.String(); got != "" {
		t.Errorf("nil tree renders %q, want empty", got)
	}
}

func TestCommentFiltering(t *testing.T) {
	const in = "/*! first */.a{color:red}/*! second */.b{width:0}"
	tests := []struct {
		policy compress.CommentPolicy
		want   string
	}{
		{compress.CommentsExclamation, "/*! first */\n.a{color:red}\n/*! second */\n.b{width:0}"},
		{compress.CommentsFirstExclamation, "/*! first */\n.a{color:red}.b{width:0}"},
		{compress.CommentsNone, ".a{color:red}.b{width:0}"},
	}
	for _, tt := range tests {
		got := run(t, in, compress.Options{
			Comments:    tt.policy,
			Restructure: compress.Bool(false),
		})
		if got != tt.want {
			t.Errorf("policy %v: got %q, want %q", tt.policy, got, tt.want)
		}
	}
}

func TestCompressBlock(t *testing.T) {
	p := css.NewParser(nil)

	b := p.ParseBlock([]byte("color: rgba(255, 0, 0, 1); width: 0px; color: #ff0000"))
	res, err := compress.CompressBlock(b, compress.Options{})
	if err != nil {
		t.Fatalf("CompressBlock: %v", err)
	}
	if got, want := res.Ast.String(), "width:0;color:red"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if res.Ast != b {
		t.Error("CompressBlock must return the block it was given")
	}

	if _, err := compress.CompressBlock(nil, compress.Options{}); err != nil {
		t.Errorf("nil block: %v", err)
	}

	// a nested rule is caller misuse for the declaration-list entry point
	bad := &css.Block{Children: css.NewList()}
	bad.Children.PushBack(&css.Rule{
		Selectors: css.SelectorList{Selectors: []css.Selector{{Raw: ".a"}}},
		Block:     &css.Block{Children: css.NewList()},
	})
	if _, err := compress.CompressBlock(bad, compress.Options{}); err == nil {
		t.Error("expected an error for a block containing a rule")
	}
}

func TestUsageFiltering(t *testing.T) {
	usage := &compress.Usage{
		Tags:    []string{"div", "p"},
		Classes: []string{"keep"},
	}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "unknown class dropped",
			in:   ".keep{color:red}.gone{color:blue}",
			want: ".keep{color:red}",
		},
		{
			name: "unknown tag dropped",
			in:   "div{color:red}span{color:blue}",
			want: "div{color:red}",
		},
		{
			name: "one live selector keeps the rule",
			in:   ".gone,div{color:red}",
			want: ".gone,div{color:red}",
		},
		{
			name: "unprovable selector kept",
			in:   ".gone:hover{color:red}",
			want: ".gone:hover{color:red}",
		},
		{
			name: "ids unrestricted when list empty",
			in:   "#anything{color:red}",
			want: "#anything{color:red}",
		},
		{
			name: "inside media",
			in:   "@media all{.gone{color:red}}",
			want: "",
		},
	}
	for _, tt := range tests {
		got := run(t, tt.in, compress.Options{
			Usage:       usage,
			Restructure: compress.Bool(false),
		})
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDebugDoesNotChangeOutput(t *testing.T) {
	const in = ".a{color:#ff0000}.b{color:red}"
	want := run(t, in, compress.Options{})
	for level := compress.DebugOff; level <= compress.DebugFull; level++ {
		core, logs := observer.New(zap.DebugLevel)
		got := run(t, in, compress.Options{
			Debug:  level,
			Logger: zap.New(core),
		})
		if got != want {
			t.Errorf("debug %d: got %q, want %q", level, got, want)
		}
		if level == compress.DebugOff && logs.Len() != 0 {
			t.Errorf("debug off still logged %d entries", logs.Len())
		}
		if level > compress.DebugOff && logs.Len() == 0 {
			t.Errorf("debug %d produced no diagnostics", level)
		}
	}
}

func TestDebugTruncation(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString(".selector-")
		sb.WriteString(strings.Repeat("x", i%10))
		sb.WriteString("{color:#ff0000}")
	}
	in := sb.String()

	srcField := func(level int) string {
		core, logs := observer.New(zap.DebugLevel)
		run(t, in, compress.Options{Debug: level, Logger: zap.New(core)})
		for _, e := range logs.All() {
			for _, f := range e.Context {
				if f.Key == "source" {
					return f.String
				}
			}
		}
		return ""
	}

	short := srcField(compress.DebugShort)
	if !strings.HasSuffix(short, "...") {
		t.Errorf("short debug should truncate, got %d bytes: %q...", len(short), short[:40])
	}
	full := srcField(compress.DebugFull)
	if strings.HasSuffix(full, "...") || len(full) <= len(short) {
		t.Error("full debug should echo the complete source")
	}
}

func TestDebugTruncationRuneBoundary(t *testing.T) {
	// the cut point lands on the second byte of a two-byte rune
	in := `.ab{content:"` + strings.Repeat("Ж", 150) + `"}`
	core, logs := observer.New(zap.DebugLevel)
	run(t, in, compress.Options{Debug: compress.DebugShort, Logger: zap.New(core)})
	for _, e := range logs.All() {
		for _, f := range e.Context {
			if f.Key != "source" {
				continue
			}
			if !strings.HasSuffix(f.String, "...") {
				t.Fatalf("expected truncated source, got %d bytes", len(f.String))
			}
			if !utf8.ValidString(f.String) {
				t.Fatalf("truncation split a rune: %q", f.String)
			}
			return
		}
	}
	t.Fatal("no source field logged")
}
