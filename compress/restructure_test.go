package compress_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cssc/compress"
	"cssc/css"
)

func run(t *testing.T, source string, opts compress.Options) string {
	t.Helper()
	sheet := css.NewParser(nil).Parse([]byte(source))
	return compress.Compress(sheet, opts).Ast.String()
}

func TestRestructure(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "equal blocks merge selectors",
			in:   ".a{color:red}.b{color:red}",
			want: ".a,.b{color:red}",
		},
		{
			name: "equal selectors merge declarations",
			in:   ".a{color:red}.a{width:0}",
			want: ".a{color:red;width:0}",
		},
		{
			name: "later declaration wins after merge",
			in:   ".a{color:red}.a{color:blue}",
			want: ".a{color:blue}",
		},
		{
			name: "intervening override blocks the merge",
			in:   ".a,.c{color:red}.c{color:green}.b{color:red}",
			want: ".a,.c{color:red}.c{color:green}.b{color:red}",
		},
		{
			name: "unrelated rule between is safe",
			in:   ".a{color:red}.c{font-size:10px}.b{color:red}",
			want: ".c{font-size:10px}.a,.b{color:red}",
		},
		{
			name: "gap longhand between blocks the merge",
			in:   ".a,.b{gap:10px}.a{row-gap:5px}.c{gap:10px}",
			want: ".a,.b{gap:10px}.a{row-gap:5px}.c{gap:10px}",
		},
		{
			name: "all property between blocks the merge",
			in:   ".a,.b{color:red}.a{all:unset}.c{color:red}",
			want: ".a,.b{color:red}.a{all:unset}.c{color:red}",
		},
		{
			name: "place shorthand between blocks the merge",
			in:   ".a,.b{align-items:center}.a{place-items:start}.c{align-items:center}",
			want: ".a,.b{align-items:center}.a{place-items:start}.c{align-items:center}",
		},
		{
			name: "merges cascade to a fixed point",
			in:   ".x{color:red}.y{color:blue}.x{color:blue}",
			want: ".y,.x{color:blue}",
		},
		{
			name: "at-rule is an opaque boundary",
			in:   ".a{color:red}@media all{.x{color:blue}}.b{color:red}",
			want: ".a{color:red}@media all{.x{color:blue}}.b{color:red}",
		},
		{
			name: "adjacent identical at-rules merge",
			in:   "@media all{.a{color:red}}@media all{.b{color:red}}",
			want: "@media all{.a,.b{color:red}}",
		},
		{
			name: "different preludes stay apart",
			in:   "@media screen{.a{color:red}}@media print{.a{color:red}}",
			want: "@media screen{.a{color:red}}@media print{.a{color:red}}",
		},
		{
			name: "selector order inside list is irrelevant",
			in:   ".a,.b{color:red}.b,.a{width:0}",
			want: ".b,.a{color:red;width:0}",
		},
		{
			name: "important merges with important",
			in:   ".a{color:red!important}.b{color:red!important}",
			want: ".a,.b{color:red!important}",
		},
		{
			name: "importance mismatch keeps rules apart",
			in:   ".a{color:red!important}.b{color:red}",
			want: ".a{color:red!important}.b{color:red}",
		},
		{
			name: "declaration order folds when unambiguous",
			in:   ".a{color:red;width:0}.b{width:0;color:red}",
			want: ".a,.b{width:0;color:red}",
		},
		{
			name: "empty rules vanish",
			in:   ".a{}.b{color:red}@media all{.c{}}",
			want: ".b{color:red}",
		},
		{
			name: "restructuring inside media",
			in:   "@media all{.a{color:red}.b{color:red}}",
			want: "@media all{.a,.b{color:red}}",
		},
	}
	for _, tt := range tests {
		if got := run(t, tt.in, compress.Options{}); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRestructureDisabled(t *testing.T) {
	in := ".a{color:red}.b{color:red}"
	if got := run(t, in, compress.Options{Restructure: compress.Bool(false)}); got != in {
		t.Errorf("restructure off: got %q, want %q", got, in)
	}

	// the primary option wins over its alias
	got := run(t, in, compress.Options{
		Restructure:   compress.Bool(false),
		Restructuring: compress.Bool(true),
	})
	if got != in {
		t.Errorf("alias should lose to primary: got %q", got)
	}
	got = run(t, in, compress.Options{Restructuring: compress.Bool(false)})
	if got != in {
		t.Errorf("alias alone should disable: got %q", got)
	}
}

func TestRestructurePassCap(t *testing.T) {
	// alternating selector-equal and block-equal partners, each one
	// only reachable after the previous merge: every pass performs
	// exactly one merge, so the fixed point lies past the cap and the
	// loop has to stop early and say so
	in := ".a,.b,.c,.d,.e,.f{bottom:6px}" +
		".f{color:red;width:1px;height:2px;top:3px;left:4px;right:5px}" +
		".a,.b,.c,.d,.e{right:5px}" +
		".e{color:red;width:1px;height:2px;top:3px;left:4px}" +
		".a,.b,.c,.d{left:4px}" +
		".d{color:red;width:1px;height:2px;top:3px}" +
		".a,.b,.c{top:3px}" +
		".c{color:red;width:1px;height:2px}" +
		".b,.a{height:2px}" +
		".b{color:red;width:1px}" +
		".a{color:red}" +
		".a{width:1px}"
	core, logs := observer.New(zap.DebugLevel)
	got := run(t, in, compress.Options{Logger: zap.New(core)})
	want := ".a,.b,.c,.d,.e,.f{bottom:6px}" +
		".f,.e,.d,.c,.b,.a{right:5px;left:4px;top:3px;height:2px;color:red;width:1px}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if logs.FilterMessage("Merging stopped at the pass cap").Len() != 1 {
		t.Error("expected a pass cap note in the debug log")
	}
}

func TestRestructureIdempotent(t *testing.T) {
	sources := []string{
		".a{color:red}.b{color:red}",
		".x{color:red}.y{color:blue}.x{color:blue}",
		"@media all{.a{color:red}}@media all{.b{color:red}}",
		".a,.c{color:red}.c{color:green}.b{color:red}",
	}
	for _, src := range sources {
		once := run(t, src, compress.Options{})
		twice := run(t, once, compress.Options{})
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", src, once, twice)
		}
	}
}
