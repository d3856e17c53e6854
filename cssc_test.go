package cssc_test

import (
	"reflect"
	"testing"

	"cssc"
	"cssc/compress"
)

func minify(t *testing.T, source string, opts *compress.Options) string {
	t.Helper()
	res, err := cssc.Minify(source, opts)
	if err != nil {
		t.Fatalf("Minify(%q): %v", source, err)
	}
	return res.CSS
}

func TestMinify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "  \n\t ",
			want: "",
		},
		{
			name: "whitespace elimination",
			in:   ".a {\n  color : red ;\n  display : block ;\n}\n",
			want: ".a{color:red;display:block}",
		},
		{
			name: "equal blocks merge",
			in:   ".a{color:red}.b{color:red}",
			want: ".a,.b{color:red}",
		},
		{
			name: "values and structure together",
			in:   ".a { color: #ff0000 } .b { color: rgb(255, 0, 0) }",
			want: ".a,.b{color:red}",
		},
		{
			name: "media preserved and minified",
			in:   "@media all and (min-width: 100px) { .a { margin: 0px } }",
			want: "@media all and (min-width:100px){.a{margin:0}}",
		},
		{
			name: "import stays blockless",
			in:   "@import url(base.css);.a{color:red}",
			want: "@import url(base.css);.a{color:red}",
		},
	}
	for _, tt := range tests {
		if got := minify(t, tt.in, nil); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMinifyRestructureOption(t *testing.T) {
	const in = ".a{color:red}.b{color:red}"

	if got := minify(t, in, &compress.Options{Restructure: compress.Bool(false)}); got != in {
		t.Errorf("restructure disabled: got %q, want input unchanged", got)
	}
	got := minify(t, in, &compress.Options{
		Restructure:   compress.Bool(true),
		Restructuring: compress.Bool(false),
	})
	if want := ".a,.b{color:red}"; got != want {
		t.Errorf("primary should win over alias: got %q, want %q", got, want)
	}
}

func TestMinifyDoesNotModifyOptions(t *testing.T) {
	opts := &compress.Options{
		Restructuring: compress.Bool(true),
		Comments:      compress.CommentsFirstExclamation,
	}
	snapshot := *opts

	if _, err := cssc.Minify(".a{color:red}.b{color:red}", opts); err != nil {
		t.Fatalf("Minify: %v", err)
	}
	if !reflect.DeepEqual(*opts, snapshot) {
		t.Errorf("options were modified: %+v, want %+v", *opts, snapshot)
	}
	if *opts.Restructuring != true {
		t.Error("pointed-to alias value was modified")
	}
}

func TestMinifyComments(t *testing.T) {
	const in = "/*! one */ .a { color: red } /* plain */ /*! two */ .b { width: 0 }"
	tests := []struct {
		opts *compress.Options
		want string
	}{
		{nil, "/*! one */\n.a{color:red}\n/*! two */\n.b{width:0}"},
		{&compress.Options{Comments: compress.CommentsFirstExclamation}, "/*! one */\n.a{color:red}.b{width:0}"},
		{&compress.Options{Comments: compress.CommentsNone}, ".a{color:red}.b{width:0}"},
	}
	for _, tt := range tests {
		if got := minify(t, in, tt.opts); got != tt.want {
			t.Errorf("opts %+v: got %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestMinifyBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "declaration list",
			in:   "color: rgba(255, 0, 0, 1); width: 0px; color: #ff0000",
			want: "width:0;color:red",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "important preserved",
			in:   "color: #ff0000 !important",
			want: "color:red!important",
		},
	}
	for _, tt := range tests {
		res, err := cssc.MinifyBlock(tt.in, nil)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if res.CSS != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, res.CSS, tt.want)
		}
	}
}

func TestMinifyIdempotent(t *testing.T) {
	sources := []string{
		".a { color: #ff0000; margin: 0px 10px 0px 10px } .b { color: red }",
		"@media all { .a { color: red } } @media all { .b { color: red } }",
		"/*! kept */ .a { width: calc(100% - 20px) }",
	}
	for _, src := range sources {
		once := minify(t, src, nil)
		twice := minify(t, once, nil)
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", src, once, twice)
		}
	}
}
