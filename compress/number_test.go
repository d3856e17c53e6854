package compress

import "testing"

func TestCompressNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"00", "0"},
		{"0.5", ".5"},
		{"0.50", ".5"},
		{"1.500", "1.5"},
		{"100", "100"},
		{"+1", "1"},
		{"-0", "0"},
		{"-0.25", "-.25"},
		{"1.0", "1"},
		{".0", "0"},
		{"010", "10"},
		{"1e3", "1e3"}, // scientific notation is left alone
	}
	for _, tt := range tests {
		if got := compressNumber(tt.in); got != tt.want {
			t.Errorf("compressNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompressDimension(t *testing.T) {
	tests := []struct {
		in       string
		topLevel bool
		want     string
		bare     bool
	}{
		{"0px", true, "0", true},
		{"0px", false, "0px", false}, // units are significant inside calc()
		{"0s", true, "0s", false},    // time units stay
		{"0%", true, "0%", false},
		{"0.50em", true, ".5em", false},
		{"1.0Q", true, "1Q", false},
		{"10pt", true, "10pt", false},
	}
	for _, tt := range tests {
		got, bare := compressDimension(tt.in, tt.topLevel)
		if got != tt.want || bare != tt.bare {
			t.Errorf("compressDimension(%q, %v) = %q, %v, want %q, %v",
				tt.in, tt.topLevel, got, bare, tt.want, tt.bare)
		}
	}
}
