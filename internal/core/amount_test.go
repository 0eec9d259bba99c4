package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"12.5", "12.5"},
		{"12,5", "12.5"},
		{" 2.50 ", "2.5"},
		{"0.01", "0.01"},
		{"50", "50"},
		{"abc", "0"},
		{"", "0"},
		{"   ", "0"},
		{"1.2.3", "0"},
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		if !got.Equal(dec(tc.out)) {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.out)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"12.5", "₪12.50"},
		{"50", "₪50.00"},
		{"0", "₪0.00"},
		{"0.005", "₪0.01"}, // rounds half away from zero
		{"-3.2", "-₪3.20"},
	}
	for _, tc := range cases {
		if got := FormatAmount("₪", dec(tc.in)); got != tc.out {
			t.Fatalf("FormatAmount(₪, %s) = %q, want %q", tc.in, got, tc.out)
		}
	}

	if got := FormatAmount("€", dec("7")); got != "€7.00" {
		t.Fatalf("glyph not honored: %q", got)
	}
}
