package utils

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{5, "$5"},
		{4000, "$4,000"},
		{1234567, "$1,234,567"},
		{1234.5, "$1,234.50"},
		{0.07, "$0.07"},
		{999.999, "$1,000"},
		{-4000, "-$4,000"},
	}

	for _, tc := range cases {
		if got := FormatCurrency(tc.amount); got != tc.want {
			t.Errorf("FormatCurrency(%v): got %q want %q", tc.amount, got, tc.want)
		}
	}
}

func TestCSVField(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"plain", "plain"},
		{"", ""},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line1\nline2", "\"line1\nline2\""},
	}

	for _, tc := range cases {
		if got := CSVField(tc.value); got != tc.want {
			t.Errorf("CSVField(%q): got %q want %q", tc.value, got, tc.want)
		}
	}
}
