package cli

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "empty text",
			text:  "",
			width: 10,
			want:  nil,
		},
		{
			name:  "fits on one line",
			text:  "short note",
			width: 20,
			want:  []string{"short note"},
		},
		{
			name:  "splits on spaces",
			text:  "alpha beta gamma delta",
			width: 11,
			want:  []string{"alpha beta", "gamma delta"},
		},
		{
			name:  "long word stays whole",
			text:  "supercalifragilistic yes",
			width: 5,
			want:  []string{"supercalifragilistic", "yes"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := wrap(tc.text, tc.width)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("wrap(%q, %d) = %v, want %v", tc.text, tc.width, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{"fits", "short topic", 20, "short topic"},
		{"exactly max", strings.Repeat("a", 20), 20, strings.Repeat("a", 20)},
		{"cut with marker", strings.Repeat("a", 25), 20, strings.Repeat("a", 18) + ".."},
		{"multibyte cut on rune boundary", strings.Repeat("学", 25), 20, strings.Repeat("学", 18) + ".."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.s, tc.max)
			if got != tc.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tc.s, tc.max, got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tc.s, tc.max)
			}
		})
	}
}
