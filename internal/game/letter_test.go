package game

import "testing"

func TestParseLetter(t *testing.T) {
	parseLetterTests := []struct {
		s      string
		want   Letter
		wantOk bool
	}{
		{},
		{s: "ab"},
		{s: "1"},
		{s: " "},
		{s: "_"},
		{s: "\xff"},
		{s: "p", want: 'p', wantOk: true},
		{s: "P", want: 'p', wantOk: true},
		{s: "É", want: 'é', wantOk: true},
	}
	for i, test := range parseLetterTests {
		got, ok := ParseLetter(test.s)
		switch {
		case ok != test.wantOk:
			t.Errorf("Test %v: wanted ok=%v for %q, got %v", i, test.wantOk, test.s, ok)
		case ok && got != test.want:
			t.Errorf("Test %v: wanted %q, got %q", i, test.want, got)
		}
	}
}
