package core

import "testing"

func TestWinstonToAR(t *testing.T) {
	cases := []struct {
		winston, ar string
	}{
		{"0", "0.000000000000"},
		{"1", "0.000000000001"},
		{"1000000000000", "1.000000000000"},
		{"1500000000000", "1.500000000000"},
		{"-1000000000000", "-1.000000000000"},
	}
	for _, tc := range cases {
		if got := WinstonToAR(tc.winston); got != tc.ar {
			t.Errorf("WinstonToAR(%q) = %q, want %q", tc.winston, got, tc.ar)
		}
	}
}

func TestArToWinston(t *testing.T) {
	cases := []struct {
		ar, winston string
	}{
		{"0", "0"},
		{"1", "1000000000000"},
		{"0.1", "100000000000"},
		{"1.5", "1500000000000"},
		{"0.000000000001", "1"},
		{"-1.5", "-1500000000000"},
		{".5", "500000000000"},
	}
	for _, tc := range cases {
		if got := ArToWinston(tc.ar); got != tc.winston {
			t.Errorf("ArToWinston(%q) = %q, want %q", tc.ar, got, tc.winston)
		}
	}
}

func TestArWinstonRoundTrip(t *testing.T) {
	for _, ar := range []string{"1", "0.1", "123.456789012345"} {
		winston := ArToWinston(ar)
		back := WinstonToAR(winston)
		// WinstonToAR always emits exactly 12 fractional digits, so compare
		// the re-converted winston value rather than the string.
		if ArToWinston(back) != winston {
			t.Errorf("round trip AR(%q) -> winston(%q) -> AR(%q) -> winston(%q) is not stable",
				ar, winston, back, ArToWinston(back))
		}
	}
}
