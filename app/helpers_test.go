package app

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+1 (650) 555-0100", "16505550100"},
		{"16505550100", "16505550100"},
		{"650.555.0100", "6505550100"},
		{"", ""},
		{"ext. 12", "12"},
	}
	for _, c := range cases {
		if got := normalizePhone(c.in); got != c.want {
			t.Errorf("normalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	if v, err := parsePositiveInt(" 650 "); err != nil || v != 650 {
		t.Fatalf("parsePositiveInt(\" 650 \") = %d, %v", v, err)
	}
	for _, bad := range []string{"", "abc", "0", "-3", "6.5"} {
		if _, err := parsePositiveInt(bad); err == nil {
			t.Errorf("parsePositiveInt(%q) should fail", bad)
		}
	}
}
