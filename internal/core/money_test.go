package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"-3.10", "-3.1", true},
		{"0", "0", true},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParsePositiveMoney(t *testing.T) {
	for _, in := range []string{"0", "-1", "-0.01"} {
		if _, err := ParsePositiveMoney(in); err == nil {
			t.Fatalf("%q expected error", in)
		}
	}
	if m, err := ParsePositiveMoney("12,34"); err != nil || m.String() != "12.34" {
		t.Fatalf("expected 12.34, got %s (err=%v)", m, err)
	}
}

func TestMoneyArithmeticIsExact(t *testing.T) {
	// A classic float trap: 0.1 + 0.2 must be exactly 0.3.
	sum := MustMoney("0.1").Add(MustMoney("0.2"))
	if sum.Cmp(MustMoney("0.3")) != 0 {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3", sum)
	}

	// No drift over many additions.
	total := ZeroMoney
	for i := 0; i < 1000; i++ {
		total = total.Add(MustMoney("0.01"))
	}
	if total.Cmp(MustMoney("10")) != 0 {
		t.Fatalf("1000 * 0.01 = %s, want 10", total)
	}
}

func TestMoneyRound2(t *testing.T) {
	cases := []struct{ in, out string }{
		{"1.005", "1.01"}, // half-up
		{"1.004", "1"},
		{"1.2", "1.2"},
		{"-1.005", "-1.01"},
	}
	for _, tc := range cases {
		if got := MustMoney(tc.in).Round2(); got.String() != tc.out {
			t.Fatalf("Round2(%s) = %s, want %s", tc.in, got, tc.out)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := MustMoney("12.5").MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "12.50" {
		t.Fatalf("marshal = %s, want 12.50", b)
	}

	var m Money
	if err := m.UnmarshalJSON([]byte(`"42.10"`)); err != nil {
		t.Fatalf("unmarshal quoted: %v", err)
	}
	if m.Cmp(MustMoney("42.1")) != 0 {
		t.Fatalf("unmarshal quoted = %s", m)
	}
	if err := m.UnmarshalJSON([]byte(`7.25`)); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if m.Cmp(MustMoney("7.25")) != 0 {
		t.Fatalf("unmarshal number = %s", m)
	}
}
