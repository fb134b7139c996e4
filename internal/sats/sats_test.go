package sats

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 sats"},
		{5, "5 sats"},
		{999, "999 sats"},
		{1000, "1,000 sats"},
		{1234567, "1,234,567 sats"},
		{100_000_000, "100,000,000 sats"},
		{-2500, "-2,500 sats"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatBTC(t *testing.T) {
	if got := FormatBTC(150_000_000); got != "1.50000000 BTC" {
		t.Errorf("FormatBTC = %q, want 1.50000000 BTC", got)
	}
	if got := FormatBTC(1); got != "0.00000001 BTC" {
		t.Errorf("FormatBTC = %q, want 0.00000001 BTC", got)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 12345, 100_000_000, 2_100_000_000_000} {
		if got := FromBTC(ToBTC(n)); got != n {
			t.Errorf("FromBTC(ToBTC(%d)) = %d", n, got)
		}
	}
}

func TestFromBTCRounds(t *testing.T) {
	if got := FromBTC(0.000000014); got != 1 {
		t.Errorf("FromBTC = %d, want 1", got)
	}
	if got := FromBTC(0.000000016); got != 2 {
		t.Errorf("FromBTC = %d, want 2", got)
	}
}
