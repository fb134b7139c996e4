// Package sats provides formatting and conversion helpers for the
// simulated currency. 100,000,000 sats make one coin.
package sats

import (
	"fmt"
	"math"
	"strconv"
)

const PerBTC = 100_000_000

// Format renders an amount with thousands separators, e.g. "1,234 sats".
func Format(sats int64) string {
	return group(sats) + " sats"
}

// FormatBTC renders an amount as a fixed 8-decimal BTC string.
func FormatBTC(sats int64) string {
	return fmt.Sprintf("%.8f BTC", ToBTC(sats))
}

// ToBTC converts sats to BTC.
func ToBTC(sats int64) float64 {
	return float64(sats) / PerBTC
}

// FromBTC converts BTC to sats, rounding to the nearest sat.
func FromBTC(btc float64) int64 {
	return int64(math.Round(btc * PerBTC))
}

// Add returns the sum of two amounts.
func Add(a, b int64) int64 {
	return a + b
}

// Subtract returns a minus b.
func Subtract(a, b int64) int64 {
	return a - b
}

func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
