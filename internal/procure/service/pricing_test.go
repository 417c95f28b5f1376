package service

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.5, 1.5},
		// 2.675*100 lands at 267.50000000000006 in float64, so this rounds up
		{2.675, 2.68},
		{100.123, 100.12},
		{-2.5, -2.5},
		{1234.567, 1234.57},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestLineTotal verifies discount is applied before GST: 100 x 10 with 10%
// discount gives a 900 base, and 9% CGST + 9% SGST on that base gives 1062.
func TestLineTotal(t *testing.T) {
	cases := []struct {
		name                                       string
		unitPrice, qty, discount, cgst, sgst, want float64
	}{
		{"no discount no tax", 100, 10, 0, 0, 0, 1000},
		{"discount before gst", 100, 10, 10, 9, 9, 1062},
		{"tax only", 50, 2, 0, 9, 9, 118},
		{"discount only", 200, 5, 25, 0, 0, 750},
		{"full discount", 100, 10, 100, 9, 9, 0},
		{"gst on whole units", 12.5, 4, 0, 5, 5, 55},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := LineTotal(c.unitPrice, c.qty, c.discount, c.cgst, c.sgst)
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("LineTotal(%v, %v, %v, %v, %v) = %v, want %v",
					c.unitPrice, c.qty, c.discount, c.cgst, c.sgst, got, c.want)
			}
		})
	}
}

func TestValidPercent(t *testing.T) {
	for _, p := range []float64{0, 50, 100} {
		if !validPercent(p) {
			t.Errorf("validPercent(%v) = false, want true", p)
		}
	}
	for _, p := range []float64{-0.01, 100.01, 200} {
		if validPercent(p) {
			t.Errorf("validPercent(%v) = true, want false", p)
		}
	}
}
