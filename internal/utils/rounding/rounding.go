// Package rounding implements the money rounding policies used by the tax
// engine: independent half-up rounding at a currency precision, and the
// "round globally" strategy where only the total is rounded and the remainder
// is pushed back over the components so they reconstruct the total exactly.
package rounding

import (
	"github.com/shopspring/decimal"
)

// ExtraPrecision is the number of extra decimal places kept on intermediate
// amounts when a company rounds globally. Rounding each per-line amount at
// currency precision + 5 is equivalent, within tolerance, to rounding once
// after summing the unrounded amounts.
const ExtraPrecision = 5

// Round rounds d half away from zero at the given number of decimal places
// (0.015 → 0.02, -0.015 → -0.02).
func Round(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Round(precision)
}

// SmallestUnit returns the smallest representable amount at the given
// precision (0.01 for precision 2).
func SmallestUnit(precision int32) decimal.Decimal {
	return decimal.New(1, -precision)
}

// Distribute rounds each part at the given precision and then spreads the
// remainder against the rounded total one smallest unit at a time, so that
// the returned parts sum exactly to Round(total, precision). The relative
// order of parts is preserved; earlier parts absorb the correction first.
//
// Distribute is used both to split a tax amount across repartition shares and
// to reconcile per-line amounts against a globally rounded total.
func Distribute(parts []decimal.Decimal, total decimal.Decimal, precision int32) []decimal.Decimal {
	rounded := make([]decimal.Decimal, len(parts))
	sum := decimal.Zero
	for i, p := range parts {
		rounded[i] = Round(p, precision)
		sum = sum.Add(rounded[i])
	}

	target := Round(total, precision)
	remainder := target.Sub(sum)
	if remainder.IsZero() || len(parts) == 0 {
		return rounded
	}

	unit := SmallestUnit(precision)
	if remainder.IsNegative() {
		unit = unit.Neg()
	}
	steps := remainder.Div(unit).IntPart()
	for i := int64(0); i < steps; i++ {
		idx := int(i) % len(rounded)
		rounded[idx] = rounded[idx].Add(unit)
	}
	return rounded
}

// Shares splits total into len(factors) parts, one per factor ratio, rounded
// at the given precision with the rounding remainder distributed so the parts
// sum exactly to Round(total, precision). Factors are ratios (0.4, 0.6), not
// percentages.
func Shares(total decimal.Decimal, factors []decimal.Decimal, precision int32) []decimal.Decimal {
	parts := make([]decimal.Decimal, len(factors))
	for i, f := range factors {
		parts[i] = total.Mul(f)
	}
	return Distribute(parts, total, precision)
}
