package rounding

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestRound_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in        string
		precision int32
		want      string
	}{
		{"0.015", 2, "0.02"},
		{"-0.015", 2, "-0.02"},
		{"0.014", 2, "0.01"},
		{"61.728", 2, "61.73"},
		{"1.005", 2, "1.01"},
		{"2.5", 0, "3"},
	}
	for _, tt := range tests {
		got := Round(d(tt.in), tt.precision)
		assert.True(t, got.Equal(d(tt.want)), "Round(%s, %d) = %s, want %s", tt.in, tt.precision, got, tt.want)
	}
}

func TestSmallestUnit(t *testing.T) {
	assert.True(t, SmallestUnit(2).Equal(d("0.01")))
	assert.True(t, SmallestUnit(0).Equal(d("1")))
	assert.True(t, SmallestUnit(3).Equal(d("0.001")))
}

func TestDistribute_PushesRemainderBack(t *testing.T) {
	// Each half of 0.01 rounds up to 0.01, overshooting by one cent; the
	// correction lands on the first part.
	parts := []decimal.Decimal{d("0.005"), d("0.005")}

	out := Distribute(parts, d("0.01"), 2)
	require.Len(t, out, 2)
	assert.True(t, out[0].Equal(d("0")), "got %s", out[0])
	assert.True(t, out[1].Equal(d("0.01")), "got %s", out[1])
}

func TestDistribute_NoRemainder(t *testing.T) {
	parts := []decimal.Decimal{d("1.25"), d("2.75")}

	out := Distribute(parts, d("4"), 2)
	assert.True(t, out[0].Equal(d("1.25")))
	assert.True(t, out[1].Equal(d("2.75")))
}

func TestDistribute_AlternatingSeries(t *testing.T) {
	// Seven lines of 0.005 against a total of 0.035: the rounded total is
	// 0.04 but the naive per-part rounding gives 0.07, so three parts get
	// pulled down a cent each.
	parts := make([]decimal.Decimal, 7)
	for i := range parts {
		parts[i] = d("0.005")
	}

	out := Distribute(parts, d("0.035"), 2)

	sum := decimal.Zero
	for _, p := range out {
		sum = sum.Add(p)
	}
	assert.True(t, sum.Equal(d("0.04")), "parts must sum to the rounded total, got %s", sum)
}

func TestShares_FactorSplit(t *testing.T) {
	out := Shares(d("40"), []decimal.Decimal{d("0.4"), d("0.6")}, 2)
	require.Len(t, out, 2)
	assert.True(t, out[0].Equal(d("16")))
	assert.True(t, out[1].Equal(d("24")))
}

func TestShares_SumReconstructsTotal(t *testing.T) {
	out := Shares(d("0.01"), []decimal.Decimal{d("0.5"), d("0.5")}, 2)

	sum := out[0].Add(out[1])
	assert.True(t, sum.Equal(d("0.01")), "got %s", sum)
}
