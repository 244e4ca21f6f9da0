package taxcalc_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/core/taxcalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// newTax builds a tax with the usual single-destination repartition: one
// base line at 100% and one tax line at 100%, mirrored for refunds.
func newTax(id string, amountType domain.AmountType, amount string, seq int) domain.TaxDefinition {
	invoice := []domain.RepartitionLine{
		{RepartitionLineID: id + "-inv-base", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100"), Sequence: 1},
		{RepartitionLineID: id + "-inv-tax", RepartitionType: domain.RepartitionTax, FactorPercent: dec("100"), Sequence: 2},
	}
	refund := []domain.RepartitionLine{
		{RepartitionLineID: id + "-ref-base", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100"), Sequence: 1},
		{RepartitionLineID: id + "-ref-tax", RepartitionType: domain.RepartitionTax, FactorPercent: dec("100"), Sequence: 2},
	}
	return domain.TaxDefinition{
		TaxID:                   id,
		Name:                    id,
		AmountType:              amountType,
		Amount:                  dec(amount),
		Sequence:                seq,
		IsActive:                true,
		InvoiceRepartitionLines: invoice,
		RefundRepartitionLines:  refund,
	}
}

func baseInput(taxes ...domain.TaxDefinition) taxcalc.Input {
	return taxcalc.Input{
		Taxes:             taxes,
		AmountCurrency:    dec("100"),
		Quantity:          dec("1"),
		Rate:              dec("1"),
		CurrencyPrecision: 2,
		CompanyPrecision:  2,
		RoundingMethod:    domain.RoundPerLine,
	}
}

func TestCompute_PercentExcluded(t *testing.T) {
	in := baseInput(newTax("vat15", domain.AmountTypePercent, "15", 1))

	res, err := taxcalc.Compute(in)
	require.NoError(t, err)

	require.Len(t, res.Taxes, 1)
	assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec("15")), "got %s", res.Taxes[0].TaxAmountCurrency)
	assert.True(t, res.Taxes[0].BaseAmountCurrency.Equal(dec("100")))
	assert.True(t, res.TotalExcludedCurrency.Equal(dec("100")))
	assert.True(t, res.TotalIncludedCurrency.Equal(dec("115")))
}

func TestCompute_PercentPriceIncluded(t *testing.T) {
	tax := newTax("vat10", domain.AmountTypePercent, "10", 1)
	tax.PriceInclude = true

	in := baseInput(tax)
	in.AmountCurrency = dec("110")

	res, err := taxcalc.Compute(in)
	require.NoError(t, err)

	require.Len(t, res.Taxes, 1)
	assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec("10")), "got %s", res.Taxes[0].TaxAmountCurrency)
	assert.True(t, res.Taxes[0].BaseAmountCurrency.Equal(dec("100")), "got %s", res.Taxes[0].BaseAmountCurrency)
	assert.True(t, res.TotalExcludedCurrency.Equal(dec("100")))
	assert.True(t, res.TotalIncludedCurrency.Equal(dec("110")))
}

func TestCompute_IncludeBaseAmountCascade(t *testing.T) {
	first := newTax("vat10", domain.AmountTypePercent, "10", 1)
	first.PriceInclude = true
	first.IncludeBaseAmount = true
	second := newTax("levy15", domain.AmountTypeFixed, "15", 2)

	in := baseInput(first, second)
	in.AmountCurrency = dec("110")

	res, err := taxcalc.Compute(in)
	require.NoError(t, err)
	require.Len(t, res.Taxes, 2)

	assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec("10")))
	assert.True(t, res.Taxes[0].BaseAmountCurrency.Equal(dec("100")))
	assert.Equal(t, []string{"levy15"}, res.Taxes[0].RemainingTaxIDs)

	// The fixed levy sees the base grown by the first tax's amount.
	assert.True(t, res.Taxes[1].BaseAmountCurrency.Equal(dec("110")), "got %s", res.Taxes[1].BaseAmountCurrency)
	assert.True(t, res.Taxes[1].TaxAmountCurrency.Equal(dec("15")))
	assert.Nil(t, res.Taxes[1].RemainingTaxIDs)

	assert.True(t, res.TotalExcludedCurrency.Equal(dec("100")))
	assert.True(t, res.TotalIncludedCurrency.Equal(dec("125")), "got %s", res.TotalIncludedCurrency)
}

func TestCompute_DivisionExcluded(t *testing.T) {
	in := baseInput(newTax("wht20", domain.AmountTypeDivision, "20", 1))
	in.AmountCurrency = dec("80")

	res, err := taxcalc.Compute(in)
	require.NoError(t, err)

	require.Len(t, res.Taxes, 1)
	assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec("20")), "got %s", res.Taxes[0].TaxAmountCurrency)
	assert.True(t, res.TotalIncludedCurrency.Equal(dec("100")))
}

func TestCompute_DivisionPriceIncluded(t *testing.T) {
	tax := newTax("wht20", domain.AmountTypeDivision, "20", 1)
	tax.PriceInclude = true

	in := baseInput(tax)

	res, err := taxcalc.Compute(in)
	require.NoError(t, err)

	require.Len(t, res.Taxes, 1)
	assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec("20")))
	assert.True(t, res.Taxes[0].BaseAmountCurrency.Equal(dec("80")))
	assert.True(t, res.TotalExcludedCurrency.Equal(dec("80")))
	assert.True(t, res.TotalIncludedCurrency.Equal(dec("100")))
}

func TestCompute_FixedFollowsBaseSign(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		quantity string
		want     string
	}{
		{name: "positive base", amount: "20", quantity: "2", want: "0.84"},
		{name: "negative base", amount: "-20", quantity: "2", want: "-0.84"},
		{name: "negative quantity", amount: "-20", quantity: "-2", want: "-0.84"},
		{name: "zero base negative quantity", amount: "0", quantity: "-2", want: "-0.84"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput(newTax("stamp", domain.AmountTypeFixed, "0.42", 1))
			in.AmountCurrency = dec(tt.amount)
			in.Quantity = dec(tt.quantity)

			res, err := taxcalc.Compute(in)
			require.NoError(t, err)
			require.Len(t, res.Taxes, 1)
			assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec(tt.want)),
				"got %s want %s", res.Taxes[0].TaxAmountCurrency, tt.want)
		})
	}
}

func TestCompute_RoundingMethodDivergence(t *testing.T) {
	// -0.15 at 10% yields -0.015, which the two policies treat differently:
	// per-line rounding pushes it to -0.02; global rounding keeps it intact
	// until the document totals are summed.
	tax := newTax("vat10", domain.AmountTypePercent, "10", 1)

	perLine := baseInput(tax)
	perLine.AmountCurrency = dec("-0.15")

	res, err := taxcalc.Compute(perLine)
	require.NoError(t, err)
	assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec("-0.02")), "got %s", res.Taxes[0].TaxAmountCurrency)

	global := perLine
	global.RoundingMethod = domain.RoundGlobally

	res, err = taxcalc.Compute(global)
	require.NoError(t, err)
	assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec("-0.015")), "got %s", res.Taxes[0].TaxAmountCurrency)
}

func TestCompute_CompanyCurrencyConversion(t *testing.T) {
	in := baseInput(newTax("vat10", domain.AmountTypePercent, "10", 1))
	in.AmountCurrency = dec("123.456")
	in.Rate = dec("2")
	in.CurrencyPrecision = 3

	res, err := taxcalc.Compute(in)
	require.NoError(t, err)

	require.Len(t, res.Taxes, 1)
	// 123.456 / 2 = 61.728, rounded at company precision.
	assert.True(t, res.Taxes[0].BaseAmount.Equal(dec("61.73")), "got %s", res.Taxes[0].BaseAmount)
	assert.True(t, res.TotalExcluded.Equal(dec("61.73")))
}

func TestCompute_ZeroRateRejected(t *testing.T) {
	in := baseInput(newTax("vat10", domain.AmountTypePercent, "10", 1))
	in.Rate = decimal.Zero

	_, err := taxcalc.Compute(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestCompute_Idempotent(t *testing.T) {
	first := newTax("vat10", domain.AmountTypePercent, "10", 1)
	first.IncludeBaseAmount = true
	second := newTax("vat5", domain.AmountTypePercent, "5", 2)

	in := baseInput(first, second)

	resA, err := taxcalc.Compute(in)
	require.NoError(t, err)
	resB, err := taxcalc.Compute(in)
	require.NoError(t, err)

	require.Len(t, resB.Taxes, len(resA.Taxes))
	for i := range resA.Taxes {
		assert.True(t, resA.Taxes[i].TaxAmountCurrency.Equal(resB.Taxes[i].TaxAmountCurrency))
		assert.True(t, resA.Taxes[i].BaseAmountCurrency.Equal(resB.Taxes[i].BaseAmountCurrency))
	}
	assert.True(t, resA.TotalIncludedCurrency.Equal(resB.TotalIncludedCurrency))
}

func TestCompute_PercentChain(t *testing.T) {
	// 10% grows the base for the 5% that follows; the 5% leaves it alone.
	first := newTax("vat10", domain.AmountTypePercent, "10", 1)
	first.IncludeBaseAmount = true
	second := newTax("vat5", domain.AmountTypePercent, "5", 2)

	in := baseInput(first, second)

	res, err := taxcalc.Compute(in)
	require.NoError(t, err)
	require.Len(t, res.Taxes, 2)

	assert.True(t, res.Taxes[0].TaxAmountCurrency.Equal(dec("10")))
	assert.True(t, res.Taxes[1].BaseAmountCurrency.Equal(dec("110")))
	assert.True(t, res.Taxes[1].TaxAmountCurrency.Equal(dec("5.5")), "got %s", res.Taxes[1].TaxAmountCurrency)
	assert.True(t, res.TotalIncludedCurrency.Equal(dec("115.5")))
}

func TestResolve_OrdersBySequence(t *testing.T) {
	a := newTax("a", domain.AmountTypePercent, "10", 20)
	b := newTax("b", domain.AmountTypePercent, "5", 10)

	flat, err := taxcalc.Resolve([]domain.TaxDefinition{a, b})
	require.NoError(t, err)
	require.Len(t, flat, 2)
	assert.Equal(t, "b", flat[0].TaxID)
	assert.Equal(t, "a", flat[1].TaxID)
}

func TestResolve_FlattensGroups(t *testing.T) {
	childA := newTax("child-a", domain.AmountTypePercent, "10", 2)
	childB := newTax("child-b", domain.AmountTypePercent, "5", 1)
	group := domain.TaxDefinition{
		TaxID:      "grp",
		Name:       "grp",
		AmountType: domain.AmountTypeGroup,
		Sequence:   1,
		Children:   []domain.TaxDefinition{childA, childB},
	}
	trailing := newTax("after", domain.AmountTypePercent, "2", 5)

	flat, err := taxcalc.Resolve([]domain.TaxDefinition{group, trailing})
	require.NoError(t, err)
	require.Len(t, flat, 3)
	assert.Equal(t, "child-b", flat[0].TaxID)
	assert.Equal(t, "child-a", flat[1].TaxID)
	assert.Equal(t, "after", flat[2].TaxID)
}

func TestResolve_RejectsNestedGroups(t *testing.T) {
	inner := domain.TaxDefinition{TaxID: "inner", Name: "inner", AmountType: domain.AmountTypeGroup,
		Children: []domain.TaxDefinition{newTax("leaf", domain.AmountTypePercent, "10", 1)}}
	outer := domain.TaxDefinition{TaxID: "outer", Name: "outer", AmountType: domain.AmountTypeGroup,
		Children: []domain.TaxDefinition{inner}}

	_, err := taxcalc.Resolve([]domain.TaxDefinition{outer})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestResolve_RejectsDirectNoneUse(t *testing.T) {
	hidden := newTax("hidden", domain.AmountTypePercent, "10", 1)
	hidden.TaxUse = domain.TaxUseNone

	_, err := taxcalc.Resolve([]domain.TaxDefinition{hidden})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestResolve_NoneUseAllowedInsideGroup(t *testing.T) {
	child := newTax("child", domain.AmountTypePercent, "10", 1)
	child.TaxUse = domain.TaxUseNone
	group := domain.TaxDefinition{
		TaxID:      "grp",
		Name:       "grp",
		AmountType: domain.AmountTypeGroup,
		TaxUse:     domain.TaxUseSale,
		Sequence:   1,
		Children:   []domain.TaxDefinition{child},
	}

	flat, err := taxcalc.Resolve([]domain.TaxDefinition{group})
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, "child", flat[0].TaxID)
}

func TestResolve_RejectsDuplicates(t *testing.T) {
	tax := newTax("dup", domain.AmountTypePercent, "10", 1)

	_, err := taxcalc.Resolve([]domain.TaxDefinition{tax, tax})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestCompute_GroupSignSymmetry(t *testing.T) {
	// The same magnitudes with flipped signs produce flipped results.
	tax := newTax("vat21", domain.AmountTypePercent, "21", 1)

	pos := baseInput(tax)
	neg := baseInput(tax)
	neg.AmountCurrency = dec("-100")

	resPos, err := taxcalc.Compute(pos)
	require.NoError(t, err)
	resNeg, err := taxcalc.Compute(neg)
	require.NoError(t, err)

	assert.True(t, resPos.Taxes[0].TaxAmountCurrency.Equal(resNeg.Taxes[0].TaxAmountCurrency.Neg()))
	assert.True(t, resPos.TotalIncludedCurrency.Equal(resNeg.TotalIncludedCurrency.Neg()))
}

func ExampleCompute() {
	tax := newTax("vat10", domain.AmountTypePercent, "10", 1)
	tax.PriceInclude = true

	in := baseInput(tax)
	in.AmountCurrency = dec("110")

	res, _ := taxcalc.Compute(in)
	fmt.Println(res.TotalExcludedCurrency, res.Taxes[0].TaxAmountCurrency)
	// Output: 100 10
}
