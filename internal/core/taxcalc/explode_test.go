package taxcalc_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/core/taxcalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func explodeInput() taxcalc.ExplodeInput {
	return taxcalc.ExplodeInput{
		DocumentID:        "doc-1",
		BaseLineID:        "line-1",
		CurrencyPrecision: 2,
		CompanyPrecision:  2,
		RoundingMethod:    domain.RoundPerLine,
		NewID:             sequentialIDs("det"),
	}
}

func TestExplode_SplitsByFactor(t *testing.T) {
	tax := newTax("vat20", domain.AmountTypePercent, "20", 1)
	tax.InvoiceRepartitionLines = []domain.RepartitionLine{
		{RepartitionLineID: "rl-base", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100")},
		{RepartitionLineID: "rl-main", RepartitionType: domain.RepartitionTax, FactorPercent: dec("40"), TagIDs: []string{"grid-41"}},
		{RepartitionLineID: "rl-side", RepartitionType: domain.RepartitionTax, FactorPercent: dec("60"), TagIDs: []string{"grid-42"}},
	}

	ct := taxcalc.ComputedTax{
		Tax:                tax,
		BaseAmountCurrency: dec("200"),
		BaseAmount:         dec("200"),
		TaxAmountCurrency:  dec("40"),
		TaxAmount:          dec("40"),
	}

	details := taxcalc.Explode(explodeInput(), ct)
	require.Len(t, details, 2)

	assert.Equal(t, "rl-main", details[0].RepartitionLineID)
	assert.True(t, details[0].TaxAmountCurrency.Equal(dec("16")), "got %s", details[0].TaxAmountCurrency)
	assert.Equal(t, []string{"grid-41"}, details[0].TagIDs)

	assert.Equal(t, "rl-side", details[1].RepartitionLineID)
	assert.True(t, details[1].TaxAmountCurrency.Equal(dec("24")), "got %s", details[1].TaxAmountCurrency)

	// Both rows report the full base the tax was assessed on.
	assert.True(t, details[0].BaseAmountCurrency.Equal(dec("200")))
	assert.True(t, details[1].BaseAmountCurrency.Equal(dec("200")))
}

func TestExplode_RemainderSumsExactly(t *testing.T) {
	tax := newTax("vat", domain.AmountTypePercent, "10", 1)
	tax.InvoiceRepartitionLines = []domain.RepartitionLine{
		{RepartitionLineID: "rl-base", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100")},
		{RepartitionLineID: "rl-a", RepartitionType: domain.RepartitionTax, FactorPercent: dec("50")},
		{RepartitionLineID: "rl-b", RepartitionType: domain.RepartitionTax, FactorPercent: dec("50")},
	}

	ct := taxcalc.ComputedTax{
		Tax:               tax,
		TaxAmountCurrency: dec("0.01"),
		TaxAmount:         dec("0.01"),
	}

	details := taxcalc.Explode(explodeInput(), ct)
	require.Len(t, details, 2)

	sum := details[0].TaxAmountCurrency.Add(details[1].TaxAmountCurrency)
	assert.True(t, sum.Equal(dec("0.01")), "shares must reconstruct the tax amount, got %s", sum)
}

func TestExplode_RefundUsesRefundLines(t *testing.T) {
	tax := newTax("vat10", domain.AmountTypePercent, "10", 1)

	in := explodeInput()
	in.IsRefund = true

	ct := taxcalc.ComputedTax{Tax: tax, TaxAmountCurrency: dec("10"), TaxAmount: dec("10")}

	details := taxcalc.Explode(in, ct)
	require.Len(t, details, 1)
	assert.Equal(t, "vat10-ref-tax", details[0].RepartitionLineID)
}

func TestAggregate_MergesMatchingRows(t *testing.T) {
	details := []domain.TaxDetail{
		{DetailID: "d1", BaseLineID: "line-1", RepartitionLineID: "rl-1",
			BaseAmount: dec("100"), BaseAmountCurrency: dec("100"),
			TaxAmount: dec("10"), TaxAmountCurrency: dec("10")},
		{DetailID: "d2", BaseLineID: "line-2", RepartitionLineID: "rl-1",
			BaseAmount: dec("50"), BaseAmountCurrency: dec("50"),
			TaxAmount: dec("5"), TaxAmountCurrency: dec("5")},
	}

	out := taxcalc.Aggregate(details)
	require.Len(t, out, 1)
	assert.True(t, out[0].BaseAmountCurrency.Equal(dec("150")))
	assert.True(t, out[0].TaxAmountCurrency.Equal(dec("15")))
	assert.Empty(t, out[0].BaseLineID, "merged rows spanning lines keep no base line reference")
}

func TestAggregate_RemainingTaxesKeepRowsApart(t *testing.T) {
	details := []domain.TaxDetail{
		{DetailID: "d1", BaseLineID: "line-1", RepartitionLineID: "rl-1",
			TaxAmountCurrency: dec("10"), RemainingTaxIDs: []string{"vat5"}},
		{DetailID: "d2", BaseLineID: "line-2", RepartitionLineID: "rl-1",
			TaxAmountCurrency: dec("5")},
	}

	out := taxcalc.Aggregate(details)
	require.Len(t, out, 2)
	assert.True(t, out[0].TaxAmountCurrency.Equal(dec("10")))
	assert.True(t, out[1].TaxAmountCurrency.Equal(dec("5")))
}
