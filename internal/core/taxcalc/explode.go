package taxcalc

import (
	"sort"
	"strings"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/utils/rounding"
	"github.com/shopspring/decimal"
)

// ExplodeInput names the context a computed tax is exploded in.
type ExplodeInput struct {
	DocumentID string
	BaseLineID string
	IsRefund   bool

	CurrencyPrecision int32
	CompanyPrecision  int32
	RoundingMethod    domain.RoundingMethod

	// NewID mints detail row identifiers.
	NewID func() string
}

// Explode splits one computed tax across its tax-type repartition lines.
// Each line receives factor_percent/100 of the amounts; any residue left by
// rounding the shares is pushed back one smallest unit at a time so the rows
// always sum to the computed amount exactly.
func Explode(in ExplodeInput, ct ComputedTax) []domain.TaxDetail {
	lines := ct.Tax.TaxRepartitionLinesFor(in.IsRefund)
	if len(lines) == 0 {
		return nil
	}

	curPrec := computePrecision(in.CurrencyPrecision, in.RoundingMethod)
	comPrec := computePrecision(in.CompanyPrecision, in.RoundingMethod)

	factors := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		factors[i] = l.Factor()
	}
	sharesCurrency := rounding.Shares(ct.TaxAmountCurrency, factors, curPrec)
	shares := rounding.Shares(ct.TaxAmount, factors, comPrec)

	details := make([]domain.TaxDetail, 0, len(lines))
	for i, l := range lines {
		d := domain.TaxDetail{
			DetailID:           in.NewID(),
			DocumentID:         in.DocumentID,
			BaseLineID:         in.BaseLineID,
			TaxID:              ct.Tax.TaxID,
			RepartitionLineID:  l.RepartitionLineID,
			BaseAmount:         ct.BaseAmount,
			BaseAmountCurrency: ct.BaseAmountCurrency,
			TaxAmount:          shares[i],
			TaxAmountCurrency:  sharesCurrency[i],
			RemainingTaxIDs:    append([]string(nil), ct.RemainingTaxIDs...),
			TagIDs:             append([]string(nil), l.TagIDs...),
		}
		details = append(details, d)
	}
	return details
}

// Aggregate merges detail rows that carry the same repartition line and the
// same set of remaining taxes, summing their amounts. Rows produced by
// different base lines collapse together; the merged row keeps no single
// base line reference. Input order decides output order.
func Aggregate(details []domain.TaxDetail) []domain.TaxDetail {
	indexByKey := make(map[string]int, len(details))
	out := make([]domain.TaxDetail, 0, len(details))

	for _, d := range details {
		key := aggregationKey(d)
		idx, ok := indexByKey[key]
		if !ok {
			out = append(out, d)
			indexByKey[key] = len(out) - 1
			continue
		}
		merged := &out[idx]
		merged.BaseAmount = merged.BaseAmount.Add(d.BaseAmount)
		merged.BaseAmountCurrency = merged.BaseAmountCurrency.Add(d.BaseAmountCurrency)
		merged.TaxAmount = merged.TaxAmount.Add(d.TaxAmount)
		merged.TaxAmountCurrency = merged.TaxAmountCurrency.Add(d.TaxAmountCurrency)
		if merged.BaseLineID != d.BaseLineID {
			merged.BaseLineID = ""
		}
	}
	return out
}

func aggregationKey(d domain.TaxDetail) string {
	remaining := append([]string(nil), d.RemainingTaxIDs...)
	sort.Strings(remaining)
	return d.RepartitionLineID + "|" + strings.Join(remaining, ",")
}
