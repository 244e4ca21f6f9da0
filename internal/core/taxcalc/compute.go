package taxcalc

import (
	"fmt"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/utils/rounding"
	"github.com/shopspring/decimal"
)

// Input carries everything the fold needs for one document line. Taxes must
// already be resolved (flat, ordered); Rate converts a document-currency
// amount into company currency by division and is one when the document is
// already in company currency.
type Input struct {
	Taxes    []domain.TaxDefinition
	IsRefund bool

	// AmountCurrency is the signed line amount in document currency. When
	// any applied tax is price-included it is the tax-inclusive amount.
	AmountCurrency decimal.Decimal
	Quantity       decimal.Decimal

	Rate              decimal.Decimal
	CurrencyPrecision int32
	CompanyPrecision  int32
	RoundingMethod    domain.RoundingMethod
}

// ComputedTax is one tax applied once to one line, before repartition.
type ComputedTax struct {
	Tax domain.TaxDefinition

	BaseAmountCurrency decimal.Decimal
	BaseAmount         decimal.Decimal
	TaxAmountCurrency  decimal.Decimal
	TaxAmount          decimal.Decimal

	// RemainingTaxIDs lists the taxes applied after this one, recorded only
	// when this tax feeds its own amount into their base. Detail rows that
	// share a repartition line but differ here must never merge.
	RemainingTaxIDs []string
}

// Result is the outcome of applying a line's taxes.
type Result struct {
	TotalExcludedCurrency decimal.Decimal
	TotalIncludedCurrency decimal.Decimal
	TotalExcluded         decimal.Decimal
	TotalIncluded         decimal.Decimal

	BaseTagIDs []string
	Taxes      []ComputedTax
}

// Compute runs the left-to-right fold over a line's resolved taxes.
//
// A price-included tax unwinds its amount out of the running base; a
// price-excluded tax adds on top. include_base_amount grows the base the
// following taxes see. Under round_per_line every amount is rounded at the
// currency precision as produced; under round_globally the fold keeps five
// extra digits and only document totals are rounded.
func Compute(in Input) (Result, error) {
	if in.Rate.IsZero() {
		return Result{}, fmt.Errorf("%w: conversion rate cannot be zero", apperrors.ErrConfiguration)
	}

	curPrec := computePrecision(in.CurrencyPrecision, in.RoundingMethod)
	comPrec := computePrecision(in.CompanyPrecision, in.RoundingMethod)

	base := in.AmountCurrency
	totalIncludedDelta := decimal.Zero // sum of price-excluded tax amounts
	totalExcludedDelta := decimal.Zero // sum of price-included tax amounts

	computed := make([]ComputedTax, 0, len(in.Taxes))
	for i, tax := range in.Taxes {
		if tax.AmountType == domain.AmountTypeGroup {
			return Result{}, fmt.Errorf("%w: group tax %q reached the computation fold unresolved", apperrors.ErrConfiguration, tax.Name)
		}

		taxAmt, nextBase, err := applyOne(tax, base, in.Quantity, curPrec)
		if err != nil {
			return Result{}, err
		}
		taxAmt = rounding.Round(taxAmt, curPrec)

		if tax.PriceInclude {
			totalExcludedDelta = totalExcludedDelta.Add(taxAmt)
		} else {
			totalIncludedDelta = totalIncludedDelta.Add(taxAmt)
		}

		ct := ComputedTax{
			Tax:                tax,
			BaseAmountCurrency: rounding.Round(baseFor(tax, base, taxAmt), curPrec),
			TaxAmountCurrency:  taxAmt,
		}
		ct.BaseAmount = rounding.Round(ct.BaseAmountCurrency.Div(in.Rate), comPrec)
		ct.TaxAmount = rounding.Round(ct.TaxAmountCurrency.Div(in.Rate), comPrec)

		if tax.IncludeBaseAmount {
			nextBase = nextBase.Add(taxAmt)
			for _, after := range in.Taxes[i+1:] {
				ct.RemainingTaxIDs = append(ct.RemainingTaxIDs, after.TaxID)
			}
		}
		computed = append(computed, ct)
		base = nextBase
	}

	res := Result{
		TotalExcludedCurrency: rounding.Round(in.AmountCurrency.Sub(totalExcludedDelta), in.CurrencyPrecision),
		TotalIncludedCurrency: rounding.Round(in.AmountCurrency.Add(totalIncludedDelta), in.CurrencyPrecision),
		Taxes:                 computed,
	}
	res.TotalExcluded = rounding.Round(res.TotalExcludedCurrency.Div(in.Rate), in.CompanyPrecision)
	res.TotalIncluded = rounding.Round(res.TotalIncludedCurrency.Div(in.Rate), in.CompanyPrecision)

	seenTag := make(map[string]struct{})
	for _, t := range in.Taxes {
		for _, tag := range t.BaseTagIDsFor(in.IsRefund) {
			if _, ok := seenTag[tag]; ok {
				continue
			}
			seenTag[tag] = struct{}{}
			res.BaseTagIDs = append(res.BaseTagIDs, tag)
		}
	}
	return res, nil
}

// applyOne returns the tax amount for one tax on the running base, plus the
// base the next tax starts from (before any include_base_amount growth).
// Both values come back unrounded.
func applyOne(tax domain.TaxDefinition, base, quantity decimal.Decimal, prec int32) (taxAmt, nextBase decimal.Decimal, err error) {
	rate := tax.Amount.Div(hundred)

	switch tax.AmountType {
	case domain.AmountTypePercent:
		if tax.PriceInclude {
			recovered := base.Div(decimal.NewFromInt(1).Add(rate))
			return base.Sub(recovered), recovered, nil
		}
		return base.Mul(rate), base, nil

	case domain.AmountTypeDivision:
		if tax.PriceInclude {
			amt := base.Mul(rate)
			return amt, base.Sub(amt), nil
		}
		divisor := hundred.Sub(tax.Amount)
		if divisor.IsZero() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: division tax %q with amount 100 has no defined result", apperrors.ErrConfiguration, tax.Name)
		}
		return base.Mul(tax.Amount).Div(divisor), base, nil

	case domain.AmountTypeFixed:
		amt := tax.Amount.Mul(quantity.Abs())
		// The fixed amount follows the sign of the base, so credit lines
		// accrue negative tax. A zero base falls back to the quantity sign.
		if base.IsNegative() || (base.IsZero() && quantity.IsNegative()) {
			amt = amt.Neg()
		}
		if tax.PriceInclude {
			return amt, base.Sub(amt), nil
		}
		return amt, base, nil

	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: tax %q has unknown amount type %q", apperrors.ErrConfiguration, tax.Name, tax.AmountType)
	}
}

// baseFor reports the base a tax was assessed on. For price-included taxes
// that is the running base with this tax's own amount removed.
func baseFor(tax domain.TaxDefinition, runningBase, taxAmt decimal.Decimal) decimal.Decimal {
	if tax.PriceInclude {
		return runningBase.Sub(taxAmt)
	}
	return runningBase
}

func computePrecision(p int32, method domain.RoundingMethod) int32 {
	if method == domain.RoundGlobally {
		return p + rounding.ExtraPrecision
	}
	return p
}
