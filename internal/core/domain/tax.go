package domain

import (
	"github.com/shopspring/decimal"
)

// AmountType describes how a tax amount is derived from its base.
type AmountType string

const (
	// AmountTypePercent computes amount as base × amount/100.
	AmountTypePercent AmountType = "percent"
	// AmountTypeFixed is a flat amount per unit of quantity, independent of
	// the base value (its sign still follows the base).
	AmountTypeFixed AmountType = "fixed"
	// AmountTypeDivision is a percentage of the price tax included:
	// amount = base × rate / (100 − rate). A rate of 100 is rejected at
	// configuration time.
	AmountTypeDivision AmountType = "division"
	// AmountTypeGroup is a set of child taxes flattened in sequence order.
	AmountTypeGroup AmountType = "group"
)

// TaxUse restricts where a tax is selectable. A "none" tax cannot be used by
// itself but may still appear inside a group.
type TaxUse string

const (
	TaxUseSale     TaxUse = "sale"
	TaxUsePurchase TaxUse = "purchase"
	TaxUseNone     TaxUse = "none"
)

// RepartitionType says whether a repartition line splits the tax base or the
// computed tax amount.
type RepartitionType string

const (
	RepartitionBase RepartitionType = "base"
	RepartitionTax  RepartitionType = "tax"
)

// RepartitionLine is a configured split of a tax's computed amount (or its
// base) across a fixed percentage and a set of reporting tags. Tags are
// opaque identifiers consumed by external statutory reporting.
type RepartitionLine struct {
	RepartitionLineID string          `json:"repartitionLineID"` // Primary Key (e.g., UUID)
	RepartitionType   RepartitionType `json:"repartitionType"`
	FactorPercent     decimal.Decimal `json:"factorPercent"` // 0–100
	TagIDs            []string        `json:"tagIDs"`
	Sequence          int             `json:"sequence"`
}

// Factor returns the repartition factor as a ratio (factor_percent / 100).
func (r RepartitionLine) Factor() decimal.Decimal {
	return r.FactorPercent.Div(decimal.NewFromInt(100))
}

// TaxDefinition describes one tax: how its amount is computed, whether it is
// already embedded in the price, whether it enlarges the base of subsequently
// sequenced taxes, and how the computed amount is distributed across
// repartition lines for regular and refund documents.
//
// TaxDefinition is configuration: long-lived, admin-edited, resolved into
// plain values at the start of each computation.
type TaxDefinition struct {
	TaxID             string          `json:"taxID"` // Primary Key (e.g., UUID)
	CompanyID         string          `json:"companyID"`
	Name              string          `json:"name"`
	Description       string          `json:"description"` // Label on documents
	TaxUse            TaxUse          `json:"taxUse"`
	AmountType        AmountType      `json:"amountType"`
	Amount            decimal.Decimal `json:"amount"` // Percent rate, or fixed amount per unit
	PriceInclude      bool            `json:"priceInclude"`
	IncludeBaseAmount bool            `json:"includeBaseAmount"`
	Sequence          int             `json:"sequence"`
	IsActive          bool            `json:"isActive"`

	// ChildTaxIDs is the ordered child list, only for AmountTypeGroup.
	ChildTaxIDs []string `json:"childTaxIDs,omitempty"`
	// Children holds the resolved child definitions, populated by the tax
	// service before computation.
	Children []TaxDefinition `json:"children,omitempty"`

	InvoiceRepartitionLines []RepartitionLine `json:"invoiceRepartitionLines"`
	RefundRepartitionLines  []RepartitionLine `json:"refundRepartitionLines"`
	AuditFields
}

// RepartitionLinesFor selects the repartition list matching the legal
// document kind: refunds use the refund list, everything else the invoice
// list.
func (t TaxDefinition) RepartitionLinesFor(isRefund bool) []RepartitionLine {
	if isRefund {
		return t.RefundRepartitionLines
	}
	return t.InvoiceRepartitionLines
}

// TaxRepartitionLinesFor returns only the tax-type repartition lines for the
// given document kind, in configured order.
func (t TaxDefinition) TaxRepartitionLinesFor(isRefund bool) []RepartitionLine {
	lines := t.RepartitionLinesFor(isRefund)
	out := make([]RepartitionLine, 0, len(lines))
	for _, l := range lines {
		if l.RepartitionType == RepartitionTax {
			out = append(out, l)
		}
	}
	return out
}

// BaseTagIDsFor returns the reporting tags of the base repartition line for
// the given document kind.
func (t TaxDefinition) BaseTagIDsFor(isRefund bool) []string {
	for _, l := range t.RepartitionLinesFor(isRefund) {
		if l.RepartitionType == RepartitionBase {
			return l.TagIDs
		}
	}
	return nil
}
