package models

import "github.com/shopspring/decimal"

// AmountType defines how a tax amount is computed from its base.
type AmountType string

const (
	AmountTypePercent  AmountType = "percent"
	AmountTypeFixed    AmountType = "fixed"
	AmountTypeDivision AmountType = "division"
	AmountTypeGroup    AmountType = "group"
)

// TaxUse restricts which document kinds a tax may be applied to.
type TaxUse string

const (
	TaxUseSale     TaxUse = "sale"
	TaxUsePurchase TaxUse = "purchase"
	TaxUseNone     TaxUse = "none"
)

// RepartitionType separates base reporting lines from tax allocation lines.
type RepartitionType string

const (
	RepartitionBase RepartitionType = "base"
	RepartitionTax  RepartitionType = "tax"
)

// Tax represents a persisted tax definition.
type Tax struct {
	TaxID             string          `db:"tax_id"`     // Primary Key (UUID)
	CompanyID         string          `db:"company_id"` // FK -> Company
	Name              string          `db:"name"`
	Description       string          `db:"description"`
	TaxUse            TaxUse          `db:"tax_use"`
	AmountType        AmountType      `db:"amount_type"`
	Amount            decimal.Decimal `db:"amount"` // Percentage or fixed amount per unit
	PriceInclude      bool            `db:"price_include"`
	IncludeBaseAmount bool            `db:"include_base_amount"`
	Sequence          int             `db:"sequence"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}

// TaxChild links a group tax to one of its children with an ordering.
type TaxChild struct {
	ParentTaxID string `db:"parent_tax_id"` // PK part, FK -> Tax
	ChildTaxID  string `db:"child_tax_id"`  // PK part, FK -> Tax
	Sequence    int    `db:"sequence"`
}

// TaxRepartitionLine is one allocation slice of a tax, either for the
// invoice list or the refund list.
type TaxRepartitionLine struct {
	RepartitionLineID string          `db:"repartition_line_id"` // Primary Key (UUID)
	TaxID             string          `db:"tax_id"`              // FK -> Tax
	DocumentKind      string          `db:"document_kind"`       // "invoice" or "refund"
	RepartitionType   RepartitionType `db:"repartition_type"`
	FactorPercent     decimal.Decimal `db:"factor_percent"`
	TagIDs            []string        `db:"tag_ids"` // Reporting grid tags
	Sequence          int             `db:"sequence"`
}
