package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveType identifies the business meaning of a document.
type MoveType string

const (
	MoveTypeEntry      MoveType = "entry"
	MoveTypeOutInvoice MoveType = "out_invoice"
	MoveTypeOutRefund  MoveType = "out_refund"
	MoveTypeInInvoice  MoveType = "in_invoice"
	MoveTypeInRefund   MoveType = "in_refund"
)

// DocumentStatus indicates the lifecycle state of a document.
type DocumentStatus string

const (
	StatusDraft  DocumentStatus = "DRAFT"
	StatusPosted DocumentStatus = "POSTED"
)

// Document represents an invoice, refund or journal entry whose lines carry
// taxes.
type Document struct {
	DocumentID   string          `db:"document_id"` // Primary Key (UUID)
	CompanyID    string          `db:"company_id"`  // FK -> Company
	MoveType     MoveType        `db:"move_type"`
	CurrencyCode string          `db:"currency_code"` // FK -> Currency
	Rate         decimal.Decimal `db:"rate"`          // Document currency -> company currency divisor
	DocumentDate time.Time       `db:"document_date"`
	Reference    string          `db:"reference"`
	Status       DocumentStatus  `db:"status"`
	AuditFields
}

// DocumentLine is a base line or a manual tax line of a document.
type DocumentLine struct {
	LineID     string `db:"line_id"`     // Primary Key (UUID)
	DocumentID string `db:"document_id"` // FK -> Document
	Label      string `db:"label"`

	Quantity       decimal.Decimal `db:"quantity"`
	Amount         decimal.Decimal `db:"amount"`          // Company currency
	AmountCurrency decimal.Decimal `db:"amount_currency"` // Document currency

	TaxIDs []string `db:"tax_ids"` // Taxes applied to this base line

	// Set only on manual tax lines.
	TaxRepartitionLineID *string `db:"tax_repartition_line_id"` // Nullable FK -> TaxRepartitionLine
	TaxLineTaxID         *string `db:"tax_line_tax_id"`         // Nullable FK -> Tax
	AuditFields
}

// TaxDetail is one computed allocation row tying a tax repartition slice to
// the base it was assessed on.
type TaxDetail struct {
	DetailID          string `db:"detail_id"`    // Primary Key (UUID)
	DocumentID        string `db:"document_id"`  // FK -> Document
	BaseLineID        string `db:"base_line_id"` // FK -> DocumentLine, empty when aggregated over lines
	TaxID             string `db:"tax_id"`       // FK -> Tax
	RepartitionLineID string `db:"repartition_line_id"`

	BaseAmount         decimal.Decimal `db:"base_amount"`
	BaseAmountCurrency decimal.Decimal `db:"base_amount_currency"`
	TaxAmount          decimal.Decimal `db:"tax_amount"`
	TaxAmountCurrency  decimal.Decimal `db:"tax_amount_currency"`

	RemainingTaxIDs []string `db:"remaining_tax_ids"` // Taxes still applying after this one
	TagIDs          []string `db:"tag_ids"`
}
