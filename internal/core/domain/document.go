package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveType identifies the legal kind of a financial document.
type MoveType string

const (
	MoveTypeEntry      MoveType = "entry"       // Generic journal entry
	MoveTypeOutInvoice MoveType = "out_invoice" // Customer invoice
	MoveTypeOutRefund  MoveType = "out_refund"  // Customer credit note
	MoveTypeInInvoice  MoveType = "in_invoice"  // Vendor bill
	MoveTypeInRefund   MoveType = "in_refund"   // Vendor credit note
)

// IsRefund reports whether the document selects the refund repartition lines
// of its taxes.
func (m MoveType) IsRefund() bool {
	return m == MoveTypeOutRefund || m == MoveTypeInRefund
}

// Sign returns the accounting sign convention for the document: +1 for
// purchases/debits (bills, journal entries), -1 for sales/credits (customer
// invoices), flipped for refunds.
func (m MoveType) Sign() int64 {
	switch m {
	case MoveTypeOutInvoice:
		return -1
	case MoveTypeOutRefund:
		return 1
	case MoveTypeInRefund:
		return -1
	default: // in_invoice, entry
		return 1
	}
}

// DocumentStatus indicates the lifecycle state of a document.
type DocumentStatus string

const (
	DocumentDraft  DocumentStatus = "DRAFT"
	DocumentPosted DocumentStatus = "POSTED"
)

// Document is a financial document (invoice, bill, journal entry) owning the
// lines taxes apply to. Rate converts document-currency amounts into the
// company currency (companyAmount = currencyAmount / rate); it is supplied by
// the caller, never looked up here.
type Document struct {
	DocumentID   string          `json:"documentID"` // Primary Key (e.g., UUID)
	CompanyID    string          `json:"companyID"`
	MoveType     MoveType        `json:"moveType"`
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	DocumentDate time.Time       `json:"documentDate"`
	Reference    string          `json:"reference"`
	Status       DocumentStatus  `json:"status"`
	AuditFields
}

// DocumentLine is one base financial line of a document. Amount is in the
// company currency and AmountCurrency in the document currency, both signed
// per the document's sign convention.
//
// A line whose TaxRepartitionLineID is set is a manually entered tax line
// (import path): the engine never recomputes its amount, it only produces the
// TaxDetail explaining it.
type DocumentLine struct {
	LineID         string          `json:"lineID"` // Primary Key (e.g., UUID)
	DocumentID     string          `json:"documentID"`
	Label          string          `json:"label"`
	Quantity       decimal.Decimal `json:"quantity"`
	Amount         decimal.Decimal `json:"amount"`         // Signed, company currency
	AmountCurrency decimal.Decimal `json:"amountCurrency"` // Signed, document currency
	TaxIDs         []string        `json:"taxIDs"`         // Ordered taxes to apply

	TaxRepartitionLineID *string `json:"taxRepartitionLineID,omitempty"`
	// TaxLineTaxID is the tax that produced a manual tax line; set together
	// with TaxRepartitionLineID.
	TaxLineTaxID *string `json:"taxLineTaxID,omitempty"`
	AuditFields
}

// IsTaxLine reports whether the line is a manually entered tax line rather
// than a base line.
func (l DocumentLine) IsTaxLine() bool {
	return l.TaxRepartitionLineID != nil
}

// TaxDetail is the derived record explaining how much tax and base amount is
// attributable to one repartition line of one tax on one base line. The full
// detail set of a document is recomputed from scratch whenever any of its
// lines' amount, currency or tax set changes; details are never edited.
type TaxDetail struct {
	DetailID          string `json:"detailID"` // Primary Key (e.g., UUID)
	DocumentID        string `json:"documentID"`
	BaseLineID        string `json:"baseLineID"` // Owning DocumentLine
	TaxID             string `json:"taxID"`
	RepartitionLineID string `json:"repartitionLineID"`

	BaseAmount         decimal.Decimal `json:"baseAmount"`         // Company currency
	BaseAmountCurrency decimal.Decimal `json:"baseAmountCurrency"` // Document currency
	TaxAmount          decimal.Decimal `json:"taxAmount"`          // Company currency
	TaxAmountCurrency  decimal.Decimal `json:"taxAmountCurrency"`  // Document currency

	// RemainingTaxIDs snapshots the taxes still to apply downstream of this
	// one on the same line (only populated when this tax enlarges their base).
	RemainingTaxIDs []string `json:"remainingTaxIDs"`
	// TagIDs are the reporting tags resolved from the repartition line.
	TagIDs []string `json:"tagIDs"`
}
