package dto

import (
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RepartitionLineRequest defines one allocation slice of a tax.
type RepartitionLineRequest struct {
	RepartitionType string          `json:"repartitionType" binding:"required,oneof=base tax"`
	FactorPercent   decimal.Decimal `json:"factorPercent"`
	TagIDs          []string        `json:"tagIDs"`
	Sequence        int             `json:"sequence"`
}

// CreateTaxRequest defines the data needed to create a new tax.
type CreateTaxRequest struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	TaxUse            string          `json:"taxUse" binding:"required,oneof=sale purchase none"`
	AmountType        string          `json:"amountType" binding:"required,oneof=percent fixed division group"`
	Amount            decimal.Decimal `json:"amount"`
	PriceInclude      bool            `json:"priceInclude"`
	IncludeBaseAmount bool            `json:"includeBaseAmount"`
	Sequence          int             `json:"sequence"`
	ChildTaxIDs       []string        `json:"childTaxIDs"`

	InvoiceRepartitionLines []RepartitionLineRequest `json:"invoiceRepartitionLines"`
	RefundRepartitionLines  []RepartitionLineRequest `json:"refundRepartitionLines"`
}

// UpdateTaxRequest defines the data allowed for updating a tax.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateTaxRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Amount            *decimal.Decimal `json:"amount"`
	PriceInclude      *bool            `json:"priceInclude"`
	IncludeBaseAmount *bool            `json:"includeBaseAmount"`
	Sequence          *int             `json:"sequence"`

	InvoiceRepartitionLines []RepartitionLineRequest `json:"invoiceRepartitionLines"`
	RefundRepartitionLines  []RepartitionLineRequest `json:"refundRepartitionLines"`
}

// ListTaxesParams defines query parameters for listing taxes.
type ListTaxesParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// RepartitionLineResponse defines the data returned for a repartition line.
type RepartitionLineResponse struct {
	RepartitionLineID string          `json:"repartitionLineID"`
	RepartitionType   string          `json:"repartitionType"`
	FactorPercent     decimal.Decimal `json:"factorPercent"`
	TagIDs            []string        `json:"tagIDs,omitempty"`
	Sequence          int             `json:"sequence"`
}

// TaxResponse defines the data returned for a tax.
type TaxResponse struct {
	TaxID             string          `json:"taxID"`
	CompanyID         string          `json:"companyID"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	TaxUse            string          `json:"taxUse"`
	AmountType        string          `json:"amountType"`
	Amount            decimal.Decimal `json:"amount"`
	PriceInclude      bool            `json:"priceInclude"`
	IncludeBaseAmount bool            `json:"includeBaseAmount"`
	Sequence          int             `json:"sequence"`
	IsActive          bool            `json:"isActive"`
	ChildTaxIDs       []string        `json:"childTaxIDs,omitempty"`

	InvoiceRepartitionLines []RepartitionLineResponse `json:"invoiceRepartitionLines"`
	RefundRepartitionLines  []RepartitionLineResponse `json:"refundRepartitionLines"`
}

// ToTaxResponse converts a domain.TaxDefinition to TaxResponse DTO
func ToTaxResponse(t *domain.TaxDefinition) TaxResponse {
	return TaxResponse{
		TaxID:                   t.TaxID,
		CompanyID:               t.CompanyID,
		Name:                    t.Name,
		Description:             t.Description,
		TaxUse:                  string(t.TaxUse),
		AmountType:              string(t.AmountType),
		Amount:                  t.Amount,
		PriceInclude:            t.PriceInclude,
		IncludeBaseAmount:       t.IncludeBaseAmount,
		Sequence:                t.Sequence,
		IsActive:                t.IsActive,
		ChildTaxIDs:             t.ChildTaxIDs,
		InvoiceRepartitionLines: toRepartitionLineResponses(t.InvoiceRepartitionLines),
		RefundRepartitionLines:  toRepartitionLineResponses(t.RefundRepartitionLines),
	}
}

func toRepartitionLineResponses(lines []domain.RepartitionLine) []RepartitionLineResponse {
	res := make([]RepartitionLineResponse, len(lines))
	for i, l := range lines {
		res[i] = RepartitionLineResponse{
			RepartitionLineID: l.RepartitionLineID,
			RepartitionType:   string(l.RepartitionType),
			FactorPercent:     l.FactorPercent,
			TagIDs:            l.TagIDs,
			Sequence:          l.Sequence,
		}
	}
	return res
}

// ListTaxesResponse wraps the list of taxes of a company.
type ListTaxesResponse struct {
	Taxes []TaxResponse `json:"taxes"`
}

// ToListTaxesResponse converts a slice of domain.TaxDefinition to ListTaxesResponse DTO
func ToListTaxesResponse(taxes []domain.TaxDefinition) ListTaxesResponse {
	res := make([]TaxResponse, len(taxes))
	for i, t := range taxes {
		res[i] = ToTaxResponse(&t)
	}
	return ListTaxesResponse{Taxes: res}
}

// PreviewTaxRequest asks for a dry-run computation of a set of taxes over a
// single amount, without touching any document.
type PreviewTaxRequest struct {
	TaxIDs       []string        `json:"taxIDs" binding:"required,min=1"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	MoveType     string          `json:"moveType" binding:"omitempty,oneof=entry out_invoice out_refund in_invoice in_refund"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,uppercase,len=3"`
	Rate         decimal.Decimal `json:"rate"`
}

// ComputedTaxResponse is one tax application within a preview.
type ComputedTaxResponse struct {
	TaxID              string          `json:"taxID"`
	Name               string          `json:"name"`
	BaseAmountCurrency decimal.Decimal `json:"baseAmountCurrency"`
	BaseAmount         decimal.Decimal `json:"baseAmount"`
	TaxAmountCurrency  decimal.Decimal `json:"taxAmountCurrency"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
}

// PreviewTaxResponse is the outcome of a dry-run computation.
type PreviewTaxResponse struct {
	TotalExcludedCurrency decimal.Decimal       `json:"totalExcludedCurrency"`
	TotalIncludedCurrency decimal.Decimal       `json:"totalIncludedCurrency"`
	TotalExcluded         decimal.Decimal       `json:"totalExcluded"`
	TotalIncluded         decimal.Decimal       `json:"totalIncluded"`
	Taxes                 []ComputedTaxResponse `json:"taxes"`
	Details               []TaxDetailResponse   `json:"details"`
}
