package dto

import (
	"time"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentLineRequest defines one line of a document being created.
// A base line carries taxIDs; a manual tax line carries taxRepartitionLineID
// and the tax it belongs to instead.
type CreateDocumentLineRequest struct {
	Label          string          `json:"label"`
	Quantity       decimal.Decimal `json:"quantity"`
	AmountCurrency decimal.Decimal `json:"amountCurrency"`
	TaxIDs         []string        `json:"taxIDs"`

	TaxRepartitionLineID *string `json:"taxRepartitionLineID"`
	TaxLineTaxID         *string `json:"taxLineTaxID"`
}

// CreateDocumentRequest defines the data needed to create a new document.
type CreateDocumentRequest struct {
	MoveType     string                      `json:"moveType" binding:"required,oneof=entry out_invoice out_refund in_invoice in_refund"`
	CurrencyCode string                      `json:"currencyCode" binding:"required,uppercase,len=3"`
	Rate         decimal.Decimal             `json:"rate"`
	DocumentDate time.Time                   `json:"documentDate" binding:"required"`
	Reference    string                      `json:"reference"`
	Lines        []CreateDocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest defines the data allowed for updating a draft document.
// Lines, when present, replace the existing set entirely.
type UpdateDocumentRequest struct {
	Rate         *decimal.Decimal            `json:"rate"`
	DocumentDate *time.Time                  `json:"documentDate"`
	Reference    *string                     `json:"reference"`
	Lines        []CreateDocumentLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// DocumentLineResponse defines the data returned for a document line.
type DocumentLineResponse struct {
	LineID         string          `json:"lineID"`
	Label          string          `json:"label,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Amount         decimal.Decimal `json:"amount"`
	AmountCurrency decimal.Decimal `json:"amountCurrency"`
	TaxIDs         []string        `json:"taxIDs,omitempty"`

	TaxRepartitionLineID *string `json:"taxRepartitionLineID,omitempty"`
	TaxLineTaxID         *string `json:"taxLineTaxID,omitempty"`
}

// TaxDetailResponse defines the data returned for a computed tax detail row.
type TaxDetailResponse struct {
	DetailID           string          `json:"detailID"`
	BaseLineID         string          `json:"baseLineID,omitempty"`
	TaxID              string          `json:"taxID"`
	RepartitionLineID  string          `json:"repartitionLineID"`
	BaseAmount         decimal.Decimal `json:"baseAmount"`
	BaseAmountCurrency decimal.Decimal `json:"baseAmountCurrency"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	TaxAmountCurrency  decimal.Decimal `json:"taxAmountCurrency"`
	RemainingTaxIDs    []string        `json:"remainingTaxIDs,omitempty"`
	TagIDs             []string        `json:"tagIDs,omitempty"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID   string          `json:"documentID"`
	CompanyID    string          `json:"companyID"`
	MoveType     string          `json:"moveType"`
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	DocumentDate time.Time       `json:"documentDate"`
	Reference    string          `json:"reference,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// GetDocumentResponse combines a document with its lines and tax details.
type GetDocumentResponse struct {
	Document   DocumentResponse       `json:"document"`
	Lines      []DocumentLineResponse `json:"lines"`
	TaxDetails []TaxDetailResponse    `json:"taxDetails"`
}

// RecomputeDocumentResponse reports the outcome of a tax detail recomputation.
type RecomputeDocumentResponse struct {
	Document          GetDocumentResponse `json:"document"`
	Warnings          []string            `json:"warnings,omitempty"`
	ToleranceExceeded bool                `json:"toleranceExceeded"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:   d.DocumentID,
		CompanyID:    d.CompanyID,
		MoveType:     string(d.MoveType),
		CurrencyCode: d.CurrencyCode,
		Rate:         d.Rate,
		DocumentDate: d.DocumentDate,
		Reference:    d.Reference,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ToDocumentLineResponse converts a domain.DocumentLine to DocumentLineResponse DTO
func ToDocumentLineResponse(l *domain.DocumentLine) DocumentLineResponse {
	return DocumentLineResponse{
		LineID:               l.LineID,
		Label:                l.Label,
		Quantity:             l.Quantity,
		Amount:               l.Amount,
		AmountCurrency:       l.AmountCurrency,
		TaxIDs:               l.TaxIDs,
		TaxRepartitionLineID: l.TaxRepartitionLineID,
		TaxLineTaxID:         l.TaxLineTaxID,
	}
}

// ToTaxDetailResponse converts a domain.TaxDetail to TaxDetailResponse DTO
func ToTaxDetailResponse(d *domain.TaxDetail) TaxDetailResponse {
	return TaxDetailResponse{
		DetailID:           d.DetailID,
		BaseLineID:         d.BaseLineID,
		TaxID:              d.TaxID,
		RepartitionLineID:  d.RepartitionLineID,
		BaseAmount:         d.BaseAmount,
		BaseAmountCurrency: d.BaseAmountCurrency,
		TaxAmount:          d.TaxAmount,
		TaxAmountCurrency:  d.TaxAmountCurrency,
		RemainingTaxIDs:    d.RemainingTaxIDs,
		TagIDs:             d.TagIDs,
	}
}

// ToGetDocumentResponse assembles the combined response for a document.
func ToGetDocumentResponse(doc *domain.Document, lines []domain.DocumentLine, details []domain.TaxDetail) GetDocumentResponse {
	lineRes := make([]DocumentLineResponse, len(lines))
	for i, l := range lines {
		lineRes[i] = ToDocumentLineResponse(&l)
	}
	detailRes := make([]TaxDetailResponse, len(details))
	for i, d := range details {
		detailRes[i] = ToTaxDetailResponse(&d)
	}
	return GetDocumentResponse{
		Document:   ToDocumentResponse(doc),
		Lines:      lineRes,
		TaxDetails: detailRes,
	}
}

// ListDocumentsResponse wraps the list of documents of a company.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToListDocumentsResponse converts a slice of domain.Document to ListDocumentsResponse DTO
func ToListDocumentsResponse(docs []domain.Document) ListDocumentsResponse {
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = ToDocumentResponse(&d)
	}
	return ListDocumentsResponse{Documents: res}
}
