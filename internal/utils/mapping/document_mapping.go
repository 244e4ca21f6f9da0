package mapping

import (
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:   d.DocumentID,
		CompanyID:    d.CompanyID,
		MoveType:     models.MoveType(d.MoveType),
		CurrencyCode: d.CurrencyCode,
		Rate:         d.Rate,
		DocumentDate: d.DocumentDate,
		Reference:    d.Reference,
		Status:       models.DocumentStatus(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:   m.DocumentID,
		CompanyID:    m.CompanyID,
		MoveType:     domain.MoveType(m.MoveType),
		CurrencyCode: m.CurrencyCode,
		Rate:         m.Rate,
		DocumentDate: m.DocumentDate,
		Reference:    m.Reference,
		Status:       domain.DocumentStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}

// ToModelDocumentLine converts a domain DocumentLine to a model DocumentLine
func ToModelDocumentLine(d domain.DocumentLine) models.DocumentLine {
	return models.DocumentLine{
		LineID:               d.LineID,
		DocumentID:           d.DocumentID,
		Label:                d.Label,
		Quantity:             d.Quantity,
		Amount:               d.Amount,
		AmountCurrency:       d.AmountCurrency,
		TaxIDs:               d.TaxIDs,
		TaxRepartitionLineID: d.TaxRepartitionLineID,
		TaxLineTaxID:         d.TaxLineTaxID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocumentLine converts a model DocumentLine to a domain DocumentLine
func ToDomainDocumentLine(m models.DocumentLine) domain.DocumentLine {
	return domain.DocumentLine{
		LineID:               m.LineID,
		DocumentID:           m.DocumentID,
		Label:                m.Label,
		Quantity:             m.Quantity,
		Amount:               m.Amount,
		AmountCurrency:       m.AmountCurrency,
		TaxIDs:               m.TaxIDs,
		TaxRepartitionLineID: m.TaxRepartitionLineID,
		TaxLineTaxID:         m.TaxLineTaxID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentLineSlice converts a slice of model DocumentLines to domain DocumentLines
func ToDomainDocumentLineSlice(ms []models.DocumentLine) []domain.DocumentLine {
	ds := make([]domain.DocumentLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocumentLine(m)
	}
	return ds
}

// ToModelTaxDetail converts a domain TaxDetail to a model TaxDetail
func ToModelTaxDetail(d domain.TaxDetail) models.TaxDetail {
	return models.TaxDetail{
		DetailID:           d.DetailID,
		DocumentID:         d.DocumentID,
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

// ToDomainTaxDetail converts a model TaxDetail to a domain TaxDetail
func ToDomainTaxDetail(m models.TaxDetail) domain.TaxDetail {
	return domain.TaxDetail{
		DetailID:           m.DetailID,
		DocumentID:         m.DocumentID,
		BaseLineID:         m.BaseLineID,
		TaxID:              m.TaxID,
		RepartitionLineID:  m.RepartitionLineID,
		BaseAmount:         m.BaseAmount,
		BaseAmountCurrency: m.BaseAmountCurrency,
		TaxAmount:          m.TaxAmount,
		TaxAmountCurrency:  m.TaxAmountCurrency,
		RemainingTaxIDs:    m.RemainingTaxIDs,
		TagIDs:             m.TagIDs,
	}
}

// ToDomainTaxDetailSlice converts a slice of model TaxDetails to domain TaxDetails
func ToDomainTaxDetailSlice(ms []models.TaxDetail) []domain.TaxDetail {
	ds := make([]domain.TaxDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxDetail(m)
	}
	return ds
}
