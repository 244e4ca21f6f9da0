package mapping

import (
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/models"
)

// Repartition lists are stored in one table, discriminated by document kind.
const (
	RepartitionKindInvoice = "invoice"
	RepartitionKindRefund  = "refund"
)

// ToModelTax converts a domain TaxDefinition to a model Tax. Repartition
// lines and group children are persisted separately.
func ToModelTax(d domain.TaxDefinition) models.Tax {
	return models.Tax{
		TaxID:             d.TaxID,
		CompanyID:         d.CompanyID,
		Name:              d.Name,
		Description:       d.Description,
		TaxUse:            models.TaxUse(d.TaxUse),
		AmountType:        models.AmountType(d.AmountType),
		Amount:            d.Amount,
		PriceInclude:      d.PriceInclude,
		IncludeBaseAmount: d.IncludeBaseAmount,
		Sequence:          d.Sequence,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTax assembles a domain TaxDefinition from its persisted parts.
// Children of group taxes are attached by the repository after a second
// fetch, so only their ids travel here.
func ToDomainTax(m models.Tax, childTaxIDs []string, lines []models.TaxRepartitionLine) domain.TaxDefinition {
	d := domain.TaxDefinition{
		TaxID:             m.TaxID,
		CompanyID:         m.CompanyID,
		Name:              m.Name,
		Description:       m.Description,
		TaxUse:            domain.TaxUse(m.TaxUse),
		AmountType:        domain.AmountType(m.AmountType),
		Amount:            m.Amount,
		PriceInclude:      m.PriceInclude,
		IncludeBaseAmount: m.IncludeBaseAmount,
		Sequence:          m.Sequence,
		IsActive:          m.IsActive,
		ChildTaxIDs:       childTaxIDs,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	for _, l := range lines {
		rl := ToDomainRepartitionLine(l)
		switch l.DocumentKind {
		case RepartitionKindRefund:
			d.RefundRepartitionLines = append(d.RefundRepartitionLines, rl)
		default:
			d.InvoiceRepartitionLines = append(d.InvoiceRepartitionLines, rl)
		}
	}
	return d
}

// ToDomainRepartitionLine converts a model TaxRepartitionLine to a domain RepartitionLine
func ToDomainRepartitionLine(m models.TaxRepartitionLine) domain.RepartitionLine {
	return domain.RepartitionLine{
		RepartitionLineID: m.RepartitionLineID,
		RepartitionType:   domain.RepartitionType(m.RepartitionType),
		FactorPercent:     m.FactorPercent,
		TagIDs:            m.TagIDs,
		Sequence:          m.Sequence,
	}
}

// ToModelRepartitionLines converts one of a tax's domain repartition lists to
// model rows for the given document kind.
func ToModelRepartitionLines(taxID, kind string, ds []domain.RepartitionLine) []models.TaxRepartitionLine {
	ms := make([]models.TaxRepartitionLine, len(ds))
	for i, d := range ds {
		ms[i] = models.TaxRepartitionLine{
			RepartitionLineID: d.RepartitionLineID,
			TaxID:             taxID,
			DocumentKind:      kind,
			RepartitionType:   models.RepartitionType(d.RepartitionType),
			FactorPercent:     d.FactorPercent,
			TagIDs:            d.TagIDs,
			Sequence:          d.Sequence,
		}
	}
	return ms
}
