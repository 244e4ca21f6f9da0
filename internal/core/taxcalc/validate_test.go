package taxcalc_test

import (
	"testing"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/core/taxcalc"
	"github.com/stretchr/testify/assert"
)

func TestValidateTax(t *testing.T) {
	valid := newTax("vat10", domain.AmountTypePercent, "10", 1)

	splitFactors := newTax("vat-split", domain.AmountTypePercent, "20", 1)
	splitFactors.InvoiceRepartitionLines = []domain.RepartitionLine{
		{RepartitionLineID: "b", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100")},
		{RepartitionLineID: "t1", RepartitionType: domain.RepartitionTax, FactorPercent: dec("40")},
		{RepartitionLineID: "t2", RepartitionType: domain.RepartitionTax, FactorPercent: dec("60")},
	}
	splitFactors.RefundRepartitionLines = []domain.RepartitionLine{
		{RepartitionLineID: "rb", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100")},
		{RepartitionLineID: "rt1", RepartitionType: domain.RepartitionTax, FactorPercent: dec("40")},
		{RepartitionLineID: "rt2", RepartitionType: domain.RepartitionTax, FactorPercent: dec("60")},
	}

	badSum := splitFactors
	badSum.InvoiceRepartitionLines = []domain.RepartitionLine{
		{RepartitionLineID: "b", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100")},
		{RepartitionLineID: "t1", RepartitionType: domain.RepartitionTax, FactorPercent: dec("40")},
		{RepartitionLineID: "t2", RepartitionType: domain.RepartitionTax, FactorPercent: dec("50")},
	}

	twoBase := newTax("two-base", domain.AmountTypePercent, "10", 1)
	twoBase.InvoiceRepartitionLines = append(twoBase.InvoiceRepartitionLines,
		domain.RepartitionLine{RepartitionLineID: "extra-base", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100")})

	mirrorMismatch := newTax("mirror", domain.AmountTypePercent, "10", 1)
	mirrorMismatch.RefundRepartitionLines = []domain.RepartitionLine{
		{RepartitionLineID: "rb", RepartitionType: domain.RepartitionBase, FactorPercent: dec("100")},
		{RepartitionLineID: "rt1", RepartitionType: domain.RepartitionTax, FactorPercent: dec("40")},
		{RepartitionLineID: "rt2", RepartitionType: domain.RepartitionTax, FactorPercent: dec("60")},
	}

	division100 := newTax("div100", domain.AmountTypeDivision, "100", 1)

	emptyGroup := domain.TaxDefinition{TaxID: "grp", Name: "grp", AmountType: domain.AmountTypeGroup}

	nestedGroup := domain.TaxDefinition{TaxID: "outer", Name: "outer", AmountType: domain.AmountTypeGroup,
		Children: []domain.TaxDefinition{{TaxID: "inner", Name: "inner", AmountType: domain.AmountTypeGroup,
			Children: []domain.TaxDefinition{newTax("leaf", domain.AmountTypePercent, "5", 1)}}}}

	validGroup := domain.TaxDefinition{TaxID: "grp-ok", Name: "grp-ok", AmountType: domain.AmountTypeGroup,
		Children: []domain.TaxDefinition{valid}}

	tests := []struct {
		name    string
		tax     domain.TaxDefinition
		wantErr bool
	}{
		{name: "valid percent tax", tax: valid},
		{name: "valid split factors", tax: splitFactors},
		{name: "valid group", tax: validGroup},
		{name: "factors not summing to 100", tax: badSum, wantErr: true},
		{name: "two base lines", tax: twoBase, wantErr: true},
		{name: "invoice refund mismatch", tax: mirrorMismatch, wantErr: true},
		{name: "division tax at 100 percent", tax: division100, wantErr: true},
		{name: "group without children", tax: emptyGroup, wantErr: true},
		{name: "nested group", tax: nestedGroup, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := taxcalc.ValidateTax(tt.tax)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
