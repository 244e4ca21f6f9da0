package taxcalc

import (
	"fmt"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidateTax checks a tax definition for the configuration errors that must
// block saving: broken repartition lists, a division tax whose rate would
// divide by zero, malformed groups. It is called before any definition is
// persisted and again defensively before computation.
func ValidateTax(t domain.TaxDefinition) error {
	if t.AmountType == domain.AmountTypeGroup {
		if len(t.ChildTaxIDs) == 0 && len(t.Children) == 0 {
			return fmt.Errorf("%w: group tax %q has no children", apperrors.ErrConfiguration, t.Name)
		}
		for _, child := range t.Children {
			if child.AmountType == domain.AmountTypeGroup {
				return fmt.Errorf("%w: group tax %q nests another group", apperrors.ErrConfiguration, t.Name)
			}
			if err := ValidateTax(child); err != nil {
				return err
			}
		}
		return nil
	}

	if t.AmountType == domain.AmountTypeDivision && t.Amount.Equal(hundred) {
		return fmt.Errorf("%w: tax %q is a tax-included percentage of 100, its amount cannot be computed", apperrors.ErrConfiguration, t.Name)
	}

	if err := validateRepartitionLines(t.Name, "invoice", t.InvoiceRepartitionLines); err != nil {
		return err
	}
	if err := validateRepartitionLines(t.Name, "refund", t.RefundRepartitionLines); err != nil {
		return err
	}
	return validateRepartitionMirror(t)
}

func validateRepartitionLines(taxName, kind string, lines []domain.RepartitionLine) error {
	baseCount := 0
	taxFactorSum := decimal.Zero
	taxCount := 0
	for _, l := range lines {
		switch l.RepartitionType {
		case domain.RepartitionBase:
			baseCount++
			if !l.FactorPercent.Equal(hundred) {
				return fmt.Errorf("%w: tax %q %s base repartition line must carry 100%%", apperrors.ErrConfiguration, taxName, kind)
			}
		case domain.RepartitionTax:
			taxCount++
			taxFactorSum = taxFactorSum.Add(l.FactorPercent)
		default:
			return fmt.Errorf("%w: tax %q %s repartition line has unknown type %q", apperrors.ErrConfiguration, taxName, kind, l.RepartitionType)
		}
	}
	if baseCount != 1 {
		return fmt.Errorf("%w: tax %q %s repartition must contain exactly one base line, got %d", apperrors.ErrConfiguration, taxName, kind, baseCount)
	}
	if taxCount == 0 {
		return fmt.Errorf("%w: tax %q %s repartition must contain at least one tax line", apperrors.ErrConfiguration, taxName, kind)
	}
	if !taxFactorSum.Equal(hundred) {
		return fmt.Errorf("%w: tax %q %s tax repartition factors sum to %s, expected 100", apperrors.ErrConfiguration, taxName, kind, taxFactorSum)
	}
	return nil
}

// validateRepartitionMirror enforces that the invoice and refund lists match
// pairwise in type and factor, so refunds stay the exact mirror of applies.
func validateRepartitionMirror(t domain.TaxDefinition) error {
	if len(t.InvoiceRepartitionLines) != len(t.RefundRepartitionLines) {
		return fmt.Errorf("%w: tax %q invoice and refund repartition must have the same number of lines", apperrors.ErrConfiguration, t.Name)
	}
	for i := range t.InvoiceRepartitionLines {
		inv := t.InvoiceRepartitionLines[i]
		ref := t.RefundRepartitionLines[i]
		if inv.RepartitionType != ref.RepartitionType || !inv.FactorPercent.Equal(ref.FactorPercent) {
			return fmt.Errorf("%w: tax %q invoice and refund repartition lines must match in type and factor, mismatch at position %d", apperrors.ErrConfiguration, t.Name, i)
		}
	}
	return nil
}
