package taxcalc

import (
	"fmt"
	"sort"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
)

// Resolve turns the tax references of a document line into the flat, ordered
// list the computation fold consumes. Group taxes are replaced by their
// children in place; every level is ordered by sequence, ties broken by tax
// id so the result is deterministic.
func Resolve(taxes []domain.TaxDefinition) ([]domain.TaxDefinition, error) {
	ordered := make([]domain.TaxDefinition, len(taxes))
	copy(ordered, taxes)
	sortBySequence(ordered)

	flat := make([]domain.TaxDefinition, 0, len(ordered))
	for _, t := range ordered {
		if t.AmountType != domain.AmountTypeGroup {
			// A none-use tax is only reachable through a group.
			if t.TaxUse == domain.TaxUseNone {
				return nil, fmt.Errorf("%w: tax %q has use %q and cannot be applied directly", apperrors.ErrConfiguration, t.Name, domain.TaxUseNone)
			}
			flat = append(flat, t)
			continue
		}
		if len(t.Children) == 0 {
			return nil, fmt.Errorf("%w: group tax %q has no resolved children", apperrors.ErrConfiguration, t.Name)
		}
		children := make([]domain.TaxDefinition, len(t.Children))
		copy(children, t.Children)
		sortBySequence(children)
		for _, child := range children {
			if child.AmountType == domain.AmountTypeGroup {
				return nil, fmt.Errorf("%w: group tax %q nests group %q", apperrors.ErrConfiguration, t.Name, child.Name)
			}
			flat = append(flat, child)
		}
	}

	seen := make(map[string]struct{}, len(flat))
	for _, t := range flat {
		if _, dup := seen[t.TaxID]; dup {
			return nil, fmt.Errorf("%w: tax %q appears more than once after group expansion", apperrors.ErrConfiguration, t.Name)
		}
		seen[t.TaxID] = struct{}{}
	}
	return flat, nil
}

func sortBySequence(taxes []domain.TaxDefinition) {
	sort.SliceStable(taxes, func(i, j int) bool {
		if taxes[i].Sequence != taxes[j].Sequence {
			return taxes[i].Sequence < taxes[j].Sequence
		}
		return taxes[i].TaxID < taxes[j].TaxID
	})
}
