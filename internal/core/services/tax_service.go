package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engine_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engine_app/internal/core/taxcalc"
	"github.com/SscSPs/tax_engine_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// taxService implements the TaxSvcFacade interface
type taxService struct {
	BaseService
	taxRepo      portsrepo.TaxRepositoryFacade
	companyRepo  portsrepo.CompanyReader
	currencyRepo portsrepo.CurrencyReader
	authorizer   portssvc.CompanyAuthorizerSvc
}

// NewTaxService creates a new tax service with the provided dependencies
func NewTaxService(
	taxRepo portsrepo.TaxRepositoryFacade,
	companyRepo portsrepo.CompanyReader,
	currencyRepo portsrepo.CurrencyReader,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.TaxSvcFacade {
	return &taxService{
		taxRepo:      taxRepo,
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
		authorizer:   authorizer,
	}
}

// Ensure taxService implements the TaxSvcFacade interface
var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// CreateTax validates and persists a new tax.
func (s *taxService) CreateTax(ctx context.Context, companyID string, req dto.CreateTaxRequest, creatorUserID string) (*domain.TaxDefinition, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	tax := domain.TaxDefinition{
		TaxID:             uuid.NewString(),
		CompanyID:         companyID,
		Name:              req.Name,
		Description:       req.Description,
		TaxUse:            domain.TaxUse(req.TaxUse),
		AmountType:        domain.AmountType(req.AmountType),
		Amount:            req.Amount,
		PriceInclude:      req.PriceInclude,
		IncludeBaseAmount: req.IncludeBaseAmount,
		Sequence:          req.Sequence,
		IsActive:          true,
		ChildTaxIDs:       req.ChildTaxIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if tax.AmountType == domain.AmountTypeGroup {
		children, err := s.loadChildren(ctx, companyID, req.ChildTaxIDs)
		if err != nil {
			return nil, err
		}
		tax.Children = children
	} else {
		tax.InvoiceRepartitionLines = buildRepartitionLines(req.InvoiceRepartitionLines)
		tax.RefundRepartitionLines = buildRepartitionLines(req.RefundRepartitionLines)
	}

	if err := taxcalc.ValidateTax(tax); err != nil {
		return nil, err
	}

	if err := s.taxRepo.SaveTax(ctx, tax); err != nil {
		s.LogError(ctx, err, "Failed to save tax", slog.String("tax_id", tax.TaxID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax created successfully",
		slog.String("tax_id", tax.TaxID),
		slog.String("company_id", companyID))
	return &tax, nil
}

// buildRepartitionLines mints domain repartition lines from request slices,
// falling back to the standard 100% base + 100% tax pair when none are given.
func buildRepartitionLines(reqs []dto.RepartitionLineRequest) []domain.RepartitionLine {
	if len(reqs) == 0 {
		return []domain.RepartitionLine{
			{RepartitionLineID: uuid.NewString(), RepartitionType: domain.RepartitionBase, FactorPercent: decimal.NewFromInt(100), Sequence: 1},
			{RepartitionLineID: uuid.NewString(), RepartitionType: domain.RepartitionTax, FactorPercent: decimal.NewFromInt(100), Sequence: 2},
		}
	}
	lines := make([]domain.RepartitionLine, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.RepartitionLine{
			RepartitionLineID: uuid.NewString(),
			RepartitionType:   domain.RepartitionType(r.RepartitionType),
			FactorPercent:     r.FactorPercent,
			TagIDs:            r.TagIDs,
			Sequence:          r.Sequence,
		}
	}
	return lines
}

// loadChildren fetches and checks the children of a group tax.
func (s *taxService) loadChildren(ctx context.Context, companyID string, childTaxIDs []string) ([]domain.TaxDefinition, error) {
	if len(childTaxIDs) == 0 {
		return nil, fmt.Errorf("%w: a group tax needs at least one child tax", apperrors.ErrConfiguration)
	}
	found, err := s.taxRepo.FindTaxesByIDs(ctx, childTaxIDs)
	if err != nil {
		return nil, err
	}
	children := make([]domain.TaxDefinition, 0, len(childTaxIDs))
	for _, id := range childTaxIDs {
		child, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: child tax %q not found", apperrors.ErrConfiguration, id)
		}
		if child.CompanyID != companyID {
			return nil, fmt.Errorf("%w: child tax %q belongs to another company", apperrors.ErrConfiguration, id)
		}
		children = append(children, child)
	}
	return children, nil
}

// GetTaxByID retrieves a tax with its repartition lines.
func (s *taxService) GetTaxByID(ctx context.Context, companyID, taxID string, requestingUserID string) (*domain.TaxDefinition, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	tax, err := s.taxRepo.FindTaxByID(ctx, taxID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tax by ID", slog.String("tax_id", taxID))
		}
		return nil, err
	}
	if tax.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return tax, nil
}

// ListTaxes retrieves a paginated list of a company's taxes.
func (s *taxService) ListTaxes(ctx context.Context, companyID string, params dto.ListTaxesParams, requestingUserID string) ([]domain.TaxDefinition, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	taxes, err := s.taxRepo.ListTaxesByCompany(ctx, companyID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list taxes", slog.String("company_id", companyID))
		return nil, err
	}
	if taxes == nil {
		return []domain.TaxDefinition{}, nil
	}
	return taxes, nil
}

// UpdateTax validates and persists changes to an existing tax.
func (s *taxService) UpdateTax(ctx context.Context, companyID, taxID string, req dto.UpdateTaxRequest, requestingUserID string) (*domain.TaxDefinition, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	tax, err := s.taxRepo.FindTaxByID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if tax.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		tax.Name = *req.Name
	}
	if req.Description != nil {
		tax.Description = *req.Description
	}
	if req.Amount != nil {
		tax.Amount = *req.Amount
	}
	if req.PriceInclude != nil {
		tax.PriceInclude = *req.PriceInclude
	}
	if req.IncludeBaseAmount != nil {
		tax.IncludeBaseAmount = *req.IncludeBaseAmount
	}
	if req.Sequence != nil {
		tax.Sequence = *req.Sequence
	}
	if len(req.InvoiceRepartitionLines) > 0 {
		tax.InvoiceRepartitionLines = buildRepartitionLines(req.InvoiceRepartitionLines)
	}
	if len(req.RefundRepartitionLines) > 0 {
		tax.RefundRepartitionLines = buildRepartitionLines(req.RefundRepartitionLines)
	}

	if err := taxcalc.ValidateTax(*tax); err != nil {
		return nil, err
	}

	tax.LastUpdatedAt = time.Now()
	tax.LastUpdatedBy = requestingUserID

	if err := s.taxRepo.UpdateTax(ctx, *tax); err != nil {
		s.LogError(ctx, err, "Failed to update tax", slog.String("tax_id", taxID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax updated successfully", slog.String("tax_id", taxID))
	return tax, nil
}

// DeactivateTax soft deletes a tax.
func (s *taxService) DeactivateTax(ctx context.Context, companyID, taxID string, requestingUserID string) error {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	tax, err := s.taxRepo.FindTaxByID(ctx, taxID)
	if err != nil {
		return err
	}
	if tax.CompanyID != companyID {
		return apperrors.ErrNotFound
	}

	if err := s.taxRepo.DeactivateTax(ctx, taxID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate tax", slog.String("tax_id", taxID))
		return err
	}

	s.LogInfo(ctx, "Tax deactivated", slog.String("tax_id", taxID))
	return nil
}

// PreviewTaxes computes a set of taxes over a single amount without creating
// any document.
func (s *taxService) PreviewTaxes(ctx context.Context, companyID string, req dto.PreviewTaxRequest, requestingUserID string) (*dto.PreviewTaxResponse, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	moveType := domain.MoveTypeEntry
	if req.MoveType != "" {
		moveType = domain.MoveType(req.MoveType)
	}

	currencyCode := req.CurrencyCode
	if currencyCode == "" && company.DefaultCurrencyCode != nil {
		currencyCode = *company.DefaultCurrencyCode
	}
	if currencyCode == "" {
		return nil, fmt.Errorf("%w: no currency specified and company has no default currency", apperrors.ErrValidation)
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	companyPrecision := currency.Precision
	if company.DefaultCurrencyCode != nil && *company.DefaultCurrencyCode != currencyCode {
		companyCurrency, err := s.currencyRepo.FindCurrencyByCode(ctx, *company.DefaultCurrencyCode)
		if err != nil {
			return nil, err
		}
		companyPrecision = companyCurrency.Precision
	}

	rate := req.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: conversion rate must be positive", apperrors.ErrValidation)
	}

	taxes, err := loadResolvedTaxes(ctx, s.taxRepo, companyID, req.TaxIDs)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}

	result, err := taxcalc.Compute(taxcalc.Input{
		Taxes:             taxes,
		IsRefund:          moveType.IsRefund(),
		AmountCurrency:    req.Amount.Mul(decimal.NewFromInt(moveType.Sign())),
		Quantity:          quantity,
		Rate:              rate,
		CurrencyPrecision: currency.Precision,
		CompanyPrecision:  companyPrecision,
		RoundingMethod:    company.RoundingMethod,
	})
	if err != nil {
		return nil, err
	}

	explodeIn := taxcalc.ExplodeInput{
		IsRefund:          moveType.IsRefund(),
		CurrencyPrecision: currency.Precision,
		CompanyPrecision:  companyPrecision,
		RoundingMethod:    company.RoundingMethod,
		NewID:             uuid.NewString,
	}
	var details []domain.TaxDetail
	for _, ct := range result.Taxes {
		details = append(details, taxcalc.Explode(explodeIn, ct)...)
	}
	details = taxcalc.Aggregate(details)

	res := &dto.PreviewTaxResponse{
		TotalExcludedCurrency: result.TotalExcludedCurrency,
		TotalIncludedCurrency: result.TotalIncludedCurrency,
		TotalExcluded:         result.TotalExcluded,
		TotalIncluded:         result.TotalIncluded,
	}
	for _, ct := range result.Taxes {
		res.Taxes = append(res.Taxes, dto.ComputedTaxResponse{
			TaxID:              ct.Tax.TaxID,
			Name:               ct.Tax.Name,
			BaseAmountCurrency: ct.BaseAmountCurrency,
			BaseAmount:         ct.BaseAmount,
			TaxAmountCurrency:  ct.TaxAmountCurrency,
			TaxAmount:          ct.TaxAmount,
		})
	}
	for i := range details {
		res.Details = append(res.Details, dto.ToTaxDetailResponse(&details[i]))
	}
	return res, nil
}

// loadResolvedTaxes fetches the given taxes, checks them and flattens groups
// into computation order. Shared with the document service, which resolves
// per-line tax sets the same way.
func loadResolvedTaxes(ctx context.Context, taxRepo portsrepo.TaxReader, companyID string, taxIDs []string) ([]domain.TaxDefinition, error) {
	found, err := taxRepo.FindTaxesByIDs(ctx, taxIDs)
	if err != nil {
		return nil, err
	}

	taxes := make([]domain.TaxDefinition, 0, len(taxIDs))
	for _, id := range taxIDs {
		tax, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: tax %q not found", apperrors.ErrValidation, id)
		}
		if tax.CompanyID != companyID {
			return nil, fmt.Errorf("%w: tax %q belongs to another company", apperrors.ErrValidation, id)
		}
		if !tax.IsActive {
			return nil, fmt.Errorf("%w: tax %q is inactive", apperrors.ErrValidation, id)
		}
		taxes = append(taxes, tax)
	}
	return taxcalc.Resolve(taxes)
}
