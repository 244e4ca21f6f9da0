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
	"github.com/SscSPs/tax_engine_app/internal/utils/rounding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// documentService implements the DocumentSvcFacade interface
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	taxRepo      portsrepo.TaxRepositoryFacade
	companyRepo  portsrepo.CompanyReader
	currencyRepo portsrepo.CurrencyReader
	authorizer   portssvc.CompanyAuthorizerSvc
}

// NewDocumentService creates a new document service with the provided dependencies
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	taxRepo portsrepo.TaxRepositoryFacade,
	companyRepo portsrepo.CompanyReader,
	currencyRepo portsrepo.CurrencyReader,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		taxRepo:      taxRepo,
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
		authorizer:   authorizer,
	}
}

// Ensure documentService implements the DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument persists a document, computing its tax details from the base lines.
func (s *documentService) CreateDocument(ctx context.Context, companyID string, req dto.CreateDocumentRequest, creatorUserID string) (*portssvc.RecomputeResult, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	rate := req.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: conversion rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	doc := domain.Document{
		DocumentID:   uuid.NewString(),
		CompanyID:    companyID,
		MoveType:     domain.MoveType(req.MoveType),
		CurrencyCode: req.CurrencyCode,
		Rate:         rate,
		DocumentDate: req.DocumentDate,
		Reference:    req.Reference,
		Status:       domain.DocumentDraft,
		AuditFields:  audit,
	}

	lines, err := buildDocumentLines(doc.DocumentID, req.Lines, audit)
	if err != nil {
		return nil, err
	}

	result, err := s.computeTaxDetails(ctx, &doc, lines)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.SaveDocument(ctx, doc, result.Lines, result.Details); err != nil {
		s.LogError(ctx, err, "Failed to save document", slog.String("document_id", doc.DocumentID))
		return nil, err
	}

	s.LogInfo(ctx, "Document created successfully",
		slog.String("document_id", doc.DocumentID),
		slog.String("company_id", companyID),
		slog.Int("tax_detail_count", len(result.Details)))
	return result, nil
}

// buildDocumentLines mints domain lines from request lines.
func buildDocumentLines(documentID string, reqs []dto.CreateDocumentLineRequest, audit domain.AuditFields) ([]domain.DocumentLine, error) {
	lines := make([]domain.DocumentLine, len(reqs))
	for i, r := range reqs {
		if r.TaxRepartitionLineID != nil && len(r.TaxIDs) > 0 {
			return nil, fmt.Errorf("%w: a line cannot both carry taxes and be a manual tax line", apperrors.ErrValidation)
		}
		if (r.TaxRepartitionLineID == nil) != (r.TaxLineTaxID == nil) {
			return nil, fmt.Errorf("%w: a manual tax line needs both its tax and its repartition line", apperrors.ErrValidation)
		}
		quantity := r.Quantity
		if quantity.IsZero() {
			quantity = decimal.NewFromInt(1)
		}
		lines[i] = domain.DocumentLine{
			LineID:               uuid.NewString(),
			DocumentID:           documentID,
			Label:                r.Label,
			Quantity:             quantity,
			AmountCurrency:       r.AmountCurrency,
			TaxIDs:               r.TaxIDs,
			TaxRepartitionLineID: r.TaxRepartitionLineID,
			TaxLineTaxID:         r.TaxLineTaxID,
			AuditFields:          audit,
		}
	}
	return lines, nil
}

// computeTaxDetails runs the engine over a document's lines. Base lines get
// their taxes computed and exploded over repartition lines; every row keeps
// the base line it came from so downstream consumers can attribute amounts
// per line. Manual tax lines are converted as-is, keeping the unrounded
// quotient so no precision is lost before posting.
func (s *documentService) computeTaxDetails(ctx context.Context, doc *domain.Document, lines []domain.DocumentLine) (*portssvc.RecomputeResult, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, doc.CompanyID)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, doc.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %q not found", apperrors.ErrValidation, doc.CurrencyCode)
		}
		return nil, err
	}

	companyPrecision := currency.Precision
	if company.DefaultCurrencyCode != nil && *company.DefaultCurrencyCode != doc.CurrencyCode {
		companyCurrency, err := s.currencyRepo.FindCurrencyByCode(ctx, *company.DefaultCurrencyCode)
		if err != nil {
			return nil, err
		}
		companyPrecision = companyCurrency.Precision
	}

	sign := decimal.NewFromInt(doc.MoveType.Sign())
	isRefund := doc.MoveType.IsRefund()

	result := &portssvc.RecomputeResult{Document: *doc}
	var baseDetails []domain.TaxDetail
	var manualDetails []domain.TaxDetail

	for i := range lines {
		line := &lines[i]
		signedCurrency := line.AmountCurrency.Mul(sign)

		if line.IsTaxLine() {
			detail, warning, exceeded, err := s.reconcileManualTaxLine(ctx, doc, line, signedCurrency, companyPrecision)
			if err != nil {
				return nil, err
			}
			if warning != "" {
				result.Warnings = append(result.Warnings, warning)
			}
			if exceeded {
				result.ToleranceExceeded = true
			}
			if detail != nil {
				manualDetails = append(manualDetails, *detail)
			}
			continue
		}

		line.Amount = rounding.Round(line.AmountCurrency.Div(doc.Rate), companyPrecision)
		if len(line.TaxIDs) == 0 {
			continue
		}

		taxes, err := loadResolvedTaxes(ctx, s.taxRepo, doc.CompanyID, line.TaxIDs)
		if err != nil {
			return nil, err
		}

		computed, err := taxcalc.Compute(taxcalc.Input{
			Taxes:             taxes,
			IsRefund:          isRefund,
			AmountCurrency:    signedCurrency,
			Quantity:          line.Quantity,
			Rate:              doc.Rate,
			CurrencyPrecision: currency.Precision,
			CompanyPrecision:  companyPrecision,
			RoundingMethod:    company.RoundingMethod,
		})
		if err != nil {
			return nil, err
		}

		explodeIn := taxcalc.ExplodeInput{
			DocumentID:        doc.DocumentID,
			BaseLineID:        line.LineID,
			IsRefund:          isRefund,
			CurrencyPrecision: currency.Precision,
			CompanyPrecision:  companyPrecision,
			RoundingMethod:    company.RoundingMethod,
			NewID:             uuid.NewString,
		}
		for _, ct := range computed.Taxes {
			baseDetails = append(baseDetails, taxcalc.Explode(explodeIn, ct)...)
		}
	}

	result.Lines = lines
	result.Details = append(baseDetails, manualDetails...)
	return result, nil
}

// reconcileManualTaxLine turns a manual tax line into a detail row. The
// company amount keeps the full quotient of the currency amount and the rate;
// rounding here would lose the sub-unit precision the currency conversion
// produced, so only display layers round it.
func (s *documentService) reconcileManualTaxLine(ctx context.Context, doc *domain.Document, line *domain.DocumentLine, signedCurrency decimal.Decimal, companyPrecision int32) (*domain.TaxDetail, string, bool, error) {
	tax, err := s.taxRepo.FindRepartitionLineTax(ctx, *line.TaxRepartitionLineID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			warning := fmt.Sprintf("tax line %s references unknown repartition line %s", line.LineID, *line.TaxRepartitionLineID)
			return nil, warning, false, nil
		}
		return nil, "", false, err
	}
	if line.TaxLineTaxID != nil && tax.TaxID != *line.TaxLineTaxID {
		return nil, "", false, fmt.Errorf("%w: repartition line %s does not belong to tax %s", apperrors.ErrValidation, *line.TaxRepartitionLineID, *line.TaxLineTaxID)
	}

	unrounded := signedCurrency.Div(doc.Rate)

	exceeded := false
	warning := ""
	if !line.Amount.IsZero() {
		drift := line.Amount.Sub(line.AmountCurrency.Div(doc.Rate)).Abs()
		if drift.GreaterThan(rounding.SmallestUnit(companyPrecision)) {
			exceeded = true
			warning = fmt.Sprintf("tax line %s company amount drifts from its currency amount by %s", line.LineID, drift)
		}
	}
	line.Amount = line.AmountCurrency.Div(doc.Rate)

	detail := &domain.TaxDetail{
		DetailID:          uuid.NewString(),
		DocumentID:        doc.DocumentID,
		BaseLineID:        line.LineID,
		TaxID:             tax.TaxID,
		RepartitionLineID: *line.TaxRepartitionLineID,
		TaxAmount:         unrounded,
		TaxAmountCurrency: signedCurrency,
	}
	return detail, warning, exceeded, nil
}

// GetDocumentByID retrieves a document with its lines and tax details.
func (s *documentService) GetDocumentByID(ctx context.Context, companyID, documentID string, requestingUserID string) (*domain.Document, []domain.DocumentLine, []domain.TaxDetail, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, nil, err
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, nil, nil, err
	}
	if doc.CompanyID != companyID {
		return nil, nil, nil, apperrors.ErrNotFound
	}

	lines, err := s.documentRepo.FindLinesByDocumentID(ctx, documentID)
	if err != nil {
		return nil, nil, nil, err
	}
	details, err := s.documentRepo.FindTaxDetailsByDocumentID(ctx, documentID)
	if err != nil {
		return nil, nil, nil, err
	}
	return doc, lines, details, nil
}

// ListDocuments retrieves a paginated list of a company's documents.
func (s *documentService) ListDocuments(ctx context.Context, companyID string, params dto.ListDocumentsParams, requestingUserID string) ([]domain.Document, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	docs, err := s.documentRepo.ListDocumentsByCompany(ctx, companyID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("company_id", companyID))
		return nil, err
	}
	if docs == nil {
		return []domain.Document{}, nil
	}
	return docs, nil
}

// UpdateDocument replaces a draft document's fields and lines, and recomputes
// its tax details.
func (s *documentService) UpdateDocument(ctx context.Context, companyID, documentID string, req dto.UpdateDocumentRequest, requestingUserID string) (*portssvc.RecomputeResult, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if doc.Status != domain.DocumentDraft {
		return nil, fmt.Errorf("%w: only draft documents can be updated", apperrors.ErrValidation)
	}

	if req.Rate != nil {
		if req.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: conversion rate must be positive", apperrors.ErrValidation)
		}
		doc.Rate = *req.Rate
	}
	if req.DocumentDate != nil {
		doc.DocumentDate = *req.DocumentDate
	}
	if req.Reference != nil {
		doc.Reference = *req.Reference
	}

	now := time.Now()
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = requestingUserID

	var lines []domain.DocumentLine
	if len(req.Lines) > 0 {
		audit := domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		}
		lines, err = buildDocumentLines(documentID, req.Lines, audit)
		if err != nil {
			return nil, err
		}
	} else {
		lines, err = s.documentRepo.FindLinesByDocumentID(ctx, documentID)
		if err != nil {
			return nil, err
		}
	}

	result, err := s.computeTaxDetails(ctx, doc, lines)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.UpdateDocument(ctx, *doc, result.Lines, result.Details); err != nil {
		s.LogError(ctx, err, "Failed to update document", slog.String("document_id", documentID))
		return nil, err
	}

	s.LogInfo(ctx, "Document updated successfully", slog.String("document_id", documentID))
	return result, nil
}

// RecomputeTaxDetails rebuilds a document's tax detail rows from its current
// lines and atomically replaces the stored set. Posted documents are only
// touched when force is set; without it a posted document whose stored rows
// no longer match the fresh computation reports stale details instead.
func (s *documentService) RecomputeTaxDetails(ctx context.Context, companyID, documentID string, force bool, requestingUserID string) (*portssvc.RecomputeResult, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.documentRepo.FindLinesByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	result, err := s.computeTaxDetails(ctx, doc, lines)
	if err != nil {
		return nil, err
	}

	if doc.Status == domain.DocumentPosted && !force {
		stored, err := s.documentRepo.FindTaxDetailsByDocumentID(ctx, documentID)
		if err != nil {
			return nil, err
		}
		if detailsMatch(stored, result.Details) {
			result.Details = stored
			return result, nil
		}
		return nil, fmt.Errorf("%w: posted document %s would change on recompute", apperrors.ErrStaleTaxDetails, documentID)
	}

	if err := s.documentRepo.ReplaceTaxDetails(ctx, documentID, result.Details); err != nil {
		s.LogError(ctx, err, "Failed to replace tax details", slog.String("document_id", documentID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax details recomputed",
		slog.String("document_id", documentID),
		slog.Int("tax_detail_count", len(result.Details)),
		slog.Bool("force", force))
	return result, nil
}

// detailsMatch reports whether two detail sets carry the same tax and base
// amounts per repartition line. Row ids differ between computations and are
// ignored.
func detailsMatch(stored, fresh []domain.TaxDetail) bool {
	if len(stored) != len(fresh) {
		return false
	}
	type key struct {
		repartitionLineID string
		taxID             string
	}
	type sums struct {
		tax  decimal.Decimal
		base decimal.Decimal
	}
	byKey := make(map[key]sums, len(stored))
	for _, d := range stored {
		k := key{d.RepartitionLineID, d.TaxID}
		s := byKey[k]
		s.tax = s.tax.Add(d.TaxAmountCurrency)
		s.base = s.base.Add(d.BaseAmountCurrency)
		byKey[k] = s
	}
	for _, d := range fresh {
		k := key{d.RepartitionLineID, d.TaxID}
		s := byKey[k]
		s.tax = s.tax.Sub(d.TaxAmountCurrency)
		s.base = s.base.Sub(d.BaseAmountCurrency)
		byKey[k] = s
	}
	for _, s := range byKey {
		if !s.tax.IsZero() || !s.base.IsZero() {
			return false
		}
	}
	return true
}

// PostDocument moves a draft document to POSTED.
func (s *documentService) PostDocument(ctx context.Context, companyID, documentID string, requestingUserID string) error {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.CompanyID != companyID {
		return apperrors.ErrNotFound
	}
	if doc.Status != domain.DocumentDraft {
		return fmt.Errorf("%w: document is already posted", apperrors.ErrValidation)
	}

	if err := s.documentRepo.UpdateDocumentStatus(ctx, documentID, domain.DocumentPosted, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to post document", slog.String("document_id", documentID))
		return err
	}

	s.LogInfo(ctx, "Document posted", slog.String("document_id", documentID))
	return nil
}
