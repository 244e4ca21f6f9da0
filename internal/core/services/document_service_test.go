package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_engine_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engine_app/internal/core/services"
	"github.com/SscSPs/tax_engine_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func newPercentTax(companyID, taxID string, amount string) domain.TaxDefinition {
	invoice := []domain.RepartitionLine{
		{RepartitionLineID: taxID + "-inv-base", RepartitionType: domain.RepartitionBase, FactorPercent: decimal.NewFromInt(100), Sequence: 1},
		{RepartitionLineID: taxID + "-inv-tax", RepartitionType: domain.RepartitionTax, FactorPercent: decimal.NewFromInt(100), Sequence: 2},
	}
	refund := []domain.RepartitionLine{
		{RepartitionLineID: taxID + "-ref-base", RepartitionType: domain.RepartitionBase, FactorPercent: decimal.NewFromInt(100), Sequence: 1},
		{RepartitionLineID: taxID + "-ref-tax", RepartitionType: domain.RepartitionTax, FactorPercent: decimal.NewFromInt(100), Sequence: 2},
	}
	return domain.TaxDefinition{
		TaxID:                   taxID,
		CompanyID:               companyID,
		Name:                    "VAT " + amount,
		TaxUse:                  domain.TaxUsePurchase,
		AmountType:              domain.AmountTypePercent,
		Amount:                  decimal.RequireFromString(amount),
		IsActive:                true,
		InvoiceRepartitionLines: invoice,
		RefundRepartitionLines:  refund,
	}
}

// --- Test Suite ---
type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo      *MockDocumentRepository
	mockTaxRepo      *MockTaxRepository
	mockCompanyRepo  *MockCompanyRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockAuthorizer   *MockCompanyAuthorizer
	service          portssvc.DocumentSvcFacade

	companyID string
	userID    string
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockTaxRepo = new(MockTaxRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewDocumentService(
		suite.mockDocRepo,
		suite.mockTaxRepo,
		suite.mockCompanyRepo,
		suite.mockCurrencyRepo,
		suite.mockAuthorizer,
	)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *DocumentServiceTestSuite) expectComputeFixtures(ctx context.Context) {
	suite.expectComputeFixturesRounding(ctx, domain.RoundPerLine)
}

func (suite *DocumentServiceTestSuite) expectComputeFixturesRounding(ctx context.Context, method domain.RoundingMethod) {
	usd := "USD"
	company := &domain.Company{
		CompanyID:           suite.companyID,
		Name:                "Test Co",
		DefaultCurrencyCode: &usd,
		RoundingMethod:      method,
		IsActive:            true,
	}
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(company, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Once()
}

func (suite *DocumentServiceTestSuite) draftDocument(docID string) *domain.Document {
	return &domain.Document{
		DocumentID:   docID,
		CompanyID:    suite.companyID,
		MoveType:     domain.MoveTypeInInvoice,
		CurrencyCode: "USD",
		Rate:         decimal.NewFromInt(1),
		DocumentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:       domain.DocumentDraft,
	}
}

// --- Test Cases ---

func (suite *DocumentServiceTestSuite) TestCreateDocument_ComputesDetails() {
	ctx := context.Background()
	tax := newPercentTax(suite.companyID, "vat10", "10")

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectComputeFixtures(ctx)
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(d domain.Document) bool {
		return d.CompanyID == suite.companyID && d.Status == domain.DocumentDraft
	}), mock.Anything, mock.MatchedBy(func(details []domain.TaxDetail) bool {
		return len(details) == 1
	})).Return(nil).Once()

	req := dto.CreateDocumentRequest{
		MoveType:     "in_invoice",
		CurrencyCode: "USD",
		DocumentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateDocumentLineRequest{
			{Label: "consulting", AmountCurrency: decimal.NewFromInt(100), TaxIDs: []string{"vat10"}},
		},
	}

	result, err := suite.service.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.DocumentDraft, result.Document.Status)
	suite.Require().Len(result.Lines, 1)
	suite.Equal("100", result.Lines[0].Amount.String())
	suite.Require().Len(result.Details, 1)
	detail := result.Details[0]
	suite.Equal("vat10", detail.TaxID)
	suite.Equal("vat10-inv-tax", detail.RepartitionLineID)
	suite.Equal("10", detail.TaxAmountCurrency.String())
	suite.Equal("100", detail.BaseAmountCurrency.String())
	suite.Equal(result.Lines[0].LineID, detail.BaseLineID)
	suite.False(result.ToleranceExceeded)
	suite.Empty(result.Warnings)

	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_RoundGloballyKeepsPerLineRows() {
	ctx := context.Background()
	tax := newPercentTax(suite.companyID, "vat10", "10")

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectComputeFixturesRounding(ctx, domain.RoundGlobally)
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Twice()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	amount := decimal.RequireFromString("-0.15")
	req := dto.CreateDocumentRequest{
		MoveType:     "in_invoice",
		CurrencyCode: "USD",
		DocumentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateDocumentLineRequest{
			{Label: "credit a", AmountCurrency: amount, TaxIDs: []string{"vat10"}},
			{Label: "credit b", AmountCurrency: amount, TaxIDs: []string{"vat10"}},
		},
	}

	result, err := suite.service.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result.Lines, 2)
	// Each line keeps its own detail row at the extended precision; the rows
	// are never collapsed into one sum across lines.
	suite.Require().Len(result.Details, 2)
	for i, detail := range result.Details {
		suite.Equal("vat10-inv-tax", detail.RepartitionLineID)
		suite.Equal("-0.015", detail.TaxAmountCurrency.String())
		suite.Equal("-0.15", detail.BaseAmountCurrency.String())
		suite.Equal(result.Lines[i].LineID, detail.BaseLineID)
	}
	suite.NotEqual(result.Details[0].BaseLineID, result.Details[1].BaseLineID)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_NoneUseTaxRejected() {
	ctx := context.Background()
	tax := newPercentTax(suite.companyID, "vat10", "10")
	tax.TaxUse = domain.TaxUseNone

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectComputeFixtures(ctx)
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()

	req := dto.CreateDocumentRequest{
		MoveType:     "in_invoice",
		CurrencyCode: "USD",
		DocumentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateDocumentLineRequest{
			{AmountCurrency: decimal.NewFromInt(100), TaxIDs: []string{"vat10"}},
		},
	}

	result, err := suite.service.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.Nil(result)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_ManualTaxLineKeptUnrounded() {
	ctx := context.Background()
	tax := newPercentTax(suite.companyID, "vat10", "10")
	repLineID := "vat10-inv-tax"
	taxID := "vat10"

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectComputeFixtures(ctx)
	suite.mockTaxRepo.On("FindRepartitionLineTax", ctx, repLineID).Return(&tax, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.CreateDocumentRequest{
		MoveType:     "in_invoice",
		CurrencyCode: "USD",
		Rate:         decimal.NewFromInt(3),
		DocumentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateDocumentLineRequest{
			{Label: "imported VAT", AmountCurrency: decimal.NewFromInt(10), TaxRepartitionLineID: &repLineID, TaxLineTaxID: &taxID},
		},
	}

	result, err := suite.service.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result.Details, 1)
	detail := result.Details[0]
	suite.Equal("10", detail.TaxAmountCurrency.String())
	// The company amount keeps the full quotient of 10/3; it is never rounded
	// here so posting can reconcile it exactly.
	suite.Equal("3.3333333333333333", detail.TaxAmount.String())
	suite.True(detail.BaseAmountCurrency.IsZero())
	suite.Equal("3.3333333333333333", result.Lines[0].Amount.String())
	suite.False(result.ToleranceExceeded)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_UnknownRepartitionLineWarns() {
	ctx := context.Background()
	repLineID := "missing-line"
	taxID := "vat10"

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectComputeFixtures(ctx)
	suite.mockTaxRepo.On("FindRepartitionLineTax", ctx, repLineID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.CreateDocumentRequest{
		MoveType:     "in_invoice",
		CurrencyCode: "USD",
		DocumentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateDocumentLineRequest{
			{AmountCurrency: decimal.NewFromInt(10), TaxRepartitionLineID: &repLineID, TaxLineTaxID: &taxID},
		},
	}

	result, err := suite.service.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(result.Details)
	suite.Require().Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], repLineID)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_LineWithTaxesAndRepartitionRejected() {
	ctx := context.Background()
	repLineID := "vat10-inv-tax"
	taxID := "vat10"

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	req := dto.CreateDocumentRequest{
		MoveType:     "in_invoice",
		CurrencyCode: "USD",
		DocumentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateDocumentLineRequest{
			{AmountCurrency: decimal.NewFromInt(10), TaxIDs: []string{"vat10"}, TaxRepartitionLineID: &repLineID, TaxLineTaxID: &taxID},
		},
	}

	result, err := suite.service.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_PostedRejected() {
	ctx := context.Background()
	doc := suite.draftDocument("doc-1")
	doc.Status = domain.DocumentPosted

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()

	result, err := suite.service.UpdateDocument(ctx, suite.companyID, "doc-1", dto.UpdateDocumentRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "UpdateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestPostDocument_Success() {
	ctx := context.Background()
	doc := suite.draftDocument("doc-1")

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()
	suite.mockDocRepo.On("UpdateDocumentStatus", ctx, "doc-1", domain.DocumentPosted, suite.userID).Return(nil).Once()

	err := suite.service.PostDocument(ctx, suite.companyID, "doc-1", suite.userID)

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestPostDocument_AlreadyPosted() {
	ctx := context.Background()
	doc := suite.draftDocument("doc-1")
	doc.Status = domain.DocumentPosted

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()

	err := suite.service.PostDocument(ctx, suite.companyID, "doc-1", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "UpdateDocumentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) storedLines(docID string) []domain.DocumentLine {
	return []domain.DocumentLine{
		{
			LineID:         "line-1",
			DocumentID:     docID,
			Quantity:       decimal.NewFromInt(1),
			Amount:         decimal.NewFromInt(100),
			AmountCurrency: decimal.NewFromInt(100),
			TaxIDs:         []string{"vat10"},
		},
	}
}

func (suite *DocumentServiceTestSuite) TestRecomputeTaxDetails_Force() {
	ctx := context.Background()
	tax := newPercentTax(suite.companyID, "vat10", "10")
	doc := suite.draftDocument("doc-1")
	doc.Status = domain.DocumentPosted

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()
	suite.mockDocRepo.On("FindLinesByDocumentID", ctx, "doc-1").Return(suite.storedLines("doc-1"), nil).Once()
	suite.expectComputeFixtures(ctx)
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()
	suite.mockDocRepo.On("ReplaceTaxDetails", ctx, "doc-1", mock.MatchedBy(func(details []domain.TaxDetail) bool {
		return len(details) == 1 && details[0].TaxAmountCurrency.Equal(decimal.NewFromInt(10))
	})).Return(nil).Once()

	result, err := suite.service.RecomputeTaxDetails(ctx, suite.companyID, "doc-1", true, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result.Details, 1)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestRecomputeTaxDetails_PostedDriftWithoutForce() {
	ctx := context.Background()
	tax := newPercentTax(suite.companyID, "vat10", "10")
	doc := suite.draftDocument("doc-1")
	doc.Status = domain.DocumentPosted

	stored := []domain.TaxDetail{
		{DetailID: "old-1", DocumentID: "doc-1", TaxID: "vat10", RepartitionLineID: "vat10-inv-tax", TaxAmountCurrency: decimal.NewFromInt(9)},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()
	suite.mockDocRepo.On("FindLinesByDocumentID", ctx, "doc-1").Return(suite.storedLines("doc-1"), nil).Once()
	suite.expectComputeFixtures(ctx)
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()
	suite.mockDocRepo.On("FindTaxDetailsByDocumentID", ctx, "doc-1").Return(stored, nil).Once()

	result, err := suite.service.RecomputeTaxDetails(ctx, suite.companyID, "doc-1", false, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStaleTaxDetails)
	suite.Nil(result)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "ReplaceTaxDetails", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestRecomputeTaxDetails_PostedBaseDriftWithoutForce() {
	ctx := context.Background()
	tax := newPercentTax(suite.companyID, "vat10", "10")
	doc := suite.draftDocument("doc-1")
	doc.Status = domain.DocumentPosted

	// Tax amount matches the fresh computation but the base it was computed
	// over does not.
	stored := []domain.TaxDetail{
		{DetailID: "old-1", DocumentID: "doc-1", TaxID: "vat10", RepartitionLineID: "vat10-inv-tax", BaseAmountCurrency: decimal.NewFromInt(90), TaxAmountCurrency: decimal.NewFromInt(10)},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()
	suite.mockDocRepo.On("FindLinesByDocumentID", ctx, "doc-1").Return(suite.storedLines("doc-1"), nil).Once()
	suite.expectComputeFixtures(ctx)
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()
	suite.mockDocRepo.On("FindTaxDetailsByDocumentID", ctx, "doc-1").Return(stored, nil).Once()

	result, err := suite.service.RecomputeTaxDetails(ctx, suite.companyID, "doc-1", false, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStaleTaxDetails)
	suite.Nil(result)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "ReplaceTaxDetails", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestRecomputeTaxDetails_PostedUnchangedIsNoop() {
	ctx := context.Background()
	tax := newPercentTax(suite.companyID, "vat10", "10")
	doc := suite.draftDocument("doc-1")
	doc.Status = domain.DocumentPosted

	stored := []domain.TaxDetail{
		{DetailID: "old-1", DocumentID: "doc-1", TaxID: "vat10", RepartitionLineID: "vat10-inv-tax", BaseAmountCurrency: decimal.NewFromInt(100), TaxAmountCurrency: decimal.NewFromInt(10)},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()
	suite.mockDocRepo.On("FindLinesByDocumentID", ctx, "doc-1").Return(suite.storedLines("doc-1"), nil).Once()
	suite.expectComputeFixtures(ctx)
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()
	suite.mockDocRepo.On("FindTaxDetailsByDocumentID", ctx, "doc-1").Return(stored, nil).Once()

	result, err := suite.service.RecomputeTaxDetails(ctx, suite.companyID, "doc-1", false, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(stored, result.Details)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "ReplaceTaxDetails", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestGetDocumentByID_OtherCompany() {
	ctx := context.Background()
	doc := suite.draftDocument("doc-1")
	doc.CompanyID = uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()

	got, lines, details, err := suite.service.GetDocumentByID(ctx, suite.companyID, "doc-1", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
	suite.Nil(lines)
	suite.Nil(details)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
