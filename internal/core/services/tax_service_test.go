package services_test

import (
	"context"
	"testing"

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

// --- Test Suite ---
type TaxServiceTestSuite struct {
	suite.Suite
	mockTaxRepo      *MockTaxRepository
	mockCompanyRepo  *MockCompanyRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockAuthorizer   *MockCompanyAuthorizer
	service          portssvc.TaxSvcFacade

	companyID string
	userID    string
}

func (suite *TaxServiceTestSuite) SetupTest() {
	suite.mockTaxRepo = new(MockTaxRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewTaxService(
		suite.mockTaxRepo,
		suite.mockCompanyRepo,
		suite.mockCurrencyRepo,
		suite.mockAuthorizer,
	)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TaxServiceTestSuite) usdCompany() *domain.Company {
	usd := "USD"
	return &domain.Company{
		CompanyID:           suite.companyID,
		Name:                "Test Co",
		DefaultCurrencyCode: &usd,
		RoundingMethod:      domain.RoundPerLine,
		IsActive:            true,
	}
}

func (suite *TaxServiceTestSuite) percentTax(taxID string, amount string) domain.TaxDefinition {
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
		CompanyID:               suite.companyID,
		Name:                    "VAT " + amount,
		TaxUse:                  domain.TaxUsePurchase,
		AmountType:              domain.AmountTypePercent,
		Amount:                  decimal.RequireFromString(amount),
		IsActive:                true,
		InvoiceRepartitionLines: invoice,
		RefundRepartitionLines:  refund,
	}
}

// --- Test Cases ---

func (suite *TaxServiceTestSuite) TestCreateTax_Success() {
	ctx := context.Background()
	req := dto.CreateTaxRequest{
		Name:       "VAT 15%",
		TaxUse:     "purchase",
		AmountType: "percent",
		Amount:     decimal.NewFromInt(15),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockTaxRepo.On("SaveTax", ctx, mock.MatchedBy(func(t domain.TaxDefinition) bool {
		return t.CompanyID == suite.companyID &&
			t.Name == req.Name &&
			t.AmountType == domain.AmountTypePercent &&
			t.IsActive &&
			len(t.InvoiceRepartitionLines) == 2 &&
			len(t.RefundRepartitionLines) == 2
	})).Return(nil).Once()

	tax, err := suite.service.CreateTax(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(tax)
	suite.Equal(req.Name, tax.Name)
	suite.True(tax.IsActive)
	// Omitted repartition lines default to a single full base and tax pair.
	suite.Equal(domain.RepartitionBase, tax.InvoiceRepartitionLines[0].RepartitionType)
	suite.Equal(domain.RepartitionTax, tax.InvoiceRepartitionLines[1].RepartitionType)

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockTaxRepo.AssertExpectations(suite.T())
}

func (suite *TaxServiceTestSuite) TestCreateTax_NotAdmin() {
	ctx := context.Background()
	req := dto.CreateTaxRequest{Name: "VAT", TaxUse: "sale", AmountType: "percent", Amount: decimal.NewFromInt(10)}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	tax, err := suite.service.CreateTax(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(tax)
	suite.mockTaxRepo.AssertNotCalled(suite.T(), "SaveTax", mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestCreateTax_BadRepartitionFactors() {
	ctx := context.Background()
	req := dto.CreateTaxRequest{
		Name:       "VAT",
		TaxUse:     "sale",
		AmountType: "percent",
		Amount:     decimal.NewFromInt(10),
		InvoiceRepartitionLines: []dto.RepartitionLineRequest{
			{RepartitionType: "base", FactorPercent: decimal.NewFromInt(100), Sequence: 1},
			{RepartitionType: "tax", FactorPercent: decimal.NewFromInt(60), Sequence: 2},
		},
		RefundRepartitionLines: []dto.RepartitionLineRequest{
			{RepartitionType: "base", FactorPercent: decimal.NewFromInt(100), Sequence: 1},
			{RepartitionType: "tax", FactorPercent: decimal.NewFromInt(60), Sequence: 2},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).Return(nil).Once()

	tax, err := suite.service.CreateTax(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.Nil(tax)
	suite.mockTaxRepo.AssertNotCalled(suite.T(), "SaveTax", mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestGetTaxByID_OtherCompany() {
	ctx := context.Background()
	tax := suite.percentTax("vat10", "10")
	tax.CompanyID = uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTaxRepo.On("FindTaxByID", ctx, "vat10").Return(&tax, nil).Once()

	got, err := suite.service.GetTaxByID(ctx, suite.companyID, "vat10", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func (suite *TaxServiceTestSuite) TestPreviewTaxes_PercentExcluded() {
	ctx := context.Background()
	tax := suite.percentTax("vat10", "10")

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(suite.usdCompany(), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Once()
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()

	res, err := suite.service.PreviewTaxes(ctx, suite.companyID, dto.PreviewTaxRequest{
		TaxIDs: []string{"vat10"},
		Amount: decimal.NewFromInt(100),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(res)
	suite.Equal("100", res.TotalExcludedCurrency.String())
	suite.Equal("110", res.TotalIncludedCurrency.String())
	suite.Require().Len(res.Taxes, 1)
	suite.Equal("10", res.Taxes[0].TaxAmountCurrency.String())
	suite.Equal("100", res.Taxes[0].BaseAmountCurrency.String())
	suite.Require().Len(res.Details, 1)
	suite.Equal("vat10-inv-tax", res.Details[0].RepartitionLineID)
	suite.Equal("10", res.Details[0].TaxAmountCurrency.String())
}

func (suite *TaxServiceTestSuite) TestPreviewTaxes_CustomerInvoiceIsNegative() {
	ctx := context.Background()
	tax := suite.percentTax("vat10", "10")

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(suite.usdCompany(), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Once()
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()

	res, err := suite.service.PreviewTaxes(ctx, suite.companyID, dto.PreviewTaxRequest{
		TaxIDs:   []string{"vat10"},
		Amount:   decimal.NewFromInt(100),
		MoveType: "out_invoice",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(res.Taxes, 1)
	suite.Equal("-10", res.Taxes[0].TaxAmountCurrency.String())
	suite.Equal("-100", res.Taxes[0].BaseAmountCurrency.String())
}

func (suite *TaxServiceTestSuite) TestPreviewTaxes_InactiveTaxRejected() {
	ctx := context.Background()
	tax := suite.percentTax("vat10", "10")
	tax.IsActive = false

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(suite.usdCompany(), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Once()
	suite.mockTaxRepo.On("FindTaxesByIDs", ctx, []string{"vat10"}).Return(map[string]domain.TaxDefinition{"vat10": tax}, nil).Once()

	res, err := suite.service.PreviewTaxes(ctx, suite.companyID, dto.PreviewTaxRequest{
		TaxIDs: []string{"vat10"},
		Amount: decimal.NewFromInt(100),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(res)
}

func (suite *TaxServiceTestSuite) TestDeactivateTax_Success() {
	ctx := context.Background()
	tax := suite.percentTax("vat10", "10")

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockTaxRepo.On("FindTaxByID", ctx, "vat10").Return(&tax, nil).Once()
	suite.mockTaxRepo.On("DeactivateTax", ctx, "vat10", suite.userID).Return(nil).Once()

	err := suite.service.DeactivateTax(ctx, suite.companyID, "vat10", suite.userID)

	suite.Require().NoError(err)
	suite.mockTaxRepo.AssertExpectations(suite.T())
}

func TestTaxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxServiceTestSuite))
}
