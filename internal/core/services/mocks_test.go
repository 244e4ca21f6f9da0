package services_test

import (
	"context"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// Shared repository mocks for the service test suites.

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompany, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCompany), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, creatorMembership domain.UserCompany) error {
	args := m.Called(ctx, company, creatorMembership)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) SaveUserCompanyRole(ctx context.Context, membership domain.UserCompany) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// --- Mock TaxRepository ---
type MockTaxRepository struct {
	mock.Mock
}

func (m *MockTaxRepository) FindTaxByID(ctx context.Context, taxID string) (*domain.TaxDefinition, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxDefinition), args.Error(1)
}

func (m *MockTaxRepository) FindTaxesByIDs(ctx context.Context, taxIDs []string) (map[string]domain.TaxDefinition, error) {
	args := m.Called(ctx, taxIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TaxDefinition), args.Error(1)
}

func (m *MockTaxRepository) ListTaxesByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.TaxDefinition, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxDefinition), args.Error(1)
}

func (m *MockTaxRepository) FindRepartitionLineTax(ctx context.Context, repartitionLineID string) (*domain.TaxDefinition, error) {
	args := m.Called(ctx, repartitionLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxDefinition), args.Error(1)
}

func (m *MockTaxRepository) SaveTax(ctx context.Context, tax domain.TaxDefinition) error {
	args := m.Called(ctx, tax)
	return args.Error(0)
}

func (m *MockTaxRepository) UpdateTax(ctx context.Context, tax domain.TaxDefinition) error {
	args := m.Called(ctx, tax)
	return args.Error(0)
}

func (m *MockTaxRepository) DeactivateTax(ctx context.Context, taxID string, updatedByUserID string) error {
	args := m.Called(ctx, taxID, updatedByUserID)
	return args.Error(0)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.Document, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindLinesByDocumentID(ctx context.Context, documentID string) ([]domain.DocumentLine, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentLine), args.Error(1)
}

func (m *MockDocumentRepository) FindTaxDetailsByDocumentID(ctx context.Context, documentID string) ([]domain.TaxDetail, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxDetail), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.Document, lines []domain.DocumentLine, details []domain.TaxDetail) error {
	args := m.Called(ctx, document, lines, details)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, document domain.Document, lines []domain.DocumentLine, details []domain.TaxDetail) error {
	args := m.Called(ctx, document, lines, details)
	return args.Error(0)
}

func (m *MockDocumentRepository) ReplaceTaxDetails(ctx context.Context, documentID string, details []domain.TaxDetail) error {
	args := m.Called(ctx, documentID, details)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedByUserID string) error {
	args := m.Called(ctx, documentID, status, updatedByUserID)
	return args.Error(0)
}

// --- Mock CompanyAuthorizer ---
type MockCompanyAuthorizer struct {
	mock.Mock
}

func (m *MockCompanyAuthorizer) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}
