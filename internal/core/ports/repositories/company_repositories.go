package repositories

import (
	"context"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompaniesByUser retrieves the companies a user belongs to.
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)

	// FindUserCompanyRole retrieves the membership of a user in a company, if any.
	FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompany, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company and its creator's admin membership.
	SaveCompany(ctx context.Context, company domain.Company, creatorMembership domain.UserCompany) error

	// UpdateCompany persists changes to an existing company.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// SaveUserCompanyRole creates or updates a user's membership in a company.
	SaveUserCompanyRole(ctx context.Context, membership domain.UserCompany) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
// This is a facade for clients that need access to all operations
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}

// CompanyRepositoryWithTx extends CompanyRepositoryFacade with transaction capabilities
type CompanyRepositoryWithTx interface {
	CompanyRepositoryFacade
	TransactionManager
}
