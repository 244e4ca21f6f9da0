package services

import (
	portsrepo "github.com/SscSPs/tax_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engine_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engine_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service comes first since tax and document services authorize
	// through it.
	container.Company = NewCompanyService(
		repos.CompanyRepo,
		repos.CurrencyRepo,
	)
	companyAuthorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.User = NewUserService(repos.UserRepo)

	container.Tax = NewTaxService(
		repos.TaxRepo,
		repos.CompanyRepo,
		repos.CurrencyRepo,
		companyAuthorizer,
	)

	container.Document = NewDocumentService(
		repos.DocumentRepo,
		repos.TaxRepo,
		repos.CompanyRepo,
		repos.CurrencyRepo,
		companyAuthorizer,
	)

	container.Token = NewTokenService(cfg)

	return container
}
