package pgsql

import (
	portsrepo "github.com/SscSPs/tax_engine_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	taxRepo := newPgxTaxRepository(dbPool)
	documentRepo := newPgxDocumentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo: currencyRepo,
		UserRepo:     userRepo,
		CompanyRepo:  companyRepo,
		TaxRepo:      taxRepo,
		DocumentRepo: documentRepo,
	}
}
