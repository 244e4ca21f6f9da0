package repositories

import (
	"context"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
)

// TaxReader defines read operations for tax definitions
type TaxReader interface {
	// FindTaxByID retrieves a tax with its repartition lines and child ids.
	FindTaxByID(ctx context.Context, taxID string) (*domain.TaxDefinition, error)

	// FindTaxesByIDs retrieves several taxes at once, keyed by tax id.
	FindTaxesByIDs(ctx context.Context, taxIDs []string) (map[string]domain.TaxDefinition, error)

	// ListTaxesByCompany retrieves a paginated list of a company's taxes.
	ListTaxesByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.TaxDefinition, error)

	// FindRepartitionLineTax resolves the tax owning a repartition line.
	FindRepartitionLineTax(ctx context.Context, repartitionLineID string) (*domain.TaxDefinition, error)
}

// TaxWriter defines write operations for tax definitions
type TaxWriter interface {
	// SaveTax persists a tax, its repartition lines and its group children
	// atomically.
	SaveTax(ctx context.Context, tax domain.TaxDefinition) error

	// UpdateTax replaces a tax's scalar fields, repartition lines and
	// children atomically.
	UpdateTax(ctx context.Context, tax domain.TaxDefinition) error

	// DeactivateTax soft deletes a tax so existing documents keep their history.
	DeactivateTax(ctx context.Context, taxID string, updatedByUserID string) error
}

// TaxRepositoryFacade combines all tax-related repository interfaces
// This is a facade for clients that need access to all operations
type TaxRepositoryFacade interface {
	TaxReader
	TaxWriter
}

// TaxRepositoryWithTx extends TaxRepositoryFacade with transaction capabilities
type TaxRepositoryWithTx interface {
	TaxRepositoryFacade
	TransactionManager
}
