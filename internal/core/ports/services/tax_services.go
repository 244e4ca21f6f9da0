package services

import (
	"context"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/dto"
)

// TaxReaderSvc defines read operations for tax definitions
type TaxReaderSvc interface {
	// GetTaxByID retrieves a tax with its repartition lines.
	GetTaxByID(ctx context.Context, companyID, taxID string, requestingUserID string) (*domain.TaxDefinition, error)

	// ListTaxes retrieves a paginated list of a company's taxes.
	ListTaxes(ctx context.Context, companyID string, params dto.ListTaxesParams, requestingUserID string) ([]domain.TaxDefinition, error)
}

// TaxWriterSvc defines write operations for tax definitions
type TaxWriterSvc interface {
	// CreateTax validates and persists a new tax.
	CreateTax(ctx context.Context, companyID string, req dto.CreateTaxRequest, creatorUserID string) (*domain.TaxDefinition, error)

	// UpdateTax validates and persists changes to an existing tax.
	UpdateTax(ctx context.Context, companyID, taxID string, req dto.UpdateTaxRequest, requestingUserID string) (*domain.TaxDefinition, error)

	// DeactivateTax soft deletes a tax.
	DeactivateTax(ctx context.Context, companyID, taxID string, requestingUserID string) error
}

// TaxComputerSvc defines dry-run computation operations
type TaxComputerSvc interface {
	// PreviewTaxes computes a set of taxes over a single amount without
	// creating any document.
	PreviewTaxes(ctx context.Context, companyID string, req dto.PreviewTaxRequest, requestingUserID string) (*dto.PreviewTaxResponse, error)
}

// TaxSvcFacade combines all tax-related service interfaces
// This is a facade for clients that need access to all operations
type TaxSvcFacade interface {
	TaxReaderSvc
	TaxWriterSvc
	TaxComputerSvc
}
