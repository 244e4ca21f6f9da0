package repositories

import (
	"context"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
)

// DocumentReader defines read operations for documents and their lines
type DocumentReader interface {
	// FindDocumentByID retrieves a specific document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocumentsByCompany retrieves a paginated list of a company's documents.
	ListDocumentsByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.Document, error)

	// FindLinesByDocumentID retrieves all lines of a document in creation order.
	FindLinesByDocumentID(ctx context.Context, documentID string) ([]domain.DocumentLine, error)

	// FindTaxDetailsByDocumentID retrieves the stored tax detail rows of a document.
	FindTaxDetailsByDocumentID(ctx context.Context, documentID string) ([]domain.TaxDetail, error)
}

// DocumentWriter defines write operations for documents
type DocumentWriter interface {
	// SaveDocument persists a document, its lines and its computed tax
	// details in one transaction.
	SaveDocument(ctx context.Context, document domain.Document, lines []domain.DocumentLine, details []domain.TaxDetail) error

	// UpdateDocument replaces a document's scalar fields and lines, and swaps
	// the stored tax details for the freshly computed set atomically.
	UpdateDocument(ctx context.Context, document domain.Document, lines []domain.DocumentLine, details []domain.TaxDetail) error

	// ReplaceTaxDetails atomically swaps all detail rows of a document.
	ReplaceTaxDetails(ctx context.Context, documentID string, details []domain.TaxDetail) error

	// UpdateDocumentStatus moves a document through its lifecycle.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedByUserID string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
// This is a facade for clients that need access to all operations
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends DocumentRepositoryFacade with transaction capabilities
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
