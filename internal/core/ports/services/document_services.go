package services

import (
	"context"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/dto"
)

// RecomputeResult carries a recomputed document together with anything the
// engine wants the caller to know about the run.
type RecomputeResult struct {
	Document domain.Document
	Lines    []domain.DocumentLine
	Details  []domain.TaxDetail

	// Warnings lists non-fatal findings, like manual tax lines pointing at
	// repartition lines no applied tax owns.
	Warnings []string

	// ToleranceExceeded is set when stored company amounts drift from the
	// converted currency amounts by more than one smallest currency unit.
	ToleranceExceeded bool
}

// DocumentReaderSvc defines read operations for documents
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves a document with its lines and tax details.
	GetDocumentByID(ctx context.Context, companyID, documentID string, requestingUserID string) (*domain.Document, []domain.DocumentLine, []domain.TaxDetail, error)

	// ListDocuments retrieves a paginated list of a company's documents.
	ListDocuments(ctx context.Context, companyID string, params dto.ListDocumentsParams, requestingUserID string) ([]domain.Document, error)
}

// DocumentWriterSvc defines write operations for documents
type DocumentWriterSvc interface {
	// CreateDocument persists a document, computing its tax details from the
	// base lines.
	CreateDocument(ctx context.Context, companyID string, req dto.CreateDocumentRequest, creatorUserID string) (*RecomputeResult, error)

	// UpdateDocument replaces a draft document's fields and lines, and
	// recomputes its tax details.
	UpdateDocument(ctx context.Context, companyID, documentID string, req dto.UpdateDocumentRequest, requestingUserID string) (*RecomputeResult, error)

	// PostDocument moves a draft document to POSTED.
	PostDocument(ctx context.Context, companyID, documentID string, requestingUserID string) error
}

// DocumentRecomputerSvc defines the tax detail recomputation operation
type DocumentRecomputerSvc interface {
	// RecomputeTaxDetails rebuilds a document's tax detail rows from its
	// current lines and atomically replaces the stored set. With force unset
	// a posted document is left untouched.
	RecomputeTaxDetails(ctx context.Context, companyID, documentID string, force bool, requestingUserID string) (*RecomputeResult, error)
}

// DocumentSvcFacade combines all document-related service interfaces
// This is a facade for clients that need access to all operations
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
	DocumentRecomputerSvc
}
