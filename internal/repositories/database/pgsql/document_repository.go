package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engine_app/internal/core/ports/repositories"
	"github.com/SscSPs/tax_engine_app/internal/models"
	"github.com/SscSPs/tax_engine_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for documents and their
// computed tax details.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, company_id, move_type, currency_code, rate, document_date, reference, status, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.DocumentID,
		&d.CompanyID,
		&d.MoveType,
		&d.CurrencyCode,
		&d.Rate,
		&d.DocumentDate,
		&d.Reference,
		&d.Status,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

// SaveDocument persists a document, its lines and its computed tax details in
// one transaction.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document, lines []domain.DocumentLine, details []domain.TaxDetail) error {
	modelDoc := mapping.ToModelDocument(document)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	docQuery := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, docQuery,
		modelDoc.DocumentID,
		modelDoc.CompanyID,
		modelDoc.MoveType,
		modelDoc.CurrencyCode,
		modelDoc.Rate,
		modelDoc.DocumentDate,
		modelDoc.Reference,
		modelDoc.Status,
		modelDoc.CreatedAt,
		modelDoc.CreatedBy,
		modelDoc.LastUpdatedAt,
		modelDoc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", modelDoc.DocumentID, err)
	}

	if err := insertLinesAndDetails(ctx, tx, modelDoc.DocumentID, lines, details); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateDocument replaces a document's scalar fields and lines, and swaps the
// stored tax details for the freshly computed set atomically.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, document domain.Document, lines []domain.DocumentLine, details []domain.TaxDetail) error {
	modelDoc := mapping.ToModelDocument(document)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE documents
		SET rate = $2, document_date = $3, reference = $4, status = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE document_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelDoc.DocumentID,
		modelDoc.Rate,
		modelDoc.DocumentDate,
		modelDoc.Reference,
		modelDoc.Status,
		modelDoc.LastUpdatedAt,
		modelDoc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", modelDoc.DocumentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tax_details WHERE document_id = $1;`, modelDoc.DocumentID); err != nil {
		return fmt.Errorf("failed to clear tax details of document %s: %w", modelDoc.DocumentID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1;`, modelDoc.DocumentID); err != nil {
		return fmt.Errorf("failed to clear lines of document %s: %w", modelDoc.DocumentID, err)
	}

	if err := insertLinesAndDetails(ctx, tx, modelDoc.DocumentID, lines, details); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertLinesAndDetails(ctx context.Context, tx pgx.Tx, documentID string, lines []domain.DocumentLine, details []domain.TaxDetail) error {
	batch := &pgx.Batch{}

	lineQuery := `
		INSERT INTO document_lines (line_id, document_id, label, quantity, amount, amount_currency, tax_ids, tax_repartition_line_id, tax_line_tax_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, line := range lines {
		l := mapping.ToModelDocumentLine(line)
		batch.Queue(lineQuery,
			l.LineID,
			l.DocumentID,
			l.Label,
			l.Quantity,
			l.Amount,
			l.AmountCurrency,
			l.TaxIDs,
			l.TaxRepartitionLineID,
			l.TaxLineTaxID,
			l.CreatedAt,
			l.CreatedBy,
			l.LastUpdatedAt,
			l.LastUpdatedBy,
		)
	}

	queueDetails(batch, details)

	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert rows of document %s: %w", documentID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to flush rows of document %s: %w", documentID, err)
	}
	return nil
}

const detailInsertQuery = `
	INSERT INTO tax_details (detail_id, document_id, base_line_id, tax_id, repartition_line_id, base_amount, base_amount_currency, tax_amount, tax_amount_currency, remaining_tax_ids, tag_ids)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

func queueDetails(batch *pgx.Batch, details []domain.TaxDetail) {
	for _, detail := range details {
		d := mapping.ToModelTaxDetail(detail)
		batch.Queue(detailInsertQuery,
			d.DetailID,
			d.DocumentID,
			nullableID(d.BaseLineID),
			d.TaxID,
			d.RepartitionLineID,
			d.BaseAmount,
			d.BaseAmountCurrency,
			d.TaxAmount,
			d.TaxAmountCurrency,
			d.RemainingTaxIDs,
			d.TagIDs,
		)
	}
}

// nullableID maps an empty id to NULL so foreign keys stay enforceable.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// ReplaceTaxDetails atomically swaps all detail rows of a document.
func (r *PgxDocumentRepository) ReplaceTaxDetails(ctx context.Context, documentID string, details []domain.TaxDetail) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM tax_details WHERE document_id = $1;`, documentID); err != nil {
		return fmt.Errorf("failed to clear tax details of document %s: %w", documentID, err)
	}

	batch := &pgx.Batch{}
	queueDetails(batch, details)
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert tax details of document %s: %w", documentID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to flush tax details of document %s: %w", documentID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateDocumentStatus moves a document through its lifecycle.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedByUserID string) error {
	query := `
		UPDATE documents
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, documentID, models.DocumentStatus(status), time.Now(), updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update status of document %s: %w", documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindDocumentByID retrieves a document by its unique identifier.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	modelDoc, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by id %s: %w", documentID, err)
	}

	domainDoc := mapping.ToDomainDocument(modelDoc)
	return &domainDoc, nil
}

// ListDocumentsByCompany retrieves a paginated list of a company's documents,
// newest first.
func (r *PgxDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1
		ORDER BY document_date DESC, document_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for company %s: %w", companyID, err)
	}
	defer rows.Close()

	modelDocs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Document, error) {
		return scanDocument(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}

	return mapping.ToDomainDocumentSlice(modelDocs), nil
}

// FindLinesByDocumentID retrieves all lines of a document in creation order.
func (r *PgxDocumentRepository) FindLinesByDocumentID(ctx context.Context, documentID string) ([]domain.DocumentLine, error) {
	query := `
		SELECT line_id, document_id, label, quantity, amount, amount_currency, tax_ids, tax_repartition_line_id, tax_line_tax_id, created_at, created_by, last_updated_at, last_updated_by
		FROM document_lines
		WHERE document_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of document %s: %w", documentID, err)
	}
	defer rows.Close()

	modelLines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DocumentLine, error) {
		var l models.DocumentLine
		err := row.Scan(
			&l.LineID,
			&l.DocumentID,
			&l.Label,
			&l.Quantity,
			&l.Amount,
			&l.AmountCurrency,
			&l.TaxIDs,
			&l.TaxRepartitionLineID,
			&l.TaxLineTaxID,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines of document %s: %w", documentID, err)
	}

	return mapping.ToDomainDocumentLineSlice(modelLines), nil
}

// FindTaxDetailsByDocumentID retrieves the stored tax detail rows of a document.
func (r *PgxDocumentRepository) FindTaxDetailsByDocumentID(ctx context.Context, documentID string) ([]domain.TaxDetail, error) {
	query := `
		SELECT detail_id, document_id, COALESCE(base_line_id, ''), tax_id, repartition_line_id, base_amount, base_amount_currency, tax_amount, tax_amount_currency, remaining_tax_ids, tag_ids
		FROM tax_details
		WHERE document_id = $1
		ORDER BY detail_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax details of document %s: %w", documentID, err)
	}
	defer rows.Close()

	modelDetails, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TaxDetail, error) {
		var d models.TaxDetail
		err := row.Scan(
			&d.DetailID,
			&d.DocumentID,
			&d.BaseLineID,
			&d.TaxID,
			&d.RepartitionLineID,
			&d.BaseAmount,
			&d.BaseAmountCurrency,
			&d.TaxAmount,
			&d.TaxAmountCurrency,
			&d.RemainingTaxIDs,
			&d.TagIDs,
		)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tax details of document %s: %w", documentID, err)
	}

	return mapping.ToDomainTaxDetailSlice(modelDetails), nil
}
