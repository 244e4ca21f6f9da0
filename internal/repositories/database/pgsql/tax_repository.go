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

type PgxTaxRepository struct {
	BaseRepository
}

// newPgxTaxRepository creates a new repository for tax definitions.
func newPgxTaxRepository(pool *pgxpool.Pool) portsrepo.TaxRepositoryWithTx {
	return &PgxTaxRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TaxRepositoryWithTx = (*PgxTaxRepository)(nil)

const taxColumns = `tax_id, company_id, name, description, tax_use, amount_type, amount, price_include, include_base_amount, sequence, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanTax(row pgx.Row) (models.Tax, error) {
	var t models.Tax
	err := row.Scan(
		&t.TaxID,
		&t.CompanyID,
		&t.Name,
		&t.Description,
		&t.TaxUse,
		&t.AmountType,
		&t.Amount,
		&t.PriceInclude,
		&t.IncludeBaseAmount,
		&t.Sequence,
		&t.IsActive,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTax persists a tax, its repartition lines and its group children
// atomically.
func (r *PgxTaxRepository) SaveTax(ctx context.Context, tax domain.TaxDefinition) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTax(ctx, tx, tax); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertTax(ctx context.Context, tx pgx.Tx, tax domain.TaxDefinition) error {
	modelTax := mapping.ToModelTax(tax)

	taxQuery := `
		INSERT INTO taxes (` + taxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, taxQuery,
		modelTax.TaxID,
		modelTax.CompanyID,
		modelTax.Name,
		modelTax.Description,
		modelTax.TaxUse,
		modelTax.AmountType,
		modelTax.Amount,
		modelTax.PriceInclude,
		modelTax.IncludeBaseAmount,
		modelTax.Sequence,
		modelTax.IsActive,
		modelTax.CreatedAt,
		modelTax.CreatedBy,
		modelTax.LastUpdatedAt,
		modelTax.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tax %s: %w", modelTax.TaxID, err)
	}

	batch := &pgx.Batch{}

	childQuery := `
		INSERT INTO tax_children (parent_tax_id, child_tax_id, sequence)
		VALUES ($1, $2, $3);
	`
	for i, childID := range tax.ChildTaxIDs {
		batch.Queue(childQuery, tax.TaxID, childID, i+1)
	}

	lineQuery := `
		INSERT INTO tax_repartition_lines (repartition_line_id, tax_id, document_kind, repartition_type, factor_percent, tag_ids, sequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	modelLines := mapping.ToModelRepartitionLines(tax.TaxID, mapping.RepartitionKindInvoice, tax.InvoiceRepartitionLines)
	modelLines = append(modelLines, mapping.ToModelRepartitionLines(tax.TaxID, mapping.RepartitionKindRefund, tax.RefundRepartitionLines)...)
	for _, l := range modelLines {
		batch.Queue(lineQuery, l.RepartitionLineID, l.TaxID, l.DocumentKind, l.RepartitionType, l.FactorPercent, l.TagIDs, l.Sequence)
	}

	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert tax %s detail rows: %w", modelTax.TaxID, err)
		}
	}
	return br.Close()
}

// UpdateTax replaces a tax's scalar fields, repartition lines and children
// atomically.
func (r *PgxTaxRepository) UpdateTax(ctx context.Context, tax domain.TaxDefinition) error {
	modelTax := mapping.ToModelTax(tax)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE taxes
		SET name = $2, description = $3, tax_use = $4, amount_type = $5, amount = $6,
		    price_include = $7, include_base_amount = $8, sequence = $9, is_active = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE tax_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelTax.TaxID,
		modelTax.Name,
		modelTax.Description,
		modelTax.TaxUse,
		modelTax.AmountType,
		modelTax.Amount,
		modelTax.PriceInclude,
		modelTax.IncludeBaseAmount,
		modelTax.Sequence,
		modelTax.IsActive,
		modelTax.LastUpdatedAt,
		modelTax.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update tax %s: %w", modelTax.TaxID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tax_children WHERE parent_tax_id = $1;`, tax.TaxID); err != nil {
		return fmt.Errorf("failed to clear children of tax %s: %w", tax.TaxID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tax_repartition_lines WHERE tax_id = $1;`, tax.TaxID); err != nil {
		return fmt.Errorf("failed to clear repartition lines of tax %s: %w", tax.TaxID, err)
	}

	batch := &pgx.Batch{}
	childQuery := `
		INSERT INTO tax_children (parent_tax_id, child_tax_id, sequence)
		VALUES ($1, $2, $3);
	`
	for i, childID := range tax.ChildTaxIDs {
		batch.Queue(childQuery, tax.TaxID, childID, i+1)
	}
	lineQuery := `
		INSERT INTO tax_repartition_lines (repartition_line_id, tax_id, document_kind, repartition_type, factor_percent, tag_ids, sequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	modelLines := mapping.ToModelRepartitionLines(tax.TaxID, mapping.RepartitionKindInvoice, tax.InvoiceRepartitionLines)
	modelLines = append(modelLines, mapping.ToModelRepartitionLines(tax.TaxID, mapping.RepartitionKindRefund, tax.RefundRepartitionLines)...)
	for _, l := range modelLines {
		batch.Queue(lineQuery, l.RepartitionLineID, l.TaxID, l.DocumentKind, l.RepartitionType, l.FactorPercent, l.TagIDs, l.Sequence)
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert tax %s detail rows: %w", tax.TaxID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to flush tax %s detail rows: %w", tax.TaxID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DeactivateTax soft deletes a tax so existing documents keep their history.
func (r *PgxTaxRepository) DeactivateTax(ctx context.Context, taxID string, updatedByUserID string) error {
	query := `
		UPDATE taxes
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE tax_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, taxID, time.Now(), updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to deactivate tax %s: %w", taxID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTaxByID retrieves a tax with its repartition lines and resolved group
// children.
func (r *PgxTaxRepository) FindTaxByID(ctx context.Context, taxID string) (*domain.TaxDefinition, error) {
	found, err := r.FindTaxesByIDs(ctx, []string{taxID})
	if err != nil {
		return nil, err
	}
	tax, ok := found[taxID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &tax, nil
}

// FindTaxesByIDs retrieves several taxes at once, keyed by tax id. Group
// taxes come back with their child definitions attached; child taxes not in
// the requested set are loaded but not returned as top-level entries.
func (r *PgxTaxRepository) FindTaxesByIDs(ctx context.Context, taxIDs []string) (map[string]domain.TaxDefinition, error) {
	if len(taxIDs) == 0 {
		return map[string]domain.TaxDefinition{}, nil
	}

	childrenByParent, err := r.loadChildLinks(ctx, taxIDs)
	if err != nil {
		return nil, err
	}

	allIDs := make([]string, 0, len(taxIDs))
	seen := make(map[string]struct{}, len(taxIDs))
	for _, id := range taxIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			allIDs = append(allIDs, id)
		}
	}
	for _, children := range childrenByParent {
		for _, childID := range children {
			if _, ok := seen[childID]; !ok {
				seen[childID] = struct{}{}
				allIDs = append(allIDs, childID)
			}
		}
	}

	taxRows, err := r.loadTaxRows(ctx, allIDs)
	if err != nil {
		return nil, err
	}
	linesByTax, err := r.loadRepartitionLines(ctx, allIDs)
	if err != nil {
		return nil, err
	}

	assembled := make(map[string]domain.TaxDefinition, len(taxRows))
	for id, row := range taxRows {
		assembled[id] = mapping.ToDomainTax(row, childrenByParent[id], linesByTax[id])
	}

	result := make(map[string]domain.TaxDefinition, len(taxIDs))
	for _, id := range taxIDs {
		tax, ok := assembled[id]
		if !ok {
			continue
		}
		for _, childID := range tax.ChildTaxIDs {
			child, ok := assembled[childID]
			if !ok {
				return nil, fmt.Errorf("tax %s references missing child %s", id, childID)
			}
			tax.Children = append(tax.Children, child)
		}
		result[id] = tax
	}
	return result, nil
}

// FindRepartitionLineTax resolves the tax owning a repartition line.
func (r *PgxTaxRepository) FindRepartitionLineTax(ctx context.Context, repartitionLineID string) (*domain.TaxDefinition, error) {
	var taxID string
	err := r.Pool.QueryRow(ctx, `SELECT tax_id FROM tax_repartition_lines WHERE repartition_line_id = $1;`, repartitionLineID).Scan(&taxID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve repartition line %s: %w", repartitionLineID, err)
	}
	return r.FindTaxByID(ctx, taxID)
}

// ListTaxesByCompany retrieves a paginated list of a company's active taxes.
func (r *PgxTaxRepository) ListTaxesByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.TaxDefinition, error) {
	query := `
		SELECT tax_id FROM taxes
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY sequence, name, tax_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxes for company %s: %w", companyID, err)
	}
	defer rows.Close()

	taxIDs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tax ids: %w", err)
	}

	found, err := r.FindTaxesByIDs(ctx, taxIDs)
	if err != nil {
		return nil, err
	}

	taxes := make([]domain.TaxDefinition, 0, len(taxIDs))
	for _, id := range taxIDs {
		if tax, ok := found[id]; ok {
			taxes = append(taxes, tax)
		}
	}
	return taxes, nil
}

func (r *PgxTaxRepository) loadChildLinks(ctx context.Context, parentIDs []string) (map[string][]string, error) {
	query := `
		SELECT parent_tax_id, child_tax_id
		FROM tax_children
		WHERE parent_tax_id = ANY($1)
		ORDER BY parent_tax_id, sequence;
	`
	rows, err := r.Pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax children: %w", err)
	}
	defer rows.Close()

	childrenByParent := make(map[string][]string)
	for rows.Next() {
		var parentID, childID string
		if err := rows.Scan(&parentID, &childID); err != nil {
			return nil, fmt.Errorf("failed to scan tax child row: %w", err)
		}
		childrenByParent[parentID] = append(childrenByParent[parentID], childID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tax children: %w", err)
	}
	return childrenByParent, nil
}

func (r *PgxTaxRepository) loadTaxRows(ctx context.Context, taxIDs []string) (map[string]models.Tax, error) {
	query := `SELECT ` + taxColumns + ` FROM taxes WHERE tax_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, taxIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxes: %w", err)
	}
	defer rows.Close()

	taxRows := make(map[string]models.Tax, len(taxIDs))
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax row: %w", err)
		}
		taxRows[t.TaxID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read taxes: %w", err)
	}
	return taxRows, nil
}

func (r *PgxTaxRepository) loadRepartitionLines(ctx context.Context, taxIDs []string) (map[string][]models.TaxRepartitionLine, error) {
	query := `
		SELECT repartition_line_id, tax_id, document_kind, repartition_type, factor_percent, tag_ids, sequence
		FROM tax_repartition_lines
		WHERE tax_id = ANY($1)
		ORDER BY tax_id, document_kind, sequence;
	`
	rows, err := r.Pool.Query(ctx, query, taxIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query repartition lines: %w", err)
	}
	defer rows.Close()

	linesByTax := make(map[string][]models.TaxRepartitionLine)
	for rows.Next() {
		var l models.TaxRepartitionLine
		if err := rows.Scan(
			&l.RepartitionLineID,
			&l.TaxID,
			&l.DocumentKind,
			&l.RepartitionType,
			&l.FactorPercent,
			&l.TagIDs,
			&l.Sequence,
		); err != nil {
			return nil, fmt.Errorf("failed to scan repartition line: %w", err)
		}
		linesByTax[l.TaxID] = append(linesByTax[l.TaxID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read repartition lines: %w", err)
	}
	return linesByTax, nil
}
