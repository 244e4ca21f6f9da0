package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engine_app/internal/core/ports/repositories"
	"github.com/SscSPs/tax_engine_app/internal/models"
	"github.com/SscSPs/tax_engine_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryWithTx {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CompanyRepositoryWithTx = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, name, description, default_currency_code, rounding_method, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.CompanyID,
		&c.Name,
		&c.Description,
		&c.DefaultCurrencyCode,
		&c.RoundingMethod,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveCompany persists a new company and its creator's admin membership in
// one transaction.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, creatorMembership domain.UserCompany) error {
	modelCompany := mapping.ToModelCompany(company)
	modelMembership := mapping.ToModelUserCompany(creatorMembership)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	companyQuery := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, companyQuery,
		modelCompany.CompanyID,
		modelCompany.Name,
		modelCompany.Description,
		modelCompany.DefaultCurrencyCode,
		modelCompany.RoundingMethod,
		modelCompany.IsActive,
		modelCompany.CreatedAt,
		modelCompany.CreatedBy,
		modelCompany.LastUpdatedAt,
		modelCompany.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert company %s: %w", modelCompany.CompanyID, err)
	}

	membershipQuery := `
		INSERT INTO user_companies (user_id, company_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, membershipQuery,
		modelMembership.UserID,
		modelMembership.CompanyID,
		modelMembership.Role,
		modelMembership.CreatedAt,
		modelMembership.CreatedBy,
		modelMembership.LastUpdatedAt,
		modelMembership.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership for company %s: %w", modelCompany.CompanyID, err)
	}

	return r.Commit(ctx, tx)
}

// FindCompanyByID retrieves a company by its unique identifier.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`

	modelCompany, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by id %s: %w", companyID, err)
	}

	domainCompany := mapping.ToDomainCompany(modelCompany)
	return &domainCompany, nil
}

// ListCompaniesByUser retrieves the companies a user is an active member of.
func (r *PgxCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `
		SELECT c.company_id, c.name, c.description, c.default_currency_code, c.rounding_method, c.is_active,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM companies c
		JOIN user_companies uc ON uc.company_id = c.company_id
		WHERE uc.user_id = $1 AND uc.role <> 'REMOVED'
		ORDER BY c.name, c.company_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelCompanies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Company, error) {
		return scanCompany(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan companies: %w", err)
	}

	return mapping.ToDomainCompanySlice(modelCompanies), nil
}

// FindUserCompanyRole retrieves a user's membership in a company, if any.
func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompany, error) {
	query := `
		SELECT user_id, company_id, role, created_at, created_by, last_updated_at, last_updated_by
		FROM user_companies
		WHERE user_id = $1 AND company_id = $2;
	`
	var m models.UserCompany
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(
		&m.UserID,
		&m.CompanyID,
		&m.Role,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership of user %s in company %s: %w", userID, companyID, err)
	}

	domainMembership := mapping.ToDomainUserCompany(m)
	return &domainMembership, nil
}

// UpdateCompany persists changes to an existing company.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	modelCompany := mapping.ToModelCompany(company)

	query := `
		UPDATE companies
		SET name = $2, description = $3, default_currency_code = $4, rounding_method = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelCompany.CompanyID,
		modelCompany.Name,
		modelCompany.Description,
		modelCompany.DefaultCurrencyCode,
		modelCompany.RoundingMethod,
		modelCompany.IsActive,
		modelCompany.LastUpdatedAt,
		modelCompany.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", modelCompany.CompanyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveUserCompanyRole creates or updates a user's membership in a company.
func (r *PgxCompanyRepository) SaveUserCompanyRole(ctx context.Context, membership domain.UserCompany) error {
	m := mapping.ToModelUserCompany(membership)

	query := `
		INSERT INTO user_companies (user_id, company_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, company_id) DO UPDATE SET
			role = EXCLUDED.role,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.CompanyID,
		m.Role,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save membership of user %s in company %s: %w", m.UserID, m.CompanyID, err)
	}
	return nil
}
