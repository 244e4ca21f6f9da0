package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engine_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engine_app/internal/dto"
	"github.com/google/uuid"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo  portsrepo.CompanyRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewCompanyService creates a new company service with the provided dependencies
func NewCompanyService(
	companyRepo portsrepo.CompanyRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
	}
}

// Ensure companyService implements the CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany persists a new company with the creator as admin.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.DefaultCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: default currency code %q not found", apperrors.ErrValidation, req.DefaultCurrencyCode)
		}
		s.LogError(ctx, err, "Failed to validate default currency",
			slog.String("currency_code", req.DefaultCurrencyCode))
		return nil, err
	}

	roundingMethod := domain.RoundPerLine
	if req.RoundingMethod != "" {
		roundingMethod = domain.RoundingMethod(req.RoundingMethod)
	}

	now := time.Now()
	company := domain.Company{
		CompanyID:      uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		RoundingMethod: roundingMethod,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	company.DefaultCurrencyCode = &req.DefaultCurrencyCode

	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company, membership); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("company_id", company.CompanyID))
		return nil, err
	}

	s.LogInfo(ctx, "Company created successfully",
		slog.String("company_id", company.CompanyID),
		slog.String("creator_id", creatorUserID))
	return &company, nil
}

// GetCompanyByID retrieves a specific company by its ID.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID", slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// ListUserCompanies retrieves the companies a user belongs to.
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies for user", slog.String("user_id", userID))
		return nil, err
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// UpdateCompany persists changes to an existing company.
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil && *req.Name != company.Name {
		company.Name = *req.Name
		updated = true
	}
	if req.Description != nil && *req.Description != company.Description {
		company.Description = *req.Description
		updated = true
	}
	if req.RoundingMethod != nil && domain.RoundingMethod(*req.RoundingMethod) != company.RoundingMethod {
		company.RoundingMethod = domain.RoundingMethod(*req.RoundingMethod)
		updated = true
	}
	if !updated {
		return company, nil
	}

	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Company updated successfully", slog.String("company_id", companyID))
	return company, nil
}

// AddUserToCompany adds a user to a company with a specific role.
func (s *companyService) AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.UserCompanyRole) error {
	// Self-assignment is permitted (e.g., creator adding self as admin)
	if addingUserID != targetUserID {
		if err := s.AuthorizeUserAction(ctx, addingUserID, companyID, domain.RoleAdmin); err != nil {
			s.LogError(ctx, err, "User not authorized to add members to company",
				slog.String("adding_user_id", addingUserID),
				slog.String("company_id", companyID))
			return err
		}
	}

	now := time.Now()
	membership := domain.UserCompany{
		UserID:    targetUserID,
		CompanyID: companyID,
		Role:      role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     addingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: addingUserID,
		},
	}

	if err := s.companyRepo.SaveUserCompanyRole(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to company",
			slog.String("target_user_id", targetUserID),
			slog.String("company_id", companyID))
		return err
	}

	s.LogInfo(ctx, "User added to company successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("company_id", companyID),
		slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a company.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of company",
				slog.String("user_id", userID),
				slog.String("company_id", companyID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user company role",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return err
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role
func hasRequiredRole(userRole, requiredRole domain.UserCompanyRole) bool {
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
