package dto

import (
	"time"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a new company.
type CreateCompanyRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,uppercase,len=3"`
	RoundingMethod      string `json:"roundingMethod" binding:"omitempty,oneof=round_per_line round_globally"`
}

// UpdateCompanyRequest defines the data allowed for updating a company.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateCompanyRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	RoundingMethod *string `json:"roundingMethod" binding:"omitempty,oneof=round_per_line round_globally"`
}

// AddUserToCompanyRequest defines the data needed to add a member.
type AddUserToCompanyRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN MEMBER READ_ONLY"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID           string    `json:"companyID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	RoundingMethod      string    `json:"roundingMethod"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:           c.CompanyID,
		Name:                c.Name,
		Description:         c.Description,
		DefaultCurrencyCode: c.DefaultCurrencyCode,
		RoundingMethod:      string(c.RoundingMethod),
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
	}
}

// ListCompaniesResponse wraps the list of companies a user belongs to.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompaniesResponse converts a slice of domain.Company to ListCompaniesResponse DTO
func ToListCompaniesResponse(companies []domain.Company) ListCompaniesResponse {
	res := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		res[i] = ToCompanyResponse(&c)
	}
	return ListCompaniesResponse{Companies: res}
}
