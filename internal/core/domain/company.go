package domain

// RoundingMethod is the company-level policy controlling how tax amounts are
// rounded during document computation.
type RoundingMethod string

const (
	// RoundPerLine rounds each tax amount independently at the currency
	// precision. Rounded parts may not sum exactly to a separately-rounded
	// total; this is the default.
	RoundPerLine RoundingMethod = "round_per_line"
	// RoundGlobally keeps sub-unit precision on each line and rounds only the
	// summed total, so the parts always reconstruct the rounded total exactly.
	RoundGlobally RoundingMethod = "round_globally"
)

// Company represents an isolated environment owning tax definitions and
// documents. It carries the tax rounding policy applied to every document it
// owns.
type Company struct {
	CompanyID           string         `json:"companyID"` // Primary Key (e.g., UUID)
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	DefaultCurrencyCode *string        `json:"defaultCurrencyCode"` // e.g., "USD"
	RoundingMethod      RoundingMethod `json:"roundingMethod"`
	IsActive            bool           `json:"isActive"`
	AuditFields
}

// UserCompanyRole defines the possible roles a user can have within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READ_ONLY"
	RoleRemoved  UserCompanyRole = "REMOVED"
)

// UserCompany represents the membership of a User in a Company.
type UserCompany struct {
	UserID    string          `json:"userID"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	AuditFields
}
