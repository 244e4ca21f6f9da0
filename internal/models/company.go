package models

// RoundingMethod selects how a company's documents round tax amounts.
type RoundingMethod string

const (
	RoundPerLine  RoundingMethod = "round_per_line"
	RoundGlobally RoundingMethod = "round_globally"
)

// Company represents a fiscal entity owning taxes and documents.
type Company struct {
	CompanyID           string         `db:"company_id"` // Primary Key (UUID)
	Name                string         `db:"name"`
	Description         string         `db:"description"`
	DefaultCurrencyCode *string        `db:"default_currency_code"` // Nullable FK -> Currency
	RoundingMethod      RoundingMethod `db:"rounding_method"`
	IsActive            bool           `db:"is_active"`
	AuditFields
}

// UserCompanyRole defines what a user may do within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READ_ONLY"
	RoleRemoved  UserCompanyRole = "REMOVED"
)

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string          `db:"user_id"`    // PK part, FK -> User
	CompanyID string          `db:"company_id"` // PK part, FK -> Company
	Role      UserCompanyRole `db:"role"`
	AuditFields
}
