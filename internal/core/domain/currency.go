package domain

// Currency represents a supported currency in the domain.
// Precision is the number of decimal places of the currency's smallest unit
// (2 for USD, 0 for JPY); every tax amount is rounded half-up at this
// precision unless the owning company rounds globally.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int32  `json:"precision"`    // Decimal places of the smallest unit
	AuditFields
}
