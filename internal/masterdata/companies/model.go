package companies

// Company is the root of all other ledger entities.
type Company struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	OrgNumber       *string `json:"org_number"`
	FiscalYearStart string  `json:"fiscal_year_start"`
	FiscalYearEnd   string  `json:"fiscal_year_end"`
	CreatedAt       string  `json:"created_at"`
}
