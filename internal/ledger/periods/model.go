package periods

// PeriodLock freezes an inclusive date range for a company. Locks are
// permanent: there is no unlock operation.
type PeriodLock struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	LockedAt    string `json:"locked_at"`
	LockedBy    string `json:"locked_by"`
}
