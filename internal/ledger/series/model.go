package series

// Series issues gapless sequential voucher numbers for one company.
// NextNumber is the number the next committed voucher will receive; it
// is only ever advanced inside the transaction that consumes it.
type Series struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	NextNumber  int64  `json:"next_number"`
}
