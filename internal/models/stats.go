package models

// CategoryStats aggregates files of one category.
type CategoryStats struct {
	Count int   `json:"count"`
	Size  int64 `json:"size"`
}

// FileStats aggregates a list of files.
type FileStats struct {
	TotalFiles int                      `json:"totalFiles"`
	TotalSize  int64                    `json:"totalSize"`
	ByCategory map[string]CategoryStats `json:"byCategory"`
}

// PaymentStats aggregates mensualidades by status.
type PaymentStats struct {
	Total         int     `json:"total"`
	Paid          int     `json:"paid"`
	Pending       int     `json:"pending"`
	Overdue       int     `json:"overdue"`
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	OverdueAmount float64 `json:"overdueAmount"`
	PaymentRate   float64 `json:"paymentRate"`
}
