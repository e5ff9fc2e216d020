package models

// LibrarySummary aggregates the counters shown on the admin dashboard.
type LibrarySummary struct {
	Books            int     `json:"books"`
	Members          int     `json:"members"`
	ActiveLoans      int     `json:"active_loans"`
	OverdueLoans     int     `json:"overdue_loans"`
	OutstandingFines float64 `json:"outstanding_fines"`
}
