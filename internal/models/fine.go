package models

import "time"

// FineStatus classifies whether a fine still needs to be collected.
type FineStatus string

const (
	FineOutstanding FineStatus = "outstanding"
	FinePaid        FineStatus = "paid"
	FineWaived      FineStatus = "waived"
)

// Fine is a charge assessed against a member, usually on a late or damaged
// return.
type Fine struct {
	ID         int64      `json:"id"`
	LoanID     int64      `json:"loan_id"`
	MemberID   int64      `json:"member_id"`
	MemberName string     `json:"member_name"`
	BookTitle  string     `json:"book_title"`
	Amount     float64    `json:"amount"`
	Reason     string     `json:"reason"`
	Status     FineStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}
