package models

import "time"

// LoanStatus classifies a loan's lifecycle stage.
type LoanStatus string

const (
	LoanIssued   LoanStatus = "issued"
	LoanReturned LoanStatus = "returned"
	LoanOverdue  LoanStatus = "overdue"
)

// Condition describes the state a book comes back in. Anything other than
// good makes the backend assess a fine on return.
type Condition string

const (
	ConditionGood    Condition = "good"
	ConditionDamaged Condition = "damaged"
	ConditionLost    Condition = "lost"
)

func (c Condition) Valid() bool {
	return c == ConditionGood || c == ConditionDamaged || c == ConditionLost
}

// Loan is one issue of a book to a member. Titles and names are denormalized
// by the backend so lists render without extra lookups.
type Loan struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	MemberID   int64      `json:"member_id"`
	MemberName string     `json:"member_name"`
	IssuedAt   time.Time  `json:"issued_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     LoanStatus `json:"status"`
}

// Overdue reports whether the loan is still out past its due date.
func (l Loan) Overdue(now time.Time) bool {
	return l.ReturnedAt == nil && now.After(l.DueAt)
}

// DaysOverdue counts whole days past the due date, zero if not overdue.
func (l Loan) DaysOverdue(now time.Time) int {
	if !l.Overdue(now) {
		return 0
	}
	return int(now.Sub(l.DueAt).Hours() / 24)
}

// ReturnReceipt is the backend's settlement of a return: the assessed fine,
// if any, and how late the book came back.
type ReturnReceipt struct {
	LoanID      int64     `json:"loan_id"`
	Condition   Condition `json:"condition"`
	FineAmount  float64   `json:"fine_amount"`
	DaysOverdue int       `json:"days_overdue"`
}
