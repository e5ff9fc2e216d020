package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/models"
)

// circulationPage issues and returns books. Admin only.
func (a *App) circulationPage(ctx context.Context) error {
	q := api.Query{Limit: a.config.PageSize}
	f := api.LoanFilter{Status: string(models.LoanIssued)}

	load := func() {
		page, err := a.gateway.ListLoans(ctx, f, q)
		if err != nil {
			a.report(ctx, err)
			return
		}
		renderLoans(page)
	}

	load()

	for {
		line, err := GetSimpleText(a.reader,
			"[circulation] i=issue  r=return  m=filter by member  all=every loan  n=next  p=prev  q=back", os.Stdout)
		if err != nil {
			return nil
		}
		switch line {
		case "q":
			return nil
		case "i":
			a.issueBook(ctx)
			load()
		case "r":
			a.returnBook(ctx)
			load()
		case "m":
			id, err := getInt64(a.reader, "Member id (0 clears the filter)", os.Stdout)
			if err != nil {
				reportInput(err)
				continue
			}
			f.MemberID = id
			q.Offset = 0
			load()
		case "all":
			f.Status = ""
			q.Offset = 0
			load()
		case "n":
			q.Offset += q.Limit
			load()
		case "p":
			if q.Offset >= q.Limit {
				q.Offset -= q.Limit
			} else {
				q.Offset = 0
			}
			load()
		default:
			printlnFn("Unknown command:", line)
		}
	}
}

func renderLoans(p *api.Page[models.Loan]) {
	if len(p.Items) == 0 {
		printlnFn("No loans found.")
		return
	}
	now := time.Now()
	printlnFn(fmt.Sprintf("%4s  %-28s  %-20s  %-10s  %-8s  %s", "ID", "BOOK", "MEMBER", "DUE", "STATUS", "OVERDUE"))
	for _, l := range p.Items {
		overdue := ""
		if d := l.DaysOverdue(now); d > 0 {
			overdue = fmt.Sprintf("%d day(s)", d)
		}
		printlnFn(fmt.Sprintf("%4d  %-28.28s  %-20.20s  %-10s  %-8s  %s",
			l.ID, l.BookTitle, l.MemberName, l.DueAt.Format("2006-01-02"), l.Status, overdue))
	}
	printlnFn(pageFooter(p.Offset, len(p.Items), p.Total))
}

// issueBook hands a copy to a member. An unavailable book is rejected by the
// backend and reported with its own explanation.
func (a *App) issueBook(ctx context.Context) {
	bookID, err := getInt64(a.reader, "Book id", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	memberID, err := getInt64(a.reader, "Member id", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	days, err := getIntDefault(a.reader, "Due in days", 14, os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}

	due := time.Now().AddDate(0, 0, days)
	loan, err := a.gateway.Issue(ctx, bookID, memberID, due, newKey())
	if err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Issued loan #%d: %q to %s, due %s.",
		loan.ID, loan.BookTitle, loan.MemberName, loan.DueAt.Format("2006-01-02")))
}

// returnBook records a return. The receipt already carries any fine the
// backend assessed, so the outcome is shown without a second request.
func (a *App) returnBook(ctx context.Context) {
	loanID, err := getInt64(a.reader, "Loan id", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	cond, err := getTextDefault(a.reader, "Condition (good/damaged/lost)", string(models.ConditionGood), os.Stdout)
	if err != nil {
		return
	}
	condition := models.Condition(cond)
	if !condition.Valid() {
		printlnFn("Condition must be good, damaged or lost.")
		return
	}

	receipt, err := a.gateway.Return(ctx, loanID, condition, newKey())
	if err != nil {
		a.report(ctx, err)
		return
	}

	printlnFn(fmt.Sprintf("Returned loan #%d (%s).", receipt.LoanID, receipt.Condition))
	if receipt.FineAmount > 0 {
		printlnFn(fmt.Sprintf("Fine assessed: %.2f, %d day(s) overdue.",
			receipt.FineAmount, receipt.DaysOverdue))
	}
}
