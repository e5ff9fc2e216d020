package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/models"
)

// homePage greets a signed-in member with a short account overview.
func (a *App) homePage(ctx context.Context) error {
	s := a.session.Snapshot()
	if s.User == nil {
		return nil
	}

	loans, err := a.gateway.ListLoans(ctx,
		api.LoanFilter{MemberID: s.User.ID, Status: string(models.LoanIssued)},
		api.Query{Limit: 1})
	if err != nil {
		a.report(ctx, err)
		return nil
	}
	fines, err := a.gateway.ListFines(ctx,
		api.FineFilter{MemberID: s.User.ID, Status: string(models.FineOutstanding)},
		api.Query{Limit: 1})
	if err != nil {
		a.report(ctx, err)
		return nil
	}

	printlnFn(fmt.Sprintf("Hello %s! Books out: %d. Outstanding fines: %d.",
		s.User.Name, loans.Total, fines.Total))
	printlnFn("Pages: browse, my-loans, my-fines.")
	return nil
}

// myLoansPage lists the signed-in member's own loans.
func (a *App) myLoansPage(ctx context.Context) error {
	s := a.session.Snapshot()
	if s.User == nil {
		return nil
	}
	f := api.LoanFilter{MemberID: s.User.ID}
	q := api.Query{Limit: a.config.PageSize}

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
		line, err := GetSimpleText(a.reader, "[my-loans] n=next  p=prev  q=back", os.Stdout)
		if err != nil {
			return nil
		}
		switch line {
		case "q":
			return nil
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

// myFinesPage lists the signed-in member's own fines.
func (a *App) myFinesPage(ctx context.Context) error {
	s := a.session.Snapshot()
	if s.User == nil {
		return nil
	}
	f := api.FineFilter{MemberID: s.User.ID}
	q := api.Query{Limit: a.config.PageSize}

	load := func() {
		page, err := a.gateway.ListFines(ctx, f, q)
		if err != nil {
			a.report(ctx, err)
			return
		}
		renderFines(page)
	}

	load()

	for {
		line, err := GetSimpleText(a.reader, "[my-fines] n=next  p=prev  q=back", os.Stdout)
		if err != nil {
			return nil
		}
		switch line {
		case "q":
			return nil
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
