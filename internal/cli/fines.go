package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/models"
)

// finesPage settles fines. Admin only. Paying and waiving both change money
// owed, so each asks for confirmation first.
func (a *App) finesPage(ctx context.Context) error {
	q := api.Query{Limit: a.config.PageSize}
	f := api.FineFilter{Status: string(models.FineOutstanding)}

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
		line, err := GetSimpleText(a.reader,
			"[fines] pay=mark paid  waive=forgive  all=every fine  n=next  p=prev  q=back", os.Stdout)
		if err != nil {
			return nil
		}
		switch line {
		case "q":
			return nil
		case "pay":
			a.settleFine(ctx, "pay")
			load()
		case "waive":
			a.settleFine(ctx, "waive")
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

func renderFines(p *api.Page[models.Fine]) {
	if len(p.Items) == 0 {
		printlnFn("No fines found.")
		return
	}
	printlnFn(fmt.Sprintf("%4s  %-20s  %-24s  %8s  %-12s  %s", "ID", "MEMBER", "BOOK", "AMOUNT", "STATUS", "REASON"))
	for _, fine := range p.Items {
		printlnFn(fmt.Sprintf("%4d  %-20.20s  %-24.24s  %8.2f  %-12s  %s",
			fine.ID, fine.MemberName, fine.BookTitle, fine.Amount, fine.Status, fine.Reason))
	}
	printlnFn(pageFooter(p.Offset, len(p.Items), p.Total))
}

func (a *App) settleFine(ctx context.Context, action string) {
	id, err := getInt64(a.reader, "Fine id", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}

	var verb string
	if action == "pay" {
		verb = "Mark fine #%d as paid?"
	} else {
		verb = "Waive fine #%d?"
	}
	if !Confirm(a.reader, fmt.Sprintf(verb, id), os.Stdout) {
		printlnFn("Cancelled.")
		return
	}

	var fine *models.Fine
	if action == "pay" {
		fine, err = a.gateway.PayFine(ctx, id, newKey())
	} else {
		fine, err = a.gateway.WaiveFine(ctx, id, newKey())
	}
	if err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Fine #%d is now %s.", fine.ID, fine.Status))
}
