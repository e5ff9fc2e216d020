package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/filex"
	"github.com/dmitrijs2005/libris/internal/models"
)

// reportsPage renders library reports. Admin only.
func (a *App) reportsPage(ctx context.Context) error {
	for {
		line, err := GetSimpleText(a.reader,
			"[reports] s=summary  o=overdue loans  x=export overdue CSV  q=back", os.Stdout)
		if err != nil {
			return nil
		}
		switch line {
		case "q":
			return nil
		case "s":
			s, err := a.gateway.Summary(ctx)
			if err != nil {
				a.report(ctx, err)
				continue
			}
			renderSummary(s)
		case "o":
			loans, err := a.collectOverdue(ctx)
			if err != nil {
				a.report(ctx, err)
				continue
			}
			renderLoans(&api.Page[models.Loan]{Items: loans, Total: len(loans), Limit: len(loans)})
		case "x":
			a.exportOverdue(ctx)
		default:
			printlnFn("Unknown command:", line)
		}
	}
}

// collectOverdue walks the overdue report page by page until the reported
// total is reached.
func (a *App) collectOverdue(ctx context.Context) ([]models.Loan, error) {
	var out []models.Loan
	q := api.Query{Limit: a.config.PageSize}
	for {
		page, err := a.gateway.OverdueLoans(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Items...)
		q.Offset += len(page.Items)
		if len(page.Items) == 0 || q.Offset >= page.Total {
			return out, nil
		}
	}
}

// exportOverdue writes the full overdue report to a CSV file.
func (a *App) exportOverdue(ctx context.Context) {
	path, err := getTextDefault(a.reader, "Output file", filepath.Join("exports", "overdue.csv"), os.Stdout)
	if err != nil {
		return
	}

	loans, err := a.collectOverdue(ctx)
	if err != nil {
		a.report(ctx, err)
		return
	}

	dir, err := filex.EnsureDir(filepath.Dir(path))
	if err != nil {
		printlnFn("Cannot create export directory:", err.Error())
		return
	}
	path = filepath.Join(dir, filepath.Base(path))

	f, err := os.Create(path)
	if err != nil {
		printlnFn("Cannot create file:", err.Error())
		return
	}

	now := time.Now()
	w := csv.NewWriter(f)
	_ = w.Write([]string{"loan_id", "book", "member", "due_at", "days_overdue"})
	for _, l := range loans {
		_ = w.Write([]string{
			strconv.FormatInt(l.ID, 10),
			l.BookTitle,
			l.MemberName,
			l.DueAt.Format("2006-01-02"),
			strconv.Itoa(l.DaysOverdue(now)),
		})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		printlnFn("Export failed:", err.Error())
		_ = f.Close()
		return
	}
	if err := f.Close(); err != nil {
		printlnFn("Export failed:", err.Error())
		return
	}
	printlnFn(fmt.Sprintf("Exported %d overdue loan(s) to %s.", len(loans), path))
}
