package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/libris/internal/fetch"
	"github.com/dmitrijs2005/libris/internal/models"
)

// dashboardPage shows the library-wide counters. Watch mode re-fetches them
// on the configured interval until the user presses Enter; leaving the page
// always stops the poller.
func (a *App) dashboardPage(ctx context.Context) error {
	show := func(ctx context.Context) {
		s, err := a.gateway.Summary(ctx)
		if err != nil {
			a.report(ctx, err)
			return
		}
		renderSummary(s)
	}

	show(ctx)

	for {
		line, err := GetSimpleText(a.reader, "[dashboard] r=refresh  w=watch (Enter stops)  q=back", os.Stdout)
		if err != nil {
			return nil
		}
		switch line {
		case "q":
			return nil
		case "r":
			show(ctx)
		case "w":
			watchCtx, cancel := context.WithCancel(ctx)
			fetch.Poll(watchCtx, a.config.RefreshInterval, show)
			_, _ = a.reader.ReadString('\n')
			cancel()
		default:
			printlnFn("Unknown command:", line)
		}
	}
}

func renderSummary(s *models.LibrarySummary) {
	printlnFn(fmt.Sprintf("Books: %d  Members: %d  Active loans: %d  Overdue: %d  Outstanding fines: %.2f",
		s.Books, s.Members, s.ActiveLoans, s.OverdueLoans, s.OutstandingFines))
}
