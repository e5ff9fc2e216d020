package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/libris/internal/models"
	"github.com/dmitrijs2005/libris/internal/nav"
)

// getStatus renders the prompt suffix: signed-in name, role, current page
// and connectivity.
func (a *App) getStatus() string {
	parts := []string{}
	if s := a.session.Snapshot(); s.Authenticated() {
		parts = append(parts, s.User.Name, string(s.User.Role))
	}
	parts = append(parts, string(a.router.Current()))
	if a.online.Load() {
		parts = append(parts, "online")
	} else {
		parts = append(parts, "offline")
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root restores a persisted session, starts the connectivity watcher and
// hands control to the REPL. It blocks until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("libris terminal (type 'help' for commands)")

	a.session.OnChange(a.onSessionChange)

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
		printlnFn("Could not restore your previous session, please sign in.")
	}
	if s := a.session.Snapshot(); s.Authenticated() {
		printlnFn(fmt.Sprintf("Welcome back, %s.", s.User.Name))
	}

	a.StartConnectivityWatcher(ctx, a.config.RefreshInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// knownPage reports whether name is any page of the UI, regardless of role.
func (a *App) knownPage(name string) bool {
	p := nav.Page(name)
	if p == nav.PageLogin {
		return true
	}
	return nav.Allowed(models.RoleAdmin, p) || nav.Allowed(models.RoleUser, p)
}

// Pages lists the pages the active role may open.
func (a *App) Pages(ctx context.Context) error {
	names := []string{}
	for _, p := range nav.PagesFor(a.router.Role()) {
		names = append(names, string(p))
	}
	printlnFn("Pages: " + strings.Join(names, ", "))
	return nil
}

// Open navigates to the named page and runs it. Pages outside the active
// role's set fall back to the role's default page.
func (a *App) Open(ctx context.Context, name string) error {
	want := nav.Page(name)
	landed := a.router.Go(want)
	if landed != want {
		printlnFn(fmt.Sprintf("Page %q is not available to you, showing %s instead.", name, landed))
	}
	return a.runPage(ctx, landed)
}

func (a *App) runPage(ctx context.Context, p nav.Page) error {
	switch p {
	case nav.PageLogin:
		return a.Login(ctx)
	case nav.PageAdminDashboard:
		return a.dashboardPage(ctx)
	case nav.PageBooks:
		return a.booksPage(ctx, false)
	case nav.PageMembers:
		return a.membersPage(ctx)
	case nav.PageInventory:
		return a.inventoryPage(ctx)
	case nav.PageCirculation:
		return a.circulationPage(ctx)
	case nav.PageFines:
		return a.finesPage(ctx)
	case nav.PageReports:
		return a.reportsPage(ctx)
	case nav.PageHome:
		return a.homePage(ctx)
	case nav.PageBrowse:
		return a.booksPage(ctx, true)
	case nav.PageMyLoans:
		return a.myLoansPage(ctx)
	case nav.PageMyFines:
		return a.myFinesPage(ctx)
	}
	return nil
}
