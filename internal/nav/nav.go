// Package nav owns which page the user is on and which pages a role may
// open. Page sets per role are disjoint; navigation outside the active set
// falls back to the role's default page.
package nav

import (
	"sync"

	"github.com/thoas/go-funk"

	"github.com/dmitrijs2005/libris/internal/models"
)

// Page identifies one screen of the terminal UI.
type Page string

const (
	PageLogin Page = "login"

	PageAdminDashboard Page = "admin-dashboard"
	PageBooks          Page = "books"
	PageMembers        Page = "members"
	PageInventory      Page = "inventory"
	PageCirculation    Page = "circulation"
	PageFines          Page = "fines"
	PageReports        Page = "reports"

	PageHome    Page = "home"
	PageBrowse  Page = "browse"
	PageMyLoans Page = "my-loans"
	PageMyFines Page = "my-fines"
)

var adminPages = []Page{
	PageAdminDashboard, PageBooks, PageMembers, PageInventory,
	PageCirculation, PageFines, PageReports,
}

var userPages = []Page{
	PageHome, PageBrowse, PageMyLoans, PageMyFines,
}

// PagesFor returns the page set of a role. With no role only the login page
// exists.
func PagesFor(role models.Role) []Page {
	switch role {
	case models.RoleAdmin:
		return adminPages
	case models.RoleUser:
		return userPages
	default:
		return []Page{PageLogin}
	}
}

// DefaultFor returns the landing page of a role.
func DefaultFor(role models.Role) Page {
	switch role {
	case models.RoleAdmin:
		return PageAdminDashboard
	case models.RoleUser:
		return PageHome
	default:
		return PageLogin
	}
}

// Allowed reports whether the role's set contains the page.
func Allowed(role models.Role, p Page) bool {
	return funk.Contains(PagesFor(role), p)
}

// Router tracks the current page. It holds the page independently of the
// session; Reset must be called whenever the session changes.
type Router struct {
	mu   sync.Mutex
	role models.Role
	cur  Page
}

// NewRouter starts signed out, on the login page.
func NewRouter() *Router {
	return &Router{cur: PageLogin}
}

// Reset installs the role and lands on its default page.
func (r *Router) Reset(role models.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.role = role
	r.cur = DefaultFor(role)
}

// Go navigates to p when the active role allows it, otherwise it falls back
// to the role's default page. It returns the page actually landed on.
func (r *Router) Go(p Page) Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	if Allowed(r.role, p) {
		r.cur = p
	} else {
		r.cur = DefaultFor(r.role)
	}
	return r.cur
}

// Current returns the active page.
func (r *Router) Current() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cur
}

// Role returns the role the router was last reset to.
func (r *Router) Role() models.Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.role
}
