package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/libris/internal/models"
)

func TestPageSetsAreDisjoint(t *testing.T) {
	seen := make(map[Page]bool)
	for _, p := range PagesFor(models.RoleAdmin) {
		seen[p] = true
	}
	for _, p := range PagesFor(models.RoleUser) {
		require.False(t, seen[p], "page %q appears in both role sets", p)
	}
}

func TestDefaultFor(t *testing.T) {
	require.Equal(t, PageAdminDashboard, DefaultFor(models.RoleAdmin))
	require.Equal(t, PageHome, DefaultFor(models.RoleUser))
	require.Equal(t, PageLogin, DefaultFor(""))
}

func TestAllowed(t *testing.T) {
	require.True(t, Allowed(models.RoleAdmin, PageBooks))
	require.False(t, Allowed(models.RoleAdmin, PageMyLoans))
	require.True(t, Allowed(models.RoleUser, PageMyLoans))
	require.False(t, Allowed(models.RoleUser, PageReports))
	require.True(t, Allowed("", PageLogin))
	require.False(t, Allowed("", PageBooks))
}

func TestRouterStartsSignedOut(t *testing.T) {
	r := NewRouter()
	require.Equal(t, PageLogin, r.Current())
}

func TestRouterGoWithinRoleSet(t *testing.T) {
	r := NewRouter()
	r.Reset(models.RoleAdmin)
	require.Equal(t, PageAdminDashboard, r.Current())

	got := r.Go(PageBooks)
	require.Equal(t, PageBooks, got)
	require.Equal(t, PageBooks, r.Current())
}

func TestRouterGoOutsideRoleSetFallsBack(t *testing.T) {
	r := NewRouter()
	r.Reset(models.RoleUser)

	got := r.Go(PageReports)
	require.Equal(t, PageHome, got, "page outside the role set falls back to the role default")
}

func TestRouterResetOnSessionChange(t *testing.T) {
	r := NewRouter()
	r.Reset(models.RoleAdmin)
	r.Go(PageFines)

	r.Reset(models.RoleUser)
	require.Equal(t, PageHome, r.Current(), "stale admin page must not survive a session change")

	r.Reset("")
	require.Equal(t, PageLogin, r.Current())
}
