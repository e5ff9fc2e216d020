package cli

import (
	"bufio"
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/config"
	"github.com/dmitrijs2005/libris/internal/fetch"
	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/nav"
	"github.com/dmitrijs2005/libris/internal/session"
)

// App ties the terminal client together. All user-facing output goes through
// printlnFn, diagnostics go to the structured logger.
type App struct {
	config  *config.Config
	gateway api.Gateway
	session session.Store
	router  *nav.Router
	log     logging.Logger
	reader  *bufio.Reader
	online  atomic.Bool
}

func NewApp(c *config.Config, gw api.Gateway, st session.Store, r *nav.Router, log logging.Logger) *App {
	a := &App{
		config:  c,
		gateway: gw,
		session: st,
		router:  r,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}
	a.online.Store(true)
	return a
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.gateway.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

// onSessionChange keeps the router in step with the session. The page resets
// only when the signed-in role actually changed, so a background
// re-verification of the same account does not yank the user off their page.
func (a *App) onSessionChange(s session.Snapshot) {
	if s.Role() != a.router.Role() {
		a.router.Reset(s.Role())
	}
}

func (a *App) setOnline(ctx context.Context, ok bool) {
	if a.online.Swap(ok) != ok {
		a.log.Info(ctx, "connectivity changed", "online", ok)
	}
}

// StartConnectivityWatcher probes the backend health endpoint on the given
// interval and records the result for the status line. It returns once the
// poller is running; cancelling ctx stops it.
func (a *App) StartConnectivityWatcher(ctx context.Context, interval time.Duration) {
	fetch.Poll(ctx, interval, func(ctx context.Context) {
		probe, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		a.setOnline(ctx, a.gateway.Health(probe) == nil)
	})
}
