package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/libris/internal/session"
	"github.com/dmitrijs2005/libris/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and signs in through the session
// store. Input problems are reported and returned; authentication failures
// are reported to the user and swallowed so the REPL stays up.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in. Use 'logout' first to switch accounts.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		a.report(ctx, err)
		return nil
	}

	s := a.session.Snapshot()
	printlnFn(fmt.Sprintf("Signed in as %s (%s).", s.User.Name, s.User.Role))
	if s.Status == session.StatusError {
		printlnFn("Note: the local session cache is unavailable, you will need to sign in again next time.")
	}
	return nil
}

// Logout signs out remotely on a best-effort basis and always clears the
// local session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}
	if err := a.session.Logout(ctx); err != nil {
		a.report(ctx, err)
		return nil
	}
	printlnFn("Signed out.")
	return nil
}

// Whoami re-validates the session and shows the signed-in identity as the
// backend reports it, plus, when the token carries an expiry claim, how long
// the session is still good for.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}
	user, err := a.session.Verify(ctx)
	if err != nil {
		a.report(ctx, err)
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>, role %s", user.Name, user.Email, user.Role))
	if exp, ok := a.session.TokenExpiry(); ok {
		printlnFn(fmt.Sprintf("Session expires %s (in %s).",
			exp.Local().Format("2006-01-02 15:04"),
			time.Until(exp).Round(time.Minute)))
	}
	return nil
}
