package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/session"
)

// runLogin obtains a token pair from the credentials given via flags, or
// prompts for whatever is missing. With -refresh it exchanges the stored
// refresh token for a new access token instead.
func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("username", "", "admin username")
	password := fs.String("password", "", "admin password")
	refresh := fs.Bool("refresh", false, "refresh the access token instead of logging in")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *refresh {
		if err := a.auth.Refresh(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Access token refreshed.")
		return nil
	}

	creds := session.Credentials{Username: *username, Password: *password}
	reader := bufio.NewReader(a.in)
	if creds.Username == "" {
		fmt.Fprint(a.out, "Username: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading username: %w", err)
		}
		creds.Username = strings.TrimSpace(line)
	}
	if creds.Password == "" {
		fmt.Fprint(a.out, "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading password: %w", err)
		}
		creds.Password = strings.TrimSpace(line)
	}

	if err := a.auth.Login(ctx, creds); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) runStatus() error {
	if !a.guard.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	if expiry, ok := a.guard.ExpiresAt(); ok {
		fmt.Fprintf(a.out, "Logged in; session expires in %s (at %s).\n",
			time.Until(expiry).Round(time.Second), expiry.Format(time.RFC3339))
	}
	return nil
}

func (a *App) runPrefs(args []string) error {
	fs := flag.NewFlagSet("prefs", flag.ContinueOnError)
	fs.SetOutput(a.out)
	compact := fs.Bool("compact", a.store.CompactOutput(), "use compact table output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.store.SetCompactOutput(*compact); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Compact output: %v\n", *compact)
	return nil
}
