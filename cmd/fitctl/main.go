// Command fitctl is a terminal client for the fittrack API.
//
//	fitctl [-api URL] [-session PATH] <command> [flags]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fittrack/api/internal/client"
)

const usage = `usage: fitctl [-api URL] [-session PATH] <command> [flags]

commands:
  register   create an account and log in
  login      log in and store the session
  logout     forget the stored session
  whoami     show the logged-in user
  profile    update name, email, goals or password
  exercises  list | show ID | add | edit ID | rm ID   (-default for the shared catalog)
  workouts   list | show ID | add | edit ID | rm ID   (-default for the shared catalog)
  log        record a workout session
  history    list recorded sessions
  stats      show totals over completed sessions
  health     check the server
`

// app carries everything a command needs. Commands persist the session
// through store whenever they change it.
type app struct {
	api     *client.Client
	store   client.SessionStore
	session *client.Session
	out     io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "error: %s\n", apiErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	defaultPath, err := client.DefaultSessionPath()
	if err != nil {
		defaultPath = ".fittrack-session.json"
	}

	global := flag.NewFlagSet("fitctl", flag.ContinueOnError)
	global.SetOutput(out)
	global.Usage = func() { fmt.Fprint(out, usage) }
	baseURL := global.String("api", envOr("FITTRACK_API_URL", "http://localhost:5000"), "API base URL")
	sessionPath := global.String("session", envOr("FITTRACK_SESSION", defaultPath), "session file")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	store := client.NewFileSessionStore(*sessionPath)
	session, err := store.Load()
	if err != nil {
		return err
	}
	a := &app{
		api:     client.New(*baseURL, session),
		store:   store,
		session: session,
		out:     out,
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami(ctx)
	case "profile":
		return a.profile(ctx, rest)
	case "exercises":
		return a.exercises(ctx, rest)
	case "workouts":
		return a.workouts(ctx, rest)
	case "log":
		return a.logSession(ctx, rest)
	case "history":
		return a.history(ctx)
	case "stats":
		return a.stats(ctx)
	case "health":
		return a.health(ctx)
	}
	global.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
