package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/voisa/voictl/internal/api"
	"github.com/voisa/voictl/internal/config"
	"github.com/voisa/voictl/internal/observability/logging"
	"github.com/voisa/voictl/internal/screens"
	"github.com/voisa/voictl/internal/session"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "voictl",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	// The client asks the store for the token on every request; the store
	// uses the client to log in. Both are process singletons wired here.
	var store *session.Store
	client := api.NewClient(cfg.BaseURL,
		func() string {
			if store == nil {
				return ""
			}
			return store.Token()
		},
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(logger),
	)
	store = session.NewStore(cfg.StatePath, client, session.WithLogger(logger))
	store.Load()

	app := &app{
		cfg:    cfg,
		client: client,
		store:  store,
		ui:     screens.NewUI(),
	}

	if err := app.run(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	client *api.Client
	store  *session.Store
	ui     *screens.UI
}

// run dispatches one command and applies the session-expiry policy in
// exactly one place: any request that came back 401 clears the persisted
// session and points the user at login. Screens never handle 401 themselves.
func (a *app) run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		usage(a.ui.Err)
		return errors.New("missing command")
	}

	err := a.dispatch(ctx, args[0], args[1:])
	if errors.Is(err, api.ErrSessionExpired) {
		if a.store.Expire() {
			a.ui.Notify("Session expired. Run 'voictl login' to sign in again.")
		}
	}
	return err
}

func (a *app) dispatch(ctx context.Context, cmd string, rest []string) error {
	switch cmd {
	case "login":
		return a.runLogin(ctx, rest)
	case "register":
		return a.runRegister(ctx, rest)
	case "logout":
		a.store.Logout()
		a.ui.Notify("Signed out.")
		return nil
	case "dashboard":
		return a.authenticated(func() error {
			return screens.NewDashboardScreen(a.client, a.ui).Show(ctx)
		})
	case "numbers":
		return a.runNumbers(ctx, rest)
	case "credits":
		return a.runCredits(ctx, rest)
	case "sms":
		return a.runSMS(ctx, rest)
	case "call":
		return a.runCall(ctx, rest)
	case "calls":
		return a.runCallHistory(ctx, rest)
	case "contacts":
		return a.runContacts(ctx, rest)
	case "settings":
		screens.NewSettingsScreen(a.store, a.ui, a.client.BaseURL(), a.cfg.StatePath).Show()
		return nil
	case "health":
		if err := a.client.Health(ctx); err != nil {
			a.ui.NotifyError("backend unreachable: %v", err)
			return err
		}
		a.ui.Notify("Backend is up.")
		return nil
	default:
		usage(a.ui.Err)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// authenticated gates a screen on an existing session: without one the user
// is pointed at login instead of the screen firing requests that can only
// fail.
func (a *app) authenticated(fn func() error) error {
	if a.store.Status() != session.StatusAuthenticated {
		a.ui.Notify("You are not signed in. Run 'voictl login' first.")
		return errors.New("not signed in")
	}
	return fn()
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr, err := promptIfEmpty(*email, "Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := a.store.Login(ctx, addr, password)
	if err != nil {
		a.ui.NotifyError("login failed: %v", err)
		return err
	}
	a.ui.Notify("Signed in as %s. Run 'voictl dashboard' to get started.", user.Email)
	return nil
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fullName, err := promptIfEmpty(*name, "Name: ")
	if err != nil {
		return err
	}
	addr, err := promptIfEmpty(*email, "Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := a.store.Register(ctx, fullName, addr, password)
	if err != nil {
		a.ui.NotifyError("registration failed: %v", err)
		return err
	}
	a.ui.Notify("Account created. Signed in as %s.", user.Email)
	return nil
}

func (a *app) runNumbers(ctx context.Context, args []string) error {
	sub, rest := splitSub(args, "list")
	screen := screens.NewNumbersScreen(a.client, a.ui)

	switch sub {
	case "list":
		fs := flag.NewFlagSet("numbers list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		all := fs.Bool("all", false, "include inactive numbers")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return a.authenticated(func() error { return screen.List(ctx, *all) })
	case "search":
		fs := flag.NewFlagSet("numbers search", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		country := fs.String("country", "US", "ISO country code")
		areaCode := fs.String("area", "", "area code filter")
		pattern := fs.String("pattern", "", "digit pattern filter")
		limit := fs.Int("limit", 10, "maximum results")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *pattern != "" {
			return a.authenticated(func() error { return screen.SearchPattern(ctx, *country, *pattern) })
		}
		return a.authenticated(func() error { return screen.Search(ctx, *country, *areaCode, *limit) })
	case "browse":
		fs := flag.NewFlagSet("numbers browse", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		country := fs.String("country", "US", "ISO country code")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return a.authenticated(func() error { return screen.Browse(ctx, *country) })
	case "purchase":
		id, err := requiredID(rest, "numbers purchase")
		if err != nil {
			return err
		}
		return a.authenticated(func() error { return screen.Purchase(ctx, id) })
	case "renew":
		id, err := requiredID(rest, "numbers renew")
		if err != nil {
			return err
		}
		return a.authenticated(func() error { return screen.Renew(ctx, id) })
	case "deactivate":
		id, err := requiredID(rest, "numbers deactivate")
		if err != nil {
			return err
		}
		return a.authenticated(func() error { return screen.Deactivate(ctx, id) })
	default:
		return fmt.Errorf("unknown numbers subcommand %q", sub)
	}
}

func (a *app) runCredits(ctx context.Context, args []string) error {
	sub, rest := splitSub(args, "overview")
	screen := screens.NewCreditsScreen(a.client, a.ui)

	switch sub {
	case "overview":
		return a.authenticated(func() error { return screen.Overview(ctx) })
	case "history":
		return a.authenticated(func() error { return screen.History(ctx) })
	case "packages":
		screen.Packages()
		return nil
	case "buy":
		fs := flag.NewFlagSet("credits buy", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		pkg := fs.String("package", "", "package id (see 'voictl credits packages')")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *pkg == "" {
			return errors.New("credits buy: -package is required")
		}
		return a.authenticated(func() error { return screen.Buy(ctx, *pkg) })
	default:
		return fmt.Errorf("unknown credits subcommand %q", sub)
	}
}

// stringList accumulates repeated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (a *app) runSMS(ctx context.Context, args []string) error {
	sub, rest := splitSub(args, "history")
	screen := screens.NewSMSScreen(a.client, a.ui)

	switch sub {
	case "send":
		fs := flag.NewFlagSet("sms send", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		from := fs.String("from", "", "source phone number id")
		var to stringList
		fs.Var(&to, "to", "destination number (repeatable)")
		message := fs.String("message", "", "message text")
		if err := fs.Parse(rest); err != nil {
			return err
		}

		recipients := &screens.RecipientList{}
		for _, n := range to {
			recipients.Add(n)
		}
		return a.authenticated(func() error { return screen.Send(ctx, *from, recipients, *message) })
	case "history":
		fs := flag.NewFlagSet("sms history", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		filter := fs.String("filter", "all", "all, sent, or received")
		start := fs.String("start", "", "window start (YYYY-MM-DD)")
		end := fs.String("end", "", "window end (YYYY-MM-DD)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *start != "" || *end != "" {
			from, until, err := parseWindow(*start, *end)
			if err != nil {
				return err
			}
			return a.authenticated(func() error { return screen.HistoryRange(ctx, from, until) })
		}
		return a.authenticated(func() error { return screen.History(ctx, *filter) })
	default:
		return fmt.Errorf("unknown sms subcommand %q", sub)
	}
}

func (a *app) runCall(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	from := fs.String("from", "", "source phone number id")
	to := fs.String("to", "", "destination number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	screen := screens.NewCallsScreen(a.client, a.ui)
	return a.authenticated(func() error { return screen.Call(ctx, *from, *to, os.Stdin) })
}

func (a *app) runCallHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("calls", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filter := fs.String("filter", "all", "all, outgoing, or incoming")
	start := fs.String("start", "", "window start (YYYY-MM-DD)")
	end := fs.String("end", "", "window end (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	screen := screens.NewCallsScreen(a.client, a.ui)
	if *start != "" || *end != "" {
		from, until, err := parseWindow(*start, *end)
		if err != nil {
			return err
		}
		return a.authenticated(func() error { return screen.HistoryRange(ctx, from, until) })
	}
	return a.authenticated(func() error { return screen.History(ctx, *filter) })
}

func (a *app) runContacts(ctx context.Context, args []string) error {
	sub, rest := splitSub(args, "list")
	screen := screens.NewContactsScreen(a.client, a.ui)

	switch sub {
	case "list":
		fs := flag.NewFlagSet("contacts list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		search := fs.String("search", "", "filter by name or number")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return a.authenticated(func() error { return screen.List(ctx, *search) })
	case "add":
		fs := flag.NewFlagSet("contacts add", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		name := fs.String("name", "", "contact name")
		number := fs.String("number", "", "contact number")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *name == "" || *number == "" {
			return errors.New("contacts add: -name and -number are required")
		}
		return a.authenticated(func() error { return screen.Add(ctx, *name, *number) })
	case "update":
		fs := flag.NewFlagSet("contacts update", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		id := fs.String("id", "", "contact id")
		name := fs.String("name", "", "contact name")
		number := fs.String("number", "", "contact number")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *id == "" || *name == "" || *number == "" {
			return errors.New("contacts update: -id, -name and -number are required")
		}
		return a.authenticated(func() error { return screen.Update(ctx, *id, *name, *number) })
	case "rm":
		id, err := requiredID(rest, "contacts rm")
		if err != nil {
			return err
		}
		return a.authenticated(func() error { return screen.Delete(ctx, id) })
	default:
		return fmt.Errorf("unknown contacts subcommand %q", sub)
	}
}

func splitSub(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}

func requiredID(args []string, cmd string) (string, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	id := fs.String("id", "", "resource id")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *id == "" {
		return "", fmt.Errorf("%s: -id is required", cmd)
	}
	return *id, nil
}

func parseWindow(start, end string) (time.Time, time.Time, error) {
	const layout = "2006-01-02"
	from, err := time.Parse(layout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -start: %w", err)
	}
	until, err := time.Parse(layout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -end: %w", err)
	}
	// make the window inclusive of the end day
	return from, until.Add(24*time.Hour - time.Second), nil
}

func promptIfEmpty(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo on a real terminal and falls back to a
// plain line read when stdin is piped.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: voictl <command> [options]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  login       Sign in and persist the session")
	fmt.Fprintln(w, "  register    Create an account and sign in")
	fmt.Fprintln(w, "  logout      Drop the persisted session")
	fmt.Fprintln(w, "  dashboard   Account overview and recent activity")
	fmt.Fprintln(w, "  numbers     list | search | browse | purchase | renew | deactivate")
	fmt.Fprintln(w, "  credits     overview | history | packages | buy")
	fmt.Fprintln(w, "  sms         send | history")
	fmt.Fprintln(w, "  call        Place a call (interactive)")
	fmt.Fprintln(w, "  calls       Call history")
	fmt.Fprintln(w, "  contacts    list | add | update | rm")
	fmt.Fprintln(w, "  settings    Account and client configuration")
	fmt.Fprintln(w, "  health      Probe the backend")
}
