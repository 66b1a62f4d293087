// Command eva drives the mobile client core from a terminal: it signs in
// against the backend, records local health data and exports reports.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/app"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/config"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/logging"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/viewmodel"
	"go.uber.org/zap"
)

// command is one CLI subcommand
type command struct {
	summary string
	run     func(ctx context.Context, c *cli, args []string) error
}

// cli carries what every subcommand needs
type cli struct {
	app    *app.App
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

var commands = map[string]command{
	"register":    {"create an account and sign in", runRegister},
	"login":       {"sign in", runLogin},
	"logout":      {"sign out and drop the stored token", runLogout},
	"whoami":      {"show the signed-in user", runWhoami},
	"predict":     {"request a risk prediction", runPredict},
	"predictions": {"list prediction history", runPredictions},
	"stats":       {"show prediction statistics", runStats},
	"chat":        {"ask the assistant", runChat},
	"goals":       {"list, add, progress, status or delete goals", runGoals},
	"logs":        {"list, add or delete health logs", runLogs},
	"profile":     {"show or set the health profile", runProfile},
	"mood":        {"run the daily check-in or show history", runMood},
	"report":      {"export a PDF health report", runReport},
	"export-data": {"print all local data as JSON", runExportData},
	"erase-data":  {"erase all local data (requires --confirm)", runEraseData},
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one subcommand and returns the process exit code.
// Deferred cleanup, including flushing the error reporter, happens before the process exits.
func run(args []string) int {
	if len(args) < 1 {
		usage(os.Stderr)
		return 2
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage(os.Stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	opts := logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		File:        cfg.Logging.File,
		Development: cfg.Environment != "production",
	}
	if cfg.ErrorReporting.Endpoint != "" {
		reporter, err := logging.NewHTTPReporter(cfg.ErrorReporting.Endpoint, cfg.ErrorReporting.Token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to set up error reporting: %v\n", err)
			return 1
		}
		defer reporter.Close()
		opts.Reporter = reporter
	}

	logger, err := logging.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start client", zap.Error(err))
		return 1
	}
	defer client.Close()

	c := &cli{app: client, in: os.Stdin, out: os.Stdout, logger: logger}
	if err := cmd.run(ctx, c, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, viewmodel.Message(err))
		logger.Debug("command failed", zap.String("command", name), zap.Error(err))
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: eva <command> [flags]")
	fmt.Fprintln(w)

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
}

// printJSON writes v indented to the command output
func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

var errNotSignedIn = errors.New("not signed in, run `eva login` first")

// requireUser restores the stored session
func (c *cli) requireUser(ctx context.Context) (int64, error) {
	user, err := c.app.Auth.Restore(ctx)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, errNotSignedIn
	}
	return user.ID, nil
}
