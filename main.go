package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"horoscopefetcher/internal/app"
	"horoscopefetcher/internal/astropredict"
	"horoscopefetcher/internal/config"
	"horoscopefetcher/internal/coordinator"
	"horoscopefetcher/internal/fetcher"
	"horoscopefetcher/internal/keystore"
	"horoscopefetcher/internal/render"
	"horoscopefetcher/internal/tui"
	"horoscopefetcher/internal/zodiac"
)

const usage = `Usage: horoscopes [flags] [command]

Commands:
  pick              Choose a sign interactively (default)
  read <sign>       Fetch and print today's reading for a sign
  signs             List the zodiac signs
  key set <key>     Store the RapidAPI key
  key clear         Remove the stored key
  key show          Show the stored key (masked)

Flags:
`

var errUsage = errors.New("invalid usage")

func main() {
	// Cancel in-flight requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("horoscopes", pflag.ContinueOnError)
	apiKey := flags.String("api-key", "", "RapidAPI key for this run (overrides stored and configured keys)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write logs to this file")
	flags.String("key-file", "", "path of the stored key file")
	flags.String("config", "", "config file (default ./config.yaml or $HOME/.horoscopes/config.yaml)")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	command := "pick"
	rest := flags.Args()
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}

	closeLog, err := setupLogging(cfg, command == "pick")
	if err != nil {
		return err
	}
	defer closeLog()

	switch command {
	case "signs":
		return listSigns(stdout)
	case "key":
		return manageKey(cfg, rest, stdout)
	case "read", "pick":
	default:
		flags.Usage()
		return errUsage
	}

	stored, err := keystore.Load(cfg.KeyFile)
	if err != nil {
		slog.Warn("could not read stored key", "path", cfg.KeyFile, "error", err)
	}
	key := app.ResolveAPIKey(*apiKey, stored, cfg.RapidAPIKey)

	httpClient := fetcher.NewHTTPClient(cfg.RequestTimeout)
	defer httpClient.Close()

	coord := coordinator.New(
		astropredict.NewClient(httpClient, cfg.RapidAPIHost),
		cfg.HoroscopeBaseURL,
		coordinator.WithRequestDelay(cfg.RequestDelay),
	)
	service := app.NewService(coord)

	if command == "read" {
		if len(rest) != 1 {
			flags.Usage()
			return errUsage
		}
		return readSign(ctx, service, rest[0], key, stdout)
	}

	program := tea.NewProgram(
		tui.New(tui.Options{Context: ctx, Reader: service, APIKey: key}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui exited: %w", err)
	}
	return nil
}

// setupLogging installs the default slog logger. The interactive picker owns
// the terminal, so its logs are discarded unless a log file is configured.
func setupLogging(cfg *config.Config, interactive bool) (func(), error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() {}

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		w = f
		closer = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

func readSign(ctx context.Context, service *app.Service, sign, key string, stdout io.Writer) error {
	outcome, err := service.Reading(ctx, sign, key, func(ev coordinator.Event) {
		if ev.Kind == coordinator.CategoryStarted {
			slog.Info("fetching", "category", ev.Category)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, render.New(render.DefaultTheme(), 80).Outcome(outcome))
	return nil
}

func listSigns(stdout io.Writer) error {
	for _, s := range zodiac.All {
		fmt.Fprintf(stdout, "%s  %-12s %s\n", s.Symbol, s.Name, s.ID())
	}
	return nil
}

func manageKey(cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("key: expected set, clear or show: %w", errUsage)
	}

	switch args[0] {
	case "set":
		if len(args) != 2 || !app.IsUsableAPIKey(args[1]) {
			return errors.New("key set: expected a non-empty RapidAPI key")
		}
		if err := keystore.Save(cfg.KeyFile, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Saved key %s to %s\n", keystore.Mask(args[1]), cfg.KeyFile)
	case "clear":
		if err := keystore.Clear(cfg.KeyFile); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Stored key removed.")
	case "show":
		stored, err := keystore.Load(cfg.KeyFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Stored key:     %s\n", keystore.Mask(stored))
		fmt.Fprintf(stdout, "Configured key: %s\n", keystore.Mask(cfg.RapidAPIKey))
	default:
		return fmt.Errorf("key: unknown action %q: %w", args[0], errUsage)
	}
	return nil
}
