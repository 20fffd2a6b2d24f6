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

	"github.com/lucysperfumery/admin/internal/apiclient"
	"github.com/lucysperfumery/admin/internal/catalog"
	"github.com/lucysperfumery/admin/internal/config"
	"github.com/lucysperfumery/admin/internal/kv"
	"github.com/lucysperfumery/admin/internal/logger"
	"github.com/lucysperfumery/admin/internal/orders"
	"github.com/lucysperfumery/admin/internal/session"
	"github.com/lucysperfumery/admin/internal/ui"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var version = "dev"

// app carries everything a command needs. Commands never touch globals so
// tests can build one against an httptest server.
type app struct {
	ctx      context.Context
	cfg      *config.Config
	log      *zap.Logger
	auth     *session.Context
	products *catalog.Service
	orders   *orders.Service
	out      io.Writer
	view     *ui.Printer

	readPassword func() (string, error)
	confirm      func(question string) bool
}

var commands = map[string]func(*app, []string) error{
	"login":    runLogin,
	"logout":   runLogout,
	"status":   runStatus,
	"products": runProducts,
	"orders":   runOrders,
}

func usage() {
	fmt.Fprintf(os.Stderr, `admin - Lucy's Perfumery store admin (version %s)

Usage:
  admin <command> [options]

Commands:
  login      Unlock the admin tool for this machine (remembered for a year)
  logout     Forget the saved login
  status     Show login state and the API being managed
  products   Catalog management (list, get, create, update, delete, activate, deactivate)
  orders     Order management (list, get, status)

Configuration is read from the environment or a .env file:
  API_BASE_URL, API_TIMEOUT, ADMIN_PASSWORD, SESSION_BACKEND,
  SESSION_FILE, REDIS_URL, DATABASE_URL, APP_ENV, LOG_LEVEL

Run 'admin <command> -h' for command-specific help.
`, version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		usage()
		os.Exit(0)
	}
	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println(version)
		os.Exit(0)
	}

	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	err = fn(a, os.Args[2:])
	cleanup()
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", apiclient.ToMessage(err))
		os.Exit(1)
	}
}

func newApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	store, err := kv.Open(ctx, cfg)
	if err != nil {
		log.Sync()
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}

	sessions := session.NewStore(store, cfg.Auth.AdminPassword, session.WithLogger(log))
	client := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, log)

	a := &app{
		ctx:          ctx,
		cfg:          cfg,
		log:          log,
		auth:         session.NewContext(ctx, sessions),
		products:     catalog.NewService(client),
		orders:       orders.NewService(client),
		out:          os.Stdout,
		view:         ui.NewPrinter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd()))),
		readPassword: promptPassword,
		confirm:      promptConfirm,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warn("close session store", zap.Error(err))
		}
		log.Sync()
	}
	return a, cleanup, nil
}
