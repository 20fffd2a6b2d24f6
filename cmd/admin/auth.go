package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var errInvalidPassword = errors.New("invalid password")

func runLogin(a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	password := fs.String("password", "", "Admin password (prompted for when omitted)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: admin login [-password <password>]\n\nUnlock the admin tool on this machine.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if a.auth.Authenticated() {
		fmt.Fprintln(a.out, "Already logged in.")
		return nil
	}

	candidate := *password
	if candidate == "" {
		var err error
		if candidate, err = a.readPassword(); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	if !a.auth.Login(a.ctx, candidate) {
		return errInvalidPassword
	}
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func runLogout(a *app, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.Logout(a.ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func runStatus(a *app, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := "not logged in"
	if a.auth.Authenticated() {
		state = "logged in"
	}
	fmt.Fprintf(a.out, "Session:  %s\n", state)
	fmt.Fprintf(a.out, "Backend:  %s\n", a.cfg.Session.Backend)
	fmt.Fprintf(a.out, "API:      %s\n", a.cfg.API.BaseURL)
	return nil
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
