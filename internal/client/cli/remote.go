package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/credkit/internal/lookup"
	"github.com/dmitrijs2005/credkit/internal/randx"
)

// TokenEnv names the environment variable read when -token is not given.
const TokenEnv = "CREDKIT_TOKEN"

var ErrPasswordMismatch = errors.New("passwords do not match")

// newFlagSet returns a flag set carrying the -token flag shared by
// account-scoped commands.
func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	token := fs.String("token", "", "access token, defaults to $"+TokenEnv)
	return fs, token
}

// useToken installs the access token on the client. An empty flag falls back
// to the environment; if that is empty too the client keeps whatever token it
// already holds, which is how the shell carries a login.
func (a *App) useToken(flagValue string) {
	token := flagValue
	if token == "" {
		token = os.Getenv(TokenEnv)
	}
	if token != "" {
		a.client.SetAccessToken(token)
	}
}

func (a *App) ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *App) token(ctx context.Context, args []string) error {
	fs, token := newFlagSet("token")
	table := fs.String("table", "", "table to check")
	column := fs.String("column", "", "column to check")
	length := fs.Int("length", 0, "token length in bytes, server default when 0")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.useToken(*token)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	t, err := a.client.GenerateUniqueToken(ctx, *table, *column, *length)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, t)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	role := fs.Int("role", int(lookup.RoleBuyer), "account role id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	pw, err := a.newPassword("Enter password")
	if err != nil {
		return err
	}
	defer randx.Wipe(pw)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.Register(ctx, username, pw, *role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "account: %s\nuser hash: %s\n", resp.AccountID, resp.UserHash)
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	pw, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer randx.Wipe(pw)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	token, err := a.client.Login(ctx, username, pw)
	if err != nil {
		return err
	}
	a.client.SetAccessToken(token)
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) passwd(ctx context.Context, args []string) error {
	fs, token := newFlagSet("passwd")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.useToken(*token)

	oldPw, err := getPassword(a.out, "Enter current password")
	if err != nil {
		return err
	}
	defer randx.Wipe(oldPw)

	newPw, err := a.newPassword("Enter new password")
	if err != nil {
		return err
	}
	defer randx.Wipe(newPw)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.ChangePassword(ctx, oldPw, newPw); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "password changed")
	return nil
}

func (a *App) apikey(ctx context.Context, args []string) error {
	fs, token := newFlagSet("apikey")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.useToken(*token)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	key, err := a.client.IssueAPIKey(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, key)
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs, token := newFlagSet("profile")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.useToken(*token)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.client.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "account:    %s\n", p.AccountID)
	fmt.Fprintf(a.out, "username:   %s\n", p.Username)
	fmt.Fprintf(a.out, "user hash:  %s\n", p.UserHash)
	fmt.Fprintf(a.out, "role:       %s\n", p.Role)
	fmt.Fprintf(a.out, "created:    %s\n", p.CreatedAt)
	fmt.Fprintf(a.out, "last login: %s\n", p.LastLogin)
	fmt.Fprintf(a.out, "api keys:   %d\n", p.APIKeys)
	return nil
}

// newPassword asks for a password twice.
func (a *App) newPassword(prompt string) ([]byte, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return nil, err
	}
	confirm, err := getPassword(a.out, "Repeat password")
	if err != nil {
		randx.Wipe(pw)
		return nil, err
	}
	defer randx.Wipe(confirm)

	if string(pw) != string(confirm) {
		randx.Wipe(pw)
		return nil, ErrPasswordMismatch
	}
	return pw, nil
}
