package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/credkit/internal/buildinfo"
	"github.com/dmitrijs2005/credkit/internal/client/client"
	"github.com/dmitrijs2005/credkit/internal/client/config"
	"github.com/dmitrijs2005/credkit/internal/randx"
)

var ErrUnknownCommand = errors.New("unknown command")

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPasswordPrompt

type App struct {
	config *config.Config
	client client.Client
	src    randx.Source
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewCredkitClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		client: apiClient,
		src:    randx.Default,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Close() error {
	return a.client.Close()
}

// Run executes the subcommand found in args, usually os.Args[1:]. Global
// flags before the subcommand are skipped; they are read by package config.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := SplitCommand(args, config.GlobalValueFlags)
	return a.Dispatch(ctx, cmd, rest)
}

// SplitCommand returns the first positional argument and everything after
// it. valueFlags name global flags whose value is a separate argument.
func SplitCommand(args []string, valueFlags []string) (string, []string) {
	takesValue := make(map[string]struct{}, len(valueFlags))
	for _, f := range valueFlags {
		takesValue[f] = struct{}{}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return arg, args[i+1:]
		}
		if strings.Contains(arg, "=") {
			continue
		}
		if _, ok := takesValue[arg]; ok {
			i++
		}
	}
	return "", nil
}

func (a *App) Dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "", "help":
		a.help()
		return nil
	case "salt":
		return a.salt()
	case "hash":
		return a.hash(args)
	case "derive":
		return a.derive(args)
	case "token":
		return a.token(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx)
	case "passwd":
		return a.passwd(ctx, args)
	case "apikey":
		return a.apikey(ctx, args)
	case "profile":
		return a.profile(ctx, args)
	case "ping":
		return a.ping(ctx)
	case "shell":
		return a.shell(ctx)
	case "version":
		buildinfo.PrintBuildData(a.out)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (a *App) help() {
	fmt.Fprintln(a.out, `Usage: credkit [-a addr] [-t seconds] [-c config.json] <command> [flags]

Local commands:
  salt                          print a fresh salt
  hash [input]                  iterated hash of input (prompted when omitted)
  derive [-salt S] [-kdf K]     derive a credential for a prompted password

Remote commands:
  register [-role N]            create an account
  login                         print an access token
  passwd [-token T]             change the password
  apikey [-token T]             issue an API key
  profile [-token T]            show the account profile
  token -table T -column C [-length N] [-token T]
                                generate a token unique in T.C
  ping                          check the daemon
  shell                         interactive session
  version                       print build information`)
}

// withTimeout bounds a single remote call.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
