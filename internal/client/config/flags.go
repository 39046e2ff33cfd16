package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/credkit/internal/flagx"
)

// GlobalValueFlags are the flags, handled outside subcommands, that take a
// separate value argument.
var GlobalValueFlags = []string{"-a", "-t", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   address and port of the daemon
//	-t int      request timeout in seconds
//
// os.Args is filtered with flagx.FilterArgs so subcommand flags are left
// alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
