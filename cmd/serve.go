package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/gwally9/investment-tracker/server"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the portfolio HTTP API server" }
func (*serveCmd) Usage() string {
	return `ivt serve [-p <port>]

  Runs the HTTP JSON API over the portfolio file until interrupted, with a
  background task keeping cached prices warm. Configuration is read from
  IVT_* environment variables; the global -file, -currency and -provider
  flags and the -p flag take precedence over them.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "p", "", "Port to listen on (defaults to IVT_PORT or 8080)")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := server.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	// explicit flags win over the environment
	cfg.DataFile = *portfolioFile
	cfg.Currency = *defaultCurrency
	cfg.QuoteProvider = *quoteProvider
	if c.port != "" {
		cfg.Port = c.port
	}

	app, err := server.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		return subcommands.ExitFailure
	}
	app.Start()
	return subcommands.ExitSuccess
}
