package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/etnz/accounts/server"
	"github.com/google/subcommands"
)

// EnvAddr is the environment variable holding the default listen address.
const EnvAddr = "ACCOUNTS_ADDR"

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve accounts over HTTP" }
func (*serveCmd) Usage() string {
	return `acct serve [-addr <address>]

  Serves in-memory accounts over HTTP until interrupted. See 'acct topic tools'
  for the routes.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	addr := os.Getenv(EnvAddr)
	if addr == "" {
		addr = ":8080"
	}
	f.StringVar(&c.addr, "addr", addr, "Address to listen on. Defaults to $"+EnvAddr+" or :8080.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := NewRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	srv := &http.Server{
		Addr:    c.addr,
		Handler: server.NewRouter(reg),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("serving accounts on %s", c.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Failed to start server: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
