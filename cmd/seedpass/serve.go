package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"

	cliconfig "github.com/dsbarlow/seedpass/cmd/seedpass/internal/config"
	seedconfig "github.com/dsbarlow/seedpass/config"
	"github.com/dsbarlow/seedpass/httpapi"
	"github.com/dsbarlow/seedpass/wordlist"
)

func init() {
	Commands = append(Commands, serveCommand)
}

var serveCommand = &command.C{
	Name:     "serve",
	Help:     "Run the HTTP companion service, reloading its configuration on change.",
	SetFlags: command.Flags(flax.MustBind, &serveFlags),
	Run:      command.Adapt(runServe),
}

var serveFlags struct {
	Addr   string   `flag:"addr,default=localhost:8337,Service address (host:port)"`
	Allow  []string `flag:"allow,Allowed caller CIDR masks (repeatable; default allows all)"`
	Verify bool     `flag:"verify-config,Parse the configuration file and exit"`
}

// runServe implements the "serve" subcommand: it loads configuration, starts
// an fsnotify watcher goroutine that reloads it on change, and runs the HTTP
// service under a context cancelled by SIGINT/SIGTERM, shutting it down
// gracefully once that context is done.
func runServe(env *command.Env) error {
	path := cliconfig.ConfigPath(env)
	if path == "" {
		return env.Usagef("serve requires --config (or SEEDPASS_CONFIG)")
	}
	cfg, err := cliconfig.LoadConfig(env)
	if err != nil {
		return err
	}
	if serveFlags.Verify {
		return nil
	}

	w, err := seedconfig.NewWatcher(cfg, path)
	if err != nil {
		return err
	}

	words, err := wordlist.Default()
	if err != nil {
		return err
	}

	filter, err := httpapi.NewHostFilter(serveFlags.Allow)
	if err != nil {
		return err
	}

	srv := &httpapi.Server{Words: words}
	srv.Config = w.Config()

	handler := filter.Wrap(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		srv.Config = w.Config()
		srv.ServeHTTP(rw, req)
	}))

	httpSrv := &http.Server{
		Addr:    serveFlags.Addr,
		Handler: handler,
	}

	ctx, cancel := signal.NotifyContext(env.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Printf("watching configuration %q for changes", path)
		w.Run(ctx)
	}()
	go func() {
		log.Printf("serving at %q", serveFlags.Addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WARNING: server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("signal received, stopping server")
	return httpSrv.Shutdown(context.Background())
}
