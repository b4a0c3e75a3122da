package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/ifselect/src/internal/api"
	"github.com/maksimkurb/ifselect/src/internal/config"
	"github.com/maksimkurb/ifselect/src/internal/log"
)

// ServerCommand runs the read-only HTTP API.
type ServerCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	engine *Engine

	bindAddr    string
	maxRestarts int

	// signals ends Run when it delivers; nil means SIGINT/SIGTERM.
	signals chan os.Signal
	// listening receives the bound address once the server listens.
	listening chan string
}

// CreateServerCommand creates a new server command.
func CreateServerCommand() *ServerCommand {
	return &ServerCommand{
		fs: flag.NewFlagSet("serve", flag.ContinueOnError),
	}
}

// Name returns the command name.
func (c *ServerCommand) Name() string {
	return c.fs.Name()
}

// Init initializes the server command with arguments.
func (c *ServerCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	c.fs.StringVar(&c.bindAddr, "bind", "", "Address to bind the HTTP server (default: api.listen_addr)")
	c.fs.IntVar(&c.maxRestarts, "max-restarts", 0, "Give up after this many listener failures (0 = never)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	engine, err := NewEngine(ctx)
	if err != nil {
		return err
	}
	c.engine = engine

	if c.bindAddr == "" {
		c.bindAddr = engine.Config.API.ListenAddr
	}
	if c.bindAddr == "" {
		c.bindAddr = config.DefaultListenAddr
	}
	return nil
}

// Run starts the HTTP API server and blocks until a signal arrives or the
// listener gives up.
func (c *ServerCommand) Run() error {
	router := api.NewRouter(api.Dependencies{
		Enum:          c.engine.Enum,
		Parser:        c.engine.Parser,
		Selector:      c.engine.Selector,
		Params:        c.engine.Params,
		Hasher:        config.NewConfigHasher(c.engine.Config, c.engine.Params),
		MaxInterfaces: c.engine.MaxInterfaces,
	})

	runner := NewRestartableRunner(RunnerConfig{
		Name:        "API server",
		MaxRestarts: c.maxRestarts,
	}, func(ctx context.Context) error {
		return c.serve(ctx, router)
	})

	if err := runner.Start(context.Background()); err != nil {
		return err
	}

	shutdown := c.signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)
	}

	select {
	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)
		if err := runner.Stop(); err != nil {
			return err
		}
		log.Infof("Server stopped gracefully")
		return nil
	case <-runner.Done():
		if err := runner.LastError(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// serve listens on bindAddr until ctx is cancelled.
func (c *ServerCommand) serve(ctx context.Context, handler http.Handler) error {
	ln, err := net.Listen("tcp", c.bindAddr)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Infof("API server listening on http://%s/api/v1", ln.Addr())
	if c.listening != nil {
		c.listening <- ln.Addr().String()
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error during server shutdown: %v", err)
			return server.Close()
		}
		return nil
	}
}
