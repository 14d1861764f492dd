package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Application wires configuration and the eventdesk commands.
type Application struct {
	cfg     config.Application
	cfgPath string

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewApplication loads the configuration from the default location and
// attaches the process' standard streams.
func NewApplication() (*Application, error) {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return nil, err
	}
	return New(cfg, os.Stdin, os.Stdout, os.Stderr), nil
}

func New(cfg config.Application, in io.Reader, out, errOut io.Writer) *Application {
	return &Application{
		cfg:     cfg,
		cfgPath: config.DefaultPath,
		in:      in,
		out:     out,
		errOut:  errOut,
	}
}

// Run executes the command line of the current process until it finishes or
// the process is interrupted.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Execute(ctx, os.Args[1:]...)
}

func (a *Application) Execute(ctx context.Context, args ...string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root.ExecuteContext(ctx)
}

func (a *Application) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eventdesk",
		Short:         "Browse and manage events",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("config") {
				return nil
			}
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", config.DefaultPath, "path to the YAML configuration file")

	root.AddCommand(
		a.listCmd(),
		a.categoriesCmd(),
		a.createCmd(),
		a.showCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.serveCmd(),
		a.migrateCmd(),
	)
	return root
}

// NewServer builds the reference backend HTTP server.
func NewServer(cfg config.Application, deps *ServerDependencies) *http.Server {
	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps)

	return &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// serve blocks until srv fails or ctx is done, then shuts it down.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received, stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
