package cli

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

var serveFrontend bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Serves the REST API under /courses, the SOAP endpoint at /ws and the web
forms at /. With --frontend only the web forms are served, backed by the
remote catalogue configured under backend.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveFrontend, "frontend", false, "serve the web forms against the configured backend")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.Server.Mode)
	app, err := newApplication(ctx, cfg, serveFrontend)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.close(); err != nil {
			logger.Errorf("closing storage: %v", err)
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Annotate(err, "serving HTTP")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return errors.Annotate(server.Shutdown(shutdownCtx), "shutting down")
}
