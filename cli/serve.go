package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-mindfit/cronjobs"
	"go-mindfit/db"
	"go-mindfit/handlers"
	"go-mindfit/nlp"
	"go-mindfit/processor"
	"go-mindfit/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MindFIT HTTP API",
	Long: `Start an HTTP server that serves the latest analysis of the survey export.

The server provides:
- REST API for the analysis, clusters, model report and individual assessment
- Upload of a new survey export
- Prometheus metrics endpoint
- Optional scheduled re-analysis (schedule.refresh) and Firestore snapshots (store.firestore)

Examples:
  mindfit serve                    # Serve on the configured host and port
  mindfit serve --port 9090        # Custom port`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "server port")
	serveCmd.Flags().String("host", "0.0.0.0", "server host")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}

func startServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scorer, opts, err := pipelineSetup(ctx, cfg)
	if err != nil {
		return err
	}
	defer nlp.CloseLanguageClient()

	var store db.AnalysisStore
	var saver processor.Saver
	if cfg.Store.Firestore {
		client, err := db.InitFirestore(ctx)
		if err != nil {
			return err
		}
		defer db.CloseFirestore()
		fs := db.NewFirestoreStore(client)
		store, saver = fs, fs
	}

	registry := prometheus.NewRegistry()
	runner := processor.NewRunner(scorer, opts, cfg.Data.CSVPath, saver, registry)

	// A missing export is not fatal: the API answers 503 until one is uploaded.
	if _, err := runner.Refresh(ctx); err != nil {
		logrus.WithError(err).WithField("path", cfg.Data.CSVPath).Warn("Initial analysis failed")
	}

	scheduler, err := cronjobs.InitCronJobs(cronjobs.Job{
		Name: "survey refresh",
		Spec: cfg.Schedule.Refresh,
		Run: func() {
			if _, err := runner.Refresh(ctx); err != nil {
				logrus.WithError(err).Warn("Scheduled analysis failed")
			}
		},
	})
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	h := handlers.NewHandler(runner, store, cfg.Data.AssetsDir, registry)
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           routes.SetupRouter(h, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("MindFIT server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
