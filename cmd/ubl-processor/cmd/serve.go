package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-processor/internal/logging"
	"github.com/rezonia/ubl-processor/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxBodyBytes int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for UBL documents.

The API provides endpoints for:
  - POST /api/v1/extract   - Normalize a document (?document_id=)
  - POST /api/v1/parse     - Return the parsed document model
  - POST /api/v1/validate  - Reconcile totals (?strict=true)
  - POST /api/v1/info      - Get file information
  - GET  /health           - Health check

Settings come from UBL_* environment variables or a .env file; flags
override them.

Examples:
  # Start server on default port
  ubl-processor serve

  # Start on custom port in debug mode
  ubl-processor serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address (env: UBL_LISTEN_ADDR)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode (env: UBL_DEBUG)")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout (env: UBL_READ_TIMEOUT)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", time.Minute, "HTTP write timeout (env: UBL_WRITE_TIMEOUT)")
	serveCmd.Flags().Int64Var(&maxBodyBytes, "max-body-bytes", 20<<20, "Largest accepted request body (env: UBL_MAX_BODY_BYTES)")
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.ListenAddr = serverAddr
	}
	if flags.Changed("debug") {
		cfg.Debug = serverDebug
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = readTimeout
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout = writeTimeout
	}
	if flags.Changed("max-body-bytes") {
		cfg.MaxBodyBytes = maxBodyBytes
	}

	log := logging.Component("server")
	srv := server.NewServer(&server.Config{
		Address:      cfg.ListenAddr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Debug:        cfg.Debug,
		Logger:       log,
	})

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("shutting down")
		os.Exit(0)
	}()

	return srv.Run()
}
