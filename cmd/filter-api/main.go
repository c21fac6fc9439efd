package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/DMarby/bmpfilter/internal/api"
	"github.com/DMarby/bmpfilter/internal/cmd"
	"github.com/DMarby/bmpfilter/internal/metrics"
	"github.com/DMarby/bmpfilter/internal/params"
	"github.com/DMarby/bmpfilter/internal/tracing"

	"github.com/DMarby/bmpfilter/internal/database"
	fileDatabase "github.com/DMarby/bmpfilter/internal/database/file"
	"github.com/DMarby/bmpfilter/internal/health"
	"github.com/DMarby/bmpfilter/internal/logger"

	"github.com/jamiealquiza/envy"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Comandline flags
var (
	// Global
	listen          = flag.String("listen", ":8080", "listen address")
	metricsListen   = flag.String("metrics-listen", ":8082", "metrics listen address")
	rootURL         = flag.String("root-url", "http://localhost:8080", "root url")
	imageServiceURL = flag.String("image-service-url", "http://localhost:8081", "filter service url")
	loglevel        = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")
	enableTracing   = flag.Bool("tracing", false, "export traces over otlp grpc, configured with the OTEL_EXPORTER_OTLP_* environment variables")

	// Database
	databaseBackend = flag.String("database", "file", "which database backend to use (file)")

	// Database - File
	databaseFilePath = flag.String("database-file-path", "./test/fixtures/file/metadata.json", "path to the database file")

	// HMAC
	hmacKey = flag.String("hmac-key", "", "hmac key to use for authentication between services")
)

func main() {
	// Parse environment variables
	envy.Parse("BMPFILTER_API")

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel)
	defer log.Sync()

	// Set GOMAXPROCS
	maxprocs.Set(maxprocs.Logger(log.Infof))

	// Set up context for shutting down
	shutdownCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	// Initialize tracing
	var tracer *tracing.Tracer
	if *enableTracing {
		var err error
		tracer, err = tracing.New(shutdownCtx, log, "filter-api")
		if err != nil {
			log.Fatalf("error initializing tracing: %s", err)
		}
		defer tracer.Shutdown(context.Background())
	} else {
		tracer = tracing.Noop(log, "filter-api")
	}

	// Initialize the database
	database, err := setupBackends()
	if err != nil {
		log.Fatalf("error initializing backends: %s", err)
	}
	defer database.Shutdown()

	// Initialize and start the health checker
	checkerCtx, checkerCancel := context.WithCancel(context.Background())
	defer checkerCancel()

	checker := &health.Checker{
		Ctx:      checkerCtx,
		Database: database,
		Log:      log,
	}
	go checker.Run()

	// Start the metrics http server
	go metrics.Serve(shutdownCtx, log, checker, *metricsListen)

	// Start and listen on http
	api := &api.API{
		Database:        database,
		HealthChecker:   checker,
		Log:             log,
		Tracer:          tracer,
		RootURL:         *rootURL,
		ImageServiceURL: *imageServiceURL,
		HandlerTimeout:  cmd.HandlerTimeout,
		Signer: &params.Signer{
			Key: []byte(*hmacKey),
		},
	}
	server := &http.Server{
		Addr:         *listen,
		Handler:      api.Router(),
		ReadTimeout:  cmd.ReadTimeout,
		WriteTimeout: cmd.WriteTimeout,
		ErrorLog:     logger.NewHTTPErrorLog(log),
	}

	cmd.Serve(shutdownCtx, log, server)
}

func setupBackends() (database database.Provider, err error) {
	// Database
	switch *databaseBackend {
	case "file":
		database, err = fileDatabase.New(*databaseFilePath)
	default:
		err = fmt.Errorf("invalid database backend")
	}

	return
}
