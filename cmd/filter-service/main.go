package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/DMarby/bmpfilter/internal/cache"
	"github.com/DMarby/bmpfilter/internal/cache/memory"
	"github.com/DMarby/bmpfilter/internal/cache/redis"
	"github.com/DMarby/bmpfilter/internal/cmd"
	"github.com/DMarby/bmpfilter/internal/health"
	"github.com/DMarby/bmpfilter/internal/image"
	"github.com/DMarby/bmpfilter/internal/image/grid"
	"github.com/DMarby/bmpfilter/internal/logger"
	"github.com/DMarby/bmpfilter/internal/metrics"
	"github.com/DMarby/bmpfilter/internal/params"
	"github.com/DMarby/bmpfilter/internal/storage"
	fileStorage "github.com/DMarby/bmpfilter/internal/storage/file"
	"github.com/DMarby/bmpfilter/internal/storage/spaces"
	"github.com/DMarby/bmpfilter/internal/tracing"

	api "github.com/DMarby/bmpfilter/internal/imageapi"

	"github.com/jamiealquiza/envy"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Comandline flags
var (
	// Global
	listen        = flag.String("listen", ":8081", "listen address")
	metricsListen = flag.String("metrics-listen", ":8083", "metrics listen address")
	loglevel      = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")
	enableTracing = flag.Bool("tracing", false, "export traces over otlp grpc, configured with the OTEL_EXPORTER_OTLP_* environment variables")

	// Processing
	workers       = flag.Int("workers", runtime.GOMAXPROCS(0), "number of images processed concurrently")
	filterWorkers = flag.Int("filter-workers", 1, "number of goroutines each image's rows are split across")

	// Storage
	storageBackend = flag.String("storage", "file", "which storage backend to use (file, spaces)")

	// Storage - File
	storageFilePath = flag.String("storage-file-path", "./test/fixtures/file", "path to the file storage")

	// Storage - Spaces
	storageSpacesSpace          = flag.String("storage-spaces-space", "", "digitalocean space to use")
	storageSpacesEndpoint       = flag.String("storage-spaces-endpoint", "", "spaces endpoint, such as https://ams3.digitaloceanspaces.com")
	storageSpacesAccessKey      = flag.String("storage-spaces-access-key", "", "spaces access key")
	storageSpacesSecretKey      = flag.String("storage-spaces-secret-key", "", "spaces secret key")
	storageSpacesForcePathStyle = flag.Bool("storage-spaces-force-path-style", false, "use path style addressing, needed by s3 compatible servers such as minio")

	// Cache
	cacheBackend = flag.String("cache", "memory", "which cache backend to use (memory, redis)")

	// Cache - Memory
	cacheMemoryMaxItems = flag.Int("cache-memory-max-items", 1000, "max number of source bitmaps to keep in memory")

	// Cache - Redis
	cacheRedisAddress  = flag.String("cache-redis-address", "redis://127.0.0.1:6379", "redis address, may contain authentication details")
	cacheRedisPoolSize = flag.Int("cache-redis-pool-size", 10, "redis connection pool size")
	cacheRedisTTL      = flag.Duration("cache-redis-ttl", 24*time.Hour, "how long source bitmaps are kept in redis, 0 to keep them forever")

	// Healthcheck
	healthCheckImageID = flag.String("health-check-image-id", "1", "image ID to request from the storage to check storage health")

	// HMAC
	hmacKey = flag.String("hmac-key", "", "hmac key to use for authentication between services")
)

func main() {
	// Parse environment variables
	envy.Parse("FILTER")

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
		tracer, err = tracing.New(shutdownCtx, log, "filter-service")
		if err != nil {
			log.Fatalf("error initializing tracing: %s", err)
		}
		defer tracer.Shutdown(context.Background())
	} else {
		tracer = tracing.Noop(log, "filter-service")
	}

	// Initialize the storage, cache
	storage, cache, err := setupBackends(shutdownCtx, tracer)
	if err != nil {
		log.Fatalf("error initializing backends: %s", err)
	}
	defer cache.Shutdown()

	// Initialize the image processor
	imageProcessorCtx, imageProcessorCancel := context.WithCancel(context.Background())
	defer imageProcessorCancel()

	imageProcessor := grid.New(imageProcessorCtx, log, tracer, *workers, *filterWorkers, image.NewCache(tracer, cache, storage))

	// Initialize and start the health checker
	checkerCtx, checkerCancel := context.WithCancel(context.Background())
	defer checkerCancel()

	checker := &health.Checker{
		Ctx:     checkerCtx,
		Storage: storage,
		ImageID: *healthCheckImageID,
		Cache:   cache,
		Log:     log,
	}
	go checker.Run()

	// Start the metrics http server
	go metrics.Serve(shutdownCtx, log, checker, *metricsListen)

	// Start and listen on http
	api := &api.API{
		ImageProcessor: imageProcessor,
		HealthChecker:  checker,
		Log:            log,
		Tracer:         tracer,
		HandlerTimeout: cmd.HandlerTimeout,
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

func setupBackends(ctx context.Context, tracer *tracing.Tracer) (storage storage.Provider, cache cache.Provider, err error) {
	// Storage
	switch *storageBackend {
	case "file":
		storage, err = fileStorage.New(*storageFilePath)
	case "spaces":
		storage, err = spaces.New(ctx, *storageSpacesSpace, *storageSpacesEndpoint, *storageSpacesAccessKey, *storageSpacesSecretKey, *storageSpacesForcePathStyle)
	default:
		err = fmt.Errorf("invalid storage backend")
	}

	if err != nil {
		return
	}

	// Cache
	switch *cacheBackend {
	case "memory":
		cache, err = memory.New(*cacheMemoryMaxItems)
	case "redis":
		cache, err = redis.New(ctx, tracer, *cacheRedisAddress, *cacheRedisPoolSize, *cacheRedisTTL)
	default:
		err = fmt.Errorf("invalid cache backend")
	}

	return
}
