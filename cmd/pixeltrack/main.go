package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/codec"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/configs"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/handlers"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/logger"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/middlewares"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/services"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/storage"
)

var (
	buildVersion string = "N/A"
	buildDate    string = "N/A"
	buildCommit  string = "N/A"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configs.Parse(os.Args[1:])
	if err != nil {
		panic(err)
	}
	if err := logger.Initialize(config.LogLevel); err != nil {
		panic(err)
	}
	showBuildInfo()

	keys, err := codec.ParseKeys(config.Key)
	if err != nil {
		panic(err)
	}
	ipChecker, err := services.NewIPChecker(config.TrustedSubnet)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	store, mapStorage := configureStorage(ctx, config)
	recorder := services.NewDeferredRecorder(store, config.FlushInterval)
	dispatcher := services.NewWebhookDispatcher(&http.Client{Timeout: config.DispatchTimeout})
	tracker := services.NewTracker(keys, dispatcher, recorder, config.DispatchTimeout)
	issuer := services.NewLinkIssuer(keys, config.BaseLinkURL())

	recorderCtx, stopRecorder := context.WithCancel(context.Background())
	recorderDone := runWorker(func() { recorder.Run(recorderCtx) })
	dumperCtx, stopDumper := context.WithCancel(context.Background())
	dumperDone := make(chan struct{})
	if mapStorage != nil {
		dumper := services.NewStorageDumper(mapStorage, config.FlushInterval)
		dumperDone = runWorker(func() { dumper.Run(dumperCtx) })
	} else {
		close(dumperDone)
	}

	server := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           configureRouter(config, store, issuer, tracker, ipChecker),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      config.DispatchTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("listening", zap.String("address", config.ServerAddress), zap.Bool("https", config.UseHTTPS()))
		serveErr <- serve(server, config)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Info("failed to shutdown", zap.Error(err))
	}

	stopRecorder()
	<-recorderDone
	stopDumper()
	<-dumperDone
	if db, ok := store.(*storage.DBStorage); ok {
		db.Close()
	}
	_ = logger.Log.Sync()
}

func runWorker(run func()) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		run()
	}()

	return done
}

func serve(server *http.Server, config configs.Config) error {
	if !config.UseHTTPS() {
		return server.ListenAndServe()
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(config.BaseLinkURL().Hostname()),
		Cache:      autocert.DirCache("certs"),
	}
	server.TLSConfig = manager.TLSConfig()

	return server.ListenAndServeTLS("", "")
}

func configureRouter(
	config configs.Config,
	store storage.Storage,
	issuer handlers.LinkIssuer,
	tracker handlers.HitTracker,
	ipChecker services.IPChecker) chi.Router {

	router := chi.NewRouter()
	handlers := handlers.NewHandlers(config, store)
	router.Use(
		middleware.RealIP,
		middlewares.ResponseLogger,
		middlewares.RequestLogger,
		middlewares.GzipCompress,
		middleware.AllowContentEncoding("gzip"),
	)
	if len(config.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: config.CORSOrigins,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}
	router.Get("/", handlers.Index(issuer))
	router.Get("/pt/{token}", handlers.TrackPixel(tracker))
	router.Get("/ping", handlers.Ping)
	router.Group(func(router chi.Router) {
		router.Use(middleware.AllowContentType("application/json", "application/x-gzip"))
		router.Post("/api/links", handlers.CreateLinkFromJSON(issuer))
	})
	router.Group(func(router chi.Router) {
		router.Use(middlewares.OnlyTrustedIP(ipChecker))
		router.Get("/api/internal/stats", handlers.GetStats)
		router.Get("/api/internal/hits/{label}", handlers.GetHitsByLabel)
	})

	return router
}

// configureStorage returns the map storage separately when it has to be dumped
func configureStorage(ctx context.Context, config configs.Config) (storage.Storage, *storage.MapStorage) {
	if config.UseDBStorage() {
		store, err := storage.NewDBStorage(ctx, config.DatabaseDSN)
		if err != nil {
			panic(err)
		}
		return store, nil
	}

	if config.UseFileStorage() {
		fs := storage.NewFileStorage(config.FileStoragePath)
		store := storage.NewMapStorage(fs)
		hits, err := fs.Snapshot()
		if err != nil {
			panic(err)
		}
		store.Restore(hits)
		logger.Log.Info("hits restored", zap.Int("count", len(hits)))
		return store, store
	}

	return storage.NewMapStorage(nil), nil
}

func showBuildInfo() {
	logger.Log.Info("build info", zap.String("build version", buildVersion))
	logger.Log.Info("build info", zap.String("build date", buildDate))
	logger.Log.Info("build info", zap.String("build commit", buildCommit))
}
