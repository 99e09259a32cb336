package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appBrief "github.com/arbetsytan/arbetsytan/pkg/app/brief"
	appDocument "github.com/arbetsytan/arbetsytan/pkg/app/document"
	appExport "github.com/arbetsytan/arbetsytan/pkg/app/export"
	"github.com/arbetsytan/arbetsytan/pkg/app/ingest"
	appNote "github.com/arbetsytan/arbetsytan/pkg/app/note"
	appProject "github.com/arbetsytan/arbetsytan/pkg/app/project"
	appScout "github.com/arbetsytan/arbetsytan/pkg/app/scout"
	appTranscript "github.com/arbetsytan/arbetsytan/pkg/app/transcript"
	"github.com/arbetsytan/arbetsytan/pkg/config"
	handlers "github.com/arbetsytan/arbetsytan/pkg/handlers/http"
	"github.com/arbetsytan/arbetsytan/pkg/infra/auditlogs"
	"github.com/arbetsytan/arbetsytan/pkg/infra/briefcompiler"
	infraCache "github.com/arbetsytan/arbetsytan/pkg/infra/cache"
	"github.com/arbetsytan/arbetsytan/pkg/infra/database"
	"github.com/arbetsytan/arbetsytan/pkg/infra/feedfetch"
	infraLogger "github.com/arbetsytan/arbetsytan/pkg/infra/logger"
	"github.com/arbetsytan/arbetsytan/pkg/infra/prometheus"
	"github.com/arbetsytan/arbetsytan/pkg/infra/repository"
	"github.com/arbetsytan/arbetsytan/pkg/infra/transcriber"
	"github.com/arbetsytan/arbetsytan/pkg/middleware"
	"github.com/arbetsytan/arbetsytan/pkg/server"
)

var errTranscriberNotConfigured = errors.New("transcription engine is not configured")

func main() {
	ctx := context.Background()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config"
	}
	if err := config.Load(configPath); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheClient, err := infraCache.NewClient(infraCache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		logger.Fatalf("failed to initialize redis: %v", err)
	}

	// repository
	projectRepository := repository.NewProjectRepository(db.DB)
	eventRepository := repository.NewProjectEventRepository(db.DB)
	documentRepository := repository.NewDocumentRepository(db.DB)
	noteRepository := repository.NewNoteRepository(db.DB)
	transcriptRepository := repository.NewTranscriptRepository(db.DB)
	feedRepository := repository.NewScoutFeedRepository(db.DB)
	itemRepository := repository.NewScoutItemRepository(db.DB)

	// audit log
	var auditExporter auditlogs.Exporter
	if cfg.Audit.KafkaEnabled {
		auditExporter, err = auditlogs.NewKafkaExporter(auditlogs.KafkaConfig{
			Host:  cfg.Audit.KafkaHost,
			Port:  cfg.Audit.KafkaPort,
			Topic: cfg.Audit.KafkaTopic,
		})
		if err != nil {
			logger.Fatalf("failed to initialize kafka audit exporter: %v", err)
		}
	}
	recorder := auditlogs.NewRecorder(logger, eventRepository, auditExporter)
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.WithError(err).Error("failed to close audit recorder")
		}
	}()

	// engines
	transcriptionEngine := transcriber.NewLazy(func() (transcriber.Transcriber, error) {
		url := cfg.Engines.Transcriber.URL
		if url == "" {
			return nil, errTranscriberNotConfigured
		}
		timeout := time.Duration(cfg.Engines.Transcriber.TimeoutSeconds) * time.Second
		return transcriber.NewLocalClient(logger, url, timeout), nil
	})
	briefProvider, err := briefcompiler.NewProvider(ctx, cfg.Engines.Brief, logger)
	if err != nil {
		logger.Fatalf("failed to initialize brief provider: %v", err)
	}

	// application services
	pipeline := ingest.NewPipeline(logger)
	projectFinder := appProject.NewFinder(projectRepository, cacheClient, logger)
	projectCreator := appProject.NewCreator(logger, projectRepository, recorder)
	documentIngestor := appDocument.NewIngestor(logger, documentRepository, projectFinder, pipeline, recorder)
	noteCreator := appNote.NewCreator(logger, noteRepository, projectFinder, pipeline, recorder)
	transcriptIngestor := appTranscript.NewIngestor(
		logger, transcriptRepository, projectFinder, pipeline, transcriptionEngine, recorder,
	)
	exporter := appExport.NewExporter(
		logger, projectFinder, documentRepository, noteRepository, transcriptRepository, recorder,
	)
	briefCompiler := appBrief.NewCompiler(
		logger, projectFinder, documentRepository, noteRepository, transcriptRepository, briefProvider,
	)
	feedCreator := appScout.NewFeedCreator(logger, feedRepository)
	fetcher := feedfetch.NewFetcher(logger, cfg.Scout.UserAgent)
	refresher := appScout.NewRefresher(
		logger, feedRepository, itemRepository, fetcher, pipeline, cacheClient,
		cfg.Scout.MaxConcurrentFetches,
		time.Duration(cfg.Scout.ThrottleSeconds)*time.Second,
	)

	handlerTransport := handlers.HandlerTransport{
		CreateProjectHandler: handlers.NewCreateProjectHandler(logger, projectCreator),
		ListProjectsHandler:  handlers.NewListProjectsHandler(logger, projectRepository),
		GetProjectHandler:    handlers.NewGetProjectHandler(logger, projectFinder),
		ListEventsHandler:    handlers.NewListEventsHandler(logger, eventRepository),

		UploadDocumentHandler: handlers.NewUploadDocumentHandler(logger, documentIngestor),
		ListDocumentsHandler:  handlers.NewListDocumentsHandler(logger, documentRepository),
		GetDocumentHandler:    handlers.NewGetDocumentHandler(logger, documentRepository),

		CreateNoteHandler: handlers.NewCreateNoteHandler(logger, noteCreator),
		ListNotesHandler:  handlers.NewListNotesHandler(logger, noteRepository),

		CreateTranscriptHandler: handlers.NewCreateTranscriptHandler(logger, transcriptIngestor),
		ListTranscriptsHandler:  handlers.NewListTranscriptsHandler(logger, transcriptRepository),

		ExportProjectHandler: handlers.NewExportProjectHandler(logger, exporter),
		CompileBriefHandler:  handlers.NewCompileBriefHandler(logger, briefCompiler),

		CreateFeedHandler:    handlers.NewCreateFeedHandler(logger, feedCreator),
		ListFeedsHandler:     handlers.NewListFeedsHandler(logger, feedRepository),
		RefreshFeedsHandler:  handlers.NewRefreshFeedsHandler(logger, refresher),
		ListFeedItemsHandler: handlers.NewListFeedItemsHandler(logger, itemRepository),

		GetVersionHandler: handlers.NewGetVersionHandler(logger),
	}

	middlewareTransport := middleware.Transport{
		AuthMiddleware:    middleware.NewAuthMiddleware(logger, cfg.Auth),
		MetricsMiddleware: middleware.NewMetricsMiddleware(logger),
	}

	srv := server.NewApiServer(server.ApiServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.WithError(err).Error("api server stopped")
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.WithError(err).Error("failed to shut down api server")
		}
	}
}
