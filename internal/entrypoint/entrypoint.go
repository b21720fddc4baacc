package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suilan/musedeck/internal/audit"
	"github.com/suilan/musedeck/internal/classifier"
	"github.com/suilan/musedeck/internal/config"
	"github.com/suilan/musedeck/internal/database"
	contentdb "github.com/suilan/musedeck/internal/database/content"
	settingsdb "github.com/suilan/musedeck/internal/database/settings"
	"github.com/suilan/musedeck/internal/display"
	"github.com/suilan/musedeck/internal/enrichment"
	http_controllers "github.com/suilan/musedeck/internal/http"
	"github.com/suilan/musedeck/internal/quotes"
	"github.com/suilan/musedeck/internal/scheduler"
	"github.com/suilan/musedeck/internal/syncbus"
	"github.com/suilan/musedeck/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background workers before the listener so in-flight tasks can
	// still publish their notifications.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting MuseDeck v%s", version)

	if cfg.Classifier.APIKey == "" {
		log.Printf("WARNING: Classifier API key is not set. Enrichment calls will fail. Set 'CLASSIFIER_API_KEY' to enable.")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	settingsRepo := settingsdb.NewRepository(db.DB)
	contentRepo := contentdb.NewRepository(db.DB)

	// The broker connection manager is owned here: created up front,
	// connected lazily on first publish, disconnected at shutdown.
	bus := syncbus.NewManager(syncbus.Config{
		BrokerURL:       cfg.MQTT.BrokerURL,
		Username:        cfg.MQTT.Username,
		Password:        cfg.MQTT.Password,
		ClientIDPrefix:  cfg.MQTT.ClientIDPrefix,
		ConnectTimeout:  cfg.MQTT.ConnectTimeout,
		ReconnectPeriod: cfg.MQTT.ReconnectPeriod,
	})

	// External collaborators
	workflowClient := classifier.NewWorkflowClient(
		cfg.Classifier.BaseURL,
		cfg.Classifier.APIKey,
		cfg.Classifier.WorkflowID,
		cfg.Classifier.User,
	)
	quoteClient := quotes.NewHitokotoClient(cfg.Quotes.URL)

	// Core subsystems
	aggregator := display.NewAggregator(settingsRepo, contentRepo, quoteClient)
	pipeline := enrichment.NewPipeline(contentRepo, workflowClient)

	// Auditor for raw content submissions
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewEnrichContentQueue(pipeline),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Periodic inspiration nudge
	nudgeScheduler := scheduler.NewNudgeScheduler(bus, cfg.Nudge.Schedule)
	if cfg.Nudge.Enabled {
		if err := nudgeScheduler.Start(); err != nil {
			log.Fatalf("Failed to start nudge scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:      db,
		SettingsStore: settingsRepo,
		ContentStore:  contentRepo,
		Aggregator:    aggregator,
		Pipeline:      pipeline,
		Bus:           bus,
		BrokerStatus:  bus,
		NudgeTrigger:  nudgeScheduler,
		TaskClient:    taskClient,
		Auditor:       auditor,
		Version:       version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		nudgeScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		bus.Disconnect()
	}

	Serve(router, cfg, onShutdown)
}
