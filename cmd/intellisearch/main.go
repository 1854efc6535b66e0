package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/ai"
	"github.com/twidpay/intellisearch/internal/classifier"
	"github.com/twidpay/intellisearch/internal/config"
	"github.com/twidpay/intellisearch/internal/contacts"
	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/handler"
	"github.com/twidpay/intellisearch/internal/job"
	"github.com/twidpay/intellisearch/internal/middleware"
	"github.com/twidpay/intellisearch/internal/prompt"
	"github.com/twidpay/intellisearch/internal/schedule"
	"github.com/twidpay/intellisearch/internal/seed"
	"github.com/twidpay/intellisearch/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "intellisearch",
		Short: "intent classification gateway",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func newStore(cfg config.StoreConfig) (docstore.Store, error) {
	switch cfg.Type {
	case "memory":
		return docstore.NewMemoryStore(), nil
	case "elasticsearch":
		return docstore.NewESStore(docstore.ESConfig{
			Addresses: cfg.Addresses,
			Username:  cfg.Username,
			Password:  cfg.Password,
		})
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}

func runServer(cfg *config.Config) error {
	ctx := context.Background()
	logutil.GetLogger(ctx).Info("starting server",
		zap.Int("port", cfg.Port),
		zap.String("store", cfg.Store.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	store, err := newStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("probe store: %w", err)
	}
	if err := seed.Bootstrap(ctx, store, cfg.Store.GlobalIndex); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	if err := contacts.ImportAll(ctx, cfg.ContactsDir, store); err != nil {
		return fmt.Errorf("import contacts: %w", err)
	}

	providerArgs := interface{}(cfg.AI.Data)
	if cfg.AI.Data == nil {
		providerArgs = cfg.AI
	}
	aiProvider, err := ai.NewProvider(cfg.AI.Provider, providerArgs)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	gen := ai.NewGenerator(aiProvider, cfg.AI.Model, time.Duration(cfg.AI.Timeout)*time.Second)

	prompts := prompt.NewBuilder(store, cfg.Store.GlobalIndex, cfg.Store.UserIndexPrefix)
	handle := classifier.NewHandle(classifier.NewModel(prompts.Build(ctx, "", prompt.DefaultMaxExamplesPerIntent), gen))

	trainingService := service.NewTrainingService(store, cfg.Store.GlobalIndex, cfg.Store.UserIndexPrefix)
	enrichmentService := service.NewEnrichmentService(store)
	historyService := service.NewHistoryService(store)
	refreshService := service.NewRefreshService(handle, prompts, gen)
	feedbackService := service.NewFeedbackService(trainingService, refreshService)
	intentService := service.NewIntentService(handle, gen, prompts, trainingService, enrichmentService, historyService)
	billService := service.NewBillService(store)

	deps := handler.RouterDeps{
		Intents: handler.NewIntentHandler(intentService, feedbackService, refreshService),
		Bills:   handler.NewBillHandler(billService),
		History: handler.NewHistoryHandler(historyService),
	}

	var window time.Duration
	if cfg.RateLimitPerMinute > 0 {
		window = time.Minute / time.Duration(cfg.RateLimitPerMinute)
	}
	engine, err := webapi.NewEngine(
		"/",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			middleware.RateLimit(window),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	scheduler := schedule.NewCronScheduler()
	if cfg.RefreshSpec != "" {
		if err := scheduler.AddJob(job.NewModelRefreshJob(refreshService), cfg.RefreshSpec); err != nil {
			return fmt.Errorf("schedule model refresh: %w", err)
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	scheduler.Start(runCtx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(ctx).Error("server error", zap.Error(err))
		}
	}()

	<-runCtx.Done()
	logutil.GetLogger(ctx).Info("server stopping...")
	return nil
}
