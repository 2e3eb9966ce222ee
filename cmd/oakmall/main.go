package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/oakmall/oakmall/internal/config"
	"github.com/oakmall/oakmall/internal/db"
	"github.com/oakmall/oakmall/internal/handler"
	"github.com/oakmall/oakmall/internal/job"
	"github.com/oakmall/oakmall/internal/middleware"
	"github.com/oakmall/oakmall/internal/repo"
	"github.com/oakmall/oakmall/internal/schedule"
	"github.com/oakmall/oakmall/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "oakmall",
		Short: "oakmall recommendation backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run oakmall server",
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

			database, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(database); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, database)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, database *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Int("top_k", cfg.Recommend.TopK),
		zap.Int("train_timeout_sec", cfg.Recommend.TrainTimeoutSec),
	)

	orderRepo := repo.NewOrderRepo(database)
	interactionRepo := repo.NewInteractionRepo(database)

	recService := service.NewRecommendationService(orderRepo, interactionRepo, cfg.Recommend)
	interactionService := service.NewInteractionService(interactionRepo)

	deps := handler.RouterDeps{
		Recommendations: handler.NewRecommendationHandler(recService),
		Interactions:    handler.NewInteractionHandler(interactionService),
		JWTSecret:       []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.Recommend.StatsCron != "" {
		if err := scheduler.AddJob(job.NewSignalStatsJob(orderRepo, interactionRepo), cfg.Recommend.StatsCron); err != nil {
			return fmt.Errorf("schedule stats job: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
