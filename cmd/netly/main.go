package main

import (
	"context"
	"database/sql"
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

	"github.com/netly-app/netly/internal/cache"
	"github.com/netly-app/netly/internal/config"
	"github.com/netly-app/netly/internal/db"
	"github.com/netly-app/netly/internal/filestore"
	"github.com/netly-app/netly/internal/handler"
	"github.com/netly-app/netly/internal/job"
	"github.com/netly-app/netly/internal/mail"
	"github.com/netly-app/netly/internal/middleware"
	"github.com/netly-app/netly/internal/repo"
	"github.com/netly-app/netly/internal/schedule"
	"github.com/netly-app/netly/internal/service"
)

const (
	weeklySnapshotSpec = "0 12 * * 1"
	monthlyReportSpec  = "0 1 1 * *"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "netly",
		Short: "netly backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run netly server",
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
		zap.String("redis", cfg.Redis.Addr),
		zap.String("report_store", cfg.ReportStore.Type),
	)

	store, err := cache.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer store.Close()

	userRepo := repo.NewUserRepo(database)
	assetRepo := repo.NewAssetRepo(database)
	liabilityRepo := repo.NewLiabilityRepo(database)
	budgetRepo := repo.NewBudgetRepo(database)
	rateRepo := repo.NewCurrencyRateRepo(database)
	assetTypeRepo := repo.NewAssetTypeRepo(database)
	liabilityTypeRepo := repo.NewLiabilityTypeRepo(database)
	snapshotRepo := repo.NewSnapshotRepo(database)

	sender := mail.NewResendClient(cfg.Resend)
	dispatcher := mail.NewDispatcher(store, sender, cfg.Resend.SenderEmail, cfg.Resend.SendInterval())
	dispatcher.Start()
	defer dispatcher.Stop()

	archive, err := filestore.New(cfg.ReportStore)
	if err != nil {
		return fmt.Errorf("init report store: %w", err)
	}

	otpService := service.NewOTPService(store, cfg.OTP.Expiration())
	authService := service.NewAuthService(userRepo, otpService, dispatcher,
		[]byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	userService := service.NewUserService(userRepo, otpService, authService)
	currencyService := service.NewCurrencyService(rateRepo)
	configService := service.NewConfigurationService(rateRepo, assetTypeRepo,
		liabilityTypeRepo, assetRepo, liabilityRepo, currencyService)
	assetService := service.NewAssetService(assetRepo, assetTypeRepo, currencyService, configService)
	liabilityService := service.NewLiabilityService(liabilityRepo, liabilityTypeRepo, currencyService, configService)
	budgetService := service.NewBudgetService(budgetRepo)
	snapshotService := service.NewSnapshotService(snapshotRepo, assetRepo, liabilityRepo, configService, currencyService)
	reportingService := service.NewReportingService(userRepo, assetService, liabilityService,
		budgetService, currencyService, configService, assetRepo, liabilityRepo, dispatcher, archive)

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewWeeklySnapshotJob(userRepo, snapshotService), weeklySnapshotSpec); err != nil {
		return fmt.Errorf("schedule weekly snapshot: %w", err)
	}
	if err := scheduler.AddJob(job.NewMonthlyReportJob(userRepo, reportingService), monthlyReportSpec); err != nil {
		return fmt.Errorf("schedule monthly report: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Users:         handler.NewUserHandler(userService),
		Assets:        handler.NewAssetHandler(assetService),
		Liabilities:   handler.NewLiabilityHandler(liabilityService),
		Budget:        handler.NewBudgetHandler(budgetService),
		Configuration: handler.NewConfigurationHandler(configService),
		Snapshots:     handler.NewSnapshotHandler(snapshotService),
		Reports:       handler.NewReportHandler(reportingService),
		JWTSecret:     []byte(cfg.JWTSecret),
		OTPWindow:     cfg.OTP.RequestWindow(),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening",
		zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
