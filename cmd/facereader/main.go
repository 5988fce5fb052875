package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/rapleeee/face-reading-withAI/internal/config"
	"github.com/rapleeee/face-reading-withAI/internal/handler"
	"github.com/rapleeee/face-reading-withAI/internal/job"
	"github.com/rapleeee/face-reading-withAI/internal/middleware"
	"github.com/rapleeee/face-reading-withAI/internal/ratelimit"
	"github.com/rapleeee/face-reading-withAI/internal/schedule"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "facereader",
		Short: "face reading analysis server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (yaml, json or toml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the analysis http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}

	var imagePath string
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "analyze a local image and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if imagePath == "" {
				return fmt.Errorf("--image is required")
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return analyzeFile(cmd.Context(), cfg, imagePath)
		},
	}
	analyzeCmd.Flags().StringVar(&imagePath, "image", "", "path to a jpeg or png image")

	rootCmd.AddCommand(runCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.Log.File,
		cfg.Log.Level,
		cfg.Log.FileCount,
		cfg.Log.FileSize,
		cfg.Log.KeepDays,
		cfg.Log.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", path))
	if !cfg.Configured() {
		logutil.GetLogger(context.Background()).Warn("upstream credentials missing, analyze requests will fail",
			zap.Bool("classifier_token", cfg.Classifier.Token != ""),
		)
	}
	return cfg, nil
}

func runServer(cfg *config.Config) error {
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port)
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.String("addr", addr),
		zap.String("cache", cfg.Cache.Type),
		zap.Int("rate_limit_max", cfg.RateLimit.Max),
		zap.Duration("rate_limit_window", cfg.RateLimit.Window),
	)

	app, err := buildApp(cfg)
	if err != nil {
		return err
	}
	limiter := ratelimit.NewSlidingWindow(cfg.RateLimit.Window, cfg.RateLimit.Max)

	deps := handler.RouterDeps{
		Analyze: handler.NewAnalyzeHandler(app.service, cfg.Server.MaxBodyBytes),
		Meta:    handler.NewMetaHandler(),
		Limiter: limiter,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.Server.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSweepJob(app.cacheSweeper(), limiter), cfg.Cleanup.Spec); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	if scheduler.Len() > 0 {
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

func analyzeFile(ctx context.Context, cfg *config.Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	app, err := buildApp(cfg)
	if err != nil {
		return err
	}
	image := "data:" + http.DetectContentType(raw) + ";base64," + base64.StdEncoding.EncodeToString(raw)
	result, err := app.service.Analyze(ctx, image)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
