package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-articles/config"
	"go-articles/internal/handler"
	"go-articles/internal/model"
	"go-articles/internal/scheduler"
	"go-articles/internal/service"
)

var (
	logger     *zap.Logger
	cfg        *config.Config
	configPath string
	exportOut  string
)

var rootCmd = &cobra.Command{
	Use:          "go-articles",
	Short:        "go-articles - draft, publish and manage short articles",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var loaded bool
		var err error
		cfg, loaded, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if cfg.Log.Development {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return err
		}

		if !loaded {
			logger.Info("Config file not found, using defaults", zap.String("path", configPath))
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := openDB(cfg.Database.Path)
		if err != nil {
			return err
		}

		statusSvc := service.NewStatusService(db)
		sched := scheduler.NewScheduler(statusSvc, cfg.Cron, logger)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		gin.SetMode(cfg.Server.Mode)
		r := handler.NewEngine(logger)

		h := handler.NewHandler(db, cfg, logger)
		h.SetScheduler(sched)
		h.RegisterRoutes(r)

		srv := &http.Server{
			Addr:         cfg.GetServerAddress(),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Server starting", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write confirmed articles as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cfg.Database.Path)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		admin := service.NewAdminService(db, logger, cfg.Admin.PageSize)
		n, err := admin.ExportCSV(cmd.Context(), w)
		if err != nil {
			return err
		}

		logger.Info("Export finished", zap.Int("rows", n), zap.String("out", exportOut))
		return nil
	},
}

func openDB(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&model.Article{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)

	err := rootCmd.Execute()
	if logger != nil {
		logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}
