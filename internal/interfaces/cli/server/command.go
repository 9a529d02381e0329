// Package server implements the CLI command that starts the HTTP server.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"razones/internal/application/ordenespago"
	razonesApp "razones/internal/application/razones"
	"razones/internal/domain/run"
	"razones/internal/infrastructure/config"
	"razones/internal/infrastructure/database"
	"razones/internal/infrastructure/docx"
	"razones/internal/infrastructure/repository"
	httpRouter "razones/internal/interfaces/http"
	"razones/internal/interfaces/http/handlers"
	"razones/internal/shared/logger"
)

const version = "1.0.0"

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the razones HTTP server with the specified configuration.`,
		RunE:  runServer,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

// docxLoader adapts the docx reader to the generation service.
type docxLoader struct{}

func (docxLoader) Load(path string) (razonesApp.Template, error) {
	return docx.Open(path)
}

func runServer(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == gin.DebugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"version", version)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := database.Get().AutoMigrate(&run.Run{}); err != nil {
		logger.Fatal("failed to migrate database schema", "error", err)
	}

	log := logger.NewLogger()

	runRepo := repository.NewRunRepository(database.Get())
	razonesService := razonesApp.NewService(docxLoader{}, log.Named("razones"))
	ordenesService := ordenespago.NewService(log.Named("ordenes_pago"))

	router := httpRouter.NewRouter(
		handlers.NewPageHandler(cfg.Generation.DefaultSender),
		handlers.NewRazonesHandler(razonesService, runRepo, cfg.Generation.DefaultSender, log),
		handlers.NewOrdenesPagoHandler(ordenesService, runRepo, log),
		handlers.NewRunHandler(runRepo, log),
		handlers.NewHealthHandler(version),
		log,
	)
	router.SetupRoutes(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}
