package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ai-legal-analyzer/auth-service/internal/config"
	"github.com/ai-legal-analyzer/auth-service/internal/httpserver"
	"github.com/ai-legal-analyzer/auth-service/internal/models"
	"github.com/ai-legal-analyzer/auth-service/internal/mykafka"
	"github.com/ai-legal-analyzer/auth-service/internal/repo"
	"github.com/ai-legal-analyzer/auth-service/internal/service"
	"github.com/ai-legal-analyzer/auth-service/pkg/db"
	"github.com/ai-legal-analyzer/auth-service/pkg/logging"
	loggingmw "github.com/ai-legal-analyzer/auth-service/pkg/middleware/logging"
	"github.com/ai-legal-analyzer/auth-service/pkg/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gormDB.AutoMigrate(&models.User{}, &models.RevokedToken{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers, mykafka.UserEventsTopic)
		defer producer.Close()
	}

	credStore := &repo.GormRepo{DB: gormDB}
	codec := tokens.NewCodec(cfg.JWTSecret)

	authSvc := &service.AuthService{
		Repo:     credStore,
		Codec:    codec,
		Producer: producer,
	}
	permSvc := &service.PermissionService{
		Repo:     credStore,
		Producer: producer,
	}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:       &httpserver.AuthHTTP{Svc: authSvc},
		PermissionHandler: &httpserver.PermissionHTTP{Svc: permSvc},
	})

	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
