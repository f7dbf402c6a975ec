package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/giftable/giftable-server/internal/ai"
	"github.com/giftable/giftable-server/internal/api/http/router"
	"github.com/giftable/giftable-server/internal/cache"
	"github.com/giftable/giftable-server/internal/config"
	"github.com/giftable/giftable-server/internal/email"
	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
	"github.com/giftable/giftable-server/internal/repository/postgres"
	"github.com/giftable/giftable-server/internal/server"
	"github.com/giftable/giftable-server/internal/service"
	"github.com/giftable/giftable-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	personRepo := postgres.NewPersonRepository(db)
	occasionRepo := postgres.NewOccasionRepository(db)
	giftRepo := postgres.NewGiftRepository(db)

	redisCache := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, time.Duration(cfg.Redis.OpTimeoutMS)*time.Millisecond)
	defer redisCache.Close()
	kv := cache.NewFailover(redisCache, cache.NewFallback(), logger)
	cacheTTL := time.Duration(cfg.Redis.CacheTTL) * time.Second

	codec := token.NewCodec(cfg.JWT.Secret)
	mailer := email.NewMailer(cfg.SMTP.Addr, cfg.SMTP.From, logger)
	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, logger)

	authService := service.NewAuth(userRepo, kv, codec, mailer, cfg.AdminEmailList(), cfg.AppURL, logger)
	peopleService := service.NewPeople(personRepo, kv, cacheTTL, logger)
	occasionsService := service.NewOccasions(occasionRepo, kv, cacheTTL, logger)
	giftsService := service.NewGifts(giftRepo, personRepo, kv, cacheTTL, logger)
	adminService := service.NewAdmin(userRepo, authService, logger)

	r := router.New(authService, peopleService, occasionsService, giftsService, adminService, aiClient, db, cfg.HTTP.CORSOrigin, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
