package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"banking-user-service/internal/core/auth"
	"banking-user-service/internal/core/cache"
	"banking-user-service/internal/core/config"
	"banking-user-service/internal/core/database"
	"banking-user-service/internal/core/logger"
	"banking-user-service/internal/core/server"
	"banking-user-service/internal/domain"
	"banking-user-service/internal/feature/history"
	"banking-user-service/internal/feature/profile"
	"banking-user-service/internal/feature/user"
	"banking-user-service/internal/repo"
	"banking-user-service/internal/transport/http/handler"
	"banking-user-service/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.UserProfile{}, &domain.UserStatusHistory{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 依赖装配
	userRepo := repo.NewUserRepo(db)
	profileRepo := repo.NewProfileRepo(db)
	historyRepo := repo.NewHistoryRepo(db)

	userOpts := []user.Option{user.WithObserver(user.PromObserver{})}
	if cfg.Redis.Enable {
		rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		userOpts = append(userOpts, user.WithCache(rc, time.Duration(cfg.Redis.UserTTLSec)*time.Second))
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}
	userSvc := user.NewService(userRepo, log, userOpts...)
	profileSvc := profile.NewService(userRepo, profileRepo, log)
	historySvc := history.NewService(historyRepo)

	var jwter *auth.JWTer
	if cfg.JWT.Secret != "" {
		jwter = &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		}
	}

	healthH := handler.NewHealthHandler(db)
	r := router.NewAPIEngine(router.Deps{
		Log:     log,
		Users:   handler.NewUserHandler(userSvc, log),
		Profile: handler.NewProfileHandler(profileSvc, log),
		History: handler.NewHistoryHandler(historySvc, log),
		Health:  healthH,
		JWTer:   jwter,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	log.Info("user service starting", zap.String("addr", addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user service start FAILED", zap.Error(err))
		}
	}()
	healthH.SetReady(true)
	log.Info("user service started")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	healthH.SetReady(false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("user service stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
