package main

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/uxmedia/demoportal/internal/config"
	"github.com/uxmedia/demoportal/internal/delivery"
	ws "github.com/uxmedia/demoportal/internal/delivery/ws"
	"github.com/uxmedia/demoportal/internal/domain"
	"github.com/uxmedia/demoportal/internal/infra"
	"go.uber.org/zap"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	defer zcore.Sync()
	zl := logger.NewZapLogger(zcore.Sugar())

	// CONFIG
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		panic("postgres ping failed: " + err.Error())
	}

	if err := infra.RunMigrations(ctx, pool, cfg.MigrationsDir, zcore); err != nil {
		panic("migrations failed: " + err.Error())
	}

	// REPOSITORIES
	submissionRepo := infra.NewPgSubmissionRepo(pool, zcore)
	sessionRepo := infra.NewPgSessionRepo(pool, zcore)
	settingsRepo := infra.NewPgSettingsRepo(pool, zcore)
	nowPlayingRepo := infra.NewPgNowPlayingRepo(pool, zcore)
	auditRepo := infra.NewPgAuditRepo(pool, zcore)

	// SERVICES
	authService := domain.NewAuthService(pool, cfg.AuthSecret)
	portalService := domain.NewPortalService(settingsRepo, auditRepo, zcore)
	sessionService := domain.NewSessionService(sessionRepo, settingsRepo, nowPlayingRepo, auditRepo, zcore)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	playbackService := domain.NewPlaybackService(submissionRepo, nowPlayingRepo, settingsRepo, auditRepo, rng, zcore)

	intakeService := domain.NewIntakeService(submissionRepo, settingsRepo, zcore)
	previewService := infra.NewSoundCloudOEmbed()

	// CHANGE FEED + VIEW REFRESHER
	feed := infra.NewPgChangeFeed(pool, zcore)
	go feed.Run(ctx)

	refresher := domain.NewRefresher(submissionRepo, settingsRepo, playbackService, feed, zcore)
	go refresher.Run(ctx)

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for snap := range refresher.Events() {
			payload, err := json.Marshal(snap)
			if err != nil {
				log.Printf("snapshot marshal failed: %v", err)
				continue
			}
			hub.Broadcast(payload)
		}
	}()

	// HANDLERS
	authHandler := delivery.NewAuthHandler(authService, zl)
	submitHandler := delivery.NewSubmitHandler(intakeService, portalService, previewService, zl)
	adminHandler := delivery.NewAdminHandler(portalService, sessionService, playbackService, refresher, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Auth"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, authHandler, submitHandler, adminHandler, authService)

	r.Get("/ws", ws.Handler(hub, refresher))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
