package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/config"
	"github.com/yeremiapane/rental-backoffice/database"
	"github.com/yeremiapane/rental-backoffice/jobs"
	"github.com/yeremiapane/rental-backoffice/messaging"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/realtime"
	"github.com/yeremiapane/rental-backoffice/router"
	"github.com/yeremiapane/rental-backoffice/services"
	"github.com/yeremiapane/rental-backoffice/utils"
)

func main() {
	utils.InitLogger()
	cfg := config.Load()
	utils.SetLogLevel(cfg.LogLevel)
	utils.SetJWTSecret(cfg.JWTSecret)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	if err := utils.RegisterValidators(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to register validators: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub()
	publishers := services.MultiPublisher{hub}

	if cfg.RabbitMQURL != "" {
		producer, err := messaging.NewProducer(cfg.RabbitMQURL)
		if err != nil {
			utils.ErrorLogger.Printf("RabbitMQ disabled: %v", err)
		} else {
			defer producer.Close()
			publishers = append(publishers, producer)
		}
	}

	store := services.NewGormBookingStore(db)
	poller := services.NewBookingPoller(store, cfg.PollInterval)
	poller.FetchTimeout = cfg.FetchTimeout
	poller.OnUpdate(hub.BroadcastBoard)

	var cache services.BoardCache
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		utils.ErrorLogger.Printf("Redis disabled: %v", err)
	} else if rdb != nil {
		defer rdb.Close()
		redisCache := services.NewRedisBoardCache(rdb, 3*cfg.PollInterval)
		cache = redisCache
		poller.OnUpdate(func(board cleaning.Board) {
			saveCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := redisCache.Save(saveCtx, board); err != nil {
				utils.ErrorLogger.WithError(err).Error("Failed to cache board")
			}
		})
	}

	// The board only needs to move while someone is watching it.
	hub.OnPresence(func(count int) {
		if count == 0 {
			poller.Pause()
		} else {
			poller.Resume()
		}
	})
	poller.Pause()
	poller.Start(ctx)
	defer poller.Stop()

	assigner := services.NewAssignmentService(store, poller, publishers)
	assigner.Guard = cfg.AssignmentGuard

	notify := func(n models.Notification) {
		if err := publishers.Publish(context.Background(), services.EventStaffNotif, n); err != nil {
			utils.ErrorLogger.WithError(err).Error("Failed to publish staff notification")
		}
	}

	c := cron.New()
	staleJob := jobs.NewStaleCleaningJob(db, cfg.StaleCleaningAfter, notify)
	if err := jobs.InitCronJobs(c, cfg.StaleCleaningSchedule, staleJob); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start cron jobs: %v", err)
	}
	defer c.Stop()

	r := router.SetupRouter(router.Dependencies{
		DB:          db,
		Board:       poller,
		Cache:       cache,
		Assigner:    assigner,
		Hub:         hub,
		Notify:      notify,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimit,
	})
	r.SetTrustedProxies([]string{"127.0.0.1"})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
}
