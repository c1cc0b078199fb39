package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meinhoongagan/tutor-booking/config"
	"github.com/meinhoongagan/tutor-booking/cron"
	"github.com/meinhoongagan/tutor-booking/db"
	"github.com/meinhoongagan/tutor-booking/logger"
	"github.com/meinhoongagan/tutor-booking/notify"
	"github.com/meinhoongagan/tutor-booking/redis"
	"github.com/meinhoongagan/tutor-booking/server"
	"github.com/meinhoongagan/tutor-booking/services"
	"github.com/meinhoongagan/tutor-booking/sessions"
	"github.com/meinhoongagan/tutor-booking/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	if err := run(cfg, logg); err != nil {
		logg.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			logg.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := db.Migrate(conn); err != nil {
		return err
	}
	logg.Info("Database migrated")

	var revoker sessions.Revoker = sessions.NewMemoryRevoker()
	if cfg.RedisAddr != "" {
		client, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer client.Close()
		revoker = redis.NewTokenStore(client)
		logg.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
	}

	sessionManager := sessions.NewManager(sessions.Options{
		Secret:  []byte(cfg.JWTSecret),
		TTL:     cfg.SessionTTL,
		Secure:  cfg.CookieSecure,
		Revoker: revoker,
		Logger:  logg,
	})

	var mailer utils.Mailer = utils.NopMailer{}
	if cfg.SMTP.Enabled() {
		mailer = utils.NewSMTPMailer(cfg.SMTP)
	} else {
		logg.Warn("SMTP is not configured, booking emails are disabled")
	}
	notifier := notify.New(mailer, utils.LoadZone(cfg.TimeZone), logg)

	var uploader utils.ImageUploader
	if cfg.Cloudinary.Enabled() {
		cld, err := utils.NewCloudinaryUploader(cfg.Cloudinary)
		if err != nil {
			return err
		}
		uploader = cld
	}

	bookings := services.NewBookingService(conn, notifier, logg)
	app := server.New(server.Deps{
		DB:       conn,
		Sessions: sessionManager,
		Users: services.NewUserService(conn, services.AuthPolicy{
			AllowAdminSignup: cfg.AllowAdminSignup,
		}, logg),
		Catalog:     services.NewCatalogService(conn, logg),
		Schedule:    services.NewScheduleService(conn, logg),
		Bookings:    bookings,
		Stats:       services.NewStatsService(conn),
		Uploader:    uploader,
		Logger:      logg,
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   !cfg.IsProduction(),
	})

	scheduler, err := cron.New(cfg.ReminderSpec, bookings, notifier, logg)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Error("Server shutdown failed", zap.Error(err))
	}
	notifier.Wait()
	return nil
}
