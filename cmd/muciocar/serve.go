package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"muciocar/internal/events"
	apphttp "muciocar/internal/http"
	applog "muciocar/internal/log"
	"muciocar/internal/ratestore"
	"muciocar/internal/repos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := applog.L()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if cfg.AdminPassword != "" {
		if err := repos.EnsureAdmin(db, uuid.NewString(), cfg.AdminEmail, "Administrador", cfg.AdminPassword); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
		log.Info("admin.ensure", zap.String("email", cfg.AdminEmail))
	}

	var pub events.Publisher = events.NewLogPublisher()
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Warn("events.amqp.unavailable", zap.Error(err))
		} else {
			pub = p
			log.Info("events.amqp.ready", zap.String("exchange", cfg.AMQPExchange))
		}
	}
	defer pub.Close()

	var store fiber.Storage
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
		s, err := ratestore.New(ctx, ratestore.Options{
			Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB, Prefix: "muciocar:rl",
		})
		cancel()
		if err != nil {
			log.Warn("ratestore.redis.unavailable", zap.Error(err))
		} else {
			store = s
			defer s.Close()
			log.Info("ratestore.redis.ready", zap.String("addr", cfg.RedisAddr))
		}
	}

	app := apphttp.New(apphttp.Options{
		Config:    cfg,
		DB:        db,
		Events:    pub,
		Storage:   store,
		AccessLog: true,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info("server.listen", zap.String("port", cfg.Port))
		errc <- app.Listen(":" + cfg.Port)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case s := <-sig:
		log.Info("server.shutdown", zap.String("signal", s.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}
