package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ayusman/sentrycam/internal/app"
	"github.com/ayusman/sentrycam/internal/config"
	"github.com/ayusman/sentrycam/internal/logging"
	"github.com/ayusman/sentrycam/internal/server"
)

func main() {
	cfg := config.FromEnv()
	log := logging.New(cfg.LogLevel, cfg.LogDir)

	log.WithField("city", cfg.WeatherCity).Info("sentrycam starting")

	application := app.New(cfg, log)

	if cfg.ServerAddr != "" {
		srv := server.New(server.Config{
			Source: application,
			Log:    log.WithField("component", "server"),
		})
		go func() {
			log.WithField("addr", cfg.ServerAddr).Info("observer server listening")
			if err := srv.ListenAndServe(cfg.ServerAddr); err != nil {
				log.WithField("error", err).Error("observer server stopped")
			}
		}()
	}

	// Ctrl-C stops the loop cleanly; in windowed mode 'q' does the same.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutdown signal received")
		application.Stop()
	}()

	if err := application.Run(); err != nil {
		log.WithField("error", err).Fatal("sentrycam exited")
	}
	log.Info("sentrycam stopped")
}
