package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/df07/go-whitted-raytracer/internal/config"
	"github.com/df07/go-whitted-raytracer/internal/logger"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	flags := config.ServerFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		logger.Init("info", "")
		logger.Error("failed to load config", zap.Error(err))
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	webServer := server.NewServer(cfg, logger.Named("web"))

	logger.Info("Whitted Raytracer Web Server")
	logger.Sugar.Infof("Visit http://localhost:%d to start rendering", cfg.Server.Port)

	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
