package main

import (
	"net/http"

	"go.uber.org/zap"

	"twin3-assistant-backend/internal/config"
	"twin3-assistant-backend/internal/server"
)

func main() {
	cfg := config.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	s, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}
	defer s.Shutdown()

	addr := ":" + cfg.Port
	logger.Info("twin3 assistant listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
