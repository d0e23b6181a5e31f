package main

import (
	"Foodia-Shopping/cmd/config"
	migration "Foodia-Shopping/cmd/database/migrate"
	"Foodia-Shopping/internal/utils"
	"Foodia-Shopping/internal/utils/logger"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	flag.Parse()

	utils.LoadConfig()

	log, err := logger.InitLogger(utils.GetConfig("LOG_LEVEL"), utils.GetConfig("LOG_DIR"))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	if *migrate {
		if err := migration.Migrate(db); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
		log.Info("database migration complete")
	}

	app, err := config.NewApp(db, log)
	if err != nil {
		log.Fatal("failed to set up app", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	port := utils.GetConfig("APP_PORT")
	log.Info("starting server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
