package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/orderstore/order-svc/pkg/logger"
)

// MustInit loads the .env file, reads the yaml config and installs the
// default logger. The .env file is optional so containerized runs can rely
// on injected environment variables alone.
func MustInit() {
	if err := godotenv.Load("./.env"); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/order-svc")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}
