package config

import (
	"log/slog"
	"os"

	"github.com/gebeta/delivery/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MustInit loads the .env file (optional outside local development, where
// the environment comes from the orchestrator), reads config.yaml and
// installs the default logger. Panics on a missing or unreadable config.
func MustInit() {
	if err := godotenv.Load("./.env"); err != nil && !os.IsNotExist(err) {
		panic("error while loading .env file: " + err.Error())
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if path := os.Getenv("DELIVERY_CONFIG_PATH"); path != "" {
		viper.AddConfigPath(path)
	}
	viper.AddConfigPath("/etc/delivery-svc")
	viper.AddConfigPath(".")

	viper.SetDefault("server.http.port", "8080")

	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}

	SetupLogger()
}

// SetupLogger installs the JSON handler as the process-wide default.
func SetupLogger() {
	slog.SetDefault(slog.New(logger.NewHandler(nil)))
}
