package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"rosapi/internal/config"
	"rosapi/internal/logging"
)

// @title       ROS API
// @version     1.0
// @description Risk and vulnerability assessments stored encrypted in GitHub repositories.
// @BasePath    /
func main() {
	if err := rootCmd.Execute(); err != nil {
		cfg := config.Load()
		logging.New(os.Stderr, cfg.Location(), cfg.LogLevel).Error("command_failed", "error", err.Error())
		os.Exit(1)
	}
}
