package main

import (
	"flag"
	"os"

	"stpaul-crime/config"
	"stpaul-crime/core/appbootstrap"
	"stpaul-crime/core/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (optional)")
	flag.Parse()

	logger := utils.NewLogger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("load config: %v", err)
		os.Exit(1)
	}
	if err := appbootstrap.Run(cfg, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
