package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const ENV_FILENAME = ".env"

// InitEnvironmentVariables loads the optional .env file and configures the
// log level from ORDERSIM_LOG_LEVEL.
func InitEnvironmentVariables() error {
	if err := godotenv.Load(ENV_FILENAME); err != nil {
		// the .env file is optional for local runs
		log.Debugf("no %s file loaded: %v", ENV_FILENAME, err)
	}

	if level := os.Getenv("ORDERSIM_LOG_LEVEL"); level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid ORDERSIM_LOG_LEVEL: %w", err)
		}
		log.SetLevel(lvl)
	}

	return nil
}
