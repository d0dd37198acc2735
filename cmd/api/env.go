package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envFileVar names an alternative dotenv file; it defaults to .env.
const envFileVar = "CALCULATOR_ENV_FILE"

// loadDotEnv loads environment variables from the dotenv file when present.
// Existing process environment variables are not overridden, so the file
// sits below real environment in config precedence.
func loadDotEnv() error {
	path := os.Getenv(envFileVar)
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
