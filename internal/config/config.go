package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	JwtKey       []byte
	Port         string
	DatabaseName string
	SQLitePath   string
	StaticDir    string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine as long as the variables are set
	// in the environment.
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "comptalib"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = filepath.Join("app", "public")
	}

	return &Config{
		JwtKey:       []byte(jwtSecret),
		Port:         port,
		DatabaseName: databaseName,
		SQLitePath:   sqlitePath,
		StaticDir:    staticDir,
	}, nil
}
