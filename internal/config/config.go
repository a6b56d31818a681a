package config

import "os"

type Config struct {
	DatabasePath string
	ListenAddr   string
}

func Load() (*Config, error) {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "transactions.db"
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return &Config{
		DatabasePath: dbPath,
		ListenAddr:   addr,
	}, nil
}
