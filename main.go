package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/PrivatePlace/PP-Backend/internal/config"
	"github.com/PrivatePlace/PP-Backend/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	backends, closeBackends, err := server.OpenBackends(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to start backends: %v", err)
	}
	defer closeBackends()

	r := server.NewRouter(cfg, backends)

	log.Printf("Server listening on port :%s (store=%s sessions=%s media=%s)...",
		cfg.Port, cfg.StoreBackend, cfg.Session.Backend, cfg.Media.Backend)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
